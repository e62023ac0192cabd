package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"signup-service/internal/domain"
	"signup-service/internal/mail"
	"signup-service/internal/repository"
)

// MsgVerified is the exact success message returned by a verification.
const MsgVerified = "Your account has been successfully verified"

// VerificationService resolves a token, promotes the pending registration into
// a confirmed User and dispatches the confirmation email.
type VerificationService interface {
	Verify(ctx context.Context, token string) (string, error)
}

// VerificationDeps bundles the collaborators a verification service needs.
type VerificationDeps struct {
	Users     repository.UserRepository
	TempUsers repository.TempUserRepository
	Notifier  mail.Notifier
	Renderer  mail.TemplateRenderer
	Logger    *logrus.Logger
}

type verificationService struct {
	users     repository.UserRepository
	tempUsers repository.TempUserRepository
	notifier  mail.Notifier
	renderer  mail.TemplateRenderer
	log       *logrus.Logger
	mailFrom  string
	now       func() time.Time
}

func NewVerificationService(deps VerificationDeps, mailFrom string) VerificationService {
	return &verificationService{
		users:     deps.Users,
		tempUsers: deps.TempUsers,
		notifier:  deps.Notifier,
		renderer:  deps.Renderer,
		log:       deps.Logger,
		mailFrom:  mailFrom,
		now:       time.Now,
	}
}

func (s *verificationService) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	tempUser, err := s.tempUsers.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", newStoreError(err)
	}

	if tempUser.Expired(s.now()) {
		if _, err := s.tempUsers.DeleteByToken(ctx, token); err != nil {
			s.log.WithField("email", tempUser.Email).Warnf("purge expired registration: %v", err)
		}
		return "", ErrExpiredToken
	}

	user := tempUser.User()
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent verification won the insert; the users unique
			// index guarantees at most one account per email.
			if _, delErr := s.tempUsers.DeleteByToken(ctx, token); delErr != nil {
				s.log.WithField("email", tempUser.Email).Warnf("delete consumed registration: %v", delErr)
			}
			return "", ErrConflict
		}
		return "", newStoreError(err)
	}

	deleted, err := s.tempUsers.DeleteByToken(ctx, token)
	if err != nil {
		// The account exists; the stale row falls to the expiry sweeper.
		s.log.WithField("email", tempUser.Email).Warnf("delete consumed registration: %v", err)
	} else if !deleted {
		s.log.WithField("email", tempUser.Email).Warn("registration already deleted by concurrent verify")
	}

	s.log.WithFields(logrus.Fields{
		"email":   user.Email,
		"user_id": user.ID,
	}).Info("account verified")

	if err := s.sendConfirmationMail(ctx, user); err != nil {
		s.log.WithField("email", user.Email).Warnf("confirmation email failed: %v", err)
		return "", newNotificationError(err)
	}

	return MsgVerified, nil
}

func (s *verificationService) sendConfirmationMail(ctx context.Context, user *domain.User) error {
	htmlBody, err := s.renderer.Render(mail.TemplateConfirmHTML, nil)
	if err != nil {
		return err
	}
	textBody, err := s.renderer.Render(mail.TemplateConfirmText, nil)
	if err != nil {
		return err
	}

	return s.notifier.Send(ctx, mail.Message{
		To:       user.Email,
		From:     s.mailFrom,
		Subject:  "Successfully verified!",
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}
