package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"signup-service/internal/crypto"
	"signup-service/internal/domain"
	"signup-service/internal/mail"
	"signup-service/internal/repository"
)

// MsgRegistered is the exact success message returned by a sign-up.
const MsgRegistered = "An email has been sent to you. Please check it to verify your account"

// SignUpInput is the raw sign-up payload before validation.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// RegistrationService validates sign-ups, persists a pending registration and
// dispatches the verification email.
type RegistrationService interface {
	Register(ctx context.Context, input SignUpInput) (string, error)
}

// RegistrationDeps bundles the collaborators a registration service needs.
type RegistrationDeps struct {
	Users     repository.UserRepository
	TempUsers repository.TempUserRepository
	Hasher    crypto.PasswordHasher
	Tokens    crypto.TokenGenerator
	Notifier  mail.Notifier
	Renderer  mail.TemplateRenderer
	Logger    *logrus.Logger
}

// RegistrationConfig holds the tunables of the verification flow.
type RegistrationConfig struct {
	// VerificationBaseURL is the link prefix mailed to the user; the token is
	// appended as a query parameter.
	VerificationBaseURL string
	// TokenTTL is how long an unconsumed registration stays live.
	TokenTTL time.Duration
	// MailFrom is the sender address on verification emails.
	MailFrom string
}

type registrationService struct {
	users     repository.UserRepository
	tempUsers repository.TempUserRepository
	hasher    crypto.PasswordHasher
	tokens    crypto.TokenGenerator
	notifier  mail.Notifier
	renderer  mail.TemplateRenderer
	log       *logrus.Logger

	baseURL  string
	tokenTTL time.Duration
	mailFrom string
	now      func() time.Time
}

func NewRegistrationService(deps RegistrationDeps, cfg RegistrationConfig) RegistrationService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &registrationService{
		users:     deps.Users,
		tempUsers: deps.TempUsers,
		hasher:    deps.Hasher,
		tokens:    deps.Tokens,
		notifier:  deps.Notifier,
		renderer:  deps.Renderer,
		log:       deps.Logger,
		baseURL:   cfg.VerificationBaseURL,
		tokenTTL:  ttl,
		mailFrom:  cfg.MailFrom,
		now:       time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, input SignUpInput) (string, error) {
	if vErr := validateSignUp(input); vErr != nil {
		return "", vErr
	}

	// Fast-path duplicate checks. The unique indexes on users.email and
	// temp_users.email remain the authority under concurrent requests.
	// Any users row counts as confirmed here regardless of its flag: users
	// are only ever created by promotion, and a row inserted by any other
	// path still occupies the email.
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrAlreadyConfirmed
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", newStoreError(err)
	}

	pending, err := s.tempUsers.GetByEmail(ctx, input.Email)
	switch {
	case err == nil && !pending.Expired(s.now()):
		return "", ErrAlreadyPending
	case err == nil:
		// Expired registrations are treated as absent; purge so the email
		// unique index does not block the re-signup.
		if _, err := s.tempUsers.DeleteByToken(ctx, pending.Token); err != nil {
			return "", newStoreError(err)
		}
	case !errors.Is(err, repository.ErrNotFound):
		return "", newStoreError(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}

	tempUser := &domain.TempUser{
		Token:        token,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		ExpiresAt:    s.now().Add(s.tokenTTL),
	}

	if _, err := s.tempUsers.Create(ctx, tempUser); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent sign-up for the same email.
			return "", ErrAlreadyPending
		}
		return "", newStoreError(err)
	}

	s.log.WithFields(logrus.Fields{
		"email": input.Email,
	}).Info("pending registration created")

	if err := s.sendVerificationMail(ctx, tempUser); err != nil {
		// The pending registration stays: the user can still complete
		// verification if the mail eventually arrives, and re-registration
		// is pointless while the row is live.
		s.log.WithField("email", input.Email).Warnf("verification email failed: %v", err)
		return "", newNotificationError(err)
	}

	return MsgRegistered, nil
}

func (s *registrationService) sendVerificationMail(ctx context.Context, tempUser *domain.TempUser) error {
	vars := struct {
		FirstName string
		VerifyURL string
	}{
		FirstName: tempUser.FirstName,
		VerifyURL: s.verificationURL(tempUser.Token),
	}

	htmlBody, err := s.renderer.Render(mail.TemplateVerifyHTML, vars)
	if err != nil {
		return err
	}
	textBody, err := s.renderer.Render(mail.TemplateVerifyText, vars)
	if err != nil {
		return err
	}

	return s.notifier.Send(ctx, mail.Message{
		To:       tempUser.Email,
		From:     s.mailFrom,
		Subject:  "Confirm your account",
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

func (s *registrationService) verificationURL(token string) string {
	return s.baseURL + "?token=" + url.QueryEscape(token)
}
