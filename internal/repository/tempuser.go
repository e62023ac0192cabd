package repository

import (
	"context"
	"time"

	"signup-service/internal/domain"
)

// TempUserRepository defines persistence operations for pending registrations.
//
// The sqlite implementation carries unique indexes on both token and email;
// Create surfaces ErrDuplicate when either is violated. That constraint, not
// the service-level duplicate check, is what prevents two concurrent sign-ups
// for the same email from both inserting a row.
type TempUserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tempUser *domain.TempUser) (int64, error)
	GetByToken(ctx context.Context, token string) (*domain.TempUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.TempUser, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
