package service

import (
	"context"
	"time"

	"signup-service/internal/domain"
	"signup-service/internal/mail"
	"signup-service/internal/repository"
)

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *domain.User) (int64, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *mockUserRepo) Init(ctx context.Context) error { return nil }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return 1, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

type mockTempUserRepo struct {
	createFunc        func(ctx context.Context, tempUser *domain.TempUser) (int64, error)
	getByTokenFunc    func(ctx context.Context, token string) (*domain.TempUser, error)
	getByEmailFunc    func(ctx context.Context, email string) (*domain.TempUser, error)
	deleteByTokenFunc func(ctx context.Context, token string) (bool, error)
	deleteExpiredFunc func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockTempUserRepo) Init(ctx context.Context) error { return nil }

func (m *mockTempUserRepo) Create(ctx context.Context, tempUser *domain.TempUser) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, tempUser)
	}
	return 1, nil
}

func (m *mockTempUserRepo) GetByToken(ctx context.Context, token string) (*domain.TempUser, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTempUserRepo) GetByEmail(ctx context.Context, email string) (*domain.TempUser, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTempUserRepo) DeleteByToken(ctx context.Context, token string) (bool, error) {
	if m.deleteByTokenFunc != nil {
		return m.deleteByTokenFunc(ctx, token)
	}
	return true, nil
}

func (m *mockTempUserRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx, before)
	}
	return 0, nil
}

type mockHasher struct {
	hashFunc func(password string) (string, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error { return nil }

type mockTokenGenerator struct {
	newTokenFunc func() (string, error)
}

func (m *mockTokenGenerator) NewToken() (string, error) {
	if m.newTokenFunc != nil {
		return m.newTokenFunc()
	}
	return "aabbccddeeff00112233", nil
}

type mockNotifier struct {
	sendFunc func(ctx context.Context, msg mail.Message) error
	sent     []mail.Message
}

func (m *mockNotifier) Send(ctx context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return nil
}

type mockRenderer struct {
	renderFunc func(name string, data any) (string, error)
}

func (m *mockRenderer) Render(name string, data any) (string, error) {
	if m.renderFunc != nil {
		return m.renderFunc(name, data)
	}
	return "rendered:" + name, nil
}
