package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/store"
)

// UserStore is an in-memory store.UserStore for tests.
type UserStore struct {
	Users []*domain.User

	// Err, when set, is returned by every operation.
	Err error
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an in-memory user store seeded with the given users.
func NewUserStore(users ...*domain.User) *UserStore {
	return &UserStore{Users: users}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.Users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	s.Users = append(s.Users, user)
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}
