package services

import (
	"context"

	"github.com/openhire/apiserver/internal/policy"
	"github.com/openhire/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UserUpdate carries the partial field changes of a user update. Nil fields
// are left untouched.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	return s.repo.Create(ctx, user)
}

// Update applies partial changes to a user's own account. Only the account
// owner may update it; there is no admin override on the user surface.
func (s *UserService) Update(ctx context.Context, caller types.Caller, id int, update UserUpdate) (types.User, error) {
	if err := policy.CanMutateUser(caller, id); err != nil {
		return types.User{}, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}

	return s.repo.Update(ctx, user)
}

// Delete removes a user's own account.
func (s *UserService) Delete(ctx context.Context, caller types.Caller, id int) error {
	if err := policy.CanMutateUser(caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
