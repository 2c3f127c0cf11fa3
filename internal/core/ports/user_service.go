package ports

import (
	"context"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// ProfilePatch carries the self-service profile fields. Nil means "leave
// unchanged". Role is deliberately absent: a user cannot change their own
// role, and the handler drops the field before it reaches the service.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Bio       *string
}

// CreateUserInput is the admin user-creation payload.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UserPatch is the admin partial-update payload; nil fields stay unchanged.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

// UserService covers the self-profile surface and admin user management.
type UserService interface {
	Profile(ctx context.Context, actor domain.Actor) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, patch ProfilePatch) (*domain.User, error)

	List(ctx context.Context, actor domain.Actor, search string, page, limit int) ([]domain.User, int64, error)
	Create(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, username string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, username string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, username string) error
}
