package ports

import (
	"context"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// UserRepository persists user accounts.
//
// GetOrCreate must be atomic: concurrent signups for the same (username,
// email) pair resolve to a single record. A clash of username or email
// against a record holding a different pair yields domain.ErrUserExists.
type UserRepository interface {
	GetOrCreate(ctx context.Context, username, email string) (*domain.User, bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	List(ctx context.Context, search string, page, limit int) ([]domain.User, int64, error)
	// MarkExchanged activates the user and bumps CodeEpoch in one atomic
	// update, invalidating every previously issued confirmation code.
	MarkExchanged(ctx context.Context, id string) (*domain.User, error)
}
