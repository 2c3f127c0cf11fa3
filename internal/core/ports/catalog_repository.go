package ports

import (
	"context"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// CategoryRepository persists title categories. Create maps a slug clash to
// domain.ErrValidation via the unique slug index.
type CategoryRepository interface {
	List(ctx context.Context, search string, page, limit int) ([]domain.Category, int64, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, slug string) error
}

// GenreRepository persists genres; contract mirrors CategoryRepository.
type GenreRepository interface {
	List(ctx context.Context, search string, page, limit int) ([]domain.Genre, int64, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	Create(ctx context.Context, g *domain.Genre) (*domain.Genre, error)
	Delete(ctx context.Context, slug string) error
}

// TitleFilter narrows title listings. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

// TitleRepository persists titles. Rating is not stored; it is derived from
// reviews (see ReviewRepository.AverageScore).
type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, limit int) ([]domain.Title, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Title, error)
	Create(ctx context.Context, t *domain.Title) (*domain.Title, error)
	Update(ctx context.Context, t *domain.Title) (*domain.Title, error)
	Delete(ctx context.Context, id string) error
}
