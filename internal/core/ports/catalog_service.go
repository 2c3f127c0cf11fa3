package ports

import (
	"context"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// TitleInput carries the write shape of a title: category and genres are
// referenced by slug, as in the public API.
type TitleInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genres      []string
}

// TitlePatch is a partial title update; nil fields stay unchanged.
type TitlePatch struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      []string
}

// CatalogService manages categories, genres and titles. Reads are public;
// writes require an admin actor.
type CatalogService interface {
	ListCategories(ctx context.Context, search string, page, limit int) ([]domain.Category, int64, error)
	CreateCategory(ctx context.Context, actor domain.Actor, name, slug string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actor domain.Actor, slug string) error

	ListGenres(ctx context.Context, search string, page, limit int) ([]domain.Genre, int64, error)
	CreateGenre(ctx context.Context, actor domain.Actor, name, slug string) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, actor domain.Actor, slug string) error

	ListTitles(ctx context.Context, filter TitleFilter, page, limit int) ([]domain.Title, int64, error)
	GetTitle(ctx context.Context, id string) (*domain.Title, error)
	CreateTitle(ctx context.Context, actor domain.Actor, input TitleInput) (*domain.Title, error)
	UpdateTitle(ctx context.Context, actor domain.Actor, id string, patch TitlePatch) (*domain.Title, error)
	DeleteTitle(ctx context.Context, actor domain.Actor, id string) error
}
