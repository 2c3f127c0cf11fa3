package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// CatalogService manages categories, genres and titles and derives title
// ratings through a read-through cache.
type CatalogService struct {
	categories ports.CategoryRepository
	genres     ports.GenreRepository
	titles     ports.TitleRepository
	reviews    ports.ReviewRepository
	ratings    ports.RatingCache
	logger     zerolog.Logger
}

func NewCatalogService(
	categories ports.CategoryRepository,
	genres ports.GenreRepository,
	titles ports.TitleRepository,
	reviews ports.ReviewRepository,
	ratings ports.RatingCache,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		genres:     genres,
		titles:     titles,
		reviews:    reviews,
		ratings:    ratings,
		logger:     logger,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, page, limit int) ([]domain.Category, int64, error) {
	return s.categories.List(ctx, search, page, limit)
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor domain.Actor, name, slug string) (*domain.Category, error) {
	if !domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.KindCatalog}) {
		return nil, domain.ErrForbidden
	}
	return s.categories.Create(ctx, &domain.Category{Name: name, Slug: slug})
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor domain.Actor, slug string) error {
	if !domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.KindCatalog}) {
		return domain.ErrForbidden
	}
	return s.categories.Delete(ctx, slug)
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, page, limit int) ([]domain.Genre, int64, error) {
	return s.genres.List(ctx, search, page, limit)
}

func (s *CatalogService) CreateGenre(ctx context.Context, actor domain.Actor, name, slug string) (*domain.Genre, error) {
	if !domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.KindCatalog}) {
		return nil, domain.ErrForbidden
	}
	return s.genres.Create(ctx, &domain.Genre{Name: name, Slug: slug})
}

func (s *CatalogService) DeleteGenre(ctx context.Context, actor domain.Actor, slug string) error {
	if !domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.KindCatalog}) {
		return domain.ErrForbidden
	}
	return s.genres.Delete(ctx, slug)
}

func (s *CatalogService) ListTitles(ctx context.Context, filter ports.TitleFilter, page, limit int) ([]domain.Title, int64, error) {
	titles, total, err := s.titles.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range titles {
		titles[i].Rating = s.rating(ctx, titles[i].ID)
	}
	return titles, total, nil
}

func (s *CatalogService) GetTitle(ctx context.Context, id string) (*domain.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	title.Rating = s.rating(ctx, title.ID)
	return title, nil
}

func (s *CatalogService) CreateTitle(ctx context.Context, actor domain.Actor, input ports.TitleInput) (*domain.Title, error) {
	if !domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.KindCatalog}) {
		return nil, domain.ErrForbidden
	}
	if input.Year > time.Now().Year() {
		return nil, domain.ErrValidation
	}
	if input.Category == "" {
		return nil, domain.ErrValidation
	}

	category, genres, err := s.resolveRefs(ctx, input.Category, input.Genres)
	if err != nil {
		return nil, err
	}

	return s.titles.Create(ctx, &domain.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    *category,
		Genres:      genres,
	})
}

func (s *CatalogService) UpdateTitle(ctx context.Context, actor domain.Actor, id string, patch ports.TitlePatch) (*domain.Title, error) {
	if !domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.KindCatalog}) {
		return nil, domain.ErrForbidden
	}

	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		if *patch.Year > time.Now().Year() {
			return nil, domain.ErrValidation
		}
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}
	if patch.Category != nil {
		if *patch.Category == "" {
			return nil, domain.ErrValidation
		}
		category, _, err := s.resolveRefs(ctx, *patch.Category, nil)
		if err != nil {
			return nil, err
		}
		title.Category = *category
	}
	if patch.Genres != nil {
		_, genres, err := s.resolveRefs(ctx, "", patch.Genres)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	updated, err := s.titles.Update(ctx, title)
	if err != nil {
		return nil, err
	}
	updated.Rating = s.rating(ctx, updated.ID)
	return updated, nil
}

func (s *CatalogService) DeleteTitle(ctx context.Context, actor domain.Actor, id string) error {
	if !domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.KindCatalog}) {
		return domain.ErrForbidden
	}
	if err := s.titles.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.ratings.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("title_id", id).Msg("rating cache invalidation failed")
	}
	return nil
}

// resolveRefs turns slugs from a write payload into catalog entities.
// Unknown slugs are a payload problem, not a missing route target, so they
// map to ErrValidation rather than a 404.
func (s *CatalogService) resolveRefs(ctx context.Context, categorySlug string, genreSlugs []string) (*domain.Category, []domain.Genre, error) {
	var category *domain.Category
	if categorySlug != "" {
		var err error
		category, err = s.categories.FindBySlug(ctx, categorySlug)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return nil, nil, domain.ErrValidation
			}
			return nil, nil, err
		}
	}

	genres := make([]domain.Genre, 0, len(genreSlugs))
	for _, slug := range genreSlugs {
		genre, err := s.genres.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, domain.ErrGenreNotFound) {
				return nil, nil, domain.ErrValidation
			}
			return nil, nil, err
		}
		genres = append(genres, *genre)
	}
	return category, genres, nil
}

// rating resolves the derived rating for a title, preferring the cache.
// Cache trouble degrades to a recomputed (or absent) rating, never an error.
func (s *CatalogService) rating(ctx context.Context, titleID string) *int {
	if cached, ok, err := s.ratings.Get(ctx, titleID); err == nil && ok {
		return cached
	}

	avg, count, err := s.reviews.AverageScore(ctx, titleID)
	if err != nil {
		s.logger.Warn().Err(err).Str("title_id", titleID).Msg("rating aggregation failed")
		return nil
	}

	var rating *int
	if count > 0 {
		rounded := int(math.Round(avg))
		rating = &rounded
	}
	if err := s.ratings.Set(ctx, titleID, rating); err != nil {
		s.logger.Warn().Err(err).Str("title_id", titleID).Msg("rating cache write failed")
	}
	return rating
}
