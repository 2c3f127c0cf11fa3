package ports

import (
	"context"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// ReviewRepository persists reviews.
//
// Insert relies on the compound unique index over (title_id, author_id):
// a second review by the same author for the same title fails with
// domain.ErrDuplicateReview even under concurrent submissions. There is
// deliberately no exists-then-insert path.
type ReviewRepository interface {
	Insert(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, titleID, reviewID string) (*domain.Review, error)
	ListByTitle(ctx context.Context, titleID string, page, limit int) ([]domain.Review, int64, error)
	Update(ctx context.Context, r *domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, titleID, reviewID string) error
	// AverageScore returns the mean score and review count for a title.
	AverageScore(ctx context.Context, titleID string) (float64, int64, error)
}

// CommentRepository persists review comments.
type CommentRepository interface {
	Insert(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, reviewID, commentID string) (*domain.Comment, error)
	ListByReview(ctx context.Context, reviewID string, page, limit int) ([]domain.Comment, int64, error)
	Update(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, reviewID, commentID string) error
}

// RatingCache caches derived title ratings. A nil rating is cacheable: it
// records "no reviews yet" and avoids recomputing the aggregate.
type RatingCache interface {
	Get(ctx context.Context, titleID string) (rating *int, ok bool, err error)
	Set(ctx context.Context, titleID string, rating *int) error
	Invalidate(ctx context.Context, titleID string) error
}
