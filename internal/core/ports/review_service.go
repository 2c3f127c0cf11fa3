package ports

import (
	"context"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// ReviewPatch is a partial review update. Only text and score may change;
// the (author, title) pair is immutable once created.
type ReviewPatch struct {
	Text  *string
	Score *int
}

// ReviewService manages reviews and their comments, enforcing score bounds,
// the one-review-per-author-per-title invariant and ownership rules.
type ReviewService interface {
	ListReviews(ctx context.Context, titleID string, page, limit int) ([]domain.Review, int64, error)
	GetReview(ctx context.Context, titleID, reviewID string) (*domain.Review, error)
	CreateReview(ctx context.Context, actor domain.Actor, titleID, text string, score int) (*domain.Review, error)
	UpdateReview(ctx context.Context, actor domain.Actor, titleID, reviewID string, patch ReviewPatch) (*domain.Review, error)
	DeleteReview(ctx context.Context, actor domain.Actor, titleID, reviewID string) error

	ListComments(ctx context.Context, titleID, reviewID string, page, limit int) ([]domain.Comment, int64, error)
	GetComment(ctx context.Context, titleID, reviewID, commentID string) (*domain.Comment, error)
	CreateComment(ctx context.Context, actor domain.Actor, titleID, reviewID, text string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID, text string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID string) error
}
