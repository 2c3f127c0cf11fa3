package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// ReviewService manages reviews and comments. Review creation is the one
// write in the system where check-then-insert would race: uniqueness of the
// (author, title) pair is delegated to the storage index, and the service
// only maps the resulting constraint violation to ErrDuplicateReview.
type ReviewService struct {
	titles   ports.TitleRepository
	reviews  ports.ReviewRepository
	comments ports.CommentRepository
	ratings  ports.RatingCache
	logger   zerolog.Logger
}

func NewReviewService(
	titles ports.TitleRepository,
	reviews ports.ReviewRepository,
	comments ports.CommentRepository,
	ratings ports.RatingCache,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		titles:   titles,
		reviews:  reviews,
		comments: comments,
		ratings:  ratings,
		logger:   logger,
	}
}

func (s *ReviewService) ListReviews(ctx context.Context, titleID string, page, limit int) ([]domain.Review, int64, error) {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByTitle(ctx, titleID, page, limit)
}

func (s *ReviewService) GetReview(ctx context.Context, titleID, reviewID string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, titleID, reviewID)
}

func (s *ReviewService) CreateReview(ctx context.Context, actor domain.Actor, titleID, text string, score int) (*domain.Review, error) {
	if !domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.KindReview}) {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidScore(score) {
		return nil, domain.ErrInvalidScore
	}
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.reviews.Insert(ctx, &domain.Review{
		TitleID:        titleID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Text:           text,
		Score:          score,
		PubDate:        time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRating(ctx, titleID)
	s.logger.Info().Str("title_id", titleID).Str("author", actor.Username).Msg("review created")
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, actor domain.Actor, titleID, reviewID string, patch ports.ReviewPatch) (*domain.Review, error) {
	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.KindReview, OwnerID: review.AuthorID}) {
		return nil, domain.ErrForbidden
	}

	// Only text and score are mutable; the (author, title) pair never
	// changes, so uniqueness needs no re-check here.
	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		if !domain.ValidScore(*patch.Score) {
			return nil, domain.ErrInvalidScore
		}
		review.Score = *patch.Score
	}

	updated, err := s.reviews.Update(ctx, review)
	if err != nil {
		return nil, err
	}
	s.invalidateRating(ctx, titleID)
	return updated, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor domain.Actor, titleID, reviewID string) error {
	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.KindReview, OwnerID: review.AuthorID}) {
		return domain.ErrForbidden
	}

	if err := s.reviews.Delete(ctx, titleID, reviewID); err != nil {
		return err
	}
	s.invalidateRating(ctx, titleID)
	s.logger.Info().Str("review_id", reviewID).Str("actor", actor.Username).Msg("review deleted")
	return nil
}

func (s *ReviewService) ListComments(ctx context.Context, titleID, reviewID string, page, limit int) ([]domain.Comment, int64, error) {
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByReview(ctx, reviewID, page, limit)
}

func (s *ReviewService) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*domain.Comment, error) {
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.FindByID(ctx, reviewID, commentID)
}

func (s *ReviewService) CreateComment(ctx context.Context, actor domain.Actor, titleID, reviewID, text string) (*domain.Comment, error) {
	if !domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.KindComment}) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	return s.comments.Insert(ctx, &domain.Comment{
		ReviewID:       reviewID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Text:           text,
		PubDate:        time.Now().UTC(),
	})
}

func (s *ReviewService) UpdateComment(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID, text string) (*domain.Comment, error) {
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.KindComment, OwnerID: comment.AuthorID}) {
		return nil, domain.ErrForbidden
	}

	comment.Text = text
	return s.comments.Update(ctx, comment)
}

func (s *ReviewService) DeleteComment(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID string) error {
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return err
	}
	comment, err := s.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if !domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.KindComment, OwnerID: comment.AuthorID}) {
		return domain.ErrForbidden
	}
	return s.comments.Delete(ctx, reviewID, commentID)
}

func (s *ReviewService) invalidateRating(ctx context.Context, titleID string) {
	if err := s.ratings.Invalidate(ctx, titleID); err != nil {
		s.logger.Warn().Err(err).Str("title_id", titleID).Msg("rating cache invalidation failed")
	}
}
