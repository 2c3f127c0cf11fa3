package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

type stubReviewService struct {
	createFn func(ctx context.Context, actor domain.Actor, titleID, text string, score int) (*domain.Review, error)
	listFn   func(ctx context.Context, titleID string, page, limit int) ([]domain.Review, int64, error)
}

func (s *stubReviewService) ListReviews(ctx context.Context, titleID string, page, limit int) ([]domain.Review, int64, error) {
	return s.listFn(ctx, titleID, page, limit)
}

func (s *stubReviewService) GetReview(ctx context.Context, titleID, reviewID string) (*domain.Review, error) {
	return nil, domain.ErrReviewNotFound
}

func (s *stubReviewService) CreateReview(ctx context.Context, actor domain.Actor, titleID, text string, score int) (*domain.Review, error) {
	return s.createFn(ctx, actor, titleID, text, score)
}

func (s *stubReviewService) UpdateReview(ctx context.Context, actor domain.Actor, titleID, reviewID string, patch ports.ReviewPatch) (*domain.Review, error) {
	return nil, domain.ErrReviewNotFound
}

func (s *stubReviewService) DeleteReview(ctx context.Context, actor domain.Actor, titleID, reviewID string) error {
	return domain.ErrReviewNotFound
}

func (s *stubReviewService) ListComments(ctx context.Context, titleID, reviewID string, page, limit int) ([]domain.Comment, int64, error) {
	return nil, 0, nil
}

func (s *stubReviewService) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*domain.Comment, error) {
	return nil, domain.ErrCommentNotFound
}

func (s *stubReviewService) CreateComment(ctx context.Context, actor domain.Actor, titleID, reviewID, text string) (*domain.Comment, error) {
	return nil, domain.ErrReviewNotFound
}

func (s *stubReviewService) UpdateComment(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID, text string) (*domain.Comment, error) {
	return nil, domain.ErrCommentNotFound
}

func (s *stubReviewService) DeleteComment(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID string) error {
	return domain.ErrCommentNotFound
}

func TestReviewHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		createFn: func(ctx context.Context, actor domain.Actor, titleID, text string, score int) (*domain.Review, error) {
			if actor.Username != "alice" {
				t.Fatalf("actor not propagated: %+v", actor)
			}
			if titleID != "t1" || text != "great" || score != 9 {
				t.Fatalf("unexpected args: %s %s %d", titleID, text, score)
			}
			return &domain.Review{ID: "r1", AuthorUsername: actor.Username, Text: text, Score: score}, nil
		},
	}
	h := NewReviewHandler(stub)

	body := strings.NewReader(`{"text":"great","score":9}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles/t1/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("title_id")
	c.SetParamValues("t1")
	c.Set("actor", domain.Actor{ID: "u1", Username: "alice", Role: domain.RoleUser, Authenticated: true})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["author"] != "alice" || resp["score"] != float64(9) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReviewHandler_Create_MissingText(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		createFn: func(ctx context.Context, actor domain.Actor, titleID, text string, score int) (*domain.Review, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewReviewHandler(stub)

	body := strings.NewReader(`{"score":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles/t1/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("title_id")
	c.SetParamValues("t1")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestReviewHandler_Create_InvalidScorePassesThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		createFn: func(ctx context.Context, actor domain.Actor, titleID, text string, score int) (*domain.Review, error) {
			return nil, domain.ErrInvalidScore
		},
	}
	h := NewReviewHandler(stub)

	body := strings.NewReader(`{"text":"meh","score":11}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles/t1/reviews", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("title_id")
	c.SetParamValues("t1")
	c.Set("actor", domain.Actor{ID: "u1", Username: "alice", Role: domain.RoleUser, Authenticated: true})

	if err := h.Create(c); !errors.Is(err, domain.ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
}

func TestReviewHandler_List_Envelope(t *testing.T) {
	e := newTestEcho()
	stub := &stubReviewService{
		listFn: func(ctx context.Context, titleID string, page, limit int) ([]domain.Review, int64, error) {
			return []domain.Review{{ID: "r1", AuthorUsername: "alice", Text: "good", Score: 7}}, 1, nil
		},
	}
	h := NewReviewHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/t1/reviews", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("title_id")
	c.SetParamValues("t1")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Count   int64            `json:"count"`
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Results[0]["author"] != "alice" {
		t.Fatalf("unexpected review payload: %+v", resp.Results[0])
	}
}
