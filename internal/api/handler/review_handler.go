package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/api/metrics"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// ReviewHandler serves reviews nested under titles.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List returns a title's reviews, oldest first.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        title_id  path      string  true   "Title id"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse
// @Failure      404       {object}  map[string]string
// @Router       /titles/{title_id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	reviews, total, err := h.reviews.ListReviews(c.Request().Context(), c.Param("title_id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Count: total, Results: reviews})
}

// Get returns one review.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        title_id   path      string  true  "Title id"
// @Param        review_id  path      string  true  "Review id"
// @Success      200        {object}  domain.Review
// @Failure      404        {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviews.GetReview(c.Request().Context(), c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Create posts the calling user's review for a title. A second review for
// the same title is rejected.
//
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id  path      string         true  "Title id"
// @Param        body      body      reviewRequest  true  "Review payload"
// @Success      201       {object}  domain.Review
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /titles/{title_id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviews.CreateReview(c.Request().Context(), ctxActor(c), c.Param("title_id"), req.Text, req.Score)
	if err != nil {
		return err
	}

	metrics.ReviewsCreatedTotal.WithLabelValues(strconv.Itoa(review.Score)).Inc()
	return c.JSON(http.StatusCreated, review)
}

// Update patches a review's text or score.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id   path      string              true  "Title id"
// @Param        review_id  path      string              true  "Review id"
// @Param        body       body      patchReviewRequest  true  "Fields to change"
// @Success      200        {object}  domain.Review
// @Failure      400        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	var req patchReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	review, err := h.reviews.UpdateReview(c.Request().Context(), ctxActor(c), c.Param("title_id"), c.Param("review_id"), ports.ReviewPatch{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete removes a review.
//
// @Summary      Delete a review
// @Tags         reviews
// @Security     BearerAuth
// @Param        title_id   path  string  true  "Title id"
// @Param        review_id  path  string  true  "Review id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.reviews.DeleteReview(c.Request().Context(), ctxActor(c), c.Param("title_id"), c.Param("review_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
