package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/api/metrics"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// CommentHandler serves comments nested under reviews.
type CommentHandler struct {
	reviews ports.ReviewService
}

func NewCommentHandler(reviews ports.ReviewService) *CommentHandler {
	return &CommentHandler{reviews: reviews}
}

// List returns a review's comments, oldest first.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        title_id   path      string  true   "Title id"
// @Param        review_id  path      string  true   "Review id"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listResponse
// @Failure      404        {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	comments, total, err := h.reviews.ListComments(c.Request().Context(), c.Param("title_id"), c.Param("review_id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Count: total, Results: comments})
}

// Get returns one comment.
//
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        title_id    path      string  true  "Title id"
// @Param        review_id   path      string  true  "Review id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {object}  domain.Comment
// @Failure      404         {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	comment, err := h.reviews.GetComment(c.Request().Context(), c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Create posts a comment on a review.
//
// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id   path      string          true  "Title id"
// @Param        review_id  path      string          true  "Review id"
// @Param        body       body      commentRequest  true  "Comment payload"
// @Success      201        {object}  domain.Comment
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.reviews.CreateComment(c.Request().Context(), ctxActor(c), c.Param("title_id"), c.Param("review_id"), req.Text)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, comment)
}

// Update changes a comment's text.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        title_id    path      string          true  "Title id"
// @Param        review_id   path      string          true  "Review id"
// @Param        comment_id  path      string          true  "Comment id"
// @Param        body        body      commentRequest  true  "New text"
// @Success      200         {object}  domain.Comment
// @Failure      400         {object}  map[string]string
// @Failure      403         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.reviews.UpdateComment(c.Request().Context(), ctxActor(c), c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete removes a comment.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        title_id    path  string  true  "Title id"
// @Param        review_id   path  string  true  "Review id"
// @Param        comment_id  path  string  true  "Comment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	if err := h.reviews.DeleteComment(c.Request().Context(), ctxActor(c), c.Param("title_id"), c.Param("review_id"), c.Param("comment_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
