package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// CatalogHandler serves categories and genres. Reads are public, writes are
// restricted to admins by the RBAC middleware and the service layer.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories returns categories, optionally filtered by name.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        search  query     string  false  "Name substring filter"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	page, limit := pageParams(c)
	categories, total, err := h.catalog.ListCategories(c.Request().Context(), c.QueryParam("search"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Count: total, Results: categories})
}

// CreateCategory adds a category.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      slugRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req slugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), ctxActor(c), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a category by slug.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        slug  path  string  true  "Category slug"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /categories/{slug} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalog.DeleteCategory(c.Request().Context(), ctxActor(c), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGenres returns genres, optionally filtered by name.
//
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Param        search  query     string  false  "Name substring filter"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse
// @Router       /genres [get]
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	page, limit := pageParams(c)
	genres, total, err := h.catalog.ListGenres(c.Request().Context(), c.QueryParam("search"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Count: total, Results: genres})
}

// CreateGenre adds a genre.
//
// @Summary      Create a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      slugRequest  true  "Genre details"
// @Success      201   {object}  domain.Genre
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /genres [post]
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req slugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.catalog.CreateGenre(c.Request().Context(), ctxActor(c), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, genre)
}

// DeleteGenre removes a genre by slug.
//
// @Summary      Delete a genre
// @Tags         genres
// @Security     BearerAuth
// @Param        slug  path  string  true  "Genre slug"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /genres/{slug} [delete]
func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	if err := h.catalog.DeleteGenre(c.Request().Context(), ctxActor(c), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
