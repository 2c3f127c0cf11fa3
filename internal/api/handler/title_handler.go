package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// TitleHandler serves the reviewable works.
type TitleHandler struct {
	catalog ports.CatalogService
}

func NewTitleHandler(catalog ports.CatalogService) *TitleHandler {
	return &TitleHandler{catalog: catalog}
}

// List returns titles with derived ratings, filtered and paginated.
//
// @Summary      List titles
// @Tags         titles
// @Produce      json
// @Param        category  query     string  false  "Category slug filter"
// @Param        genre     query     string  false  "Genre slug filter"
// @Param        name      query     string  false  "Name substring filter"
// @Param        year      query     int     false  "Exact year filter"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse
// @Router       /titles [get]
func (h *TitleHandler) List(c echo.Context) error {
	year, _ := strconv.Atoi(c.QueryParam("year"))
	filter := ports.TitleFilter{
		CategorySlug: c.QueryParam("category"),
		GenreSlug:    c.QueryParam("genre"),
		Name:         c.QueryParam("name"),
		Year:         year,
	}

	page, limit := pageParams(c)
	titles, total, err := h.catalog.ListTitles(c.Request().Context(), filter, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Count: total, Results: titles})
}

// Get returns one title with its derived rating.
//
// @Summary      Get a title
// @Tags         titles
// @Produce      json
// @Param        id  path      string  true  "Title id"
// @Success      200  {object}  domain.Title
// @Failure      404  {object}  map[string]string
// @Router       /titles/{id} [get]
func (h *TitleHandler) Get(c echo.Context) error {
	title, err := h.catalog.GetTitle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, title)
}

// Create adds a title referencing existing category and genre slugs.
//
// @Summary      Create a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      titleRequest  true  "Title details"
// @Success      201   {object}  domain.Title
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /titles [post]
func (h *TitleHandler) Create(c echo.Context) error {
	var req titleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.catalog.CreateTitle(c.Request().Context(), ctxActor(c), ports.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, title)
}

// Update patches a title.
//
// @Summary      Update a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Title id"
// @Param        body  body      patchTitleRequest  true  "Fields to change"
// @Success      200   {object}  domain.Title
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /titles/{id} [patch]
func (h *TitleHandler) Update(c echo.Context) error {
	var req patchTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.catalog.UpdateTitle(c.Request().Context(), ctxActor(c), c.Param("id"), ports.TitlePatch{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, title)
}

// Delete removes a title and its cached rating.
//
// @Summary      Delete a title
// @Tags         titles
// @Security     BearerAuth
// @Param        id  path  string  true  "Title id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /titles/{id} [delete]
func (h *TitleHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteTitle(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
