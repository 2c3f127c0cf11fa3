package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/api/metrics"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// AuthHandler serves the passwordless signup and token-exchange endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers (or re-registers) an account and emails a confirmation code.
//
// @Summary      Request a confirmation code
// @Description  Creates the account when it does not exist yet; repeating the
// @Description  exact same (email, username) pair simply sends a fresh code.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup payload"
// @Success      200   {object}  signupResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Signup(c.Request().Context(), req.Username, req.Email); err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusOK, signupResponse{Email: req.Email, Username: req.Username})
}

// IssueToken exchanges a confirmation code for a bearer token.
//
// @Summary      Obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token exchange payload"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/token [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.IssueToken(c.Request().Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
