package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cfo-web/finance-gateway/internal/api/metrics"
	appmw "github.com/cfo-web/finance-gateway/internal/api/middleware"
	"github.com/cfo-web/finance-gateway/internal/api/notice"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// AuthHandler exposes the session operations: login, logout, current user.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Success bool               `json:"success"`
	User    *domain.UserRecord `json:"user,omitempty"`
	Notices []notice.Notice    `json:"notices,omitempty"`
}

// Login exchanges credentials for a persisted session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  sessionResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	svc := appmw.SessionService(c)
	notices := appmw.Notices(c)

	ok := svc.Login(ctx, domain.LoginCredentials{Email: req.Email, Password: req.Password})
	if !ok {
		status, result := loginFailure(notices.Last())
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return c.JSON(status, sessionResponse{Success: false, Notices: notices.Drain()})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		Success: true,
		User:    svc.Session(ctx).User(),
		Notices: notices.Drain(),
	})
}

// loginFailure maps the failure notification onto an HTTP status and a
// metrics label.
func loginFailure(last *notice.Notice) (int, string) {
	if last == nil {
		return http.StatusInternalServerError, string(domain.KindUnexpected)
	}
	switch last.Category {
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized, string(last.Category)
	case domain.KindNetworkUnreachable:
		return http.StatusBadGateway, string(last.Category)
	case domain.KindStorageUnavailable:
		return http.StatusServiceUnavailable, string(last.Category)
	default:
		return http.StatusInternalServerError, string(domain.KindUnexpected)
	}
}

// Logout clears the session. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	appmw.SessionService(c).Logout(c.Request().Context())
	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, sessionResponse{Success: true, Notices: appmw.Notices(c).Drain()})
}

// Me returns the authenticated user's profile, fetched upstream.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.UserRecord
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := appmw.SessionService(c).CurrentUser(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
