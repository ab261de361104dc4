package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appmw "github.com/cfo-web/finance-gateway/internal/api/middleware"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// currentUser extracts the authenticated user from the request session and
// fast-fails with 401 before any service call when no trusted profile is
// available. Routes calling this must sit behind the session resolver and an
// authenticated gate.
func currentUser(c echo.Context) (*domain.UserRecord, error) {
	user := appmw.CurrentSession(c).User()
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return user, nil
}
