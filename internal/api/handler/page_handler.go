package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appmw "github.com/cfo-web/finance-gateway/internal/api/middleware"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// PageHandler serves the page-data payloads behind the gated route groups.
// The SPA shell fetches these after navigation; what renders on each of them
// is decided entirely by the redirector and the access gate in front.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageResponse struct {
	Page string             `json:"page"`
	User *domain.UserRecord `json:"user,omitempty"`
}

func (h *PageHandler) page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageResponse{
			Page: name,
			User: appmw.CurrentSession(c).User(),
		})
	}
}

// Login serves the unauthenticated login page payload. An authenticated
// visitor never reaches it; the redirector bounces them to /finance first.
func (h *PageHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "login"})
}

// Register serves the registration page payload.
func (h *PageHandler) Register(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "register"})
}

func (h *PageHandler) Dashboard(c echo.Context) error { return h.page("dashboard")(c) }
func (h *PageHandler) Finance(c echo.Context) error   { return h.page("finance")(c) }
func (h *PageHandler) Upload(c echo.Context) error    { return h.page("finance/upload")(c) }
func (h *PageHandler) Calendar(c echo.Context) error  { return h.page("calendar")(c) }
func (h *PageHandler) Admin(c echo.Context) error     { return h.page("admin")(c) }
