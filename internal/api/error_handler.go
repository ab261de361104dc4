package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler maps domain errors to HTTP responses. Handlers return
// errors; this is the single place the taxonomy becomes status codes.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			msg, ok := httpErr.Message.(string)
			if !ok {
				msg = http.StatusText(httpErr.Code)
			}
			_ = c.JSON(httpErr.Code, errorResponse{Error: msg})
			return
		}

		code := http.StatusInternalServerError
		kind := string(domain.Classify(err))
		switch {
		case errors.Is(err, domain.ErrUnauthenticated),
			errors.Is(err, domain.ErrSessionExpired),
			errors.Is(err, domain.ErrInvalidCredentials):
			code = http.StatusUnauthorized
		case errors.Is(err, domain.ErrAdminRequired):
			code, kind = http.StatusForbidden, ""
		case errors.Is(err, domain.ErrSubscriptionRequired):
			code, kind = http.StatusPaymentRequired, ""
		case errors.Is(err, domain.ErrSubscriptionNotFound),
			errors.Is(err, domain.ErrTodoNotFound):
			code, kind = http.StatusNotFound, ""
		case errors.Is(err, domain.ErrInvalidReorder):
			code, kind = http.StatusUnprocessableEntity, ""
		case errors.Is(err, domain.ErrEndpointNotImplemented):
			code, kind = http.StatusNotImplemented, ""
		case errors.Is(err, domain.ErrNetworkUnreachable):
			code = http.StatusBadGateway
		case errors.Is(err, domain.ErrStorageUnavailable):
			code = http.StatusServiceUnavailable
		}

		if code >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}

		_ = c.JSON(code, errorResponse{
			Error: err.Error(),
			Kind:  kind,
		})
	}
}
