package ports

import (
	"context"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// Notifier carries user-facing notifications out of the service layer. The
// HTTP adapter collects them per request and renders them in the response
// envelope; tests capture them directly.
type Notifier interface {
	Success(ctx context.Context, message string)
	Failure(ctx context.Context, kind domain.FailureKind, message string)
}
