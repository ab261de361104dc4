package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/api/metrics"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
	"github.com/cfo-web/finance-gateway/internal/core/service"
)

// Gate enforces a route's AccessRequirement. It resolves the session and the
// subscription state, hands both to the pure access gate, and maps the
// decision onto HTTP. Must sit behind the SessionResolver.
type Gate struct {
	subs ports.SubscriptionService
	log  zerolog.Logger
}

func NewGate(subs ports.SubscriptionService, log zerolog.Logger) *Gate {
	return &Gate{subs: subs, log: log}
}

func (g *Gate) Require(req domain.AccessRequirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			svc := SessionService(c)
			sess := svc.Session(ctx)

			// A token without a cached profile (evicted record, tampered
			// cookie) forces a live profile fetch so the role check has
			// something to work with. An upstream rejection here clears the
			// session and falls through to the redirect branch.
			if sess.IsAuthenticated() && sess.User() == nil {
				if _, err := svc.CurrentUser(ctx); err != nil {
					if errors.Is(err, domain.ErrSessionExpired) {
						sess = domain.Anonymous()
					} else {
						g.log.Warn().Err(err).Msg("gate: profile fetch failed, proceeding without role")
					}
				} else {
					sess = svc.Session(ctx)
				}
			}

			sub := g.subscriptionState(c, req, sess)
			decision := service.EvaluateAccess(req, sess, sub)
			metrics.GateDecisionsTotal.WithLabelValues(decision.String(), c.Path()).Inc()

			switch decision {
			case domain.DecisionAllow:
				return next(c)
			case domain.DecisionRedirectToLogin:
				return c.Redirect(http.StatusFound, "/login")
			case domain.DecisionDenyAdminRequired:
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":  "access denied",
					"detail": "You don't have permission to access this page.",
				})
			case domain.DecisionRequireSubscription:
				return c.JSON(http.StatusPaymentRequired, map[string]string{
					"error":  "subscription required",
					"detail": "An active subscription is required to view this content.",
				})
			default:
				// The gate only returns Pending when handed an unresolved
				// state, and subscriptionState always resolves before
				// evaluating.
				return echo.NewHTTPError(http.StatusServiceUnavailable, "subscription check unresolved")
			}
		}
	}
}

// subscriptionState resolves the tri-state for the gate. The cache answers
// instantly; a miss blocks on the fetch, which itself fails closed.
func (g *Gate) subscriptionState(c echo.Context, req domain.AccessRequirement, sess domain.Session) domain.SubscriptionState {
	if !req.RequireSubscription || sess.Role().IsAdmin() {
		return domain.SubscriptionStateInactiveKnown
	}
	user := sess.User()
	if user == nil {
		return domain.SubscriptionStateInactiveKnown
	}

	ctx := c.Request().Context()
	if state := g.subs.State(ctx, user.ID); state != domain.SubscriptionStatePending {
		return state
	}
	return domain.KnownState(g.subs.ActiveStatus(ctx, user.ID))
}
