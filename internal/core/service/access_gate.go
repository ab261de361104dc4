package service

import "github.com/cfo-web/finance-gateway/internal/core/domain"

// EvaluateAccess decides what a route renders for a given session. It is pure
// and synchronous; the caller resolves the subscription state and re-invokes
// on DecisionPending.
//
// Check order, first match wins:
//
//  1. unauthenticated on an authenticated route → redirect to login. The
//     redirect preempts every other check so no denied or upsell content
//     flashes before the bounce.
//  2. admin role → allow. Admins bypass both the explicit admin requirement
//     and subscription gating; an admin is never asked to subscribe.
//  3. admin required but role is not admin → deny with an in-place message,
//     never a redirect. This runs before the subscription check so a
//     non-admin sees "access denied" on an admin page, not an upsell.
//  4. subscription required → pending, upsell, or allow per the tri-state.
//  5. allow.
func EvaluateAccess(req domain.AccessRequirement, sess domain.Session, sub domain.SubscriptionState) domain.Decision {
	if req.RequireAuthenticated && !sess.IsAuthenticated() {
		return domain.DecisionRedirectToLogin
	}

	if sess.Role().IsAdmin() {
		return domain.DecisionAllow
	}

	if req.RequireAdmin {
		return domain.DecisionDenyAdminRequired
	}

	if req.RequireSubscription {
		switch sub {
		case domain.SubscriptionStatePending:
			return domain.DecisionPending
		case domain.SubscriptionStateActiveKnown:
			return domain.DecisionAllow
		default:
			return domain.DecisionRequireSubscription
		}
	}

	return domain.DecisionAllow
}
