package service

import (
	"testing"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

func userSession(role domain.Role) domain.Session {
	return domain.NewSession("access-token", "refresh-token", &domain.UserRecord{
		ID:   "user-1",
		Role: role,
	})
}

func TestEvaluateAccess_UnauthenticatedAlwaysRedirects(t *testing.T) {
	// The redirect preempts every other check, for every requirement combo
	// and every subscription state.
	requirements := []domain.AccessRequirement{
		{RequireAuthenticated: true},
		{RequireAuthenticated: true, RequireAdmin: true},
		{RequireAuthenticated: true, RequireSubscription: true},
		{RequireAuthenticated: true, RequireAdmin: true, RequireSubscription: true},
	}
	states := []domain.SubscriptionState{
		domain.SubscriptionStatePending,
		domain.SubscriptionStateInactiveKnown,
		domain.SubscriptionStateActiveKnown,
	}

	for _, req := range requirements {
		for _, sub := range states {
			got := EvaluateAccess(req, domain.Anonymous(), sub)
			if got != domain.DecisionRedirectToLogin {
				t.Fatalf("req %+v sub %v: expected redirect, got %v", req, sub, got)
			}
		}
	}
}

func TestEvaluateAccess_TokenWithoutProfileRedirectsNothing(t *testing.T) {
	// A bare token with no cached profile is still authenticated; it passes
	// the auth check and falls through to the role checks with RoleUnknown.
	sess := domain.NewSession("access-token", "", nil)

	got := EvaluateAccess(domain.AccessRequirement{RequireAuthenticated: true}, sess, domain.SubscriptionStateInactiveKnown)
	if got != domain.DecisionAllow {
		t.Fatalf("expected allow, got %v", got)
	}
}

func TestEvaluateAccess_AdminBypassesEverything(t *testing.T) {
	sess := userSession(domain.RoleAdmin)
	req := domain.AccessRequirement{
		RequireAuthenticated: true,
		RequireAdmin:         true,
		RequireSubscription:  true,
	}

	// Even an unresolved subscription state never blocks an admin.
	got := EvaluateAccess(req, sess, domain.SubscriptionStatePending)
	if got != domain.DecisionAllow {
		t.Fatalf("expected allow, got %v", got)
	}
}

func TestEvaluateAccess_AdminDenyBeatsSubscription(t *testing.T) {
	// A non-admin with no subscription on an admin+subscription route sees
	// the denial, not the upsell.
	sess := userSession(domain.RoleUser)
	req := domain.AccessRequirement{
		RequireAuthenticated: true,
		RequireAdmin:         true,
		RequireSubscription:  true,
	}

	got := EvaluateAccess(req, sess, domain.SubscriptionStateInactiveKnown)
	if got != domain.DecisionDenyAdminRequired {
		t.Fatalf("expected admin denial, got %v", got)
	}
}

func TestEvaluateAccess_SubscriptionTriState(t *testing.T) {
	sess := userSession(domain.RoleUser)
	req := domain.DefaultRequirement()

	cases := []struct {
		name string
		sub  domain.SubscriptionState
		want domain.Decision
	}{
		{"pending", domain.SubscriptionStatePending, domain.DecisionPending},
		{"inactive", domain.SubscriptionStateInactiveKnown, domain.DecisionRequireSubscription},
		{"active", domain.SubscriptionStateActiveKnown, domain.DecisionAllow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateAccess(req, sess, tc.sub)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEvaluateAccess_NoSubscriptionRequirementIgnoresState(t *testing.T) {
	sess := userSession(domain.RoleUser)
	req := domain.AccessRequirement{RequireAuthenticated: true}

	got := EvaluateAccess(req, sess, domain.SubscriptionStateInactiveKnown)
	if got != domain.DecisionAllow {
		t.Fatalf("expected allow, got %v", got)
	}
}

func TestEvaluateAccess_UnprotectedRouteAllowsAnonymous(t *testing.T) {
	got := EvaluateAccess(domain.AccessRequirement{}, domain.Anonymous(), domain.SubscriptionStatePending)
	if got != domain.DecisionAllow {
		t.Fatalf("expected allow, got %v", got)
	}
}
