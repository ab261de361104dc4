package domain

// AccessRequirement is a per-route declaration of what a page demands from the
// session. The zero value is NOT the default policy; use DefaultRequirement,
// which matches the dashboard's baseline (authenticated + subscribed).
type AccessRequirement struct {
	RequireAuthenticated bool
	RequireAdmin         bool
	RequireSubscription  bool
}

// DefaultRequirement is the baseline protection for dashboard pages.
func DefaultRequirement() AccessRequirement {
	return AccessRequirement{RequireAuthenticated: true, RequireSubscription: true}
}

// Decision is the access gate's verdict for one request.
type Decision int

const (
	// DecisionAllow renders the page.
	DecisionAllow Decision = iota
	// DecisionRedirectToLogin bounces the request to the login page before
	// anything else renders.
	DecisionRedirectToLogin
	// DecisionDenyAdminRequired renders an access-denied message in place,
	// never a redirect.
	DecisionDenyAdminRequired
	// DecisionPending means the subscription lookup is still in flight;
	// re-evaluate when it resolves.
	DecisionPending
	// DecisionRequireSubscription renders the upsell or caller-supplied
	// fallback content.
	DecisionRequireSubscription
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectToLogin:
		return "redirect_to_login"
	case DecisionDenyAdminRequired:
		return "deny_admin_required"
	case DecisionPending:
		return "pending"
	case DecisionRequireSubscription:
		return "require_subscription"
	default:
		return "unknown"
	}
}
