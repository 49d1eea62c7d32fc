package access

import "strings"

// Decision is the outcome of evaluating one navigation attempt.
type Decision struct {
	Proceed  bool
	Redirect string
}

// RedirectTo builds a redirect decision.
func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// Decide evaluates one navigation attempt against the route policy. It is
// pure and idempotent: safe to re-run on every navigation.
//
// Prefix authorization is a plain starts-with test, not path-segment aware:
// "/cashier" also matches "/cashierXYZ". That mirrors the shipped behavior
// and must not be tightened without a policy change.
func Decide(sess Session, requestedPath string, policy *RoutePolicy) Decision {
	role := sess.Role
	if _, known := policy.HomeForRole[role]; !known {
		role = RoleGuest
	}

	if _, public := policy.PublicPaths[requestedPath]; public {
		// Authenticated callers have no business on public-only pages.
		if sess.Token != "" {
			return RedirectTo(policy.HomeForRole[role])
		}
		return Decision{Proceed: true}
	}

	if sess.Token == "" {
		return RedirectTo(policy.LoginPath)
	}

	for _, prefix := range policy.AllowedPrefixes[role] {
		if strings.HasPrefix(requestedPath, prefix) {
			return Decision{Proceed: true}
		}
	}

	return RedirectTo(policy.HomeForRole[role])
}
