package access

// Role labels which dashboard surfaces a session may reach.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
	RoleKitchen Role = "kitchen"
	RoleGuest   Role = "guest"
)

// ParseRole maps a raw role label to a known Role. Anything unrecognized
// falls back to guest.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin, RoleManager, RoleCashier, RoleKitchen:
		return Role(raw)
	default:
		return RoleGuest
	}
}

// Session is the caller's view of their authentication state, read fresh on
// every navigation. A non-empty Token implies authenticated.
type Session struct {
	Token string
	Role  Role
}

// RoutePolicy is the static route-access table, read-only after initialization.
type RoutePolicy struct {
	// AllowedPrefixes maps a role to the path prefixes it may open.
	AllowedPrefixes map[Role][]string
	// HomeForRole maps each role to its default landing path.
	HomeForRole map[Role]string
	// PublicPaths are exact paths reachable without a session.
	PublicPaths map[string]struct{}
	// LoginPath is where unauthenticated callers are sent.
	LoginPath string
}

// DefaultPolicy returns the production route table.
func DefaultPolicy() *RoutePolicy {
	return &RoutePolicy{
		AllowedPrefixes: map[Role][]string{
			RoleAdmin:   {"/dashboard", "/staff", "/reports", "/settings", "/cashier", "/kitchen"},
			RoleManager: {"/dashboard", "/reports"},
			RoleCashier: {"/cashier"},
			RoleKitchen: {"/kitchen"},
			RoleGuest:   {"/forgot-password"},
		},
		HomeForRole: map[Role]string{
			RoleAdmin:   "/dashboard",
			RoleManager: "/dashboard",
			RoleCashier: "/cashier/dashboard",
			RoleKitchen: "/kitchen",
			RoleGuest:   "/login",
		},
		PublicPaths: map[string]struct{}{
			"/":        {},
			"/login":   {},
			"/menu":    {},
			"/contact": {},
		},
		LoginPath: "/login",
	}
}
