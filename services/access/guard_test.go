package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_PublicPathWithoutToken(t *testing.T) {
	policy := DefaultPolicy()
	for _, role := range []Role{RoleAdmin, RoleManager, RoleCashier, RoleKitchen, RoleGuest} {
		for path := range policy.PublicPaths {
			d := Decide(Session{Role: role}, path, policy)
			assert.True(t, d.Proceed, "role %s path %s", role, path)
		}
	}
}

func TestDecide_PublicPathWithToken(t *testing.T) {
	policy := DefaultPolicy()
	for _, role := range []Role{RoleAdmin, RoleManager, RoleCashier, RoleKitchen} {
		d := Decide(Session{Token: "tok", Role: role}, "/login", policy)
		assert.False(t, d.Proceed)
		assert.Equal(t, policy.HomeForRole[role], d.Redirect, "role %s", role)
	}
}

func TestDecide_NoTokenNonPublic(t *testing.T) {
	policy := DefaultPolicy()
	for _, path := range []string{"/dashboard", "/cashier/pos", "/kitchen", "/anything"} {
		d := Decide(Session{Role: RoleCashier}, path, policy)
		assert.False(t, d.Proceed)
		assert.Equal(t, policy.LoginPath, d.Redirect, "path %s", path)
	}
}

func TestDecide_AllowedPrefix(t *testing.T) {
	policy := DefaultPolicy()
	cases := []struct {
		role Role
		path string
	}{
		{RoleCashier, "/cashier/pos"},
		{RoleCashier, "/cashier/dashboard"},
		{RoleKitchen, "/kitchen/orders"},
		{RoleManager, "/reports/sales"},
		{RoleAdmin, "/settings"},
		{RoleAdmin, "/kitchen/orders"},
		{RoleGuest, "/forgot-password"},
	}
	for _, tc := range cases {
		d := Decide(Session{Token: "tok", Role: tc.role}, tc.path, policy)
		assert.True(t, d.Proceed, "role %s path %s", tc.role, tc.path)
	}
}

func TestDecide_DisallowedPathRedirectsHome(t *testing.T) {
	policy := DefaultPolicy()
	cases := []struct {
		role Role
		path string
		home string
	}{
		{RoleCashier, "/dashboard", "/cashier/dashboard"},
		{RoleKitchen, "/cashier/pos", "/kitchen"},
		{RoleManager, "/settings", "/dashboard"},
		{RoleGuest, "/dashboard", "/login"},
	}
	for _, tc := range cases {
		d := Decide(Session{Token: "tok", Role: tc.role}, tc.path, policy)
		assert.False(t, d.Proceed, "role %s path %s", tc.role, tc.path)
		assert.Equal(t, tc.home, d.Redirect)
	}
}

func TestDecide_UnknownRoleFallsBackToGuest(t *testing.T) {
	policy := DefaultPolicy()

	d := Decide(Session{Token: "tok", Role: Role("superuser")}, "/dashboard", policy)
	assert.False(t, d.Proceed)
	assert.Equal(t, policy.HomeForRole[RoleGuest], d.Redirect)

	d = Decide(Session{Token: "tok", Role: Role("superuser")}, "/forgot-password", policy)
	assert.True(t, d.Proceed)
}

// Prefix authorization is textual, not segment-aware. "/cashierXYZ" passing
// for the cashier role is shipped behavior.
func TestDecide_TextualPrefixMatch(t *testing.T) {
	policy := DefaultPolicy()
	d := Decide(Session{Token: "tok", Role: RoleCashier}, "/cashierXYZ", policy)
	assert.True(t, d.Proceed)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleKitchen, ParseRole("kitchen"))
	assert.Equal(t, RoleGuest, ParseRole(""))
	assert.Equal(t, RoleGuest, ParseRole("root"))
}
