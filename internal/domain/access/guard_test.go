package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAccess(t *testing.T) {
	owner := &Principal{Token: "tok", Role: RoleOwner}
	user := &Principal{Token: "tok", Role: RoleUser}

	cases := []struct {
		name    string
		user    *Principal
		allowed []Role
		want    Decision
	}{
		{"anonymous", nil, []Role{RoleUser}, Decision{Kind: RedirectLogin, Target: "/login"}},
		{"token without role", &Principal{Token: "tok"}, nil, Decision{Kind: RedirectLogin, Target: "/login"}},
		{"role without token", &Principal{Role: RoleUser}, nil, Decision{Kind: RedirectLogin, Target: "/login"}},
		{"any authenticated", user, nil, Decision{Kind: Allow}},
		{"matching role", owner, []Role{RoleOwner}, Decision{Kind: Allow}},
		{"one of several", user, []Role{RoleOwner, RoleUser}, Decision{Kind: Allow}},
		{"owner on user page", owner, []Role{RoleUser}, Decision{Kind: RedirectRole, Target: "/dashboard/owner"}},
		{"user on owner page", user, []Role{RoleOwner}, Decision{Kind: RedirectRole, Target: "/"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckAccess(tc.user, tc.allowed))
		})
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Decision{Kind: Allow}.Err())
	assert.ErrorIs(t, Decision{Kind: RedirectLogin}.Err(), ErrUnauthenticated)
	assert.ErrorIs(t, Decision{Kind: RedirectRole, Target: "/"}.Err(), ErrForbidden)
}

func TestGuard_CustomLoginAndUnknownRoleHome(t *testing.T) {
	g := Guard{LoginPath: "/auth/login"}
	assert.Equal(t, "/auth/login", g.CheckAccess(nil, nil).Target)

	stranger := &Principal{Token: "tok", Role: "AUDITOR"}
	assert.Equal(t, Decision{Kind: RedirectRole, Target: "/"}, g.CheckAccess(stranger, []Role{RoleOwner}))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleOwner, NormalizeRole(" tenant "))
	assert.Equal(t, RoleUser, NormalizeRole("user"))

	role, err := ParseRole("owner")
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, role)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRouteTable_MatchLongestPrefix(t *testing.T) {
	routes := DefaultRoutes()

	rule, ok := routes.Match("/dashboard/owner/properties/12?tab=rooms")
	require.True(t, ok)
	assert.Equal(t, []Role{RoleOwner}, rule.Roles)

	_, ok = routes.Match("/dashboard/ownerish")
	assert.False(t, ok)

	_, ok = routes.Match("/properties/9")
	assert.False(t, ok)
}

func TestGuard_CheckPath(t *testing.T) {
	g := DefaultGuard()
	routes := DefaultRoutes()
	user := &Principal{Token: "tok", Role: RoleUser}

	assert.True(t, g.CheckPath(routes, nil, "/properties/1").Allowed())
	assert.True(t, g.CheckPath(routes, nil, "/login").Allowed())
	assert.Equal(t, RedirectLogin, g.CheckPath(routes, nil, "/profile").Kind)
	assert.True(t, g.CheckPath(routes, user, "/profile/").Allowed())
	assert.Equal(t, Decision{Kind: RedirectRole, Target: "/"}, g.CheckPath(routes, user, "/dashboard/owner"))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	p := &Principal{Token: "tok", Role: RoleUser}
	got, ok := PrincipalFromContext(ContextWithPrincipal(context.Background(), p))
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestDecisionAsError(t *testing.T) {
	assert.NoError(t, Decision{Kind: Allow}.AsError())

	err := CheckAccess(&Principal{Token: "tok", Role: RoleOwner}, []Role{RoleUser}).AsError()
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "/dashboard/owner", denied.Decision.Target)
	assert.ErrorIs(t, err, ErrForbidden)
}
