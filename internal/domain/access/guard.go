package access

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("access: authentication required")
	ErrForbidden       = errors.New("access: insufficient permissions")
)

type DecisionKind string

const (
	Allow         DecisionKind = "allow"
	RedirectLogin DecisionKind = "redirect_login"
	RedirectRole  DecisionKind = "redirect_role"
)

// Decision is the outcome of a guard check. Target is set for redirects.
type Decision struct {
	Kind   DecisionKind `json:"kind"`
	Target string       `json:"target,omitempty"`
}

func (d Decision) Allowed() bool { return d.Kind == Allow }

// Err maps a denial to the matching sentinel; nil when allowed.
func (d Decision) Err() error {
	switch d.Kind {
	case Allow:
		return nil
	case RedirectLogin:
		return ErrUnauthenticated
	default:
		return ErrForbidden
	}
}

const (
	DefaultLoginPath = "/login"
	DefaultHome      = "/"
)

type Guard struct {
	LoginPath string
	Homes     map[Role]string
}

func DefaultGuard() Guard {
	return Guard{
		LoginPath: DefaultLoginPath,
		Homes: map[Role]string{
			RoleUser:  "/",
			RoleOwner: "/dashboard/owner",
		},
	}
}

// CheckAccess decides whether user may see something restricted to
// allowedRoles. No roles means any authenticated user.
func (g Guard) CheckAccess(user *Principal, allowedRoles []Role) Decision {
	if !user.Authenticated() {
		return Decision{Kind: RedirectLogin, Target: g.loginPath()}
	}
	if len(allowedRoles) == 0 || user.HasAnyRole(allowedRoles) {
		return Decision{Kind: Allow}
	}
	return Decision{Kind: RedirectRole, Target: g.HomeFor(user.Role)}
}

func (g Guard) HomeFor(role Role) string {
	if home, ok := g.Homes[NormalizeRole(role)]; ok && home != "" {
		return home
	}
	return DefaultHome
}

func (g Guard) loginPath() string {
	if g.LoginPath != "" {
		return g.LoginPath
	}
	return DefaultLoginPath
}

func CheckAccess(user *Principal, allowedRoles []Role) Decision {
	return DefaultGuard().CheckAccess(user, allowedRoles)
}

type principalKey struct{}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// DeniedError carries the redirect decision through error returns.
type DeniedError struct {
	Decision Decision
}

func (e *DeniedError) Error() string { return e.Decision.Err().Error() }

func (e *DeniedError) Unwrap() error { return e.Decision.Err() }

// AsError returns nil for Allow and a *DeniedError otherwise.
func (d Decision) AsError() error {
	if d.Allowed() {
		return nil
	}
	return &DeniedError{Decision: d}
}
