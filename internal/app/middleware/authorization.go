package middleware

import (
	"context"

	"prorent/internal/domain/access"
)

type Authorizer interface {
	Authorize(ctx context.Context, message any) error
}

// RoleRestricted is implemented by messages only some roles may send.
// An empty slice admits any authenticated principal.
type RoleRestricted interface {
	AllowedRoles() []access.Role
}

// RoleAuthorizer applies the access guard to RoleRestricted messages using the
// principal stored in the context. Other messages pass through.
type RoleAuthorizer struct {
	Guard access.Guard
}

func (a RoleAuthorizer) Authorize(ctx context.Context, message any) error {
	restricted, ok := message.(RoleRestricted)
	if !ok {
		return nil
	}
	principal, _ := access.PrincipalFromContext(ctx)
	return a.Guard.CheckAccess(principal, restricted.AllowedRoles()).AsError()
}

func Authorization(a Authorizer) CommandMiddleware {
	if a == nil {
		panic("middleware: authorizer required")
	}
	return commandCheck(a.Authorize)
}

func QueryAuthorization(a Authorizer) QueryMiddleware {
	if a == nil {
		panic("middleware: authorizer required")
	}
	return queryCheck(a.Authorize)
}
