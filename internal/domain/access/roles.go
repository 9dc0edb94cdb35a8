package access

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("access: invalid role")

type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
)

// KnownRoles lists the roles the marketplace issues.
var KnownRoles = []Role{RoleUser, RoleOwner}

func ParseRole(raw string) (Role, error) {
	role := NormalizeRole(Role(raw))
	for _, known := range KnownRoles {
		if role == known {
			return role, nil
		}
	}
	return "", ErrInvalidRole
}

func NormalizeRole(role Role) Role {
	switch strings.ToUpper(strings.TrimSpace(string(role))) {
	case "USER", "GUEST":
		return RoleUser
	case "OWNER", "TENANT", "HOST":
		return RoleOwner
	default:
		return Role(strings.ToUpper(strings.TrimSpace(string(role))))
	}
}

// Principal is the authenticated side of the session cookie pair.
type Principal struct {
	Token string
	Role  Role
}

func (p *Principal) Authenticated() bool {
	return p != nil && strings.TrimSpace(p.Token) != "" && p.Role != ""
}

func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	role = NormalizeRole(role)
	return role != "" && NormalizeRole(p.Role) == role
}

func (p *Principal) HasAnyRole(roles []Role) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}
