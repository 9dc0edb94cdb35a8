package access

import "strings"

// Rule gates every page under Prefix. Public rules skip the guard.
type Rule struct {
	Prefix string
	Roles  []Role
	Public bool
}

type RouteTable []Rule

func DefaultRoutes() RouteTable {
	return RouteTable{
		{Prefix: "/dashboard/owner", Roles: []Role{RoleOwner}},
		{Prefix: "/dashboard/user", Roles: []Role{RoleUser}},
		{Prefix: "/reservations", Roles: []Role{RoleUser}},
		{Prefix: "/profile"},
		{Prefix: "/login", Public: true},
		{Prefix: "/register", Public: true},
	}
}

// Match returns the rule with the longest prefix covering path.
func (t RouteTable) Match(path string) (Rule, bool) {
	path = cleanPath(path)
	var best Rule
	found := false
	for _, rule := range t {
		prefix := cleanPath(rule.Prefix)
		if !underPrefix(path, prefix) {
			continue
		}
		if !found || len(prefix) > len(cleanPath(best.Prefix)) {
			best = rule
			found = true
		}
	}
	return best, found
}

// CheckPath evaluates the page at path; unmatched and public pages are allowed.
func (g Guard) CheckPath(routes RouteTable, user *Principal, path string) Decision {
	rule, ok := routes.Match(path)
	if !ok || rule.Public {
		return Decision{Kind: Allow}
	}
	return g.CheckAccess(user, rule.Roles)
}

func underPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
