package auth

import (
	"context"
	"slices"
	"strings"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// ReadRoles may call GET endpoints; WriteRoles may change data.
var (
	ReadRoles  = []string{RoleUser, RoleAdmin}
	WriteRoles = []string{RoleAdmin}
)

// Principal is the authenticated caller.
type Principal struct {
	Name  string
	Roles []string
}

func (p Principal) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if slices.Contains(p.Roles, normalizeRole(role)) {
			return true
		}
	}
	return false
}

// normalizeRole accepts both "admin" and "ROLE_ADMIN" spellings.
func normalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
