package rbac

import "strings"

// Service resolves effective permissions for a role. Grants come from the
// static table in domain.go.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// EffectivePermissions returns the permissions granted to the role, nil for
// an unknown or empty role.
func (s *Service) EffectivePermissions(role string) []string {
	perms, ok := rolePermissions[normalizeRole(role)]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// KnownRole reports whether the role has any grants at all.
func (s *Service) KnownRole(role string) bool {
	_, ok := rolePermissions[normalizeRole(role)]
	return ok
}

func normalizeRole(role string) string {
	return strings.TrimSpace(strings.ToLower(role))
}
