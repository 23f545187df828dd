package domain

import "sort"

const (
	RoleUser    = "USER"
	RolePatient = "PATIENT"
)

// RoleSet is an unordered set of role labels.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from the given labels, dropping duplicates and blanks.
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		if r == "" {
			continue
		}
		set[r] = struct{}{}
	}
	return set
}

// DefaultRoles is the role set assigned to every newly registered user.
func DefaultRoles() RoleSet {
	return NewRoleSet(RoleUser)
}

// Has reports whether the set contains role.
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Slice returns the roles sorted, which keeps storage and token claims stable.
func (s RoleSet) Slice() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold exactly the same labels.
func (s RoleSet) Equal(other RoleSet) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if !other.Has(r) {
			return false
		}
	}
	return true
}

// User is a registered account.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"-"`
	Roles    RoleSet `json:"-"`
}

// IsNew reports whether the user has not been persisted yet.
func (u User) IsNew() bool {
	return u.ID == 0
}
