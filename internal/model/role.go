package model

import "strings"

// Role is the stored account variant tag.
type Role string

const (
	RoleAdmin            Role = "Admin"
	RoleInventoryManager Role = "InventoryManager"
	RoleSupplier         Role = "Supplier"
)

// CreatableRoles lists the roles signup accepts.
var CreatableRoles = []Role{RoleAdmin, RoleInventoryManager, RoleSupplier}

// ParseRole returns the creatable role named by s, ignoring surrounding whitespace.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimSpace(s))
	for _, c := range CreatableRoles {
		if r == c {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
