package domain

// Role identifies the kind of authenticated caller. Role values travel
// inside token claims, so they must match the wire contract exactly.
type Role string

const (
	RoleOwner    Role = "Owner"
	RoleEmployee Role = "Employee"
	RoleGuest    Role = "Guest"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleEmployee, RoleGuest:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to the manage console.
func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleEmployee
}
