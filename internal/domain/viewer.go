package domain

import "strconv"

// Role classifies who is looking at the catalog.
type Role int

// Viewer roles, in increasing privilege order.
const (
	// RoleGuest is an un-embedded visit with no platform identity. All
	// guests on one device share the guest sentinel identity.
	RoleGuest Role = iota
	// RoleUser is a platform-authenticated visitor with a numeric id and
	// an optional handle.
	RoleUser
	// RoleOperator is the session-local elevated role unlocked by the
	// shared secret.
	RoleOperator
)

// GuestID is the sentinel identity used for favorites and ratings when the
// host platform supplies no user object.
const GuestID = "guest_user"

// Viewer is the person currently using the catalog.
type Viewer struct {
	Role   Role
	ID     int64  // platform numeric id, 0 for guests
	Handle string // platform handle, may be empty even for users
}

// Guest returns the shared guest viewer.
func Guest() Viewer {
	return Viewer{Role: RoleGuest}
}

// Operator returns an operator viewer.
func Operator() Viewer {
	return Viewer{Role: RoleOperator}
}

// Key returns the identity key used for favorites and ratings: the numeric
// id as a string for platform users, the guest sentinel otherwise.
func (v Viewer) Key() string {
	if v.Role == RoleUser && v.ID != 0 {
		return strconv.FormatInt(v.ID, 10)
	}
	return GuestID
}

// IsOperator reports whether the viewer holds the operator role.
func (v Viewer) IsOperator() bool {
	return v.Role == RoleOperator
}
