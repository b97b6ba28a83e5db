package entity

import "fmt"

// RoleID is the small-integer primary key of the seeded role rows.
type RoleID int16

const (
	RoleAdmin  RoleID = 1
	RoleEditor RoleID = 2
	RoleUser   RoleID = 3
)

var roleLabels = map[RoleID]string{
	RoleAdmin:  "Admin",
	RoleEditor: "Editor",
	RoleUser:   "User",
}

func (id RoleID) Valid() bool {
	_, ok := roleLabels[id]
	return ok
}

// Label returns the human-readable name for the role ID.
func (id RoleID) Label() string {
	if label, ok := roleLabels[id]; ok {
		return label
	}
	return fmt.Sprintf("Role(%d)", int16(id))
}

// Role is immutable reference data, seeded once by migration and shared
// across users. Deleting a role only removes membership links.
type Role struct {
	ID   RoleID `db:"id"`
	Name string `db:"name"`
}

func (r Role) String() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID.Label()
}
