package entity

import (
	"time"

	"identity-service/pkg/utils"

	"github.com/google/uuid"
)

// User is the aggregation root of the identity schema. Profile,
// verifications, password resets and audit logs all hang off it and are
// cascade-deleted with it. Username is the authentication identifier;
// email and phone number are optional but globally unique when present.
type User struct {
	ID          uuid.UUID `db:"id"`
	Username    string    `db:"username" validate:"required,max=255"`
	Email       *string   `db:"email" validate:"omitempty,email,max=255"`
	PhoneNumber *string   `db:"phone_number" validate:"omitempty,min=7,max=15"`
	IsActive    bool      `db:"is_active"`
	IsVerified  bool      `db:"is_verified"`
	IsStaff     bool      `db:"is_staff"`
	DateJoined  time.Time `db:"date_joined"`

	// Loaded from the user_roles link table, never written directly.
	Roles []Role `db:"-"`
}

// NewUser builds a registration-ready user: random ID so account
// identifiers cannot be enumerated, active by default, unverified,
// date_joined stamped now. Email and phone may both be nil for
// incomplete accounts.
func NewUser(username string, email, phoneNumber *string) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		Username:    username,
		Email:       email,
		PhoneNumber: phoneNumber,
		IsActive:    true,
		DateJoined:  time.Now().UTC(),
	}

	if fields := utils.ValidateStruct(user); fields != nil {
		return nil, validationErr("user", fields)
	}

	return user, nil
}

// HasRole reports membership in the loaded role set.
func (u *User) HasRole(id RoleID) bool {
	for _, role := range u.Roles {
		if role.ID == id {
			return true
		}
	}
	return false
}

func (u *User) String() string {
	return u.Username
}
