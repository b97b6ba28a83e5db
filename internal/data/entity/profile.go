package entity

import (
	"fmt"
	"time"

	"identity-service/pkg/utils"

	"github.com/google/uuid"
)

// Profile holds the personal data attached 1:1 to a user. It lives and
// dies with its owner.
type Profile struct {
	ID             uuid.UUID  `db:"id"`
	UserID         uuid.UUID  `db:"user_id" validate:"required"`
	FirstName      string     `db:"first_name" validate:"required,max=255"`
	LastName       string     `db:"last_name" validate:"required,max=255"`
	DateOfBirth    *time.Time `db:"date_of_birth"`
	Address        *string    `db:"address" validate:"omitempty,max=255"`
	ProfilePicture *string    `db:"profile_picture" validate:"omitempty,max=255"`
	Bio            *string    `db:"bio"`

	// Username of the owning user, populated by joined reads.
	Username string `db:"-"`
}

// NewProfile builds a profile for an existing user. First and last name
// are required; everything else can be filled in later.
func NewProfile(userID uuid.UUID, firstName, lastName string) (*Profile, error) {
	profile := &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
	}

	if fields := utils.ValidateStruct(profile); fields != nil {
		return nil, validationErr("profile", fields)
	}

	return profile, nil
}

func (p *Profile) String() string {
	owner := p.Username
	if owner == "" {
		owner = p.UserID.String()
	}
	return fmt.Sprintf("%s Profile", owner)
}
