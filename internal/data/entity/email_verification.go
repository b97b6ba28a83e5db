package entity

import (
	"time"

	"identity-service/pkg/utils"

	"github.com/google/uuid"
)

// EmailVerification is one attempt to prove control of an email address.
// It is valid for consumption only while is_verified is false and the
// expiry lies in the future; once verified it becomes immutable history.
// Nothing in the schema stops several pending codes per user, that policy
// belongs to the issuing workflow.
type EmailVerification struct {
	ID               uuid.UUID  `db:"id"`
	UserID           uuid.UUID  `db:"user_id" validate:"required"`
	Email            string     `db:"email" validate:"required,email,max=255"`
	VerificationCode string     `db:"verification_code" validate:"required,numeric,max=6"`
	IsVerified       bool       `db:"is_verified"`
	SentAt           time.Time  `db:"sent_at"`
	VerifiedAt       *time.Time `db:"verified_at"`
	ExpiresAt        time.Time  `db:"expires_at" validate:"required"`
}

// NewEmailVerification records a code issued for the given address. The
// code itself comes from the caller, generation is not this layer's job.
// sent_at defaults to now.
func NewEmailVerification(userID uuid.UUID, email, code string, expiresAt time.Time) (*EmailVerification, error) {
	verification := &EmailVerification{
		ID:               uuid.New(),
		UserID:           userID,
		Email:            email,
		VerificationCode: code,
		SentAt:           time.Now().UTC(),
		ExpiresAt:        expiresAt,
	}

	if fields := utils.ValidateStruct(verification); fields != nil {
		return nil, validationErr("email verification", fields)
	}

	return verification, nil
}

// Pending reports whether the record can still be consumed at the given
// instant. Expiry is never flagged in storage, callers compare the clock.
func (v *EmailVerification) Pending(now time.Time) bool {
	return !v.IsVerified && now.Before(v.ExpiresAt)
}

func (v *EmailVerification) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

func (v *EmailVerification) String() string {
	return "Email verification for " + v.Email
}
