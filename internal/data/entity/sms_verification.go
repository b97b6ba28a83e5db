package entity

import (
	"time"

	"identity-service/pkg/utils"

	"github.com/google/uuid"
)

// SMSVerification mirrors EmailVerification, keyed on a phone number.
type SMSVerification struct {
	ID               uuid.UUID  `db:"id"`
	UserID           uuid.UUID  `db:"user_id" validate:"required"`
	PhoneNumber      string     `db:"phone_number" validate:"required,min=7,max=15"`
	VerificationCode string     `db:"verification_code" validate:"required,numeric,max=6"`
	IsVerified       bool       `db:"is_verified"`
	SentAt           time.Time  `db:"sent_at"`
	VerifiedAt       *time.Time `db:"verified_at"`
	ExpiresAt        time.Time  `db:"expires_at" validate:"required"`
}

// NewSMSVerification records a code issued for the given phone number.
// sent_at defaults to now.
func NewSMSVerification(userID uuid.UUID, phoneNumber, code string, expiresAt time.Time) (*SMSVerification, error) {
	verification := &SMSVerification{
		ID:               uuid.New(),
		UserID:           userID,
		PhoneNumber:      phoneNumber,
		VerificationCode: code,
		SentAt:           time.Now().UTC(),
		ExpiresAt:        expiresAt,
	}

	if fields := utils.ValidateStruct(verification); fields != nil {
		return nil, validationErr("sms verification", fields)
	}

	return verification, nil
}

// Pending reports whether the record can still be consumed at the given
// instant.
func (v *SMSVerification) Pending(now time.Time) bool {
	return !v.IsVerified && now.Before(v.ExpiresAt)
}

func (v *SMSVerification) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

func (v *SMSVerification) String() string {
	return "SMS verification for " + v.PhoneNumber
}
