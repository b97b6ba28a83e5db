package entity

import (
	"time"

	"identity-service/pkg/utils"

	"github.com/google/uuid"
)

// PasswordReset is a single-use credential for setting a new password.
// Tokens are never regenerated in place: a new request creates a new row.
type PasswordReset struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id" validate:"required"`
	ResetToken string     `db:"reset_token" validate:"required,min=32,max=64"`
	IsUsed     bool       `db:"is_used"`
	SentAt     time.Time  `db:"sent_at"`
	ExpiresAt  time.Time  `db:"expires_at" validate:"required"`
	UsedAt     *time.Time `db:"used_at"`

	// Email of the owning user, populated by joined reads.
	Email string `db:"-"`
}

// NewPasswordReset records a reset token issued to the user. The opaque
// token comes from the caller and must be at least 32 characters so it
// cannot be guessed. sent_at defaults to now.
func NewPasswordReset(userID uuid.UUID, resetToken string, expiresAt time.Time) (*PasswordReset, error) {
	reset := &PasswordReset{
		ID:         uuid.New(),
		UserID:     userID,
		ResetToken: resetToken,
		SentAt:     time.Now().UTC(),
		ExpiresAt:  expiresAt,
	}

	if fields := utils.ValidateStruct(reset); fields != nil {
		return nil, validationErr("password reset", fields)
	}

	return reset, nil
}

// Redeemable reports whether the token can still be spent at the given
// instant.
func (pr *PasswordReset) Redeemable(now time.Time) bool {
	return !pr.IsUsed && now.Before(pr.ExpiresAt)
}

func (pr *PasswordReset) Expired(now time.Time) bool {
	return !now.Before(pr.ExpiresAt)
}

func (pr *PasswordReset) String() string {
	owner := pr.Email
	if owner == "" {
		owner = pr.UserID.String()
	}
	return "Password reset for " + owner
}
