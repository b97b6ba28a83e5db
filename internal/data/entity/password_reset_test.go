package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResetToken = "3a1f8c0d9b4e62715f0a8c3d4e5b6a79"

func TestNewPasswordReset(t *testing.T) {
	expires := time.Now().UTC().Add(time.Hour)

	reset, err := NewPasswordReset(uuid.New(), testResetToken, expires)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, reset.ID)
	assert.False(t, reset.IsUsed)
	assert.Nil(t, reset.UsedAt)
	assert.WithinDuration(t, time.Now().UTC(), reset.SentAt, 2*time.Second)
}

func TestNewPasswordReset_RejectsShortToken(t *testing.T) {
	_, err := NewPasswordReset(uuid.New(), "short", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPasswordReset(uuid.New(), strings.Repeat("a", 65), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPasswordReset_RedeemableWindow(t *testing.T) {
	now := time.Now().UTC()
	reset := &PasswordReset{
		ResetToken: testResetToken,
		ExpiresAt:  now.Add(time.Hour),
	}

	assert.True(t, reset.Redeemable(now))

	reset.IsUsed = true
	assert.False(t, reset.Redeemable(now))

	reset.IsUsed = false
	assert.False(t, reset.Redeemable(now.Add(2*time.Hour)))
}

func TestPasswordReset_String(t *testing.T) {
	reset := &PasswordReset{UserID: uuid.New(), Email: "alice@example.com"}
	assert.Equal(t, "Password reset for alice@example.com", reset.String())

	bare := &PasswordReset{UserID: reset.UserID}
	assert.Equal(t, "Password reset for "+reset.UserID.String(), bare.String())
}
