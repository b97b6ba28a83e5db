package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestNewUser_Defaults(t *testing.T) {
	user, err := NewUser("alice", strPtr("alice@example.com"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsStaff)
	assert.WithinDuration(t, time.Now().UTC(), user.DateJoined, 2*time.Second)
	assert.Nil(t, user.PhoneNumber)
}

func TestNewUser_RandomIDs(t *testing.T) {
	first, err := NewUser("alice", nil, nil)
	require.NoError(t, err)
	second, err := NewUser("bob", nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestNewUser_RequiresUsername(t *testing.T) {
	_, err := NewUser("", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewUser_RejectsInvalidEmail(t *testing.T) {
	_, err := NewUser("alice", strPtr("not-an-email"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewUser_AllowsMissingContact(t *testing.T) {
	user, err := NewUser("incomplete", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, user.Email)
	assert.Nil(t, user.PhoneNumber)
}

func TestUser_HasRole(t *testing.T) {
	user := &User{
		Username: "alice",
		Roles: []Role{
			{ID: RoleEditor, Name: "Editor"},
		},
	}

	assert.True(t, user.HasRole(RoleEditor))
	assert.False(t, user.HasRole(RoleAdmin))
}

func TestUser_String(t *testing.T) {
	user := &User{Username: "alice"}
	assert.Equal(t, "alice", user.String())
}
