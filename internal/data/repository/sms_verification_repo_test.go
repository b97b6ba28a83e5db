package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSMSVerificationRepository_FindPending(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSMSVerificationRepository(mock, zap.NewNop())
	now := time.Now().UTC()
	id := uuid.New()

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "phone_number", "verification_code",
		"is_verified", "sent_at", "verified_at", "expires_at",
	}).AddRow(id, uuid.New(), "+15550100", "654321", false, now, (*time.Time)(nil), now.Add(10*time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("FROM sms_verifications")).
		WithArgs("+15550100", "654321").
		WillReturnRows(rows)

	found, err := repo.FindPending(context.Background(), "+15550100", "654321")
	require.NoError(t, err)

	assert.Equal(t, id, found.ID)
	assert.Equal(t, "SMS verification for +15550100", found.String())
}

func TestSMSVerificationRepository_FindPending_Expired(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSMSVerificationRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM sms_verifications")).
		WithArgs("+15550100", "654321").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindPending(context.Background(), "+15550100", "654321")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSMSVerificationRepository_Consume_AlreadyVerified(t *testing.T) {
	mock := newMockDB(t)
	repo := NewSMSVerificationRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sms_verifications")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Consume(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotConsumable)
}
