package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"identity-service/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEmailVerification() *entity.EmailVerification {
	return &entity.EmailVerification{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		Email:            "alice@example.com",
		VerificationCode: "123456",
		SentAt:           time.Now().UTC(),
		ExpiresAt:        time.Now().UTC().Add(10 * time.Minute),
	}
}

func TestEmailVerificationRepository_Create(t *testing.T) {
	mock := newMockDB(t)
	repo := NewEmailVerificationRepository(mock, zap.NewNop())
	verification := testEmailVerification()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO email_verifications")).
		WithArgs(verification.ID, verification.UserID, verification.Email,
			verification.VerificationCode, verification.IsVerified,
			verification.SentAt, verification.VerifiedAt, verification.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), verification))
}

func TestEmailVerificationRepository_Create_UnknownUser(t *testing.T) {
	mock := newMockDB(t)
	repo := NewEmailVerificationRepository(mock, zap.NewNop())
	verification := testEmailVerification()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO email_verifications")).
		WithArgs(verification.ID, verification.UserID, verification.Email,
			verification.VerificationCode, verification.IsVerified,
			verification.SentAt, verification.VerifiedAt, verification.ExpiresAt).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "email_verifications_user_id_fkey"})

	err := repo.Create(context.Background(), verification)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestEmailVerificationRepository_FindPending(t *testing.T) {
	mock := newMockDB(t)
	repo := NewEmailVerificationRepository(mock, zap.NewNop())
	verification := testEmailVerification()

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "email", "verification_code",
		"is_verified", "sent_at", "verified_at", "expires_at",
	}).AddRow(verification.ID, verification.UserID, verification.Email,
		verification.VerificationCode, false, verification.SentAt,
		(*time.Time)(nil), verification.ExpiresAt)

	mock.ExpectQuery(regexp.QuoteMeta("FROM email_verifications")).
		WithArgs(verification.Email, verification.VerificationCode).
		WillReturnRows(rows)

	found, err := repo.FindPending(context.Background(), verification.Email, verification.VerificationCode)
	require.NoError(t, err)

	assert.Equal(t, verification.ID, found.ID)
	assert.True(t, found.Pending(time.Now().UTC()))
}

func TestEmailVerificationRepository_FindPending_NoMatch(t *testing.T) {
	mock := newMockDB(t)
	repo := NewEmailVerificationRepository(mock, zap.NewNop())

	// Consumed and expired records fall out of the query's WHERE clause,
	// so a stale code looks exactly like a wrong one.
	mock.ExpectQuery(regexp.QuoteMeta("FROM email_verifications")).
		WithArgs("alice@example.com", "000000").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindPending(context.Background(), "alice@example.com", "000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmailVerificationRepository_Consume(t *testing.T) {
	mock := newMockDB(t)
	repo := NewEmailVerificationRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE email_verifications")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Consume(context.Background(), id))
}

func TestEmailVerificationRepository_Consume_OnlyOnce(t *testing.T) {
	mock := newMockDB(t)
	repo := NewEmailVerificationRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE email_verifications")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE email_verifications")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.Consume(context.Background(), id))

	err := repo.Consume(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotConsumable)
}

func TestEmailVerificationRepository_ListByUser(t *testing.T) {
	mock := newMockDB(t)
	repo := NewEmailVerificationRepository(mock, zap.NewNop())
	userID := uuid.New()
	now := time.Now().UTC()
	verifiedAt := now.Add(-time.Hour)

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "email", "verification_code",
		"is_verified", "sent_at", "verified_at", "expires_at",
	}).
		AddRow(uuid.New(), userID, "alice@example.com", "222222", false, now, (*time.Time)(nil), now.Add(10*time.Minute)).
		AddRow(uuid.New(), userID, "alice@example.com", "111111", true, now.Add(-2*time.Hour), &verifiedAt, now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("FROM email_verifications")).
		WithArgs(userID).
		WillReturnRows(rows)

	verifications, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, verifications, 2)
	assert.True(t, verifications[0].Pending(now))
	assert.False(t, verifications[1].Pending(now))
	require.NotNil(t, verifications[1].VerifiedAt)
}
