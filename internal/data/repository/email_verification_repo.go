package repository

import (
	"context"
	"errors"
	"fmt"

	"identity-service/internal/data/entity"
	"identity-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EmailVerificationRepository interface {
	Create(ctx context.Context, verification *entity.EmailVerification) error
	// FindPending returns the newest unconsumed, unexpired record matching
	// the address and code. The schema allows several pending codes per
	// user; newest-first means "last code wins" for callers that want it.
	FindPending(ctx context.Context, email, code string) (*entity.EmailVerification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.EmailVerification, error)
	// Consume marks the record verified. The update is guarded on
	// is_verified = false and a future expiry so concurrent consumers
	// cannot both win; losers get ErrNotConsumable.
	Consume(ctx context.Context, id uuid.UUID) error
}

const emailVerificationColumns = `id, user_id, email, verification_code, is_verified, sent_at, verified_at, expires_at`

type emailVerificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEmailVerificationRepository(db database.PgxIface, log *zap.Logger) EmailVerificationRepository {
	return &emailVerificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "email_verification")),
	}
}

func (r *emailVerificationRepository) Create(ctx context.Context, verification *entity.EmailVerification) error {
	query := `
		INSERT INTO email_verifications (id, user_id, email, verification_code,
		                                 is_verified, sent_at, verified_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		verification.ID,
		verification.UserID,
		verification.Email,
		verification.VerificationCode,
		verification.IsVerified,
		verification.SentAt,
		verification.VerifiedAt,
		verification.ExpiresAt,
	)

	if err != nil {
		r.log.Error("Failed to create email verification",
			zap.Error(err),
			zap.String("email", verification.Email),
		)
		return fmt.Errorf("create email verification for %s: %w", verification.Email, translateError(err))
	}

	return nil
}

func (r *emailVerificationRepository) FindPending(ctx context.Context, email, code string) (*entity.EmailVerification, error) {
	query := `
		SELECT ` + emailVerificationColumns + `
		FROM email_verifications
		WHERE email = $1
		  AND verification_code = $2
		  AND is_verified = false
		  AND expires_at > now()
		ORDER BY sent_at DESC
		LIMIT 1
	`

	var verification entity.EmailVerification
	err := r.db.QueryRow(ctx, query, email, code).Scan(
		&verification.ID,
		&verification.UserID,
		&verification.Email,
		&verification.VerificationCode,
		&verification.IsVerified,
		&verification.SentAt,
		&verification.VerifiedAt,
		&verification.ExpiresAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find pending email verification for %s: %w", email, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find pending email verification",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find pending email verification for %s: %w", email, err)
	}

	return &verification, nil
}

func (r *emailVerificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.EmailVerification, error) {
	query := `
		SELECT ` + emailVerificationColumns + `
		FROM email_verifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list email verifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list email verifications for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var verifications []*entity.EmailVerification
	for rows.Next() {
		var verification entity.EmailVerification
		err := rows.Scan(
			&verification.ID,
			&verification.UserID,
			&verification.Email,
			&verification.VerificationCode,
			&verification.IsVerified,
			&verification.SentAt,
			&verification.VerifiedAt,
			&verification.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan email verification row: %w", err)
		}
		verifications = append(verifications, &verification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email verification rows: %w", err)
	}

	return verifications, nil
}

func (r *emailVerificationRepository) Consume(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE email_verifications
		SET is_verified = true, verified_at = now()
		WHERE id = $1
		  AND is_verified = false
		  AND expires_at > now()
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to consume email verification",
			zap.Error(err),
			zap.String("verification_id", id.String()),
		)
		return fmt.Errorf("consume email verification %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("consume email verification %s: %w", id.String(), ErrNotConsumable)
	}

	return nil
}
