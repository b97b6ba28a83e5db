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

// SMSVerificationRepository mirrors EmailVerificationRepository, keyed on
// a phone number. Same pending/consume semantics.
type SMSVerificationRepository interface {
	Create(ctx context.Context, verification *entity.SMSVerification) error
	FindPending(ctx context.Context, phoneNumber, code string) (*entity.SMSVerification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SMSVerification, error)
	Consume(ctx context.Context, id uuid.UUID) error
}

const smsVerificationColumns = `id, user_id, phone_number, verification_code, is_verified, sent_at, verified_at, expires_at`

type smsVerificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSMSVerificationRepository(db database.PgxIface, log *zap.Logger) SMSVerificationRepository {
	return &smsVerificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "sms_verification")),
	}
}

func (r *smsVerificationRepository) Create(ctx context.Context, verification *entity.SMSVerification) error {
	query := `
		INSERT INTO sms_verifications (id, user_id, phone_number, verification_code,
		                               is_verified, sent_at, verified_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		verification.ID,
		verification.UserID,
		verification.PhoneNumber,
		verification.VerificationCode,
		verification.IsVerified,
		verification.SentAt,
		verification.VerifiedAt,
		verification.ExpiresAt,
	)

	if err != nil {
		r.log.Error("Failed to create sms verification",
			zap.Error(err),
			zap.String("phone_number", verification.PhoneNumber),
		)
		return fmt.Errorf("create sms verification for %s: %w", verification.PhoneNumber, translateError(err))
	}

	return nil
}

func (r *smsVerificationRepository) FindPending(ctx context.Context, phoneNumber, code string) (*entity.SMSVerification, error) {
	query := `
		SELECT ` + smsVerificationColumns + `
		FROM sms_verifications
		WHERE phone_number = $1
		  AND verification_code = $2
		  AND is_verified = false
		  AND expires_at > now()
		ORDER BY sent_at DESC
		LIMIT 1
	`

	var verification entity.SMSVerification
	err := r.db.QueryRow(ctx, query, phoneNumber, code).Scan(
		&verification.ID,
		&verification.UserID,
		&verification.PhoneNumber,
		&verification.VerificationCode,
		&verification.IsVerified,
		&verification.SentAt,
		&verification.VerifiedAt,
		&verification.ExpiresAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find pending sms verification for %s: %w", phoneNumber, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find pending sms verification",
			zap.Error(err),
			zap.String("phone_number", phoneNumber),
		)
		return nil, fmt.Errorf("find pending sms verification for %s: %w", phoneNumber, err)
	}

	return &verification, nil
}

func (r *smsVerificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SMSVerification, error) {
	query := `
		SELECT ` + smsVerificationColumns + `
		FROM sms_verifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list sms verifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list sms verifications for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var verifications []*entity.SMSVerification
	for rows.Next() {
		var verification entity.SMSVerification
		err := rows.Scan(
			&verification.ID,
			&verification.UserID,
			&verification.PhoneNumber,
			&verification.VerificationCode,
			&verification.IsVerified,
			&verification.SentAt,
			&verification.VerifiedAt,
			&verification.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sms verification row: %w", err)
		}
		verifications = append(verifications, &verification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sms verification rows: %w", err)
	}

	return verifications, nil
}

func (r *smsVerificationRepository) Consume(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sms_verifications
		SET is_verified = true, verified_at = now()
		WHERE id = $1
		  AND is_verified = false
		  AND expires_at > now()
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to consume sms verification",
			zap.Error(err),
			zap.String("verification_id", id.String()),
		)
		return fmt.Errorf("consume sms verification %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("consume sms verification %s: %w", id.String(), ErrNotConsumable)
	}

	return nil
}
