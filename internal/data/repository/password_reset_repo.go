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

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entity.PasswordReset) error
	FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PasswordReset, error)
	// Redeem spends the token. The update is guarded on is_used = false
	// and a future expiry, so a token can be redeemed exactly once; any
	// later attempt gets ErrNotConsumable.
	Redeem(ctx context.Context, token string) error
}

type passwordResetRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPasswordResetRepository(db database.PgxIface, log *zap.Logger) PasswordResetRepository {
	return &passwordResetRepository{
		db:  db,
		log: log.With(zap.String("repository", "password_reset")),
	}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *entity.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, user_id, reset_token, is_used,
		                             sent_at, expires_at, used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		reset.ID,
		reset.UserID,
		reset.ResetToken,
		reset.IsUsed,
		reset.SentAt,
		reset.ExpiresAt,
		reset.UsedAt,
	)

	if err != nil {
		r.log.Error("Failed to create password reset",
			zap.Error(err),
			zap.String("user_id", reset.UserID.String()),
		)
		return fmt.Errorf("create password reset for user %s: %w", reset.UserID.String(), translateError(err))
	}

	return nil
}

func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	query := `
		SELECT pr.id, pr.user_id, pr.reset_token, pr.is_used,
		       pr.sent_at, pr.expires_at, pr.used_at,
		       COALESCE(u.email, '')
		FROM password_resets pr
		JOIN users u ON u.id = pr.user_id
		WHERE pr.reset_token = $1
	`

	var reset entity.PasswordReset
	err := r.db.QueryRow(ctx, query, token).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.ResetToken,
		&reset.IsUsed,
		&reset.SentAt,
		&reset.ExpiresAt,
		&reset.UsedAt,
		&reset.Email,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find password reset by token: %w", ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find password reset by token", zap.Error(err))
		return nil, fmt.Errorf("find password reset by token: %w", err)
	}

	return &reset, nil
}

func (r *passwordResetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PasswordReset, error) {
	query := `
		SELECT id, user_id, reset_token, is_used, sent_at, expires_at, used_at
		FROM password_resets
		WHERE user_id = $1
		ORDER BY sent_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list password resets",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list password resets for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var resets []*entity.PasswordReset
	for rows.Next() {
		var reset entity.PasswordReset
		err := rows.Scan(
			&reset.ID,
			&reset.UserID,
			&reset.ResetToken,
			&reset.IsUsed,
			&reset.SentAt,
			&reset.ExpiresAt,
			&reset.UsedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan password reset row: %w", err)
		}
		resets = append(resets, &reset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate password reset rows: %w", err)
	}

	return resets, nil
}

func (r *passwordResetRepository) Redeem(ctx context.Context, token string) error {
	query := `
		UPDATE password_resets
		SET is_used = true, used_at = now()
		WHERE reset_token = $1
		  AND is_used = false
		  AND expires_at > now()
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to redeem password reset", zap.Error(err))
		return fmt.Errorf("redeem password reset: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("redeem password reset: %w", ErrNotConsumable)
	}

	return nil
}
