package repository

import (
	"context"
	"fmt"

	"identity-service/internal/data/entity"
	"identity-service/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLogRepository is deliberately append-only: there is no update or
// delete. Rows only ever disappear through the owning user's cascade.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.AuditLog, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type auditLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditLogRepository(db database.PgxIface, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, timestamp, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		log.ID,
		log.UserID,
		log.Action,
		log.Timestamp,
		log.IPAddress,
	)

	if err != nil {
		r.log.Error("Failed to create audit log",
			zap.Error(err),
			zap.String("user_id", log.UserID.String()),
			zap.String("action", log.Action),
		)
		return fmt.Errorf("create audit log for user %s: %w", log.UserID.String(), translateError(err))
	}

	return nil
}

func (r *auditLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT a.id, a.user_id, a.action, a.timestamp, a.ip_address, u.username
		FROM audit_logs a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.timestamp DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list audit logs",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list audit logs for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var logs []*entity.AuditLog
	for rows.Next() {
		var entry entity.AuditLog
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.Timestamp,
			&entry.IPAddress,
			&entry.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		logs = append(logs, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log rows: %w", err)
	}

	return logs, nil
}

func (r *auditLogRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM audit_logs WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count audit logs",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count audit logs for user %s: %w", userID.String(), err)
	}

	return count, nil
}
