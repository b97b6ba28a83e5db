package repository

import (
	"context"
	"errors"
	"fmt"

	"identity-service/internal/data/entity"
	"identity-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RoleRepository reads the seeded role reference data. There is no write
// surface: rows come from the seed migration and never change.
type RoleRepository interface {
	FindByID(ctx context.Context, id entity.RoleID) (*entity.Role, error)
	FindAll(ctx context.Context) ([]entity.Role, error)
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "role")),
	}
}

func (r *roleRepository) FindByID(ctx context.Context, id entity.RoleID) (*entity.Role, error) {
	query := `SELECT id, name FROM roles WHERE id = $1`

	var role entity.Role
	err := r.db.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find role %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find role",
			zap.Error(err),
			zap.Int16("role_id", int16(id)),
		)
		return nil, fmt.Errorf("find role %d: %w", id, err)
	}

	return &role, nil
}

func (r *roleRepository) FindAll(ctx context.Context) ([]entity.Role, error) {
	query := `SELECT id, name FROM roles ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list roles", zap.Error(err))
		return nil, fmt.Errorf("find all roles: %w", err)
	}
	defer rows.Close()

	var roles []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			r.log.Error("Failed to scan role row", zap.Error(err))
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}

	return roles, nil
}
