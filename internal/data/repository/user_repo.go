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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreateWithProfile persists a user and their profile in one
	// transaction, the registration touchpoint.
	CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	// Delete removes the user for good. Profile, verifications, resets,
	// audit logs and role memberships go with it via FK cascades; prefer
	// SetActive(false) for moderation.
	Delete(ctx context.Context, id uuid.UUID) error
	AssignRole(ctx context.Context, userID uuid.UUID, roleID entity.RoleID) error
	RevokeRole(ctx context.Context, userID uuid.UUID, roleID entity.RoleID) error
	ListRoles(ctx context.Context, userID uuid.UUID) ([]entity.Role, error)
}

const userColumns = `id, username, email, phone_number, is_active, is_verified, is_staff, date_joined`

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, phone_number,
		                   is_active, is_verified, is_staff, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PhoneNumber,
		user.IsActive,
		user.IsVerified,
		user.IsStaff,
		user.DateJoined,
	)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, translateError(err))
	}

	return nil
}

func (r *userRepository) CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userQuery := `
		INSERT INTO users (id, username, email, phone_number,
		                   is_active, is_verified, is_staff, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, userQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PhoneNumber,
		user.IsActive,
		user.IsVerified,
		user.IsStaff,
		user.DateJoined,
	)
	if err != nil {
		r.log.Error("Failed to create user in registration tx",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, translateError(err))
	}

	profile.UserID = user.ID
	profileQuery := `
		INSERT INTO profiles (id, user_id, first_name, last_name,
		                      date_of_birth, address, profile_picture, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, profileQuery,
		profile.ID,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.DateOfBirth,
		profile.Address,
		profile.ProfilePicture,
		profile.Bio,
	)
	if err != nil {
		r.log.Error("Failed to create profile in registration tx",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create profile for %s: %w", user.Username, translateError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit registration tx: %w", err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, query, id.String(), id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.findOne(ctx, query, username, username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.findOne(ctx, query, email, email)
}

func (r *userRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.findOne(ctx, query, phoneNumber, phoneNumber)
}

// findOne runs a single-row user lookup and attaches the role set.
func (r *userRepository) findOne(ctx context.Context, query, key string, arg any) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PhoneNumber,
		&user.IsActive,
		&user.IsVerified,
		&user.IsStaff,
		&user.DateJoined,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find user %s: %w", key, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("find user %s: %w", key, err)
	}

	roles, err := r.ListRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY date_joined DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PhoneNumber,
			&user.IsActive,
			&user.IsVerified,
			&user.IsStaff,
			&user.DateJoined,
		)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, phone_number = $4,
		    is_active = $5, is_verified = $6, is_staff = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PhoneNumber,
		user.IsActive,
		user.IsVerified,
		user.IsStaff,
	)

	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.setFlag(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, id, active, "is_active")
}

func (r *userRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.setFlag(ctx, `UPDATE users SET is_verified = $2 WHERE id = $1`, id, verified, "is_verified")
}

func (r *userRepository) setFlag(ctx context.Context, query string, id uuid.UUID, value bool, flag string) error {
	result, err := r.db.Exec(ctx, query, id, value)
	if err != nil {
		r.log.Error("Failed to set user flag",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("flag", flag),
		)
		return fmt.Errorf("set %s for user %s: %w", flag, id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("set %s for user %s: %w", flag, id.String(), ErrNotFound)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete user %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (r *userRepository) AssignRole(ctx context.Context, userID uuid.UUID, roleID entity.RoleID) error {
	// Membership is a set, assigning twice is a no-op.
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, roleID)
	if err != nil {
		r.log.Error("Failed to assign role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int16("role_id", int16(roleID)),
		)
		return fmt.Errorf("assign role %d to user %s: %w", roleID, userID.String(), translateError(err))
	}

	return nil
}

func (r *userRepository) RevokeRole(ctx context.Context, userID uuid.UUID, roleID entity.RoleID) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	result, err := r.db.Exec(ctx, query, userID, roleID)
	if err != nil {
		r.log.Error("Failed to revoke role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int16("role_id", int16(roleID)),
		)
		return fmt.Errorf("revoke role %d from user %s: %w", roleID, userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("revoke role %d from user %s: %w", roleID, userID.String(), ErrNotFound)
	}

	return nil
}

func (r *userRepository) ListRoles(ctx context.Context, userID uuid.UUID) ([]entity.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list user roles",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list roles for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var roles []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}

	return roles, nil
}
