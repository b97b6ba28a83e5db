package repository

import (
	"identity-service/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Role              RoleRepository
	User              UserRepository
	Profile           ProfileRepository
	EmailVerification EmailVerificationRepository
	SMSVerification   SMSVerificationRepository
	PasswordReset     PasswordResetRepository
	AuditLog          AuditLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Role:              NewRoleRepository(db, log),
		User:              NewUserRepository(db, log),
		Profile:           NewProfileRepository(db, log),
		EmailVerification: NewEmailVerificationRepository(db, log),
		SMSVerification:   NewSMSVerificationRepository(db, log),
		PasswordReset:     NewPasswordResetRepository(db, log),
		AuditLog:          NewAuditLogRepository(db, log),
	}
}
