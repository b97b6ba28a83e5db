package entity

import (
	"fmt"
	"net/netip"
	"time"

	"identity-service/pkg/utils"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a security-relevant action. Rows
// are never updated or deleted except through the owning user's cascade.
type AuditLog struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id" validate:"required"`
	Action    string     `db:"action" validate:"required,max=255"`
	Timestamp time.Time  `db:"timestamp"`
	IPAddress netip.Addr `db:"ip_address"`

	// Username of the owning user, populated by joined reads.
	Username string `db:"-"`
}

// NewAuditLog builds an audit entry. ipAddress must be an IPv4 or IPv6
// literal; timestamp defaults to now.
func NewAuditLog(userID uuid.UUID, action, ipAddress string) (*AuditLog, error) {
	addr, err := netip.ParseAddr(ipAddress)
	if err != nil {
		return nil, fmt.Errorf("audit log %w: invalid ip address %q", ErrValidation, ipAddress)
	}

	log := &AuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
		IPAddress: addr,
	}

	if fields := utils.ValidateStruct(log); fields != nil {
		return nil, validationErr("audit log", fields)
	}

	return log, nil
}

func (l *AuditLog) String() string {
	actor := l.Username
	if actor == "" {
		actor = l.UserID.String()
	}
	return fmt.Sprintf("Log: %s by %s at %s", l.Action, actor, l.Timestamp.Format(time.RFC3339))
}
