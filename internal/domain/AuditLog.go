package domain

import (
	"errors"
	"strings"
	"time"
)

// AnonymousUser is recorded as the actor when a commit carries no identity.
const AnonymousUser = "anonymous"

type AuditActionType string

const (
	AuditActionCreate AuditActionType = "Create"
	AuditActionUpdate AuditActionType = "Update"
	AuditActionDelete AuditActionType = "Delete"
)

var ErrInvalidAuditAction = errors.New("invalid audit action type")

// ParseAuditActionType accepts the action name in any letter case.
func ParseAuditActionType(s string) (AuditActionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create":
		return AuditActionCreate, nil
	case "update":
		return AuditActionUpdate, nil
	case "delete":
		return AuditActionDelete, nil
	}
	return "", ErrInvalidAuditAction
}

// AuditLog documents one property of one entity changed by one commit.
// Rows are only ever inserted by the unit of work.
type AuditLog struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ActionType AuditActionType `gorm:"type:varchar(10);not null;index" json:"actionType"`
	EntityType string          `gorm:"type:varchar(100);not null;index" json:"entityType"`
	EntityName *string         `gorm:"type:varchar(255)" json:"entityName"`
	EntityID   string          `gorm:"type:varchar(64);not null;index" json:"entityId"`
	Property   string          `gorm:"type:varchar(100);not null" json:"property"`
	OldValue   *string         `gorm:"type:text" json:"oldValue"`
	NewValue   *string         `gorm:"type:text" json:"newValue"`
	UserID     string          `gorm:"type:varchar(64);not null;index" json:"userId"`
	Timestamp  time.Time       `gorm:"not null;index" json:"timestamp"`
}
