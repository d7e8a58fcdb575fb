package dto

import "time"

type AuditLogResponse struct {
	ID         uint      `json:"id"`
	ActionType string    `json:"actionType"`
	EntityType string    `json:"entityType"`
	EntityName *string   `json:"entityName"`
	EntityID   string    `json:"entityId"`
	Property   string    `json:"property"`
	OldValue   *string   `json:"oldValue"`
	NewValue   *string   `json:"newValue"`
	UserID     string    `json:"userId"`
	Timestamp  time.Time `json:"timestamp"`
}
