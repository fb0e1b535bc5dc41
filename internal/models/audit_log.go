package models

import "time"

type AuditLog struct {
	ID AuditLogID `json:"id"`

	UserID   *int64 `json:"userId"`
	Role     string `json:"role"`
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID *int64 `json:"entityId"`
	Metadata any    `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
