package audit

import (
	"context"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// Logger persists audit entries into the auditLogs collection.
type Logger struct {
	logs store.Repo[models.AuditLog, models.AuditLogID]
}

func New(s store.Store) *Logger {
	return &Logger{logs: store.NewRepo[models.AuditLog, models.AuditLogID](s, store.AuditLogs)}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	entry := models.AuditLog{
		UserID:   ev.UserID,
		Role:     ev.Role,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: ev.Metadata,
	}

	_, err := l.logs.Create(ctx, &entry)
	return err
}
