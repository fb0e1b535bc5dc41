package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

func TestDispatcher_PersistsEvents(t *testing.T) {
	s := store.NewMemoryStore()
	d := NewDispatcher(New(s), 10, nil)

	actor := Actor{UserID: 7, Role: models.RoleAdmin}
	d.Dispatch(actor.Event("appointment_created", "appointment", 3, map[string]any{"date": "2025-05-10"}))
	d.Dispatch(Actor{}.Event("service_record_deleted", "serviceRecord", 1, nil))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	logs, err := store.NewRepo[models.AuditLog, models.AuditLogID](s, store.AuditLogs).All(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "appointment_created", logs[0].Action)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, int64(7), *logs[0].UserID)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, int64(3), *logs[0].EntityID)
	assert.Equal(t, models.RoleAdmin, logs[0].Role)

	assert.Nil(t, logs[1].UserID)
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	s := store.NewMemoryStore()
	d := NewDispatcher(New(s), 1, nil)
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "late"})
	})
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "x"}) })
}
