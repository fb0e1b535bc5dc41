package backup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

type fakeUploader struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, key string, body []byte, contentType string) error {
	f.key, f.body, f.contentType = key, body, contentType
	return f.err
}

func seeded(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	_, err := s.Create(context.Background(), store.Clients, store.Document{"firstName": "Ion"})
	require.NoError(t, err)
	return s
}

func TestService_Run(t *testing.T) {
	up := &fakeUploader{}
	svc := NewService(seeded(t), up)
	svc.now = func() time.Time { return time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC) }

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^backups/db-20250510T080000Z-[0-9a-f-]{36}\.json$`, res.Key)
	assert.Equal(t, res.Key, up.key)
	assert.Equal(t, "application/json", up.contentType)
	assert.Equal(t, len(up.body), res.Size)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(up.body, &doc))
	require.Len(t, doc["clients"], 1)
	assert.Equal(t, "Ion", doc["clients"][0]["firstName"])
	assert.Contains(t, doc, "serviceRecords")
}

func TestService_RunErrors(t *testing.T) {
	_, err := NewService(seeded(t), nil).Run(context.Background())
	assert.Error(t, err)

	boom := errors.New("denied")
	_, err = NewService(seeded(t), &fakeUploader{err: boom}).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestService_Export(t *testing.T) {
	svc := NewService(seeded(t), nil)
	assert.False(t, svc.Enabled())

	b, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"clients": [`)
}
