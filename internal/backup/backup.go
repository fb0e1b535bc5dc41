package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// Uploader puts one object into remote storage.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

type Result struct {
	Key       string    `json:"key,omitempty"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	store    store.Store
	uploader Uploader
	now      func() time.Time
}

// NewService builds a backup service. uploader may be nil, in which case
// only Export is usable.
func NewService(s store.Store, uploader Uploader) *Service {
	return &Service{
		store:    s,
		uploader: uploader,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Enabled() bool { return s.uploader != nil }

// Export renders the whole document in the same layout the JSON store uses.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Run exports the document and uploads it under backups/.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("backup uploader not configured")
	}

	body, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := Key(now, uuid.NewString())
	if err := s.uploader.Upload(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("upload backup: %w", err)
	}

	return &Result{Key: key, Size: len(body), CreatedAt: now}, nil
}

func Key(t time.Time, id string) string {
	return fmt.Sprintf("backups/db-%s-%s.json", t.UTC().Format("20060102T150405Z"), id)
}
