package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Collection names one homogeneous list of records inside the document.
type Collection string

const (
	Clients        Collection = "clients"
	Cars           Collection = "cars"
	Appointments   Collection = "appointments"
	ServiceRecords Collection = "serviceRecords"
	Parts          Collection = "parts"
	Admins         Collection = "admins"
	AuditLogs      Collection = "auditLogs"
)

// Collections lists every collection a fresh document is created with.
var Collections = []Collection{Clients, Cars, Appointments, ServiceRecords, Parts, Admins, AuditLogs}

const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// TimeLayout is the timestamp format written into createdAt/updatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Document is one JSON-decoded record.
type Document map[string]any

// Patch holds only the fields that change. Keys that are absent are left
// untouched by Update.
type Patch map[string]any

// Set records a field only when v is non-nil, so optional request fields can
// be copied without a nil check at every call site.
func (p Patch) Set(key string, v any) Patch {
	if !isNil(v) {
		p[key] = v
	}
	return p
}

// Store is the keyed collection persistence used by every component.
// Every mutating call is durable when it returns.
type Store interface {
	GetAll(ctx context.Context, c Collection) ([]Document, error)
	GetByID(ctx context.Context, c Collection, id int64) (Document, error)
	Find(ctx context.Context, c Collection, f Filter) ([]Document, error)
	Create(ctx context.Context, c Collection, fields Document) (Document, error)
	Update(ctx context.Context, c Collection, id int64, p Patch) (Document, error)
	Delete(ctx context.Context, c Collection, id int64) (bool, error)
	Snapshot(ctx context.Context) (map[Collection][]Document, error)
	Close() error
}

// ErrNotFound is returned by GetByID and Update when the id is absent.
var ErrNotFound = errors.New("record not found")

// StorageError wraps any failure to read or write the underlying medium.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err came from the storage medium.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Clock is swapped in tests.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func stamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
