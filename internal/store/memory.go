package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the document in process memory. Used by tests and by
// STORE_DRIVER=memory.
type MemoryStore struct {
	mu  sync.Mutex
	st  *state
	now Clock
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{st: newState(), now: utcNow}
}

// WithClock replaces the timestamp source.
func (m *MemoryStore) WithClock(now Clock) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) GetAll(ctx context.Context, c Collection) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.all(c), nil
}

func (m *MemoryStore) GetByID(ctx context.Context, c Collection, id int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.get(c, id)
}

func (m *MemoryStore) Find(ctx context.Context, c Collection, f Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nf, err := normalize(f)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.find(c, nf), nil
}

func (m *MemoryStore) Create(ctx context.Context, c Collection, fields Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prepareFields(fields)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.create(c, doc, m.now()), nil
}

func (m *MemoryStore) Update(ctx context.Context, c Collection, id int64, p Patch) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	np, err := normalize(p)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.update(c, id, np, m.now())
}

func (m *MemoryStore) Delete(ctx context.Context, c Collection, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.remove(c, id), nil
}

func (m *MemoryStore) Snapshot(ctx context.Context) (map[Collection][]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.snapshot(), nil
}

func (m *MemoryStore) Close() error { return nil }
