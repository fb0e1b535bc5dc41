package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const sequencesKey = "_sequences"

// FileStore persists the whole document as one JSON file. Every call reads
// the file, mutates the decoded document and, for writes, saves it back
// before returning. The mutex makes each call atomic within the process.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  Clock
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens (or lazily creates) the document at path. A missing
// file is an empty document.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageErr("open", err)
		}
	}
	fs := &FileStore{path: path, now: utcNow}
	if _, err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) WithClock(now Clock) *FileStore {
	fs.now = now
	return fs
}

func (fs *FileStore) Path() string { return fs.path }

func (fs *FileStore) load() (*state, error) {
	st := newState()

	b, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, storageErr("read", err)
	}
	if len(b) == 0 {
		return st, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, storageErr("decode", err)
	}
	for key, msg := range raw {
		if key == sequencesKey {
			var seq map[Collection]int64
			if err := json.Unmarshal(msg, &seq); err != nil {
				return nil, storageErr("decode", fmt.Errorf("%s: %w", key, err))
			}
			for c, v := range seq {
				st.sequences[c] = v
			}
			continue
		}
		var docs []Document
		if err := json.Unmarshal(msg, &docs); err != nil {
			return nil, storageErr("decode", fmt.Errorf("%s: %w", key, err))
		}
		if docs == nil {
			docs = []Document{}
		}
		st.collections[Collection(key)] = docs
	}
	return st, nil
}

// save writes to a temp file and renames it over the document so a crash
// mid-write never leaves a truncated file behind.
func (fs *FileStore) save(st *state) error {
	out := make(map[string]any, len(st.collections)+1)
	for c, docs := range st.collections {
		out[string(c)] = docs
	}
	if len(st.sequences) > 0 {
		out[sequencesKey] = st.sequences
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), ".db-*.json")
	if err != nil {
		return storageErr("write", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		tmp.Close()
		return storageErr("encode", err)
	}
	if err := tmp.Close(); err != nil {
		return storageErr("write", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return storageErr("write", err)
	}
	return nil
}

func (fs *FileStore) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	st, err := fs.load()
	if err != nil {
		return err
	}
	return fn(st)
}

func (fs *FileStore) write(ctx context.Context, fn func(st *state) (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	st, err := fs.load()
	if err != nil {
		return err
	}
	changed, err := fn(st)
	if err != nil || !changed {
		return err
	}
	return fs.save(st)
}

func (fs *FileStore) GetAll(ctx context.Context, c Collection) ([]Document, error) {
	var out []Document
	err := fs.read(ctx, func(st *state) error {
		out = st.all(c)
		return nil
	})
	return out, err
}

func (fs *FileStore) GetByID(ctx context.Context, c Collection, id int64) (Document, error) {
	var out Document
	err := fs.read(ctx, func(st *state) error {
		doc, err := st.get(c, id)
		out = doc
		return err
	})
	return out, err
}

func (fs *FileStore) Find(ctx context.Context, c Collection, f Filter) ([]Document, error) {
	nf, err := normalize(f)
	if err != nil {
		return nil, err
	}
	var out []Document
	err = fs.read(ctx, func(st *state) error {
		out = st.find(c, nf)
		return nil
	})
	return out, err
}

func (fs *FileStore) Create(ctx context.Context, c Collection, fields Document) (Document, error) {
	doc, err := prepareFields(fields)
	if err != nil {
		return nil, err
	}
	var out Document
	err = fs.write(ctx, func(st *state) (bool, error) {
		out = st.create(c, doc, fs.now())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (fs *FileStore) Update(ctx context.Context, c Collection, id int64, p Patch) (Document, error) {
	np, err := normalize(p)
	if err != nil {
		return nil, err
	}
	var out Document
	err = fs.write(ctx, func(st *state) (bool, error) {
		doc, err := st.update(c, id, np, fs.now())
		if err != nil {
			return false, err
		}
		out = doc
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (fs *FileStore) Delete(ctx context.Context, c Collection, id int64) (bool, error) {
	var removed bool
	err := fs.write(ctx, func(st *state) (bool, error) {
		removed = st.remove(c, id)
		return removed, nil
	})
	return removed, err
}

func (fs *FileStore) Snapshot(ctx context.Context) (map[Collection][]Document, error) {
	var out map[Collection][]Document
	err := fs.read(ctx, func(st *state) error {
		out = st.snapshot()
		return nil
	})
	return out, err
}

func (fs *FileStore) Close() error { return nil }
