package store

import (
	"time"
)

// state is the decoded document shared by MemoryStore and FileStore.
// It is not safe for concurrent use; callers hold their own lock.
type state struct {
	collections map[Collection][]Document
	sequences   map[Collection]int64
}

func newState() *state {
	s := &state{
		collections: make(map[Collection][]Document, len(Collections)),
		sequences:   make(map[Collection]int64),
	}
	for _, c := range Collections {
		s.collections[c] = []Document{}
	}
	return s
}

func (s *state) all(c Collection) []Document {
	return cloneAll(s.collections[c])
}

func (s *state) indexOf(c Collection, id int64) int {
	for i, d := range s.collections[c] {
		if IDOf(d) == id {
			return i
		}
	}
	return -1
}

func (s *state) get(c Collection, id int64) (Document, error) {
	i := s.indexOf(c, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return clone(s.collections[c][i]), nil
}

func (s *state) find(c Collection, f Filter) []Document {
	out := []Document{}
	for _, d := range s.collections[c] {
		if f.Matches(d) {
			out = append(out, clone(d))
		}
	}
	return out
}

func (s *state) create(c Collection, fields Document, now time.Time) Document {
	id := nextID(s.collections[c], s.sequences[c])

	doc := make(Document, len(fields)+3)
	for k, v := range fields {
		doc[k] = v
	}
	ts := stamp(now)
	doc[FieldID] = float64(id)
	doc[FieldCreatedAt] = ts
	doc[FieldUpdatedAt] = ts

	s.collections[c] = append(s.collections[c], doc)
	s.sequences[c] = id
	return clone(doc)
}

func (s *state) update(c Collection, id int64, p Patch, now time.Time) (Document, error) {
	i := s.indexOf(c, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	doc := applyPatch(s.collections[c][i], p, now)
	s.collections[c][i] = doc
	return clone(doc), nil
}

func (s *state) remove(c Collection, id int64) bool {
	i := s.indexOf(c, id)
	if i < 0 {
		return false
	}
	docs := s.collections[c]
	s.collections[c] = append(docs[:i:i], docs[i+1:]...)
	return true
}

func (s *state) snapshot() map[Collection][]Document {
	out := make(map[Collection][]Document, len(s.collections))
	for c, docs := range s.collections {
		out[c] = cloneAll(docs)
	}
	return out
}

// applyPatch shallow-merges p over doc. id and createdAt are preserved and
// updatedAt is restamped.
func applyPatch(doc Document, p Patch, now time.Time) Document {
	out := clone(doc)
	for k, v := range p {
		if k == FieldID || k == FieldCreatedAt || k == FieldUpdatedAt {
			continue
		}
		out[k] = v
	}
	out[FieldUpdatedAt] = stamp(now)
	return out
}

// prepareFields drops the store-managed keys from a create payload.
func prepareFields(fields Document) (Document, error) {
	doc, err := normalize(fields)
	if err != nil {
		return nil, err
	}
	delete(doc, FieldID)
	delete(doc, FieldCreatedAt)
	delete(doc, FieldUpdatedAt)
	return doc, nil
}
