package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Repo is a typed view over one collection. ID is the collection's id
// newtype, so lookups cannot mix ids from different collections.
type Repo[T any, ID ~int64] struct {
	s    Store
	name Collection
}

func NewRepo[T any, ID ~int64](s Store, name Collection) Repo[T, ID] {
	return Repo[T, ID]{s: s, name: name}
}

func (r Repo[T, ID]) Name() Collection { return r.name }

func (r Repo[T, ID]) All(ctx context.Context) ([]T, error) {
	docs, err := r.s.GetAll(ctx, r.name)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](docs)
}

// Get returns ErrNotFound when the id is absent.
func (r Repo[T, ID]) Get(ctx context.Context, id ID) (*T, error) {
	doc, err := r.s.GetByID(ctx, r.name, int64(id))
	if err != nil {
		return nil, err
	}
	return Decode[T](doc)
}

func (r Repo[T, ID]) Find(ctx context.Context, f Filter) ([]T, error) {
	docs, err := r.s.Find(ctx, r.name, f)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](docs)
}

// Exists reports whether any record matches f.
func (r Repo[T, ID]) Exists(ctx context.Context, f Filter) (bool, error) {
	docs, err := r.s.Find(ctx, r.name, f)
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// Create stores v; id and timestamps in v are ignored and assigned by the store.
func (r Repo[T, ID]) Create(ctx context.Context, v *T) (*T, error) {
	fields, err := Encode(v)
	if err != nil {
		return nil, err
	}
	doc, err := r.s.Create(ctx, r.name, fields)
	if err != nil {
		return nil, err
	}
	return Decode[T](doc)
}

// Update applies p and returns ErrNotFound when the id is absent.
func (r Repo[T, ID]) Update(ctx context.Context, id ID, p Patch) (*T, error) {
	doc, err := r.s.Update(ctx, r.name, int64(id), p)
	if err != nil {
		return nil, err
	}
	return Decode[T](doc)
}

func (r Repo[T, ID]) Delete(ctx context.Context, id ID) (bool, error) {
	return r.s.Delete(ctx, r.name, int64(id))
}

// Encode converts a value into a Document.
func Encode(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return doc, nil
}

// Decode converts a Document into T.
func Decode[T any](doc Document) (*T, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &v, nil
}

func decodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := Decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
