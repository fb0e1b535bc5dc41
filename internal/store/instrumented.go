package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/metrics"
)

// Instrumented counts and logs storage failures of the wrapped store.
type Instrumented struct {
	Store
	log *zap.Logger
}

func NewInstrumented(s Store, log *zap.Logger) *Instrumented {
	return &Instrumented{Store: s, log: log}
}

func (i *Instrumented) observe(op string, c Collection, err error) {
	if err == nil || errors.Is(err, ErrNotFound) {
		return
	}
	metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
	i.log.Error("store operation failed",
		zap.String("op", op),
		zap.String("collection", string(c)),
		zap.Error(err),
	)
}

func (i *Instrumented) GetAll(ctx context.Context, c Collection) ([]Document, error) {
	docs, err := i.Store.GetAll(ctx, c)
	i.observe("get_all", c, err)
	return docs, err
}

func (i *Instrumented) GetByID(ctx context.Context, c Collection, id int64) (Document, error) {
	doc, err := i.Store.GetByID(ctx, c, id)
	i.observe("get_by_id", c, err)
	return doc, err
}

func (i *Instrumented) Find(ctx context.Context, c Collection, f Filter) ([]Document, error) {
	docs, err := i.Store.Find(ctx, c, f)
	i.observe("find", c, err)
	return docs, err
}

func (i *Instrumented) Create(ctx context.Context, c Collection, fields Document) (Document, error) {
	doc, err := i.Store.Create(ctx, c, fields)
	i.observe("create", c, err)
	return doc, err
}

func (i *Instrumented) Update(ctx context.Context, c Collection, id int64, p Patch) (Document, error) {
	doc, err := i.Store.Update(ctx, c, id, p)
	i.observe("update", c, err)
	return doc, err
}

func (i *Instrumented) Delete(ctx context.Context, c Collection, id int64) (bool, error) {
	ok, err := i.Store.Delete(ctx, c, id)
	i.observe("delete", c, err)
	return ok, err
}
