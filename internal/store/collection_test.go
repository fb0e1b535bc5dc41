package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widgetID int64

type widget struct {
	ID        widgetID  `json:"id"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func TestRepo_TypedRoundTrip(t *testing.T) {
	s := NewMemoryStore().WithClock(func() time.Time { return testNow })
	repo := NewRepo[widget, widgetID](s, Parts)
	ctx := context.Background()

	created, err := repo.Create(ctx, &widget{ID: 9, Name: "bolt", Tags: []string{"m8"}})
	require.NoError(t, err)
	assert.Equal(t, widgetID(1), created.ID)
	assert.True(t, testNow.Equal(created.CreatedAt))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	exists, err := repo.Exists(ctx, Filter{"name": "bolt"})
	require.NoError(t, err)
	assert.True(t, exists)

	updated, err := repo.Update(ctx, created.ID, Patch{"name": "nut"})
	require.NoError(t, err)
	assert.Equal(t, "nut", updated.Name)
	assert.Equal(t, []string{"m8"}, updated.Tags)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
