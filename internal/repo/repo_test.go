package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSSLMode(t *testing.T) {
	assert.Equal(t, "user=x sslmode=disable", withSSLMode("user=x sslmode=disable"))
	assert.Equal(t, "user=x dbname=y sslmode=require", withSSLMode("user=x dbname=y"))
	assert.Equal(t, "postgres://h/db?sslmode=require", withSSLMode("postgres://h/db"))
	assert.Equal(t, "postgresql://h/db?connect_timeout=5&sslmode=require", withSSLMode("postgresql://h/db?connect_timeout=5"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, clampLimit(0))
	assert.Equal(t, 20, clampLimit(-3))
	assert.Equal(t, 20, clampLimit(101))
	assert.Equal(t, 7, clampLimit(7))
}

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	_, err = m.CreateUser(ctx, "ada", "other@example.com", "hash")
	assert.Error(t, err)
	_, err = m.CreateUser(ctx, "bob", "ada@example.com", "hash")
	assert.Error(t, err)

	got, hash, err := m.GetBylogin(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "hash", hash)

	got, _, err = m.GetBylogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMemory_Sweeps(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	for i := range 3 {
		_, err := m.SaveSweep(ctx, SweepRecord{UserID: 1, Kind: "binary", Count: i, Points: json.RawMessage(`[]`)})
		require.NoError(t, err)
	}
	_, err := m.SaveSweep(ctx, SweepRecord{UserID: 2, Kind: "ternary"})
	require.NoError(t, err)

	list, err := m.ListSweeps(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].ID, "newest first")
	assert.Equal(t, 2, list[1].ID)
	assert.Nil(t, list[0].Points)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))

	rec, err := m.GetSweep(ctx, 1, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(rec.Points))

	_, err = m.GetSweep(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
