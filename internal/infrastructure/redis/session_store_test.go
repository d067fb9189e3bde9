package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewSessionStore(client)
}

func TestSessionStore_GuardarLeerBorrar(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	store.now = func() time.Time { return now }

	sess := &entity.Session{ID: "abc", UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "abc"))
	got, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Vencimiento(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s1", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// una sesión ya vencida no se guarda
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s2", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(-time.Second)}))
	assert.False(t, mr.Exists(keyPrefix+"s2"))
}

func TestSessionStore_ErrorDeConexion(t *testing.T) {
	mr, store := setupStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "x")
	assert.Error(t, err)
}
