package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapdash/dashboard/internal/core/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

type view struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

func TestConnect(t *testing.T) {
	mr, _ := setupTestRedis(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestConnect_Password(t *testing.T) {
	mr, _ := setupTestRedis(t)
	mr.RequireAuth("s3cret")

	_, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond})
	assert.Error(t, err)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "s3cret"})
	require.NoError(t, err)
	_ = client.Close()
}

func TestPinger(t *testing.T) {
	mr, client := setupTestRedis(t)
	ping := Pinger(client)

	assert.NoError(t, ping(context.Background()))

	mr.Close()
	assert.Error(t, ping(context.Background()))
}

func TestViewCache_RoundTrip(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewViewCache(client, time.Minute)
	ctx := context.Background()

	var got []view
	hit, err := c.Get(ctx, "/dashboard/invoices", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	want := []view{{ID: "a", Amount: 49.99}}
	require.NoError(t, c.Set(ctx, "/dashboard/invoices", want))
	assert.True(t, mr.Exists("view:/dashboard/invoices"))
	assert.Equal(t, time.Minute, mr.TTL("view:/dashboard/invoices"))

	hit, err = c.Get(ctx, "/dashboard/invoices", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestViewCache_Invalidate(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewViewCache(client, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/dashboard/invoices", []view{{ID: "a"}}))
	require.NoError(t, c.Invalidate(ctx, "/dashboard/invoices"))
	assert.False(t, mr.Exists("view:/dashboard/invoices"))

	// invalidating an absent view is fine
	require.NoError(t, c.Invalidate(ctx, "/dashboard/invoices"))
}

func TestViewCache_CorruptPayload(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewViewCache(client, 0)
	require.NoError(t, mr.Set("view:/dashboard/invoices", "{not json"))

	var got []view
	hit, err := c.Get(context.Background(), "/dashboard/invoices", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestViewCache_ExpiresWithTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewViewCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/dashboard/invoices", []view{{ID: "a"}}))
	mr.FastForward(2 * time.Minute)

	var got []view
	hit, err := c.Get(ctx, "/dashboard/invoices", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewSessionStore(client)
	ctx := context.Background()
	user := &domain.SessionUser{ID: "u-1", Name: "User", Email: "user@nextmail.com"}

	require.NoError(t, s.Save(ctx, "sid", user, time.Hour))
	assert.True(t, mr.Exists("session:sid"))

	got, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	require.NoError(t, s.Delete(ctx, "sid"))
	_, err = s.Get(ctx, "sid")
	assert.True(t, errors.Is(err, domain.ErrNoSession))

	// revoking twice is a no-op
	require.NoError(t, s.Delete(ctx, "sid"))
}

func TestSessionStore_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid", &domain.SessionUser{ID: "u-1"}, time.Minute))
	mr.FastForward(time.Minute + time.Second)

	_, err := s.Get(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSessionStore_BackendDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewSessionStore(client)
	mr.Close()

	_, err := s.Get(context.Background(), "sid")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNoSession), "a broken store must not look like a missing session")
}
