package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/petasbytes/toolloop/internal/store"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every Store must share.
func runContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, "pokemon:ash", []byte(`["Pikachu"]`)))
	require.NoError(t, s.Put(ctx, "pokemon:misty", []byte(`["Staryu"]`)))
	require.NoError(t, s.Put(ctx, "patients:1", []byte(`{}`)))

	got, err := s.Get(ctx, "pokemon:ash")
	require.NoError(t, err)
	assert.Equal(t, `["Pikachu"]`, string(got))

	keys, err := s.Keys(ctx, "pokemon:")
	require.NoError(t, err)
	assert.Equal(t, []string{"pokemon:ash", "pokemon:misty"}, keys)

	require.NoError(t, s.Put(ctx, "pokemon:ash", []byte(`["Pikachu","Charmander"]`)))
	got, err = s.Get(ctx, "pokemon:ash")
	require.NoError(t, err)
	assert.Equal(t, `["Pikachu","Charmander"]`, string(got))

	require.NoError(t, s.Delete(ctx, "pokemon:ash"))
	_, err = s.Get(ctx, "pokemon:ash")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, s.Delete(ctx, "pokemon:ash"))

	type record struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	require.NoError(t, store.PutJSON(ctx, s, "patients:2", record{Name: "Ada", Age: 12}))
	var r record
	require.NoError(t, store.GetJSON(ctx, s, "patients:2", &r))
	assert.Equal(t, record{Name: "Ada", Age: 12}, r)

	require.NoError(t, s.Put(ctx, "patients:bad", []byte("{")))
	assert.Error(t, store.GetJSON(ctx, s, "patients:bad", &r))
}

func TestMemory_Contract(t *testing.T) {
	runContract(t, store.NewMemory())
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", v))
	v[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedis_Contract(t *testing.T) {
	_, client := newMiniredis(t)
	r := store.NewRedisFromClient(client)
	t.Cleanup(func() { _ = r.Close() })

	require.NoError(t, r.Ping(context.Background()))
	runContract(t, r)
}

func TestRedis_PrefixAndTTL(t *testing.T) {
	mr, client := newMiniredis(t)
	r := store.NewRedisFromClient(client, store.WithPrefix("test:"), store.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "k", []byte("v")))
	assert.True(t, mr.Exists("test:k"))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(2 * time.Minute)
	_, err := r.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNewRedis_Address(t *testing.T) {
	mr, _ := newMiniredis(t)
	r := store.NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Put(context.Background(), "a", []byte("1")))
	assert.True(t, mr.Exists(store.DefaultRedisPrefix+"a"))
}
