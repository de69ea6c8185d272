package profile

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/quantum-trade/internal/storage/memory"
	"github.com/hongminglow/quantum-trade/internal/userdb"
)

func newRegistry(t *testing.T, capacity int) (*Registry, *memory.Store) {
	t.Helper()
	backend := memory.New()
	r := NewRegistry(backend, capacity, time.Minute, nil, userdb.WithHasher(userdb.BcryptHasher{Cost: bcrypt.MinCost}))
	t.Cleanup(r.Close)
	return r, backend
}

func TestRegistry_GetCachesWithoutWriting(t *testing.T) {
	ctx := context.Background()
	r, backend := newRegistry(t, 0)

	p, err := r.Get(ctx, "p1")
	require.NoError(t, err)
	again, err := r.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Same(t, p, again)
	assert.Equal(t, 1, r.Len())
	assert.Zero(t, backend.Len(), "opening a profile writes nothing")

	users, err := p.Users.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	res, err := p.Users.Register(ctx, userdb.Candidate{Name: "A", Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	require.True(t, res.Success)
	_, ok, err := backend.Get(ctx, "profile/p1:"+userdb.UsersKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistry_CapacityBoundsCache(t *testing.T) {
	ctx := context.Background()
	r, backend := newRegistry(t, 3)

	first, err := r.Get(ctx, "p0")
	require.NoError(t, err)
	first.Notifications.Notify("pending", "info")

	for i := 1; i < 100; i++ {
		p, err := r.Get(ctx, fmt.Sprintf("p%d", i))
		require.NoError(t, err)
		p.Notifications.Notify("hello", "info")
	}
	assert.Equal(t, 3, r.Len())
	assert.Zero(t, backend.Len())

	_, ok := first.Notifications.Current()
	assert.False(t, ok, "eviction dismisses the pending notification")

	// an evicted profile reopens over the same stored data
	res, err := first.Users.Register(ctx, userdb.Candidate{Name: "A", Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	require.True(t, res.Success)
	reopened, err := r.Get(ctx, "p0")
	require.NoError(t, err)
	assert.NotSame(t, first, reopened)
	u, err := reopened.Users.RequireUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestRegistry_ConcurrentGetSharesProfile(t *testing.T) {
	ctx := context.Background()
	r, _ := newRegistry(t, 0)

	const n = 16
	got := make([]*Profile, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := r.Get(ctx, "shared")
			assert.NoError(t, err)
			got[i] = p
		}(i)
	}
	wg.Wait()
	for _, p := range got[1:] {
		assert.Same(t, got[0], p)
	}
}

func TestRegistry_EmptyID(t *testing.T) {
	r, _ := newRegistry(t, 0)
	_, err := r.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestRegistry_ProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	r, _ := newRegistry(t, 0)

	a, err := r.Get(ctx, "a")
	require.NoError(t, err)
	b, err := r.Get(ctx, "b")
	require.NoError(t, err)

	res, err := a.Users.Register(ctx, userdb.Candidate{Name: "A", Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	require.True(t, res.Success)

	_, ok, err := b.Users.CurrentUser(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, a.Preferences.SetLanguage(ctx, "en"))
	lang, err := b.Preferences.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ru", lang)

	a.Notifications.Notify("hi", "success")
	_, ok = b.Notifications.Current()
	assert.False(t, ok)
}

func TestPreferences_Language(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	p := NewPreferences(kv)

	lang, err := p.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ru", lang)

	require.NoError(t, p.SetLanguage(ctx, "en"))
	lang, err = p.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", lang)

	err = p.SetLanguage(ctx, "xx")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	// a value written by something else falls back to the default
	require.NoError(t, kv.Set(ctx, LanguageKey, "klingon"))
	lang, err = p.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ru", lang)
}
