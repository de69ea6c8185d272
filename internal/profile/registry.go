// Package profile maps a browser profile to its own user database, preferences
// and notification slot, all backed by one shared key-value store.
package profile

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/notify"
	"github.com/hongminglow/quantum-trade/internal/storage"
	"github.com/hongminglow/quantum-trade/internal/userdb"
)

// DefaultCapacity bounds the profile cache when no capacity is configured.
const DefaultCapacity = 1024

// ErrEmptyID is returned for a blank profile id.
var ErrEmptyID = errors.New("profile id is required")

// Profile bundles everything scoped to one browser profile.
type Profile struct {
	ID            string
	Users         *userdb.Store
	Preferences   *Preferences
	Notifications *notify.Presenter
}

// Registry builds profiles on first use and keeps the most recently used ones.
// Opening a profile touches no storage; keys appear with the first write.
type Registry struct {
	backend   storage.KeyValueStore
	userOpts  []userdb.Option
	notifyTTL time.Duration
	log       *zap.Logger

	profiles *lru.Cache[string, *Profile]
}

// NewRegistry returns a Registry over backend holding at most capacity profiles.
// userOpts are applied to every user store.
func NewRegistry(backend storage.KeyValueStore, capacity int, notifyTTL time.Duration, log *zap.Logger, userOpts ...userdb.Option) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := &Registry{
		backend:   backend,
		userOpts:  userOpts,
		notifyTTL: notifyTTL,
		log:       log,
	}
	// only fails for a non-positive size
	r.profiles, _ = lru.NewWithEvict(capacity, r.evicted)
	return r
}

// Get returns the profile for id. The context is unused while opening, which
// does no I/O, and is kept for callers that pass request scope.
func (r *Registry) Get(_ context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if p, ok := r.profiles.Get(id); ok {
		return p, nil
	}

	kv := storage.Namespace(r.backend, "profile/"+id)
	opts := append([]userdb.Option{userdb.WithLogger(r.log.With(zap.String("profile_id", id)))}, r.userOpts...)
	p := &Profile{
		ID:            id,
		Users:         userdb.New(kv, opts...),
		Preferences:   NewPreferences(kv),
		Notifications: notify.NewPresenter(r.notifyTTL),
	}
	// a concurrent Get may have won the race; keep its profile so both share one store lock
	if prev, ok, _ := r.profiles.PeekOrAdd(id, p); ok {
		return prev, nil
	}
	r.log.Debug("profile opened", zap.String("profile_id", id))
	return p, nil
}

// Len reports how many profiles are cached.
func (r *Registry) Len() int {
	return r.profiles.Len()
}

// Close drops every cached profile, dismissing pending notifications so their timers stop.
func (r *Registry) Close() {
	r.profiles.Purge()
}

func (r *Registry) evicted(id string, p *Profile) {
	p.Notifications.Dismiss()
	r.log.Debug("profile evicted", zap.String("profile_id", id))
}
