// Package userdb keeps registered users and the current session in a key-value store.
//
// The whole collection lives under one key as a JSON array; the session slot
// holds a full copy of the logged-in record. Lookups scan the collection, which
// is fine for the handful of accounts a single profile holds.
package userdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/i18n"
	"github.com/hongminglow/quantum-trade/internal/models"
	"github.com/hongminglow/quantum-trade/internal/storage"
)

// Persisted keys.
const (
	UsersKey   = "quantum_users"
	SessionKey = "quantum_user"
)

// DefaultInitialBalance is credited to every new account.
const DefaultInitialBalance = 10000

// Candidate is the registration input. Confirmation and length checks are the caller's job.
type Candidate struct {
	Name     string
	Email    string
	Password string
}

// Recorder receives operation outcomes for metrics.
type Recorder interface {
	RecordRegister(outcome string)
	RecordLogin(outcome string)
	RecordLogout()
}

type nopRecorder struct{}

func (nopRecorder) RecordRegister(string) {}
func (nopRecorder) RecordLogin(string)    {}
func (nopRecorder) RecordLogout()         {}

// Store is the user database for one key-value namespace.
type Store struct {
	kv             storage.KeyValueStore
	hasher         PasswordHasher
	newID          func() string
	now            func() time.Time
	initialBalance float64
	log            *zap.Logger
	metrics        Recorder

	// serializes read-modify-write of the collection within this process
	mu sync.Mutex
}

// Option customizes a Store.
type Option func(*Store)

// WithHasher replaces the bcrypt hasher.
func WithHasher(h PasswordHasher) Option { return func(s *Store) { s.hasher = h } }

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(f func() string) Option { return func(s *Store) { s.newID = f } }

// WithClock replaces time.Now.
func WithClock(f func() time.Time) Option { return func(s *Store) { s.now = f } }

// WithInitialBalance sets the balance credited at registration.
func WithInitialBalance(b float64) Option { return func(s *Store) { s.initialBalance = b } }

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option { return func(s *Store) { s.metrics = r } }

// New builds a Store over kv. An absent collection reads as empty, so Initialize is optional.
func New(kv storage.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:             kv,
		hasher:         BcryptHasher{},
		newID:          func() string { return uuid.NewString() },
		now:            time.Now,
		initialBalance: DefaultInitialBalance,
		log:            zap.NewNop(),
		metrics:        nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize writes an empty collection if none exists. Safe to call on every startup.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.kv.Get(ctx, UsersKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", UsersKey, err)
	}
	if ok {
		return nil
	}
	if err := s.kv.Set(ctx, UsersKey, "[]"); err != nil {
		return fmt.Errorf("initialize %s: %w", UsersKey, err)
	}
	return nil
}

// Register appends a new user unless the email is taken, then logs the user in.
func (s *Store) Register(ctx context.Context, c Candidate) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return Result{}, err
	}
	if _, found := findByEmail(users, c.Email); found {
		s.metrics.RecordRegister(string(OutcomeDuplicateEmail))
		s.log.Info("registration rejected", zap.String("reason", string(OutcomeDuplicateEmail)))
		return failed(OutcomeDuplicateEmail, i18n.DuplicateEmail), nil
	}

	hash, err := s.hasher.Hash(c.Password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:           s.newID(),
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
		Balance:      s.initialBalance,
		Verified:     false,
	}
	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return Result{}, err
	}

	// auto-login with the record just written
	if err := s.openSession(ctx, user); err != nil {
		return Result{}, err
	}

	s.metrics.RecordRegister(string(OutcomeOK))
	s.log.Info("user registered", zap.String("user_id", user.ID))
	return succeeded(i18n.RegisterOK, &user), nil
}

// Login copies the record matching email and password into the session slot.
// A failed login leaves any existing session untouched.
func (s *Store) Login(ctx context.Context, email, password string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return Result{}, err
	}
	res, err := s.login(ctx, users, email, password)
	if err != nil {
		return Result{}, err
	}
	s.metrics.RecordLogin(string(res.Outcome))
	return res, nil
}

func (s *Store) login(ctx context.Context, users []models.User, email, password string) (Result, error) {
	for i := range users {
		u := users[i]
		if u.Email != email || !s.hasher.Verify(u.PasswordHash, password) {
			continue
		}
		if err := s.openSession(ctx, u); err != nil {
			return Result{}, err
		}
		return succeeded(i18n.LoginOK, &u), nil
	}
	return failed(OutcomeInvalidCredentials, i18n.InvalidCredentials), nil
}

// openSession copies u into the session slot.
func (s *Store) openSession(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, SessionKey, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", SessionKey, err)
	}
	s.log.Debug("session opened", zap.String("user_id", u.ID))
	return nil
}

// Logout clears the session slot. Logging out twice is fine.
func (s *Store) Logout(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, SessionKey); err != nil {
		return Result{}, fmt.Errorf("remove %s: %w", SessionKey, err)
	}
	s.metrics.RecordLogout()
	return succeeded(i18n.LogoutOK, nil), nil
}

// CurrentUser returns the session copy, with ok == false when logged out.
// A stored JSON null also reads as logged out.
func (s *Store) CurrentUser(ctx context.Context) (models.User, bool, error) {
	raw, ok, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		return models.User{}, false, fmt.Errorf("read %s: %w", SessionKey, err)
	}
	if !ok || strings.TrimSpace(raw) == "null" {
		return models.User{}, false, nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.User{}, false, fmt.Errorf("%w: %s: %v", ErrCorruptStore, SessionKey, err)
	}
	if u.ID == "" {
		return models.User{}, false, fmt.Errorf("%w: %s: record without id", ErrCorruptStore, SessionKey)
	}
	return u, true, nil
}

// RequireUser is CurrentUser for callers that need a session.
func (s *Store) RequireUser(ctx context.Context) (models.User, error) {
	u, ok, err := s.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrNotAuthenticated
	}
	return u, nil
}

// Users returns the whole collection in registration order.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers(ctx)
}

// loadUsers treats a missing key as an empty collection and rejects anything that isn't a JSON array of users.
func (s *Store) loadUsers(ctx context.Context) ([]models.User, error) {
	raw, ok, err := s.kv.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", UsersKey, err)
	}
	if !ok {
		return []models.User{}, nil
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, UsersKey, err)
	}
	if users == nil {
		// "null" decodes without error
		return nil, fmt.Errorf("%w: %s: not an array", ErrCorruptStore, UsersKey)
	}
	return users, nil
}

func (s *Store) saveUsers(ctx context.Context, users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode %s: %w", UsersKey, err)
	}
	if err := s.kv.Set(ctx, UsersKey, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", UsersKey, err)
	}
	return nil
}

func findByEmail(users []models.User, email string) (models.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}
