package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/session/storage"
	"github.com/jrsteele09/go-hr-console/tenants"
	"github.com/jrsteele09/go-hr-console/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultStorageTimeout = 5 * time.Second

// Authenticator exchanges credentials for a token at the authentication endpoint
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string, tenantCode tenants.Code) (*Grant, error)
}

// Store is the single source of truth for "is there a usable session" and the only
// component that reads or writes the persisted credential.
//
// States are Anonymous and Authenticated. Anonymous -> Authenticated only through Login;
// Authenticated -> Anonymous through Logout or Expire (a 401 seen by the API client).
type Store struct {
	lock           sync.Mutex
	state          State
	storage        storage.Storage
	auth           Authenticator
	listeners      []func(Reason)
	listenersLock  sync.RWMutex
	storageTimeout time.Duration
	logger         zerolog.Logger
}

type StoreOption func(*Store)

func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithStorageTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.storageTimeout = d
	}
}

// New restores any persisted session so a restart does not force a new login
func New(store storage.Storage, auth Authenticator, options ...StoreOption) (*Store, error) {
	if store == nil {
		return nil, errors.New("[session.New] storage is required")
	}
	if auth == nil {
		return nil, errors.New("[session.New] authenticator is required")
	}

	s := &Store{
		storage:        store,
		auth:           auth,
		storageTimeout: defaultStorageTimeout,
		logger:         log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}

	s.hydrate()
	return s, nil
}

func (s *Store) hydrate() {
	ctx, cancel := s.storageContext()
	defer cancel()

	raw, ok, err := s.storage.Get(ctx, StorageKeySession)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not read persisted session, starting anonymous")
		return
	}
	if !ok || raw == "" {
		return
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Warn().Err(err).Msg("persisted session is corrupt, starting anonymous")
		return
	}
	s.state = state
}

// Login authenticates against the server. Any failure leaves the store anonymous, in memory
// and in storage, and returns the error for display.
func (s *Store) Login(ctx context.Context, email, password, tenantCode string) (bool, error) {
	grant, code, err := s.authenticate(ctx, email, password, tenantCode)
	if err != nil {
		s.clear(ReasonLoginFailed)
		return false, err
	}

	s.lock.Lock()
	s.state = State{
		Token:           grant.Token,
		TenantCode:      code.String(),
		User:            grant.User,
		IsAuthenticated: true,
	}
	err = s.persistAll()
	s.lock.Unlock()

	if err != nil {
		s.clear(ReasonLoginFailed)
		return false, errors.Wrap(err, "[Store.Login] persist session")
	}

	ev := s.logger.Info().Str("tenant", code.String())
	if grant.User != nil {
		ev = ev.Str("user_id", grant.User.ID)
	}
	if in, err := token.Inspect(grant.Token); err == nil && !in.ExpiresAt.IsZero() {
		ev = ev.Time("expires_at", in.ExpiresAt)
	}
	ev.Msg("login succeeded")
	return true, nil
}

func (s *Store) authenticate(ctx context.Context, email, password, tenantCode string) (*Grant, tenants.Code, error) {
	code, err := tenants.ParseCode(tenantCode)
	if err != nil {
		return nil, "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", hrerrors.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, "", hrerrors.NewValidationError("password", "is required")
	}

	grant, err := s.auth.Authenticate(ctx, email, password, code)
	if err != nil {
		s.logger.Debug().Err(err).Str("tenant", code.String()).Msg("login rejected")
		return nil, "", err
	}
	// A 2xx without a token is otherwise indistinguishable from success
	if grant == nil || strings.TrimSpace(grant.Token) == "" {
		return nil, "", &hrerrors.AuthenticationError{Message: hrerrors.ErrNoTokenIssued.Error(), Err: hrerrors.ErrNoTokenIssued}
	}
	return grant, code, nil
}

// Logout clears the session in memory and in storage. It never fails.
func (s *Store) Logout() {
	s.clear(ReasonLogout)
	s.logger.Info().Msg("logged out")
}

// Expire is the session-expiry side channel: the API client calls it on a 401
func (s *Store) Expire() {
	s.clear(ReasonExpired)
	s.logger.Warn().Msg(hrerrors.SessionExpiredMessage)
}

// CheckAuth reconciles storage with memory and reports whether token, tenant code and the
// authenticated flag are all present. An in-memory session whose persisted credential has
// disappeared is dropped.
func (s *Store) CheckAuth() bool {
	s.lock.Lock()
	ctx, cancel := s.storageContext()
	defer cancel()

	storedToken, hasToken, errToken := s.storage.Get(ctx, StorageKeyToken)
	storedTenant, hasTenant, errTenant := s.storage.Get(ctx, StorageKeyTenantCode)
	if errToken != nil || errTenant != nil {
		s.lock.Unlock()
		s.logger.Warn().Err(firstErr(errToken, errTenant)).Msg("auth check could not read storage")
		return false
	}

	persisted := hasToken && storedToken != "" && hasTenant && storedTenant != ""
	if s.state.IsAuthenticated && !persisted {
		s.state = State{}
		s.removeAll(ctx)
		s.lock.Unlock()
		s.logger.Warn().Msg("persisted credential missing, session reset")
		s.notify(ReasonReconciled)
		return false
	}

	ok := persisted && s.state.IsAuthenticated && s.state.Token != "" && s.state.TenantCode != ""
	s.lock.Unlock()
	return ok
}

// UpdateUser shallow-merges patch into the current user; without a user it does nothing
func (s *Store) UpdateUser(patch UserPatch) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state.User == nil {
		return
	}
	patch.apply(s.state.User)
	if err := s.persistState(); err != nil {
		s.logger.Warn().Err(err).Msg("could not persist user update")
	}
}

// SetToken replaces the token in memory and storage
func (s *Store) SetToken(raw string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.Token = raw
	return s.persistAll()
}

func (s *Store) SetTenantCode(tenantCode string) error {
	code, err := tenants.ParseCode(tenantCode)
	if err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.TenantCode = code.String()
	return s.persistAll()
}

// Credentials hands the API client what it needs to authorise a request
func (s *Store) Credentials() (string, string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state.Token, s.state.TenantCode, s.state.Token != "" && s.state.TenantCode != ""
}

func (s *Store) Snapshot() State {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state.clone()
}

// ExpiresAt reads the exp claim when the token is a JWT
func (s *Store) ExpiresAt() (time.Time, bool) {
	raw, _, ok := s.Credentials()
	if !ok {
		return time.Time{}, false
	}
	in, err := token.Inspect(raw)
	if err != nil || in.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return in.ExpiresAt, true
}

// OnLogout registers fn to run whenever the session ends, whatever the reason
func (s *Store) OnLogout(fn func(Reason)) {
	s.listenersLock.Lock()
	defer s.listenersLock.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) clear(reason Reason) {
	s.lock.Lock()
	ctx, cancel := s.storageContext()
	s.state = State{}
	s.removeAll(ctx)
	cancel()
	s.lock.Unlock()

	s.notify(reason)
}

func (s *Store) notify(reason Reason) {
	s.listenersLock.RLock()
	listeners := append([]func(Reason){}, s.listeners...)
	s.listenersLock.RUnlock()

	for _, fn := range listeners {
		fn(reason)
	}
}

// removeAll must run with the lock held. Errors are logged only: logout never fails.
func (s *Store) removeAll(ctx context.Context) {
	if err := s.storage.Remove(ctx, StorageKeyToken, StorageKeyTenantCode, StorageKeySession); err != nil {
		s.logger.Error().Err(err).Msg("could not clear persisted session")
	}
}

// persistAll must run with the lock held
func (s *Store) persistAll() error {
	ctx, cancel := s.storageContext()
	defer cancel()

	if err := s.storage.Set(ctx, StorageKeyToken, s.state.Token); err != nil {
		return errors.Wrap(err, "[Store.persistAll] token")
	}
	if err := s.storage.Set(ctx, StorageKeyTenantCode, s.state.TenantCode); err != nil {
		return errors.Wrap(err, "[Store.persistAll] tenant_code")
	}
	return s.persistStateCtx(ctx)
}

func (s *Store) persistState() error {
	ctx, cancel := s.storageContext()
	defer cancel()
	return s.persistStateCtx(ctx)
}

func (s *Store) persistStateCtx(ctx context.Context) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return errors.Wrap(err, "[Store.persistState] Marshal")
	}
	return errors.Wrap(s.storage.Set(ctx, StorageKeySession, string(data)), "[Store.persistState] Set")
}

func (s *Store) storageContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.storageTimeout)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
