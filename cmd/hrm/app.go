package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-hr-console/api"
	"github.com/jrsteele09/go-hr-console/internal/config"
	"github.com/jrsteele09/go-hr-console/query"
	"github.com/jrsteele09/go-hr-console/session"
	"github.com/jrsteele09/go-hr-console/session/storage"
)

const sessionFile = "session.json"

// app is one process's data-sync layer: session store, API client and query cache, wired the
// same way the SPA wires them at boot
type app struct {
	out     io.Writer
	errOut  io.Writer
	store   *session.Store
	client  *api.Client
	cache   *query.Client
	closers []func() error

	employees    *query.Employees
	departments  *query.Departments
	designations *query.Designations
	roles        *query.Roles
}

func newApp(ctx context.Context, c config.Config, out, errOut io.Writer, clientOptions ...api.ClientOption) (*app, error) {
	a := &app{out: out, errOut: errOut}

	st, err := a.openStorage(ctx, c)
	if err != nil {
		return nil, err
	}

	creds := &storeCredentials{}
	options := append([]api.ClientOption{api.WithTimeout(c.GetRequestTimeout())}, clientOptions...)
	a.client, err = api.New(c.GetAPIBaseURL(), creds, options...)
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "[newApp] api client")
	}
	a.store, err = session.New(st, a.client)
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "[newApp] session store")
	}
	creds.store = a.store

	a.cache = query.NewClient(query.WithRetry(c.GetQueryRetries()))
	query.ClearOnLogout(a.store, a.cache)

	notifier := query.WithNotifier(newTerminalNotifier(errOut))
	stale := query.WithStaleTime(c.GetStaleTime())
	a.employees = query.NewEmployees(a.cache, a.client.Users(), notifier, stale)
	a.departments = query.NewDepartments(a.cache, a.client.Departments(), notifier, stale)
	a.designations = query.NewDesignations(a.cache, a.client.Designations(), notifier, stale)
	a.roles = query.NewRoles(a.cache, a.client.Roles(), notifier, query.WithStaleTime(c.GetRolesStaleTime()))
	return a, nil
}

func (a *app) openStorage(ctx context.Context, c config.Config) (storage.Storage, error) {
	switch backend := c.GetStorageBackend(); backend {
	case config.StorageMemory:
		return storage.NewMemory(), nil
	case config.StorageRedis:
		client, err := storage.NewRedisClient(ctx, c.GetRedisAddr(), c.GetRedisPassword(), c.GetRedisDB())
		if err != nil {
			return nil, errors.Wrap(err, "[newApp] redis storage")
		}
		a.closers = append(a.closers, client.Close)
		return storage.NewRedis(client, c.GetRedisKeyPrefix()), nil
	default:
		var options []storage.FileOption
		if passphrase := c.GetSessionPassphrase(); passphrase != "" {
			options = append(options, storage.WithPassphrase(passphrase))
		}
		return storage.NewFile(filepath.Join(c.GetDataFolder(), sessionFile), options...)
	}
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Wait()
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && !errors.Is(err, redis.ErrClosed) {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

// storeCredentials hands the client the store's credential once the store exists; the store
// in turn needs the client as its authenticator
type storeCredentials struct {
	store *session.Store
}

func (s *storeCredentials) Credentials() (string, string, bool) {
	if s.store == nil {
		return "", "", false
	}
	return s.store.Credentials()
}

func (s *storeCredentials) Expire() {
	if s.store != nil {
		s.store.Expire()
	}
}
