package query

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultStaleTime = 5 * time.Minute
	RolesStaleTime   = time.Hour
)

type hookConfig struct {
	notifier  Notifier
	staleTime time.Duration
}

// HookOption configures a resource hook set
type HookOption func(*hookConfig)

func WithNotifier(n Notifier) HookOption {
	return func(cfg *hookConfig) {
		cfg.notifier = n
	}
}

// WithStaleTime overrides the resource's staleness window; detail reads share it
func WithStaleTime(d time.Duration) HookOption {
	return func(cfg *hookConfig) {
		cfg.staleTime = d
	}
}

func newHookConfig(staleTime time.Duration, options []HookOption) hookConfig {
	cfg := hookConfig{staleTime: staleTime}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.notifier == nil {
		cfg.notifier = LogNotifier(log.Logger)
	}
	return cfg
}

// mutate runs a write and emits exactly one notification for it
func mutate[T any](n Notifier, write func() (T, error), done func(T) Notification, failTitle, failFallback string) (T, error) {
	v, err := write()
	if err != nil {
		n.Notify(failure(failTitle, err, failFallback))
		return v, err
	}
	n.Notify(done(v))
	return v, nil
}
