package query

import (
	"context"
	"strconv"
	"sync"
	"time"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRetries   = 3
	maxRetryDelay    = 30 * time.Second
	initialRetryWait = time.Second
)

// Policy is the per-resource read policy
type Policy struct {
	// StaleTime is how long a successful read is served from cache without a network call
	StaleTime time.Duration
}

type loader func(ctx context.Context) (any, error)

type entry struct {
	data        any
	hasData     bool
	err         error
	updatedAt   time.Time
	invalidated bool
	// gen changes whenever a newer request supersedes the ones in flight
	gen  uint64
	load loader
}

// Client is the process-wide query cache. It is the only owner of cache entries: views read
// through Fetch or an Observer and the hook sets write through Invalidate, SetData and Remove.
type Client struct {
	lock     sync.Mutex
	entries  map[Key]*entry
	watchers map[Key]map[*watch]struct{}
	gen      uint64

	group      singleflight.Group
	work       sync.WaitGroup
	now        func() time.Time
	retries    int
	retryDelay func(attempt int) time.Duration
	logger     zerolog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithNowFunc(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// WithRetry sets how many times a failed read is retried. Negative values mean no retries.
func WithRetry(retries int) ClientOption {
	return func(c *Client) {
		if retries < 0 {
			retries = 0
		}
		c.retries = retries
	}
}

// WithRetryDelay replaces the exponential backoff between retries
func WithRetryDelay(delay func(attempt int) time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = delay
	}
}

func NewClient(options ...ClientOption) *Client {
	c := &Client{
		entries:    make(map[Key]*entry),
		watchers:   make(map[Key]map[*watch]struct{}),
		now:        time.Now,
		retries:    DefaultRetries,
		retryDelay: backoff,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// backoff doubles from one second and caps at thirty
func backoff(attempt int) time.Duration {
	if attempt >= 5 {
		return maxRetryDelay
	}
	return min(initialRetryWait<<attempt, maxRetryDelay)
}

// Fetch reads key through the cache. A fresh entry is returned as is. A time-stale entry is
// returned immediately and refreshed in the background. A missing or invalidated entry blocks
// on a load shared by every concurrent reader of the same key.
func Fetch[T any](ctx context.Context, c *Client, key Key, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.fetch(ctx, key, policy, erase(fn), false)
	return cast[T](v, err)
}

// Refetch ignores the cached value and supersedes any load already in flight for key
func Refetch[T any](ctx context.Context, c *Client, key Key, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.fetch(ctx, key, policy, erase(fn), true)
	return cast[T](v, err)
}

// GetData returns the cached value for key without any network activity
func GetData[T any](c *Client, key Key) (T, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	var zero T
	e, ok := c.entries[key]
	if !ok || !e.hasData {
		return zero, false
	}
	v, ok := e.data.(T)
	return v, ok
}

func erase[T any](fn func(ctx context.Context) (T, error)) loader {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}

func cast[T any](v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, _ := v.(T)
	return t, nil
}

func (c *Client) fetch(ctx context.Context, key Key, policy Policy, load loader, force bool) (any, error) {
	c.lock.Lock()
	e := c.entryLocked(key)
	e.load = load

	if force {
		e.gen = c.nextGenLocked()
	} else if e.hasData && !e.invalidated {
		data := e.data
		if c.now().Sub(e.updatedAt) >= policy.StaleTime {
			c.logger.Debug().Str("key", key.String()).Msg("serving stale entry, revalidating")
			c.startLocked(ctx, key, e)
		}
		c.lock.Unlock()
		return data, nil
	}

	ch := c.startLocked(ctx, key, e)
	c.lock.Unlock()

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// startLocked joins or starts the load for the entry's current generation. The load itself is
// detached from ctx: one caller giving up must not fail the others sharing it.
func (c *Client) startLocked(ctx context.Context, key Key, e *entry) <-chan singleflight.Result {
	gen := e.gen
	load := e.load
	flight := key.String() + "@" + strconv.FormatUint(gen, 10)
	detached := context.WithoutCancel(ctx)

	shared := c.group.DoChan(flight, func() (any, error) {
		v, err := c.run(detached, key, load)
		c.settle(key, e, gen, v, err)
		return v, err
	})

	out := make(chan singleflight.Result, 1)
	c.work.Add(1)
	go func() {
		defer c.work.Done()
		out <- <-shared
	}()
	return out
}

// run calls load, retrying failures that a retry could fix
func (c *Client) run(ctx context.Context, key Key, load loader) (any, error) {
	for attempt := 0; ; attempt++ {
		v, err := load(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= c.retries || !retryable(err) {
			return nil, err
		}

		wait := c.retryDelay(attempt)
		c.logger.Debug().Err(err).Str("key", key.String()).Int("attempt", attempt+1).Dur("wait", wait).Msg("read failed, retrying")
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, err
			}
		}
	}
}

// retryable excludes failures that cannot change on retry: a rejected session, a missing
// credential, or input rejected before any request was made
func retryable(err error) bool {
	return !hrerrors.IsSessionExpired(err) &&
		!hrerrors.Is(err, hrerrors.ErrUnauthenticated) &&
		!hrerrors.IsValidation(err)
}

// settle applies a load result only if nothing newer has been requested for the key since
func (c *Client) settle(key Key, e *entry, gen uint64, v any, err error) {
	c.lock.Lock()
	if cur, ok := c.entries[key]; !ok || cur != e || e.gen != gen {
		c.lock.Unlock()
		c.logger.Debug().Str("key", key.String()).Msg("discarding superseded response")
		return
	}
	if err != nil {
		e.err = err
	} else {
		e.data = v
		e.hasData = true
		e.err = nil
		e.updatedAt = c.now()
		e.invalidated = false
	}
	watchers := c.watchersLocked(key)
	c.lock.Unlock()

	notifyAll(watchers)
}

// Invalidate marks every entry of resource and kind as needing a reload, whatever its params.
// Entries that a view is watching are reloaded in the background straight away.
func (c *Client) Invalidate(resource string, kind Kind) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for key, e := range c.entries {
		if key.Resource != resource || key.Kind != kind {
			continue
		}
		e.invalidated = true
		e.gen = c.nextGenLocked()
		if len(c.watchers[key]) > 0 && e.load != nil {
			c.startLocked(context.Background(), key, e)
		}
	}
}

// SetData replaces the entry for key with v, as if it had just been read from the server
func (c *Client) SetData(key Key, v any) {
	c.lock.Lock()
	e := c.entryLocked(key)
	e.data = v
	e.hasData = true
	e.err = nil
	e.updatedAt = c.now()
	e.invalidated = false
	e.gen = c.nextGenLocked()
	watchers := c.watchersLocked(key)
	c.lock.Unlock()

	notifyAll(watchers)
}

// Remove drops the entry for key so the next read goes to the network
func (c *Client) Remove(key Key) {
	c.lock.Lock()
	delete(c.entries, key)
	watchers := c.watchersLocked(key)
	c.lock.Unlock()

	notifyAll(watchers)
}

// Clear drops every entry. Loads still in flight settle into nothing.
func (c *Client) Clear() {
	c.lock.Lock()
	c.entries = make(map[Key]*entry)
	var watchers []*watch
	for key := range c.watchers {
		watchers = append(watchers, c.watchersLocked(key)...)
	}
	c.lock.Unlock()

	notifyAll(watchers)
}

// Wait blocks until every load started so far, background ones included, has settled
func (c *Client) Wait() {
	c.work.Wait()
}

func (c *Client) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{gen: c.nextGenLocked()}
		c.entries[key] = e
	}
	return e
}

func (c *Client) nextGenLocked() uint64 {
	c.gen++
	return c.gen
}

// peek reports the entry as an observer sees it
func (c *Client) peek(key Key) (data any, hasData bool, updatedAt time.Time, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, time.Time{}, nil
	}
	return e.data, e.hasData, e.updatedAt, e.err
}

// track runs fn on its own goroutine and counts it for Wait
func (c *Client) track(fn func()) {
	c.work.Add(1)
	go func() {
		defer c.work.Done()
		fn()
	}()
}

type watch struct {
	notify func(Key)
	key    Key
}

func (c *Client) addWatch(w *watch) {
	c.lock.Lock()
	defer c.lock.Unlock()

	set, ok := c.watchers[w.key]
	if !ok {
		set = make(map[*watch]struct{})
		c.watchers[w.key] = set
	}
	set[w] = struct{}{}
}

func (c *Client) removeWatch(w *watch) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if set, ok := c.watchers[w.key]; ok {
		delete(set, w)
		if len(set) == 0 {
			delete(c.watchers, w.key)
		}
	}
}

func (c *Client) watchersLocked(key Key) []*watch {
	set := c.watchers[key]
	list := make([]*watch, 0, len(set))
	for w := range set {
		list = append(list, w)
	}
	return list
}

func notifyAll(watchers []*watch) {
	for _, w := range watchers {
		w.notify(w.key)
	}
}
