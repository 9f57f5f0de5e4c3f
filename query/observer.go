package query

import (
	"context"
	"sync"
	"time"
)

// Source describes one kind of read: how params map to a key and how to load them
type Source[P, T any] struct {
	Policy Policy
	Key    func(params P) Key
	Load   func(ctx context.Context, params P) (T, error)
}

// Read is Fetch for a Source
func Read[P, T any](ctx context.Context, c *Client, src Source[P, T], params P) (T, error) {
	return Fetch(ctx, c, src.Key(params), src.Policy, src.bind(params))
}

func (s Source[P, T]) bind(params P) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return s.Load(ctx, params)
	}
}

// State is what a view renders. Err with HasData false is a failed read that should offer a
// retry, which is not the same thing as an empty result.
type State[T any] struct {
	Data      T
	HasData   bool
	Err       error
	Loading   bool
	UpdatedAt time.Time
}

// Observer is a view's subscription to the cache. It follows one key at a time; changing the
// params switches key and any response for an older request is dropped, so the view always
// ends on the answer to the last thing it asked for. After Close nothing is applied.
//
// onChange runs on whichever goroutine produced the change.
type Observer[P, T any] struct {
	client   *Client
	src      Source[P, T]
	onChange func(State[T])
	ctx      context.Context
	cancel   context.CancelFunc

	lock   sync.Mutex
	params P
	key    Key
	seq    uint64
	state  State[T]
	watch  *watch
	closed bool
}

// Observe subscribes to src for params and starts the first read
func Observe[P, T any](ctx context.Context, c *Client, src Source[P, T], params P, onChange func(State[T])) *Observer[P, T] {
	ctx, cancel := context.WithCancel(ctx)
	o := &Observer[P, T]{
		client:   c,
		src:      src,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
		params:   params,
		key:      src.Key(params),
	}
	o.watch = &watch{key: o.key, notify: o.refresh}
	c.addWatch(o.watch)
	o.start(false)
	return o
}

// SetParams switches the observer to a new filter and reads it
func (o *Observer[P, T]) SetParams(params P) {
	o.lock.Lock()
	if o.closed {
		o.lock.Unlock()
		return
	}
	o.params = params
	if key := o.src.Key(params); key != o.key {
		o.client.removeWatch(o.watch)
		o.key = key
		o.watch = &watch{key: key, notify: o.refresh}
		o.client.addWatch(o.watch)
	}
	o.lock.Unlock()

	o.start(false)
}

// Refetch reloads the current key from the server; it is the retry affordance after a failure
func (o *Observer[P, T]) Refetch() {
	o.start(true)
}

func (o *Observer[P, T]) State() State[T] {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.state
}

func (o *Observer[P, T]) Key() Key {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.key
}

func (o *Observer[P, T]) Close() {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	o.client.removeWatch(o.watch)
	o.cancel()
}

func (o *Observer[P, T]) start(force bool) {
	o.lock.Lock()
	if o.closed {
		o.lock.Unlock()
		return
	}
	o.seq++
	seq, key, load := o.seq, o.key, o.src.bind(o.params)
	o.state.Loading = true
	st := o.state
	o.lock.Unlock()
	o.emit(st)

	o.client.track(func() {
		var v T
		var err error
		if force {
			v, err = Refetch(o.ctx, o.client, key, o.src.Policy, load)
		} else {
			v, err = Fetch(o.ctx, o.client, key, o.src.Policy, load)
		}
		o.settle(seq, v, err)
	})
}

func (o *Observer[P, T]) settle(seq uint64, v T, err error) {
	o.lock.Lock()
	if o.closed || seq != o.seq {
		o.lock.Unlock()
		return
	}
	o.state.Loading = false
	if err != nil {
		o.state.Err = err
	} else {
		o.state.Data = v
		o.state.HasData = true
		o.state.Err = nil
		o.state.UpdatedAt = o.client.now()
	}
	st := o.state
	o.lock.Unlock()
	o.emit(st)
}

// refresh picks up a change to the watched entry made elsewhere: a background reload, an
// update's SetData, a delete's Remove, or a logout's Clear
func (o *Observer[P, T]) refresh(key Key) {
	data, hasData, updatedAt, err := o.client.peek(key)

	o.lock.Lock()
	if o.closed || key != o.key {
		o.lock.Unlock()
		return
	}
	if hasData {
		o.state.Data, _ = data.(T)
		o.state.HasData = true
		o.state.UpdatedAt = updatedAt
	} else {
		var zero T
		o.state.Data = zero
		o.state.HasData = false
	}
	o.state.Err = err
	st := o.state
	o.lock.Unlock()
	o.emit(st)
}

func (o *Observer[P, T]) emit(st State[T]) {
	if o.onChange != nil {
		o.onChange(st)
	}
}
