package query_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-hr-console/query"
	"github.com/stretchr/testify/require"
)

// searchSource answers a search with "result:<search>"; searches listed in slow wait for release
type searchSource struct {
	slow    map[string]chan struct{}
	calls   atomic.Int32
	failing atomic.Bool
}

func (s *searchSource) source() query.Source[string, string] {
	return query.Source[string, string]{
		Policy: fiveMinutes,
		Key:    func(search string) query.Key { return query.ListKey(query.ResourceUsers, map[string]string{"search": search}) },
		Load: func(ctx context.Context, search string) (string, error) {
			s.calls.Add(1)
			if s.failing.Load() {
				return "", errors.New("connection refused")
			}
			if gate, ok := s.slow[search]; ok {
				<-gate
			}
			return "result:" + search, nil
		},
	}
}

type stateLog[T any] struct {
	states []query.State[T]
	lock   sync.Mutex
}

func (l *stateLog[T]) record(st query.State[T]) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.states = append(l.states, st)
}

func (l *stateLog[T]) count() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.states)
}

func TestObserverAppliesOnlyTheLatestFilter(t *testing.T) {
	c := newTestClient(newFakeClock())
	gate := make(chan struct{})
	src := &searchSource{slow: map[string]chan struct{}{"a": gate}}

	o := query.Observe(context.Background(), c, src.source(), "a", nil)
	defer o.Close()
	o.SetParams("ab")

	require.Eventually(t, func() bool {
		return o.State().HasData
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "result:ab", o.State().Data)

	// the "a" response arrives last and must not replace "ab"
	close(gate)
	c.Wait()

	st := o.State()
	require.Equal(t, "result:ab", st.Data)
	require.False(t, st.Loading)
	require.Equal(t, query.ListKey(query.ResourceUsers, map[string]string{"search": "ab"}), o.Key())
}

func TestObserverCloseIsInert(t *testing.T) {
	c := newTestClient(newFakeClock())
	gate := make(chan struct{})
	src := &searchSource{slow: map[string]chan struct{}{"a": gate}}
	log := &stateLog[string]{}

	o := query.Observe(context.Background(), c, src.source(), "a", log.record)
	require.Equal(t, 1, log.count()) // loading
	o.Close()

	close(gate)
	c.Wait()

	require.False(t, o.State().HasData)
	require.Equal(t, 1, log.count())

	// the shared load still landed in the cache for the next reader
	v, ok := query.GetData[string](c, query.ListKey(query.ResourceUsers, map[string]string{"search": "a"}))
	require.True(t, ok)
	require.Equal(t, "result:a", v)
}

func TestObserverFollowsInvalidation(t *testing.T) {
	c := newTestClient(newFakeClock())
	var version atomic.Int32
	src := query.Source[string, int32]{
		Policy: fiveMinutes,
		Key:    func(string) query.Key { return listKey },
		Load: func(context.Context, string) (int32, error) {
			return version.Add(1), nil
		},
	}

	o := query.Observe(context.Background(), c, src, "", nil)
	defer o.Close()
	c.Wait()
	require.Equal(t, int32(1), o.State().Data)

	c.Invalidate(query.ResourceUsers, query.KindList)
	c.Wait()
	require.Equal(t, int32(2), o.State().Data)
}

func TestObserverErrorAndRetry(t *testing.T) {
	c := newTestClient(newFakeClock(), query.WithRetry(0))
	src := &searchSource{}
	src.failing.Store(true)

	o := query.Observe(context.Background(), c, src.source(), "a", nil)
	defer o.Close()
	c.Wait()

	st := o.State()
	require.Error(t, st.Err)
	require.False(t, st.HasData)
	require.False(t, st.Loading)

	src.failing.Store(false)
	o.Refetch()
	c.Wait()

	st = o.State()
	require.NoError(t, st.Err)
	require.True(t, st.HasData)
	require.Equal(t, "result:a", st.Data)
}

func TestObserverSeesSetDataAndRemove(t *testing.T) {
	c := newTestClient(newFakeClock())
	src := &searchSource{}

	o := query.Observe(context.Background(), c, src.source(), "a", nil)
	defer o.Close()
	c.Wait()

	c.SetData(o.Key(), "edited")
	require.Equal(t, "edited", o.State().Data)

	c.Remove(o.Key())
	require.False(t, o.State().HasData)

	o.Refetch()
	c.Wait()
	require.Equal(t, "result:a", o.State().Data)
	require.Equal(t, int32(2), src.calls.Load())
}
