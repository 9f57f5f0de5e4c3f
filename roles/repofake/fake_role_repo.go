package fakerolerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/go-hr-console/roles"
)

var _ roles.Repo = (*FakeRoleRepo)(nil)

type FakeRoleRepo struct {
	roles []*roles.Role
	calls int
	err   error
	lock  sync.RWMutex
}

func NewFakeRoleRepo(list ...*roles.Role) *FakeRoleRepo {
	return &FakeRoleRepo{roles: list}
}

// Fail makes every following List return err; nil restores normal behaviour
func (rr *FakeRoleRepo) Fail(err error) {
	rr.lock.Lock()
	defer rr.lock.Unlock()
	rr.err = err
}

func (rr *FakeRoleRepo) Calls() int {
	rr.lock.RLock()
	defer rr.lock.RUnlock()
	return rr.calls
}

func (rr *FakeRoleRepo) List(ctx context.Context) ([]*roles.Role, error) {
	rr.lock.Lock()
	defer rr.lock.Unlock()
	rr.calls++
	if rr.err != nil {
		return nil, rr.err
	}

	list := make([]*roles.Role, 0, len(rr.roles))
	for _, r := range rr.roles {
		cp := *r
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}
