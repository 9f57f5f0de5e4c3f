package fakedesignationrepo

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-hr-console/designations"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/internal/utils"
)

var _ designations.Repo = (*FakeDesignationRepo)(nil)

// Interceptor runs before every call. Returning an error fails the call; blocking delays it.
type Interceptor func(ctx context.Context, op string, arg any) error

type FakeDesignationRepo struct {
	designations map[string]*designations.Designation
	calls        map[string]int
	intercept    Interceptor
	lock         sync.RWMutex
}

func NewFakeDesignationRepo() *FakeDesignationRepo {
	return &FakeDesignationRepo{
		designations: make(map[string]*designations.Designation),
		calls:        make(map[string]int),
	}
}

func (gr *FakeDesignationRepo) Seed(records ...*designations.Designation) {
	gr.lock.Lock()
	defer gr.lock.Unlock()
	for _, d := range records {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		cp := *d
		gr.designations[d.ID] = &cp
	}
}

func (gr *FakeDesignationRepo) Intercept(fn Interceptor) {
	gr.lock.Lock()
	defer gr.lock.Unlock()
	gr.intercept = fn
}

func (gr *FakeDesignationRepo) Calls(op string) int {
	gr.lock.RLock()
	defer gr.lock.RUnlock()
	return gr.calls[op]
}

func (gr *FakeDesignationRepo) before(ctx context.Context, op string, arg any) error {
	gr.lock.Lock()
	gr.calls[op]++
	intercept := gr.intercept
	gr.lock.Unlock()
	if intercept != nil {
		return intercept(ctx, op, arg)
	}
	return nil
}

func (gr *FakeDesignationRepo) List(ctx context.Context, params designations.ListParams) ([]*designations.Designation, error) {
	if err := gr.before(ctx, "List", params); err != nil {
		return nil, err
	}
	gr.lock.RLock()
	defer gr.lock.RUnlock()

	list := make([]*designations.Designation, 0)
	for _, d := range gr.designations {
		if d.IsDeleted || !params.Matches(d) {
			continue
		}
		cp := *d
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Level < list[j].Level || (list[i].Level == list[j].Level && list[i].Title < list[j].Title)
	})

	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * params.PageSize
		if start >= len(list) {
			return []*designations.Designation{}, nil
		}
		end := start + params.PageSize
		if end > len(list) {
			end = len(list)
		}
		list = list[start:end]
	}
	return list, nil
}

func (gr *FakeDesignationRepo) Get(ctx context.Context, id string) (*designations.Designation, error) {
	if err := gr.before(ctx, "Get", id); err != nil {
		return nil, err
	}
	gr.lock.RLock()
	defer gr.lock.RUnlock()

	d, ok := gr.designations[id]
	if !ok || d.IsDeleted {
		return nil, notFound()
	}
	cp := *d
	return &cp, nil
}

func (gr *FakeDesignationRepo) Create(ctx context.Context, req *designations.CreateRequest) (*designations.Designation, error) {
	if err := gr.before(ctx, "Create", req); err != nil {
		return nil, err
	}
	gr.lock.Lock()
	defer gr.lock.Unlock()

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := time.Now().UTC().Format(time.RFC3339)
	d := &designations.Designation{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Level:     utils.Value(req.Level),
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	gr.designations[d.ID] = d
	cp := *d
	return &cp, nil
}

func (gr *FakeDesignationRepo) Update(ctx context.Context, id string, req *designations.UpdateRequest) (*designations.Designation, error) {
	if err := gr.before(ctx, "Update", req); err != nil {
		return nil, err
	}
	gr.lock.Lock()
	defer gr.lock.Unlock()

	d, ok := gr.designations[id]
	if !ok || d.IsDeleted {
		return nil, notFound()
	}
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Level != nil {
		d.Level = *req.Level
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	d.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	cp := *d
	return &cp, nil
}

func (gr *FakeDesignationRepo) Delete(ctx context.Context, id string) error {
	if err := gr.before(ctx, "Delete", id); err != nil {
		return err
	}
	gr.lock.Lock()
	defer gr.lock.Unlock()

	d, ok := gr.designations[id]
	if !ok || d.IsDeleted {
		return notFound()
	}
	d.IsDeleted = true
	d.IsActive = false
	return nil
}

func notFound() error {
	return &hrerrors.APIError{StatusCode: http.StatusNotFound, Message: "Designation not found"}
}
