package fakedepartmentrepo

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-hr-console/departments"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

var _ departments.Repo = (*FakeDepartmentRepo)(nil)

// Interceptor runs before every call. Returning an error fails the call; blocking delays it.
type Interceptor func(ctx context.Context, op string, arg any) error

type FakeDepartmentRepo struct {
	departments map[string]*departments.Department
	calls       map[string]int
	intercept   Interceptor
	lock        sync.RWMutex
}

func NewFakeDepartmentRepo() *FakeDepartmentRepo {
	return &FakeDepartmentRepo{
		departments: make(map[string]*departments.Department),
		calls:       make(map[string]int),
	}
}

func (dr *FakeDepartmentRepo) Seed(records ...*departments.Department) {
	dr.lock.Lock()
	defer dr.lock.Unlock()
	for _, d := range records {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		cp := *d
		dr.departments[d.ID] = &cp
	}
}

func (dr *FakeDepartmentRepo) Intercept(fn Interceptor) {
	dr.lock.Lock()
	defer dr.lock.Unlock()
	dr.intercept = fn
}

func (dr *FakeDepartmentRepo) Calls(op string) int {
	dr.lock.RLock()
	defer dr.lock.RUnlock()
	return dr.calls[op]
}

func (dr *FakeDepartmentRepo) before(ctx context.Context, op string, arg any) error {
	dr.lock.Lock()
	dr.calls[op]++
	intercept := dr.intercept
	dr.lock.Unlock()
	if intercept != nil {
		return intercept(ctx, op, arg)
	}
	return nil
}

func (dr *FakeDepartmentRepo) List(ctx context.Context, params departments.ListParams) ([]*departments.Department, error) {
	if err := dr.before(ctx, "List", params); err != nil {
		return nil, err
	}
	dr.lock.RLock()
	defer dr.lock.RUnlock()

	list := make([]*departments.Department, 0)
	for _, d := range dr.departments {
		if d.IsDeleted || !params.Matches(d) {
			continue
		}
		cp := *d
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * params.PageSize
		if start >= len(list) {
			return []*departments.Department{}, nil
		}
		end := start + params.PageSize
		if end > len(list) {
			end = len(list)
		}
		list = list[start:end]
	}
	return list, nil
}

func (dr *FakeDepartmentRepo) Get(ctx context.Context, id string) (*departments.Department, error) {
	if err := dr.before(ctx, "Get", id); err != nil {
		return nil, err
	}
	dr.lock.RLock()
	defer dr.lock.RUnlock()

	d, ok := dr.departments[id]
	if !ok || d.IsDeleted {
		return nil, notFound()
	}
	cp := *d
	return &cp, nil
}

func (dr *FakeDepartmentRepo) Create(ctx context.Context, req *departments.CreateRequest) (*departments.Department, error) {
	if err := dr.before(ctx, "Create", req); err != nil {
		return nil, err
	}
	dr.lock.Lock()
	defer dr.lock.Unlock()

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := time.Now().UTC().Format(time.RFC3339)
	d := &departments.Department{
		ID:        uuid.New().String(),
		Name:      req.Name,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	dr.departments[d.ID] = d
	cp := *d
	return &cp, nil
}

func (dr *FakeDepartmentRepo) Update(ctx context.Context, id string, req *departments.UpdateRequest) (*departments.Department, error) {
	if err := dr.before(ctx, "Update", req); err != nil {
		return nil, err
	}
	dr.lock.Lock()
	defer dr.lock.Unlock()

	d, ok := dr.departments[id]
	if !ok || d.IsDeleted {
		return nil, notFound()
	}
	d.Name = req.Name
	d.IsActive = req.IsActive
	d.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	cp := *d
	return &cp, nil
}

func (dr *FakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	if err := dr.before(ctx, "Delete", id); err != nil {
		return err
	}
	dr.lock.Lock()
	defer dr.lock.Unlock()

	d, ok := dr.departments[id]
	if !ok || d.IsDeleted {
		return notFound()
	}
	d.IsDeleted = true
	d.IsActive = false
	return nil
}

func notFound() error {
	return &hrerrors.APIError{StatusCode: http.StatusNotFound, Message: "Department not found"}
}
