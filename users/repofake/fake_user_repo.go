package fakeuserrepo

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

// Interceptor runs before every call. Returning an error fails the call; blocking delays it.
type Interceptor func(ctx context.Context, op string, arg any) error

// FakeUserRepo is an in-memory employee server: it assigns ids and soft deletes
type FakeUserRepo struct {
	users     map[string]*users.User
	deleted   map[string]bool
	calls     map[string]int
	intercept Interceptor
	lock      sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:   make(map[string]*users.User),
		deleted: make(map[string]bool),
		calls:   make(map[string]int),
	}
}

// Seed stores records as if they had been created earlier
func (ur *FakeUserRepo) Seed(records ...*users.User) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	for _, u := range records {
		if u.ID == "" {
			u.ID = uuid.New().String()
		}
		cp := *u
		ur.users[u.ID] = &cp
	}
}

func (ur *FakeUserRepo) Intercept(fn Interceptor) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.intercept = fn
}

func (ur *FakeUserRepo) Calls(op string) int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return ur.calls[op]
}

func (ur *FakeUserRepo) before(ctx context.Context, op string, arg any) error {
	ur.lock.Lock()
	ur.calls[op]++
	intercept := ur.intercept
	ur.lock.Unlock()
	if intercept != nil {
		return intercept(ctx, op, arg)
	}
	return nil
}

func (ur *FakeUserRepo) List(ctx context.Context, params users.ListParams) ([]*users.User, error) {
	if err := ur.before(ctx, "List", params); err != nil {
		return nil, err
	}
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0)
	for id, u := range ur.users {
		if ur.deleted[id] || !params.Matches(u) {
			continue
		}
		cp := *u
		userList = append(userList, &cp)
	}
	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})
	return userList, nil
}

func (ur *FakeUserRepo) Get(ctx context.Context, id string) (*users.User, error) {
	if err := ur.before(ctx, "Get", id); err != nil {
		return nil, err
	}
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok || ur.deleted[id] {
		return nil, notFound()
	}
	cp := *u
	return &cp, nil
}

func (ur *FakeUserRepo) Create(ctx context.Context, req *users.CreateRequest) (*users.User, error) {
	if err := ur.before(ctx, "Create", req); err != nil {
		return nil, err
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	u := &users.User{
		ID:            uuid.New().String(),
		Username:      req.Username,
		Email:         req.Email,
		EmpCode:       req.EmpCode,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		TypeCode:      req.TypeCode,
		Status:        req.Status,
		Phone:         req.Phone,
		DOB:           req.DOB,
		DOJ:           req.DOJ,
		ProbationEnd:  req.ProbationEnd,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		Role:          &users.Ref{ID: req.RoleID},
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	ur.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (ur *FakeUserRepo) Update(ctx context.Context, id string, req *users.UpdateRequest) (*users.User, error) {
	if err := ur.before(ctx, "Update", req); err != nil {
		return nil, err
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok || ur.deleted[id] {
		return nil, notFound()
	}
	u.Username = req.Username
	u.Email = req.Email
	u.EmpCode = req.EmpCode
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.TypeCode = req.TypeCode
	u.Status = req.Status
	u.Phone = req.Phone
	u.DOB = req.DOB
	u.DOJ = req.DOJ
	u.ProbationEnd = req.ProbationEnd
	u.DepartmentID = req.DepartmentID
	u.DesignationID = req.DesignationID
	u.Role = &users.Ref{ID: req.RoleID}
	u.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	cp := *u
	return &cp, nil
}

func (ur *FakeUserRepo) Delete(ctx context.Context, id string) (*users.DeleteResult, error) {
	if err := ur.before(ctx, "Delete", id); err != nil {
		return nil, err
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok || ur.deleted[id] {
		return nil, notFound()
	}
	u.IsActive = false
	ur.deleted[id] = true
	return &users.DeleteResult{ID: id, IsActive: false, IsDeleted: true, Message: "User deleted successfully"}, nil
}

func notFound() error {
	return &hrerrors.APIError{StatusCode: http.StatusNotFound, Message: "User not found"}
}
