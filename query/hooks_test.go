package query_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-hr-console/departments"
	fakedepartmentrepo "github.com/jrsteele09/go-hr-console/departments/repofake"
	"github.com/jrsteele09/go-hr-console/designations"
	fakedesignationrepo "github.com/jrsteele09/go-hr-console/designations/repofake"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/internal/utils"
	"github.com/jrsteele09/go-hr-console/query"
	"github.com/jrsteele09/go-hr-console/roles"
	fakerolerepo "github.com/jrsteele09/go-hr-console/roles/repofake"
	"github.com/jrsteele09/go-hr-console/session"
	"github.com/jrsteele09/go-hr-console/session/storage"
	"github.com/jrsteele09/go-hr-console/tenants"
	"github.com/jrsteele09/go-hr-console/users"
	fakeuserrepo "github.com/jrsteele09/go-hr-console/users/repofake"
	"github.com/stretchr/testify/require"
)

type notifications struct {
	list []query.Notification
	lock sync.Mutex
}

func (n *notifications) Notify(note query.Notification) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.list = append(n.list, note)
}

func (n *notifications) last(t *testing.T) query.Notification {
	t.Helper()
	n.lock.Lock()
	defer n.lock.Unlock()
	require.NotEmpty(t, n.list)
	return n.list[len(n.list)-1]
}

type testFixture struct {
	clock        *fakeClock
	client       *query.Client
	notes        *notifications
	userRepo     *fakeuserrepo.FakeUserRepo
	deptRepo     *fakedepartmentrepo.FakeDepartmentRepo
	desigRepo    *fakedesignationrepo.FakeDesignationRepo
	roleRepo     *fakerolerepo.FakeRoleRepo
	employees    *query.Employees
	departments  *query.Departments
	designations *query.Designations
	roles        *query.Roles
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		clock:     newFakeClock(),
		notes:     &notifications{},
		userRepo:  fakeuserrepo.NewFakeUserRepo(),
		deptRepo:  fakedepartmentrepo.NewFakeDepartmentRepo(),
		desigRepo: fakedesignationrepo.NewFakeDesignationRepo(),
		roleRepo: fakerolerepo.NewFakeRoleRepo(
			&roles.Role{ID: "r1", Name: "Admin", Permissions: []string{"users:write"}},
			&roles.Role{ID: "r2", Name: "Employee"},
		),
	}
	f.client = newTestClient(f.clock, query.WithRetry(0))
	notifier := query.WithNotifier(f.notes)
	f.employees = query.NewEmployees(f.client, f.userRepo, notifier)
	f.departments = query.NewDepartments(f.client, f.deptRepo, notifier)
	f.designations = query.NewDesignations(f.client, f.desigRepo, notifier)
	f.roles = query.NewRoles(f.client, f.roleRepo, notifier)

	f.userRepo.Seed(&users.User{
		ID:        "u1",
		Username:  "jdoe",
		Email:     "john@example.com",
		EmpCode:   "E001",
		FirstName: "John",
		LastName:  "Doe",
		TypeCode:  users.TypeRegular,
		Status:    users.StatusConfirmed,
		DOJ:       "2023-01-09",
		Role:      &users.Ref{ID: "r2", Name: "Employee"},
		IsActive:  true,
	})
	f.deptRepo.Seed(&departments.Department{ID: "d1", Name: "Engineering", IsActive: true})
	f.desigRepo.Seed(&designations.Designation{ID: "g1", Title: "Engineer", Level: 2, IsActive: true})
	return f
}

func updateFor(u *users.User) *users.UpdateRequest {
	return &users.UpdateRequest{
		Username:  u.Username,
		Email:     u.Email,
		RoleID:    u.Role.ID,
		EmpCode:   u.EmpCode,
		TypeCode:  u.TypeCode,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		DOJ:       u.DOJ,
		Status:    u.Status,
	}
}

func TestCreateInvalidatesEveryList(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	all := departments.ListParams{}
	search := departments.ListParams{Search: "op"}

	list, err := f.departments.List(ctx, all)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list, err = f.departments.List(ctx, search)
	require.NoError(t, err)
	require.Empty(t, list)

	created, err := f.departments.Create(ctx, &departments.CreateRequest{Name: "Ops"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	for _, params := range []departments.ListParams{all, search} {
		list, err := f.departments.List(ctx, params)
		require.NoError(t, err)
		require.Contains(t, names(list), "Ops")
	}
	require.Equal(t, 4, f.deptRepo.Calls("List"))

	note := f.notes.last(t)
	require.Equal(t, query.Notification{Title: "Department Created", Description: `Department "Ops" has been created.`, Variant: query.VariantDefault}, note)
}

func names(list []*departments.Department) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.Name)
	}
	return out
}

func TestUpdateReplacesDetailImmediately(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	before, err := f.employees.Get(ctx, "u1")
	require.NoError(t, err)
	_, err = f.employees.List(ctx, users.ListParams{})
	require.NoError(t, err)

	req := updateFor(before)
	req.FirstName = "Jane"
	updated, err := f.employees.Update(ctx, "u1", req)
	require.NoError(t, err)
	require.Equal(t, "Jane", updated.FirstName)

	// straight from the cache, no refetch
	cached, ok := query.GetData[*users.User](f.client, query.DetailKey(query.ResourceUsers, "u1"))
	require.True(t, ok)
	require.Equal(t, "Jane", cached.FirstName)

	detail, err := f.employees.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Jane", detail.FirstName)
	require.Equal(t, 1, f.userRepo.Calls("Get"))

	// the list was invalidated and reloads with the edit
	list, err := f.employees.List(ctx, users.ListParams{})
	require.NoError(t, err)
	require.Equal(t, "Jane", list[0].FirstName)
	require.Equal(t, 2, f.userRepo.Calls("List"))

	require.Equal(t, `Employee "Jane Doe" has been updated.`, f.notes.last(t).Description)
}

func TestDeleteRemovesDetail(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.employees.Get(ctx, "u1")
	require.NoError(t, err)

	res, err := f.employees.Delete(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, &users.DeleteResult{ID: "u1", IsActive: false, IsDeleted: true, Message: "User deleted successfully"}, res)
	require.Equal(t, query.Notification{Title: "Employee Deleted", Description: "User deleted successfully", Variant: query.VariantDefault}, f.notes.last(t))

	_, ok := query.GetData[*users.User](f.client, query.DetailKey(query.ResourceUsers, "u1"))
	require.False(t, ok)

	// the next read goes to the server, which no longer has it
	_, err = f.employees.Get(ctx, "u1")
	require.Equal(t, 404, hrerrors.StatusCode(err))
	require.Equal(t, 2, f.userRepo.Calls("Get"))
}

func TestMutationFailuresNotify(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("validation never reaches the server", func(t *testing.T) {
		_, err := f.employees.Create(ctx, &users.CreateRequest{Email: "x@example.com"})
		require.True(t, hrerrors.IsValidation(err))
		require.Equal(t, 0, f.userRepo.Calls("Create"))

		note := f.notes.last(t)
		require.Equal(t, "Error Creating Employee", note.Title)
		require.Equal(t, query.VariantDestructive, note.Variant)
		require.Equal(t, "password: is required", note.Description)
	})

	t.Run("server message is shown", func(t *testing.T) {
		f.deptRepo.Intercept(func(_ context.Context, op string, _ any) error {
			if op == "Update" {
				return &hrerrors.APIError{StatusCode: 409, Message: "Department name already exists"}
			}
			return nil
		})
		defer f.deptRepo.Intercept(nil)

		_, err := f.departments.Update(ctx, "d1", &departments.UpdateRequest{Name: "Ops", IsActive: true})
		require.Equal(t, 409, hrerrors.StatusCode(err))
		require.Equal(t, query.Notification{Title: "Error Updating Department", Description: "Department name already exists", Variant: query.VariantDestructive}, f.notes.last(t))
	})

	t.Run("expired session", func(t *testing.T) {
		f.desigRepo.Intercept(func(context.Context, string, any) error {
			return &hrerrors.SessionExpiredError{Path: "/designations/g1"}
		})
		defer f.desigRepo.Intercept(nil)

		err := f.designations.Delete(ctx, "g1")
		require.True(t, hrerrors.IsSessionExpired(err))
		require.Equal(t, hrerrors.SessionExpiredMessage, f.notes.last(t).Description)
	})

	t.Run("missing id", func(t *testing.T) {
		err := f.departments.Delete(ctx, "")
		require.ErrorIs(t, err, hrerrors.ErrMissingID)
		require.Equal(t, "Error Deleting Department", f.notes.last(t).Title)
	})
}

func TestWritePathNormalisesEmptyOptionals(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	var sent []any
	f.userRepo.Intercept(func(_ context.Context, op string, arg any) error {
		if op == "Create" || op == "Update" {
			sent = append(sent, arg)
		}
		return nil
	})

	create := &users.CreateRequest{
		Username:     "asmith",
		Email:        "alice@example.com",
		Password:     "secret123",
		RoleID:       "r2",
		EmpCode:      "E002",
		TypeCode:     users.TypeIntern,
		FirstName:    "Alice",
		LastName:     "Smith",
		DOJ:          "2024-02-01",
		Status:       users.StatusProbation,
		Phone:        utils.Ptr(""),
		DOB:          utils.Ptr(""),
		ProbationEnd: utils.Ptr("2024-08-01"),
		DepartmentID: utils.Ptr(""),
	}
	created, err := f.employees.Create(ctx, create)
	require.NoError(t, err)
	require.Equal(t, `Employee "Alice Smith" has been created.`, f.notes.last(t).Description)

	// the caller's request is left as it was
	require.NotNil(t, create.Phone)

	body, err := json.Marshal(sent[0])
	require.NoError(t, err)
	require.NotContains(t, string(body), `"phone"`)
	require.NotContains(t, string(body), `"department_id"`)
	require.Contains(t, string(body), `"probation_end":"2024-08-01"`)

	update := updateFor(created)
	update.Phone = utils.Ptr("")
	update.DesignationID = utils.Ptr("")
	_, err = f.employees.Update(ctx, created.ID, update)
	require.NoError(t, err)

	body, err = json.Marshal(sent[1])
	require.NoError(t, err)
	require.Contains(t, string(body), `"phone":null`)
	require.Contains(t, string(body), `"designation_id":null`)
}

func TestDesignationHooks(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	g, err := f.designations.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, "Engineer", g.Title)

	updated, err := f.designations.Update(ctx, "g1", &designations.UpdateRequest{Level: utils.Ptr(3)})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Level)
	require.Equal(t, "Engineer has been updated successfully.", f.notes.last(t).Description)

	cached, err := f.designations.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, 3, cached.Level)
	require.Equal(t, 1, f.desigRepo.Calls("Get"))

	require.NoError(t, f.designations.Delete(ctx, "g1"))
	_, ok := query.GetData[*designations.Designation](f.client, query.DetailKey(query.ResourceDesignations, "g1"))
	require.False(t, ok)
	require.Equal(t, "Designation Deleted", f.notes.last(t).Title)
}

func TestRolesUseTheLongerWindow(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	list, err := f.roles.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, roles.ByName(list, "Admin"))

	f.clock.Advance(30 * time.Minute)
	_, err = f.roles.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.roleRepo.Calls())

	f.clock.Advance(31 * time.Minute)
	_, err = f.roles.List(ctx)
	require.NoError(t, err)
	f.client.Wait()
	require.Equal(t, 2, f.roleRepo.Calls())
}

func TestRolesNeverRetryAnExpiredSession(t *testing.T) {
	client := newTestClient(newFakeClock())
	repo := fakerolerepo.NewFakeRoleRepo()
	repo.Fail(&hrerrors.SessionExpiredError{Path: "/roles"})
	r := query.NewRoles(client, repo)

	_, err := r.List(context.Background())
	require.True(t, hrerrors.IsSessionExpired(err))
	require.Equal(t, 1, repo.Calls())
}

func TestObservedListRefreshesAfterCreate(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	o := f.departments.ObserveList(ctx, departments.ListParams{}, nil)
	defer o.Close()
	f.client.Wait()
	require.Len(t, o.State().Data, 1)

	_, err := f.departments.Create(ctx, &departments.CreateRequest{Name: "Ops"})
	require.NoError(t, err)
	f.client.Wait()
	require.Len(t, o.State().Data, 2)
}

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(context.Context, string, string, tenants.Code) (*session.Grant, error) {
	return &session.Grant{Token: "t1", User: &session.UserSummary{ID: "u1"}}, nil
}

func TestClearOnLogout(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	store, err := session.New(storage.NewMemory(), stubAuthenticator{})
	require.NoError(t, err)
	query.ClearOnLogout(store, f.client)

	_, err = store.Login(ctx, "admin@example.com", "admin123", "acme")
	require.NoError(t, err)
	_, err = f.employees.List(ctx, users.ListParams{})
	require.NoError(t, err)

	store.Expire()

	_, ok := query.GetData[[]*users.User](f.client, query.ListKey(query.ResourceUsers, users.ListParams{}))
	require.False(t, ok)
}
