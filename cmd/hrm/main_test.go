package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/go-hr-console/internal/config"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	header http.Header
	body   map[string]any
}

// backend is a scripted HR API. Resource routes answer 401 unless the bearer token matches.
type backend struct {
	server   *httptest.Server
	lock     sync.Mutex
	requests []recorded
	expired  bool
}

const employeeJSON = `{"id":"u1","username":"jdoe","email":"john@example.com","emp_code":"E001",
	"first_name":"John","last_name":"Doe","type_code":"Regular","status":"Confirmed",
	"phone":"555-0100","doj":"2023-01-09","department_id":"d1","department":{"id":"d1","name":"Engineering"},
	"role":{"id":"r2","name":"Employee"},"is_active":true}`

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{method: r.Method, path: r.URL.Path, header: r.Header.Clone()}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &rec.body)
	}
	b.lock.Lock()
	b.requests = append(b.requests, rec)
	expired := b.expired
	b.lock.Unlock()

	reply := func(status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
	if r.URL.Path == "/auth/login" {
		reply(http.StatusOK, `{"token":"t1","user":{"id":"u0","email":"admin@example.com","first_name":"Admin","last_name":"User","role":{"name":"Admin"}}}`)
		return
	}
	if expired || r.Header.Get("Authorization") != "Bearer t1" {
		reply(http.StatusUnauthorized, `{"message":"jwt expired"}`)
		return
	}

	switch r.Method + " " + r.URL.Path {
	case "GET /users":
		reply(http.StatusOK, "["+employeeJSON+"]")
	case "GET /users/u1":
		reply(http.StatusOK, employeeJSON)
	case "PUT /users/u1":
		out := rec.body
		out["id"] = "u1"
		data, _ := json.Marshal(out)
		reply(http.StatusOK, string(data))
	case "POST /users":
		out := rec.body
		out["id"] = "u9"
		data, _ := json.Marshal(out)
		reply(http.StatusCreated, string(data))
	case "GET /roles":
		reply(http.StatusOK, `[{"id":"r1","name":"Admin"},{"id":"r2","name":"Employee"}]`)
	case "DELETE /departments/d1":
		w.WriteHeader(http.StatusNoContent)
	case "POST /departments":
		reply(http.StatusConflict, `{"message":"Department name already exists"}`)
	default:
		reply(http.StatusNotFound, `{"message":"not found"}`)
	}
}

func (b *backend) find(method, path string) []recorded {
	b.lock.Lock()
	defer b.lock.Unlock()
	var out []recorded
	for _, r := range b.requests {
		if r.method == method && r.path == path {
			out = append(out, r)
		}
	}
	return out
}

func (b *backend) expire() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.expired = true
}

type testFixture struct {
	backend *backend
	config  config.Config
	stdout  bytes.Buffer
	stderr  bytes.Buffer
}

// setupTestFixture points the CLI at a scripted backend with the session kept in a temp folder,
// so every run behaves like a separate invocation of the binary
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{backend: newBackend(t)}
	t.Setenv("HRM_API_BASE_URL", f.backend.server.URL)
	t.Setenv("HRM_STORAGE", "file")
	t.Setenv("FOLDER", t.TempDir())
	t.Setenv("HRM_SESSION_PASSPHRASE", "")
	t.Setenv("HRM_QUERY_RETRIES", "0")
	t.Setenv("NO_COLOR", "1")
	f.config = config.New()
	return f
}

func (f *testFixture) run(args ...string) int {
	f.stdout.Reset()
	f.stderr.Reset()
	return run(context.Background(), f.config, args, &f.stdout, &f.stderr)
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	require.Equal(t, exitOK, f.run("login", "-email", "admin@example.com", "-password", "admin123", "-tenant", "acme"))
}

func TestVersion(t *testing.T) {
	f := setupTestFixture(t)
	require.Equal(t, exitOK, f.run("version"))
	require.Contains(t, f.stdout.String(), "hrm")
}

func TestUsage(t *testing.T) {
	f := setupTestFixture(t)
	require.Equal(t, exitUsage, f.run())
	require.Contains(t, f.stderr.String(), "Usage: hrm")

	require.Equal(t, exitUsage, f.run("payroll"))
	require.Equal(t, exitUsage, f.run("employees", "promote"))

	f.login(t)
	require.Equal(t, exitUsage, f.run("employees", "get"))
	require.Equal(t, exitUsage, f.run("departments", "update", "-name", "Ops"))
}

func TestResourcesRequireLogin(t *testing.T) {
	f := setupTestFixture(t)

	require.Equal(t, exitLoginRequired, f.run("employees", "list"))
	require.Contains(t, f.stderr.String(), "Please login to continue.")
	require.Contains(t, f.stderr.String(), loginHint)
	require.Empty(t, f.backend.find(http.MethodGet, "/users"))

	require.Equal(t, exitLoginRequired, f.run("whoami"))
}

func TestLoginPersistsAcrossRuns(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	require.Equal(t, "Logged in as Admin User (acme).\n", f.stdout.String())

	require.Equal(t, exitOK, f.run("whoami"))
	require.Contains(t, f.stdout.String(), "admin@example.com")
	require.Contains(t, f.stdout.String(), "Admin")

	require.Equal(t, exitOK, f.run("employees", "list", "-status", "Confirmed"))
	require.Contains(t, f.stdout.String(), "John Doe")
	require.Contains(t, f.stdout.String(), "Engineering")

	reqs := f.backend.find(http.MethodGet, "/users")
	require.Len(t, reqs, 1)
	require.Equal(t, "Bearer t1", reqs[0].header.Get("Authorization"))
	require.Equal(t, "acme", reqs[0].header.Get("X-Tenant-Code"))

	require.Equal(t, exitOK, f.run("logout"))
	require.Equal(t, exitLoginRequired, f.run("employees", "list"))
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.backend.expire()

	require.Equal(t, exitLoginRequired, f.run("employees", "get", "u1"))
	require.Contains(t, f.stderr.String(), hrerrors.SessionExpiredMessage)
	require.Contains(t, f.stderr.String(), loginHint)

	// the 401 cleared the persisted session too
	require.Equal(t, exitLoginRequired, f.run("whoami"))
}

func TestUpdateEmployee(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	require.Equal(t, exitOK, f.run("employees", "update", "u1", "-first-name", "Jane", "-phone", ""))
	require.Contains(t, f.stderr.String(), `Employee "Jane Doe" has been updated.`)

	reqs := f.backend.find(http.MethodPut, "/users/u1")
	require.Len(t, reqs, 1)
	body := reqs[0].body
	require.Equal(t, "Jane", body["first_name"])
	require.Equal(t, "Doe", body["last_name"])
	require.Equal(t, "r2", body["role_id"])
	require.Equal(t, "d1", body["department_id"])
	require.Contains(t, body, "phone")
	require.Nil(t, body["phone"])
}

func TestCreateEmployeeResolvesRoleName(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	code := f.run("employees", "create",
		"-username", "asmith", "-email", "alice@example.com", "-password", "secret123",
		"-role", "Employee", "-emp-code", "E002", "-first-name", "Alice", "-last-name", "Smith",
		"-doj", "2024-02-01", "-department", "")
	require.Equal(t, exitOK, code)
	require.Equal(t, "u9\n", f.stdout.String())

	reqs := f.backend.find(http.MethodPost, "/users")
	require.Len(t, reqs, 1)
	require.Equal(t, "r2", reqs[0].body["role_id"])
	require.NotContains(t, reqs[0].body, "department_id")
	require.NotContains(t, reqs[0].body, "phone")
}

func TestCreateEmployeeValidation(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	require.Equal(t, exitError, f.run("employees", "create", "-email", "x@example.com"))
	require.Contains(t, f.stderr.String(), "Error Creating Employee")
	require.Empty(t, f.backend.find(http.MethodPost, "/users"))
}

func TestDepartmentMutations(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	require.Equal(t, exitOK, f.run("departments", "delete", "d1"))
	require.Contains(t, f.stderr.String(), "Department Deleted")

	require.Equal(t, exitError, f.run("departments", "create", "-name", "Engineering"))
	require.Contains(t, f.stderr.String(), "Department name already exists")
}

func TestListRolesAsJSON(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	require.Equal(t, exitOK, f.run("roles", "list", "-json"))
	var list []map[string]any
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &list))
	require.Len(t, list, 2)
}
