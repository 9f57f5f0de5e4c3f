package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

const loginHint = `Run "hrm login -email <email> -password <password> -tenant <code>".`

type action func(ctx context.Context, args []string) error

func (a *app) dispatch(ctx context.Context, args []string) int {
	if os.Getenv("NO_COLOR") != "" {
		colour = plain
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "login":
		err = a.login(ctx, rest)
	case "logout":
		a.store.Logout()
		fmt.Fprintln(a.out, "Logged out.")
	case "whoami":
		err = a.whoami()
	case "employees", "departments", "designations", "roles":
		err = a.resource(ctx, cmd, rest)
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n\n", cmd)
		usage(a.errOut)
		return exitUsage
	}
	return a.exitCode(err)
}

// exitCode reports err to the user. Anything that means "no usable session" sends them to login.
func (a *app) exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case hrerrors.Is(err, errUsage) || hrerrors.Is(err, flag.ErrHelp):
		return exitUsage
	case hrerrors.IsSessionExpired(err), hrerrors.Is(err, hrerrors.ErrUnauthenticated):
		fmt.Fprintln(a.errOut, hrerrors.Message(err))
		fmt.Fprintln(a.errOut, loginHint)
		return exitLoginRequired
	default:
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintln(a.errOut, colour(Red, "Error: ")+hrerrors.Message(err))
		return exitError
	}
}

// resource runs a list/get/create/update/delete action behind the route guard
func (a *app) resource(ctx context.Context, name string, args []string) error {
	actions := a.actions(name)
	if len(args) == 0 {
		return a.actionUsage(name, actions)
	}
	act, ok := actions[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown action %q\n", args[0])
		return a.actionUsage(name, actions)
	}
	if !a.store.CheckAuth() {
		return hrerrors.ErrUnauthenticated
	}
	return act(ctx, args[1:])
}

func (a *app) actions(name string) map[string]action {
	switch name {
	case "employees":
		return map[string]action{
			"list":   a.listEmployees,
			"get":    a.getEmployee,
			"create": a.createEmployee,
			"update": a.updateEmployee,
			"delete": a.deleteEmployee,
		}
	case "departments":
		return map[string]action{
			"list":   a.listDepartments,
			"get":    a.getDepartment,
			"create": a.createDepartment,
			"update": a.updateDepartment,
			"delete": a.deleteDepartment,
		}
	case "designations":
		return map[string]action{
			"list":   a.listDesignations,
			"get":    a.getDesignation,
			"create": a.createDesignation,
			"update": a.updateDesignation,
			"delete": a.deleteDesignation,
		}
	case "roles":
		return map[string]action{"list": a.listRoles}
	}
	return nil
}

func (a *app) actionUsage(name string, actions map[string]action) error {
	names := make([]string, 0, len(actions))
	for _, n := range []string{"list", "get", "create", "update", "delete"} {
		if _, ok := actions[n]; ok {
			names = append(names, n)
		}
	}
	fmt.Fprintf(a.errOut, "Usage: hrm %s %s [options]\n", name, strings.Join(names, "|"))
	return errUsage
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("HRM_PASSWORD"), "account password (or HRM_PASSWORD)")
	tenant := fs.String("tenant", os.Getenv("HRM_TENANT"), "tenant code (or HRM_TENANT)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.store.Login(ctx, *email, *password, *tenant); err != nil {
		return err
	}
	state := a.store.Snapshot()
	name := *email
	if state.User != nil {
		name = state.User.DisplayName()
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s).\n", name, state.TenantCode)
	return nil
}

func (a *app) whoami() error {
	if !a.store.CheckAuth() {
		return hrerrors.ErrUnauthenticated
	}
	state := a.store.Snapshot()

	t := newTable(a.out, "FIELD", "VALUE")
	t.row("tenant", state.TenantCode)
	if u := state.User; u != nil {
		t.row("id", u.ID)
		t.row("name", u.DisplayName())
		t.row("email", u.Email)
		if u.EmpCode != "" {
			t.row("emp_code", u.EmpCode)
		}
		if u.Role != "" {
			t.row("role", string(u.Role))
		}
	}
	if exp, ok := a.store.ExpiresAt(); ok {
		t.row("expires", exp.Local().Format(time.RFC1123))
	}
	return t.flush()
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// stringList collects a repeatable flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// visited reports which flags were given explicitly
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// parseWithID parses an action that takes one id followed by options
func parseWithID(fs *flag.FlagSet, args []string, w io.Writer) (string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(w, "Usage: %s <id> [options]\n", fs.Name())
		return "", errUsage
	}
	if err := fs.Parse(args[1:]); err != nil {
		return "", err
	}
	return args[0], nil
}
