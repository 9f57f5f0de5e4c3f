package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/jrsteele09/go-hr-console/roles"
	"github.com/jrsteele09/go-hr-console/users"
)

// employeeFlags are the form fields shared by create and update
type employeeFlags struct {
	username     string
	email        string
	password     string
	role         string
	empCode      string
	typeCode     string
	firstName    string
	lastName     string
	doj          string
	status       string
	phone        string
	dob          string
	probationEnd string
	department   string
	designation  string
}

func (f *employeeFlags) register(fs *flag.FlagSet, withPassword bool) {
	fs.StringVar(&f.username, "username", "", "login name")
	fs.StringVar(&f.email, "email", "", "email address")
	if withPassword {
		fs.StringVar(&f.password, "password", "", "initial password")
	}
	fs.StringVar(&f.role, "role", "", "role name or id")
	fs.StringVar(&f.empCode, "emp-code", "", "employee code")
	fs.StringVar(&f.typeCode, "type", string(users.TypeRegular), "Regular, Outsourced, Contractual or Intern")
	fs.StringVar(&f.firstName, "first-name", "", "first name")
	fs.StringVar(&f.lastName, "last-name", "", "last name")
	fs.StringVar(&f.doj, "doj", "", "date of joining (YYYY-MM-DD)")
	fs.StringVar(&f.status, "status", string(users.StatusProbation), "Probation, Confirmed or Exited")
	fs.StringVar(&f.phone, "phone", "", "phone number; empty clears it")
	fs.StringVar(&f.dob, "dob", "", "date of birth; empty clears it")
	fs.StringVar(&f.probationEnd, "probation-end", "", "end of probation; empty clears it")
	fs.StringVar(&f.department, "department", "", "department id; empty clears it")
	fs.StringVar(&f.designation, "designation", "", "designation id; empty clears it")
}

// optional returns nil for a flag that was not given. A given but empty value is kept as ""
// and becomes absent/null on the way to the server.
func optional(set map[string]bool, name, value string) *string {
	if !set[name] {
		return nil
	}
	return &value
}

func (a *app) listEmployees(ctx context.Context, args []string) error {
	fs := a.flagSet("employees list")
	var params users.ListParams
	var status, department, typeCode stringList
	fs.StringVar(&params.Search, "search", "", "name, email, code or username contains")
	fs.Var(&status, "status", "status filter (repeatable)")
	fs.Var(&department, "department", "department id filter (repeatable)")
	fs.Var(&typeCode, "type", "employee type filter (repeatable)")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, s := range status {
		params.Status = append(params.Status, users.EmployeeStatus(s))
	}
	params.DepartmentID = department
	for _, t := range typeCode {
		params.TypeCode = append(params.TypeCode, users.EmployeeType(t))
	}

	list, err := a.employees.List(ctx, params)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No employees found.")
		return nil
	}
	t := newTable(a.out, "ID", "CODE", "NAME", "EMAIL", "TYPE", "STATUS", "DEPARTMENT", "DESIGNATION", "ROLE")
	for _, u := range list {
		t.row(u.ID, u.EmpCode, u.FullName(), u.Email, string(u.TypeCode), statusCell(u.Status), refName(u.Department), refName(u.Designation), refName(u.Role))
	}
	return t.flush()
}

func statusCell(s users.EmployeeStatus) string {
	c, ok := statusColors[s]
	if !ok {
		c = Cyan
	}
	return colour(c, string(s))
}

func (a *app) getEmployee(ctx context.Context, args []string) error {
	fs := a.flagSet("employees get")
	asJSON := fs.Bool("json", false, "print JSON")
	id, err := parseWithID(fs, args, a.errOut)
	if err != nil {
		return err
	}

	u, err := a.employees.Get(ctx, id)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, u)
	}
	t := newTable(a.out, "FIELD", "VALUE")
	t.row("id", u.ID)
	t.row("username", u.Username)
	t.row("name", u.FullName())
	t.row("email", u.Email)
	t.row("emp_code", u.EmpCode)
	t.row("type", string(u.TypeCode))
	t.row("status", statusCell(u.Status))
	t.row("phone", deref(u.Phone))
	t.row("dob", deref(u.DOB))
	t.row("doj", u.DOJ)
	t.row("probation_end", deref(u.ProbationEnd))
	t.row("department", refName(u.Department))
	t.row("designation", refName(u.Designation))
	t.row("role", refName(u.Role))
	t.row("active", fmt.Sprint(u.IsActive))
	return t.flush()
}

func (a *app) createEmployee(ctx context.Context, args []string) error {
	fs := a.flagSet("employees create")
	var f employeeFlags
	f.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := visited(fs)

	roleID, err := a.resolveRole(ctx, f.role)
	if err != nil {
		return err
	}
	req := &users.CreateRequest{
		Username:      f.username,
		Email:         f.email,
		Password:      f.password,
		RoleID:        roleID,
		EmpCode:       f.empCode,
		TypeCode:      users.EmployeeType(f.typeCode),
		FirstName:     f.firstName,
		LastName:      f.lastName,
		Phone:         optional(set, "phone", f.phone),
		DOB:           optional(set, "dob", f.dob),
		DOJ:           f.doj,
		Status:        users.EmployeeStatus(f.status),
		ProbationEnd:  optional(set, "probation-end", f.probationEnd),
		DepartmentID:  optional(set, "department", f.department),
		DesignationID: optional(set, "designation", f.designation),
	}
	u, err := a.employees.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, u.ID)
	return nil
}

// updateEmployee starts from the current record, since the server replaces the whole employee
func (a *app) updateEmployee(ctx context.Context, args []string) error {
	fs := a.flagSet("employees update")
	new(employeeFlags).register(fs, false)
	id, err := parseWithID(fs, args, a.errOut)
	if err != nil {
		return err
	}
	set := visited(fs)

	cur, err := a.employees.Get(ctx, id)
	if err != nil {
		return err
	}
	req := &users.UpdateRequest{
		Username:      cur.Username,
		Email:         cur.Email,
		EmpCode:       cur.EmpCode,
		TypeCode:      cur.TypeCode,
		FirstName:     cur.FirstName,
		LastName:      cur.LastName,
		Phone:         cur.Phone,
		DOB:           cur.DOB,
		DOJ:           cur.DOJ,
		Status:        cur.Status,
		ProbationEnd:  cur.ProbationEnd,
		DepartmentID:  cur.DepartmentID,
		DesignationID: cur.DesignationID,
	}
	if cur.Role != nil {
		req.RoleID = cur.Role.ID
	}

	for name, field := range map[string]*string{
		"username":   &req.Username,
		"email":      &req.Email,
		"emp-code":   &req.EmpCode,
		"first-name": &req.FirstName,
		"last-name":  &req.LastName,
		"doj":        &req.DOJ,
	} {
		if set[name] {
			*field = flagValue(fs, name)
		}
	}
	if set["type"] {
		req.TypeCode = users.EmployeeType(flagValue(fs, "type"))
	}
	if set["status"] {
		req.Status = users.EmployeeStatus(flagValue(fs, "status"))
	}
	if set["role"] {
		if req.RoleID, err = a.resolveRole(ctx, flagValue(fs, "role")); err != nil {
			return err
		}
	}
	for name, field := range map[string]**string{
		"phone":         &req.Phone,
		"dob":           &req.DOB,
		"probation-end": &req.ProbationEnd,
		"department":    &req.DepartmentID,
		"designation":   &req.DesignationID,
	} {
		if v := optional(set, name, flagValue(fs, name)); v != nil {
			*field = v
		}
	}

	_, err = a.employees.Update(ctx, id, req)
	return err
}

func (a *app) deleteEmployee(ctx context.Context, args []string) error {
	id, err := parseWithID(a.flagSet("employees delete"), args, a.errOut)
	if err != nil {
		return err
	}
	_, err = a.employees.Delete(ctx, id)
	return err
}

// resolveRole accepts a role by name through the cached role list, or an id as is
func (a *app) resolveRole(ctx context.Context, nameOrID string) (string, error) {
	if nameOrID == "" {
		return "", nil
	}
	list, err := a.roles.List(ctx)
	if err != nil {
		return "", err
	}
	if r := roles.ByName(list, nameOrID); r != nil {
		return r.ID, nil
	}
	return nameOrID, nil
}

func flagValue(fs *flag.FlagSet, name string) string {
	if f := fs.Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}
