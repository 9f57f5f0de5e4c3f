package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/go-hr-console/query"
	"github.com/jrsteele09/go-hr-console/users"
)

const (
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m" // Bright black, often appears as gray

	RedInverse   = "\033[7;31m"
	GreenInverse = "\033[7;32m"

	ResetColor = "\033[0m"
)

var statusColors = map[users.EmployeeStatus]string{
	users.StatusProbation: Yellow,
	users.StatusConfirmed: Green,
	users.StatusExited:    Gray,
}

var variantColors = map[query.Variant]string{
	query.VariantDefault:     GreenInverse,
	query.VariantDestructive: RedInverse,
}

// colour is a no-op when output is not meant for a terminal
var colour = func(c, s string) string {
	if c == "" {
		return s
	}
	return c + s + ResetColor
}

func plain(_, s string) string {
	return s
}

// newTerminalNotifier prints mutation outcomes the way the SPA shows toasts
func newTerminalNotifier(w io.Writer) query.Notifier {
	return query.NotifierFunc(func(n query.Notification) {
		fmt.Fprintf(w, "%s %s\n", colour(variantColors[n.Variant], " "+n.Title+" "), n.Description)
	})
}

type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, headers ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func refName(r *users.Ref) string {
	switch {
	case r == nil:
		return "-"
	case r.Name != "":
		return r.Name
	case r.Title != "":
		return r.Title
	default:
		return r.ID
	}
}
