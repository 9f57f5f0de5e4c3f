package query

import (
	"github.com/rs/zerolog"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

const unexpectedError = "An unexpected error occurred."

// Notification is a discrete, dismissable message about a mutation's outcome
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// LogNotifier writes notifications to the log: failures at warn, the rest at info
func LogNotifier(logger zerolog.Logger) Notifier {
	return NotifierFunc(func(n Notification) {
		ev := logger.Info()
		if n.Variant == VariantDestructive {
			ev = logger.Warn()
		}
		ev.Str("title", n.Title).Msg(n.Description)
	})
}

func success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// failure describes err for a person, falling back when it carries no message
func failure(title string, err error, fallback string) Notification {
	description := hrerrors.Message(err)
	if description == "" {
		description = fallback
	}
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}
