package query

import (
	"github.com/jrsteele09/go-hr-console/session"
)

// LogoutNotifier is the part of the session store the cache listens to
type LogoutNotifier interface {
	OnLogout(fn func(session.Reason))
}

// ClearOnLogout empties the cache whenever the session ends, so nothing read under one session
// is ever served under the next
func ClearOnLogout(store LogoutNotifier, c *Client) {
	store.OnLogout(func(reason session.Reason) {
		c.Clear()
		c.logger.Debug().Str("reason", string(reason)).Msg("query cache cleared")
	})
}
