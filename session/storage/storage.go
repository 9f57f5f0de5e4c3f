// Package storage holds the durable key/value backends the session store persists to.
// Values are opaque strings, the way a browser's local storage would hold them.
package storage

import "context"

type Storage interface {
	// Get returns ok=false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes every key given; absent keys are not an error
	Remove(ctx context.Context, keys ...string) error
}
