// Package cache provides the whole-page response cache: a key-value store
// mapping page keys to rendered bytes with a time-to-live per entry.
package cache

import (
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is a key-value cache for rendered pages.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Erase(key string) error
	Clear() error
}
