// Package store de-duplicates identical in-flight loads so that concurrent
// requests for the same scope share one database pass and observe the same
// snapshot.
package store

import "golang.org/x/sync/singleflight"

type Loader struct {
	group singleflight.Group
}

// Load runs fn for key unless a load for the same key is already in flight,
// in which case the caller waits for and shares that result instead of
// issuing a second load.
func (l *Loader) Load(key string, fn func() (interface{}, error)) (interface{}, bool, error) {
	v, err, shared := l.group.Do(key, fn)
	return v, shared, err
}
