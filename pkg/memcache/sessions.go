// pkg/memcache/sessions.go
package mem

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionStore keeps live values with a sliding idle TTL.
type SessionStore[T any] interface {
	Set(id string, value T)

	// Get returns the value for id and extends its TTL. Returns false if
	// missing or expired.
	Get(id string) (T, bool)

	Delete(id string)
	Count() int

	// OnEvict runs after an entry expires or is deleted.
	OnEvict(fn func(id string, value T))
}

type Sessions[T any] struct {
	ttl   time.Duration
	cache *cache.Cache
}

func NewSessions[T any](ttl time.Duration) *Sessions[T] {
	// janitor sweeps at half the TTL, but never more than once a minute.
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Sessions[T]{
		ttl:   ttl,
		cache: cache.New(ttl, cleanup),
	}
}

func (s *Sessions[T]) Set(id string, value T) {
	s.cache.Set(id, value, s.ttl)
}

func (s *Sessions[T]) Get(id string) (T, bool) {
	var zero T
	raw, ok := s.cache.Get(id)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	// sliding expiry
	s.cache.Set(id, v, s.ttl)
	return v, true
}

func (s *Sessions[T]) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Sessions[T]) Count() int {
	return s.cache.ItemCount()
}

func (s *Sessions[T]) OnEvict(fn func(id string, value T)) {
	s.cache.OnEvicted(func(id string, raw interface{}) {
		if v, ok := raw.(T); ok {
			fn(id, v)
		}
	})
}
