package service

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phrazzld/scorelab-api/internal/profile"
)

// session pairs a controller with a lock that serializes a command and the
// persistence of its result.
type session struct {
	id         uuid.UUID
	mu         sync.Mutex
	controller *profile.Controller
}

// sessionCache is a bounded LRU of live sessions.
type sessionCache struct {
	cache *lru.Cache[uuid.UUID, *session]
}

// newSessionCache creates a cache holding at most capacity sessions. Values
// below 1 are raised to 1. onEvict, if non-nil, is called with the id of each
// session dropped to make room.
func newSessionCache(capacity int, onEvict func(id uuid.UUID)) *sessionCache {
	if capacity < 1 {
		capacity = 1
	}

	var cache *lru.Cache[uuid.UUID, *session]
	var err error
	if onEvict != nil {
		cache, err = lru.NewWithEvict(capacity, func(id uuid.UUID, _ *session) { onEvict(id) })
	} else {
		cache, err = lru.New[uuid.UUID, *session](capacity)
	}
	if err != nil {
		// ALLOW-PANIC: capacity is positive, so construction cannot fail
		panic(err)
	}
	return &sessionCache{cache: cache}
}

func (c *sessionCache) get(id uuid.UUID) (*session, bool) {
	return c.cache.Get(id)
}

// add inserts s unless a session with the same id is already cached, in
// which case the cached one is returned and marked as recently used.
func (c *sessionCache) add(s *session) *session {
	if prev, ok, _ := c.cache.PeekOrAdd(s.id, s); ok {
		c.cache.Get(s.id)
		return prev
	}
	return s
}

func (c *sessionCache) remove(id uuid.UUID) {
	c.cache.Remove(id)
}

func (c *sessionCache) len() int {
	return c.cache.Len()
}
