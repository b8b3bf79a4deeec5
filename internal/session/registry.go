package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	pkglogger "github.com/frahmantamala/access-console/pkg/logger"
)

// Registry keeps open sessions by id. It holds at most size sessions,
// dropping the least recently used one when full, and closes sessions that
// have not been touched for ttl.
type Registry struct {
	// mu makes the lookup and TTL refresh in Get atomic with Close.
	mu     sync.Mutex
	cache  *expirable.LRU[string, *Session]
	logger *slog.Logger
}

func NewRegistry(size int, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = pkglogger.LoggerWrapper()
	}
	r := &Registry{logger: logger}
	r.cache = expirable.NewLRU[string, *Session](size, r.onEvict, ttl)
	return r
}

// Open stores s under a new id.
func (r *Registry) Open(s *Session) string {
	id := uuid.NewString()
	r.cache.Add(id, s)
	return id
}

// Get returns the session and restarts its idle timer.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	r.cache.Add(id, s)
	return s, true
}

// Contains reports whether id still names s, without refreshing its timer.
func (r *Registry) Contains(id string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.cache.Peek(id)
	return ok && current == s
}

func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Remove(id)
}

func (r *Registry) Len() int {
	return r.cache.Len()
}

func (r *Registry) onEvict(id string, s *Session) {
	r.logger.Debug("edit session closed", "session_id", id, "mode", s.Mode())
}
