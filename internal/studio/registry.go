package studio

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/passagelab/studio/internal/passage"
)

var ErrSessionNotFound = errors.New("session not found")

// Notification is one transient action-bar message raised while handling a
// gesture. The API layer forwards these to the frontend verbatim.
type Notification struct {
	Title  string `json:"title"`
	Status string `json:"status"` // "success" or "error"
}

type entry struct {
	mu      sync.Mutex
	session *passage.Session
	pending []Notification
}

// Registry holds the live authoring sessions, one per open editor. Sessions
// are not safe for concurrent mutation, so every gesture runs under the
// owning entry's lock.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	rng     func() *rand.Rand // per-session random source factory, nil for default
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]*entry{}}
}

// NewRegistryWithRand builds sessions with random sources from src, for
// reproducible tests.
func NewRegistryWithRand(src func() *rand.Rand) *Registry {
	return &Registry{entries: map[string]*entry{}, rng: src}
}

// Create opens a new authoring session and returns its ID.
func (r *Registry) Create(passageText string, style passage.Style, maxSelections int, placeholder string) string {
	e := &entry{}
	opts := []passage.Option{
		passage.WithNotifier(func(title string, success bool) {
			status := "error"
			if success {
				status = "success"
			}
			e.pending = append(e.pending, Notification{Title: title, Status: status})
		}),
	}
	if r.rng != nil {
		opts = append(opts, passage.WithRand(r.rng()))
	}
	e.session = passage.NewSession(passageText, style, maxSelections, placeholder, opts...)

	id := uuid.NewString()
	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()
	return id
}

// With runs one gesture against the session, serialized with any others, and
// returns the notifications the gesture raised. fn's error passes through.
func (r *Registry) With(id string, fn func(s *passage.Session) error) ([]Notification, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err := fn(e.session)
	notes := e.pending
	e.pending = nil
	return notes, err
}

// Delete discards a session (editor closed or passage abandoned).
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}
