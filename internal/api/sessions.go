package api

import (
	"sync"

	"github.com/soaringjerry/Sondage/internal/services"
)

// sessionRegistry keeps the in-progress survey of each identity in memory.
type sessionRegistry struct {
	mu     sync.Mutex
	byUser map[string]*services.SurveySession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{byUser: map[string]*services.SurveySession{}}
}

func (r *sessionRegistry) get(uid string) *services.SurveySession {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUser[uid]
	if !ok {
		s = services.NewSurveySession()
		r.byUser[uid] = s
	}
	return s
}

func (r *sessionRegistry) drop(uid string) {
	r.mu.Lock()
	delete(r.byUser, uid)
	r.mu.Unlock()
}

// reset discards every session; a new login supersedes them all.
func (r *sessionRegistry) reset() {
	r.mu.Lock()
	r.byUser = map[string]*services.SurveySession{}
	r.mu.Unlock()
}
