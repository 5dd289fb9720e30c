package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/soaringjerry/Sondage/internal/kv"
)

// ResponseStore owns the submitted responses, at most one per user.
type ResponseStore struct {
	store kv.Store
	now   func() time.Time

	mu        sync.Mutex
	responses []UserResponse
}

func NewResponseStore(store kv.Store) *ResponseStore {
	return &ResponseStore{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ResponseStore) Init(ctx context.Context) error {
	var responses []UserResponse
	if _, err := kv.Load(ctx, s.store, kv.KeyResponses, &responses); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = cloneResponses(responses)
	return nil
}

// Responses returns a copy in storage order.
func (s *ResponseStore) Responses() []UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneResponses(s.responses)
}

// Submit stamps the response and stores it. An existing response for the same
// user is replaced at its current position; otherwise the response is appended.
func (s *ResponseStore) Submit(ctx context.Context, in ResponseInput) ([]UserResponse, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, NewInvalidError("user id required")
	}
	resp := UserResponse{
		UserID:      in.UserID,
		UserName:    in.UserName,
		UserPhone:   in.UserPhone,
		Answers:     cloneAnswers(in.Answers),
		SubmittedAt: s.now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneResponses(s.responses)
	replaced := false
	for i := range next {
		if next[i].UserID == in.UserID {
			next[i] = resp
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, resp)
	}
	return s.commit(ctx, next)
}

// Delete removes every response of userID. Unknown users are a no-op.
func (s *ResponseStore) Delete(ctx context.Context, userID string) ([]UserResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]UserResponse, 0, len(s.responses))
	for _, r := range s.responses {
		if r.UserID != userID {
			next = append(next, r.clone())
		}
	}
	if len(next) == len(s.responses) {
		return next, nil
	}
	return s.commit(ctx, next)
}

func (s *ResponseStore) commit(ctx context.Context, next []UserResponse) ([]UserResponse, error) {
	if err := kv.Save(ctx, s.store, kv.KeyResponses, next); err != nil {
		return nil, err
	}
	s.responses = next
	return cloneResponses(next), nil
}
