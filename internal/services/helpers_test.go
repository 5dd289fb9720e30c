package services

import (
	"context"
	"errors"

	"github.com/soaringjerry/Sondage/internal/kv"
)

// flakyStore wraps a memory store and fails writes while failPut is set.
type flakyStore struct {
	*kv.MemoryStore
	failPut bool
	puts    int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: kv.NewMemoryStore()}
}

var errDiskFull = errors.New("disk full")

func (s *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	if s.failPut {
		return errDiskFull
	}
	s.puts++
	return s.MemoryStore.Put(ctx, key, value)
}

func emptySurveyStore(store kv.Store) *SurveyStore {
	s := NewSurveyStore(store, []Section{})
	if err := s.Init(context.Background()); err != nil {
		panic(err)
	}
	return s
}
