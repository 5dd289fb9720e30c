// Package kv persists the survey state records in a small key/value backend.
//
// The browser build kept three records in local storage; the same records live
// here under the same names, one JSON value per key. Backends are interchangeable:
// an in-process map for tests, SQLite for a single-host deployment and Redis
// when the state must be shared.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Record keys.
const (
	KeyIdentity   = "identity"
	KeyDefinition = "surveyDefinition"
	KeyResponses  = "surveyResponses"
	KeyAudit      = "auditLog"
)

// Store is the minimal persistence surface used by the survey stores.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
