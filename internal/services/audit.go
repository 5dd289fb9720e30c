package services

import (
	"context"
	"sync"
	"time"

	"github.com/soaringjerry/Sondage/internal/kv"
)

// maxAuditEntries bounds the persisted trail; older entries are dropped first.
const maxAuditEntries = 500

// AuditLog records administrator mutations and submissions.
type AuditLog struct {
	store kv.Store
	now   func() time.Time

	mu      sync.Mutex
	entries []AuditEntry
}

func NewAuditLog(store kv.Store) *AuditLog {
	return &AuditLog{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (l *AuditLog) Init(ctx context.Context) error {
	var entries []AuditEntry
	if _, err := kv.Load(ctx, l.store, kv.KeyAudit, &entries); err != nil {
		return err
	}
	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

func (l *AuditLog) Record(ctx context.Context, actor, action, target, note string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := append(append([]AuditEntry{}, l.entries...), AuditEntry{
		Time:   l.now(),
		Actor:  actor,
		Action: action,
		Target: target,
		Note:   note,
	})
	if len(next) > maxAuditEntries {
		next = next[len(next)-maxAuditEntries:]
	}
	if err := kv.Save(ctx, l.store, kv.KeyAudit, next); err != nil {
		return err
	}
	l.entries = next
	return nil
}

// Entries returns the trail oldest first.
func (l *AuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
