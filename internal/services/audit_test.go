package services

import (
	"context"
	"testing"
	"time"

	"github.com/soaringjerry/Sondage/internal/kv"
)

func TestAuditLogRecordsAndReloads(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	l := NewAuditLog(store)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }
	if err := l.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := l.Record(ctx, "Admin Un", "section.delete", "2", ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	reloaded := NewAuditLog(store)
	if err := reloaded.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	got := reloaded.Entries()
	if len(got) != 1 || got[0].Action != "section.delete" || !got[0].Time.Equal(fixed) {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestAuditLogIsBounded(t *testing.T) {
	l := NewAuditLog(kv.NewMemoryStore())
	ctx := context.Background()
	for i := 0; i < maxAuditEntries+5; i++ {
		if err := l.Record(ctx, "a", "act", "", ""); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if n := len(l.Entries()); n != maxAuditEntries {
		t.Fatalf("expected %d entries, got %d", maxAuditEntries, n)
	}
}
