package worker

import (
	"context"
	"testing"

	"github.com/Musyoka2020-eng/Contriflow/internal/amqp"
	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/sheets/memory"
	"github.com/Musyoka2020-eng/Contriflow/internal/store"
)

func seedStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore(t.TempDir())
	doc := store.DefaultDocument()
	y24 := doc.Contributions.EnsureYear("2024")
	y24["March"] = &core.MonthRecord{Contributions: []core.Contribution{
		{MemberName: "Alice", Amount: 100, Paid: true},
	}}
	y23 := doc.Contributions.EnsureYear("2023")
	y23["December"] = &core.MonthRecord{Contributions: []core.Contribution{
		{MemberName: "Bob", Amount: 50},
	}}
	if _, err := s.Save(context.Background(), "test-org", doc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestSyncAllMirrorsEveryYear(t *testing.T) {
	mirror := memory.New()
	w := NewSyncWorker(seedStore(t), mirror, "test-org", 4, nil)

	if err := w.SyncAll(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if mirror.Years() != 2 {
		t.Fatalf("mirrored %d years, want 2", mirror.Years())
	}
	yd := mirror.Year("2024")
	if yd == nil || yd["March"] == nil || len(yd["March"].Contributions) != 1 {
		t.Fatalf("2024 mirror = %+v", yd)
	}
	if w.LastVersion() != 1 {
		t.Fatalf("last version = %d, want 1", w.LastVersion())
	}
}

func TestSyncAllEmptyStore(t *testing.T) {
	mirror := memory.New()
	w := NewSyncWorker(store.NewMemoryStore(t.TempDir()), mirror, "test-org", 2, nil)

	if err := w.SyncAll(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if mirror.Years() != 0 {
		t.Fatalf("mirrored %d years, want 0", mirror.Years())
	}
}

func TestHandleStateSync(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	w := NewSyncWorker(seedStore(t), mirror, "test-org", 2, nil)

	t.Run("other organization ignored", func(t *testing.T) {
		msg := amqp.NewStateSyncMessage("someone-else", 5)
		if err := w.HandleStateSync(ctx, msg); err != nil {
			t.Fatalf("handle: %v", err)
		}
		if mirror.Years() != 0 {
			t.Fatal("foreign message must not trigger a mirror")
		}
	})

	t.Run("new version mirrors", func(t *testing.T) {
		msg := amqp.NewStateSyncMessage("test-org", 1)
		if err := w.HandleStateSync(ctx, msg); err != nil {
			t.Fatalf("handle: %v", err)
		}
		if mirror.Years() != 2 {
			t.Fatalf("mirrored %d years, want 2", mirror.Years())
		}
	})

	t.Run("replay skipped", func(t *testing.T) {
		before := w.LastVersion()
		msg := amqp.NewStateSyncMessage("test-org", before)
		if err := w.HandleStateSync(ctx, msg); err != nil {
			t.Fatalf("handle: %v", err)
		}
		if w.LastVersion() != before {
			t.Fatalf("version moved on replay: %d -> %d", before, w.LastVersion())
		}
	})
}
