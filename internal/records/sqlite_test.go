package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/misy-ai/gateway/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// corrupt writes a raw value under a record key, bypassing the typed setters.
func corrupt(t *testing.T, s *SQLiteStore, key, value string) {
	t.Helper()
	if err := s.setRaw(context.Background(), key, value); err != nil {
		t.Fatalf("corrupt %s: %v", key, err)
	}
}

func TestPlanDefaultsToFree(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if got := s.Plan(ctx); got != model.PlanFree {
		t.Errorf("absent plan = %s, want FREE", got)
	}

	corrupt(t, s, KeyPlan, "GOLD")
	if got := s.Plan(ctx); got != model.PlanFree {
		t.Errorf("invalid plan = %s, want FREE", got)
	}
}

func TestPlanRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SetPlan(ctx, model.PlanPremium); err != nil {
		t.Fatalf("set plan: %v", err)
	}
	if got := s.Plan(ctx); got != model.PlanPremium {
		t.Errorf("plan = %s, want PREMIUM", got)
	}
}

func TestDailyRoundTripAndRollover(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SetDaily(ctx, model.DailyUsage{Date: "2026-08-28", Used: 7}); err != nil {
		t.Fatalf("set daily: %v", err)
	}
	if got := s.Daily(ctx, "2026-08-28"); got.Used != 7 {
		t.Errorf("same-day used = %d, want 7", got.Used)
	}

	// Calendar-day change resets the counter.
	got := s.Daily(ctx, "2026-08-29")
	if got.Date != "2026-08-29" || got.Used != 0 {
		t.Errorf("rollover = %+v, want {2026-08-29 0}", got)
	}
}

func TestDailyCorruptionFallsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, raw := range []string{"not json", `{"date":"2026-08-28","used":-3}`, `[]`} {
		corrupt(t, s, KeyDaily, raw)
		got := s.Daily(ctx, "2026-08-28")
		if got.Date != "2026-08-28" || got.Used != 0 {
			t.Errorf("corrupt %q => %+v, want fresh record", raw, got)
		}
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	snap := model.MemorySnapshot{Items: []model.MemoryItem{
		{TS: 1756339200000, Tag: model.TagValue, Text: "важно е семейството"},
		{TS: 1756339100000, Tag: model.TagRisk, Text: "страх ме е от провал"},
	}}
	if err := s.SetMemory(ctx, snap); err != nil {
		t.Fatalf("set memory: %v", err)
	}

	got := s.Memory(ctx)
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0] != snap.Items[0] || got.Items[1] != snap.Items[1] {
		t.Errorf("round trip mismatch: %+v", got.Items)
	}
}

func TestMemoryCorruptionFallsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, raw := range []string{"{", `{"items": 5}`, `{"other": []}`} {
		corrupt(t, s, KeyMemory, raw)
		got := s.Memory(ctx)
		if got.Items == nil || len(got.Items) != 0 {
			t.Errorf("corrupt %q => %+v, want empty snapshot", raw, got)
		}
	}
}

func TestMemoryDecodeDropsInvalidAndClamps(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// One bad tag among good items.
	corrupt(t, s, KeyMemory,
		`{"items":[{"ts":1,"tag":"value","text":"a"},{"ts":2,"tag":"banana","text":"b"},{"ts":3,"tag":"style","text":"c"}]}`)
	got := s.Memory(ctx)
	if len(got.Items) != 2 {
		t.Fatalf("expected invalid tag dropped, got %+v", got.Items)
	}

	// An oversized blob is clamped to the cap.
	big := `{"items":[`
	for i := 0; i < 20; i++ {
		if i > 0 {
			big += ","
		}
		big += `{"ts":1,"tag":"intent","text":"x"}`
	}
	big += `]}`
	corrupt(t, s, KeyMemory, big)
	if got := s.Memory(ctx); len(got.Items) != model.MemoryCap {
		t.Errorf("expected clamp to %d, got %d", model.MemoryCap, len(got.Items))
	}
}

func TestTranscript(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AppendTranscript(ctx, "user", "здравей")
	s.AppendTranscript(ctx, "misy", "Здравей. Тук съм.")
	s.AppendTranscript(ctx, "user", "искам план")

	entries, err := s.Transcript(ctx, 10)
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Text != "искам план" {
		t.Errorf("expected newest first, got %q", entries[0].Text)
	}
	if entries[0].ID == "" {
		t.Error("expected non-empty ID")
	}

	n, err := s.TranscriptCount(ctx)
	if err != nil || n != 3 {
		t.Errorf("count = %d (%v), want 3", n, err)
	}

	limited, _ := s.Transcript(ctx, 2)
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d entries", len(limited))
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	dst := newTestStore(t)

	src.SetPlan(ctx, model.PlanPremium)
	src.SetDaily(ctx, model.DailyUsage{Date: "2026-08-28", Used: 4})
	src.SetMemory(ctx, model.MemorySnapshot{Items: []model.MemoryItem{
		{TS: 9, Tag: model.TagStyle, Text: "кратко и директно"},
	}})

	dump := Export(ctx, src, "2026-08-28")
	if err := Import(ctx, dst, dump); err != nil {
		t.Fatalf("import: %v", err)
	}

	if dst.Plan(ctx) != model.PlanPremium {
		t.Error("plan not imported")
	}
	if got := dst.Daily(ctx, "2026-08-28"); got.Used != 4 {
		t.Errorf("daily used = %d, want 4", got.Used)
	}
	if got := dst.Memory(ctx); len(got.Items) != 1 || got.Items[0].Text != "кратко и директно" {
		t.Errorf("memory not imported: %+v", got)
	}
}
