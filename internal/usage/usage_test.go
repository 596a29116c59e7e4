package usage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/records"
)

func newTestRepo(t *testing.T) records.Repository {
	t.Helper()
	s, err := records.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPremiumAlwaysAdmitted(t *testing.T) {
	ctx := context.Background()
	tr := New(newTestRepo(t), 2, nil)

	for i := 0; i < 5; i++ {
		if d := tr.CanSend(ctx, model.PlanPremium); !d.OK {
			t.Fatalf("premium rejected at send %d: %s", i, d.Reason)
		}
		tr.RecordSend(ctx, model.PlanPremium)
	}
	if got := tr.Remaining(ctx, model.PlanPremium); got != -1 {
		t.Errorf("premium remaining = %d, want -1", got)
	}
}

func TestFreeQuotaBoundary(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	tr := New(newTestRepo(t), 10, fixedClock(day))

	// Sends 1..10 are admitted, the 11th is rejected.
	for i := 1; i <= 10; i++ {
		d := tr.CanSend(ctx, model.PlanFree)
		if !d.OK {
			t.Fatalf("send %d rejected early: %s", i, d.Reason)
		}
		if _, err := tr.RecordSend(ctx, model.PlanFree); err != nil {
			t.Fatalf("record send %d: %v", i, err)
		}
	}

	d := tr.CanSend(ctx, model.PlanFree)
	if d.OK {
		t.Fatal("11th send admitted, want rejection at used == limit")
	}
	if d.Reason == "" {
		t.Error("rejection must carry a human-readable reason")
	}
	if got := tr.Remaining(ctx, model.PlanFree); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
}

func TestDayRolloverReadmits(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	day1 := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)

	tr := New(repo, 1, fixedClock(day1))
	tr.RecordSend(ctx, model.PlanFree)
	if d := tr.CanSend(ctx, model.PlanFree); d.OK {
		t.Fatal("expected rejection after hitting limit")
	}

	// One hour later it is a new calendar day; the counter resets.
	day2 := day1.Add(time.Hour)
	tr = New(repo, 1, fixedClock(day2))
	if d := tr.CanSend(ctx, model.PlanFree); !d.OK {
		t.Fatalf("expected re-admission on new day: %s", d.Reason)
	}
	if got := tr.Remaining(ctx, model.PlanFree); got != 1 {
		t.Errorf("remaining after rollover = %d, want 1", got)
	}
}

func TestRecordSendOnlyCountsFree(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	day := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	tr := New(repo, 10, fixedClock(day))

	tr.RecordSend(ctx, model.PlanPremium)
	if d := repo.Daily(ctx, model.DayKey(day)); d.Used != 0 {
		t.Errorf("premium send counted: used = %d", d.Used)
	}

	tr.RecordSend(ctx, model.PlanFree)
	if d := repo.Daily(ctx, model.DayKey(day)); d.Used != 1 {
		t.Errorf("free send not counted: used = %d", d.Used)
	}
}

func TestDefaultLimit(t *testing.T) {
	tr := New(newTestRepo(t), 0, nil)
	if tr.Limit() != DefaultDailyLimit {
		t.Errorf("limit = %d, want %d", tr.Limit(), DefaultDailyLimit)
	}
}
