// Package usage enforces the FREE-plan daily message quota.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/records"
)

// DefaultDailyLimit is the number of FREE messages admitted per calendar
// day. Exactly this many are allowed: the check rejects at used >= limit
// and the counter increments only after admission.
const DefaultDailyLimit = 10

// Decision is the admission result for one message.
type Decision struct {
	OK     bool
	Reason string // set when OK is false
}

// Tracker checks and records per-day usage against the repository.
type Tracker struct {
	repo  records.Repository
	limit int
	now   func() time.Time
}

// New builds a Tracker. limit <= 0 selects DefaultDailyLimit; a nil clock
// uses time.Now.
func New(repo records.Repository, limit int, now func() time.Time) *Tracker {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	if now == nil {
		now = time.Now
	}
	return &Tracker{repo: repo, limit: limit, now: now}
}

// Limit returns the configured daily limit.
func (t *Tracker) Limit() int { return t.limit }

// CanSend decides whether a message is admitted. PREMIUM always passes;
// FREE passes while today's counter is under the limit.
func (t *Tracker) CanSend(ctx context.Context, plan model.Plan) Decision {
	if plan == model.PlanPremium {
		return Decision{OK: true}
	}
	d := t.repo.Daily(ctx, model.DayKey(t.now()))
	if d.Used >= t.limit {
		return Decision{OK: false, Reason: fmt.Sprintf("Достигна лимита %d/ден (FREE).", t.limit)}
	}
	return Decision{OK: true}
}

// RecordSend increments today's counter and persists it. Call only after a
// successful admission, once the message is accepted into the conversation.
// PREMIUM sends are not counted.
func (t *Tracker) RecordSend(ctx context.Context, plan model.Plan) (model.DailyUsage, error) {
	d := t.repo.Daily(ctx, model.DayKey(t.now()))
	if plan == model.PlanPremium {
		return d, nil
	}
	d.Used++
	if err := t.repo.SetDaily(ctx, d); err != nil {
		return d, fmt.Errorf("record send: %w", err)
	}
	return d, nil
}

// Remaining returns how many FREE messages are left today; -1 means
// unlimited (PREMIUM).
func (t *Tracker) Remaining(ctx context.Context, plan model.Plan) int {
	if plan == model.PlanPremium {
		return -1
	}
	d := t.repo.Daily(ctx, model.DayKey(t.now()))
	left := t.limit - d.Used
	if left < 0 {
		left = 0
	}
	return left
}
