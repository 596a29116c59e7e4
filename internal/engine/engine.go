// Package engine orchestrates one conversation turn: admission, intent
// classification, reply generation, monetization gating and memory update.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/misy-ai/gateway/internal/gate"
	"github.com/misy-ai/gateway/internal/memory"
	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/records"
	"github.com/misy-ai/gateway/internal/reply"
	"github.com/misy-ai/gateway/internal/router"
	"github.com/misy-ai/gateway/internal/usage"
)

// Result is the outcome of one turn. Rejected results carry a reason and
// no reply; the caller decides how to present either.
type Result struct {
	Rejected  bool
	Reason    string
	Reply     string
	Hint      string // most relevant memory fragment, empty when none
	Category  model.Category
	Clarity   bool
	Remaining int // FREE messages left today; -1 means unlimited
}

// Options configures an Engine. Zero-value fields get working defaults
// backed by Repo, which is the only required field.
type Options struct {
	Repo      records.Repository
	Router    *router.Router
	Generator *reply.Generator
	Memory    *memory.Layer
	Usage     *usage.Tracker
	Logger    *zap.Logger
	Mood      model.Mood
	Clock     func() time.Time
}

// Engine processes turns one at a time. The mutex is the single-writer
// serialization point for the three persisted records.
type Engine struct {
	mu     sync.Mutex
	repo   records.Repository
	router *router.Router
	gen    *reply.Generator
	mem    *memory.Layer
	usage  *usage.Tracker
	log    *zap.Logger
	mood   model.Mood
}

// New builds an Engine from options.
func New(opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	if opts.Router == nil {
		opts.Router = router.New(nil, nil, nil, nil)
	}
	if opts.Generator == nil {
		opts.Generator = reply.New(rand.New(rand.NewSource(clock().UnixNano())), nil, nil)
	}
	if opts.Memory == nil {
		opts.Memory = memory.New(opts.Repo, nil, nil, nil, nil, clock)
	}
	if opts.Usage == nil {
		opts.Usage = usage.New(opts.Repo, 0, clock)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if !reply.ValidMood(opts.Mood) {
		opts.Mood = model.MoodMidnight
	}
	return &Engine{
		repo:   opts.Repo,
		router: opts.Router,
		gen:    opts.Generator,
		mem:    opts.Memory,
		usage:  opts.Usage,
		log:    opts.Logger,
		mood:   opts.Mood,
	}
}

// Turn processes one user message to completion. Total: quota rejection is
// a structured result, and persistence write failures are logged, not
// surfaced — the reply still stands.
func (e *Engine) Turn(ctx context.Context, input string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	plan := e.repo.Plan(ctx)

	if d := e.usage.CanSend(ctx, plan); !d.OK {
		e.log.Info("turn rejected", zap.String("plan", string(plan)), zap.String("reason", d.Reason))
		return Result{Rejected: true, Reason: d.Reason, Remaining: e.usage.Remaining(ctx, plan)}
	}

	tctx := model.TurnContext{Plan: plan, LastUserMessage: input}
	category := e.router.Classify(input)
	clarity := e.router.IsClarityMoment(input)

	base := e.gen.Base(category)
	var composed string
	if clarity {
		composed = base + "\n\n" + gate.Gate(category, tctx)
	} else {
		composed = base + "\n\n" + e.gen.FollowUp(category)
	}
	styled := reply.ApplyStyle(e.mood, composed)

	// Memory and transcript writes are fire-and-forget.
	if err := e.mem.Record(ctx, input); err != nil {
		e.log.Warn("memory write failed", zap.Error(err))
	}
	if _, err := e.usage.RecordSend(ctx, plan); err != nil {
		e.log.Warn("usage write failed", zap.Error(err))
	}
	if err := e.repo.AppendTranscript(ctx, "user", input); err != nil {
		e.log.Warn("transcript write failed", zap.Error(err))
	}
	if err := e.repo.AppendTranscript(ctx, "misy", styled); err != nil {
		e.log.Warn("transcript write failed", zap.Error(err))
	}

	hint, _ := e.mem.Hint(ctx)
	remaining := e.usage.Remaining(ctx, plan)

	e.log.Info("turn",
		zap.String("plan", string(plan)),
		zap.String("category", string(category)),
		zap.Bool("clarity", clarity),
		zap.Int("remaining", remaining),
	)

	return Result{
		Reply:     styled,
		Hint:      hint,
		Category:  category,
		Clarity:   clarity,
		Remaining: remaining,
	}
}

// Welcome returns the styled greeting and the plan note shown when a chat
// session opens.
func (e *Engine) Welcome(ctx context.Context) (greeting, note string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	greeting = reply.ApplyStyle(e.mood, "Аз съм МИСИ — човешкият вход към AYA. Пиши ми свободно.")
	if e.repo.Plan(ctx) == model.PlanPremium {
		note = "PREMIUM: AYA Core може да връща структуриран резултат."
	} else {
		note = "FREE: разговорът е свободен. Плаща се само за структуриран резултат."
	}
	return greeting, note
}

// Mood returns the session's current presentation mood.
func (e *Engine) Mood() model.Mood {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mood
}

// SetMood switches the session mood. Unknown moods are rejected.
func (e *Engine) SetMood(m model.Mood) bool {
	if !reply.ValidMood(m) {
		return false
	}
	e.mu.Lock()
	e.mood = m
	e.mu.Unlock()
	return true
}

// Plan returns the persisted plan.
func (e *Engine) Plan(ctx context.Context) model.Plan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.Plan(ctx)
}

// SetPlan persists the plan.
func (e *Engine) SetPlan(ctx context.Context, p model.Plan) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.SetPlan(ctx, p)
}

// TogglePlan flips FREE and PREMIUM, returning the new plan.
func (e *Engine) TogglePlan(ctx context.Context) (model.Plan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := model.PlanPremium
	if e.repo.Plan(ctx) == model.PlanPremium {
		next = model.PlanFree
	}
	if err := e.repo.SetPlan(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Memory exposes the memory layer for inspection commands.
func (e *Engine) Memory() *memory.Layer { return e.mem }

// Usage exposes the usage tracker for quota display.
func (e *Engine) Usage() *usage.Tracker { return e.usage }
