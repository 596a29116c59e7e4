// Package records provides the persisted-record repository and its SQLite
// implementation.
package records

import (
	"context"
	"encoding/json"
	"time"

	"github.com/misy-ai/gateway/internal/model"
)

// Record keys. Each key holds one independent JSON-encodable blob.
const (
	KeyPlan   = "plan"
	KeyDaily  = "daily"
	KeyMemory = "memory"
)

// TranscriptEntry is one persisted chat message.
type TranscriptEntry struct {
	ID   string    `json:"id"`
	TS   time.Time `json:"ts"`
	Role string    `json:"role"` // "user" or "misy"
	Text string    `json:"text"`
}

// Repository stores the gateway's three persisted records and the chat
// transcript. Read paths are total: a missing, malformed, or unreadable
// record yields its documented default, never an error.
type Repository interface {
	// Plan returns the stored plan; absent or invalid means FREE.
	Plan(ctx context.Context) model.Plan

	// SetPlan persists the plan.
	SetPlan(ctx context.Context, p model.Plan) error

	// Daily returns the usage record for today, resetting the counter when
	// the stored date differs from today.
	Daily(ctx context.Context, today string) model.DailyUsage

	// SetDaily persists the usage record.
	SetDaily(ctx context.Context, d model.DailyUsage) error

	// Memory returns the stored memory snapshot; corruption yields an
	// empty snapshot.
	Memory(ctx context.Context) model.MemorySnapshot

	// SetMemory persists the memory snapshot.
	SetMemory(ctx context.Context, m model.MemorySnapshot) error

	// AppendTranscript records one chat message.
	AppendTranscript(ctx context.Context, role, text string) error

	// Transcript returns up to limit messages, newest first.
	Transcript(ctx context.Context, limit int) ([]TranscriptEntry, error)

	// TranscriptCount returns the number of stored messages.
	TranscriptCount(ctx context.Context) (int, error)

	// Close closes the repository.
	Close() error
}

// decodeDaily parses a stored daily blob, substituting a fresh record for
// today on any corruption or on calendar-day change.
func decodeDaily(raw string, ok bool, today string) model.DailyUsage {
	fresh := model.DailyUsage{Date: today, Used: 0}
	if !ok {
		return fresh
	}
	var d model.DailyUsage
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return fresh
	}
	if d.Date != today || d.Used < 0 {
		return fresh
	}
	return d
}

// decodeMemory parses a stored memory blob, substituting an empty snapshot
// on corruption. Items beyond the cap or with unknown tags are dropped.
func decodeMemory(raw string, ok bool) model.MemorySnapshot {
	empty := model.MemorySnapshot{Items: []model.MemoryItem{}}
	if !ok {
		return empty
	}
	var m model.MemorySnapshot
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return empty
	}
	if m.Items == nil {
		return empty
	}
	items := make([]model.MemoryItem, 0, len(m.Items))
	for _, it := range m.Items {
		if !model.ValidTags[it.Tag] {
			continue
		}
		items = append(items, it)
		if len(items) == model.MemoryCap {
			break
		}
	}
	return model.MemorySnapshot{Items: items}
}
