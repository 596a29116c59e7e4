// Package model defines the core gateway data types.
package model

import "time"

// Category is a conversational intent.
type Category string

const (
	CategoryGreeting Category = "greeting"
	CategoryTravel   Category = "travel"
	CategoryBusiness Category = "business"
	CategoryPersonal Category = "personal"
)

// Plan is the monetization tier.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

// ParsePlan maps a stored plan string to a Plan. Anything that is not
// exactly "PREMIUM" is treated as FREE.
func ParsePlan(s string) Plan {
	if s == string(PlanPremium) {
		return PlanPremium
	}
	return PlanFree
}

// Tag is the semantic role of an extracted memory fragment.
type Tag string

const (
	TagValue  Tag = "value"
	TagRisk   Tag = "risk"
	TagIntent Tag = "intent"
	TagStyle  Tag = "style"
)

// ValidTags are the allowed meaning tags.
var ValidTags = map[Tag]bool{
	TagValue:  true,
	TagRisk:   true,
	TagIntent: true,
	TagStyle:  true,
}

// Mood is a presentation mode applied to replies.
type Mood string

const (
	MoodMidnight  Mood = "midnight"
	MoodFlirt     Mood = "flirt"
	MoodExecutive Mood = "executive"
	MoodVelvet    Mood = "velvet"
	MoodCafe      Mood = "cafe"
)

// MemoryItem is one retained meaning fragment. Immutable once created.
// Field names match the persisted wire format: ts is epoch milliseconds.
type MemoryItem struct {
	TS   int64  `json:"ts"`
	Tag  Tag    `json:"tag"`
	Text string `json:"text"`
}

// MemorySnapshot is the persisted memory record: items ordered newest
// first, at most MemoryCap entries.
type MemorySnapshot struct {
	Items []MemoryItem `json:"items"`
}

// DailyUsage is the persisted per-day message counter.
type DailyUsage struct {
	Date string `json:"date"` // YYYY-MM-DD
	Used int    `json:"used"`
}

// TurnContext carries per-turn state into the reply pipeline. Ephemeral,
// never persisted.
type TurnContext struct {
	Plan            Plan
	LastUserMessage string
}

const (
	// MemoryCap bounds the memory store; oldest items are evicted.
	MemoryCap = 12

	// MemoryTextLimit bounds stored fragment text, in runes.
	MemoryTextLimit = 140

	// ExcerptLimit bounds quoted excerpts (hints, context lines), in runes.
	ExcerptLimit = 90
)

// DayKey formats a time as the calendar-day identifier used by DailyUsage.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Truncate shortens s to at most n runes, appending an ellipsis when it
// cuts. Rune-based so multi-byte text is never split mid-character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
