// Package memory extracts tagged meaning fragments from user input and
// maintains the bounded recency-ordered memory store.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/misy-ai/gateway/internal/lexicon"
	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/records"
)

// maxFragmentsPerTurn bounds extraction: at most this many tags per input.
const maxFragmentsPerTurn = 2

// Fragment is one extracted meaning candidate before it becomes a
// MemoryItem.
type Fragment struct {
	Tag  model.Tag
	Text string
}

// Layer implements meaning extraction and retention over the repository.
type Layer struct {
	repo  records.Repository
	value *lexicon.Set
	risk  *lexicon.Set
	inten *lexicon.Set
	style *lexicon.Set
	now   func() time.Time
}

// New builds a Layer. Nil lexicons fall back to the built-in marker sets;
// a nil clock uses time.Now.
func New(repo records.Repository, value, risk, intent, style *lexicon.Set, now func() time.Time) *Layer {
	if value == nil {
		value = lexicon.Default(lexicon.Value)
	}
	if risk == nil {
		risk = lexicon.Default(lexicon.Risk)
	}
	if intent == nil {
		intent = lexicon.Default(lexicon.Intent)
	}
	if style == nil {
		style = lexicon.Default(lexicon.Style)
	}
	if now == nil {
		now = time.Now
	}
	return &Layer{repo: repo, value: value, risk: risk, inten: intent, style: style, now: now}
}

// ExtractMeaning tests input against the four marker lexicons in fixed
// order (value, risk, intent, style). Tags are not mutually exclusive; the
// result keeps the first two matches in check order.
func (l *Layer) ExtractMeaning(input string) []Fragment {
	checks := []struct {
		tag model.Tag
		set *lexicon.Set
	}{
		{model.TagValue, l.value},
		{model.TagRisk, l.risk},
		{model.TagIntent, l.inten},
		{model.TagStyle, l.style},
	}

	var hits []Fragment
	for _, c := range checks {
		if c.set.Match(input) {
			hits = append(hits, Fragment{Tag: c.tag, Text: input})
			if len(hits) == maxFragmentsPerTurn {
				break
			}
		}
	}
	return hits
}

// Record extracts meaning from input and, when anything matched, prepends
// the fragments to the store and trims it to the cap. A turn with no
// matches leaves memory untouched, so nothing gets evicted by small talk.
func (l *Layer) Record(ctx context.Context, input string) error {
	hits := l.ExtractMeaning(input)
	if len(hits) == 0 {
		return nil
	}

	snap := l.repo.Memory(ctx)
	ts := l.now().UnixMilli()
	for _, h := range hits {
		item := model.MemoryItem{
			TS:   ts,
			Tag:  h.Tag,
			Text: model.Truncate(h.Text, model.MemoryTextLimit),
		}
		snap.Items = append([]model.MemoryItem{item}, snap.Items...)
	}
	if len(snap.Items) > model.MemoryCap {
		snap.Items = snap.Items[:model.MemoryCap]
	}

	if err := l.repo.SetMemory(ctx, snap); err != nil {
		return fmt.Errorf("record memory: %w", err)
	}
	return nil
}

// Hint returns the most recent value- or style-tagged fragment as short
// display text, or false when none exists. Read-only.
func (l *Layer) Hint(ctx context.Context) (string, bool) {
	for _, it := range l.repo.Memory(ctx).Items {
		if it.Tag == model.TagValue || it.Tag == model.TagStyle {
			return model.Truncate(it.Text, model.ExcerptLimit), true
		}
	}
	return "", false
}

// Items returns the stored fragments, newest first.
func (l *Layer) Items(ctx context.Context) []model.MemoryItem {
	return l.repo.Memory(ctx).Items
}

// Clear empties the memory store.
func (l *Layer) Clear(ctx context.Context) error {
	return l.repo.SetMemory(ctx, model.MemorySnapshot{Items: []model.MemoryItem{}})
}
