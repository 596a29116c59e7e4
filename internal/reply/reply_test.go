package reply

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/misy-ai/gateway/internal/model"
)

func newTestGenerator(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)), nil, nil)
}

func TestBaseDrawsFromCategoryList(t *testing.T) {
	g := newTestGenerator(1)

	for _, cat := range []model.Category{
		model.CategoryGreeting, model.CategoryTravel,
		model.CategoryBusiness, model.CategoryPersonal,
	} {
		for i := 0; i < 20; i++ {
			base := g.Base(cat)
			found := false
			for _, tmpl := range defaultTemplates[cat] {
				if base == tmpl {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("Base(%s) returned %q, not in the %s template list", cat, base, cat)
			}
		}
	}
}

func TestBaseDeterministicWithSeed(t *testing.T) {
	a := newTestGenerator(42)
	b := newTestGenerator(42)

	for i := 0; i < 10; i++ {
		if x, y := a.Base(model.CategoryTravel), b.Base(model.CategoryTravel); x != y {
			t.Fatalf("same seed diverged at draw %d: %q vs %q", i, x, y)
		}
	}
}

func TestBaseUnknownCategoryFallsBackToPersonal(t *testing.T) {
	g := newTestGenerator(7)

	base := g.Base(model.Category("nonsense"))
	found := false
	for _, tmpl := range defaultTemplates[model.CategoryPersonal] {
		if base == tmpl {
			found = true
		}
	}
	if !found {
		t.Errorf("unknown category returned %q, want a personal template", base)
	}
}

func TestFollowUp(t *testing.T) {
	g := newTestGenerator(1)

	if got := g.FollowUp(model.CategoryTravel); got != defaultFollowUps[model.CategoryTravel] {
		t.Errorf("FollowUp(travel) = %q", got)
	}
	if got := g.FollowUp(model.Category("nonsense")); got != defaultFollowUps[model.CategoryPersonal] {
		t.Errorf("FollowUp(unknown) = %q, want personal default", got)
	}
}

func TestApplyStyle(t *testing.T) {
	out := ApplyStyle(model.MoodExecutive, "текст")
	if !strings.HasPrefix(out, "💼") || !strings.HasSuffix(out, "текст") {
		t.Errorf("ApplyStyle(executive) = %q", out)
	}

	// Unknown mood falls back to midnight.
	if got, want := ApplyStyle(model.Mood("nope"), "x"), ApplyStyle(model.MoodMidnight, "x"); got != want {
		t.Errorf("unknown mood = %q, want %q", got, want)
	}
}

func TestMoodsAllValid(t *testing.T) {
	moods := Moods()
	if len(moods) != 5 {
		t.Fatalf("expected 5 moods, got %d", len(moods))
	}
	for _, m := range moods {
		if !ValidMood(m) {
			t.Errorf("mood %s not valid", m)
		}
	}
}
