// Package reply generates templated replies and follow-up questions.
package reply

import (
	"math/rand"

	"github.com/misy-ai/gateway/internal/model"
)

// defaultTemplates is the base-reply library, keyed by category.
var defaultTemplates = map[model.Category][]string{
	model.CategoryGreeting: {
		"Здравей. Тук съм. Нека започнем спокойно.",
		"Калимера. Кажи ми какво тежи най-много.",
		"Добър ден. Ще го подредим — без бързане.",
	},
	model.CategoryPersonal: {
		"Първо дишаме. После решаваме. Кажи ми какво е важно за теб.",
		"Яснотата идва от рамка, не от много думи.",
		"Не си сам. Ще го подредим стъпка по стъпка.",
	},
	model.CategoryBusiness: {
		"Да го направим ясно: цел → оферта → канал → следваща стъпка.",
		"В бизнеса печели този, който е спокоен и последователен.",
		"Автентичността продава. Структурата скалира.",
	},
	model.CategoryTravel: {
		"Ок. Нека махнем хаоса: дати → зона → дневна логика.",
		"Пътуването става лесно, когато редът е правилен.",
		"Добре. Ще го подредя по AYA логика с минимални въпроси.",
	},
}

// defaultFollowUps is the follow-up question per category.
var defaultFollowUps = map[model.Category]string{
	model.CategoryGreeting: "С едно изречение: какво искаш да стане по-ясно днес?",
	model.CategoryPersonal: "Кое е най-важното условие за теб в това решение?",
	model.CategoryBusiness: "Кое е 1-ното нещо, което трябва да се случи тази седмица?",
	model.CategoryTravel:   "Кои са датите и колко човека пътувате?",
}

// Generator selects base replies and follow-up questions. The random
// source is injected so tests can pin template selection.
type Generator struct {
	templates map[model.Category][]string
	followUps map[model.Category]string
	rng       *rand.Rand
}

// New builds a Generator. The override maps are overlaid per category on
// the built-in library; nil means defaults throughout.
func New(rng *rand.Rand, templates map[model.Category][]string, followUps map[model.Category]string) *Generator {
	lib := make(map[model.Category][]string, len(defaultTemplates))
	for cat, arr := range defaultTemplates {
		lib[cat] = arr
	}
	for cat, arr := range templates {
		if len(arr) > 0 {
			lib[cat] = arr
		}
	}

	qs := make(map[model.Category]string, len(defaultFollowUps))
	for cat, q := range defaultFollowUps {
		qs[cat] = q
	}
	for cat, q := range followUps {
		if q != "" {
			qs[cat] = q
		}
	}

	return &Generator{templates: lib, followUps: qs, rng: rng}
}

// Base returns a uniformly random base reply for the category. An unmapped
// category falls back to the personal list; unreachable via the router but
// must not fail.
func (g *Generator) Base(cat model.Category) string {
	arr := g.templates[cat]
	if len(arr) == 0 {
		arr = g.templates[model.CategoryPersonal]
	}
	return arr[g.rng.Intn(len(arr))]
}

// FollowUp returns the follow-up question for the category, defaulting to
// the personal question. Pure lookup, no randomness.
func (g *Generator) FollowUp(cat model.Category) string {
	if q, ok := g.followUps[cat]; ok {
		return q
	}
	return g.followUps[model.CategoryPersonal]
}
