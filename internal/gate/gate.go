// Package gate decides between free-form guidance and the premium
// structured output when a clarity moment is detected.
package gate

import (
	"fmt"
	"strings"

	"github.com/misy-ai/gateway/internal/model"
)

const (
	activatedPrefix = "✅ *AYA Core е активиран*"

	travelLabel  = "AYA Travel Blueprint"
	defaultLabel = "AYA Clarity Output"
)

// Gate returns the clarity-moment reply segment for the given category and
// turn context. PREMIUM gets the simulated structured output; FREE gets a
// soft upsell naming the category's product. Never a hard block.
func Gate(cat model.Category, ctx model.TurnContext) string {
	if ctx.Plan == model.PlanPremium {
		return activatedPrefix + "\n" + SimulateOutput(cat, ctx.LastUserMessage)
	}

	label := defaultLabel
	if cat == model.CategoryTravel {
		label = travelLabel
	}
	return "Това вече е момент за структура.\n" +
		fmt.Sprintf("Ако искаш, мога да го подредя като **%s** (платена част) — без натиск.\n", label) +
		"Можем и просто да поговорим."
}

// SimulateOutput renders the fixed checklist for a category, quoting up to
// 90 runes of the last user message where the checklist calls for context.
// Pure formatting; the premium deliverable is simulated, not generated.
func SimulateOutput(cat model.Category, last string) string {
	switch cat {
	case model.CategoryTravel:
		return strings.Join([]string{
			"• Дати: (потвърди)",
			"• Пътуващи: (потвърди)",
			"• Зони за настаняване: 2–3 според стил",
			"• Дневна логика: сутрин / следобед / вечер",
			"• Бюджет: 3 нива (Standard / Comfort / Premium)",
			"• Следваща стъпка: 1 решение, не 10 таба",
		}, "\n")
	case model.CategoryBusiness:
		return strings.Join([]string{
			"• Цел (1 изречение)",
			"• Оферта (какво точно продаваш)",
			"• Канал (къде го казваш)",
			"• Следваща стъпка (едно действие днес)",
			fmt.Sprintf("• Контекст: „%s\"", model.Truncate(last, model.ExcerptLimit)),
		}, "\n")
	default:
		return strings.Join([]string{
			"• Какво е важно (1–2 условия)",
			"• Какво е риск (1 честен страх)",
			"• Следваща стъпка (малка и изпълнима)",
			fmt.Sprintf("• Контекст: „%s\"", model.Truncate(last, model.ExcerptLimit)),
		}, "\n")
	}
}
