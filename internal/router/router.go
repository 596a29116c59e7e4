// Package router classifies user input into intent categories and detects
// clarity moments.
package router

import (
	"github.com/misy-ai/gateway/internal/lexicon"
	"github.com/misy-ai/gateway/internal/model"
)

// Router maps free text to a Category using fixed-precedence lexicon checks.
// Precedence matters because lexicons overlap: a message carrying both a
// greeting and a travel keyword classifies as greeting.
type Router struct {
	greeting *lexicon.Set
	travel   *lexicon.Set
	business *lexicon.Set
	clarity  *lexicon.Set
}

// New builds a Router from the given lexicons. Nil sets fall back to the
// built-in defaults.
func New(greeting, travel, business, clarity *lexicon.Set) *Router {
	if greeting == nil {
		greeting = lexicon.Default(lexicon.Greeting)
	}
	if travel == nil {
		travel = lexicon.Default(lexicon.Travel)
	}
	if business == nil {
		business = lexicon.Default(lexicon.Business)
	}
	if clarity == nil {
		clarity = lexicon.Default(lexicon.Clarity)
	}
	return &Router{greeting: greeting, travel: travel, business: business, clarity: clarity}
}

// Classify returns the intent category for input. First matching lexicon
// wins; unmatched input is personal, so the function is total.
func (r *Router) Classify(input string) model.Category {
	switch {
	case r.greeting.Match(input):
		return model.CategoryGreeting
	case r.travel.Match(input):
		return model.CategoryTravel
	case r.business.Match(input):
		return model.CategoryBusiness
	default:
		return model.CategoryPersonal
	}
}

// IsClarityMoment reports whether input asks for a concrete deliverable
// (a plan, itinerary, offer, strategy) rather than open conversation.
// Independent of Classify.
func (r *Router) IsClarityMoment(input string) bool {
	return r.clarity.Match(input)
}
