// Package lexicon provides named, ordered pattern sets for keyword matching.
package lexicon

import (
	"fmt"
	"regexp"
)

// Names of the built-in lexicons.
const (
	Greeting = "greeting"
	Travel   = "travel"
	Business = "business"
	Clarity  = "clarity"
	Value    = "value"
	Risk     = "risk"
	Intent   = "intent"
	Style    = "style"
)

// Defaults holds the built-in pattern data, one ordered list per lexicon.
// Patterns are regular expressions matched case-insensitively anywhere in
// the input; most are plain substrings (word stems work well for Bulgarian,
// which inflects heavily).
var Defaults = map[string][]string{
	Greeting: {"здравей", "привет", "hello", "hi"},
	Travel:   {"пъту", "самолет", "полет", "хотел", "дестинац", "нощувк", "маршрут", "итинера", "trip", "travel"},
	Business: {"бизнес", "пари", "продажб", "клиент", "оферта", "продукт", "маркетинг", "sales"},
	Clarity:  {"направи", "изгради", "състави", "дай ми", "искам план", "blueprint", "итинера", "маршрут", "стратегия", "оферта"},
	Value:    {"важно", "условие", "държа на", "приоритет"},
	Risk:     {"страх", "притеснява", "не искам", "рискувам"},
	Intent:   {"искам", "целта ми", "трябва да", "търся"},
	Style:    {"бързо", "кратко", "директно", "спокойно", "меко"},
}

// entry pairs a raw pattern with its precompiled regex.
type entry struct {
	raw string
	re  *regexp.Regexp
}

// Set is a named, ordered list of compiled patterns.
type Set struct {
	name    string
	entries []entry
}

// Compile builds a Set from ordered pattern strings.
func Compile(name string, patterns []string) (*Set, error) {
	s := &Set{name: name}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("lexicon %s: pattern %q: %w", name, p, err)
		}
		s.entries = append(s.entries, entry{raw: p, re: re})
	}
	return s, nil
}

// MustCompile is Compile for static pattern data; panics on bad patterns.
func MustCompile(name string, patterns []string) *Set {
	s, err := Compile(name, patterns)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the built-in Set for a lexicon name.
func Default(name string) *Set {
	return MustCompile(name, Defaults[name])
}

// Name returns the lexicon name.
func (s *Set) Name() string { return s.name }

// Patterns returns the raw patterns in order.
func (s *Set) Patterns() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.raw
	}
	return out
}

// Match reports whether any pattern occurs in text.
func (s *Set) Match(text string) bool {
	for _, e := range s.entries {
		if e.re.MatchString(text) {
			return true
		}
	}
	return false
}
