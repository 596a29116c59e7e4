// Package config handles gateway configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/misy-ai/gateway/internal/lexicon"
	"github.com/misy-ai/gateway/internal/model"
)

// Config holds the tunable gateway settings. Everything is optional; the
// zero value behaves like the built-in defaults.
type Config struct {
	// DailyLimit is the FREE-plan quota; 0 keeps the default.
	DailyLimit int `yaml:"daily_limit"`

	// DefaultMood is the mood a session starts in.
	DefaultMood string `yaml:"default_mood"`

	// Lexicons overrides pattern lists by lexicon name (greeting, travel,
	// business, clarity, value, risk, intent, style).
	Lexicons map[string][]string `yaml:"lexicons"`

	// Templates overrides base-reply lists by category.
	Templates map[string][]string `yaml:"templates"`

	// FollowUps overrides follow-up questions by category.
	FollowUps map[string]string `yaml:"follow_ups"`
}

// DefaultSearchPaths returns the config file search order.
// An explicit path (from --config) is checked first.
// Then: ./misy.yaml, ~/.config/misy/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"misy.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "misy", "config.yaml"))
	}
	return paths
}

// Load reads configuration. An explicit path must exist; otherwise the
// search paths are tried and a missing file simply means defaults.
func Load(explicit string) (Config, error) {
	path := explicit
	if path == "" {
		for _, p := range DefaultSearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return Config{}, nil
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c Config) validate() error {
	if c.DailyLimit < 0 {
		return fmt.Errorf("daily_limit must not be negative")
	}
	for name, patterns := range c.Lexicons {
		if _, ok := lexicon.Defaults[name]; !ok {
			return fmt.Errorf("unknown lexicon %q", name)
		}
		if len(patterns) == 0 {
			return fmt.Errorf("lexicon %q has no patterns", name)
		}
		if _, err := lexicon.Compile(name, patterns); err != nil {
			return err
		}
	}
	return nil
}

// Mood returns the configured starting mood, midnight when unset.
func (c Config) Mood() model.Mood {
	if c.DefaultMood == "" {
		return model.MoodMidnight
	}
	return model.Mood(c.DefaultMood)
}

// Lexicon compiles the named lexicon, applying any override.
func (c Config) Lexicon(name string) (*lexicon.Set, error) {
	if patterns, ok := c.Lexicons[name]; ok {
		return lexicon.Compile(name, patterns)
	}
	return lexicon.Default(name), nil
}

// TemplateLib returns the base-reply overrides keyed by Category, or nil
// when none are configured.
func (c Config) TemplateLib() map[model.Category][]string {
	if len(c.Templates) == 0 {
		return nil
	}
	lib := make(map[model.Category][]string, len(c.Templates))
	for k, v := range c.Templates {
		lib[model.Category(k)] = v
	}
	return lib
}

// FollowUpLib returns the follow-up overrides keyed by Category, or nil
// when none are configured.
func (c Config) FollowUpLib() map[model.Category]string {
	if len(c.FollowUps) == 0 {
		return nil
	}
	lib := make(map[model.Category]string, len(c.FollowUps))
	for k, v := range c.FollowUps {
		lib[model.Category(k)] = v
	}
	return lib
}
