// Package cli implements the misy CLI commands.
package cli

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/misy-ai/gateway/internal/config"
	"github.com/misy-ai/gateway/internal/engine"
	"github.com/misy-ai/gateway/internal/lexicon"
	"github.com/misy-ai/gateway/internal/memory"
	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/records"
	"github.com/misy-ai/gateway/internal/reply"
	"github.com/misy-ai/gateway/internal/router"
	"github.com/misy-ai/gateway/internal/usage"
)

var (
	dbPath     string
	configPath string
	moodFlag   string
	formatFlag string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "misy",
	Short: "MISY conversational gateway",
	Long:  "Rule-based chat gateway: intent routing, moods, soft monetization and a meaning-only memory. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MISY_DB or ~/.misy/gateway.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./misy.yaml or ~/.config/misy/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&moodFlag, "mood", "m", "", "Session mood: midnight, flirt, executive, velvet, cafe")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log turn details to stderr")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("MISY_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".misy", "gateway.db")
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openEngine assembles the engine from config, flags and the SQLite store.
// The returned closer flushes the logger and closes the store.
func openEngine() (*engine.Engine, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	store, err := records.NewSQLiteStore(getDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	sets := map[string]*lexicon.Set{}
	for _, name := range []string{
		lexicon.Greeting, lexicon.Travel, lexicon.Business, lexicon.Clarity,
		lexicon.Value, lexicon.Risk, lexicon.Intent, lexicon.Style,
	} {
		set, err := cfg.Lexicon(name)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		sets[name] = set
	}

	mood := cfg.Mood()
	if moodFlag != "" {
		mood = model.Mood(moodFlag)
		if !reply.ValidMood(mood) {
			store.Close()
			return nil, nil, fmt.Errorf("unknown mood %q", moodFlag)
		}
	}

	logger := newLogger()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	e := engine.New(engine.Options{
		Repo:      store,
		Router:    router.New(sets[lexicon.Greeting], sets[lexicon.Travel], sets[lexicon.Business], sets[lexicon.Clarity]),
		Generator: reply.New(rng, cfg.TemplateLib(), cfg.FollowUpLib()),
		Memory:    memory.New(store, sets[lexicon.Value], sets[lexicon.Risk], sets[lexicon.Intent], sets[lexicon.Style], nil),
		Usage:     usage.New(store, cfg.DailyLimit, nil),
		Logger:    logger,
		Mood:      mood,
	})

	closer := func() {
		logger.Sync()
		store.Close()
	}
	return e, closer, nil
}

// openStore opens just the repository, for commands that bypass the engine.
func openStore() (*records.SQLiteStore, error) {
	return records.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
