package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/misy-ai/gateway/internal/config"
	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/usage"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show plan, quota and memory statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("config", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	tracker := usage.New(s, cfg.DailyLimit, nil)

	plan := s.Plan(ctx)
	daily := s.Daily(ctx, model.DayKey(time.Now()))
	transcript, err := s.TranscriptCount(ctx)
	if err != nil {
		exitErr("stats", err)
	}

	stats := struct {
		Plan        model.Plan `json:"plan"`
		Date        string     `json:"date"`
		Used        int        `json:"used"`
		Limit       int        `json:"limit"`
		Remaining   int        `json:"remaining"` // -1 = unlimited
		MemoryItems int        `json:"memory_items"`
		Transcript  int        `json:"transcript_messages"`
	}{
		Plan:        plan,
		Date:        daily.Date,
		Used:        daily.Used,
		Limit:       tracker.Limit(),
		Remaining:   tracker.Remaining(ctx, plan),
		MemoryItems: len(s.Memory(ctx).Items),
		Transcript:  transcript,
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(b))
}
