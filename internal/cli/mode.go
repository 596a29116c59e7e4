package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/reply"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "List presentation moods",
		Long:  "List the available moods. Pick one per session with --mood or /mode in chat.",
		Run:   runMode,
	}

	RootCmd.AddCommand(cmd)
}

func runMode(cmd *cobra.Command, args []string) {
	for _, m := range reply.Moods() {
		marker := ""
		if m == model.MoodMidnight {
			marker = " (default)"
		}
		fmt.Printf("%s%s\n", m, marker)
	}
}
