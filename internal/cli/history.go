package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the chat transcript",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max messages")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Transcript(cmd.Context(), limit)
	if err != nil {
		exitErr("history", err)
	}

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(b))
		return
	}

	// Stored newest first; print oldest first for reading order.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("%s %s> %s\n", e.TS.Local().Format("2006-01-02 15:04"), e.Role, e.Text)
	}
}
