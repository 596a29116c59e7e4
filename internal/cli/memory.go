package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misy-ai/gateway/internal/memory"
	"github.com/misy-ai/gateway/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "memory [list|hint|clear]",
		Short: "Inspect or clear the meaning memory",
		Args:  cobra.MaximumNArgs(1),
		Run:   runMemory,
	}

	RootCmd.AddCommand(cmd)
}

func runMemory(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	layer := memory.New(s, nil, nil, nil, nil, nil)

	action := "list"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "list":
		items := layer.Items(ctx)
		if formatFlag == "json" {
			b, _ := json.MarshalIndent(items, "", "  ")
			fmt.Println(string(b))
			return
		}
		if len(items) == 0 {
			fmt.Println("(memory is empty)")
			return
		}
		for _, it := range items {
			fmt.Printf("[%s] %s\n", it.Tag, model.Truncate(it.Text, model.ExcerptLimit))
		}
	case "hint":
		hint, ok := layer.Hint(ctx)
		if !ok {
			fmt.Println("(no hint)")
			return
		}
		fmt.Println(hint)
	case "clear":
		if err := layer.Clear(ctx); err != nil {
			exitErr("memory clear", err)
		}
		fmt.Println(`{"ok":true}`)
	default:
		exitErr("memory", fmt.Errorf("unknown action %q", action))
	}
}
