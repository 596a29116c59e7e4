package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send one message and print the reply",
		Long:  "Send a single message. The message can be a positional arg or piped via stdin.",
		Run:   runSend,
	}

	RootCmd.AddCommand(cmd)
}

func runSend(cmd *cobra.Command, args []string) {
	var input string
	if len(args) > 0 {
		input = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			input = string(b)
		}
	}
	input = strings.TrimSpace(input)
	if input == "" {
		exitErr("send", fmt.Errorf("message is required (positional arg or stdin)"))
	}

	e, closer, err := openEngine()
	if err != nil {
		exitErr("start", err)
	}
	defer closer()

	res := e.Turn(cmd.Context(), input)

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(b))
		return
	}

	if res.Rejected {
		exitErr("send", fmt.Errorf("%s", res.Reason))
	}
	fmt.Println(res.Reply)
	if res.Hint != "" {
		fmt.Printf("Помня смисъл: %s\n", res.Hint)
	}
}
