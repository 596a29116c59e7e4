package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/misy-ai/gateway/internal/engine"
	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/reply"
)

// replyRevealDelay simulates response latency before a reply is shown.
// Cosmetic only; the turn has already completed.
const replyRevealDelay = 250 * time.Millisecond

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long:  "Interactive chat. Type /mode <name> to switch mood, /plan to toggle the plan, /quit to leave.",
		Run:   runChat,
	}

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	e, closer, err := openEngine()
	if err != nil {
		exitErr("start", err)
	}
	defer closer()

	ctx := cmd.Context()

	printPlanBadge(e.Plan(ctx), e.Usage().Limit())
	greeting, note := e.Welcome(ctx)
	fmt.Printf("misy> %s\n      %s\n", greeting, note)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := runChatCommand(ctx, e, input); quit {
				return
			}
			continue
		}

		res := e.Turn(ctx, input)
		if res.Rejected {
			fmt.Printf("misy> %s Включи PREMIUM с /plan (симулация).\n", res.Reason)
			continue
		}

		time.Sleep(replyRevealDelay)
		fmt.Printf("misy> %s\n", res.Reply)
		if res.Hint != "" {
			fmt.Printf("      Помня смисъл: %s\n", res.Hint)
		}
		if res.Remaining >= 0 && res.Remaining <= 2 {
			fmt.Printf("      Остават %d FREE съобщения за днес.\n", res.Remaining)
		}
	}
}

// runChatCommand handles slash commands; returns true when the session
// should end.
func runChatCommand(ctx context.Context, e *engine.Engine, input string) bool {
	fields := strings.Fields(input)

	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/plan":
		p, err := e.TogglePlan(ctx)
		if err != nil {
			fmt.Printf("misy> план не беше сменен: %v\n", err)
			break
		}
		if p == model.PlanPremium {
			fmt.Println("misy> PREMIUM е активиран (симулация).")
		} else {
			fmt.Println("misy> PREMIUM е изключен (симулация).")
		}
		printPlanBadge(p, e.Usage().Limit())
	case "/mode":
		if len(fields) < 2 {
			fmt.Printf("misy> режими: %s\n", moodNames())
			break
		}
		m := model.Mood(fields[1])
		if !e.SetMood(m) {
			fmt.Printf("misy> непознат режим %q. Режими: %s\n", fields[1], moodNames())
			break
		}
		fmt.Printf("misy> Режим: %s\n", m)
	default:
		fmt.Printf("misy> непозната команда %s (/mode, /plan, /quit)\n", fields[0])
	}
	return false
}

func printPlanBadge(p model.Plan, limit int) {
	quota := fmt.Sprintf("%d/ден", limit)
	if p == model.PlanPremium {
		quota = "∞"
	}
	fmt.Printf("План: %s · Лимит: %s\n", p, quota)
}

func moodNames() string {
	names := make([]string, 0, 5)
	for _, m := range reply.Moods() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
