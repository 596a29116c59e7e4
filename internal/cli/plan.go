package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/misy-ai/gateway/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan [show|toggle|set FREE|PREMIUM]",
		Short: "Show or change the monetization plan",
		Args:  cobra.MaximumNArgs(2),
		Run:   runPlan,
	}

	RootCmd.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "show":
		fmt.Println(s.Plan(ctx))
	case "toggle":
		next := model.PlanPremium
		if s.Plan(ctx) == model.PlanPremium {
			next = model.PlanFree
		}
		if err := s.SetPlan(ctx, next); err != nil {
			exitErr("plan toggle", err)
		}
		fmt.Println(next)
	case "set":
		if len(args) < 2 {
			exitErr("plan set", fmt.Errorf("expected FREE or PREMIUM"))
		}
		p := model.Plan(strings.ToUpper(args[1]))
		if p != model.PlanFree && p != model.PlanPremium {
			exitErr("plan set", fmt.Errorf("unknown plan %q (FREE or PREMIUM)", args[1]))
		}
		if err := s.SetPlan(ctx, p); err != nil {
			exitErr("plan set", err)
		}
		fmt.Println(p)
	default:
		exitErr("plan", fmt.Errorf("unknown action %q", action))
	}
}
