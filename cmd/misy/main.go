package main

import (
	"os"

	"github.com/misy-ai/gateway/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
