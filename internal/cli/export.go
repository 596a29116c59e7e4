package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/misy-ai/gateway/internal/model"
	"github.com/misy-ai/gateway/internal/records"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the persisted records as JSON",
		Run:   runExport,
	}
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import records from JSON",
		Long:  "Import plan, daily usage and memory from JSON (stdin). Expects the format produced by export.",
		Run:   runImport,
	}

	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	dump := records.Export(cmd.Context(), s, model.DayKey(time.Now()))
	b, _ := json.MarshalIndent(dump, "", "  ")
	fmt.Println(string(b))
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var dump records.Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := records.Import(cmd.Context(), s, dump); err != nil {
		exitErr("import", err)
	}

	fmt.Println(`{"ok":true}`)
}
