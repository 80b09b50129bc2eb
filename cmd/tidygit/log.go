package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tidygit/tidygit/internal/history"
	"github.com/tidygit/tidygit/internal/output"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List past batch-commit runs from the local history",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().Bool("json", false, "emit history as JSON")
}

func runLog(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")

	store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
	if err != nil {
		return err
	}
	defer store.Close()

	batches, err := store.ListBatches()
	if err != nil {
		return err
	}

	if jsonOut {
		return output.WriteJSON(os.Stdout, batches)
	}
	output.WriteBatches(os.Stdout, batches)
	return nil
}
