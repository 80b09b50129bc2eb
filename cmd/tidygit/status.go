package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/orchestrator"
	"github.com/tidygit/tidygit/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the working tree and the commit groups tidygit would propose",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("json", false, "emit status as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	jsonOut, _ := cmd.Flags().GetBool("json")

	root, err := git.DetectRoot(".")
	if err != nil {
		return err
	}
	provider := git.NewCLI(root, logger)

	orch := orchestrator.New(root, provider, nil, logger)
	result, err := orch.Run(ctx, orchestrator.Options{DryRun: true})
	if err != nil {
		return err
	}

	if jsonOut {
		return output.WriteJSON(os.Stdout, result)
	}

	status := result.Status
	fmt.Printf("On branch %s\n", status.Branch)
	fmt.Printf("  staged: %d  unstaged: %d  untracked: %d\n\n",
		len(status.Staged), len(status.Unstaged), len(status.Untracked))
	output.WritePlan(os.Stdout, result.Groups)
	return nil
}
