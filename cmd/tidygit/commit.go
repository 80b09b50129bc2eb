package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/history"
	"github.com/tidygit/tidygit/internal/models"
	"github.com/tidygit/tidygit/internal/orchestrator"
	"github.com/tidygit/tidygit/internal/output"
	"golang.org/x/term"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Cluster outstanding edits and commit them as grouped commits",
	Long: `Scans the working tree, clusters related edits into groups, derives a
conventional commit message per group, and commits the approved groups in
order. Any failure rolls the whole batch back with a soft reset, so no
edits are ever lost.`,
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().Bool("dry-run", false, "show the proposed groups without committing")
	commitCmd.Flags().BoolP("yes", "y", false, "commit without the interactive confirmation")
	commitCmd.Flags().Bool("json", false, "emit the plan and results as JSON")
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	jsonOut, _ := cmd.Flags().GetBool("json")

	root, err := git.DetectRoot(".")
	if err != nil {
		return err
	}
	provider := git.NewCLI(root, logger)

	store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
	if err != nil {
		logger.WithError(err).Warn("batch history unavailable")
		store = nil
	} else {
		defer store.Close()
	}

	orch := orchestrator.New(root, provider, store, logger)

	opts := orchestrator.Options{DryRun: dryRun}
	if !yes && !dryRun {
		opts.Approve = confirmPlan(jsonOut)
	}

	result, err := orch.Run(ctx, opts)
	if err != nil {
		return err
	}

	if jsonOut {
		return output.WriteJSON(os.Stdout, result)
	}

	if dryRun || len(result.Records) == 0 {
		if len(result.Groups) > 0 {
			output.WritePlan(os.Stdout, result.Groups)
		} else if result.Status != nil && !result.Status.IsDirty {
			output.WritePlan(os.Stdout, nil)
		}
		return nil
	}

	fmt.Printf("Committed %d groups on %s:\n", len(result.Records), result.Branch)
	output.WriteRecords(os.Stdout, result.Records)
	return nil
}

// confirmPlan shows the proposed groups and asks for a go-ahead when stdin
// is an interactive terminal. Non-interactive runs proceed unprompted.
func confirmPlan(jsonOut bool) orchestrator.ApproveFunc {
	return func(groups []models.ChangeGroup) ([]models.ChangeGroup, error) {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return groups, nil
		}

		if !jsonOut {
			output.WritePlan(os.Stdout, groups)
		}
		fmt.Printf("Commit these %d groups? [y/N] ", len(groups))

		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted; nothing committed.")
			return nil, nil
		}
		return groups, nil
	}
}
