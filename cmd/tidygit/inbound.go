package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/inbound"
	"github.com/tidygit/tidygit/internal/output"
)

var inboundCmd = &cobra.Command{
	Use:   "inbound",
	Short: "Analyze remote changes and flag conflicts before pulling",
	Long: `Fetches the remote, diffs your branch against its remote counterpart,
and classifies every path changed on both sides by conflict severity.
Nothing is merged or modified; the fetch is the only side effect.`,
	RunE: runInbound,
}

func init() {
	inboundCmd.Flags().Bool("json", false, "emit the report as JSON")
	inboundCmd.Flags().Bool("open", false, "open the compare link in a browser")
	inboundCmd.Flags().String("remote", "", "remote to compare against (default from config)")
}

func runInbound(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jsonOut, _ := cmd.Flags().GetBool("json")
	open, _ := cmd.Flags().GetBool("open")
	remote, _ := cmd.Flags().GetString("remote")
	if remote == "" {
		remote = cfg.Git.Remote
	}

	root, err := git.DetectRoot(".")
	if err != nil {
		return err
	}
	provider := git.NewCLI(root, logger)

	analyzer := inbound.NewAnalyzer(provider, remote, logger)
	report, err := analyzer.Analyze(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		if err := output.WriteJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		output.WriteReport(os.Stdout, report)
	}

	if open && strings.HasPrefix(report.DiffLink, "http") {
		if err := browser.OpenURL(report.DiffLink); err != nil {
			logger.WithError(err).Warn("could not open browser")
		}
	}
	return nil
}
