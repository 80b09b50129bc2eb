package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tidygit/tidygit/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tidygit",
	Short: "tidygit - turn a messy working tree into clean, grouped commits",
	Long: `tidygit clusters your outstanding edits into semantically related
groups, derives a conventional commit message for each, and commits them
one by one with all-or-nothing rollback. It can also analyze inbound
remote changes and flag conflicts before you pull.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}

		if cfg.Log.JSONFormat {
			logger.SetFormatter(&logrus.JSONFormatter{})
		}
		if level, parseErr := logrus.ParseLevel(cfg.Log.Level); parseErr == nil && !verbose {
			logger.SetLevel(level)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .tidygit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`tidygit {{.Version}}
Build time: ` + BuildTime + `
`)

	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(inboundCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
}
