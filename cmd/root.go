package cmd

import (
	"context"

	"github.com/lakshaymaurya-felt/wclean/internal/config"
	"github.com/lakshaymaurya-felt/wclean/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug      bool
	configPath string
	logFile    string

	// settings is loaded before any subcommand runs.
	settings = &config.Settings{ProgressEvery: 20, Elevate: true}

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "wclean",
	Short: "Clean temporary files, browser caches and the Recycle Bin",
	Long: `wclean - reclaim disk space on Windows.

Deletes temporary files, Chrome and Edge caches, the Downloads folder,
directories you name, and empties the Recycle Bin. Files that refuse to
go are retried with full permissions and, if allowed, with an elevated
helper.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Cancelling ctx stops a running cleanup
// between deletions.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: search for wclean.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append logs to this file")

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads settings and configures logging for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings(configPath)
	if err != nil {
		return err
	}
	if logFile != "" {
		s.Log.File = logFile
	}
	if debug {
		s.Log.Level = "debug"
	}
	if err := logger.Init(s.Log.Level, s.Log.File); err != nil {
		return err
	}
	settings = s

	logger.Get().Debug().Str("config", s.File).Str("level", s.Log.Level).Msg("settings loaded")
	return nil
}
