package cmd

import (
	"fmt"
	"runtime"

	"github.com/lakshaymaurya-felt/wclean/internal/core"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "wclean %s (%s) built %s\n", appVersion, appCommit, appDate)
		fmt.Fprintf(out, "%s, %s/%s, %s\n", core.OSVersion(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}
