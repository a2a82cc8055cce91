package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:       "completion [powershell|bash|zsh|fish]",
	Short:     "Set up shell tab completion",
	Long:      "Generate tab completion scripts. PowerShell is the default.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"powershell", "bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := "powershell"
		if len(args) == 1 {
			shell = args[0]
		}

		out := cmd.OutOrStdout()
		switch shell {
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		}
		return fmt.Errorf("unsupported shell %q", shell)
	},
}
