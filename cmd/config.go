package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings",
	Long:  "Print the settings in effect after wclean.yaml, WCLEAN_* variables and flags are applied.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("render settings: %w", err)
		}

		out := cmd.OutOrStdout()
		source := settings.File
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(out, "# source: %s\n", source)
		_, err = out.Write(data)
		return err
	},
}
