package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/lakshaymaurya-felt/wclean/internal/config"
	"github.com/lakshaymaurya-felt/wclean/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cleanup categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printCategories(cmd.OutOrStdout(), config.GetCleanCategories(), config.BrowserInstalled)
	},
}

// printCategories writes one block per category: name, alias, flags and
// the roots it cleans.
func printCategories(w io.Writer, categories []config.Category, installed func(string) bool) {
	for _, c := range categories {
		var tags []string
		if c.Default {
			tags = append(tags, "default")
		}
		if c.HighRisk() {
			tags = append(tags, ui.WarningStyle().Render("high risk"))
		}
		if !installed(c.Name) {
			tags = append(tags, ui.MutedStyle().Render("not installed"))
		}

		line := fmt.Sprintf("%s %s (%s)", ui.IconBullet, c.Name, c.Alias)
		if len(tags) > 0 {
			line += "  [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(c.Description))

		switch {
		case c.Trash:
			fmt.Fprintf(w, "    %s Recycle Bin on all drives\n", ui.IconChevron)
		case c.Custom:
			fmt.Fprintf(w, "    %s directories given with --path\n", ui.IconChevron)
		default:
			for _, p := range c.Paths {
				fmt.Fprintf(w, "    %s %s\n", ui.IconChevron, p)
			}
		}
	}
}
