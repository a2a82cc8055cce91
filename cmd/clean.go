package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lakshaymaurya-felt/wclean/internal/clean"
	"github.com/lakshaymaurya-felt/wclean/internal/config"
	"github.com/lakshaymaurya-felt/wclean/internal/core"
	"github.com/lakshaymaurya-felt/wclean/internal/logger"
	"github.com/lakshaymaurya-felt/wclean/internal/metrics"
	"github.com/lakshaymaurya-felt/wclean/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cleanAll         bool
	cleanDefaults    bool
	cleanYes         bool
	cleanPlain       bool
	cleanPaths       []string
	cleanMetricsFile string
)

var cleanCmd = &cobra.Command{
	Use:   "clean [category...]",
	Short: "Free up disk space",
	Long: `Delete the contents of the selected categories.

Categories are named by identifier or alias (see 'wclean list').
High-risk categories (Recycle Bin, Downloads, custom paths) ask for
confirmation unless --yes is given.`,
	Example: `  wclean clean temp chrome
  wclean clean --defaults
  wclean clean --path D:\build\cache --yes`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Clean all categories")
	cleanCmd.Flags().BoolVar(&cleanDefaults, "defaults", false, "Clean the default categories")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Do not ask before cleaning high-risk categories")
	cleanCmd.Flags().BoolVar(&cleanPlain, "plain", false, "Print progress as plain lines instead of the progress view")
	cleanCmd.Flags().StringArrayVar(&cleanPaths, "path", nil, "Add a directory to the custom category (repeatable)")
	cleanCmd.Flags().StringVar(&cleanMetricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")
}

func runClean(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	log := logger.WithComponent("cli")

	cat := config.NewCatalog(config.DefaultCategories()...)
	addCustomPaths(out, cat, cleanPaths)

	sel, err := buildSelection(cat, args, cleanPaths, cleanAll, cleanDefaults)
	if err != nil {
		return err
	}

	if risky := cat.HighRisk(sel); len(risky) > 0 && !cleanYes {
		ok, err := ui.Confirm(cmd.InOrStdin(), out,
			fmt.Sprintf("%s %s will be permanently deleted. Continue?", ui.IconWarning, strings.Join(risky, ", ")))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if !core.IsElevated() {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.MutedStyle().Render(
			"Tip: run as administrator for better results; some system files can only be removed with elevation."))
	}
	warnRunningProcesses(cmd.ErrOrStderr(), cat, sel)

	rec := metrics.New()
	engine := newEngine(cat, rec)

	before, diskErr := core.FreeSpace(os.TempDir())

	ctx := cmd.Context()
	plain := cleanPlain || settings.Plain || !ui.IsTerminal(out)
	logSink := clean.LogSink{Logger: log}

	var res clean.RunResult
	if plain {
		res.Summary, res.Err = engine.Run(ctx, sel, clean.MultiSink{ui.NewPlainSink(out), logSink})
	} else {
		start := func(ctx context.Context, sink clean.ProgressSink) (<-chan clean.RunResult, error) {
			return engine.Start(ctx, sel, clean.MultiSink{sink, logSink})
		}
		var uiErr error
		res, uiErr = ui.RunWithProgress(ctx, "Cleaning", start, tea.WithOutput(out))
		if uiErr != nil {
			log.Warn().Err(uiErr).Msg("progress view ended early")
		}
	}

	var reclaimed uint64
	if diskErr == nil {
		if after, err := core.FreeSpace(os.TempDir()); err == nil {
			reclaimed = core.Reclaimed(before, after)
		}
	} else {
		log.Debug().Err(diskErr).Msg("free space unavailable")
	}
	printSummary(out, res.Summary, reclaimed)

	if path := metricsFile(); path != "" {
		if err := rec.WriteTextfile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("writing metrics failed")
		}
	}

	if res.Err != nil {
		return res.Err
	}
	return nil
}

func metricsFile() string {
	if cleanMetricsFile != "" {
		return cleanMetricsFile
	}
	return settings.MetricsFile
}

func newEngine(cat *config.Catalog, rec *metrics.Recorder) *clean.Engine {
	fsys := afero.NewOsFs()

	var elevator clean.Elevator
	if settings.Elevate {
		elevator = clean.NewElevator()
	}

	return clean.NewEngine(cat,
		clean.WithFs(fsys),
		clean.WithDeleter(clean.NewForceDeleter(fsys, elevator, settings.ElevateWait, rec)),
		clean.WithTrash(clean.NewTrashController(nil)),
		clean.WithMetrics(rec),
		clean.WithProgressEvery(settings.ProgressEvery),
	)
}

// addCustomPaths registers --path values and reports each outcome.
func addCustomPaths(w io.Writer, cat *config.Catalog, paths []string) {
	for _, p := range paths {
		switch cat.AddCustomPath(p) {
		case config.AddAdded:
			fmt.Fprintf(w, "Added custom path: %s\n", p)
		case config.AddAlreadyPresent:
			fmt.Fprintf(w, "Custom path already in list: %s\n", p)
		case config.AddInvalid:
			fmt.Fprintf(w, "Ignoring invalid custom path %q\n", p)
		}
	}
}

// buildSelection turns command line input into a validated selection.
// Giving --path implies the custom category.
func buildSelection(cat *config.Catalog, args, paths []string, all, defaults bool) (config.Selection, error) {
	if all {
		return cat.All(), nil
	}

	names := append([]string(nil), args...)
	if defaults {
		names = append(names, cat.Defaults()...)
	}
	if len(cat.CustomPaths()) > 0 && len(paths) > 0 {
		names = append(names, config.CategoryCustom)
	}

	sel, err := cat.NewSelection(names...)
	if errors.Is(err, config.ErrEmptySelection) {
		return nil, fmt.Errorf("%w: name categories, or use --defaults, --all or --path (see 'wclean list')", err)
	}
	return sel, err
}

// warnRunningProcesses notes browsers that are open, since their caches
// are usually locked.
func warnRunningProcesses(w io.Writer, cat *config.Catalog, sel config.Selection) {
	var names []string
	for _, name := range sel {
		if c, ok := cat.Category(name); ok {
			names = append(names, c.Processes...)
		}
	}
	running, err := core.RunningProcesses(names...)
	if err != nil {
		logger.Get().Debug().Err(err).Msg("process check failed")
		return
	}
	if len(running) > 0 {
		fmt.Fprintln(w, ui.WarningStyle().Render(
			fmt.Sprintf("%s %s running; files it has open will be skipped.", ui.IconWarning, strings.Join(running, ", "))))
	}
}

// printSummary writes the closing report of a run.
func printSummary(w io.Writer, s clean.RunSummary, reclaimed uint64) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Processed %d items, deleted %d\n", s.TotalItems, s.DeletedItems)

	for _, c := range s.Categories {
		switch c.Status {
		case clean.CategoryCleaned:
			fmt.Fprintf(w, "  %s %s: %d/%d deleted\n", ui.SuccessStyle().Render(ui.IconCheck), c.Name, c.Deleted, c.Total)
		case clean.CategoryPartial:
			fmt.Fprintf(w, "  %s %s: %d/%d deleted, the rest is in use or protected\n",
				ui.WarningStyle().Render(ui.IconWarning), c.Name, c.Deleted, c.Total)
		case clean.CategoryNothingToClean:
			fmt.Fprintf(w, "  %s %s: nothing to clean\n", ui.MutedStyle().Render(ui.IconBullet), c.Name)
		case clean.CategoryFailed:
			fmt.Fprintf(w, "  %s %s: failed: %v\n", ui.ErrorStyle().Render(ui.IconCross), c.Name, c.Err)
		}
	}

	if freed := s.FreedBytes(); freed > 0 {
		fmt.Fprintf(w, "Recycle Bin released %s\n", ui.FormatSize(freed))
	}
	if reclaimed > 0 {
		fmt.Fprintf(w, "Free space grew by %s\n", ui.FormatSize(int64(reclaimed)))
	}
	if s.RunID != "" {
		fmt.Fprintf(w, "Run %s %s in %s\n", s.RunID, s.State, s.Duration.Round(time.Millisecond))
	}
}
