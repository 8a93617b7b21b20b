package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"labreport/internal/report"
	"labreport/internal/watch"
)

// watchCmd regenerates the report on change
var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Regenerate the report whenever a program file in DIR changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

// rebuildFunc regenerates the report from every program file in dir.
// An empty directory is reported but is not an error.
func rebuildFunc(cmd *cobra.Command, dir string) watch.RebuildFunc {
	return func(ctx context.Context) error {
		c, err := collectEntries([]string{dir})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), styles.ErrorMsg("Read Failed", err.Error()))
			return err
		}
		doc, err := newGenerator().Generate(c.Entries(), resolveOutput())
		if errors.Is(err, report.ErrNoEntries) {
			fmt.Fprintln(cmd.OutOrStdout(), styles.WarningMsg("No Projects", "waiting for program files in "+dir))
			return nil
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), styles.ErrorMsg("Save Failed", err.Error()))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessMsg("Report Generated",
			fmt.Sprintf("%d experiment(s) saved as '%s'", len(doc.Sections), doc.SavedTo)))
		return nil
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rebuild := rebuildFunc(cmd, dir)
	// Initial build; a failure here is reported and watching continues.
	_ = rebuild(ctx)

	w, err := watch.New(dir, cfg.Report.Extensions, cfg.GetWatchDebounce(), rebuild)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("Watching", zap.String("dir", dir))
	fmt.Fprintln(cmd.OutOrStdout(), styles.InfoMsg("Watching", dir+" (Ctrl+C to stop)"))

	<-ctx.Done()
	w.Stop()

	stats := w.GetStats()
	logger.Info("Watch stopped", zap.Int("rebuilds", stats.Rebuilds), zap.Int("errors", stats.Errors))
	return nil
}
