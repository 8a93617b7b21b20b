package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"labreport/cmd/labreport/ui"
	"labreport/internal/config"
	"labreport/internal/logging"
	"labreport/internal/project"
	"labreport/internal/report"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Shared input flags
	languageFlag string
	manifestPath string
	outputFlag   string

	cfg    *config.Config
	styles ui.Styles

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "labreport",
	Short: "Compose a lab record document from program files",
	Long: heredoc.Doc(`
		labreport collects Python, R and HTML program files and composes a
		Word document with one experiment per file: Exp. No, title, Aim,
		Algorithm, Program Code and Result.

		Titles are guessed from the source (first Python function, HTML
		<title>, or a fixed title for R analyses). The language chosen with
		--language is the one stated in each Aim.
	`),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		cfg = loaded

		if err := logging.Initialize(cfg.Logging.Options()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logging.Boot("config loaded from %s", configPath)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		styles = ui.DefaultStyles()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file (YAML)")

	for _, c := range []*cobra.Command{generateCmd, previewCmd, inspectCmd} {
		c.Flags().StringVarP(&languageFlag, "language", "l", "", "Language stated in the Aim: Python, R or HTML (default from config)")
		c.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML manifest listing files and their languages")
	}
	watchCmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Language stated in the Aim: Python, R or HTML (default from config)")

	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output document (default from config)")
	watchCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output document (default from config)")
	previewCmd.Flags().BoolVar(&rawPreview, "raw", false, "Print the Markdown without terminal rendering")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	err := rootCmd.Execute()
	// Cobra skips post-run hooks when a command fails, so flush here.
	shutdown()
	if err != nil {
		reportError(os.Stderr, ui.DefaultStyles(), err)
		os.Exit(1)
	}
}

// shutdown flushes the command logger and closes the category log files.
func shutdown() {
	if logger != nil {
		_ = logger.Sync()
	}
	logging.CloseAll()
}

// reportError prints err as a titled notice. An empty report is a warning,
// everything else a failure.
func reportError(w io.Writer, s ui.Styles, err error) {
	switch {
	case errors.Is(err, report.ErrNoEntries):
		fmt.Fprintln(w, s.WarningMsg("No Projects", "Please upload at least one project file."))
	case errors.Is(err, project.ErrRead):
		fmt.Fprintln(w, s.ErrorMsg("Read Failed", err.Error()))
	case errors.Is(err, report.ErrSave):
		fmt.Fprintln(w, s.ErrorMsg("Save Failed", err.Error()))
	default:
		fmt.Fprintln(w, s.ErrorMsg("Error", err.Error()))
	}
}
