package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"labreport/internal/docx"
	"labreport/internal/logging"
	"labreport/internal/project"
	"labreport/internal/report"
)

// generateCmd composes the report document
var generateCmd = &cobra.Command{
	Use:   "generate [files|dirs...]",
	Short: "Compose the report document from program files",
	Long: heredoc.Doc(`
		Reads each program file in order (directories are scanned for
		.py, .r and .html files), derives its title and algorithm, and
		writes one experiment per file to the output document.

		Example:
		  labreport generate --language Python sort.py search.py
		  labreport generate -m report.yaml -o Lab_Record.docx
	`),
	RunE: runGenerate,
}

// resolveLanguage returns the --language flag or the configured default.
func resolveLanguage() (project.Language, error) {
	if languageFlag != "" {
		return project.ParseLanguage(languageFlag)
	}
	return cfg.SelectedLanguage()
}

// resolveOutput returns the --output flag or the configured output path.
func resolveOutput() string {
	if outputFlag != "" {
		return outputFlag
	}
	return cfg.Report.Output
}

// collectEntries adds the manifest entries, then every file argument, in order.
func collectEntries(args []string) (*project.Collector, error) {
	lang, err := resolveLanguage()
	if err != nil {
		return nil, err
	}

	c := project.NewCollector()
	if manifestPath != "" {
		m, err := project.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		if _, err := c.AddManifest(m, lang); err != nil {
			return nil, err
		}
	}

	paths, err := project.ExpandPaths(args, cfg.Report.Extensions)
	if err != nil {
		return nil, err
	}
	if _, err := c.AddFiles(paths, lang); err != nil {
		return nil, err
	}
	return c, nil
}

func newGenerator() *report.Generator {
	return report.NewGenerator(report.NewComposer(cfg.ComposerOptions()), docx.NewFileWriter())
}

func runGenerate(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	runLog := logging.WithRequestID(logging.CategoryComposer, runID)

	c, err := collectEntries(args)
	if err != nil {
		return err
	}
	logger.Debug("Collected entries", zap.String("run", runID), zap.Int("count", c.Len()))
	if c.Len() > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), styles.InfoMsg("Files Uploaded", fmt.Sprintf("%d program(s) added successfully!", c.Len())))
	}

	out := resolveOutput()
	doc, err := newGenerator().Generate(c.Entries(), out)
	if err != nil {
		runLog.Warn("generate failed: %v", err)
		return err
	}

	runLog.Info("saved %d sections to %s", len(doc.Sections), doc.SavedTo)
	logger.Info("Report generated", zap.String("run", runID), zap.String("output", doc.SavedTo))
	fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessMsg("Report Generated", fmt.Sprintf("Report saved as '%s'", doc.SavedTo)))
	return nil
}
