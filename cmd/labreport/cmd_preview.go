package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"labreport/internal/report"
)

var rawPreview bool

const previewWrap = 100

// previewCmd renders the report in the terminal
var previewCmd = &cobra.Command{
	Use:   "preview [files|dirs...]",
	Short: "Show the composed report in the terminal without writing a file",
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	c, err := collectEntries(args)
	if err != nil {
		return err
	}

	doc, err := report.NewComposer(cfg.ComposerOptions()).Compose(c.Entries())
	if err != nil {
		return err
	}

	md := report.RenderMarkdown(doc)
	if rawPreview {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
