package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"labreport/internal/project"
)

// inspectCmd shows how each file would be classified
var inspectCmd = &cobra.Command{
	Use:   "inspect [files|dirs...]",
	Short: "List each file with its detected language, Aim language and title",
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	c, err := collectEntries(args)
	if err != nil {
		return err
	}
	if c.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), styles.Muted.Render("no program files"))
		return nil
	}

	rows := make([][]string, 0, c.Len())
	for i, e := range c.Entries() {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Source,
			project.DetectLanguage(e.Source).String(),
			e.Language.String(),
			e.Heading,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.Table([]string{"#", "FILE", "DETECTED", "AIM", "TITLE"}, rows))
	return nil
}
