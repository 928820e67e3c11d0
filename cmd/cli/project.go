package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/progress"
	"transcompare/internal/core/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect saved comparison projects",
	Long:  `Inspect .project files written by the editor's Save Project action.`,
}

var projectShowCmd = &cobra.Command{
	Use:     "show FILE",
	Short:   "List the tabs stored in a project",
	Example: `  transcompare project show novel.project`,
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectShow,
}

var projectProgressCmd = &cobra.Command{
	Use:     "progress FILE",
	Short:   "Report translation progress for every tab in a project",
	Example: `  transcompare project progress novel.project`,
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectProgress,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectProgressCmd)
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	snaps, err := project.Load(charset.Local, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s: %d tabs\n", args[0], len(snaps))
	for i, s := range snaps {
		fmt.Fprintf(out, "%d. %s\n", i+1, snapshotTitle(s))
		fmt.Fprintf(out, "   encoding:  %s\n", s.Encoding)
		if s.FontSize > 0 {
			fmt.Fprintf(out, "   font size: %d\n", s.FontSize)
		} else {
			fmt.Fprintln(out, "   font size: default")
		}
		fmt.Fprintf(out, "   source:    %d lines\n", lineCount(s.SourceText))
		fmt.Fprintf(out, "   target:    %d lines\n", lineCount(s.TargetText))
	}
	return nil
}

func runProjectProgress(cmd *cobra.Command, args []string) error {
	snaps, err := project.Load(charset.Local, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	for i, s := range snaps {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s ==\n", snapshotTitle(s))
		fmt.Fprintln(out, progress.Analyze(s.TargetText).String())
	}
	return nil
}

func snapshotTitle(s project.Snapshot) string {
	if s.TargetPath == "" {
		return "(unsaved)"
	}
	return s.TargetPath
}

func lineCount(text string) int {
	return len(progress.SplitLines(text))
}
