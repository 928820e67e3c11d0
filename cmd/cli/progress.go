package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"transcompare/internal/core/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress FILE...",
	Short: "Report Thai translation progress",
	Long: `Count the lines of each file that contain Thai text.

A non-blank line counts as translated when any of its words contains a Thai
character. Blank lines count toward the total only.`,
	Example: `  transcompare progress chapter1.txt
  transcompare progress --encoding TIS-620 --show-untranslated legacy.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProgress,
}

var (
	progressEncoding         string
	progressShowUntranslated bool
)

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.Flags().StringVarP(&progressEncoding, "encoding", "e", "", "Read files with this encoding instead of detecting it")
	progressCmd.Flags().BoolVar(&progressShowUntranslated, "show-untranslated", false, "List the numbers of untranslated lines")
}

func runProgress(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for i, path := range args {
		f, err := readInput(path, progressEncoding)
		if err != nil {
			return err
		}
		report := progress.Analyze(f.Text)

		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", path)
		}
		fmt.Fprintln(out, report.String())

		if progressShowUntranslated && len(report.UntranslatedLines) > 0 {
			fmt.Fprintf(out, "Untranslated lines: %s\n", joinInts(report.UntranslatedLines))
		}
		GetLogger().WithFile(path).Debug("Progress computed", "percent", report.Percent)
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
