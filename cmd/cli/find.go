package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcompare/internal/core/search"
)

var findCmd = &cobra.Command{
	Use:   "find FILE...",
	Short: "List matches with their line and column",
	Long: `Search files the way the find dialog does and print every match with its
position and surrounding line.

Modes:
  normal    literal text
  extended  literal text with \n, \r, \t, \0, \\, \xHH and \uHHHH escapes
  regex     RE2 regular expression`,
	Example: `  transcompare find chapter1.txt --find "colour"
  transcompare find *.txt --find "\bTODO\b" --mode regex`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

var (
	findFlags    searchFlags
	findEncoding string
)

func init() {
	rootCmd.AddCommand(findCmd)

	findFlags.register(findCmd, false)
	findCmd.Flags().StringVarP(&findEncoding, "encoding", "e", "", "Read files with this encoding instead of detecting it")
}

func runFind(cmd *cobra.Command, args []string) error {
	opts, err := findFlags.options()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	total := 0
	for _, path := range args {
		f, err := readInput(path, findEncoding)
		if err != nil {
			return err
		}
		changes, err := search.FindAll(f.Text, opts)
		if err != nil {
			return err
		}
		for _, c := range changes {
			fmt.Fprintf(out, "%s:%d:%d: %s\n", path, c.LineNumber, c.Column, c.Line)
		}
		total += len(changes)
	}

	if total == 0 {
		fmt.Fprintln(out, search.NotFoundMessage(opts))
		return nil
	}
	fmt.Fprintf(out, "%d matches\n", total)
	return nil
}
