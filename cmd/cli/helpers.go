package cli

import (
	"os"

	"github.com/spf13/cobra"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/search"
	"transcompare/internal/core/utils"
)

// searchFlags are shared by find and replace.
type searchFlags struct {
	query     string
	replace   string
	mode      string
	matchCase bool
	wholeWord bool
}

func (f *searchFlags) register(cmd *cobra.Command, withReplacement bool) {
	cmd.Flags().StringVarP(&f.query, "find", "f", "", "Text or pattern to search for (required)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "normal", "Search mode (normal, extended, regex)")
	cmd.Flags().BoolVar(&f.matchCase, "match-case", false, "Match upper and lower case exactly")
	cmd.Flags().BoolVarP(&f.wholeWord, "whole-word", "w", false, "Only match whole words")
	if withReplacement {
		cmd.Flags().StringVarP(&f.replace, "replace", "r", "", "Replacement text ($1 references groups in regex mode)")
	}
	cmd.MarkFlagRequired("find")
}

func (f *searchFlags) options() (search.Options, error) {
	mode, err := search.ParseMode(f.mode)
	if err != nil {
		return search.Options{}, err
	}
	opts := search.Options{
		Query:       f.query,
		Replacement: f.replace,
		Mode:        mode,
		MatchCase:   f.matchCase,
		WholeWord:   f.wholeWord,
		WrapAround:  GetConfig().Editor.WrapAround,
	}
	// Surface pattern errors before any file is touched.
	if _, err := search.Compile(opts); err != nil {
		return search.Options{}, err
	}
	return opts, nil
}

// readInput loads path, detecting its encoding unless one is given.
func readInput(path, encoding string) (*charset.File, error) {
	if encoding != "" {
		return charset.ReadFileAs(charset.Local, path, encoding)
	}
	return charset.ReadFile(charset.Local, path, nil)
}

// newSpinner animates on a terminal and falls back to plain status lines
// when output is redirected by the caller.
func newSpinner(cmd *cobra.Command, message string) (*utils.Spinner, error) {
	if out := cmd.OutOrStdout(); out != os.Stdout {
		return utils.NewQuietSpinner(out), nil
	}
	return utils.NewSpinner(message)
}
