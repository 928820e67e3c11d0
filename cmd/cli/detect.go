package cli

import (
	"fmt"

	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/utils"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE...",
	Short: "Detect the encoding of text files",
	Long: `Detect the character encoding of each file the way the editor does when
opening it: byte-order marks first, then UTF-8, then a statistical guess.

Files that cannot be decoded with the detected encoding are flagged; open
them with an explicit --encoding in the other commands.`,
	Example: `  transcompare detect chapter1.txt chapter2.txt`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		raw, err := util.ReadFile(charset.Local, path)
		if err != nil {
			fmt.Fprintf(out, "%s: error: %v\n", path, err)
			failed++
			continue
		}

		det := charset.Detect(raw)
		line := fmt.Sprintf("%s: %s (confidence %d%%)", path, det.Name, det.Confidence)
		if det.BOM {
			line += ", byte-order mark"
		}
		if _, err := charset.Decode(raw, det.Name); err != nil {
			line += ", cannot be decoded"
			logger.WithFile(path).WithError(err).Debug("Detected encoding does not decode")
		}
		fmt.Fprintln(out, line)
	}

	if failed > 0 {
		return utils.NewFileSystemError(fmt.Sprintf("%d of %d files could not be read", failed, len(args)), nil)
	}
	return nil
}
