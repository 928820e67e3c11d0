package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcompare/internal/core/charset"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Re-encode a text file",
	Long: `Read a file in its detected (or given) encoding and write it back in another.

Without --output the file is rewritten in place. The conversion fails without
writing anything when a character cannot be represented in the target encoding.`,
	Example: `  transcompare convert legacy.txt --to UTF-8
  transcompare convert chapter1.txt --from TIS-620 --to UTF-8-SIG -o chapter1.utf8.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var (
	convertFrom   string
	convertTo     string
	convertOutput string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Source encoding (detected when omitted)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Target encoding (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write to this file instead of replacing the input")
	convertCmd.MarkFlagRequired("to")
}

func runConvert(cmd *cobra.Command, args []string) error {
	in := args[0]
	out := convertOutput
	if out == "" {
		out = in
	}

	to, err := charset.Normalize(convertTo)
	if err != nil {
		return err
	}

	f, err := readInput(in, convertFrom)
	if err != nil {
		return err
	}
	if err := charset.WriteFile(charset.Local, out, f.Text, to); err != nil {
		return err
	}

	GetLogger().WithFile(out).Info("Converted file", "from", f.Encoding, "to", to)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s (%s)\n", in, f.Encoding, to, out)
	return nil
}
