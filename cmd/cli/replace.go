package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcompare/internal/core/backup"
	"transcompare/internal/core/charset"
	"transcompare/internal/core/search"
	"transcompare/internal/core/textdoc"
	"transcompare/internal/core/utils"
)

var replaceCmd = &cobra.Command{
	Use:   "replace FILE...",
	Short: "Replace every match in text files",
	Long: `Replace all matches in each file, as Replace All does in the editor.

For every file this command will:
1. Detect the encoding (or use --encoding)
2. Write the current contents to the backup directory
3. Replace every non-overlapping match
4. Write the file back in the encoding it was read with

Use --dry-run to print the changes without touching any file.`,
	Example: `  transcompare replace chapter1.txt --find "colour" --replace "color"
  transcompare replace *.txt --find "(\w+), (\w+)" --replace "$2 $1" --mode regex --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplace,
}

var (
	replaceFlags    searchFlags
	replaceEncoding string
	dryRun          bool
	noBackup        bool
)

func init() {
	rootCmd.AddCommand(replaceCmd)

	replaceFlags.register(replaceCmd, true)
	replaceCmd.Flags().StringVarP(&replaceEncoding, "encoding", "e", "", "Read files with this encoding instead of detecting it")
	replaceCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing files")
	replaceCmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not write a backup before changing a file")
}

type replaceResult struct {
	path  string
	count int
	err   error
}

func runReplace(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	cfg := GetConfig()
	out := cmd.OutOrStdout()

	opts, err := replaceFlags.options()
	if err != nil {
		return err
	}

	if dryRun {
		return previewReplace(cmd, args, opts)
	}

	backups := backup.NewWriter(charset.Local, cfg.Backup.Dir)
	backups.Enabled = cfg.Backup.Enabled && !noBackup

	spinner, err := newSpinner(cmd, fmt.Sprintf("Replacing in %d files", len(args)))
	if err != nil {
		return err
	}
	if err := spinner.Start(); err != nil {
		return err
	}

	var results []replaceResult
	for i, path := range args {
		spinner.UpdateMessage(fmt.Sprintf("Processing file %d/%d: %s", i+1, len(args), path))

		count, err := replaceInFile(path, opts, backups, logger.WithFile(path))
		results = append(results, replaceResult{path: path, count: count, err: err})
	}

	replaced, failed := 0, 0
	for _, r := range results {
		if r.err != nil {
			failed++
			continue
		}
		replaced += r.count
	}

	summary := fmt.Sprintf("Replaced %d matches in %d files (%d failed)", replaced, len(args)-failed, failed)
	if failed > 0 {
		spinner.StopWithFailure(summary)
	} else {
		spinner.StopWithSuccess(summary)
	}

	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(out, "  %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", r.path, search.ReplaceAllMessage(opts, r.count))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func replaceInFile(path string, opts search.Options, backups *backup.Writer, logger *utils.Logger) (int, error) {
	f, err := readInput(path, replaceEncoding)
	if err != nil {
		return 0, err
	}

	doc := textdoc.New(f.Text)
	count, err := search.ReplaceAll(doc, opts)
	if err != nil || count == 0 {
		return 0, err
	}

	if err := backups.Write(path, f.Text, f.Encoding); err != nil {
		return 0, err
	}
	if err := charset.WriteFile(charset.Local, path, doc.Text(), f.Encoding); err != nil {
		return 0, err
	}

	logger.Info("Replaced matches", "count", count, "encoding", f.Encoding, "backup", backups.Path(path))
	return count, nil
}

func previewReplace(cmd *cobra.Command, args []string, opts search.Options) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Dry run: no files will be changed")

	total := 0
	for _, path := range args {
		f, err := readInput(path, replaceEncoding)
		if err != nil {
			return err
		}
		changes, err := search.FindAll(f.Text, opts)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			continue
		}

		fmt.Fprintf(out, "\n%s (%d changes):\n", path, len(changes))
		for _, c := range changes {
			fmt.Fprintf(out, "  %d:%d: %s\n", c.LineNumber, c.Column, c.Context)
		}
		total += len(changes)
	}

	if total == 0 {
		fmt.Fprintln(out, search.ReplaceAllMessage(opts, 0))
		return nil
	}
	fmt.Fprintf(out, "\n%d changes in %d files\n", total, len(args))
	return nil
}
