package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate markdown documentation",
	Long: `Generate markdown documentation for all commands.

One page is written per command plus a README.md index.`,
	Example: `  # Generate docs to default directory (./docs)
  transcompare docs

  # Generate docs to custom directory
  transcompare docs --output ./documentation

  # Generate docs with custom file prefix
  transcompare docs --output ./docs --filename-prefix manual`,
	RunE: generateDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringP("output", "o", "./docs", "Output directory for documentation")
	docsCmd.Flags().String("filename-prefix", "", "Prefix for generated filenames (default: command name)")
	docsCmd.Flags().Bool("include-date", false, "Include generation date in documentation")
}

func generateDocs(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	filenamePrefix, _ := cmd.Flags().GetString("filename-prefix")
	includeDate, _ := cmd.Flags().GetBool("include-date")
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	fmt.Fprintf(out, "Generating markdown documentation in %s...\n", outputDir)

	root := cmd.Root()
	root.DisableAutoGenTag = !includeDate

	if filenamePrefix != "" {
		err := doc.GenMarkdownTreeCustom(root, outputDir, func(filename string) string {
			return ""
		}, func(name string) string {
			return filenamePrefix + "_" + name
		})
		if err != nil {
			return fmt.Errorf("failed to generate documentation: %w", err)
		}
		if err := prefixFiles(outputDir, filenamePrefix); err != nil {
			return err
		}
	} else {
		if err := doc.GenMarkdownTree(root, outputDir); err != nil {
			return fmt.Errorf("failed to generate documentation: %w", err)
		}
	}

	if err := generateIndexFile(root, outputDir, filenamePrefix, includeDate); err != nil {
		return fmt.Errorf("failed to generate index file: %w", err)
	}

	fmt.Fprintf(out, "Documentation successfully generated in %s\n", outputDir)
	fmt.Fprintln(out, "\nGenerated files:")

	files, err := filepath.Glob(filepath.Join(outputDir, "*.md"))
	if err != nil {
		return fmt.Errorf("failed to list generated files: %w", err)
	}
	for _, file := range files {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(file))
	}
	return nil
}

// prefixFiles renames the pages cobra wrote so they match the prefixed links.
func prefixFiles(dir, prefix string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return err
	}
	for _, file := range files {
		base := filepath.Base(file)
		if base == "README.md" || strings.HasPrefix(base, prefix+"_") {
			continue
		}
		if err := os.Rename(file, filepath.Join(dir, prefix+"_"+base)); err != nil {
			return fmt.Errorf("failed to rename %s: %w", base, err)
		}
	}
	return nil
}

func generateIndexFile(root *cobra.Command, outputDir, prefix string, includeDate bool) error {
	indexPath := filepath.Join(outputDir, "README.md")

	page := func(c *cobra.Command) string {
		name := c.CommandPath()
		file := strings.ReplaceAll(name, " ", "_") + ".md"
		if prefix != "" {
			file = prefix + "_" + file
		}
		return fmt.Sprintf("- **[%s](%s)** - %s\n", name, file, c.Short)
	}

	content := `# transcompare - CLI Documentation

transcompare is a side-by-side editor for comparing a source text with its
translation. The desktop editor opens with ` + "`transcompare --gui`" + `; the commands
below run the same encoding, search and progress engine from the shell.

## Quick Start

` + "```bash" + `
# Which encoding is this file in?
transcompare detect chapter1.txt

# How much of the translation is done?
transcompare progress chapter1.th.txt

# Preview, then apply, a replacement (the original is backed up first)
transcompare replace chapter1.th.txt --find "colour" --replace "color" --dry-run
transcompare replace chapter1.th.txt --find "colour" --replace "color"

# Launch the editor
transcompare --gui
` + "```" + `

## Available Commands

`
	content += page(root)
	for _, c := range root.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		content += page(c)
		for _, sub := range c.Commands() {
			if sub.IsAvailableCommand() {
				content += page(sub)
			}
		}
	}

	content += `
## Configuration

1. **Configuration file**: ` + "`~/.transcompare/config.yaml`" + `
2. **Environment variables**: ` + "`TRANSCOMPARE_*`" + ` prefix (for example ` + "`TRANSCOMPARE_BACKUP_DIR`" + `)
3. **Command-line flags**: See individual command documentation
`

	if includeDate {
		content += fmt.Sprintf("\n---\n*Documentation generated on %s*\n",
			time.Now().Format("January 2, 2006"))
	}

	return os.WriteFile(indexPath, []byte(content), 0644)
}
