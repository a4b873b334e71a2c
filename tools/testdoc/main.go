// Command testdoc generates a markdown overview of the test suite from test
// function names and their doc comments.
//
// Tests of the CLI package are grouped by the wt command they exercise;
// all other tests are grouped by package.
//
//	go run ./tools/testdoc --out docs/TESTS.md
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "testdoc: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		rootDir    string
		outputFile string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:           "testdoc",
		Short:         "Generate markdown documentation from Go tests",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			absRoot, err := filepath.Abs(rootDir)
			if err != nil {
				return fmt.Errorf("resolve root directory: %w", err)
			}

			packages, err := ParseTestFiles(absRoot, prefix)
			if err != nil {
				return fmt.Errorf("parse test files: %w", err)
			}

			if outputFile == "-" {
				return RenderMarkdown(cmd.OutOrStdout(), packages)
			}

			if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()

			if err := RenderMarkdown(f, packages); err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Generated %s with %d packages\n", outputFile, len(packages))
			return nil
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", ".", "Root directory to scan for test files")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "docs/TESTS.md", "Output markdown file, - for stdout")
	cmd.Flags().StringVar(&prefix, "pkg", "", "Only include packages whose path starts with this prefix")

	return cmd
}
