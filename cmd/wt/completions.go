package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/worktree"
)

// completeWorktreeNames completes worktree names followed by the "^" and
// "-" symbols.
func completeWorktreeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := openRepo(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	wts, err := env.reg.List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	candidates := append(worktree.Names(wts), "^", "-")
	var matches []string
	for _, name := range candidates {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// registerFormatCompletion completes the values of a --format flag.
func registerFormatCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return output.Formats, cobra.ShellCompDirectiveNoFileComp
	})
}
