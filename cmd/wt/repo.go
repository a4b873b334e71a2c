package main

import (
	"context"
	"path/filepath"

	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/history"
	"github.com/wtkit/wt/internal/registry"
	"github.com/wtkit/wt/internal/ui/prompt"
)

// repoEnv bundles the repository state a command works against.
type repoEnv struct {
	workDir   string
	commonDir string
	mainRoot  string
	resolver  *config.Resolver
	cfg       config.Config
	client    *git.Client
	history   *history.Tracker
	reg       *registry.Registry
}

// openRepo locates the repository containing the working directory and
// resolves its configuration.
func openRepo(ctx context.Context) (*repoEnv, error) {
	workDir := config.WorkDirFromContext(ctx)
	top, err := git.TopLevel(ctx, workDir)
	if err != nil {
		return nil, err
	}
	commonDir, err := git.CommonDir(ctx, workDir)
	if err != nil {
		return nil, err
	}
	mainRoot := mainRootOf(commonDir)

	global, err := config.GlobalStoreFromContext(ctx)
	if err != nil {
		return nil, err
	}
	resolver := config.NewResolver(global, config.LocalStore(mainRoot))
	cfg := resolver.Config(ctx)

	client := git.NewClient(top)
	tracker := history.New(history.NewFileStore(commonDir))
	reg := registry.New(client, cfg,
		registry.WithHistory(tracker),
		registry.WithConfirmer(confirmerFromContext(ctx)),
	)

	return &repoEnv{
		workDir:   workDir,
		commonDir: commonDir,
		mainRoot:  mainRoot,
		resolver:  resolver,
		cfg:       cfg,
		client:    client,
		history:   tracker,
		reg:       reg,
	}, nil
}

// mainRootOf returns the main worktree root for a common git directory.
// Bare repositories have no main checkout, their git directory stands in.
func mainRootOf(commonDir string) string {
	if filepath.Base(commonDir) == ".git" {
		return filepath.Dir(commonDir)
	}
	return commonDir
}

type confirmerKey struct{}

// withConfirmer overrides how commands ask for confirmation.
func withConfirmer(ctx context.Context, c registry.Confirmer) context.Context {
	return context.WithValue(ctx, confirmerKey{}, c)
}

func confirmerFromContext(ctx context.Context) registry.Confirmer {
	if c, ok := ctx.Value(confirmerKey{}).(registry.Confirmer); ok && c != nil {
		return c
	}
	return prompt.Confirmer
}
