package config

import (
	"context"
	"os"
	"sync"
)

// resolverKey is the context key for Resolver
type resolverKey struct{}

// Resolver resolves the effective config once per invocation: the global
// record, overlaid by the repo-local record when a repository is known.
type Resolver struct {
	global Store
	local  Store

	once sync.Once
	cfg  Config
}

// NewResolver creates a Resolver. local may be nil outside a repository.
func NewResolver(global, local Store) *Resolver {
	return &Resolver{global: global, local: local}
}

// Config returns the effective config, reading the stores on first use.
func (r *Resolver) Config(ctx context.Context) Config {
	r.once.Do(func() {
		r.cfg = Resolve(ctx, r.global, r.local)
	})
	return r.cfg
}

// Global returns the global store.
func (r *Resolver) Global() Store {
	return r.global
}

// Local returns the repo-local store, or nil outside a repository.
func (r *Resolver) Local() Store {
	return r.local
}

// WithResolver returns a new context with the Resolver stored in it.
func WithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFromContext returns the Resolver from context.
// Returns nil if no resolver is stored.
func ResolverFromContext(ctx context.Context) *Resolver {
	if r, ok := ctx.Value(resolverKey{}).(*Resolver); ok {
		return r
	}
	return nil
}

type workDirKey struct{}

// WithWorkDir returns a new context carrying dir as the invocation's working
// directory.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory stored in ctx, falling
// back to os.Getwd when none (or an empty one) is set.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}

type globalStoreKey struct{}

// WithGlobalStore returns a new context whose global config store is s.
func WithGlobalStore(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, globalStoreKey{}, s)
}

// GlobalStoreFromContext returns the global store stored in ctx, or the
// file store at GlobalPath.
func GlobalStoreFromContext(ctx context.Context) (Store, error) {
	if s, ok := ctx.Value(globalStoreKey{}).(Store); ok && s != nil {
		return s, nil
	}
	return GlobalStore()
}
