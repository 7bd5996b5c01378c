package cli

import (
	"github.com/cockroachdb/errors"

	"mddocs/config"
	"mddocs/internal/adapter/cache"
	"mddocs/internal/adapter/decompiler"
	"mddocs/internal/adapter/fs"
	"mddocs/internal/adapter/metadata"
	"mddocs/internal/adapter/xmldoc"
	"mddocs/internal/docindex"
	"mddocs/internal/logger"
	"mddocs/internal/port"
	"mddocs/internal/usecase"
)

// newResolver loads the configured module, its references and the
// documentation export.
func newResolver(cfg *config.Config) (*usecase.Resolver, *metadata.Module, error) {
	gen := cfg.Generate
	if gen.Module == "" {
		return nil, nil, errors.WithHint(errors.New("no module configured"), "set generate.module in mddocs.yaml")
	}

	refs := make([]string, len(gen.References))
	for i, r := range gen.References {
		refs[i] = resolvePath(r)
	}
	module, err := metadata.Load(resolvePath(gen.Module), refs...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load module metadata")
	}

	xmlPath := resolvePath(gen.XMLPath())
	doc, err := xmldoc.ParseFile(xmlPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load documentation export")
	}
	if doc.Assembly != "" && doc.Assembly != module.Name() {
		logger.Logger.Warnw("documentation export names a different assembly",
			"export", doc.Assembly, "module", module.Name())
	}
	logger.Logger.Debugw("inputs loaded",
		"module", module.Name(), "types", len(module.Types()), "entries", len(doc.Entries), "xml", xmlPath)

	filter := fs.NewTypeFilter(gen.Includes, gen.Excludes)
	resolver := usecase.NewResolver(module, docindex.New(doc.Entries), usecase.ResolveOptions{
		ExactIdentifiers: cfg.Matching.ExactIdentifiers,
		LegacyParamSplit: cfg.Matching.LegacyParamSplit,
		Workers:          gen.Workers,
		Filter:           filter.Match,
	})
	return resolver, module, nil
}

// newDecompiler builds the configured decompiler. External command output is
// cached in decls when caching is enabled and decls is not nil.
func newDecompiler(cfg *config.Config, decls port.DeclarationStore) (port.Decompiler, error) {
	switch cfg.Decompiler.Mode {
	case "", config.DecompilerStatic:
		return decompiler.NewStatic(), nil
	case config.DecompilerExec:
		assembly := resolvePath(cfg.Generate.Assembly)
		d, err := decompiler.NewExec(cfg.Decompiler.Command, assembly, cfg.Decompiler.Timeout)
		if err != nil {
			return nil, err
		}
		if !cfg.Decompiler.Cache || decls == nil {
			return d, nil
		}
		scope, err := cache.Scope(assembly, cfg.Decompiler.Command)
		if err != nil {
			return nil, errors.Wrap(err, "failed to identify assembly for the declaration cache")
		}
		if n, err := decls.PruneDeclarations(scope + "\x00"); err != nil {
			logger.Logger.Warnw("declaration cache prune failed", "error", err)
		} else if n > 0 {
			logger.Logger.Debugw("declarations of earlier builds dropped", "count", n)
		}
		return cache.NewCachedDecompiler(d, decls, scope), nil
	}
	return nil, errors.WithHint(
		errors.Newf("unknown decompiler mode %q", cfg.Decompiler.Mode),
		"use \"static\" or \"exec\"")
}
