package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"mddocs/internal/adapter/fs"
	"mddocs/internal/domain"
	"mddocs/internal/logger"
	"mddocs/internal/port"
)

// GenerateUseCase resolves a module and writes its documentation pages.
type GenerateUseCase struct {
	resolver    *Resolver
	synthesizer *Synthesizer
	renderer    port.Renderer
	pages       port.PageStore // nil disables incremental generation
}

// NewGenerateUseCase creates a new generate use case. pages may be nil.
func NewGenerateUseCase(
	resolver *Resolver,
	synthesizer *Synthesizer,
	renderer port.Renderer,
	pages port.PageStore,
) *GenerateUseCase {
	return &GenerateUseCase{
		resolver:    resolver,
		synthesizer: synthesizer,
		renderer:    renderer,
		pages:       pages,
	}
}

// GenerateOptions controls one generation run.
type GenerateOptions struct {
	OutputDir string
	// SkipDecompilerErrors drops a member page whose declaration cannot be
	// produced instead of aborting the run.
	SkipDecompilerErrors bool
	// Clean removes pages of earlier runs that this run did not produce.
	Clean bool
	// Progress, when set, is called after each type is written.
	Progress func(done, total int, current string)
}

// GenerateResult contains the results of a generation run.
type GenerateResult struct {
	Types          int
	Members        int
	PagesWritten   int
	PagesUnchanged int
	PagesDeleted   int
	Warnings       []string
}

// Generate writes one page per resolved type and one per resolved member.
func (u *GenerateUseCase) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	types, err := u.resolver.ResolveModule()
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Types: len(types)}
	w := &pageWriter{root: opts.OutputDir, pages: u.pages, produced: make(map[string]bool)}

	for i, rt := range types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := u.generateType(ctx, w, rt, opts, result); err != nil {
			return nil, err
		}
		result.Members += rt.MemberCount()
		logger.Logger.Debugw("type generated", "type", rt.Def.FullName(), "members", rt.MemberCount())
		if opts.Progress != nil {
			opts.Progress(i+1, len(types), rt.Def.FullName())
		}
	}

	result.PagesWritten = w.written
	result.PagesUnchanged = w.unchanged

	if opts.Clean {
		deleted, err := u.removeStale(opts.OutputDir, w.produced)
		if err != nil {
			return nil, err
		}
		result.PagesDeleted = deleted
	}

	logger.Logger.Infow("generation finished",
		"types", result.Types,
		"members", result.Members,
		"written", result.PagesWritten,
		"unchanged", result.PagesUnchanged,
		"deleted", result.PagesDeleted,
		"warnings", len(result.Warnings))
	return result, nil
}

// generateType writes the type page, then the four member kinds concurrently.
func (u *GenerateUseCase) generateType(ctx context.Context, w *pageWriter, rt *domain.ResolvedType, opts GenerateOptions, result *GenerateResult) error {
	page, err := u.renderer.TypePage(rt)
	if err != nil {
		return err
	}
	if err := w.write(page); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, kind := range domain.MemberKinds {
		members := rt.Members(kind)
		if len(members) == 0 {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, m := range members {
				warning, err := u.generateMember(ctx, w, m, opts.SkipDecompilerErrors)
				mu.Lock()
				if warning != "" {
					result.Warnings = append(result.Warnings, warning)
				}
				if err != nil && firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				if err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}

// generateMember writes one member page. A skipped decompiler failure is
// reported as a warning instead of an error.
func (u *GenerateUseCase) generateMember(ctx context.Context, w *pageWriter, m *domain.ResolvedMember, skip bool) (string, error) {
	declaration, err := u.synthesizer.Declaration(ctx, m)
	if err != nil {
		if skip && errors.Is(err, domain.ErrDecompiler) {
			logger.Logger.Warnw("member page skipped", "type", m.Type.Def.FullName(), "member", m.Name(), "error", err)
			return err.Error(), nil
		}
		return "", err
	}

	page, err := u.renderer.MemberPage(m, declaration)
	if err != nil {
		return "", err
	}
	return "", w.write(page)
}

// removeStale deletes pages recorded by earlier runs, or without a manifest
// any Markdown file under root, that this run did not produce.
func (u *GenerateUseCase) removeStale(root string, produced map[string]bool) (int, error) {
	if u.pages == nil {
		removed, err := fs.Sweep(root, produced)
		if err != nil {
			return len(removed), errors.Wrap(err, "failed to sweep output directory")
		}
		return len(removed), nil
	}

	known, err := u.pages.ListPages()
	if err != nil {
		return 0, errors.Wrap(err, "failed to list manifest pages")
	}
	sort.Strings(known)

	deleted := 0
	for _, path := range known {
		if produced[path] {
			continue
		}
		full := filepath.Join(root, filepath.FromSlash(path))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return deleted, errors.Wrapf(err, "failed to delete %s", path)
		}
		if err := u.pages.DeletePage(path); err != nil {
			return deleted, errors.Wrapf(err, "failed to forget %s", path)
		}
		logger.Logger.Debugw("stale page deleted", "page", path)
		deleted++
	}
	return deleted, nil
}

// pageWriter serialises file writes and manifest updates.
type pageWriter struct {
	root  string
	pages port.PageStore

	mu        sync.Mutex
	produced  map[string]bool
	written   int
	unchanged int
}

func (w *pageWriter) write(p port.Page) error {
	sum := sha256.Sum256(p.Content)
	hash := hex.EncodeToString(sum[:])
	full := filepath.Join(w.root, filepath.FromSlash(p.Path))

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.produced[p.Path] {
		return errors.WithHint(
			errors.Newf("page %s produced twice", p.Path),
			"two members render to the same file name; they differ only in characters dropped from page names")
	}
	w.produced[p.Path] = true

	if w.pages != nil {
		old, ok, err := w.pages.PageHash(p.Path)
		if err != nil {
			return errors.Wrapf(err, "failed to read manifest entry for %s", p.Path)
		}
		if ok && old == hash {
			if _, err := os.Stat(full); err == nil {
				w.unchanged++
				return nil
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", p.Path)
	}
	if err := os.WriteFile(full, p.Content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", p.Path)
	}
	if w.pages != nil {
		if err := w.pages.PutPage(p.Path, hash); err != nil {
			return errors.Wrapf(err, "failed to record %s", p.Path)
		}
	}
	logger.Logger.Debugw("page written", "page", p.Path)
	w.written++
	return nil
}
