package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"mddocs/internal/domain"
)

type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// FileInfo describes a matched file; Path is slash-separated and relative to
// the walked root.
type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

func (w *Walker) Walk(root string) ([]FileInfo, error) {
	var files []FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, FileInfo{
				Path:    relPath,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}

		return nil
	})

	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	return matchAny(w.includes, path)
}

func (w *Walker) shouldExclude(path string) bool {
	return matchAny(w.excludes, path)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// TypeFilter selects types by glob over their namespace path: type
// "Acme.Widgets.Gauge" is matched as "Acme/Widgets/Gauge".
type TypeFilter struct {
	includes []string
	excludes []string
}

func NewTypeFilter(includes, excludes []string) *TypeFilter {
	if len(includes) == 0 {
		includes = []string{"**"}
	}
	return &TypeFilter{includes: includes, excludes: excludes}
}

// TypePath is the slash-separated path a TypeFilter matches t against.
func TypePath(t *domain.TypeDef) string {
	if t.Namespace == "" {
		return t.Name
	}
	return strings.ReplaceAll(t.Namespace, ".", "/") + "/" + t.Name
}

func (f *TypeFilter) Match(t *domain.TypeDef) bool {
	path := TypePath(t)
	return matchAny(f.includes, path) && !matchAny(f.excludes, path)
}

// Sweep removes every Markdown file under root that is not in keep and
// returns the removed paths. Paths in keep are slash-separated and relative
// to root. The manifest directory is never touched.
func Sweep(root string, keep map[string]bool) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := NewWalker([]string{"**/*.md"}, []string{".mddocs/**"}).Walk(root)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, f := range files {
		if keep[f.Path] {
			continue
		}
		if err := os.Remove(filepath.Join(root, filepath.FromSlash(f.Path))); err != nil {
			return removed, err
		}
		removed = append(removed, f.Path)
	}
	return removed, nil
}
