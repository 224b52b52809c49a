package vault

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
)

// maxConcurrentReads bounds the number of files read at once.
const maxConcurrentReads = 16

// Loader reads every markdown note under a root directory.
type Loader struct {
	root   string
	opts   Options
	logger *slog.Logger
}

// NewLoader creates a loader for the vault at root.
// If logger is nil, the default logger is used.
func NewLoader(root string, opts Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		root:   root,
		opts:   opts,
		logger: logger.With(slog.String("component", "vault_loader")),
	}
}

// Root returns the vault directory.
func (l *Loader) Root() string { return l.root }

// Load reads the vault. Files are read concurrently and parsed in path order,
// so the result does not depend on scheduling.
func (l *Loader) Load(ctx context.Context) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)

	paths, err := l.notePaths()
	if err != nil {
		return nil, err
	}

	contents := make([]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, rel := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(rel)))
			if err != nil {
				return fmt.Errorf("failed to read note %s: %w", rel, err)
			}
			contents[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	col := domain.NewCollection()
	resolver := newLinkResolver(paths)
	for i, rel := range paths {
		parsed := parseNote(rel, contents[i], l.opts, log)
		col.Notes = append(col.Notes, parsed.note)
		col.Questions = append(col.Questions, parsed.questions...)
		for target, count := range parsed.links {
			if dest, ok := resolver.resolve(target); ok && dest != rel {
				col.AddLink(rel, dest, count)
			}
		}
	}

	log.Info("vault loaded",
		slog.String("root", l.root),
		slog.Int("notes", len(col.Notes)),
		slog.Int("questions", len(col.Questions)))
	return col, nil
}

// notePaths lists the markdown files below the root as slash-separated
// relative paths, skipping hidden directories such as .obsidian and .trash.
func (l *Loader) notePaths() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isNoteFile(p) {
			return nil
		}
		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault %s: %w", l.root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func isNoteFile(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".md")
}

// linkResolver maps wikilink targets to note paths, by full path first and
// then by file name.
type linkResolver struct {
	byPath map[string]string
	byName map[string]string
}

func newLinkResolver(paths []string) *linkResolver {
	r := &linkResolver{
		byPath: make(map[string]string, len(paths)),
		byName: make(map[string]string, len(paths)),
	}
	for _, p := range paths {
		key := strings.TrimSuffix(p, path.Ext(p))
		r.byPath[key] = p
		name := path.Base(key)
		// Paths are sorted, so the lexically first match wins.
		if _, ok := r.byName[name]; !ok {
			r.byName[name] = p
		}
	}
	return r
}

func (r *linkResolver) resolve(target string) (string, bool) {
	key := strings.TrimSuffix(target, ".md")
	if p, ok := r.byPath[key]; ok {
		return p, true
	}
	p, ok := r.byName[path.Base(key)]
	return p, ok
}
