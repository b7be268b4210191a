// Package engine drives whole-file import rewrites: it parses Python
// sources, feeds removal, rename, and addition requests through an edit
// tracker, and applies the resulting edits back to the text.
package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tern-works/refit/internal/config"
	"github.com/tern-works/refit/internal/logging"
	"github.com/tern-works/refit/internal/pysyntax"
	"github.com/tern-works/refit/internal/textedit"
	"github.com/tern-works/refit/internal/tracker"
)

// Name is one imported symbol, optionally aliased.
type Name struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// RemoveName requests removal of one imported name. An empty Name addresses
// the module entry of a plain import statement.
type RemoveName struct {
	Module string `json:"module"`
	Name   string `json:"name,omitempty"`
}

// AddImport requests that the file import the given names from Module, or
// the module itself when Names is empty.
type AddImport struct {
	Module string `json:"module"`
	Names  []Name `json:"names,omitempty"`
}

// RenameModule requests an in-place rewrite of the statement importing From
// so that it imports To instead.
type RenameModule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FileRequest bundles every import operation targeting one file. Removals
// run first, then renames, then additions, so a rename can clean up
// deletions queued against the statement it rewrites.
type FileRequest struct {
	Path     string         `json:"path"`
	Removals []RemoveName   `json:"removals,omitempty"`
	Renames  []RenameModule `json:"renames,omitempty"`
	Add      []AddImport    `json:"add,omitempty"`
}

// FileResult is the outcome of rewriting one file.
type FileResult struct {
	Path      string          `json:"path"`
	Original  string          `json:"-"`
	Rewritten string          `json:"rewritten"`
	Edits     []textedit.Edit `json:"edits"`
}

// Changed reports whether the rewrite altered the file.
func (r *FileResult) Changed() bool {
	return r != nil && r.Rewritten != r.Original
}

// ImportRecord describes one import found in a file.
type ImportRecord struct {
	Module     string `json:"module"`
	Names      []Name `json:"names,omitempty"`
	IsFrom     bool   `json:"isFrom,omitempty"`
	IsWildcard bool   `json:"isWildcard,omitempty"`
	Line       int    `json:"line"`
}

// Engine rewrites Python import statements per project configuration. It is
// safe for concurrent use; each file gets its own parse and tracker session.
type Engine struct {
	cfg      *config.ProjectConfig
	log      *log.Logger
	classify pysyntax.GroupClassifier
}

// New returns an Engine using cfg for parallelism, merge policy, and local
// import-group prefixes. A nil logger falls back to the package default.
func New(cfg *config.ProjectConfig, logger *log.Logger) *Engine {
	if cfg == nil {
		cfg = &config.ProjectConfig{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		cfg:      cfg,
		log:      logger,
		classify: pysyntax.StdClassifier(cfg.LocalPrefixes),
	}
}

// RewriteFile reads req.Path from disk and computes its rewrite.
func (e *Engine) RewriteFile(ctx context.Context, req FileRequest) (*FileResult, error) {
	source, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return e.RewriteSource(ctx, req, source)
}

// RewriteSource computes the rewrite of source per req without touching disk.
func (e *Engine) RewriteSource(ctx context.Context, req FileRequest, source []byte) (*FileResult, error) {
	f, err := pysyntax.Parse(req.Path, source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fc := f.Context(e.classify)
	tr := tracker.New(e.trackerOptions()...)

	for _, rm := range req.Removals {
		n, ok := f.FindImportedName(rm.Module, rm.Name)
		if !ok {
			e.log.Warn("imported name not found, skipping removal",
				logging.FieldPath, req.Path,
				logging.FieldModule, rm.Module,
				logging.FieldName, rm.Name)
			continue
		}
		tr.DeleteImportName(fc, n)
	}
	for _, rn := range req.Renames {
		e.renameModule(f, fc, tr, rn)
	}
	for _, add := range req.Add {
		names := make([]tracker.ImportName, len(add.Names))
		for i, n := range add.Names {
			names[i] = tracker.ImportName{Name: n.Name, Alias: n.Alias}
		}
		tr.AddOrUpdateImport(fc, f.Imports(), tracker.ModuleInfo{Name: add.Module},
			e.classify(add.Module), names, nil)
	}

	edits, err := tr.GetEdits(ctx)
	if err != nil {
		return nil, err
	}
	res := &FileResult{
		Path:      req.Path,
		Original:  string(source),
		Rewritten: textedit.ApplyEdits(string(source), f.Index(), edits),
		Edits:     edits,
	}
	e.log.Debug("rewrite computed",
		logging.FieldPath, req.Path,
		logging.FieldEdits, len(edits))
	return res, nil
}

// renameModule rewrites the statement importing rn.From so it imports rn.To.
// Plain imports get a direct module-path rewrite. Import-from statements are
// treated as a delete-and-reimport: the old statement's deletion is queued,
// then the tracker's update heuristic either collapses the pair into an
// in-place module rewrite (simple renames) or lets the deletion stand and
// inserts a fresh statement (moves across packages).
func (e *Engine) renameModule(f *pysyntax.ParsedFile, fc *tracker.FileContext, tr *tracker.Tracker, rn RenameModule) {
	imports := f.Imports()
	idx := -1
	for i, stmt := range imports {
		if stmt.ModuleName == rn.From {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.log.Warn("module not imported, skipping rename",
			logging.FieldPath, fc.FilePath, logging.FieldModule, rn.From)
		return
	}
	old := imports[idx]

	if !old.IsFrom {
		if n, ok := f.FindImportedName(rn.From, ""); ok {
			tr.AddEditWithTextRange(fc, n.Span(), rn.To)
		}
		return
	}

	declared := f.DeclaredImportNames(old)
	if len(declared) == 0 {
		e.log.Warn("statement declares no names, skipping rename",
			logging.FieldPath, fc.FilePath, logging.FieldModule, rn.From)
		return
	}
	// A simple rename needs only one representative name for its in-place
	// rewrite; a cross-package move re-declares everything in the statement
	// the fallback inserts.
	names := declared[:1]
	if parentOf(rn.From) != parentOf(rn.To) {
		names = declared
	}

	// Present the statement to the tracker under its post-rename name so the
	// update heuristic matches it as the splice target.
	existing := make([]tracker.ImportStatement, len(imports))
	copy(existing, imports)
	existing[idx].ModuleName = rn.To

	tr.AddEditWithTextRange(fc, fc.Syntax.StatementSpan(old.Decl), "")
	tr.AddOrUpdateImport(fc, existing, tracker.ModuleInfo{Name: rn.To},
		e.classify(rn.To), names, &tracker.RenameOptions{Statement: old})
}

// parentOf returns the dotted path above the last segment.
func parentOf(module string) string {
	if i := strings.LastIndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return ""
}

// Apply computes and writes back the rewrite for one file, preserving the
// file's mode. Unchanged files are left untouched.
func (e *Engine) Apply(ctx context.Context, req FileRequest) (*FileResult, error) {
	res, err := e.RewriteFile(ctx, req)
	if err != nil || !res.Changed() {
		return res, err
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(req.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(req.Path, []byte(res.Rewritten), mode); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}
	e.log.Info("rewrote file",
		logging.FieldPath, req.Path,
		logging.FieldEdits, len(res.Edits))
	return res, nil
}

// RewriteAll computes rewrites for every request in parallel, bounded by the
// configured job limit. The first failure cancels the remaining work; the
// result slice is indexed like reqs, with nil entries for excluded or failed
// files.
func (e *Engine) RewriteAll(ctx context.Context, reqs []FileRequest) ([]*FileResult, error) {
	results := make([]*FileResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.JobLimit())

	for i, req := range reqs {
		if e.cfg.Excluded(req.Path) {
			e.log.Debug("path excluded by config", logging.FieldPath, req.Path)
			continue
		}
		g.Go(func() error {
			res, err := e.RewriteFile(gctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", req.Path, err)
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()
	e.log.Debug("batch rewrite finished", logging.FieldFiles, len(reqs), logging.FieldJobs, e.cfg.JobLimit())
	return results, err
}

// ListImports parses path and reports every import it declares.
func (e *Engine) ListImports(ctx context.Context, path string) ([]ImportRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	f, err := pysyntax.Parse(path, source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []ImportRecord
	for _, stmt := range f.Imports() {
		rec := ImportRecord{
			Module:     stmt.ModuleName,
			IsFrom:     stmt.IsFrom,
			IsWildcard: stmt.IsWildcard,
			Line:       f.Index().Position(stmt.Decl.Span().Start).Line + 1,
		}
		if stmt.IsFrom && !stmt.IsWildcard {
			for _, n := range f.DeclaredImportNames(stmt) {
				rec.Names = append(rec.Names, Name{Name: n.Name, Alias: n.Alias})
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (e *Engine) trackerOptions() []tracker.Option {
	opts := []tracker.Option{tracker.WithLogger(e.log)}
	if e.cfg.MergeAllOverlaps {
		opts = append(opts, tracker.WithMergeAllOverlaps())
	}
	return opts
}
