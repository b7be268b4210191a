// Package pysyntax is the Python syntax layer behind the edit tracker. It
// parses source files with tree-sitter, hands out opaque node handles from a
// per-file arena, and implements the tracker's consumed contracts: enclosing
// import resolution, declared-name listing, separator-aware deletion spans,
// statement trivia ranges, and import-text synthesis.
package pysyntax

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/tern-works/refit/internal/textedit"
	"github.com/tern-works/refit/internal/tracker"
)

// ParsedFile owns the syntax tree and node arena for one Python source file.
// It stays alive for the duration of one edit session; Close releases the
// underlying tree.
type ParsedFile struct {
	Path   string
	Source []byte

	tree   *tree_sitter.Tree
	index  *textedit.LineIndex
	arena  map[arenaKey]*node
	nextID tracker.NodeID
}

// Parse parses Python source into a ParsedFile.
func Parse(path string, source []byte) (*ParsedFile, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	lang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", path)
	}

	return &ParsedFile{
		Path:   path,
		Source: source,
		tree:   tree,
		index:  textedit.NewLineIndex(string(source)),
		arena:  make(map[arenaKey]*node),
	}, nil
}

// Close releases the syntax tree. Node handles must not be resolved after
// Close returns.
func (f *ParsedFile) Close() {
	f.tree.Close()
}

// Index returns the line index for the parsed snapshot.
func (f *ParsedFile) Index() *textedit.LineIndex {
	return f.index
}

// Context builds the tracker-facing view of this file. A nil classifier
// falls back to StdClassifier with no local prefixes.
func (f *ParsedFile) Context(classify GroupClassifier) *tracker.FileContext {
	if classify == nil {
		classify = StdClassifier(nil)
	}
	return &tracker.FileContext{
		FilePath: f.Path,
		Source:   string(f.Source),
		Index:    f.index,
		Syntax:   &syntax{file: f},
		Imports:  &synthesizer{file: f, classify: classify},
	}
}
