package pysyntax

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tern-works/refit/internal/textedit"
	"github.com/tern-works/refit/internal/tracker"
)

// arenaKey identifies a syntax element by its span and grammar kind, which is
// stable for one parsed snapshot.
type arenaKey struct {
	start, end uint
	kind       string
}

// node wraps a tree-sitter node as an immutable tracker.Node handle. Handles
// are interned per file so that the same syntax element always resolves to
// the same identity.
type node struct {
	file *ParsedFile
	ts   *tree_sitter.Node
	kind tracker.NodeKind
	id   tracker.NodeID
}

func (f *ParsedFile) wrap(ts *tree_sitter.Node) *node {
	key := arenaKey{start: ts.StartByte(), end: ts.EndByte(), kind: ts.Kind()}
	if n, ok := f.arena[key]; ok {
		return n
	}
	f.nextID++
	n := &node{file: f, ts: ts, kind: classify(ts), id: f.nextID}
	f.arena[key] = n
	return n
}

func (n *node) ID() tracker.NodeID     { return n.id }
func (n *node) Kind() tracker.NodeKind { return n.kind }

func (n *node) Span() textedit.TextRange {
	return spanOf(n.ts)
}

func spanOf(ts *tree_sitter.Node) textedit.TextRange {
	return textedit.SpanBetween(int(ts.StartByte()), int(ts.EndByte()))
}

// classify maps grammar kinds onto the tracker's closed kind set.
func classify(ts *tree_sitter.Node) tracker.NodeKind {
	switch ts.Kind() {
	case "import_statement":
		return tracker.KindImport
	case "import_from_statement":
		return tracker.KindImportFrom
	case "dotted_name":
		if isModulePosition(ts) {
			return tracker.KindModuleName
		}
		return tracker.KindName
	case "identifier":
		if p := ts.Parent(); p != nil && p.Kind() == "aliased_import" {
			return tracker.KindAlias
		}
		return tracker.KindName
	default:
		return tracker.KindUnknown
	}
}

// isModulePosition reports whether a dotted_name names a module rather than
// an imported symbol: the from-clause of an import_from_statement or the body
// of a relative import. The entries of a plain import statement double as the
// names the statement declares, so they classify as names.
func isModulePosition(ts *tree_sitter.Node) bool {
	parent := ts.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "relative_import":
		return true
	case "import_from_statement":
		mod := parent.ChildByFieldName("module_name")
		return mod != nil && mod.StartByte() == ts.StartByte() && mod.EndByte() == ts.EndByte()
	}
	return false
}

// importEntries returns the declared entries of an import statement (the
// dotted_name or aliased_import nodes after the "import" keyword), in order.
func importEntries(stmt *tree_sitter.Node) []*tree_sitter.Node {
	var entries []*tree_sitter.Node
	afterKeyword := false
	for i := uint(0); i < stmt.ChildCount(); i++ {
		child := stmt.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import":
			afterKeyword = true
		case "dotted_name", "aliased_import":
			if afterKeyword {
				entries = append(entries, child)
			}
		}
	}
	return entries
}

// nameOfEntry returns the dotted_name carrying an entry's declared name,
// unwrapping an "x as y" alias form.
func nameOfEntry(entry *tree_sitter.Node) *tree_sitter.Node {
	if entry.Kind() == "aliased_import" {
		if name := entry.ChildByFieldName("name"); name != nil {
			return name
		}
	}
	return entry
}

func hasChildOfKind(ts *tree_sitter.Node, kind string) bool {
	for i := uint(0); i < ts.ChildCount(); i++ {
		if child := ts.Child(i); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

func lastChildOfKind(ts *tree_sitter.Node, kind string) *tree_sitter.Node {
	var last *tree_sitter.Node
	for i := uint(0); i < ts.ChildCount(); i++ {
		if child := ts.Child(i); child != nil && child.Kind() == kind {
			last = child
		}
	}
	return last
}
