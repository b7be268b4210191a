package pysyntax

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tern-works/refit/internal/textedit"
	"github.com/tern-works/refit/internal/tracker"
)

// Compile-time assertion: *syntax satisfies the tracker's consumed contract.
var _ tracker.Syntax = (*syntax)(nil)

// syntax adapts one ParsedFile to tracker.Syntax. All methods are read-only
// views over the parsed snapshot.
type syntax struct {
	file *ParsedFile
}

func (s *syntax) EnclosingImport(n tracker.Node) (tracker.Node, bool) {
	h, ok := n.(*node)
	if !ok {
		return nil, false
	}
	for ts := h.ts; ts != nil; ts = ts.Parent() {
		switch ts.Kind() {
		case "import_statement", "import_from_statement":
			return s.file.wrap(ts), true
		}
	}
	return nil, false
}

func (s *syntax) DeclaredNames(decl tracker.Node) []tracker.Node {
	h, ok := decl.(*node)
	if !ok {
		return nil
	}
	var out []tracker.Node
	for _, entry := range importEntries(h.ts) {
		out = append(out, s.file.wrap(nameOfEntry(entry)))
	}
	return out
}

// NameDeletionSpans computes the minimal deletions for the declared entries
// at the given ascending indexes. A run of leading entries is deleted up to
// the start of the first kept entry so its trailing comma goes with it; any
// other run is deleted from the end of the preceding kept entry so its
// leading comma goes with it. Alias forms are deleted whole.
func (s *syntax) NameDeletionSpans(decl tracker.Node, indexes []int) []textedit.TextRange {
	h, ok := decl.(*node)
	if !ok {
		return nil
	}
	entries := importEntries(h.ts)

	var spans []textedit.TextRange
	for i := 0; i < len(indexes); {
		j := i
		for j+1 < len(indexes) && indexes[j+1] == indexes[j]+1 {
			j++
		}
		first, last := indexes[i], indexes[j]
		i = j + 1

		switch {
		case first < 0 || last >= len(entries):
			// Out-of-range indexes are a contract violation; skip.
		case first == 0 && last+1 < len(entries):
			spans = append(spans, textedit.SpanBetween(
				int(entries[0].StartByte()), int(entries[last+1].StartByte())))
		case first > 0:
			spans = append(spans, textedit.SpanBetween(
				int(entries[first-1].EndByte()), int(entries[last].EndByte())))
		}
		// A run covering every entry is the whole-statement case, which
		// callers resolve through StatementSpan instead.
	}
	return spans
}

// StatementSpan covers the declaration's full lines: leading indentation
// through the trailing line terminator.
func (s *syntax) StatementSpan(decl tracker.Node) textedit.TextRange {
	h, ok := decl.(*node)
	if !ok {
		return textedit.TextRange{}
	}
	startLine := int(h.ts.StartPosition().Row)
	endLine := int(h.ts.EndPosition().Row)
	return textedit.SpanBetween(s.file.index.LineStart(startLine), s.file.index.LineStart(endLine+1))
}

func (s *syntax) DependentParts(n tracker.Node) []tracker.Node {
	h, ok := n.(*node)
	if !ok {
		return nil
	}
	var out []tracker.Node
	for i := uint(0); i < h.ts.ChildCount(); i++ {
		if child := h.ts.Child(i); child != nil && child.Kind() == "identifier" {
			out = append(out, s.file.wrap(child))
		}
	}
	if parent := h.ts.Parent(); parent != nil && parent.Kind() == "aliased_import" {
		out = append(out, s.file.wrap(parent))
		if alias := parent.ChildByFieldName("alias"); alias != nil {
			out = append(out, s.file.wrap(alias))
		}
	}
	return out
}

// ModuleLeafSpan returns the span of the last segment of the declaration's
// module path: the from-clause module for import-from statements, or the
// single declared entry of a plain import. Multi-entry plain imports are
// ambiguous and report false.
func (s *syntax) ModuleLeafSpan(decl tracker.Node) (textedit.TextRange, bool) {
	h, ok := decl.(*node)
	if !ok {
		return textedit.TextRange{}, false
	}

	var moduleNode *tree_sitter.Node
	switch h.ts.Kind() {
	case "import_from_statement":
		moduleNode = h.ts.ChildByFieldName("module_name")
		if moduleNode != nil && moduleNode.Kind() == "relative_import" {
			moduleNode = lastChildOfKind(moduleNode, "dotted_name")
		}
	case "import_statement":
		entries := importEntries(h.ts)
		if len(entries) != 1 {
			return textedit.TextRange{}, false
		}
		moduleNode = nameOfEntry(entries[0])
	}
	if moduleNode == nil {
		return textedit.TextRange{}, false
	}

	leaf := lastChildOfKind(moduleNode, "identifier")
	if leaf == nil {
		return textedit.TextRange{}, false
	}
	return spanOf(leaf), true
}
