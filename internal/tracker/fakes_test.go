package tracker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tern-works/refit/internal/textedit"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeNode is a minimal Node handle for tracker tests.
type fakeNode struct {
	id   NodeID
	kind NodeKind
	span textedit.TextRange
}

func (n *fakeNode) ID() NodeID               { return n.id }
func (n *fakeNode) Kind() NodeKind           { return n.kind }
func (n *fakeNode) Span() textedit.TextRange { return n.span }

// fakeImportSyntax models a single import statement. Spans are computed from
// the real source text so that applying the resulting edits is meaningful.
type fakeImportSyntax struct {
	decl  *fakeNode
	names []*fakeNode
	stmt  textedit.TextRange
	leaf  textedit.TextRange
	deps  map[NodeID][]Node
}

func (s *fakeImportSyntax) EnclosingImport(n Node) (Node, bool) {
	for _, name := range s.names {
		if name.ID() == n.ID() {
			return s.decl, true
		}
	}
	return nil, false
}

func (s *fakeImportSyntax) DeclaredNames(Node) []Node {
	out := make([]Node, len(s.names))
	for i, n := range s.names {
		out[i] = n
	}
	return out
}

func (s *fakeImportSyntax) NameDeletionSpans(_ Node, indexes []int) []textedit.TextRange {
	var spans []textedit.TextRange
	for i := 0; i < len(indexes); {
		j := i
		for j+1 < len(indexes) && indexes[j+1] == indexes[j]+1 {
			j++
		}
		first, last := indexes[i], indexes[j]
		if first == 0 {
			spans = append(spans, textedit.SpanBetween(s.names[0].span.Start, s.names[last+1].span.Start))
		} else {
			spans = append(spans, textedit.SpanBetween(s.names[first-1].span.End(), s.names[last].span.End()))
		}
		i = j + 1
	}
	return spans
}

func (s *fakeImportSyntax) StatementSpan(Node) textedit.TextRange {
	return s.stmt
}

func (s *fakeImportSyntax) DependentParts(n Node) []Node {
	return s.deps[n.ID()]
}

func (s *fakeImportSyntax) ModuleLeafSpan(Node) (textedit.TextRange, bool) {
	return s.leaf, !s.leaf.Empty()
}

// fakeSynth returns canned splice/new-import edits and counts fallbacks.
type fakeSynth struct {
	splice    []textedit.Edit
	spliceOK  bool
	newImport textedit.Edit
	newCalls  int
}

func (f *fakeSynth) SpliceEdits(*FileContext, ImportStatement, ModuleInfo, []ImportName) ([]textedit.Edit, bool) {
	return f.splice, f.spliceOK
}

func (f *fakeSynth) NewImportEdit(*FileContext, ModuleInfo, ImportGroup, []ImportName) textedit.Edit {
	f.newCalls++
	return f.newImport
}

// ---------------------------------------------------------------------------
// Builders
// ---------------------------------------------------------------------------

// fakeImportContext builds a FileContext over source, which must contain one
// import statement declaring the given names (in order). Offsets are located
// by string search so the fixtures stay readable.
func fakeImportContext(t *testing.T, source, module string, names ...string) (*FileContext, *fakeImportSyntax) {
	t.Helper()

	stmtStart := strings.Index(source, "from ")
	if stmtStart < 0 {
		stmtStart = strings.Index(source, "import ")
	}
	require.GreaterOrEqual(t, stmtStart, 0, "fixture must contain an import statement")
	stmtEnd := strings.IndexByte(source[stmtStart:], '\n')
	require.GreaterOrEqual(t, stmtEnd, 0, "fixture statement must end with a newline")
	stmtEnd += stmtStart + 1

	syn := &fakeImportSyntax{
		stmt: textedit.SpanBetween(stmtStart, stmtEnd),
		deps: make(map[NodeID][]Node),
	}
	nextID := NodeID(1)
	syn.decl = &fakeNode{id: nextID, kind: KindImportFrom, span: textedit.SpanBetween(stmtStart, stmtEnd-1)}

	modAt := strings.Index(source, module)
	require.GreaterOrEqual(t, modAt, 0, "fixture must contain module %q", module)
	leaf := module
	if i := strings.LastIndexByte(module, '.'); i >= 0 {
		leaf = module[i+1:]
	}
	syn.leaf = textedit.NewTextRange(modAt+len(module)-len(leaf), len(leaf))

	searchFrom := strings.Index(source[stmtStart:], "import ") + stmtStart + len("import ")
	for _, name := range names {
		at := strings.Index(source[searchFrom:], name)
		require.GreaterOrEqual(t, at, 0, "fixture must declare name %q", name)
		at += searchFrom
		nextID++
		syn.names = append(syn.names, &fakeNode{id: nextID, kind: KindName, span: textedit.NewTextRange(at, len(name))})
		searchFrom = at + len(name)
	}

	fc := &FileContext{
		FilePath: "mod.py",
		Source:   source,
		Index:    textedit.NewLineIndex(source),
		Syntax:   syn,
		Imports:  &fakeSynth{},
	}
	return fc, syn
}

// deletionOf builds a deletion edit over a byte span of fc's source.
func deletionOf(fc *FileContext, start, end int) textedit.Edit {
	return textedit.Edit{
		FilePath: fc.FilePath,
		Range:    fc.Index.Range(textedit.SpanBetween(start, end)),
	}
}
