//go:build cgo

package pysyntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tern-works/refit/internal/textedit"
	"github.com/tern-works/refit/internal/tracker"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func parseSource(t *testing.T, source string) *ParsedFile {
	t.Helper()
	f, err := Parse("mod.py", []byte(source))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

// textOf extracts the source bytes a span covers.
func textOf(source string, span textedit.TextRange) string {
	return source[span.Start:span.End()]
}

// deleteSpans removes the given byte spans from source (spans must be
// disjoint and ascending).
func deleteSpans(source string, spans []textedit.TextRange) string {
	out := source
	for i := len(spans) - 1; i >= 0; i-- {
		out = out[:spans[i].Start] + out[spans[i].End():]
	}
	return out
}

// declOf finds the declaration node for the statement importing module.
func declOf(t *testing.T, f *ParsedFile, module string) tracker.Node {
	t.Helper()
	for _, stmt := range f.Imports() {
		if stmt.ModuleName == module {
			return stmt.Decl
		}
	}
	t.Fatalf("no import of %q", module)
	return nil
}

// ---------------------------------------------------------------------------
// Import scanning
// ---------------------------------------------------------------------------

func TestImportsScan(t *testing.T) {
	source := "import os, sys\n" +
		"from a.b import c, d as dd\n" +
		"from x import *\n"
	f := parseSource(t, source)

	imports := f.Imports()
	require.Len(t, imports, 4)

	assert.Equal(t, "os", imports[0].ModuleName)
	assert.Equal(t, "sys", imports[1].ModuleName)
	assert.False(t, imports[0].IsFrom)
	assert.Equal(t, imports[0].Decl.ID(), imports[1].Decl.ID(),
		"entries of one plain statement share the declaration")

	assert.Equal(t, "a.b", imports[2].ModuleName)
	assert.True(t, imports[2].IsFrom)
	assert.False(t, imports[2].IsWildcard)

	assert.Equal(t, "x", imports[3].ModuleName)
	assert.True(t, imports[3].IsWildcard)
}

func TestFindImportedName(t *testing.T) {
	source := "import os.path\nfrom a.b import c, d as dd\n"
	f := parseSource(t, source)

	n, ok := f.FindImportedName("a.b", "d")
	require.True(t, ok)
	assert.Equal(t, tracker.KindName, n.Kind())
	assert.Equal(t, "d", textOf(source, n.Span()))

	n, ok = f.FindImportedName("os.path", "")
	require.True(t, ok)
	assert.Equal(t, "os.path", textOf(source, n.Span()))

	_, ok = f.FindImportedName("a.b", "nope")
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// tracker.Syntax contract
// ---------------------------------------------------------------------------

func TestEnclosingImportAndDeclaredNames(t *testing.T) {
	source := "from m import a, b as bb, c\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	name, ok := f.FindImportedName("m", "b")
	require.True(t, ok)

	decl, ok := fc.Syntax.EnclosingImport(name)
	require.True(t, ok)
	assert.Equal(t, tracker.KindImportFrom, decl.Kind())

	names := fc.Syntax.DeclaredNames(decl)
	require.Len(t, names, 3)
	assert.Equal(t, "a", textOf(source, names[0].Span()))
	assert.Equal(t, "b", textOf(source, names[1].Span()))
	assert.Equal(t, "c", textOf(source, names[2].Span()))
	assert.Equal(t, name.ID(), names[1].ID(), "handles are interned per element")
}

func TestNameDeletionSpans(t *testing.T) {
	source := "from m import a, b as bb, c\n"
	f := parseSource(t, source)
	fc := f.Context(nil)
	decl := declOf(t, f, "m")

	tests := []struct {
		name    string
		indexes []int
		want    string
	}{
		{"middle with alias", []int{1}, "from m import a, c\n"},
		{"first", []int{0}, "from m import b as bb, c\n"},
		{"last", []int{2}, "from m import a, b as bb\n"},
		{"leading run", []int{0, 1}, "from m import c\n"},
		{"trailing run", []int{1, 2}, "from m import a\n"},
		{"first and last", []int{0, 2}, "from m import b as bb\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := fc.Syntax.NameDeletionSpans(decl, tt.indexes)
			assert.Equal(t, tt.want, deleteSpans(source, spans))
		})
	}
}

func TestStatementSpanCoversFullLines(t *testing.T) {
	source := "if True:\n    from m import a\ny = 2\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	name, ok := f.FindImportedName("m", "a")
	require.True(t, ok)
	decl, ok := fc.Syntax.EnclosingImport(name)
	require.True(t, ok)

	span := fc.Syntax.StatementSpan(decl)
	assert.Equal(t, "    from m import a\n", textOf(source, span),
		"leading indentation and the terminator belong to the statement")
}

func TestDependentPartsIncludeAlias(t *testing.T) {
	source := "from m import b as bb\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	name, ok := f.FindImportedName("m", "b")
	require.True(t, ok)

	var texts []string
	for _, dep := range fc.Syntax.DependentParts(name) {
		texts = append(texts, textOf(source, dep.Span()))
	}
	assert.Contains(t, texts, "bb", "the alias identifier is a dependent part")
	assert.Contains(t, texts, "b as bb", "so is the alias wrapper")
}

func TestModuleLeafSpan(t *testing.T) {
	source := "from a.b import c\nimport x.y as z\nimport p, q\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	span, ok := fc.Syntax.ModuleLeafSpan(declOf(t, f, "a.b"))
	require.True(t, ok)
	assert.Equal(t, "b", textOf(source, span))

	span, ok = fc.Syntax.ModuleLeafSpan(declOf(t, f, "x.y"))
	require.True(t, ok)
	assert.Equal(t, "y", textOf(source, span))

	_, ok = fc.Syntax.ModuleLeafSpan(declOf(t, f, "p"))
	assert.False(t, ok, "multi-entry plain imports have no single module leaf")
}

func TestNodeKindClassification(t *testing.T) {
	source := "from a.b import c as cc\n"
	f := parseSource(t, source)

	name, ok := f.FindImportedName("a.b", "c")
	require.True(t, ok)
	assert.Equal(t, tracker.KindName, name.Kind())

	fc := f.Context(nil)
	decl, ok := fc.Syntax.EnclosingImport(name)
	require.True(t, ok)
	assert.Equal(t, tracker.KindImportFrom, decl.Kind())

	// The from-clause module is a module name, not a declared name.
	for _, n := range fc.Syntax.DeclaredNames(decl) {
		assert.NotEqual(t, "a.b", textOf(source, n.Span()))
	}
}

// ---------------------------------------------------------------------------
// Synthesizer
// ---------------------------------------------------------------------------

func TestSpliceEditsInsertsMissingNames(t *testing.T) {
	source := "from m import a\n"
	f := parseSource(t, source)
	fc := f.Context(nil)
	stmt := f.Imports()[0]

	edits, ok := fc.Imports.SpliceEdits(fc, stmt, tracker.ModuleInfo{Name: "m"},
		[]tracker.ImportName{{Name: "a"}, {Name: "b"}, {Name: "c", Alias: "cc"}})
	require.True(t, ok)
	require.Len(t, edits, 1, "already-declared names are skipped")

	got := textedit.ApplyEdits(source, f.Index(), edits)
	assert.Equal(t, "from m import a, b, c as cc\n", got)
}

func TestSpliceEditsRewritesModulePath(t *testing.T) {
	source := "from a.b import c, d\n"
	f := parseSource(t, source)
	fc := f.Context(nil)
	stmt := f.Imports()[0]

	edits, ok := fc.Imports.SpliceEdits(fc, stmt, tracker.ModuleInfo{Name: "a.e"},
		[]tracker.ImportName{{Name: "c"}})
	require.True(t, ok)
	require.Len(t, edits, 1)
	assert.Equal(t, "from a.e import c, d\n", textedit.ApplyEdits(source, f.Index(), edits))
}

func TestSpliceEditsAlreadySatisfied(t *testing.T) {
	source := "from m import a\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	edits, ok := fc.Imports.SpliceEdits(fc, f.Imports()[0], tracker.ModuleInfo{Name: "m"},
		[]tracker.ImportName{{Name: "a"}})
	assert.True(t, ok)
	assert.Empty(t, edits)
}

func TestSpliceEditsRejectsNamesOnPlainImport(t *testing.T) {
	source := "import m\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	_, ok := fc.Imports.SpliceEdits(fc, f.Imports()[0], tracker.ModuleInfo{Name: "m"},
		[]tracker.ImportName{{Name: "a"}})
	assert.False(t, ok)
}

func TestNewImportEditPlacement(t *testing.T) {
	source := "\"\"\"Docstring.\"\"\"\n" +
		"import os\n" +
		"\n" +
		"import requests\n" +
		"\n" +
		"x = 1\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	// A stdlib import lands after os but before requests.
	e := fc.Imports.NewImportEdit(fc, tracker.ModuleInfo{Name: "json"}, tracker.GroupStdlib, nil)
	got := textedit.ApplyEdits(source, f.Index(), []textedit.Edit{e})
	assert.Equal(t, strings.Replace(source, "import os\n", "import os\nimport json\n", 1), got)

	// A third-party from-import lands after requests.
	e = fc.Imports.NewImportEdit(fc, tracker.ModuleInfo{Name: "attrs"}, tracker.GroupThirdParty,
		[]tracker.ImportName{{Name: "define"}})
	got = textedit.ApplyEdits(source, f.Index(), []textedit.Edit{e})
	assert.Equal(t, strings.Replace(source, "import requests\n", "import requests\nfrom attrs import define\n", 1), got)
}

func TestNewImportEditIntoEmptyModule(t *testing.T) {
	source := "x = 1\n"
	f := parseSource(t, source)
	fc := f.Context(nil)

	e := fc.Imports.NewImportEdit(fc, tracker.ModuleInfo{Name: "os"}, tracker.GroupStdlib, nil)
	assert.Equal(t, "import os\nx = 1\n", textedit.ApplyEdits(source, f.Index(), []textedit.Edit{e}))
}

func TestStdClassifier(t *testing.T) {
	classify := StdClassifier([]string{"myapp"})

	assert.Equal(t, tracker.GroupFuture, classify("__future__"))
	assert.Equal(t, tracker.GroupStdlib, classify("os.path"))
	assert.Equal(t, tracker.GroupThirdParty, classify("requests"))
	assert.Equal(t, tracker.GroupLocal, classify("myapp.util"))
	assert.Equal(t, tracker.GroupThirdParty, classify("myapplication"),
		"prefix matching is segment-aware")
	assert.Equal(t, tracker.GroupLocal, classify(".models"),
		"relative imports are local by definition")
	assert.Equal(t, tracker.GroupLocal, classify("..pkg.util"))
}
