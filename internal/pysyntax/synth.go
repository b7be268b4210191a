package pysyntax

import (
	"strings"

	"github.com/tern-works/refit/internal/textedit"
	"github.com/tern-works/refit/internal/tracker"
)

// GroupClassifier assigns a dotted module path to an import-group bucket.
type GroupClassifier func(module string) tracker.ImportGroup

// StdClassifier returns a classifier bucketing __future__ imports, a fixed
// set of standard-library modules, relative imports, and caller-local
// prefixes; everything else counts as third-party.
func StdClassifier(localPrefixes []string) GroupClassifier {
	return func(module string) tracker.ImportGroup {
		root := module
		if i := strings.IndexByte(root, '.'); i >= 0 {
			root = root[:i]
		}
		switch {
		case root == "__future__":
			return tracker.GroupFuture
		case strings.HasPrefix(module, "."):
			return tracker.GroupLocal
		case isLocal(module, localPrefixes):
			return tracker.GroupLocal
		case stdlibModules[root]:
			return tracker.GroupStdlib
		}
		return tracker.GroupThirdParty
	}
}

func isLocal(module string, prefixes []string) bool {
	for _, p := range prefixes {
		if module == p || strings.HasPrefix(module, p+".") {
			return true
		}
	}
	return false
}

// stdlibModules holds the common standard-library roots the classifier
// recognizes. Unknown modules default to third-party, which only affects
// where a brand-new statement is inserted.
var stdlibModules = map[string]bool{
	"__main__": true, "abc": true, "argparse": true, "asyncio": true,
	"base64": true, "collections": true, "contextlib": true, "copy": true,
	"csv": true, "dataclasses": true, "datetime": true, "decimal": true,
	"enum": true, "functools": true, "glob": true, "hashlib": true,
	"heapq": true, "importlib": true, "inspect": true, "io": true,
	"itertools": true, "json": true, "logging": true, "math": true,
	"os": true, "pathlib": true, "pickle": true, "random": true, "re": true,
	"shutil": true, "socket": true, "string": true, "struct": true,
	"subprocess": true, "sys": true, "tempfile": true, "threading": true,
	"time": true, "types": true, "typing": true, "unittest": true,
	"urllib": true, "uuid": true, "warnings": true, "weakref": true,
}

// Compile-time assertion: *synthesizer satisfies the consumed contract.
var _ tracker.ImportSynthesizer = (*synthesizer)(nil)

// synthesizer produces the literal text for import splices and brand-new
// import statements.
type synthesizer struct {
	file     *ParsedFile
	classify GroupClassifier
}

// SpliceEdits makes stmt provide the requested names under mod: a differing
// module path is rewritten in place and names not yet declared are appended
// after the last entry. Plain import statements cannot hold symbol names, so
// name requests against them report not-spliceable.
func (s *synthesizer) SpliceEdits(fc *tracker.FileContext, stmt tracker.ImportStatement, mod tracker.ModuleInfo, names []tracker.ImportName) ([]textedit.Edit, bool) {
	decl, ok := stmt.Decl.(*node)
	if !ok {
		return nil, false
	}
	entries := importEntries(decl.ts)
	if len(entries) == 0 {
		return nil, false
	}

	if !stmt.IsFrom {
		if len(names) > 0 {
			return nil, false
		}
		for _, entry := range entries {
			nameNode := nameOfEntry(entry)
			if nameNode.Utf8Text(s.file.Source) != stmt.ModuleName {
				continue
			}
			if stmt.ModuleName == mod.Name {
				return nil, true
			}
			return []textedit.Edit{s.replace(fc, spanOf(nameNode), mod.Name)}, true
		}
		return nil, false
	}

	var edits []textedit.Edit
	if modNode := decl.ts.ChildByFieldName("module_name"); modNode != nil {
		if modNode.Utf8Text(s.file.Source) != mod.Name {
			edits = append(edits, s.replace(fc, spanOf(modNode), mod.Name))
		}
	}

	declared := make(map[string]bool, len(entries))
	for _, entry := range entries {
		declared[nameOfEntry(entry).Utf8Text(s.file.Source)] = true
	}
	var missing []string
	for _, n := range names {
		if !declared[n.Name] {
			missing = append(missing, renderName(n))
		}
	}
	if len(missing) > 0 {
		insertAt := int(entries[len(entries)-1].EndByte())
		edits = append(edits, s.replace(fc, textedit.NewTextRange(insertAt, 0),
			", "+strings.Join(missing, ", ")))
	}
	return edits, true
}

// NewImportEdit renders a brand-new import statement and places it after the
// last existing import whose group sorts at or before the requested one, or
// at the top of the module past any docstring and leading comments.
func (s *synthesizer) NewImportEdit(fc *tracker.FileContext, mod tracker.ModuleInfo, group tracker.ImportGroup, names []tracker.ImportName) textedit.Edit {
	return s.replace(fc, textedit.NewTextRange(s.insertionOffset(group), 0),
		renderStatement(mod, names))
}

func (s *synthesizer) replace(fc *tracker.FileContext, span textedit.TextRange, text string) textedit.Edit {
	return textedit.Edit{
		FilePath:        fc.FilePath,
		Range:           fc.Index.Range(span),
		ReplacementText: text,
	}
}

func (s *synthesizer) insertionOffset(group tracker.ImportGroup) int {
	offset := s.headerEnd()
	for _, stmt := range s.file.Imports() {
		decl, ok := stmt.Decl.(*node)
		if !ok || s.classify(stmt.ModuleName) > group {
			continue
		}
		end := s.file.index.LineStart(int(decl.ts.EndPosition().Row) + 1)
		offset = max(offset, end)
	}
	return offset
}

// headerEnd returns the offset just past the module docstring and any
// leading comments.
func (s *synthesizer) headerEnd() int {
	root := s.file.tree.RootNode()
	offset := 0
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			break
		}
		switch child.Kind() {
		case "comment":
		case "expression_statement":
			if !hasChildOfKind(child, "string") {
				return offset
			}
		default:
			return offset
		}
		offset = s.file.index.LineStart(int(child.EndPosition().Row) + 1)
	}
	return offset
}

func renderStatement(mod tracker.ModuleInfo, names []tracker.ImportName) string {
	if len(names) == 0 {
		return "import " + mod.Name + "\n"
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = renderName(n)
	}
	return "from " + mod.Name + " import " + strings.Join(parts, ", ") + "\n"
}

func renderName(n tracker.ImportName) string {
	if n.Alias != "" && n.Alias != n.Name {
		return n.Name + " as " + n.Alias
	}
	return n.Name
}
