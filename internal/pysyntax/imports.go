package pysyntax

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tern-works/refit/internal/tracker"
)

// Imports returns the import statements declared in the file, in source
// order. A plain statement importing several modules yields one entry per
// module, all sharing the same declaration node.
func (f *ParsedFile) Imports() []tracker.ImportStatement {
	root := f.tree.RootNode()
	cursor := root.Walk()
	defer cursor.Close()

	var out []tracker.ImportStatement
	f.collectImports(cursor, &out)
	return out
}

func (f *ParsedFile) collectImports(cursor *tree_sitter.TreeCursor, out *[]tracker.ImportStatement) {
	ts := cursor.Node()
	switch ts.Kind() {
	case "import_statement":
		decl := f.wrap(ts)
		for _, entry := range importEntries(ts) {
			*out = append(*out, tracker.ImportStatement{
				Decl:       decl,
				ModuleName: nameOfEntry(entry).Utf8Text(f.Source),
			})
		}

	case "import_from_statement":
		stmt := tracker.ImportStatement{Decl: f.wrap(ts), IsFrom: true}
		if mod := ts.ChildByFieldName("module_name"); mod != nil {
			stmt.ModuleName = mod.Utf8Text(f.Source)
		}
		stmt.IsWildcard = hasChildOfKind(ts, "wildcard_import")
		*out = append(*out, stmt)
	}

	if cursor.GotoFirstChild() {
		f.collectImports(cursor, out)
		for cursor.GotoNextSibling() {
			f.collectImports(cursor, out)
		}
		cursor.GotoParent()
	}
}

// FindImportedName resolves the declared-name node for name within a
// statement importing module. An empty name (or the module path itself)
// addresses the module entry of a plain import statement.
func (f *ParsedFile) FindImportedName(module, name string) (tracker.Node, bool) {
	for _, stmt := range f.Imports() {
		if stmt.ModuleName != module || stmt.IsWildcard {
			continue
		}
		decl, ok := stmt.Decl.(*node)
		if !ok {
			continue
		}
		for _, entry := range importEntries(decl.ts) {
			nameNode := nameOfEntry(entry)
			text := nameNode.Utf8Text(f.Source)
			if stmt.IsFrom {
				if text == name {
					return f.wrap(nameNode), true
				}
			} else if text == module && (name == "" || name == module) {
				return f.wrap(nameNode), true
			}
		}
	}
	return nil, false
}

// DeclaredImportNames returns the names a statement declares together with
// their aliases. Plain statements report their module entries.
func (f *ParsedFile) DeclaredImportNames(stmt tracker.ImportStatement) []tracker.ImportName {
	decl, ok := stmt.Decl.(*node)
	if !ok {
		return nil
	}
	var out []tracker.ImportName
	for _, entry := range importEntries(decl.ts) {
		n := tracker.ImportName{Name: nameOfEntry(entry).Utf8Text(f.Source)}
		if entry.Kind() == "aliased_import" {
			if alias := entry.ChildByFieldName("alias"); alias != nil {
				n.Alias = alias.Utf8Text(f.Source)
			}
		}
		out = append(out, n)
	}
	return out
}

