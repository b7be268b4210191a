// Package tracker implements the edit-conflict-resolution core of the
// rewriter: a per-session store that accumulates textual edits per file and
// resolves overlaps into a non-contradictory set, a deferred worklist that
// expands "remove this syntax element" requests into minimal deletions, and
// the add-versus-splice heuristics for import updates.
//
// The tracker never parses source text itself. It reads node shape through
// opaque handles owned by a syntax layer (see Syntax) and records handle
// identities in its removal sets.
package tracker

import "github.com/tern-works/refit/internal/textedit"

// NodeKind is the closed set of syntax-element kinds the tracker
// distinguishes. Kinds outside this set classify as KindUnknown and take the
// worklist's raw-deletion default path.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	// KindName is a name declared by an import statement (a plain imported
	// module entry or a from-import symbol).
	KindName
	// KindModuleName is the dotted module path in a from-import clause.
	KindModuleName
	// KindAlias is the identifier after "as".
	KindAlias
	// KindImport is a plain "import a, b" statement.
	KindImport
	// KindImportFrom is a "from m import a, b" statement.
	KindImportFrom
)

func (k NodeKind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindModuleName:
		return "module-name"
	case KindAlias:
		return "alias"
	case KindImport:
		return "import"
	case KindImportFrom:
		return "import-from"
	default:
		return "unknown"
	}
}

// NodeID is a stable identity for a node handle within one parsed file.
type NodeID uint64

// Node is an opaque, immutable handle to a syntax element. The tracker only
// reads its kind and span and stores its ID; the syntax layer owns the
// underlying tree.
type Node interface {
	ID() NodeID
	Kind() NodeKind
	Span() textedit.TextRange
}
