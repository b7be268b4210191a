package tracker

import (
	"strings"

	"github.com/tern-works/refit/internal/textedit"
)

// FileContext carries the per-file parse state the tracker needs to resolve
// node offsets and synthesize import text. One FileContext corresponds to one
// parsed snapshot of one file.
type FileContext struct {
	FilePath string
	Source   string
	Index    *textedit.LineIndex
	Syntax   Syntax
	Imports  ImportSynthesizer
}

// textAt returns the source bytes covered by span, clamped to the file.
func (fc *FileContext) textAt(span textedit.TextRange) string {
	start := min(max(span.Start, 0), len(fc.Source))
	end := min(max(span.End(), start), len(fc.Source))
	return fc.Source[start:end]
}

// Syntax is the consumed contract of the syntax layer. Implementations are
// side-effect-free views over a parsed file.
type Syntax interface {
	// EnclosingImport resolves the import declaration containing n, when n
	// lies inside one.
	EnclosingImport(n Node) (Node, bool)

	// DeclaredNames returns the ordered name nodes an import declaration
	// introduces.
	DeclaredNames(decl Node) []Node

	// NameDeletionSpans returns the minimal spans deleting exactly the
	// declared names at the given ascending indexes, consuming or leaving
	// separating commas depending on whether a run of names sits first,
	// in the middle, or last.
	NameDeletionSpans(decl Node, indexes []int) []textedit.TextRange

	// StatementSpan returns the declaration's full statement span including
	// leading indentation and the trailing line terminator.
	StatementSpan(decl Node) textedit.TextRange

	// DependentParts returns the sub-nodes removed together with n: its
	// alias identifier and dotted-name segments.
	DependentParts(n Node) []Node

	// ModuleLeafSpan returns the span of the last segment of the
	// declaration's module path, when that is unambiguous.
	ModuleLeafSpan(decl Node) (textedit.TextRange, bool)
}

// ImportStatement describes one known import usable for splicing. A plain
// statement importing several modules yields one ImportStatement per module,
// all sharing the same Decl.
type ImportStatement struct {
	Decl       Node
	ModuleName string // dotted module path
	IsFrom     bool   // "from m import ..." form
	IsWildcard bool   // "from m import *"
}

// ModuleInfo names the module an import operation targets.
type ModuleInfo struct {
	Name string // dotted module path
}

// Leaf returns the last segment of the module path.
func (m ModuleInfo) Leaf() string {
	return moduleLeaf(m.Name)
}

// ImportName is one symbol to import, optionally aliased.
type ImportName struct {
	Name  string
	Alias string
}

// ImportGroup is a caller-defined ordering bucket used when inserting a
// brand-new import statement.
type ImportGroup int

const (
	GroupFuture ImportGroup = iota
	GroupStdlib
	GroupThirdParty
	GroupLocal
)

func (g ImportGroup) String() string {
	switch g {
	case GroupFuture:
		return "future"
	case GroupStdlib:
		return "stdlib"
	case GroupThirdParty:
		return "third-party"
	case GroupLocal:
		return "local"
	default:
		return "unknown"
	}
}

// RenameOptions marks an AddOrUpdateImport call as an in-place rewrite of one
// existing statement. Statement carries the declaration being modified with
// its current (pre-rename) module name; the caller's existing-imports list
// presents the same declaration under the new module name.
type RenameOptions struct {
	Statement ImportStatement
}

// ImportSynthesizer is the consumed contract for import-text synthesis.
type ImportSynthesizer interface {
	// SpliceEdits returns the edits that make stmt provide the requested
	// names under mod: a differing module path is rewritten and missing
	// names are inserted. The boolean is false when the statement cannot be
	// spliced at all; true with zero edits means the request is already
	// satisfied.
	SpliceEdits(fc *FileContext, stmt ImportStatement, mod ModuleInfo, names []ImportName) ([]textedit.Edit, bool)

	// NewImportEdit returns the literal text and insertion point for a
	// brand-new import statement placed according to group.
	NewImportEdit(fc *FileContext, mod ModuleInfo, group ImportGroup, names []ImportName) textedit.Edit
}

// moduleLeaf returns the last dotted segment of name.
func moduleLeaf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// parentPath returns everything above the last dotted segment.
func parentPath(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}
