package tracker

import (
	"context"
	"sort"

	"github.com/tern-works/refit/internal/logging"
)

// removalRequest is a deferred instruction to delete one syntax element.
type removalRequest struct {
	node Node
	fc   *FileContext
}

// RemoveNodes enqueues structural node removals for later batch processing.
// Nodes already accounted for are skipped.
func (t *Tracker) RemoveNodes(fc *FileContext, nodes ...Node) {
	for _, n := range nodes {
		if t.IsNodeRemoved(n) {
			continue
		}
		t.pending = append(t.pending, removalRequest{node: n, fc: fc})
	}
}

// DeleteImportName queues removal of one imported name. Separator cleanup
// and whole-statement collapse happen when the worklist drains, so that
// removals of sibling names queued later can be batched with this one.
func (t *Tracker) DeleteImportName(fc *FileContext, name Node) {
	t.RemoveNodes(fc, name)
}

// drain processes the removal worklist until empty. Each iteration either
// batches every pending removal belonging to one import declaration (success
// path) or, when the most recent request cannot be understood, forces a raw
// deletion of exactly that node's span (default path). Both shrink the
// stack, so the loop terminates in O(stack size) iterations.
func (t *Tracker) drain(ctx context.Context) error {
	for len(t.pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := t.pending[len(t.pending)-1]
		if t.removeImportName(top) {
			continue
		}
		// Safety net for node kinds the batching logic does not understand.
		// Diagnosable gap, not silent success.
		t.log.Warn("falling back to raw node deletion",
			logging.FieldPath, top.fc.FilePath,
			logging.FieldKind, top.node.Kind().String())
		t.pending = t.pending[:len(t.pending)-1]
		t.markRemoved(top.node, top.fc)
		t.AddEditWithTextRange(top.fc, top.node.Span(), "")
	}
	return nil
}

// removeImportName handles the peeked request as an imported-name removal.
// It scans the entire pending stack for every removal belonging to the same
// import declaration and resolves them in one batch: the whole statement is
// deleted when every declared name is going away, otherwise the syntax layer
// supplies minimal per-name deletion spans. Returns false when the request
// cannot be handled this way.
func (t *Tracker) removeImportName(req removalRequest) bool {
	if req.node.Kind() != KindName {
		return false
	}
	decl, ok := req.fc.Syntax.EnclosingImport(req.node)
	if !ok {
		return false
	}
	declared := req.fc.Syntax.DeclaredNames(decl)
	if len(declared) == 0 {
		return false
	}

	declaredAt := make(map[NodeID]int, len(declared))
	for i, n := range declared {
		declaredAt[n.ID()] = i
	}

	var batch []removalRequest
	remaining := make([]removalRequest, 0, len(t.pending))
	indexSet := make(map[int]struct{})
	for _, p := range t.pending {
		i, member := declaredAt[p.node.ID()]
		if !member {
			remaining = append(remaining, p)
			continue
		}
		batch = append(batch, p)
		indexSet[i] = struct{}{}
	}
	if len(batch) == 0 {
		// The peeked request did not map into its own declaration's names;
		// contradictory, leave it for the default path.
		return false
	}

	if len(indexSet) == len(declared) {
		// Every declared name is being removed: collapse the whole
		// statement, terminator and leading trivia included.
		t.AddEditWithTextRange(req.fc, req.fc.Syntax.StatementSpan(decl), "")
	} else {
		indexes := make([]int, 0, len(indexSet))
		for i := range indexSet {
			indexes = append(indexes, i)
		}
		sort.Ints(indexes)
		for _, span := range req.fc.Syntax.NameDeletionSpans(decl, indexes) {
			t.AddEditWithTextRange(req.fc, span, "")
		}
	}

	for _, p := range batch {
		t.markRemoved(p.node, p.fc)
	}
	t.pending = remaining
	return true
}

// markRemoved records n and its structurally dependent sub-parts (alias,
// dotted-name segments) as fully accounted for. Entries are never removed.
func (t *Tracker) markRemoved(n Node, fc *FileContext) {
	t.removed[n.ID()] = fc
	for _, dep := range fc.Syntax.DependentParts(n) {
		t.removed[dep.ID()] = fc
	}
}
