package tracker

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/tern-works/refit/internal/logging"
	"github.com/tern-works/refit/internal/textedit"
)

// Tracker accumulates edits and deferred node removals for one logical
// edit-computation session. It is not safe for concurrent use: construct one
// per session, finalize it with GetEdits, and discard it.
type Tracker struct {
	mergeOnlyDuplications bool
	log                   *log.Logger

	fileOrder []string
	edits     map[string][]textedit.Edit

	pending []removalRequest
	removed map[NodeID]*FileContext
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMergeAllOverlaps lets an incoming edit absorb any overlapping pending
// deletion even when the incoming edit is itself a replacement. The default
// policy only merges duplications: deletion-into-deletion and identical
// nested replacements.
func WithMergeAllOverlaps() Option {
	return func(t *Tracker) { t.mergeOnlyDuplications = false }
}

// WithLogger routes the tracker's diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tracker) { t.log = logger }
}

// New returns a fresh Tracker. There is no shared or package-level state.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		mergeOnlyDuplications: true,
		log:                   logging.Default(),
		edits:                 make(map[string][]textedit.Edit),
		removed:               make(map[NodeID]*FileContext),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddEdit queues one edit for filePath, resolving conflicts with the edits
// already queued for that file.
//
// Overlapping pending edits are absorbed when they merely duplicate the
// incoming one: an incoming deletion absorbs overlapping deletions, and an
// incoming replacement absorbs nested edits carrying identical text. The
// absorbed edits are dropped and the incoming edit's range grows to the union
// of theirs; its text always wins. Overlapping edits with differing text are
// deliberately left in place: deletions are idempotent and safe to coalesce,
// but picking one of two conflicting rewrites silently is not.
func (t *Tracker) AddEdit(filePath string, rng textedit.Range, text string) {
	t.appendEdit(textedit.Edit{FilePath: filePath, Range: rng, ReplacementText: text})
}

// AddEditWithTextRange queues an edit addressed by a byte span of fc's
// source. It is a no-op when the span's current text already equals the
// replacement, avoiding degenerate empty edits.
func (t *Tracker) AddEditWithTextRange(fc *FileContext, span textedit.TextRange, text string) {
	if fc.textAt(span) == text {
		return
	}
	t.AddEdit(fc.FilePath, fc.Index.Range(span), text)
}

func (t *Tracker) appendEdit(e textedit.Edit) {
	list, tracked := t.edits[e.FilePath]
	if !tracked {
		t.fileOrder = append(t.fileOrder, e.FilePath)
	}

	rng := e.Range
	kept := make([]textedit.Edit, 0, len(list)+1)
	for _, existing := range list {
		if existing.Range.Intersects(e.Range) && t.absorbs(e, existing) {
			rng = textedit.Cover(rng, existing.Range)
			continue
		}
		kept = append(kept, existing)
	}
	e.Range = rng
	t.edits[e.FilePath] = append(kept, e)
}

// absorbs reports whether the incoming edit may subsume an overlapping
// existing edit under the configured merge policy.
func (t *Tracker) absorbs(incoming, existing textedit.Edit) bool {
	sameNested := existing.ReplacementText == incoming.ReplacementText &&
		textedit.Nested(incoming.Range, existing.Range)
	if t.mergeOnlyDuplications {
		if incoming.IsDeletion() {
			return existing.IsDeletion()
		}
		return sameNested
	}
	return existing.IsDeletion() || sameNested
}

// queuedDeletions returns the pending deletion edits for filePath whose range
// intersects rng.
func (t *Tracker) queuedDeletions(filePath string, rng textedit.Range) []textedit.Edit {
	var out []textedit.Edit
	for _, e := range t.edits[filePath] {
		if e.IsDeletion() && e.Range.Intersects(rng) {
			out = append(out, e)
		}
	}
	return out
}

// dropEdits removes the given edits from filePath's pending list.
func (t *Tracker) dropEdits(filePath string, drop []textedit.Edit) {
	list := t.edits[filePath]
	kept := list[:0]
outer:
	for _, e := range list {
		for _, d := range drop {
			if e.Equal(d) {
				continue outer
			}
		}
		kept = append(kept, e)
	}
	t.edits[filePath] = kept
}

// IsNodeRemoved reports whether the worklist has already fully accounted for
// node (or one of its structurally dependent parts).
func (t *Tracker) IsNodeRemoved(n Node) bool {
	_, ok := t.removed[n.ID()]
	return ok
}

// GetEdits drains the node-removal worklist, materializing every queued
// structural removal, and returns all queued edits in one flat list. File
// order follows first-edit insertion; edits within a file keep their
// post-merge list order. Ordering for application is ApplyEdits' concern.
//
// On cancellation the drain stops and the context error is returned instead
// of a partial edit set.
func (t *Tracker) GetEdits(ctx context.Context) ([]textedit.Edit, error) {
	if err := t.drain(ctx); err != nil {
		return nil, err
	}
	var out []textedit.Edit
	for _, file := range t.fileOrder {
		out = append(out, t.edits[file]...)
	}
	return out, nil
}
