package textedit

import "sort"

// offsetEdit is an Edit resolved to absolute byte offsets.
type offsetEdit struct {
	start, end int
	text       string
}

// ApplyEdits applies a batch of edits to text and returns the rewritten
// buffer. Ranges are resolved through index; a range that does not map into
// the text degrades to an empty insertion point at end-of-text so that
// application stays total.
//
// Edits are applied back-to-front in descending start-offset order (ties
// broken by descending end offset, so the wider edit at a shared start goes
// first). Every splice therefore happens strictly to the right of the edits
// not yet processed, and their offsets stay valid. Exact duplicates are not
// deduplicated here: producing a non-contradictory edit set is the edit
// store's job. Overlapping edits carrying different text yield corrupted
// output, not a crash: when an earlier splice has shortened the buffer past
// a pending edit's range, that range is clamped to the current buffer
// length.
func ApplyEdits(text string, index *LineIndex, edits []Edit) string {
	resolved := make([]offsetEdit, 0, len(edits))
	for _, e := range edits {
		tr, ok := index.Span(e.Range)
		if !ok {
			tr = NewTextRange(len(text), 0)
		}
		resolved = append(resolved, offsetEdit{start: tr.Start, end: tr.End(), text: e.ReplacementText})
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].start != resolved[j].start {
			return resolved[i].start > resolved[j].start
		}
		return resolved[i].end > resolved[j].end
	})

	out := text
	for _, e := range resolved {
		start, end := e.start, e.end
		if start > len(out) {
			start = len(out)
		}
		if end > len(out) {
			end = len(out)
		}
		out = out[:start] + e.text + out[end:]
	}
	return out
}
