package textedit

import "sort"

// LineIndex maps between byte offsets and line/character positions for one
// version of a file's text. It records the starting offset of every line.
type LineIndex struct {
	starts []int // starts[i] is the byte offset where line i begins
	length int   // total text length in bytes
}

// NewLineIndex builds a LineIndex for text. Lines are separated by '\n';
// the index treats '\r' as ordinary line content.
func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, length: len(text)}
}

// Len returns the length in bytes of the indexed text.
func (ix *LineIndex) Len() int {
	return ix.length
}

// LineCount returns the number of lines, counting a trailing newline as
// starting one more (possibly empty) line.
func (ix *LineIndex) LineCount() int {
	return len(ix.starts)
}

// LineStart returns the byte offset where line begins. Lines past the end
// clamp to the text length.
func (ix *LineIndex) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(ix.starts) {
		return ix.length
	}
	return ix.starts[line]
}

// lineEnd returns the exclusive end offset of line including its terminator.
func (ix *LineIndex) lineEnd(line int) int {
	return ix.LineStart(line + 1)
}

// Offset converts a position to a byte offset. The second result is false
// when the position does not map into the indexed text.
func (ix *LineIndex) Offset(p Position) (int, bool) {
	if p.Line < 0 || p.Character < 0 || p.Line >= len(ix.starts) {
		return 0, false
	}
	off := ix.starts[p.Line] + p.Character
	if off > ix.lineEnd(p.Line) {
		return 0, false
	}
	return off, true
}

// Position converts a byte offset to a line/character position. Offsets
// outside the text clamp to its boundaries.
func (ix *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > ix.length {
		offset = ix.length
	}
	// First line starting after offset; the line containing it is one back.
	line := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1
	return Position{Line: line, Character: offset - ix.starts[line]}
}

// Span converts a line/character range to a byte interval. The second result
// is false when either endpoint does not map into the text.
func (ix *LineIndex) Span(r Range) (TextRange, bool) {
	start, ok := ix.Offset(r.Start)
	if !ok {
		return TextRange{}, false
	}
	end, ok := ix.Offset(r.End)
	if !ok || end < start {
		return TextRange{}, false
	}
	return SpanBetween(start, end), true
}

// Range converts a byte interval to a line/character range.
func (ix *LineIndex) Range(tr TextRange) Range {
	return Range{Start: ix.Position(tr.Start), End: ix.Position(tr.End())}
}
