// Package textedit provides the range algebra, line indexing, and batch
// application primitives used by the edit tracker. Everything in this package
// is a pure function over immutable values.
package textedit

// TextRange is a half-open byte interval [Start, Start+Length) into a file's
// source text.
type TextRange struct {
	Start  int
	Length int
}

// NewTextRange builds a TextRange from a start offset and a length.
func NewTextRange(start, length int) TextRange {
	return TextRange{Start: start, Length: length}
}

// SpanBetween builds a TextRange covering [start, end).
func SpanBetween(start, end int) TextRange {
	return TextRange{Start: start, Length: end - start}
}

// End returns the exclusive end offset.
func (r TextRange) End() int {
	return r.Start + r.Length
}

// Empty reports whether the range covers no bytes.
func (r TextRange) Empty() bool {
	return r.Length <= 0
}

// Intersects reports whether r and o share at least one byte. Boundary
// touching does not count; only positive-length overlap does, so zero-length
// ranges never intersect anything.
func (r TextRange) Intersects(o TextRange) bool {
	return max(r.Start, o.Start) < min(r.End(), o.End())
}

// Contains reports whether o lies entirely within r.
func (r TextRange) Contains(o TextRange) bool {
	return r.Start <= o.Start && o.End() <= r.End()
}

// Union returns the smallest TextRange covering every given range: minimum
// start, maximum end. It is meant for merging overlapping ranges, not for
// joining arbitrary disjoint pieces.
func Union(first TextRange, rest ...TextRange) TextRange {
	start, end := first.Start, first.End()
	for _, r := range rest {
		start = min(start, r.Start)
		end = max(end, r.End())
	}
	return SpanBetween(start, end)
}

// Position is a zero-based line/character location in a file.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Compare returns -1, 0, or +1 as p sorts before, equal to, or after o.
func (p Position) Compare(o Position) int {
	if p.Line != o.Line {
		if p.Line < o.Line {
			return -1
		}
		return 1
	}
	switch {
	case p.Character < o.Character:
		return -1
	case p.Character > o.Character:
		return 1
	}
	return 0
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	return p.Compare(o) < 0
}

// minPos and maxPos pick the earlier/later of two positions.
func minPos(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

func maxPos(a, b Position) Position {
	if a.Before(b) {
		return b
	}
	return a
}

// Range is a half-open line/character interval [Start, End).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Intersects reports whether r and o share a positive-length overlap.
// Touching boundaries do not intersect, and an empty range (an insertion
// point) never intersects anything.
func (r Range) Intersects(o Range) bool {
	lo := maxPos(r.Start, o.Start)
	hi := minPos(r.End, o.End)
	return lo.Before(hi)
}

// Contains reports whether o lies entirely within r.
func (r Range) Contains(o Range) bool {
	return !o.Start.Before(r.Start) && !r.End.Before(o.End)
}

// Nested reports whether either range fully contains the other.
func Nested(a, b Range) bool {
	return a.Contains(b) || b.Contains(a)
}

// Cover returns the smallest Range spanning every given range.
func Cover(first Range, rest ...Range) Range {
	out := first
	for _, r := range rest {
		out.Start = minPos(out.Start, r.Start)
		out.End = maxPos(out.End, r.End)
	}
	return out
}
