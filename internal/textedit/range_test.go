package textedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRangeIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b TextRange
		want bool
	}{
		{"overlapping", SpanBetween(0, 10), SpanBetween(5, 15), true},
		{"nested", SpanBetween(0, 10), SpanBetween(2, 5), true},
		{"identical", SpanBetween(3, 7), SpanBetween(3, 7), true},
		{"touching boundaries", SpanBetween(0, 5), SpanBetween(5, 10), false},
		{"disjoint", SpanBetween(0, 3), SpanBetween(7, 9), false},
		{"zero-length inside", SpanBetween(0, 10), SpanBetween(5, 5), false},
		{"both zero-length", SpanBetween(5, 5), SpanBetween(5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a), "intersection must be symmetric")
		})
	}
}

func TestTextRangeContains(t *testing.T) {
	outer := SpanBetween(2, 10)
	assert.True(t, outer.Contains(SpanBetween(2, 10)))
	assert.True(t, outer.Contains(SpanBetween(4, 6)))
	assert.False(t, outer.Contains(SpanBetween(0, 5)))
	assert.False(t, outer.Contains(SpanBetween(8, 12)))
}

func TestTextRangeUnion(t *testing.T) {
	got := Union(SpanBetween(5, 8), SpanBetween(2, 6), SpanBetween(7, 12))
	assert.Equal(t, SpanBetween(2, 12), got)
}

func TestPositionCompare(t *testing.T) {
	assert.Equal(t, -1, Position{Line: 1, Character: 9}.Compare(Position{Line: 2, Character: 0}))
	assert.Equal(t, 1, Position{Line: 2, Character: 1}.Compare(Position{Line: 2, Character: 0}))
	assert.Equal(t, 0, Position{Line: 2, Character: 1}.Compare(Position{Line: 2, Character: 1}))
}

func TestRangeIntersects(t *testing.T) {
	mk := func(sl, sc, el, ec int) Range {
		return Range{Start: Position{Line: sl, Character: sc}, End: Position{Line: el, Character: ec}}
	}
	assert.True(t, mk(0, 0, 0, 10).Intersects(mk(0, 5, 0, 12)))
	assert.True(t, mk(0, 0, 2, 0).Intersects(mk(1, 3, 1, 8)))
	assert.False(t, mk(0, 0, 0, 5).Intersects(mk(0, 5, 0, 9)), "touching boundaries do not intersect")
	// An insertion point never intersects, even inside another range.
	assert.False(t, mk(0, 0, 0, 10).Intersects(mk(0, 4, 0, 4)))
}

func TestRangeCover(t *testing.T) {
	mk := func(sl, sc, el, ec int) Range {
		return Range{Start: Position{Line: sl, Character: sc}, End: Position{Line: el, Character: ec}}
	}
	got := Cover(mk(1, 4, 1, 9), mk(0, 2, 1, 5), mk(1, 8, 3, 0))
	assert.Equal(t, mk(0, 2, 3, 0), got)
}
