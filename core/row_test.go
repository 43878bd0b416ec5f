package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_InsertAppendsAtEnd(t *testing.T) {
	r := NewRow("")
	r.Insert(0, 'a')
	r.Insert(1, 'b')
	r.Insert(2, 'c')

	assert.Equal(t, "abc", r.String())
	assert.Equal(t, 3, r.Len())
	assert.Len(t, r.Tags(), 3)
}

func TestRow_InsertInMiddle(t *testing.T) {
	r := NewRow("héllo")
	r.Insert(2, 'X')

	assert.Equal(t, "héXllo", r.String())
	assert.Equal(t, 6, r.Len())
}

func TestRow_InsertPastEndAppends(t *testing.T) {
	r := NewRow("ab")
	r.Insert(10, 'c')

	assert.Equal(t, "abc", r.String())
}

func TestRow_DeleteOutOfRangeIsNoop(t *testing.T) {
	r := NewRow("ab")
	r.Delete(2)
	r.Delete(-1)

	assert.Equal(t, "ab", r.String())
	assert.Equal(t, 2, r.Len())
}

func TestRow_DeleteRemovesWholeCluster(t *testing.T) {
	r := NewRow("ae\u0301b")
	require.Equal(t, 3, r.Len())

	r.Delete(1)
	assert.Equal(t, "ab", r.String())
	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.Tags(), 2)
}

func TestRow_InsertCombiningMarkMergesCluster(t *testing.T) {
	r := NewRow("ab")
	r.Insert(1, '\u0301')

	assert.Equal(t, "a\u0301b", r.String())
	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.Tags(), 2)
}

func TestRow_Split(t *testing.T) {
	r := NewRow("hello")
	rest := r.Split(2)

	assert.Equal(t, "he", r.String())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "llo", rest.String())
	assert.Equal(t, 3, rest.Len())
}

func TestRow_SplitPastEnd(t *testing.T) {
	r := NewRow("hi")
	rest := r.Split(5)

	assert.Equal(t, "hi", r.String())
	assert.True(t, rest.IsEmpty())
}

func TestRow_SplitThenAppendRestores(t *testing.T) {
	text := "a\tée\u0301😀 x"
	n := NewRow(text).Len()

	for at := 0; at <= n; at++ {
		r := NewRow(text)
		rest := r.Split(at)
		r.Append(rest)

		assert.Equal(t, text, r.String(), "split at %d", at)
		assert.Equal(t, n, r.Len(), "split at %d", at)
		assert.Len(t, r.Tags(), n, "split at %d", at)
	}
}

func TestRow_AppendLeavesOtherUntouched(t *testing.T) {
	r := NewRow("foo")
	other := NewRow("bar")
	r.Append(other)

	assert.Equal(t, "foobar", r.String())
	assert.Equal(t, "bar", other.String())
	assert.Equal(t, 3, other.Len())
}

func TestRow_InsertThenDeleteRestores(t *testing.T) {
	text := "añb😀c"
	n := NewRow(text).Len()

	for at := 0; at <= n; at++ {
		r := NewRow(text)
		r.Insert(at, 'Z')
		r.Delete(at)

		assert.Equal(t, text, r.String(), "at %d", at)
		assert.Equal(t, n, r.Len(), "at %d", at)
	}
}

func TestRow_TagsTrackLengthAfterHighlight(t *testing.T) {
	r := NewRow("let x = 1;")
	opts := Rust.Options()

	r.Highlight(opts, HighlightContext{})
	r.Insert(3, 'y')
	assert.Len(t, r.Tags(), r.Len())

	r.Delete(0)
	assert.Len(t, r.Tags(), r.Len())

	rest := r.Split(4)
	assert.Len(t, r.Tags(), r.Len())
	assert.Len(t, rest.Tags(), rest.Len())

	r.Highlight(opts, HighlightContext{})
	assert.Len(t, r.Tags(), r.Len())
}

func TestRow_RenderPlain(t *testing.T) {
	r := NewRow("a\tb")

	assert.Equal(t, "a b"+ResetMarker, r.Render(0, 10))
	assert.Equal(t, " b"+ResetMarker, r.Render(1, 3))
}

func TestRow_RenderClamps(t *testing.T) {
	r := NewRow("hello")

	assert.Equal(t, "", r.Render(4, 2))
	assert.Equal(t, "", r.Render(9, 12))
	assert.Equal(t, "lo"+ResetMarker, r.Render(3, 99))
	assert.Equal(t, "", NewRow("").Render(0, 10))
}

func TestRow_RenderGraphemeWindow(t *testing.T) {
	r := NewRow("😀e\u0301x")

	assert.Equal(t, "e\u0301"+ResetMarker, r.Render(1, 2))
}

func TestRow_RenderEmitsMarkersOnTagChange(t *testing.T) {
	r := NewRow("fn main()")
	r.Highlight(NewHighlightingOptions(NoCategories, []string{"fn"}, nil), HighlightContext{})

	want := "\x1b[35m" + "fn" + "\x1b[39m" + " main()" + ResetMarker
	assert.Equal(t, want, r.Render(0, r.Len()))

	// Starting inside the keyword still opens with its color.
	assert.Equal(t, "\x1b[35mn\x1b[39m m"+ResetMarker, r.Render(1, 4))
}

func TestRow_RenderWithPalette(t *testing.T) {
	r := NewRow("12 ab")
	r.Highlight(NewHighlightingOptions(HighlightNumbers, nil, nil), HighlightContext{})

	palette := Palette{}
	got := r.RenderWith(0, r.Len(), palette)
	assert.Equal(t, defaultForeground+"12"+defaultForeground+" ab"+ResetMarker, got)
}

func TestRow_FindAfter(t *testing.T) {
	r := NewRow("hello")

	cases := []struct {
		name  string
		query string
		after int
		want  int
		found bool
	}{
		{"match", "lo", 0, 3, true},
		{"match at start offset", "l", 3, 3, true},
		{"after match", "he", 1, 0, false},
		{"after at length", "o", 5, 0, false},
		{"empty query", "", 0, 0, false},
		{"no match", "xyz", 0, 0, false},
		{"negative after", "h", -3, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.FindAfter(tc.query, tc.after)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestRow_FindAfterRespectsGraphemeBoundaries(t *testing.T) {
	r := NewRow("e\u0301x e")

	got, ok := r.FindAfter("e", 0)
	require.True(t, ok)
	assert.Equal(t, 3, got)

	got, ok = r.FindAfter("x", 0)
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestRow_RFindBefore(t *testing.T) {
	r := NewRow("hello hello")

	cases := []struct {
		name   string
		query  string
		before int
		want   int
		found  bool
	}{
		{"whole row", "hello", 11, 6, true},
		{"before past end", "hello", 100, 6, true},
		{"prefix with match", "hello", 6, 0, true},
		{"match ends at limit", "hello", 5, 0, true},
		{"match cut by limit", "hello", 4, 0, false},
		{"before zero", "h", 0, 0, false},
		{"empty query", "", 5, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.RFindBefore(tc.query, tc.before)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestRow_RFindBeforeSkipsSplitClusters(t *testing.T) {
	r := NewRow("e xe\u0301")

	got, ok := r.RFindBefore("e", 10)
	require.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestRow_HighlightQuery(t *testing.T) {
	r := NewRow("abcabc")
	r.HighlightQuery("bc")

	assert.Equal(t, ".mm.mm", tagString(r.Tags()))
}

func TestRow_HighlightQueryOverwritesUntilRehighlighted(t *testing.T) {
	opts := NewHighlightingOptions(NoCategories, []string{"fn"}, nil)
	r := NewRow("fn x")
	r.Highlight(opts, HighlightContext{})
	r.HighlightQuery("n x")

	assert.Equal(t, "kmmm", tagString(r.Tags()))

	r.Highlight(opts, HighlightContext{})
	assert.Equal(t, "kk..", tagString(r.Tags()))
}
