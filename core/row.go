package core

import (
	"slices"
	"strings"

	"github.com/ionut-t/hecto/internal/grapheme"
)

// Row is a single line of text addressed by grapheme cluster.
type Row struct {
	content string
	length  int   // cached grapheme count of content
	tags    []Tag // one per grapheme
}

var _ RowView = (*Row)(nil)

// NewRow creates a row holding text, which must not contain a newline.
func NewRow(text string) *Row {
	r := &Row{content: text}
	r.updateLen()
	r.fitTags()
	return r
}

func (r *Row) Len() int { return r.length }

func (r *Row) IsEmpty() bool { return r.length == 0 }

// String returns the raw content of the row.
func (r *Row) String() string { return r.content }

func (r *Row) Bytes() []byte { return []byte(r.content) }

// Tags returns a copy of the classification of every grapheme.
func (r *Row) Tags() []Tag { return slices.Clone(r.tags) }

func (r *Row) updateLen() {
	r.length = grapheme.Count(r.content)
}

// fitTags keeps the tag array the same length as the content. Edits that
// merge clusters (a combining mark typed after a letter) shrink the row.
func (r *Row) fitTags() {
	switch {
	case len(r.tags) > r.length:
		r.tags = r.tags[:r.length]
	case len(r.tags) < r.length:
		r.tags = append(r.tags, make([]Tag, r.length-len(r.tags))...)
	}
}

// Insert puts c before the grapheme at index at, or appends it when at is at
// or past the end of the row.
func (r *Row) Insert(at int, c rune) {
	at = max(at, 0)
	if at >= r.length {
		r.content += string(c)
		r.tags = append(r.tags, TagNone)
	} else {
		offset := grapheme.ByteOffset(r.content, at)
		r.content = r.content[:offset] + string(c) + r.content[offset:]
		r.tags = slices.Insert(r.tags, at, TagNone)
	}
	r.updateLen()
	r.fitTags()
}

// Delete removes the grapheme at index at. Out of range indices are ignored.
func (r *Row) Delete(at int) {
	if at < 0 || at >= r.length {
		return
	}
	from := grapheme.ByteOffset(r.content, at)
	to := grapheme.ByteOffset(r.content, at+1)
	r.content = r.content[:from] + r.content[to:]
	r.tags = slices.Delete(r.tags, at, at+1)
	r.updateLen()
	r.fitTags()
}

// Append concatenates other onto r. other is left untouched.
func (r *Row) Append(other *Row) {
	r.content += other.content
	r.tags = append(r.tags, other.tags...)
	r.updateLen()
	r.fitTags()
}

// Split truncates r to its first at graphemes and returns the remainder as a
// new row.
func (r *Row) Split(at int) *Row {
	at = clamp(at, 0, r.length)
	offset := grapheme.ByteOffset(r.content, at)

	rest := &Row{content: r.content[offset:]}
	rest.updateLen()
	if at < len(r.tags) {
		rest.tags = slices.Clone(r.tags[at:])
	}
	rest.fitTags()

	r.content = r.content[:offset]
	r.updateLen()
	r.fitTags()

	return rest
}

// Render returns graphemes [start, end) colored with DefaultPalette.
func (r *Row) Render(start, end int) string {
	return r.RenderWith(start, end, DefaultPalette)
}

// RenderWith returns graphemes [start, end) of the row. A color marker is
// written whenever the tag changes and the span is closed with ResetMarker.
// Tabs render as a single space.
func (r *Row) RenderWith(start, end int, palette Palette) string {
	end = clamp(end, 0, r.length)
	start = clamp(start, 0, end)
	if start == end {
		return ""
	}

	var sb strings.Builder
	current := TagNone
	for i, g := range grapheme.Split(r.content)[start:end] {
		if t := r.tagAt(start + i); t != current {
			sb.WriteString(palette.Marker(t))
			current = t
		}
		if g == "\t" {
			g = " "
		}
		sb.WriteString(g)
	}
	sb.WriteString(ResetMarker)

	return sb.String()
}

func (r *Row) tagAt(i int) Tag {
	if i < len(r.tags) {
		return r.tags[i]
	}
	return TagNone
}

// FindAfter returns the grapheme index of the first occurrence of query that
// starts at or after after.
func (r *Row) FindAfter(query string, after int) (int, bool) {
	start, _, ok := r.find(query, after)
	return start, ok
}

// find returns the grapheme span [start, end) of the first occurrence of
// query at or after after. Matches must begin and end on grapheme boundaries.
func (r *Row) find(query string, after int) (int, int, bool) {
	after = max(after, 0)
	if query == "" || after >= r.length {
		return 0, 0, false
	}

	offsets := grapheme.Offsets(r.content)
	from := offsets[after]
	for from <= len(r.content) {
		idx := strings.Index(r.content[from:], query)
		if idx < 0 {
			break
		}
		s := from + idx
		if start, end, ok := spanOf(offsets, len(r.content), s, s+len(query)); ok {
			return start, end, true
		}
		from = s + 1
	}

	return 0, 0, false
}

// RFindBefore returns the grapheme index of the last occurrence of query that
// lies within the first before graphemes of the row.
func (r *Row) RFindBefore(query string, before int) (int, bool) {
	if query == "" || before <= 0 {
		return 0, false
	}

	offsets := grapheme.Offsets(r.content)
	limit := len(r.content)
	if before < r.length {
		limit = offsets[before]
	}

	to := limit
	for to >= len(query) {
		idx := strings.LastIndex(r.content[:to], query)
		if idx < 0 {
			break
		}
		if start, _, ok := spanOf(offsets, limit, idx, idx+len(query)); ok {
			return start, true
		}
		to = idx + len(query) - 1
	}

	return 0, false
}

// spanOf converts the byte range [from, to) into grapheme indices when both
// ends fall on cluster boundaries. limit is the byte length of the searched text.
func spanOf(offsets []int, limit, from, to int) (int, int, bool) {
	start, ok := slices.BinarySearch(offsets, from)
	if !ok {
		return 0, 0, false
	}
	if to == limit {
		end, found := slices.BinarySearch(offsets, to)
		if !found {
			end = len(offsets)
		}
		return start, end, true
	}
	end, ok := slices.BinarySearch(offsets, to)
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// Highlight classifies every grapheme of the row and returns the context the
// next row starts from.
func (r *Row) Highlight(opts *HighlightingOptions, in HighlightContext) HighlightContext {
	if opts == nil {
		opts = PlainText.Options()
	}
	h := &highlighter{
		opts:      opts,
		graphemes: grapheme.Split(r.content),
		tags:      make([]Tag, r.length),
	}
	out := h.run(in)
	r.tags = h.tags
	r.fitTags()
	return out
}

// HighlightQuery tags every occurrence of query as a search match. The tags it
// overwrites are lost; call Highlight again to get them back.
func (r *Row) HighlightQuery(query string) {
	r.fitTags()
	at := 0
	for {
		start, end, ok := r.find(query, at)
		if !ok {
			return
		}
		for i := start; i < end; i++ {
			r.tags[i] = TagSearchMatch
		}
		at = start + 1
	}
}
