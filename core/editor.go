package core

// Position is a location in a document. X is a grapheme column, Y a row index.
// Y == Document.Len() addresses the virtual row after the last one.
type Position struct {
	X int
	Y int
}

// RowView is the read-only access the document hands out for its rows.
type RowView interface {
	Len() int
	IsEmpty() bool
	String() string
	Bytes() []byte
	Tags() []Tag
	Render(start, end int) string
	RenderWith(start, end int, palette Palette) string
	FindAfter(query string, after int) (int, bool)
	RFindBefore(query string, before int) (int, bool)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
