package core

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Document is the ordered collection of rows of one file.
type Document struct {
	rows     []*Row
	filename string
	fileType FileType
	dirty    bool

	// contexts[i] is the context left by highlighting row i. Only rows below
	// the highlighted watermark carry current tags and contexts.
	contexts    []HighlightContext
	highlighted int
	query       string

	logger *zap.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for persistence events.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithFileType forces the file type instead of deriving it from the filename.
func WithFileType(ft FileType) Option {
	return func(d *Document) {
		d.fileType = ft
	}
}

// New creates an empty, unnamed document.
func New(opts ...Option) *Document {
	d := &Document{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open reads the file at path into a new document, one row per line.
func Open(path string, opts ...Option) (*Document, error) {
	d := New(append([]Option{WithFileType(FileTypeFromFilename(path))}, opts...)...)
	d.filename = path

	content, err := os.ReadFile(path)
	if err != nil {
		d.logger.Warn("open document", zap.String("path", path), zap.Error(err))
		return nil, &FileError{Op: "open", Path: path, Kind: ErrUnreadable, Err: err}
	}
	if !utf8.Valid(content) {
		d.logger.Warn("open document", zap.String("path", path), zap.Error(ErrInvalidText))
		return nil, &FileError{Op: "open", Path: path, Kind: ErrInvalidText}
	}

	for _, line := range splitLines(string(content)) {
		d.rows = append(d.rows, NewRow(line))
	}

	d.logger.Debug("opened document",
		zap.String("path", path),
		zap.Int("rows", len(d.rows)),
		zap.Int("bytes", len(content)),
		zap.Stringer("filetype", d.fileType),
	)

	return d, nil
}

// splitLines splits on '\n', dropping one trailing '\r' per line and the
// empty line after a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Save writes every row followed by a newline to the document's file. It is
// a no-op when the document has no filename.
func (d *Document) Save() error {
	if d.filename == "" {
		return nil
	}

	n, err := d.writeTo(d.filename)
	if err != nil {
		d.logger.Warn("save document", zap.String("path", d.filename), zap.Error(err))
		return &FileError{Op: "save", Path: d.filename, Kind: ErrUnwritable, Err: err}
	}

	d.dirty = false
	d.logger.Debug("saved document",
		zap.String("path", d.filename),
		zap.Int("rows", len(d.rows)),
		zap.Int("bytes", n),
	)

	return nil
}

func (d *Document) writeTo(path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	w := bufio.NewWriter(f)
	n := 0
	for _, row := range d.rows {
		written, err := w.WriteString(row.content)
		n += written
		if err != nil {
			f.Close()
			return n, err
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return n, err
		}
		n++
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return n, err
	}

	return n, f.Close()
}

// Row returns a read-only view of the row at index. The view reflects later
// edits to the document but cannot make them.
func (d *Document) Row(index int) (RowView, bool) {
	if index < 0 || index >= len(d.rows) {
		return nil, false
	}
	return rowView{row: d.rows[index]}, true
}

// rowView exposes only the read methods of a Row so edits have to go through
// the Document, which tracks dirtiness and highlighting.
type rowView struct {
	row *Row
}

var _ RowView = rowView{}

func (v rowView) Len() int       { return v.row.Len() }
func (v rowView) IsEmpty() bool  { return v.row.IsEmpty() }
func (v rowView) String() string { return v.row.String() }
func (v rowView) Bytes() []byte  { return v.row.Bytes() }
func (v rowView) Tags() []Tag    { return v.row.Tags() }

func (v rowView) Render(start, end int) string {
	return v.row.Render(start, end)
}

func (v rowView) RenderWith(start, end int, palette Palette) string {
	return v.row.RenderWith(start, end, palette)
}

func (v rowView) FindAfter(query string, after int) (int, bool) {
	return v.row.FindAfter(query, after)
}

func (v rowView) RFindBefore(query string, before int) (int, bool) {
	return v.row.RFindBefore(query, before)
}

func (d *Document) Len() int { return len(d.rows) }

// IsEmpty reports whether the document has no rows.
func (d *Document) IsEmpty() bool { return len(d.rows) == 0 }

// IsDirty reports whether the document changed since it was last saved.
func (d *Document) IsDirty() bool { return d.dirty }

func (d *Document) Filename() string { return d.filename }

// SetFilename names the document, typically before the first Save, and
// re-derives the file type from the new name.
func (d *Document) SetFilename(name string) {
	d.filename = name
	if ft := FileTypeFromFilename(name); ft != d.fileType {
		d.fileType = ft
		d.invalidate(0)
	}
}

func (d *Document) FileType() FileType { return d.fileType }

// Options returns the highlighting configuration in effect.
func (d *Document) Options() *HighlightingOptions { return d.fileType.Options() }

// String returns the whole content with rows joined by newlines.
func (d *Document) String() string {
	lines := make([]string, len(d.rows))
	for i, row := range d.rows {
		lines[i] = row.content
	}
	return strings.Join(lines, "\n")
}

// touch records a content change at row y.
func (d *Document) touch(y int) {
	d.dirty = true
	d.invalidate(y)
}

// invalidate drops cached highlighting for row y and every row after it.
func (d *Document) invalidate(y int) {
	if d.highlighted > y {
		d.highlighted = y
	}
}

// Insert puts c at position at. A newline splits the row. Positions below the
// virtual row after the last one are ignored.
func (d *Document) Insert(at Position, c rune) {
	if at.Y < 0 || at.Y > len(d.rows) {
		return
	}
	if c == '\n' {
		d.insertNewline(at)
		return
	}

	if at.Y == len(d.rows) {
		row := NewRow("")
		row.Insert(0, c)
		d.rows = append(d.rows, row)
	} else {
		row := d.rows[at.Y]
		row.Insert(clamp(at.X, 0, row.Len()), c)
	}
	d.touch(at.Y)
}

func (d *Document) insertNewline(at Position) {
	if at.Y == len(d.rows) {
		d.rows = append(d.rows, NewRow(""))
		d.touch(at.Y)
		return
	}

	row := d.rows[at.Y]
	rest := row.Split(clamp(at.X, 0, row.Len()))
	d.rows = slices.Insert(d.rows, at.Y+1, rest)
	d.touch(at.Y)
}

// Delete removes the grapheme at position at. At the end of a row that is not
// the last one, the next row is joined onto it.
func (d *Document) Delete(at Position) {
	if at.Y < 0 || at.Y >= len(d.rows) {
		return
	}

	row := d.rows[at.Y]
	x := clamp(at.X, 0, row.Len())
	switch {
	case x == row.Len() && at.Y < len(d.rows)-1:
		next := d.rows[at.Y+1]
		d.rows = slices.Delete(d.rows, at.Y+1, at.Y+2)
		row.Append(next)
	case x < row.Len():
		row.Delete(x)
	default:
		return
	}
	d.touch(at.Y)
}

// HighlightUntil makes sure every row below limit carries current tags. Rows
// are classified in order, each one starting from the context the previous
// row left behind. Rows at or past limit are left alone.
func (d *Document) HighlightUntil(limit int) {
	limit = min(limit, len(d.rows))
	if limit <= d.highlighted {
		return
	}

	if len(d.contexts) != len(d.rows) {
		d.contexts = slices.Grow(d.contexts[:min(len(d.contexts), len(d.rows))], len(d.rows))
		d.contexts = d.contexts[:len(d.rows)]
	}

	opts := d.Options()
	ctx := HighlightContext{}
	if d.highlighted > 0 {
		ctx = d.contexts[d.highlighted-1]
	}
	for i := d.highlighted; i < limit; i++ {
		ctx = d.rows[i].Highlight(opts, ctx)
		if d.query != "" {
			d.rows[i].HighlightQuery(d.query)
		}
		d.contexts[i] = ctx
	}
	d.highlighted = limit
}

// HighlightQuery overlays search-match tags for query on every highlighted
// row. An empty query removes the overlay. Either way the base classification
// is re-derived on the next HighlightUntil.
func (d *Document) HighlightQuery(query string) {
	if query == d.query {
		return
	}
	d.query = query
	d.invalidate(0)
}

// FindAfter returns the first occurrence of query at or after position after.
func (d *Document) FindAfter(query string, after Position) (Position, bool) {
	if query == "" {
		return Position{}, false
	}
	for y := max(after.Y, 0); y < len(d.rows); y++ {
		start := 0
		if y == after.Y {
			start = after.X
		}
		if x, ok := d.rows[y].FindAfter(query, start); ok {
			return Position{X: x, Y: y}, true
		}
	}
	return Position{}, false
}

// RFindBefore returns the last occurrence of query strictly before position
// before, scanning towards the start of the document.
func (d *Document) RFindBefore(query string, before Position) (Position, bool) {
	if query == "" {
		return Position{}, false
	}
	for y := min(before.Y, len(d.rows)-1); y >= 0; y-- {
		row := d.rows[y]
		end := row.Len()
		if y == before.Y {
			end = before.X
		}
		if x, ok := row.RFindBefore(query, end); ok {
			return Position{X: x, Y: y}, true
		}
	}
	return Position{}, false
}
