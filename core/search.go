package core

// Direction is the way a search moves from its current match.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// SearchOptions configures an incremental search.
type SearchOptions struct {
	Wrap bool // continue from the other end of the document when nothing is found
}

// Search is the state of one incremental search session. The input loop
// feeds it query edits and Next/Prev requests and calls Step after each one.
type Search struct {
	query     string
	direction Direction
	origin    Position
	match     Position
	matched   bool
	opts      SearchOptions
}

// NewSearch starts a search session at the cursor position origin.
func NewSearch(origin Position, opts SearchOptions) *Search {
	return &Search{origin: origin, opts: opts}
}

// SetQuery replaces the query. The next Step searches forward from the origin,
// so a match under the cursor is found again as the query grows.
func (s *Search) SetQuery(query string) {
	s.query = query
	s.direction = Forward
	s.matched = false
}

// Next makes the next Step look past the current match.
func (s *Search) Next() { s.direction = Forward }

// Prev makes the next Step look before the current match.
func (s *Search) Prev() { s.direction = Backward }

func (s *Search) Query() string { return s.query }

func (s *Search) Direction() Direction { return s.direction }

// Origin is where the cursor was when the search started.
func (s *Search) Origin() Position { return s.origin }

// Match returns the current match, if any.
func (s *Search) Match() (Position, bool) { return s.match, s.matched }

// Step runs one search in doc and records the match it finds.
func (s *Search) Step(doc *Document) (Position, bool) {
	if s.query == "" {
		s.matched = false
		return Position{}, false
	}

	from := s.origin
	if s.matched {
		from = s.match
	}

	var pos Position
	var ok bool
	if s.direction == Forward {
		if s.matched {
			from.X++
		}
		pos, ok = doc.FindAfter(s.query, from)
		if !ok && s.opts.Wrap {
			pos, ok = doc.FindAfter(s.query, Position{})
		}
	} else {
		pos, ok = doc.RFindBefore(s.query, from)
		if !ok && s.opts.Wrap {
			pos, ok = doc.RFindBefore(s.query, Position{Y: doc.Len()})
		}
	}

	if ok {
		s.match = pos
		s.matched = true
	}
	return pos, ok
}
