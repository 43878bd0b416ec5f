package core

import (
	"github.com/muesli/termenv"
)

// Tag classifies a single grapheme of a row.
type Tag uint8

const (
	TagNone Tag = iota
	TagNumber
	TagSearchMatch // Search results
	TagString
	TagCharacter
	TagComment
	TagMultilineComment
	TagKeyword
	TagDataType
	TagPunctuation
)

var tagNames = [...]string{
	TagNone:             "none",
	TagNumber:           "number",
	TagSearchMatch:      "search-match",
	TagString:           "string",
	TagCharacter:        "character",
	TagComment:          "comment",
	TagMultilineComment: "multiline-comment",
	TagKeyword:          "keyword",
	TagDataType:         "data-type",
	TagPunctuation:      "punctuation",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// HighlightContext is the state carried from one row's classification into the next.
type HighlightContext struct {
	InMultilineComment bool
}

// Palette maps tags to terminal colors. Tags without an entry render in the
// terminal's default foreground.
type Palette map[Tag]termenv.Color

// DefaultPalette uses the 16 basic ANSI colors so it works on any color terminal.
var DefaultPalette = Palette{
	TagNumber:           termenv.ANSIRed,
	TagSearchMatch:      termenv.ANSIBlue,
	TagString:           termenv.ANSIGreen,
	TagCharacter:        termenv.ANSIBrightBlue,
	TagComment:          termenv.ANSIBrightBlack,
	TagMultilineComment: termenv.ANSIBrightBlack,
	TagKeyword:          termenv.ANSIMagenta,
	TagDataType:         termenv.ANSIBrightMagenta,
	TagPunctuation:      termenv.ANSIYellow,
}

const defaultForeground = termenv.CSI + "39m"

// ResetMarker closes every rendered span.
const ResetMarker = termenv.CSI + termenv.ResetSeq + "m"

// Marker returns the escape sequence switching the foreground to the color of t.
func (p Palette) Marker(t Tag) string {
	c, ok := p[t]
	if !ok || c == nil {
		return defaultForeground
	}
	seq := c.Sequence(false)
	if seq == "" {
		return defaultForeground
	}
	return termenv.CSI + seq + "m"
}

// match is the outcome of a keyword or data-type lookup at one position.
type match struct {
	ok     bool
	length int
}

// isSeparator reports whether g delimits words: ASCII whitespace or ASCII
// punctuation other than '_'.
func isSeparator(g string) bool {
	if len(g) != 1 {
		return false
	}
	c := g[0]
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	case '_':
		return false
	}
	return isASCIIPunct(c)
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

func isDigit(g string) bool {
	return len(g) == 1 && g[0] >= '0' && g[0] <= '9'
}

// highlighter holds the per-call state of one classification pass over a row.
type highlighter struct {
	opts      *HighlightingOptions
	graphemes []string
	tags      []Tag

	inString  bool
	inComment bool
	isEscaped bool
	prevIsSep bool
}

func (h *highlighter) at(i int) string {
	if i < 0 || i >= len(h.graphemes) {
		return ""
	}
	return h.graphemes[i]
}

func (h *highlighter) fill(from, n int, t Tag) {
	for j := from; j < from+n && j < len(h.tags); j++ {
		h.tags[j] = t
	}
}

func (h *highlighter) prevTag(i int) Tag {
	if i == 0 {
		return TagNone
	}
	return h.tags[i-1]
}

// run classifies every grapheme and returns the context for the next row.
func (h *highlighter) run(in HighlightContext) HighlightContext {
	h.prevIsSep = true
	h.inComment = in.InMultilineComment && h.opts.MultilineComments()

	i := 0
	for i < len(h.graphemes) {
		n := h.step(i)
		h.prevIsSep = isSeparator(h.graphemes[i+n-1])
		i += n
	}

	return HighlightContext{InMultilineComment: h.inComment}
}

// step classifies the grapheme at i, and possibly the ones following it, and
// returns how many graphemes it consumed.
func (h *highlighter) step(i int) int {
	g := h.graphemes[i]
	opts := h.opts

	if opts.Comments() && !h.inString && !h.inComment && g == "/" && h.at(i+1) == "/" {
		n := len(h.graphemes) - i
		h.fill(i, n, TagComment)
		return n
	}

	if opts.MultilineComments() && !h.inString {
		// An escape never reaches across a comment delimiter.
		if h.inComment {
			h.tags[i] = TagMultilineComment
			h.isEscaped = false
			if g == "*" && h.at(i+1) == "/" {
				h.tags[i+1] = TagMultilineComment
				h.inComment = false
				return 2
			}
			return 1
		}
		if g == "/" && h.at(i+1) == "*" {
			h.fill(i, 2, TagMultilineComment)
			h.inComment = true
			h.isEscaped = false
			return 2
		}
	}

	if opts.Numbers() && !h.inString {
		numeric := isDigit(g) || (g == "." && isDigit(h.at(i+1)))
		if numeric && (h.prevIsSep || h.prevTag(i) == TagNumber) {
			h.tags[i] = TagNumber
			h.isEscaped = false
			return 1
		}
	}

	if opts.Characters() && !h.inString && !h.isEscaped && g == "'" {
		if n := h.characterLiteral(i); n > 0 {
			h.fill(i, n, TagCharacter)
			return n
		}
	}

	if opts.Strings() {
		if h.inString {
			h.tags[i] = TagString
			switch {
			case h.isEscaped:
				h.isEscaped = false
			case g == `\`:
				h.isEscaped = true
			case g == `"`:
				h.inString = false
			}
			return 1
		}
		if g == `"` && !h.isEscaped {
			h.tags[i] = TagString
			h.inString = true
			return 1
		}
	}

	if h.prevIsSep {
		if m := h.matchWord(i, opts.keywordGraphemes); m.ok {
			h.fill(i, m.length, TagKeyword)
			h.isEscaped = false
			return m.length
		}
		if m := h.matchWord(i, opts.dataTypeGraphemes); m.ok {
			h.fill(i, m.length, TagDataType)
			h.isEscaped = false
			return m.length
		}
	}

	if opts.Punctuation() && len(g) == 1 && g != "_" && isASCIIPunct(g[0]) {
		h.tags[i] = TagPunctuation
	} else {
		h.tags[i] = TagNone
	}
	h.isEscaped = g == `\` && !h.isEscaped
	return 1
}

// characterLiteral returns the length of a 'x' or '\x' literal starting at i,
// or 0 when none starts there.
func (h *highlighter) characterLiteral(i int) int {
	next := h.at(i + 1)
	switch {
	case next == "":
		return 0
	case next == `\`:
		if h.at(i+2) != "" && h.at(i+3) == "'" {
			return 4
		}
	case next != "'" && h.at(i+2) == "'":
		return 3
	}
	return 0
}

// matchWord finds the longest word in words that starts at i and is followed
// by a separator or the end of the row.
func (h *highlighter) matchWord(i int, words [][]string) match {
	best := match{}
	for _, w := range words {
		n := len(w)
		if n == 0 || n <= best.length || i+n > len(h.graphemes) {
			continue
		}
		if end := h.at(i + n); end != "" && !isSeparator(end) {
			continue
		}
		ok := true
		for j, g := range w {
			if h.graphemes[i+j] != g {
				ok = false
				break
			}
		}
		if ok {
			best = match{ok: true, length: n}
		}
	}
	return best
}
