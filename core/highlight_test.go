package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagCodes = map[Tag]byte{
	TagNone:             '.',
	TagNumber:           '0',
	TagSearchMatch:      'm',
	TagString:           's',
	TagCharacter:        'c',
	TagComment:          '/',
	TagMultilineComment: '*',
	TagKeyword:          'k',
	TagDataType:         't',
	TagPunctuation:      'p',
}

// tagString encodes tags one byte per grapheme so expectations line up with
// the text under test.
func tagString(tags []Tag) string {
	var sb strings.Builder
	for _, t := range tags {
		sb.WriteByte(tagCodes[t])
	}
	return sb.String()
}

func highlightLine(opts *HighlightingOptions, text string) (string, HighlightContext) {
	r := NewRow(text)
	out := r.Highlight(opts, HighlightContext{})
	return tagString(r.Tags()), out
}

func TestHighlight(t *testing.T) {
	keywordsOnly := NewHighlightingOptions(NoCategories, []string{"fn"}, nil)

	cases := []struct {
		name string
		opts *HighlightingOptions
		text string
		want string
	}{
		{"keyword at start", keywordsOnly, "fn main()", "kk......."},
		{"keyword followed by separator", keywordsOnly, "fn(", "kk."},
		{"keyword inside identifier", keywordsOnly, "fnord xfn", "........."},
		{
			"longest keyword wins",
			NewHighlightingOptions(NoCategories, []string{"else", "else if"}, nil),
			"else if x",
			"kkkkkkk..",
		},
		{
			"keyword needs separator after",
			NewHighlightingOptions(NoCategories, []string{"in", "int"}, nil),
			"int in",
			"kkk.kk",
		},
		{"rust declaration", Rust.Options(), "let x: u8 = 5", "kkk..p.tt.p.0"},
		{"rust character", Rust.Options(), "let c = 'x';", "kkk...p.cccp"},
		{"rust lifetime is punctuation", Rust.Options(), "&'a str", "pp..ttt"},
		{
			"numbers",
			NewHighlightingOptions(HighlightNumbers, nil, nil),
			"x = 10.5 + a1 + .5",
			"....0000........00",
		},
		{
			"strings with escapes",
			NewHighlightingOptions(HighlightStrings, nil, nil),
			`a "b\"c" d`,
			"..ssssss..",
		},
		{
			"escaped quote does not open a string",
			NewHighlightingOptions(HighlightStrings, nil, nil),
			`\"x`,
			"...",
		},
		{
			"characters",
			NewHighlightingOptions(HighlightCharacters, nil, nil),
			`'a' '\n' 'ab`,
			"ccc.cccc....",
		},
		{
			"escaped quote character",
			NewHighlightingOptions(HighlightCharacters, nil, nil),
			`'\''`,
			"cccc",
		},
		{
			"line comment",
			NewHighlightingOptions(HighlightComments|HighlightStrings, nil, nil),
			"x // y",
			"..////",
		},
		{
			"line comment marker inside string",
			NewHighlightingOptions(HighlightComments|HighlightStrings, nil, nil),
			`"//" x`,
			"ssss..",
		},
		{
			"multiline comment on one row",
			NewHighlightingOptions(HighlightMultilineComments|HighlightNumbers, nil, nil),
			"1 /* 2 */ 3",
			"0.*******.0",
		},
		{
			"escape does not survive a multiline comment",
			Rust.Options(),
			`\/*c*/"s"`,
			"p*****sss",
		},
		{
			"escape does not survive into a multiline comment close",
			NewHighlightingOptions(HighlightMultilineComments|HighlightStrings, nil, nil),
			`/*\*/"s"`,
			"*****sss",
		},
		{
			"punctuation excludes underscore",
			NewHighlightingOptions(HighlightPunctuation, nil, nil),
			"a_b(c)",
			"...p.p",
		},
		{"plain text", PlainText.Options(), `fn "x" // 1`, "..........."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := highlightLine(tc.opts, tc.text)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHighlight_MultilineCommentAcrossRows(t *testing.T) {
	opts := NewHighlightingOptions(HighlightMultilineComments, nil, nil)

	first := NewRow("a /* b")
	ctx := first.Highlight(opts, HighlightContext{})
	assert.Equal(t, "..****", tagString(first.Tags()))
	require.True(t, ctx.InMultilineComment)

	middle := NewRow("still")
	ctx = middle.Highlight(opts, ctx)
	assert.Equal(t, "*****", tagString(middle.Tags()))
	require.True(t, ctx.InMultilineComment)

	last := NewRow("c */ d")
	ctx = last.Highlight(opts, ctx)
	assert.Equal(t, "****..", tagString(last.Tags()))
	assert.False(t, ctx.InMultilineComment)
}

func TestHighlight_MultilineContextIgnoredWhenDisabled(t *testing.T) {
	opts := NewHighlightingOptions(HighlightNumbers, nil, nil)

	r := NewRow("1 */")
	ctx := r.Highlight(opts, HighlightContext{InMultilineComment: true})

	assert.Equal(t, "0...", tagString(r.Tags()))
	assert.False(t, ctx.InMultilineComment)
}

func TestHighlight_LineCommentInsideMultilineComment(t *testing.T) {
	opts := NewHighlightingOptions(HighlightComments|HighlightMultilineComments, nil, nil)

	got, ctx := highlightLine(opts, "/* // */x")
	assert.Equal(t, "********.", got)
	assert.False(t, ctx.InMultilineComment)
}

func TestHighlight_Idempotent(t *testing.T) {
	opts := Rust.Options()
	text := `fn main() { let s = "a\"b"; let c = '\n'; /* x */ 1.5 }`

	r := NewRow(text)
	first := r.Highlight(opts, HighlightContext{})
	tags := r.Tags()
	second := r.Highlight(opts, HighlightContext{})

	assert.Equal(t, tags, r.Tags())
	assert.Equal(t, first, second)
	assert.Len(t, tags, r.Len())
}

func TestHighlight_UnicodeGraphemesGetOneTagEach(t *testing.T) {
	opts := NewHighlightingOptions(HighlightStrings, nil, nil)

	got, _ := highlightLine(opts, `x "é😀" y`)
	assert.Equal(t, "..ssss..", got)
}

func TestPalette_Marker(t *testing.T) {
	assert.Equal(t, "\x1b[31m", DefaultPalette.Marker(TagNumber))
	assert.Equal(t, "\x1b[95m", DefaultPalette.Marker(TagDataType))
	assert.Equal(t, "\x1b[39m", DefaultPalette.Marker(TagNone))
	assert.Equal(t, "\x1b[0m", ResetMarker)
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "keyword", TagKeyword.String())
	assert.Equal(t, "unknown", Tag(200).String())
}

func TestIsSeparator(t *testing.T) {
	for _, g := range []string{" ", "\t", ",", ".", "(", "\"", "'", "/", "~"} {
		assert.True(t, isSeparator(g), "%q", g)
	}
	for _, g := range []string{"_", "a", "0", "é", "😀", ""} {
		assert.False(t, isSeparator(g), "%q", g)
	}
}
