package highlighter

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/ionut-t/hecto/core"
	"github.com/muesli/termenv"
)

// tokenTypes maps each highlight tag to the chroma token type whose colour it
// borrows from a style.
var tokenTypes = map[core.Tag]chroma.TokenType{
	core.TagNumber:           chroma.LiteralNumber,
	core.TagSearchMatch:      chroma.NameFunction,
	core.TagString:           chroma.LiteralString,
	core.TagCharacter:        chroma.LiteralStringChar,
	core.TagComment:          chroma.CommentSingle,
	core.TagMultilineComment: chroma.CommentMultiline,
	core.TagKeyword:          chroma.Keyword,
	core.TagDataType:         chroma.KeywordType,
	core.TagPunctuation:      chroma.Punctuation,
}

var (
	cacheMutex sync.RWMutex
	cache      = make(map[string]core.Palette)
)

// Palette builds a core.Palette from the chroma style named theme. Unknown
// themes resolve to chroma's fallback style. Tags the style leaves uncoloured
// keep their core.DefaultPalette colour.
//
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func Palette(theme string) core.Palette {
	cacheMutex.RLock()
	p, ok := cache[theme]
	cacheMutex.RUnlock()
	if ok {
		return p
	}

	style := styles.Get(theme)

	p = make(core.Palette, len(tokenTypes))
	for tag, tt := range tokenTypes {
		entry := style.Get(tt)
		if entry.Colour.IsSet() {
			p[tag] = termenv.RGBColor(entry.Colour.String())
			continue
		}
		if c, ok := core.DefaultPalette[tag]; ok {
			p[tag] = c
		}
	}

	cacheMutex.Lock()
	cache[theme] = p
	cacheMutex.Unlock()

	return p
}

// Themes returns the names of every registered chroma style.
func Themes() []string {
	return styles.Names()
}

// HasTheme reports whether theme names a registered chroma style.
func HasTheme(theme string) bool {
	_, ok := styles.Registry[theme]
	return ok
}

// LanguageName returns the display name chroma gives the language of
// filename, or "" when no lexer matches.
func LanguageName(filename string) string {
	if filename == "" {
		return ""
	}
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
