package core

import (
	"path/filepath"
	"strings"

	"github.com/ionut-t/hecto/internal/grapheme"
)

// Category is a set of lexical categories enabled for highlighting.
type Category uint8

const (
	HighlightNumbers Category = 1 << iota
	HighlightStrings
	HighlightCharacters
	HighlightComments
	HighlightMultilineComments
	HighlightPunctuation

	NoCategories  Category = 0
	AllCategories Category = HighlightNumbers | HighlightStrings | HighlightCharacters | HighlightComments | HighlightMultilineComments | HighlightPunctuation
)

// HighlightingOptions selects which categories a row classification pass
// recognizes and supplies the keyword and type-name tables. It is read-only
// once constructed and may be shared by every row of a document.
type HighlightingOptions struct {
	categories Category
	keywords   []string
	dataTypes  []string

	keywordGraphemes  [][]string
	dataTypeGraphemes [][]string
}

// NewHighlightingOptions builds options; the word lists are copied.
func NewHighlightingOptions(categories Category, keywords, dataTypes []string) *HighlightingOptions {
	o := &HighlightingOptions{
		categories: categories,
		keywords:   append([]string(nil), keywords...),
		dataTypes:  append([]string(nil), dataTypes...),
	}
	o.keywordGraphemes = splitWords(o.keywords)
	o.dataTypeGraphemes = splitWords(o.dataTypes)
	return o
}

func splitWords(words []string) [][]string {
	out := make([][]string, 0, len(words))
	for _, w := range words {
		out = append(out, grapheme.Split(w))
	}
	return out
}

func (o *HighlightingOptions) Enabled(c Category) bool { return o.categories&c == c }

func (o *HighlightingOptions) Numbers() bool           { return o.Enabled(HighlightNumbers) }
func (o *HighlightingOptions) Strings() bool           { return o.Enabled(HighlightStrings) }
func (o *HighlightingOptions) Characters() bool        { return o.Enabled(HighlightCharacters) }
func (o *HighlightingOptions) Comments() bool          { return o.Enabled(HighlightComments) }
func (o *HighlightingOptions) MultilineComments() bool { return o.Enabled(HighlightMultilineComments) }
func (o *HighlightingOptions) Punctuation() bool       { return o.Enabled(HighlightPunctuation) }

// Keywords returns a copy of the keyword table.
func (o *HighlightingOptions) Keywords() []string { return append([]string(nil), o.keywords...) }

// DataTypes returns a copy of the type-name table.
func (o *HighlightingOptions) DataTypes() []string { return append([]string(nil), o.dataTypes...) }

// FileType is the closed set of languages the editor knows how to highlight.
type FileType uint8

const (
	PlainText FileType = iota
	Rust
	Go
	C
)

type fileTypeDef struct {
	name       string
	extensions []string
	options    *HighlightingOptions
}

var fileTypes = [...]fileTypeDef{
	PlainText: {
		name:    "No filetype",
		options: NewHighlightingOptions(NoCategories, nil, nil),
	},
	Rust: {
		name:       "Rust",
		extensions: []string{"rs"},
		options: NewHighlightingOptions(AllCategories,
			[]string{
				"as", "async", "await", "break", "const", "continue", "crate", "dyn",
				"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
				"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
				"Self", "self", "static", "struct", "super", "trait", "true", "type",
				"union", "unsafe", "use", "where", "while",
			},
			[]string{
				"i8", "i16", "i32", "i64", "i128", "u8", "u16", "u32", "u64", "u128",
				"f32", "f64", "isize", "usize", "bool", "char", "str", "String",
				"Box", "Rc", "Arc", "Vec", "HashMap", "BTreeMap", "HashSet", "BTreeSet",
				"Option", "Result", "Some", "None", "Ok", "Err",
			},
		),
	},
	Go: {
		name:       "Go",
		extensions: []string{"go"},
		options: NewHighlightingOptions(AllCategories,
			[]string{
				"break", "case", "chan", "const", "continue", "default", "defer",
				"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
				"interface", "map", "package", "range", "return", "select", "struct",
				"switch", "type", "var",
			},
			[]string{
				"any", "bool", "byte", "complex64", "complex128", "error", "float32",
				"float64", "int", "int8", "int16", "int32", "int64", "rune", "string",
				"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
				"true", "false", "nil", "iota",
			},
		),
	},
	C: {
		name:       "C",
		extensions: []string{"c", "h"},
		options: NewHighlightingOptions(AllCategories,
			[]string{
				"auto", "break", "case", "const", "continue", "default", "do", "else",
				"enum", "extern", "for", "goto", "if", "inline", "register", "restrict",
				"return", "sizeof", "static", "struct", "switch", "typedef", "union",
				"volatile", "while",
			},
			[]string{
				"char", "double", "float", "int", "long", "short", "signed",
				"unsigned", "void", "_Bool", "size_t", "NULL",
			},
		),
	},
}

// FileTypeFromFilename resolves the file type from the extension of filename.
// Unknown or missing extensions yield PlainText.
func FileTypeFromFilename(filename string) FileType {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return PlainText
	}
	for ft, def := range fileTypes {
		for _, e := range def.extensions {
			if strings.EqualFold(e, ext) {
				return FileType(ft)
			}
		}
	}
	return PlainText
}

func (ft FileType) def() fileTypeDef {
	if int(ft) >= len(fileTypes) {
		return fileTypes[PlainText]
	}
	return fileTypes[ft]
}

// Name is the human readable name shown in the status bar.
func (ft FileType) Name() string { return ft.def().name }

func (ft FileType) String() string { return ft.Name() }

// Options returns the shared highlighting configuration of ft.
func (ft FileType) Options() *HighlightingOptions { return ft.def().options }
