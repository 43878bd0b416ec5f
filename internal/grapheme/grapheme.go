package grapheme

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Offsets returns the byte offset at which each grapheme cluster of text starts.
func Offsets(text string) []int {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]int, 0, len(text))
	for g.Next() {
		from, _ := g.Positions()
		out = append(out, from)
	}
	return out
}

// ByteOffset returns the byte offset of grapheme index i in text, or len(text)
// when i is at or past the last cluster.
func ByteOffset(text string, i int) int {
	if i <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	for g.Next() {
		if idx == i {
			from, _ := g.Positions()
			return from
		}
		idx++
	}
	return len(text)
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	return text[ByteOffset(text, start):ByteOffset(text, end)]
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}
