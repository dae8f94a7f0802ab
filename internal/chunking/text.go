package chunking

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// source indexes a string by code point so chunkers can work in character
// offsets while searching with the byte-oriented strings package.
type source struct {
	text string
	// offsets[i] is the byte offset of rune i; offsets[len] == len(text).
	offsets []int
}

func newSource(text string) *source {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return &source{text: text, offsets: offsets}
}

// Len returns the number of code points in the text.
func (s *source) Len() int {
	return len(s.offsets) - 1
}

// Slice returns the text between code point offsets start and end. Out of
// range bounds are clamped and an inverted range yields "".
func (s *source) Slice(start, end int) string {
	start = s.clamp(start)
	end = s.clamp(end)
	if start >= end {
		return ""
	}
	return s.text[s.offsets[start]:s.offsets[end]]
}

// Index returns the code point offset of the first occurrence of sub at or
// after from, or -1.
func (s *source) Index(sub string, from int) int {
	from = s.clamp(from)
	base := s.offsets[from]
	i := strings.Index(s.text[base:], sub)
	if i < 0 {
		return -1
	}
	return sort.SearchInts(s.offsets, base+i)
}

func (s *source) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if n := s.Len(); i > n {
		return n
	}
	return i
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
