package chunking

import (
	"fmt"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"
)

// RecursiveSeparators are tried from coarsest to finest; "" splits into
// single characters.
var RecursiveSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// SplitterFunc builds a text splitter for one chunking call.
type SplitterFunc func(chunkSize, overlap int) textsplitter.TextSplitter

// NewRecursiveSplitter configures langchaingo's recursive character splitter
// with RecursiveSeparators and a code point length function.
func NewRecursiveSplitter(chunkSize, overlap int) textsplitter.TextSplitter {
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSeparators(RecursiveSeparators),
		textsplitter.WithLenFunc(utf8.RuneCountInString),
		textsplitter.WithKeepSeparator(true),
	)
}

// RecursiveChunker delegates splitting to a hierarchical separator splitter
// and maps each fragment back onto the source text.
type RecursiveChunker struct {
	// Splitter defaults to NewRecursiveSplitter.
	Splitter SplitterFunc
}

func (c RecursiveChunker) Chunk(text string, params Params) ([]Chunk, error) {
	size, err := params.IntOr(ParamChunkSize, 500)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParameter, ParamChunkSize, size)
	}
	overlap, err := params.IntOr(ParamOverlap, 50)
	if err != nil {
		return nil, err
	}
	if overlap > size {
		return nil, fmt.Errorf("%w: %s %d is larger than %s %d", ErrInvalidParameter, ParamOverlap, overlap, ParamChunkSize, size)
	}

	var seq sequence
	if text == "" {
		return seq.result(), nil
	}
	newSplitter := c.Splitter
	if newSplitter == nil {
		newSplitter = NewRecursiveSplitter
	}
	fragments, err := newSplitter(size, overlap).SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}

	src := newSource(text)
	cursor := 0
	for _, frag := range fragments {
		start := src.Index(frag, cursor)
		if start < 0 {
			start = min(cursor, src.Len())
		}
		end := min(start+runeLen(frag), src.Len())
		seq.emit(start, end, frag)
		// Advance by one only: the next fragment may overlap this one.
		cursor = start + 1
	}
	return seq.result(), nil
}
