package chunking

import (
	"fmt"
	"strings"
)

const paragraphSeparator = "\n\n"

// ParagraphChunker emits one chunk per blank-line separated paragraph.
// Paragraphs longer than max_chunk_size, when set, are cut into windows.
type ParagraphChunker struct{}

func (ParagraphChunker) Chunk(text string, params Params) ([]Chunk, error) {
	maxSize, err := params.IntOr(ParamMaxChunkSize, 0)
	if err != nil {
		return nil, err
	}
	if maxSize < 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParameter, ParamMaxChunkSize, maxSize)
	}
	overlap, err := params.IntOr(ParamOverlap, 0)
	if err != nil {
		return nil, err
	}

	var seq sequence
	if text == "" {
		return seq.result(), nil
	}
	src := newSource(text)
	sepLen := runeLen(paragraphSeparator)
	cursor := 0

	for _, para := range strings.Split(text, paragraphSeparator) {
		if strings.TrimSpace(para) == "" {
			cursor += sepLen
			continue
		}

		// Anchored from the cursor, so a repeated paragraph resolves to the
		// first copy not yet passed.
		start := src.Index(para, cursor)
		if start < 0 {
			start = cursor
		}
		end := start + runeLen(para)

		if maxSize > 0 && end-start > maxSize {
			slidingWindows(&seq, src, start, end, maxSize, overlap)
		} else {
			seq.emit(start, end, para)
		}
		cursor = end + sepLen
	}
	return seq.result(), nil
}
