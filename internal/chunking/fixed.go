package chunking

import "fmt"

// FixedChunker cuts the text into windows of chunk_size characters.
type FixedChunker struct{}

func (FixedChunker) Chunk(text string, params Params) ([]Chunk, error) {
	size, err := params.IntOr(ParamChunkSize, 100)
	if err != nil {
		return nil, err
	}
	overlap, err := params.IntOr(ParamOverlap, 0)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParameter, ParamChunkSize, size)
	}

	var seq sequence
	src := newSource(text)
	slidingWindows(&seq, src, 0, src.Len(), size, overlap)
	return seq.result(), nil
}
