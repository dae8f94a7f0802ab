package chunking

import (
	"fmt"
	"strings"
)

// SentenceChunker packs whole sentences into chunks of at most
// max_chunk_size characters. A sentence longer than the limit becomes a
// chunk on its own.
type SentenceChunker struct {
	Tokenizer SentenceTokenizer
}

func (c SentenceChunker) Chunk(text string, params Params) ([]Chunk, error) {
	maxSize, err := params.IntOr(ParamMaxChunkSize, 500)
	if err != nil {
		return nil, err
	}
	if maxSize <= 0 {
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
	if c.Tokenizer == nil {
		return nil, fmt.Errorf("sentence chunker: no tokenizer configured")
	}
	sents, err := c.Tokenizer.Sentences(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize sentences: %w", err)
	}

	src := newSource(text)
	acc := accumulator{seq: &seq}
	for _, sent := range sents {
		at := src.Index(sent, acc.start)
		if at < 0 {
			at = acc.start
		}
		switch {
		case acc.size+runeLen(sent) <= maxSize:
			acc.add(at, sent)
		case acc.empty():
			acc.add(at, sent)
		default:
			end := acc.flush()
			if overlap > 0 {
				// The overlap is copied from the source, so it can begin
				// mid-word and carry whatever lies between the chunks.
				from := max(0, end-overlap)
				acc.reset(from, src.Slice(from, at))
				acc.add(at, sent)
			} else {
				acc.reset(at, "")
				acc.add(at, sent)
			}
		}
	}
	if !acc.empty() {
		acc.flush()
	}
	return seq.result(), nil
}

// accumulator is either flushed (empty) or accumulating text that starts at
// start in the source.
type accumulator struct {
	seq   *sequence
	start int
	buf   strings.Builder
	size  int
}

func (a *accumulator) empty() bool {
	return a.size == 0
}

// add appends sent verbatim. An empty accumulator is anchored at the
// sentence's own offset.
func (a *accumulator) add(at int, sent string) {
	if a.empty() && a.buf.Len() == 0 {
		a.start = at
	}
	a.buf.WriteString(sent)
	a.size += runeLen(sent)
}

// flush emits the accumulated text and returns its end offset.
func (a *accumulator) flush() int {
	end := a.start + a.size
	a.seq.emit(a.start, end, a.buf.String())
	a.buf.Reset()
	a.size = 0
	return end
}

// reset starts a new chunk at start seeded with prefix.
func (a *accumulator) reset(start int, prefix string) {
	a.start = start
	a.buf.Reset()
	a.buf.WriteString(prefix)
	a.size = runeLen(prefix)
}
