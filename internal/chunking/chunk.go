// Package chunking splits text into offset-anchored chunks under one of
// several interchangeable strategies.
package chunking

import "strconv"

// IndexType describes the unit Start and End are measured in.
const IndexType = "character"

// Chunk is one span of the original text. Start and End are code point
// offsets into the input; Length is the code point count of Text.
type Chunk struct {
	ID       string         `json:"id"`
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Text     string         `json:"text"`
	Length   int            `json:"length"`
	Metadata map[string]any `json:"metadata"`
}

// Result is the envelope returned to callers of a chunking request.
type Result struct {
	OriginalText string  `json:"original_text"`
	Strategy     string  `json:"strategy"`
	Params       Params  `json:"params"`
	IndexType    string  `json:"index_type"`
	Chunks       []Chunk `json:"chunks"`
}

// sequence hands out chunk ids for a single chunking call.
type sequence struct {
	chunks []Chunk
}

func (s *sequence) emit(start, end int, text string) {
	s.chunks = append(s.chunks, Chunk{
		ID:       "chunk_" + strconv.Itoa(len(s.chunks)+1),
		Start:    start,
		End:      end,
		Text:     text,
		Length:   runeLen(text),
		Metadata: map[string]any{},
	})
}

func (s *sequence) result() []Chunk {
	if s.chunks == nil {
		return []Chunk{}
	}
	return s.chunks
}
