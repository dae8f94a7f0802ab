package chunking

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceTokenizer splits text into sentences in reading order.
type SentenceTokenizer interface {
	Sentences(text string) ([]string, error)
}

// PunktTokenizer detects sentence boundaries with the Punkt algorithm
// trained on English text.
type PunktTokenizer struct {
	tok *sentences.DefaultSentenceTokenizer
}

// NewPunktTokenizer loads the bundled English Punkt model.
func NewPunktTokenizer() (*PunktTokenizer, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt model: %w", err)
	}
	return &PunktTokenizer{tok: tok}, nil
}

// Sentences returns the trimmed, non-empty sentences of text.
func (p *PunktTokenizer) Sentences(text string) ([]string, error) {
	var out []string
	for _, s := range p.tok.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
