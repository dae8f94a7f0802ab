package chunking

import (
	"errors"
	"strconv"
	"testing"

	"github.com/tmc/langchaingo/textsplitter"
)

type stubTokenizer []string

func (s stubTokenizer) Sentences(string) ([]string, error) {
	return s, nil
}

type failingTokenizer struct{}

func (failingTokenizer) Sentences(string) ([]string, error) {
	return nil, errors.New("model unavailable")
}

type stubSplitter []string

func (s stubSplitter) SplitText(string) ([]string, error) {
	return s, nil
}

func splitterOf(fragments ...string) SplitterFunc {
	return func(int, int) textsplitter.TextSplitter {
		return stubSplitter(fragments)
	}
}

// assertAnchored checks that every chunk is a faithful slice of text and
// that ids run chunk_1..chunk_n.
func assertAnchored(t *testing.T, text string, chunks []Chunk) {
	t.Helper()
	runes := []rune(text)
	for i, c := range chunks {
		if want := "chunk_" + strconv.Itoa(i+1); c.ID != want {
			t.Errorf("chunk %d: id %q, want %q", i, c.ID, want)
		}
		if c.Start < 0 || c.Start > c.End || c.End > len(runes) {
			t.Fatalf("chunk %d: bad range [%d,%d) for length %d", i, c.Start, c.End, len(runes))
		}
		if got := string(runes[c.Start:c.End]); got != c.Text {
			t.Errorf("chunk %d: text %q does not match source %q", i, c.Text, got)
		}
		if c.Length != len([]rune(c.Text)) {
			t.Errorf("chunk %d: length %d, want %d", i, c.Length, len([]rune(c.Text)))
		}
		if c.Metadata == nil {
			t.Errorf("chunk %d: nil metadata", i)
		}
	}
}

func texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}
