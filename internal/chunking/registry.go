package chunking

import "fmt"

// Chunker is implemented by every strategy.
type Chunker interface {
	Chunk(text string, params Params) ([]Chunk, error)
}

// Registry maps strategy names to chunkers.
type Registry struct {
	order    []string
	chunkers map[string]Chunker
}

// NewRegistry wires the four built-in strategies. The sentence strategy
// uses tok and the recursive strategy builds splitters with split; a nil
// split selects NewRecursiveSplitter.
func NewRegistry(tok SentenceTokenizer, split SplitterFunc) *Registry {
	r := &Registry{chunkers: make(map[string]Chunker)}
	r.register(StrategyFixed, FixedChunker{})
	r.register(StrategySentence, SentenceChunker{Tokenizer: tok})
	r.register(StrategyParagraph, ParagraphChunker{})
	r.register(StrategyRecursive, RecursiveChunker{Splitter: split})
	return r
}

// NewDefaultRegistry is NewRegistry with the Punkt sentence tokenizer.
func NewDefaultRegistry() (*Registry, error) {
	tok, err := NewPunktTokenizer()
	if err != nil {
		return nil, err
	}
	return NewRegistry(tok, nil), nil
}

func (r *Registry) register(name string, c Chunker) {
	if _, ok := r.chunkers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.chunkers[name] = c
}

// Strategies lists registered names in registration order.
func (r *Registry) Strategies() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.chunkers[name]
	return ok
}

// Chunk resolves params against the strategy defaults and runs it.
func (r *Registry) Chunk(strategy, text string, params Params) (Result, error) {
	c, ok := r.chunkers[strategy]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
	resolved, err := Resolve(strategy, params)
	if err != nil {
		return Result{}, err
	}
	chunks, err := c.Chunk(text, resolved)
	if err != nil {
		return Result{}, fmt.Errorf("%s strategy: %w", strategy, err)
	}
	return Result{
		OriginalText: text,
		Strategy:     strategy,
		Params:       resolved,
		IndexType:    IndexType,
		Chunks:       chunks,
	}, nil
}
