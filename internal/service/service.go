package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"chunk-lab/internal/cache"
	"chunk-lab/internal/chunking"
)

// DefaultMaxWords is the largest input, in whitespace-delimited words, a
// request may carry.
const DefaultMaxWords = 10000

// ErrTextTooLong is returned when the input exceeds the word ceiling.
var ErrTextTooLong = errors.New("text exceeds word limit")

// Engine runs one chunking strategy. *chunking.Registry implements it.
type Engine interface {
	Strategies() []string
	Has(strategy string) bool
	Chunk(strategy, text string, params chunking.Params) (chunking.Result, error)
}

type Options struct {
	MaxWords int
	CacheTTL time.Duration
}

// Service gates requests, validates parameters and caches results in
// front of the chunking engine.
type Service struct {
	engine   Engine
	cache    cache.Cache
	log      *slog.Logger
	validate *validator.Validate
	opts     Options
}

func New(engine Engine, c cache.Cache, log *slog.Logger, opts Options) *Service {
	if opts.MaxWords <= 0 {
		opts.MaxWords = DefaultMaxWords
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Service{
		engine:   engine,
		cache:    c,
		log:      log,
		validate: validator.New(),
		opts:     opts,
	}
}

// Strategies lists the strategy names callers may request.
func (s *Service) Strategies() []string {
	return s.engine.Strategies()
}

// Chunk checks the request and returns the chunking result, from cache when
// an identical request was served within the cache TTL.
func (s *Service) Chunk(ctx context.Context, strategy, text string, params chunking.Params) (chunking.Result, error) {
	if !s.engine.Has(strategy) {
		return chunking.Result{}, fmt.Errorf("%w: %s", chunking.ErrUnknownStrategy, strategy)
	}
	if words := CountWords(text); words > s.opts.MaxWords {
		return chunking.Result{}, fmt.Errorf("%w: %d words, limit %d", ErrTextTooLong, words, s.opts.MaxWords)
	}
	resolved, err := chunking.Resolve(strategy, params)
	if err != nil {
		return chunking.Result{}, err
	}
	if err := s.checkParams(strategy, resolved); err != nil {
		return chunking.Result{}, err
	}

	key, err := cache.ResultKey(strategy, resolved, text)
	if err != nil {
		s.log.Warn("params not cacheable, bypassing cache", "err", err, "strategy", strategy)
		return s.engine.Chunk(strategy, text, resolved)
	}
	if cached, err := s.cache.GetResult(ctx, key); err != nil {
		s.log.Warn("cache lookup failed", "err", err, "strategy", strategy)
	} else if cached != nil {
		s.log.Debug("cache hit", "strategy", strategy, "chunks", len(cached.Chunks))
		return *cached, nil
	}

	res, err := s.engine.Chunk(strategy, text, resolved)
	if err != nil {
		return chunking.Result{}, err
	}
	if err := s.cache.SetResult(ctx, key, &res, s.opts.CacheTTL); err != nil {
		s.log.Warn("failed to cache result", "err", err, "strategy", strategy)
	}
	return res, nil
}

// paramRules holds the validator tags applied to each strategy's numeric
// params. A paragraph max_chunk_size of 0 turns sub-splitting off.
var paramRules = map[string]map[string]string{
	chunking.StrategyFixed: {
		chunking.ParamChunkSize: "gt=0",
		chunking.ParamOverlap:   "gte=0",
	},
	chunking.StrategySentence: {
		chunking.ParamMaxChunkSize: "gt=0",
		chunking.ParamOverlap:      "gte=0",
	},
	chunking.StrategyParagraph: {
		chunking.ParamMaxChunkSize: "gte=0",
		chunking.ParamOverlap:      "gte=0",
	},
	chunking.StrategyRecursive: {
		chunking.ParamChunkSize: "gt=0",
		chunking.ParamOverlap:   "gte=0",
	},
}

// checkParams rejects sizes that cannot drive the strategy's chunker.
func (s *Service) checkParams(strategy string, params chunking.Params) error {
	for key, rule := range paramRules[strategy] {
		n, ok, err := params.Int(key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := s.validate.Var(n, rule); err != nil {
			return fmt.Errorf("%w: %s=%d fails %s", chunking.ErrInvalidParameter, key, n, rule)
		}
	}
	return nil
}

// CountWords counts whitespace-delimited words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
