package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chunk-lab/internal/cache"
	"chunk-lab/internal/chunking"
)

func newTestService(c cache.Cache, maxWords int) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(chunking.NewRegistry(nil, nil), c, log, Options{MaxWords: maxWords, CacheTTL: time.Minute})
}

func TestServiceChunk(t *testing.T) {
	cachedResult := &chunking.Result{Strategy: chunking.StrategyFixed, OriginalText: "from cache"}

	tests := []struct {
		name     string
		strategy string
		text     string
		params   chunking.Params
		maxWords int
		setup    func(*cache.MockCache)
		wantErr  error
		check    func(*testing.T, chunking.Result)
	}{
		{
			name:     "cache miss runs engine and stores result",
			strategy: chunking.StrategyFixed,
			text:     "abcdefgh",
			params:   chunking.Params{chunking.ParamChunkSize: 4},
			setup: func(c *cache.MockCache) {
				c.On("GetResult", mock.Anything, mock.Anything).Return(nil, nil).Once()
				c.On("SetResult", mock.Anything, mock.Anything, mock.MatchedBy(func(r *chunking.Result) bool {
					return len(r.Chunks) == 2
				}), time.Minute).Return(nil).Once()
			},
			check: func(t *testing.T, res chunking.Result) {
				assert.Len(t, res.Chunks, 2)
				assert.Equal(t, "abcdefgh", res.OriginalText)
			},
		},
		{
			name:     "cache hit short-circuits engine",
			strategy: chunking.StrategyFixed,
			text:     "abcdefgh",
			setup: func(c *cache.MockCache) {
				c.On("GetResult", mock.Anything, mock.Anything).Return(cachedResult, nil).Once()
			},
			check: func(t *testing.T, res chunking.Result) {
				assert.Equal(t, "from cache", res.OriginalText)
			},
		},
		{
			name:     "cache failures are not fatal",
			strategy: chunking.StrategyParagraph,
			text:     "one\n\ntwo",
			setup: func(c *cache.MockCache) {
				c.On("GetResult", mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Once()
				c.On("SetResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
			},
			check: func(t *testing.T, res chunking.Result) {
				assert.Len(t, res.Chunks, 2)
			},
		},
		{
			name:     "unknown strategy",
			strategy: "unknown",
			text:     "abc",
			wantErr:  chunking.ErrUnknownStrategy,
		},
		{
			name:     "too many words",
			strategy: chunking.StrategyFixed,
			text:     "one two three four",
			maxWords: 3,
			wantErr:  ErrTextTooLong,
		},
		{
			name:     "zero chunk size",
			strategy: chunking.StrategyFixed,
			text:     "abc",
			params:   chunking.Params{chunking.ParamChunkSize: 0},
			wantErr:  chunking.ErrInvalidParameter,
		},
		{
			name:     "paragraph zero max means no sub-split",
			strategy: chunking.StrategyParagraph,
			text:     "one\n\ntwo",
			params:   chunking.Params{chunking.ParamMaxChunkSize: float64(0)},
			setup: func(c *cache.MockCache) {
				c.On("GetResult", mock.Anything, mock.Anything).Return(nil, nil).Once()
				c.On("SetResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, res chunking.Result) {
				require.Len(t, res.Chunks, 2)
				assert.Equal(t, "one", res.Chunks[0].Text)
				assert.Equal(t, "two", res.Chunks[1].Text)
			},
		},
		{
			name:     "sentence zero max",
			strategy: chunking.StrategySentence,
			text:     "abc",
			params:   chunking.Params{chunking.ParamMaxChunkSize: 0},
			wantErr:  chunking.ErrInvalidParameter,
		},
		{
			name:     "unencodable params skip the cache",
			strategy: chunking.StrategyFixed,
			text:     "abcdef",
			params:   chunking.Params{chunking.ParamChunkSize: 3, "callback": func() {}},
			check: func(t *testing.T, res chunking.Result) {
				assert.Len(t, res.Chunks, 2)
			},
		},
		{
			name:     "negative overlap",
			strategy: chunking.StrategyRecursive,
			text:     "abc",
			params:   chunking.Params{chunking.ParamOverlap: -1},
			wantErr:  chunking.ErrInvalidParameter,
		},
		{
			name:     "non numeric size",
			strategy: chunking.StrategySentence,
			text:     "abc",
			params:   chunking.Params{chunking.ParamMaxChunkSize: "big"},
			wantErr:  chunking.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := new(cache.MockCache)
			if tt.setup != nil {
				tt.setup(mockCache)
			}
			svc := newTestService(mockCache, tt.maxWords)

			res, err := svc.Chunk(context.Background(), tt.strategy, tt.text, tt.params)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.check != nil {
				tt.check(t, res)
			}
			mockCache.AssertExpectations(t)
		})
	}
}

func TestServiceWordCeilingIsInclusive(t *testing.T) {
	svc := newTestService(cache.NewNoOpCache(), 5)
	_, err := svc.Chunk(context.Background(), chunking.StrategyFixed, strings.Repeat("word ", 5), nil)
	assert.NoError(t, err)
}

func TestServiceDefaultWordCeiling(t *testing.T) {
	svc := newTestService(nil, 0)
	_, err := svc.Chunk(context.Background(), chunking.StrategyFixed, strings.Repeat("w ", DefaultMaxWords+1), nil)
	assert.True(t, errors.Is(err, ErrTextTooLong))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords(" \n\t "))
	assert.Equal(t, 3, CountWords("one  two\nthree"))
}
