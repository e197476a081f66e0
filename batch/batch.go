// SPDX-License-Identifier: MIT

// Package batch tokenizes independent sources concurrently, one Lexer per source.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/crypto/blake2b"

	"gitlab.com/fisherprime/ecmalex/lexer"
	"gitlab.com/fisherprime/ecmalex/recovery"
	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// Source is a named ECMAScript source text.
	Source struct {
		Name string
		Text string
	}

	// Result holds the outcome of tokenizing a Source.
	Result struct {
		// Err is the Source's lexing error, Tokens then holds the tokens preceding it.
		Err error

		Name   string
		Tokens []*token.Token

		// Digest is the BLAKE2b-256 sum of the Source text.
		Digest [blake2b.Size256]byte

		// Recovered counts the divisions re-scanned as regular expressions, with recovery.
		Recovered int
	}

	nexter interface {
		Next() (*token.Token, error)
	}
)

// ctxCheckInterval is the number of tokens lexed between context checks.
const ctxCheckInterval = 256

// Batch errors.
var (
	ErrPanicked = errors.New("lexer panicked")
)

// Tokenize lexes every source on a worker pool.
//
// Results are in the order of sources, each carrying its own error. The returned error
// wraps every per-source error, or the context's error.
func Tokenize(ctx context.Context, sources []Source, opts ...Option) (results []Result, err error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Validate()

	results = make([]Result, len(sources))
	if len(sources) < 1 {
		return
	}

	pool, err := ants.NewPool(cfg.Workers, ants.WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	// Buffered to len(sources) so that no task blocks on an abandoned monitor.
	done := make(chan bool, len(sources))
	errChan := make(chan error, len(sources))

	var wg sync.WaitGroup
	for index := range sources {
		index := index
		wg.Add(1)
		task := func() {
			defer wg.Done()

			results[index] = tokenize(ctx, sources[index], cfg)
			if e := results[index].Err; e != nil {
				errChan <- fmt.Errorf("%s: %w", sources[index].Name, e)
				return
			}
			done <- true
		}

		if e := pool.Submit(task); e != nil {
			wg.Done()
			results[index] = Result{Name: sources[index].Name, Err: e}
			errChan <- fmt.Errorf("%s: %w", sources[index].Name, e)
		}
	}

	err = monitorChannels(ctx, len(sources), done, errChan, "tokenize")
	wg.Wait()

	if cfg.Debug {
		cfg.Logger.Debugf("batch: %d source(s) on %d worker(s), error: %v", len(sources), cfg.Workers, err)
	}

	return
}

// tokenize lexes a single source.
func tokenize(ctx context.Context, src Source, cfg *Config) (res Result) {
	res.Name = src.Name
	res.Digest = blake2b.Sum256([]byte(src.Text))

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrPanicked, r)
			cfg.Logger.WithField("source", src.Name).Errorf("batch: %v", res.Err)
		}
	}()

	if res.Err = ctx.Err(); res.Err != nil {
		return
	}

	opts := append([]lexer.Option{lexer.WithLogger(cfg.Logger.WithField("source", src.Name))}, cfg.LexerOptions...)
	l := lexer.New(src.Text, opts...)

	var (
		next   nexter = l
		stream *recovery.Stream
	)
	if cfg.Recovery {
		stream = recovery.New(l)
		next = stream
	}

	for count := 1; ; count++ {
		if count%ctxCheckInterval == 0 {
			if res.Err = ctx.Err(); res.Err != nil {
				return
			}
		}

		var tok *token.Token
		if tok, res.Err = next.Next(); res.Err != nil {
			break
		}
		if tok.Kind == token.EOF {
			break
		}

		res.Tokens = append(res.Tokens, tok)
	}

	if stream != nil {
		res.Recovered = stream.Recovered()
	}

	return
}
