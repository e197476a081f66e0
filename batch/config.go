// SPDX-License-Identifier: MIT
package batch

import (
	"runtime"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/ecmalex/lexer"
)

type (
	// Config defines configuration options for batch tokenization.
	Config struct {
		Logger logrus.FieldLogger

		// LexerOptions are applied to every source's Lexer.
		LexerOptions []lexer.Option

		// Workers is the size of the worker pool.
		Workers int

		// Recovery lexes through a recovery.Stream, re-scanning divisions that follow a block.
		Recovery bool

		Debug bool
	}

	// Option defines the batch functional option type
	Option func(*Config)
)

// DefaultConfig configures the batch Config.
func DefaultConfig() *Config {
	return &Config{
		Logger:  logrus.New(),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Workers < 1 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// WithWorkers configures the worker pool size.
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithLexerOptions appends options applied to every Lexer.
func WithLexerOptions(opts ...lexer.Option) Option {
	return func(c *Config) { c.LexerOptions = append(c.LexerOptions, opts...) }
}

// WithRecovery configures lexing through a recovery.Stream.
func WithRecovery(enabled bool) Option { return func(c *Config) { c.Recovery = enabled } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }
