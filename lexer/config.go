// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the Lexer's operations.
	Config struct {
		Logger logrus.FieldLogger

		// RetainComments attaches comments to the next significant token.
		RetainComments bool
		// YieldComments returns retained comments as ordinary tokens instead.
		YieldComments bool

		// TruncateLimit is the number of runes of a broken literal shown in diagnostics.
		TruncateLimit int
		// EscapePriority reports an invalid escape sequence in an unterminated string instead
		// of the unterminated string itself.
		EscapePriority bool

		Debug bool
	}
)

const (
	// DefaultTruncateLimit is the default number of runes of a broken literal shown in
	// diagnostics.
	DefaultTruncateLimit = 20

	// ellipsis marks an elided literal in diagnostics.
	ellipsis = "..."
)

// DefaultConfig configures the lexer's Config.
func DefaultConfig() *Config {
	return &Config{
		Logger:         logrus.New(),
		TruncateLimit:  DefaultTruncateLimit,
		EscapePriority: true,
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.TruncateLimit < 1 {
		c.TruncateLimit = DefaultTruncateLimit
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.YieldComments {
		c.RetainComments = true
	}
}
