// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Option defines the Lexer functional option type
	Option func(*Config)
)

// WithConfig replaces the Config; options following it still apply.
func WithConfig(cfg Config) Option { return func(c *Config) { *c = cfg } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithRetainComments configures comment retention.
func WithRetainComments(retain bool) Option {
	return func(c *Config) { c.RetainComments = retain }
}

// WithYieldComments configures returning comments as tokens, implies comment retention.
func WithYieldComments(yield bool) Option { return func(c *Config) { c.YieldComments = yield } }

// WithTruncateLimit configures the length of broken literals shown in diagnostics.
func WithTruncateLimit(limit int) Option { return func(c *Config) { c.TruncateLimit = limit } }

// WithEscapePriority configures whether invalid escapes outrank unterminated strings.
func WithEscapePriority(priority bool) Option {
	return func(c *Config) { c.EscapePriority = priority }
}
