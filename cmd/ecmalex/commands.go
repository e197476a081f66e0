// SPDX-License-Identifier: MIT
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/ecmalex/batch"
	"gitlab.com/fisherprime/ecmalex/lexer"
	"gitlab.com/fisherprime/ecmalex/token"
	"gitlab.com/fisherprime/ecmalex/tokenfmt"
)

type (
	tokensOpts struct {
		format  string
		kinds   []string
		jobs    int
		comment bool
		yield   bool
		recover bool
	}
)

// stdinName names the standard input source.
const stdinName = "-"

func newRootCmd() *cobra.Command {
	var debug bool

	logger := logrus.New()

	rootCmd := &cobra.Command{
		Use:           "ecmalex",
		Short:         "Tokenize ECMAScript sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.SetOutput(cmd.ErrOrStderr())
			if debug {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	rootCmd.AddCommand(newTokensCmd(logger, &debug), newKindsCmd())

	return rootCmd
}

func newTokensCmd(logger *logrus.Logger, debug *bool) *cobra.Command {
	var opts tokensOpts

	cmd := &cobra.Command{
		Use:   "tokens [files...]",
		Short: "Print the tokens of each source, standard input when none or - is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, opts, logger, *debug)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "o", tokenfmt.Text.String(), fmt.Sprintf("Output format %v", tokenfmt.Formats()))
	flags.StringSliceVarP(&opts.kinds, "kind", "k", nil, "Only print tokens of these kinds")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "Number of sources tokenized concurrently (default: GOMAXPROCS)")
	flags.BoolVar(&opts.comment, "comments", false, "Attach comments to the following token")
	flags.BoolVar(&opts.yield, "yield-comments", false, "Print comments as tokens")
	flags.BoolVar(&opts.recover, "recover", false, "Re-scan divisions following a block as regular expressions")

	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the token kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range token.Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func runTokens(cmd *cobra.Command, args []string, opts tokensOpts, logger *logrus.Logger, debug bool) error {
	format, err := tokenfmt.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	filter := make(map[token.Kind]bool, len(opts.kinds))
	for _, name := range opts.kinds {
		var k token.Kind
		if k, err = token.Lookup(name); err != nil {
			return err
		}
		filter[k] = true
	}

	if len(args) < 1 {
		args = []string{stdinName}
	}

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	results, lexErr := batch.Tokenize(cmd.Context(), sources,
		batch.WithWorkers(opts.jobs),
		batch.WithLogger(logger),
		batch.WithRecovery(opts.recover),
		batch.WithDebug(debug),
		batch.WithLexerOptions(
			lexer.WithRetainComments(opts.comment),
			lexer.WithYieldComments(opts.yield),
			lexer.WithDebug(debug),
		),
	)

	out := cmd.OutOrStdout()
	for _, res := range results {
		if len(results) > 1 && format == tokenfmt.Text {
			fmt.Fprintf(out, "==> %s (blake2b-256 %s) <==\n", res.Name, hex.EncodeToString(res.Digest[:8]))
		}

		if err = tokenfmt.Encode(out, keep(res.Tokens, filter), format); err != nil {
			return err
		}

		if res.Err != nil {
			logger.WithField("source", res.Name).Error(res.Err)
		}
	}

	return lexErr
}

// readSources reads every named file, stdinName reading from stdin.
func readSources(stdin io.Reader, names []string) (sources []batch.Source, err error) {
	sources = make([]batch.Source, 0, len(names))
	for _, name := range names {
		var data []byte
		if name == stdinName {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}

		sources = append(sources, batch.Source{Name: name, Text: string(data)})
	}

	return
}

// keep filters tokens by kind; an empty filter keeps every token.
func keep(tokens []*token.Token, filter map[token.Kind]bool) []*token.Token {
	if len(filter) < 1 {
		return tokens
	}

	kept := make([]*token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if filter[tok.Kind] {
			kept = append(kept, tok)
		}
	}

	return kept
}
