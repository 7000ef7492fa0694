// Command triedup reads words one per line until a "***" line, builds a
// left-child/right-sibling trie from them and prints the size and encoding
// of its largest repeated subtree, or 0 when nothing repeats.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/config"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/logging"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/tree"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/trie"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/wordsource"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "triedup:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("triedup", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file")
	fs.String("input", "", "read words from this file instead of stdin")
	fs.String("sentinel", wordsource.DefaultSentinel, "line that ends the word list")
	fs.String("charset", wordsource.CharsetUTF8, "input charset (utf-8, iso-8859-1, windows-1252)")
	fs.Bool("trace", true, "log the trie encoding after every word")
	fs.Bool("strict", false, "stop at the first invalid word instead of skipping it")
	fs.String("policy", tree.PolicyIsomorphic, "subtree match policy (isomorphic, strict)")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", "console", "log format (console, json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	in := stdin
	if cfg.Input.Path != "" {
		f, err := os.Open(cfg.Input.Path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	src, err := wordsource.New(in, cfg.Input.Charset, wordsource.WithSentinel(cfg.Input.Sentinel))
	if err != nil {
		return err
	}

	match, err := tree.MatcherFor(cfg.Search.Policy)
	if err != nil {
		return err
	}
	t := trie.New(trie.WithFinder(tree.NewFinder(tree.WithMatcher(match))))

	if err := load(t, src, cfg.Input, logger); err != nil {
		return err
	}

	nodes := t.ComputeSizes()
	shared, err := t.LargestSharedSubtree()
	if err != nil {
		return err
	}

	if shared == nil {
		logger.Info().Int("nodes", nodes).Msg("no repeated subtree")
		_, err = fmt.Fprintln(stdout, 0)
		return err
	}
	logger.Info().
		Int("nodes", nodes).
		Int("size", shared.Size()).
		Str("encoding", shared.String()).
		Msg("largest shared subtree")
	_, err = fmt.Fprintf(stdout, "%d %s\n", shared.Size(), shared)
	return err
}

// load adds every word of src to t
func load(t *trie.Trie, src *wordsource.Source, cfg config.InputConfig, logger zerolog.Logger) error {
	for src.Next() {
		word := src.Word()
		if err := t.Add(word); err != nil {
			if cfg.Strict {
				return fmt.Errorf("line %d: %w", src.Line(), err)
			}
			logger.Warn().Err(err).Int("line", src.Line()).Str("word", word).Msg("skipping word")
			continue
		}
		if cfg.Trace {
			logger.Info().Str("word", word).Str("encoding", t.String()).Msg("added")
		}
	}
	if err := src.Error(); err != nil {
		return err
	}
	logger.Debug().Int("words", t.Len()).Msg("input complete")
	return nil
}
