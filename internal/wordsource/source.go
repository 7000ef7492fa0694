// Package wordsource reads the line-oriented word stream fed to the trie
// driver: one word per line until a sentinel line or end of input.
package wordsource

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Supported input charsets
const (
	CharsetUTF8    = "utf-8"
	CharsetLatin1  = "iso-8859-1"
	CharsetWindows = "windows-1252"
)

// DefaultSentinel ends the word stream
const DefaultSentinel = "***"

// maxLineSize bounds a single input line
const maxLineSize = 1024 * 1024

var decoders = map[string]*charmap.Charmap{
	CharsetLatin1:  charmap.ISO8859_1,
	CharsetWindows: charmap.Windows1252,
}

// SupportedCharset reports whether New accepts charset
func SupportedCharset(charset string) bool {
	if charset == CharsetUTF8 {
		return true
	}
	_, ok := decoders[charset]
	return ok
}

// Source iterates over the words of an input stream
type Source struct {
	scanner  *bufio.Scanner
	sentinel string
	word     string
	line     int
	done     bool
}

// Option configures a Source
type Option func(*Source)

// WithSentinel sets the line that ends the stream. Lines are compared with
// surrounding whitespace removed. An empty sentinel reads until end of input.
func WithSentinel(sentinel string) Option {
	return func(s *Source) {
		s.sentinel = sentinel
	}
}

// New creates a Source reading r, decoded from charset into UTF-8
func New(r io.Reader, charset string, opts ...Option) (*Source, error) {
	switch {
	case charset == "" || charset == CharsetUTF8:
	case decoders[charset] != nil:
		r = decoders[charset].NewDecoder().Reader(r)
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024), maxLineSize)

	s := &Source{
		scanner:  scanner,
		sentinel: DefaultSentinel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Next advances to the next word and reports whether there is one
func (s *Source) Next() bool {
	if s.done {
		return false
	}
	if !s.scanner.Scan() {
		s.done = true
		return false
	}
	s.line++
	word := strings.TrimSpace(s.scanner.Text())
	if s.sentinel != "" && word == s.sentinel {
		s.done = true
		return false
	}
	s.word = word
	return true
}

// Word returns the current word with surrounding whitespace removed
func (s *Source) Word() string {
	return s.word
}

// Line returns the 1-based line number of the current word
func (s *Source) Line() int {
	return s.line
}

// Error returns the first read error, if any
func (s *Source) Error() error {
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("failed to read words: %w", err)
	}
	return nil
}
