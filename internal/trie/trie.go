package trie

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/tree"
)

var (
	// ErrEmptyWord is returned when adding a word with no characters
	ErrEmptyWord = errors.New("trie: empty word")

	// ErrInvalidWord is returned when a word contains anything other than
	// Latin-1 letters
	ErrInvalidWord = errors.New("trie: invalid character in word")

	// ErrSizesStale is returned by LargestSharedSubtree when the trie changed
	// after the last ComputeSizes
	ErrSizesStale = errors.New("trie: sizes not computed since last change")

	// ErrCorrupt is returned by Check when the encoding breaks the sibling ordering
	ErrCorrupt = errors.New("trie: corrupt encoding")
)

// Trie stores a set of words as a left-child/right-sibling binary tree.
// A Trie is not safe for concurrent use.
type Trie struct {
	// root is the first character of the top level sibling chain
	root *tree.Node

	finder *tree.Finder

	// sized reports whether every cached size is current
	sized bool

	// generation counts structural changes
	generation uint64
}

// Option configures a Trie
type Option func(*Trie)

// WithFinder sets the finder used by LargestSharedSubtree
func WithFinder(f *tree.Finder) Option {
	return func(t *Trie) {
		if f != nil {
			t.finder = f
		}
	}
}

// New creates a new empty trie
func New(opts ...Option) *Trie {
	t := &Trie{
		finder: tree.NewFinder(),
		sized:  true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Validate checks that word can be added to a trie
func Validate(word string) error {
	_, err := key(word)
	return err
}

// key converts word into the Latin-1 code points stored in the tree. Every
// letter sorts after tree.EndOfWord.
func key(word string) ([]byte, error) {
	if word == "" {
		return nil, ErrEmptyWord
	}
	k := make([]byte, 0, len(word))
	for i, r := range word {
		if r > unicode.MaxLatin1 || !unicode.IsLetter(r) {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidWord, r, i)
		}
		k = append(k, byte(r))
	}
	return k, nil
}

// text converts stored code points back into a word
func text(k []byte) string {
	rs := make([]rune, len(k))
	for i, c := range k {
		rs[i] = rune(c)
	}
	return string(rs)
}

func isLetter(c byte) bool {
	return unicode.IsLetter(rune(c))
}

// Root returns the tree implementing the trie
func (t *Trie) Root() *tree.Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Generation returns a counter that changes whenever the tree changes.
// Node references taken from the trie are only meaningful while it holds.
func (t *Trie) Generation() uint64 {
	return t.generation
}

// Reset drops every word
func (t *Trie) Reset() {
	if t.root == nil {
		return
	}
	t.root = nil
	t.touch()
}

func (t *Trie) touch() {
	t.sized = false
	t.generation++
}

// ComputeSizes caches the subtree size in every node and returns the
// number of nodes in the tree
func (t *Trie) ComputeSizes() int {
	n := tree.ComputeSizes(t.root)
	t.sized = true
	return n
}

// LargestSharedSubtree returns one occurrence of the largest subtree that
// appears at two or more places in the tree, or nil if none does.
// ComputeSizes must have run since the last change.
func (t *Trie) LargestSharedSubtree() (*tree.Node, error) {
	if !t.sized {
		return nil, ErrSizesStale
	}
	return t.finder.FindLargest(t.root), nil
}

// Equal reports whether both tries hold the same words. A nil trie holds
// no words.
func (t *Trie) Equal(other *Trie) bool {
	return tree.Equal(t.Root(), other.Root())
}

// Isomorphic compares the implementing trees, letting children of a node
// match in either order
func (t *Trie) Isomorphic(other *Trie) bool {
	return tree.Isomorphic(t.Root(), other.Root())
}

// String returns the preorder encoding of the implementing tree
func (t *Trie) String() string {
	return tree.Encode(t.root)
}
