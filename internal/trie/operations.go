package trie

import (
	"fmt"
	"iter"

	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/tree"
)

// Add inserts word into the trie. Adding a word that is already present
// leaves the tree untouched.
func (t *Trie) Add(word string) error {
	k, err := key(word)
	if err != nil {
		return err
	}
	root, changed := insert(t.root, k, 0, true)
	t.root = root
	if changed {
		t.touch()
	}
	return nil
}

// insert adds word[i:] below the sibling chain head, which lists the
// children of the position spelled by word[:i]. It returns the new head
// and whether anything changed.
func insert(head *tree.Node, word []byte, i int, atRoot bool) (*tree.Node, bool) {
	if i == len(word) {
		if head == nil || head.Data == tree.EndOfWord {
			return head, false
		}
		return tree.New(tree.EndOfWord, nil, head), true
	}

	ch := word[i]
	if head == nil {
		suffix := chain(word[i:])
		if atRoot {
			return suffix, true
		}
		// word[:i] ended here before; keep it as a marker ahead of ch.
		return tree.New(tree.EndOfWord, nil, suffix), true
	}

	var prev *tree.Node
	c := head
	for c != nil && c.Data < ch {
		prev, c = c, c.Right
	}

	if c != nil && c.Data == ch {
		left, changed := insert(c.Left, word, i+1, false)
		c.Left = left
		return head, changed
	}

	n := chain(word[i:])
	n.Right = c
	if prev == nil {
		return n, true
	}
	prev.Right = n
	return head, true
}

// chain builds the left spine spelling s
func chain(s []byte) *tree.Node {
	var n *tree.Node
	for i := len(s) - 1; i >= 0; i-- {
		n = tree.New(s[i], n, nil)
	}
	return n
}

// Contains reports whether word was added to the trie
func (t *Trie) Contains(word string) bool {
	k, err := key(word)
	if err != nil {
		return false
	}
	head := t.root
	for _, ch := range k {
		c := head
		for c != nil && c.Data < ch {
			c = c.Right
		}
		if c == nil || c.Data != ch {
			return false
		}
		head = c.Left
	}
	return head == nil || head.Data == tree.EndOfWord
}

// Words yields every word in the trie in ascending order
func (t *Trie) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		collect(t.root, nil, yield)
	}
}

// collect yields the words below the sibling chain head. A left step
// appends a character to prefix and an empty chain ends a word.
func collect(head *tree.Node, prefix []byte, yield func(string) bool) bool {
	if head == nil {
		if len(prefix) == 0 {
			return true
		}
		if prefix[len(prefix)-1] == tree.EndOfWord {
			prefix = prefix[:len(prefix)-1]
		}
		return yield(text(prefix))
	}
	for n := head; n != nil; n = n.Right {
		path := append(prefix[:len(prefix):len(prefix)], n.Data)
		if !collect(n.Left, path, yield) {
			return false
		}
	}
	return true
}

// AllWords returns every word in the trie
func (t *Trie) AllWords() []string {
	words := []string{}
	for w := range t.Words() {
		words = append(words, w)
	}
	return words
}

// Len returns the number of words in the trie
func (t *Trie) Len() int {
	n := 0
	for range t.Words() {
		n++
	}
	return n
}

// Check verifies that every sibling chain is strictly ascending and that
// end-of-word markers only lead chains below a character
func (t *Trie) Check() error {
	if t.root != nil && t.root.Data == tree.EndOfWord {
		return fmt.Errorf("%w: end-of-word marker at top level", ErrCorrupt)
	}
	heads := []*tree.Node{t.root}
	for len(heads) > 0 {
		head := heads[len(heads)-1]
		heads = heads[:len(heads)-1]
		var prev *tree.Node
		for n := head; n != nil; prev, n = n, n.Right {
			if prev != nil && n.Data <= prev.Data {
				return fmt.Errorf("%w: %q out of order after %q", ErrCorrupt, n.Data, prev.Data)
			}
			if n.Data == tree.EndOfWord {
				if n.Left != nil {
					return fmt.Errorf("%w: end-of-word marker has children", ErrCorrupt)
				}
				continue
			}
			if !isLetter(n.Data) {
				return fmt.Errorf("%w: unexpected character %q", ErrCorrupt, n.Data)
			}
			if n.Left != nil {
				heads = append(heads, n.Left)
			}
		}
	}
	return nil
}
