// Package tree implements a binary tree of single-character nodes and the
// structural algorithms the left-child/right-sibling trie is built on.
package tree

const (
	// EndOfWord is stored in a node that marks a complete word ahead of
	// the children of the same position
	EndOfWord byte = '@'

	// Empty is the token written for an absent child during serialization
	Empty = "#"

	staleSize = -1
)

// Node is a binary tree node. When used as a trie, Left is the first child
// of a position and Right is the next sibling in ascending order.
type Node struct {
	// Data is a Latin-1 code point
	Data  byte
	Left  *Node
	Right *Node

	// size is the node count of the subtree rooted here. It is only valid
	// after ComputeSizes has visited the node.
	size int
}

// New creates a node whose size has not been computed yet
func New(data byte, left, right *Node) *Node {
	return &Node{
		Data:  data,
		Left:  left,
		Right: right,
		size:  staleSize,
	}
}

// Size returns the cached subtree size, 0 for a nil node and -1 if
// ComputeSizes has never reached n
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return n.size
}

// String returns the preorder encoding of the subtree rooted at n
func (n *Node) String() string {
	return Encode(n)
}
