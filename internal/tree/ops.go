package tree

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSizeMismatch is returned by CheckSizes when a cached size disagrees
// with the sizes of the node's children
var ErrSizeMismatch = errors.New("tree: cached size mismatch")

// preorder returns every node under root, parents before children and left
// subtrees before right ones
func preorder(root *Node) []*Node {
	var nodes []*Node
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		nodes = append(nodes, n)
		stack = append(stack, n.Right, n.Left)
	}
	return nodes
}

// Walk calls fn for every node under root in preorder until fn returns false
func Walk(root *Node, fn func(*Node) bool) {
	for _, n := range preorder(root) {
		if !fn(n) {
			return
		}
	}
}

// ComputeSizes stores in every node under root the number of nodes in its
// subtree and returns the size of root
func ComputeSizes(root *Node) int {
	nodes := preorder(root)
	// Every descendant follows its ancestors in preorder, so walking the
	// slice backwards visits children first.
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		n.size = 1 + n.Left.Size() + n.Right.Size()
	}
	return root.Size()
}

// CheckSizes verifies size(n) == 1 + size(left) + size(right) at every node
func CheckSizes(root *Node) error {
	for _, n := range preorder(root) {
		want := 1 + n.Left.Size() + n.Right.Size()
		if n.size != want {
			return fmt.Errorf("%w: node %q has size %d, want %d", ErrSizeMismatch, n.Data, n.size, want)
		}
	}
	return nil
}

// Equal reports whether a and b have the same shape and the same data in
// corresponding positions
func Equal(a, b *Node) bool {
	type pair struct{ a, b *Node }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case p.a == nil && p.b == nil:
			continue
		case p.a == nil || p.b == nil:
			return false
		case p.a.Data != p.b.Data:
			return false
		}
		stack = append(stack, pair{p.a.Left, p.b.Left}, pair{p.a.Right, p.b.Right})
	}
	return true
}

// Isomorphic is like Equal but lets the two children of a node match the
// other node's children in either order
func Isomorphic(a, b *Node) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Data != b.Data {
		return false
	}
	return (Isomorphic(a.Left, b.Left) && Isomorphic(a.Right, b.Right)) ||
		(Isomorphic(a.Left, b.Right) && Isomorphic(a.Right, b.Left))
}

// encode walks the tree in preorder and hands each token to emit
func encode(root *Node, emit func(token string)) {
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			emit(Empty)
			continue
		}
		emit(string(rune(n.Data)))
		stack = append(stack, n.Right, n.Left)
	}
}

// Serialize returns the preorder token sequence of root, with Empty in
// place of every absent child
func Serialize(root *Node) []string {
	var tokens []string
	encode(root, func(token string) {
		tokens = append(tokens, token)
	})
	return tokens
}

// Encode returns the tokens of Serialize joined into one string
func Encode(root *Node) string {
	var sb strings.Builder
	encode(root, func(token string) {
		sb.WriteString(token)
	})
	return sb.String()
}

// Print writes the encoding of root to w
func Print(w io.Writer, root *Node) error {
	if _, err := io.WriteString(w, Encode(root)); err != nil {
		return fmt.Errorf("failed to print tree: %w", err)
	}
	return nil
}
