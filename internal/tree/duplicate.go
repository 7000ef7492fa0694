package tree

import "fmt"

// Match policies accepted by MatcherFor
const (
	PolicyIsomorphic = "isomorphic"
	PolicyStrict     = "strict"
)

// minDuplicateSize excludes leaves, which would match trivially
const minDuplicateSize = 2

// MatchFunc reports whether two subtrees count as occurrences of the same shape
type MatchFunc func(a, b *Node) bool

// MatcherFor returns the MatchFunc for a policy name
func MatcherFor(policy string) (MatchFunc, error) {
	switch policy {
	case PolicyIsomorphic, "":
		return Isomorphic, nil
	case PolicyStrict:
		return Equal, nil
	default:
		return nil, fmt.Errorf("unknown match policy %q", policy)
	}
}

// Finder searches a tree for its largest repeated subtree
type Finder struct {
	match MatchFunc
}

// FinderOption configures a Finder
type FinderOption func(*Finder)

// WithMatcher sets the comparison used to decide that two subtrees repeat
func WithMatcher(m MatchFunc) FinderOption {
	return func(f *Finder) {
		if m != nil {
			f.match = m
		}
	}
}

// NewFinder creates a Finder that compares subtrees with Isomorphic unless
// configured otherwise
func NewFinder(opts ...FinderOption) *Finder {
	f := &Finder{match: Isomorphic}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// candidate holds the best subtree seen during one FindLargest call
type candidate struct {
	node *Node
	size int
}

func (c *candidate) offer(n *Node) {
	if n.size > c.size {
		c.node = n
		c.size = n.size
	}
}

// FindLargest returns one occurrence of the largest subtree with at least
// two nodes that matches some other node of the tree. The result points
// into root's tree and is nil when nothing repeats. Sizes under root are
// recomputed first.
func (f *Finder) FindLargest(root *Node) *Node {
	if root == nil {
		return nil
	}
	ComputeSizes(root)
	nodes := preorder(root)

	var best candidate
	for _, t := range nodes {
		if t.size < minDuplicateSize || t.size <= best.size {
			continue
		}
		for _, other := range nodes {
			// Both policies preserve node counts.
			if other == t || other.size != t.size {
				continue
			}
			if f.match(other, t) {
				best.offer(t)
				break
			}
		}
	}
	return best.node
}

// FindLargestDuplicate runs FindLargest with the default Finder
func FindLargestDuplicate(root *Node) *Node {
	return NewFinder().FindLargest(root)
}
