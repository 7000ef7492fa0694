package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(c byte) *Node {
	return New(c, nil, nil)
}

// sample builds c(a(r(#, t)), d(o(g)))
func sample() *Node {
	return New('c',
		New('a', New('r', nil, leaf('t')), nil),
		New('d', New('o', leaf('g'), nil), nil),
	)
}

func TestComputeSizes(t *testing.T) {
	tests := []struct {
		name string
		root *Node
		want int
	}{
		{name: "nil tree", root: nil, want: 0},
		{name: "single node", root: leaf('a'), want: 1},
		{name: "left only", root: New('a', leaf('b'), nil), want: 2},
		{name: "mixed", root: sample(), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeSizes(tt.root))
			assert.Equal(t, tt.want, tt.root.Size())
			require.NoError(t, CheckSizes(tt.root))
		})
	}
}

func TestComputeSizes_Subtrees(t *testing.T) {
	root := sample()
	ComputeSizes(root)

	assert.Equal(t, 3, root.Left.Size())
	assert.Equal(t, 2, root.Left.Left.Size())
	assert.Equal(t, 1, root.Left.Left.Right.Size())
	assert.Equal(t, 3, root.Right.Size())
}

func TestCheckSizes_Stale(t *testing.T) {
	root := New('a', leaf('b'), nil)
	assert.ErrorIs(t, CheckSizes(root), ErrSizeMismatch)
	assert.Equal(t, -1, root.Size())

	ComputeSizes(root)
	require.NoError(t, CheckSizes(root))

	root.Right = leaf('c')
	assert.ErrorIs(t, CheckSizes(root), ErrSizeMismatch)
}

func TestComputeSizes_LongChain(t *testing.T) {
	const n = 200000
	var root *Node
	for i := 0; i < n; i++ {
		root = New('a', nil, root)
	}

	assert.Equal(t, n, ComputeSizes(root))
	require.NoError(t, CheckSizes(root))
	assert.Len(t, Encode(root), 2*n+1)
	assert.True(t, Equal(root, root))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name       string
		a, b       *Node
		equal      bool
		isomorphic bool
	}{
		{name: "both nil", equal: true, isomorphic: true},
		{name: "one nil", a: leaf('a'), equal: false, isomorphic: false},
		{name: "different data", a: leaf('a'), b: leaf('b'), equal: false, isomorphic: false},
		{name: "same shape", a: sample(), b: sample(), equal: true, isomorphic: true},
		{
			name:       "mirrored children",
			a:          New('a', leaf('b'), leaf('c')),
			b:          New('a', leaf('c'), leaf('b')),
			equal:      false,
			isomorphic: true,
		},
		{
			name:       "child moved from left to right",
			a:          New('a', leaf('b'), nil),
			b:          New('a', nil, leaf('b')),
			equal:      false,
			isomorphic: true,
		},
		{
			name:       "different shape",
			a:          New('a', New('b', leaf('c'), nil), nil),
			b:          New('a', leaf('b'), leaf('c')),
			equal:      false,
			isomorphic: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.a, tt.b))
			assert.Equal(t, tt.equal, Equal(tt.b, tt.a))
			assert.Equal(t, tt.isomorphic, Isomorphic(tt.a, tt.b))
			assert.Equal(t, tt.isomorphic, Isomorphic(tt.b, tt.a))
		})
	}
}

func TestSerialize(t *testing.T) {
	assert.Equal(t, []string{Empty}, Serialize(nil))
	assert.Equal(t, []string{"a", "#", "#"}, Serialize(leaf('a')))
	assert.Equal(t,
		[]string{"c", "a", "r", "#", "t", "#", "#", "#", "d", "o", "g", "#", "#", "#", "#"},
		Serialize(sample()),
	)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "#", Encode(nil))
	assert.Equal(t, "car#t###dog####", Encode(sample()))
	assert.Equal(t, "a@#b###", New('a', New(EndOfWord, nil, leaf('b')), nil).String())

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, sample()))
	assert.Equal(t, "car#t###dog####", buf.String())
}

func TestWalk(t *testing.T) {
	var got []byte
	Walk(sample(), func(n *Node) bool {
		got = append(got, n.Data)
		return true
	})
	assert.Equal(t, "cartdog", string(got))

	got = got[:0]
	Walk(sample(), func(n *Node) bool {
		got = append(got, n.Data)
		return n.Data != 'r'
	})
	assert.Equal(t, "car", string(got))
}
