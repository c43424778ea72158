// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package merkle implements a binary Merkle tree over packed-column
// leaves, laid out as a flat array (index 1 is the root, the second
// half of the array is the leaf layer), with branch generation and
// verification against just the root.
package merkle

import (
	"crypto/sha256"

	"github.com/luxfi/binius/biniuserr"
)

// Hash returns the SHA-256 digest of x.
func Hash(x []byte) [32]byte {
	return sha256.Sum256(x)
}

// Tree is a flat-array binary Merkle tree: Nodes[i] is the parent of
// Nodes[2i] and Nodes[2i+1]; Nodes[1] is the root; Nodes[len(Nodes)/2:]
// are the leaves. Nodes[0] is unused.
type Tree struct {
	Nodes [][32]byte
}

// Build constructs a Tree over vals, one leaf per entry. len(vals) must
// be a power of two.
func Build(vals [][]byte) (*Tree, error) {
	n := len(vals)
	if n == 0 || n&(n-1) != 0 {
		return nil, biniuserr.Precondition("merkle: leaf count %d is not a power of two", n)
	}

	nodes := make([][32]byte, n*2)
	for i, v := range vals {
		nodes[n+i] = Hash(v)
	}
	for i := n - 1; i >= 1; i-- {
		var combined [64]byte
		copy(combined[:32], nodes[i*2][:])
		copy(combined[32:], nodes[i*2+1][:])
		nodes[i] = Hash(combined[:])
	}
	return &Tree{Nodes: nodes}, nil
}

// Root returns the tree's root hash.
func (t *Tree) Root() [32]byte {
	return t.Nodes[1]
}

// Branch returns the sibling hashes along the path from leaf pos to the
// root, nearest sibling first.
func (t *Tree) Branch(pos int) [][32]byte {
	offsetPos := pos + len(t.Nodes)/2
	branchLength := log2(len(t.Nodes)) - 1
	branch := make([][32]byte, branchLength)
	for i := 0; i < branchLength; i++ {
		branch[i] = t.Nodes[(offsetPos>>uint(i))^1]
	}
	return branch
}

// VerifyBranch checks that val, combined with branch, hashes up to
// root. It requires only the root, not the full tree.
func VerifyBranch(root [32]byte, pos int, val []byte, branch [][32]byte) bool {
	x := Hash(val)
	for _, b := range branch {
		var combined [64]byte
		if pos&1 == 1 {
			copy(combined[:32], b[:])
			copy(combined[32:], x[:])
		} else {
			copy(combined[:32], x[:])
			copy(combined[32:], b[:])
		}
		x = Hash(combined[:])
		pos /= 2
	}
	return x == root
}

func log2(n int) int {
	l := 0
	for (1 << uint(l)) < n {
		l++
	}
	return l
}
