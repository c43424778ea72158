// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package merkle

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashKnownVector(t *testing.T) {
	got := Hash([]byte{1, 2, 3})
	want, err := hex.DecodeString("039058c6f2c0cb492c533b0a4d14ef77cc0f78abccced5287d84a1a2011cfb81")
	require.NoError(t, err)
	require.Equal(t, want, got[:])
}

func TestBuildAndRootKnownVector(t *testing.T) {
	vals := [][]byte{{1, 2}, {3, 4}}
	tree, err := Build(vals)
	require.NoError(t, err)
	want, err := hex.DecodeString("bed3d33a81026f7be93aefad44c5891c27fc8265aa15279a58e287744b7c7753")
	require.NoError(t, err)
	root := tree.Root()
	require.Equal(t, want, root[:])
}

func TestBuildRejectsNonPowerOfTwo(t *testing.T) {
	_, err := Build([][]byte{{1}, {2}, {3}})
	require.Error(t, err)
}

func TestBranchRoundTrip(t *testing.T) {
	vals := [][]byte{{1, 2}, {3, 4}}
	tree, err := Build(vals)
	require.NoError(t, err)
	pos := 1
	branch := tree.Branch(pos)
	ok := VerifyBranch(tree.Root(), pos, vals[pos], branch)
	require.True(t, ok)
}

func TestBranchRoundTripLarger(t *testing.T) {
	vals := [][]byte{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}}
	tree, err := Build(vals)
	require.NoError(t, err)
	for pos := range vals {
		branch := tree.Branch(pos)
		require.True(t, VerifyBranch(tree.Root(), pos, vals[pos], branch))
	}
}

func TestVerifyBranchRejectsTamperedValue(t *testing.T) {
	vals := [][]byte{{1}, {2}, {3}, {4}}
	tree, err := Build(vals)
	require.NoError(t, err)
	branch := tree.Branch(0)
	require.False(t, VerifyBranch(tree.Root(), 0, []byte{99}, branch))
}
