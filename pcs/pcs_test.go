// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pcs

import (
	"testing"

	"github.com/luxfi/binius/binfield128"
	"github.com/luxfi/binius/ntt"
	"github.com/stretchr/testify/require"
)

func allOnes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func allOnePoint(n int) []binfield128.Element {
	out := make([]binfield128.Element, n)
	for i := range out {
		out[i] = binfield128.One
	}
	return out
}

func TestCommitKnownRoot(t *testing.T) {
	cache := ntt.NewCache()
	evaluations := allOnes(1 << 20)

	commitment, err := Commit(cache, evaluations)
	require.NoError(t, err)

	want := []byte{
		0x0E, 0x89, 0x01, 0xB6, 0x20, 0x49, 0x88, 0x7F,
		0xED, 0xDA, 0x27, 0x0B, 0x05, 0xF3, 0x86, 0x5F,
		0x6A, 0x9E, 0xBD, 0xA1, 0x5D, 0x72, 0xA9, 0x71,
		0x18, 0x17, 0xD7, 0x80, 0x10, 0x6A, 0x38, 0x5A,
	}
	require.Equal(t, want, commitment.Root[:])
}

func TestProveKnownVectors(t *testing.T) {
	cache := ntt.NewCache()
	evaluations := allOnes(1 << 20)

	commitment, err := Commit(cache, evaluations)
	require.NoError(t, err)

	point := allOnePoint(23)
	proof, err := Prove(cache, commitment, point)
	require.NoError(t, err)

	require.Equal(t, binfield128.Element{}, proof.Eval)
	require.Equal(t, binfield128.One, proof.TPrime[0])

	wantBranch74 := []byte{
		0x57, 0x10, 0x67, 0x73, 0x3B, 0xE7, 0xA3, 0xBD,
		0x97, 0x60, 0x29, 0x6D, 0xE2, 0xE7, 0xFB, 0x2A,
		0xCC, 0x9A, 0x23, 0x34, 0x08, 0x3A, 0xFC, 0xBD,
		0x33, 0x29, 0x04, 0x1D, 0x1E, 0x1F, 0xD4, 0x56,
	}
	require.Equal(t, wantBranch74, proof.Branches[7][4][:])
}

func TestCommitProveVerifyRoundTrip(t *testing.T) {
	cache := ntt.NewCache()
	evaluations := allOnes(1 << 20)

	commitment, err := Commit(cache, evaluations)
	require.NoError(t, err)

	point := allOnePoint(23)
	proof, err := Prove(cache, commitment, point)
	require.NoError(t, err)

	ok, err := Verify(cache, commitment, proof, point)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsTamperedEval(t *testing.T) {
	cache := ntt.NewCache()
	evaluations := allOnes(1 << 20)

	commitment, err := Commit(cache, evaluations)
	require.NoError(t, err)

	point := allOnePoint(23)
	proof, err := Prove(cache, commitment, point)
	require.NoError(t, err)

	proof.Eval = binfield128.Add(proof.Eval, binfield128.One)

	ok, err := Verify(cache, commitment, proof, point)
	require.Error(t, err)
	require.False(t, ok)
}

func TestVerifyRejectsTamperedOpenedColumn(t *testing.T) {
	cache := ntt.NewCache()
	evaluations := allOnes(1 << 20)

	commitment, err := Commit(cache, evaluations)
	require.NoError(t, err)

	point := allOnePoint(23)
	proof, err := Prove(cache, commitment, point)
	require.NoError(t, err)

	proof.OpenedColumns[0][0] ^= 1

	ok, err := Verify(cache, commitment, proof, point)
	require.Error(t, err)
	require.False(t, ok)
}

func TestVerifyRejectsTamperedBranch(t *testing.T) {
	cache := ntt.NewCache()
	evaluations := allOnes(1 << 20)

	commitment, err := Commit(cache, evaluations)
	require.NoError(t, err)

	point := allOnePoint(23)
	proof, err := Prove(cache, commitment, point)
	require.NoError(t, err)

	proof.Branches[0][0][0] ^= 1

	ok, err := Verify(cache, commitment, proof, point)
	require.Error(t, err)
	require.False(t, ok)
}
