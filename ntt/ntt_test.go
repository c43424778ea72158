// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ntt

import (
	"testing"

	"github.com/luxfi/binius/binfield16"
	"github.com/stretchr/testify/require"
)

func elems(vals ...uint16) []binfield16.Element {
	out := make([]binfield16.Element, len(vals))
	for i, v := range vals {
		out[i] = binfield16.Element(v)
	}
	return out
}

func TestGetWiEval(t *testing.T) {
	c := NewCache()
	require.Equal(t, binfield16.Element(1), c.Wi(2, 4))
}

func TestForwardNTT(t *testing.T) {
	c := NewCache()
	vals := elems(1, 2, 3, 4)
	Forward(c, vals, 0)
	require.Equal(t, elems(1, 3, 9, 15), vals)
}

func TestInverseNTT(t *testing.T) {
	c := NewCache()
	vals := elems(1, 3, 9, 15)
	Inverse(c, vals, 0)
	require.Equal(t, elems(1, 2, 3, 4), vals)
}

func TestForwardInverseRoundTrip(t *testing.T) {
	c := NewCache()
	original := elems(7, 200, 1, 0, 9999, 4, 2, 1)
	vals := make([]binfield16.Element, len(original))
	copy(vals, original)
	Forward(c, vals, 0)
	Inverse(c, vals, 0)
	require.Equal(t, original, vals)
}

func TestExtend(t *testing.T) {
	c := NewCache()
	row := elems(1, 3, 9, 15)
	result := Extend(c, row, 2)
	require.Equal(t, elems(1, 3, 9, 15, 14, 15, 14, 11), result)
}
