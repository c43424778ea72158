// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package binfield16

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinMulSeeds(t *testing.T) {
	cases := []struct{ a, b, want uint16 }{
		{3, 5, 15},
		{7, 11, 4},
		{8, 2, 12},
		{32147, 48725, 43100},
	}
	for _, c := range cases {
		got := Mul(Element(c.a), Element(c.b))
		require.Equal(t, Element(c.want), got, "binMul(%d,%d)", c.a, c.b)
	}
}

func TestPowAndInv(t *testing.T) {
	require.Equal(t, One, Pow(Element(2), 3))
	require.Equal(t, One, Inv(One))
}

func TestAddIsSelfInverse(t *testing.T) {
	for a := 0; a < 1024; a++ {
		require.Equal(t, Element(0), Add(Element(a), Element(a)))
	}
}

func TestMulIdentityAndInverse(t *testing.T) {
	for a := 1; a < 2048; a++ {
		e := Element(a)
		require.Equal(t, e, Mul(e, One))
		require.Equal(t, One, Mul(e, Inv(e)))
	}
}

func TestMulCommutativeAssociativeDistributive(t *testing.T) {
	sample := []Element{1, 2, 3, 5, 7, 11, 100, 257, 4096, 65535}
	for _, a := range sample {
		for _, b := range sample {
			require.Equal(t, Mul(a, b), Mul(b, a))
			for _, c := range sample {
				require.Equal(t, Mul(Mul(a, b), c), Mul(a, Mul(b, c)))
				require.Equal(t, Mul(a, Add(b, c)), Add(Mul(a, b), Mul(a, c)))
			}
		}
	}
}

func TestBitsRoundTrip(t *testing.T) {
	e := Element(0xACE5)
	b := Bits(e)
	require.Len(t, b, 16)
	var got uint16
	for i, bit := range b {
		got |= uint16(bit) << i
	}
	require.Equal(t, uint16(e), got)
}

func TestUint16sToBits(t *testing.T) {
	vals := []Element{1, 2}
	bits := Uint16sToBits(vals)
	require.Len(t, bits, 32)
	require.Equal(t, byte(1), bits[0])
	for i := 1; i < 16; i++ {
		require.Equal(t, byte(0), bits[i])
	}
	require.Equal(t, byte(1), bits[17])
}

func TestSerializeColumn(t *testing.T) {
	col := []Element{0x0102, 0x0304}
	out := SerializeColumn(col)
	require.Equal(t, []byte{0x02, 0x01, 0x04, 0x03}, out)
}
