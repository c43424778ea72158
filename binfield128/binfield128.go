// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package binfield128 implements arithmetic in GF(2^128) under the
// reduction polynomial x^128 + x^7 + x^2 + x + 1, the field used for
// evaluation points, tensor-product coefficients, and t' in the
// commitment protocol.
package binfield128

import (
	"github.com/luxfi/binius/binfield16"
	"github.com/luxfi/binius/internal/clmul"
)

// Element is a single element of GF(2^128). The zero value is the
// additive identity; low-order bits occupy Lo.
type Element struct {
	Hi, Lo uint64
}

// One is the multiplicative identity.
var One = Element{Hi: 0, Lo: 1}

// reductionWord is x^7+x^2+x+1, the low part of the reduction
// polynomial: x^128 is congruent to it, so a word at bit offset 128+k
// folds down to offset k once multiplied by this constant.
const reductionWord = uint64(1)<<7 | uint64(1)<<2 | uint64(1)<<1 | 1

// Add is field addition: XOR of both limbs.
func Add(a, b Element) Element {
	return Element{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo}
}

// Sub equals Add in characteristic 2.
func Sub(a, b Element) Element { return Add(a, b) }

// Neg is the identity in characteristic 2.
func Neg(a Element) Element { return a }

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool { return a.Hi == 0 && a.Lo == 0 }

// Mul computes a*b in GF(2^128) via Karatsuba-decomposed carryless
// multiplication of the two 64-bit-halved operands, followed by
// reduction modulo x^128+x^7+x^2+x+1.
//
// The structure is Low/High/Mid carryless products, a combine into the
// 256-bit product, then a reduction via two more clmuls: each of the two
// high 64-bit words is multiplied by x^7+x^2+x+1 and folded 128 bits
// down, the top word first so that its overflow is folded in turn.
func Mul(a, b Element) Element {
	lowHi, lowLo := clmul.Mul64(a.Lo, b.Lo)
	highHi, highLo := clmul.Mul64(a.Hi, b.Hi)
	midHi, midLo := clmul.Mul64(a.Lo^a.Hi, b.Lo^b.Hi)

	// Karatsuba combine into the 256-bit product's four 64-bit words
	// [x3:x2:x1:x0], equivalently the two 128-bit halves x01={x1,x0}
	// and x23={x3,x2}.
	x0 := lowLo
	x1 := midLo ^ lowHi ^ highLo ^ lowLo
	x2 := midHi ^ highLo ^ highHi ^ lowHi
	x3 := highHi

	// Reduction: x3*x^192 = x3*x^64*x^128 folds to x3*(x^7+x^2+x+1) at
	// bit 64, and its overflow (at most 7 bits) lands in x2; then
	// x2*x^128 folds to x2*(x^7+x^2+x+1) at bit 0.
	h3, l3 := clmul.Mul64(x3, reductionWord)
	x2 ^= h3
	x1 ^= l3
	h2, l2 := clmul.Mul64(x2, reductionWord)
	x1 ^= h2
	x0 ^= l2

	return Element{Hi: x1, Lo: x0}
}

// Pow computes a^e by binary exponentiation.
func Pow(a Element, e uint64) Element {
	result := One
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = Mul(result, base)
		}
		base = Mul(base, base)
		e >>= 1
	}
	return result
}

// Inv computes the multiplicative inverse of a nonzero element as
// a^(2^128-2) (every bit of the exponent except bit 0 is set, since
// Pow's uint64 exponent can't hold 2^128-2 directly). Inv(Zero) is
// undefined; callers must not invoke it.
func Inv(a Element) Element {
	if a.IsZero() {
		panic("binfield128: inverse of zero is undefined")
	}
	result := One
	sq := Mul(a, a) // a^2, the first term of the exponent's binary ladder
	for i := 1; i < 128; i++ {
		result = Mul(result, sq)
		sq = Mul(sq, sq)
	}
	return result
}

// IntToBigbin decomposes a into its little-endian 16-bit limbs, lowest
// limb first.
func IntToBigbin(a Element) [8]uint16 {
	var out [8]uint16
	out[0] = uint16(a.Lo)
	out[1] = uint16(a.Lo >> 16)
	out[2] = uint16(a.Lo >> 32)
	out[3] = uint16(a.Lo >> 48)
	out[4] = uint16(a.Hi)
	out[5] = uint16(a.Hi >> 16)
	out[6] = uint16(a.Hi >> 32)
	out[7] = uint16(a.Hi >> 48)
	return out
}

// Bits decomposes a into its 128 bits, least-significant first, by
// decomposing each of its bigbin limbs in turn.
func Bits(a Element) []byte {
	limbs := IntToBigbin(a)
	wrapped := make([]binfield16.Uint16Like, len(limbs))
	for i, l := range limbs {
		wrapped[i] = binfield16.RawU16(l)
	}
	return binfield16.Uint16sToBits(wrapped)
}

// BigbinToInt is IntToBigbin's inverse.
func BigbinToInt(limbs [8]uint16) Element {
	lo := uint64(limbs[0]) | uint64(limbs[1])<<16 | uint64(limbs[2])<<32 | uint64(limbs[3])<<48
	hi := uint64(limbs[4]) | uint64(limbs[5])<<16 | uint64(limbs[6])<<32 | uint64(limbs[7])<<48
	return Element{Hi: hi, Lo: lo}
}
