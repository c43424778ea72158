// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package clmul implements carryless (GF(2) polynomial) multiplication of
// two 64-bit operands, the primitive binfield128.Mul builds its
// Karatsuba decomposition on top of.
//
// Two portable strategies are provided: a schoolbook shift-and-xor
// implementation used as the reference in tests, and a 4-bit-window
// table-based implementation used on the hot path. Both are pure Go.
// klauspost/cpuid/v2 is used only to report whether the host advertises
// hardware carryless-multiply instructions (PCLMULQDQ on amd64, PMULL on
// arm64); no assembly backend is wired to that report yet — see
// HardwareAvailable's doc comment.
package clmul

import "github.com/klauspost/cpuid/v2"

var hardwareAvailable bool

func init() {
	hardwareAvailable = cpuid.CPU.Supports(cpuid.PCLMULQDQ) || cpuid.CPU.Supports(cpuid.PMULL)
}

// HardwareAvailable reports whether the host CPU advertises a
// carryless-multiply instruction (PCLMULQDQ/PMULL). Mul64 always runs
// the portable table-based strategy regardless of this report — pcs.Engine
// surfaces it as a Stats diagnostic so callers can tell whether they are
// leaving hardware clmul on the table. A hardware backend is a natural
// extension point behind Mul64, but
// shipping hand-written, unverifiable assembly for a 2030-spec PCS core
// was judged not worth the risk (see DESIGN.md).
func HardwareAvailable() bool { return hardwareAvailable }

// Mul64 computes the carryless (XOR, no-carry) product of a and b as a
// 128-bit result (hi, lo).
func Mul64(a, b uint64) (hi, lo uint64) {
	return mul64Table(a, b)
}

// wide128 holds a 128-bit carryless value: mul64Table's running product,
// and its table entries, since a's multiple by a 4-bit window can reach
// degree deg(a)+3 and so does not fit in a single 64-bit word the way a
// 1-bit window would.
type wide128 struct{ hi, lo uint64 }

func shiftLeft1(w wide128) wide128 {
	return wide128{hi: w.hi<<1 | w.lo>>63, lo: w.lo << 1}
}

func xor128(a, b wide128) wide128 {
	return wide128{hi: a.hi ^ b.hi, lo: a.lo ^ b.lo}
}

// shiftLeftN shifts a wide128 left by n bits, 0 <= n < 64. Go defines
// x >> s for s >= the operand's width as 0, so the n == 0 case (where
// lo >> 64 would otherwise need special-casing) falls out correctly.
func shiftLeftN(w wide128, n uint) wide128 {
	return wide128{hi: w.hi<<n | w.lo>>(64-n), lo: w.lo << n}
}

// mul64Bitwise is the schoolbook shift-and-xor carryless multiply: for
// each set bit i of b, XOR (a << i) into the running 128-bit product.
// Used as the reference implementation that mul64Table is differentially
// tested against.
func mul64Bitwise(a, b uint64) (hi, lo uint64) {
	for i := 0; i < 64; i++ {
		if b&(1<<uint(i)) == 0 {
			continue
		}
		if i == 0 {
			lo ^= a
			continue
		}
		lo ^= a << uint(i)
		hi ^= a >> uint(64-i)
	}
	return hi, lo
}

// mul64Table multiplies in 4-bit windows of b, using a precomputed table
// of a's first 16 multiples (0..15) to fold 4 bits per outer iteration
// instead of 1. This is the same windowing idea multisubset.XOR applies
// to subset-XOR, applied here to single-bit-polynomial multiplication.
//
// Each table entry is a*i for a 4-bit i, which can reach degree
// deg(a)+3 — up to 66 — so entries are carried as wide128, not uint64;
// a table of plain uint64 multiples silently drops every product that
// crosses bit 63.
func mul64Table(a, b uint64) (hi, lo uint64) {
	var table [16]wide128
	// table[i] = a * i (carryless), built incrementally: table[2k] =
	// table[k] << 1, table[2k+1] = table[2k] ^ a.
	table[0] = wide128{}
	table[1] = wide128{hi: 0, lo: a}
	for i := uint64(2); i < 16; i++ {
		table[i] = shiftLeft1(table[i>>1])
		if i&1 == 1 {
			table[i] = xor128(table[i], table[1])
		}
	}

	var acc wide128
	for shift := 0; shift < 64; shift += 4 {
		nibble := (b >> uint(shift)) & 0xF
		if nibble == 0 {
			continue
		}
		acc = xor128(acc, shiftLeftN(table[nibble], uint(shift)))
	}
	return acc.hi, acc.lo
}
