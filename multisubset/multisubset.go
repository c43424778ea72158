// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package multisubset computes many XOR-subset-sums of a shared value
// set efficiently, using the grouped-precomputation trick behind
// Pippenger-style multi-scalar-multiplication algorithms (see
// https://ethresear.ch/t/7238), specialized here to XOR instead of
// elliptic-curve addition.
package multisubset

import "github.com/luxfi/binius/binfield128"

// Grouping is the subset size each precomputed table covers. 4 values
// per group means a 16-entry XOR table per group (2^4 subsets),
// matching the nibble-packing convention XOR's callers use to select
// table entries.
const Grouping = 4

// XOR computes, for every (a,b) index pair, the XOR-sum of the subset
// of values selected by bits[a][b]: a length-len(values) slice of 0/1
// bytes, one per value, in the same order as values. len(values) must
// be a multiple of Grouping.
//
// This is a throughput optimization of the naive definition
// (out[a][b] = XOR over n where bits[a][b][n]!=0 of values[n]) — see
// XORNaive, which must agree with XOR on every input.
func XOR(values []binfield128.Element, bits [][][]byte) [][]binfield128.Element {
	groupCount := len(values) / Grouping
	subsets := buildSubsetTables(values, groupCount)

	out := make([][]binfield128.Element, len(bits))
	for a, row := range bits {
		out[a] = make([]binfield128.Element, len(row))
		for b, selector := range row {
			var acc binfield128.Element
			for g := 0; g < groupCount; g++ {
				nibble := packNibble(selector, g)
				acc = binfield128.Add(acc, subsets[g][nibble])
			}
			out[a][b] = acc
		}
	}
	return out
}

// XORNaive computes the same result as XOR by direct subset summation,
// with no grouped precomputation. Used as XOR's reference in tests.
func XORNaive(values []binfield128.Element, bits [][][]byte) [][]binfield128.Element {
	out := make([][]binfield128.Element, len(bits))
	for a, row := range bits {
		out[a] = make([]binfield128.Element, len(row))
		for b, selector := range row {
			var acc binfield128.Element
			for n, bit := range selector {
				if bit != 0 {
					acc = binfield128.Add(acc, values[n])
				}
			}
			out[a][b] = acc
		}
	}
	return out
}

// buildSubsetTables precomputes, for each group of Grouping consecutive
// values, the XOR-sum of every one of the group's 2^Grouping subsets,
// indexed by a bitmask of which group members participate.
func buildSubsetTables(values []binfield128.Element, groupCount int) [][]binfield128.Element {
	subsets := make([][]binfield128.Element, groupCount)
	for g := range subsets {
		subsets[g] = make([]binfield128.Element, 1<<Grouping)
	}

	for g := 0; g < groupCount; g++ {
		for i := 0; i < Grouping; i++ {
			subsets[g][1<<uint(i)] = values[g*Grouping+i]
		}
	}

	topPowerOfTwo := 2
	for mask := 3; mask < 1<<Grouping; mask++ {
		if mask&(mask-1) == 0 {
			topPowerOfTwo = mask
			continue
		}
		for g := 0; g < groupCount; g++ {
			subsets[g][mask] = binfield128.Add(subsets[g][topPowerOfTwo], subsets[g][mask-topPowerOfTwo])
		}
	}
	return subsets
}

// packNibble packs bits[g*Grouping : g*Grouping+Grouping] into a
// least-significant-bit-first nibble, matching the bit order
// binfield16.Bits/Uint16sToBits produce.
func packNibble(bits []byte, g int) byte {
	var nibble byte
	for i := 0; i < Grouping; i++ {
		if bits[g*Grouping+i] != 0 {
			nibble |= 1 << uint(i)
		}
	}
	return nibble
}
