// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package grid implements the packing, transpose, and tensor-product
// plumbing that sits between a flat evaluation bitstring and the
// row/column grid the commitment scheme hashes and extends.
package grid

import (
	"github.com/luxfi/binius/binfield128"
	"github.com/luxfi/binius/binfield16"
	"github.com/luxfi/binius/ntt"
)

// ChooseRowLengthAndCount picks a near-square grid shape for a bitstring
// of 2^logEvaluationCount bits, returning (logRowLength, logRowCount,
// rowLength, rowCount).
func ChooseRowLengthAndCount(logEvaluationCount int) (logRowLength, logRowCount, rowLength, rowCount int) {
	logRowLength = (logEvaluationCount + 2) / 2
	logRowCount = (logEvaluationCount - 1) / 2
	rowLength = 1 << uint(logRowLength)
	rowCount = 1 << uint(logRowCount)
	return
}

// PackRows reads evaluations (row-major, little-endian) into rowCount
// rows of rowLength/packingFactor BinField16 cells, packingFactor bits
// per cell.
func PackRows(evaluations []byte, rowCount, rowLength, packingFactor int) [][]binfield16.Element {
	packedRowLength := rowLength / packingFactor
	rows := make([][]binfield16.Element, rowCount)
	for i := 0; i < rowCount; i++ {
		row := make([]binfield16.Element, packedRowLength)
		for j := 0; j < packedRowLength; j++ {
			start := i*rowLength/8 + j*packingFactor/8
			row[j] = binfield16.Element(evaluations[start]) | binfield16.Element(evaluations[start+1])<<8
		}
		rows[i] = row
	}
	return rows
}

// PackRow is PackRows' single-row variant. Unlike PackRows, it
// bit-reverses each input byte before composing the 16-bit cell — used
// only when the verifier re-packs bit columns of t' for re-extension.
// Both sides must agree on this exact bit order; see ComputeTPrime and
// the verifier's re-extension step.
func PackRow(evaluations []byte, rowLength, packingFactor int) []binfield16.Element {
	n := rowLength / packingFactor
	row := make([]binfield16.Element, n)
	for j := 0; j < n; j++ {
		start := j * packingFactor / 8
		b0 := reverseBits(evaluations[start])
		b1 := reverseBits(evaluations[start+1])
		row[j] = binfield16.Element(b0) | binfield16.Element(b1)<<8
	}
	return row
}

func reverseBits(b byte) byte {
	var out byte
	for i := 0; i < 8; i++ {
		out |= ((b >> uint(i)) & 1) << uint(7-i)
	}
	return out
}

// ExtendRows row-extends each row by factor, using c to cache Wi
// evaluations across all rows.
func ExtendRows(c *ntt.Cache, rows [][]binfield16.Element, factor int) [][]binfield16.Element {
	out := make([][]binfield16.Element, len(rows))
	for i, row := range rows {
		out[i] = ntt.Extend(c, row, factor)
	}
	return out
}

// Transpose returns the transpose of a BinField16 matrix: output[j][i]
// = input[i][j].
func Transpose(input [][]binfield16.Element) [][]binfield16.Element {
	rows, cols := len(input), len(input[0])
	output := make([][]binfield16.Element, cols)
	for j := 0; j < cols; j++ {
		output[j] = make([]binfield16.Element, rows)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			output[j][i] = input[i][j]
		}
	}
	return output
}

// TransposeBits transposes an r x c bit matrix, where each input row is
// c unpacked bit bytes (each 0 or 1 — the representation
// binfield16.Bits/Uint16sToBits produce). The output is c rows of
// ceil(r/8) packed bytes, with output row j, byte i/8, bit (r-1-i)%8
// holding input bit M[i][j]. This exact bit order is the contract the
// verifier regenerates t' bits against.
func TransposeBits(input [][]byte) [][]byte {
	r := len(input)
	c := len(input[0])
	outBytes := (r + 7) / 8
	output := make([][]byte, c)
	for j := range output {
		output[j] = make([]byte, outBytes)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if input[i][j] != 0 {
				output[j][i/8] |= 1 << uint((r-1-i)%8)
			}
		}
	}
	return output
}

// Transpose3D permutes the three axes of a 3-D bit tensor according to
// order, which must be (0,2,1) or (1,2,0).
func Transpose3D(matrix [][][]byte, order [3]int) [][][]byte {
	dim0, dim1, dim2 := len(matrix), len(matrix[0]), len(matrix[0][0])

	switch order {
	case [3]int{0, 2, 1}:
		out := make([][][]byte, dim0)
		for i := range out {
			out[i] = make([][]byte, dim2)
			for k := range out[i] {
				out[i][k] = make([]byte, dim1)
			}
		}
		for i := 0; i < dim0; i++ {
			for j := 0; j < dim1; j++ {
				for k := 0; k < dim2; k++ {
					out[i][k][j] = matrix[i][j][k]
				}
			}
		}
		return out
	case [3]int{1, 2, 0}:
		out := make([][][]byte, dim1)
		for j := range out {
			out[j] = make([][]byte, dim2)
			for k := range out[j] {
				out[j][k] = make([]byte, dim0)
			}
		}
		for i := 0; i < dim0; i++ {
			for j := 0; j < dim1; j++ {
				for k := 0; k < dim2; k++ {
					out[j][k][i] = matrix[i][j][k]
				}
			}
		}
		return out
	default:
		panic("grid: unsupported transpose3D order")
	}
}

// EvaluationTensorProduct builds the length-2^k vector o of BinField128
// values where o_b = prod_{i: b_i=1} pt_i * prod_{i: b_i=0} (pt_i+1),
// computed iteratively: start with o=[1]; for each pt, append o*pt to
// o^(o*pt) (i.e. replace o with o⊕(o·pt) followed by o·pt).
func EvaluationTensorProduct(pts []binfield128.Element) []binfield128.Element {
	o := []binfield128.Element{binfield128.One}
	for _, pt := range pts {
		timesPt := make([]binfield128.Element, len(o))
		for i, x := range o {
			timesPt[i] = binfield128.Mul(x, pt)
		}
		newO := make([]binfield128.Element, 0, len(o)*2)
		for i, x := range o {
			newO = append(newO, binfield128.Add(x, timesPt[i]))
		}
		newO = append(newO, timesPt...)
		o = newO
	}
	return o
}

// ComputeTPrime computes t'[i] = XOR over b in [0,rowCount) of
// bit(bitsTranspose[i], b) * rowCombination[b]. bitsTranspose has shape
// (rowLength, ceil(rowCount/8)) bytes, rowCombination has length
// rowCount. XOR over a bit selection commutes with the bigbin
// limb decomposition, so accumulating directly on BinField128 elements
// (rather than on their 8 uint16 limbs) produces the identical result
// while keeping t' in the representation bigMul consumes downstream.
func ComputeTPrime(bitsTranspose [][]byte, rowCombination []binfield128.Element) []binfield128.Element {
	rowCount := len(rowCombination)
	rowLength := len(bitsTranspose)
	tPrime := make([]binfield128.Element, rowLength)
	for i := 0; i < rowLength; i++ {
		var acc binfield128.Element
		for b := 0; b < rowCount; b++ {
			byteIdx := b / 8
			bitIdx := uint((rowCount - 1 - b) % 8)
			bit := (bitsTranspose[i][byteIdx] >> bitIdx) & 1
			if bit == 0 {
				continue
			}
			acc = binfield128.Add(acc, rowCombination[b])
		}
		tPrime[i] = acc
	}
	return tPrime
}
