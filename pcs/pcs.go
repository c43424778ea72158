// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pcs implements the binary-field polynomial commitment scheme:
// pack an evaluation bitstring into a grid, Reed-Solomon extend its rows,
// Merkle-commit the transposed columns, and open/verify evaluations at
// an arbitrary point via row/column tensor-product folding.
package pcs

import (
	"math/bits"

	"github.com/luxfi/binius/biniuserr"
	"github.com/luxfi/binius/binfield128"
	"github.com/luxfi/binius/binfield16"
	"github.com/luxfi/binius/grid"
	"github.com/luxfi/binius/merkle"
	"github.com/luxfi/binius/multisubset"
	"github.com/luxfi/binius/ntt"
	"github.com/luxfi/binius/transcript"
)

// Protocol parameters. Changing any of these changes the wire format.
const (
	ExpansionFactor = 8
	NumChallenges   = 32
	PackingFactor   = 16
)

// Commitment is the prover's retained state after committing to an
// evaluation bitstring: the public root plus everything needed to answer
// future Prove calls. Only Root and PackedCols are ever transmitted (see
// proofcodec.WireCommitment).
type Commitment struct {
	Root       [32]byte
	PackedCols [][]byte
	Rows       [][]binfield16.Element
	Columns    [][]binfield16.Element

	tree *merkle.Tree
}

// Proof is the prover's response to a Prove query at a given point.
type Proof struct {
	Point         []binfield128.Element
	Eval          binfield128.Element
	TPrime        []binfield128.Element
	OpenedColumns [][]binfield16.Element
	Branches      [][][32]byte
}

// NewVerifierCommitment builds a Commitment usable only as Verify's
// commitment argument, from the public fields carried over the wire
// (see proofcodec.WireCommitment). The retained grid and Merkle tree
// are absent; Verify never needs them.
func NewVerifierCommitment(root [32]byte, packedCols [][]byte) *Commitment {
	return &Commitment{Root: root, PackedCols: packedCols}
}

// Commit packs evaluations into a grid, Reed-Solomon extends each row,
// and Merkle-commits the transposed columns. len(evaluations)*8 must be
// a power of two.
func Commit(cache *ntt.Cache, evaluations []byte) (*Commitment, error) {
	logEvaluationCount, err := exactLog2(len(evaluations) * 8)
	if err != nil {
		return nil, err
	}

	_, _, rowLength, rowCount := grid.ChooseRowLengthAndCount(logEvaluationCount)

	rows := grid.PackRows(evaluations, rowCount, rowLength, PackingFactor)
	extendedRows := grid.ExtendRows(cache, rows, ExpansionFactor)
	columns := grid.Transpose(extendedRows)

	packedCols := make([][]byte, len(columns))
	for i, col := range columns {
		packedCols[i] = binfield16.SerializeColumn(col)
	}

	tree, err := merkle.Build(packedCols)
	if err != nil {
		return nil, err
	}

	return &Commitment{
		Root:       tree.Root(),
		PackedCols: packedCols,
		Rows:       rows,
		Columns:    columns,
		tree:       tree,
	}, nil
}

// Prove opens commitment at point, which must have exactly
// log2(len(evaluations)*8) coordinates.
func Prove(cache *ntt.Cache, commitment *Commitment, point []binfield128.Element) (*Proof, error) {
	logEvaluationCount := len(point)
	logRowLength, _, rowLength, rowCount := grid.ChooseRowLengthAndCount(logEvaluationCount)
	if len(commitment.Rows) != rowCount || len(commitment.Rows[0])*PackingFactor != rowLength {
		return nil, biniuserr.Precondition("pcs: point length %d does not match commitment's grid", len(point))
	}
	extendedRowLength := rowLength * ExpansionFactor / PackingFactor

	rowComb := grid.EvaluationTensorProduct(point[logRowLength:])
	if len(rowComb) != rowCount {
		return nil, biniuserr.Precondition("pcs: row combination length %d, want %d", len(rowComb), rowCount)
	}

	bitsRows := make([][]byte, rowCount)
	for i, row := range commitment.Rows {
		bitsRows[i] = binfield16.Uint16sToBits(row)
	}
	bitsTranspose := grid.TransposeBits(bitsRows)
	tPrime := grid.ComputeTPrime(bitsTranspose, rowComb)

	challenges := transcript.GetChallenges(commitment.Root[:], extendedRowLength, NumChallenges)

	colComb := grid.EvaluationTensorProduct(point[:logRowLength])
	eval := foldEval(tPrime, colComb)

	openedColumns := make([][]binfield16.Element, NumChallenges)
	branches := make([][][32]byte, NumChallenges)
	for i, c := range challenges {
		openedColumns[i] = commitment.Columns[c]
		branches[i] = commitment.tree.Branch(int(c))
	}

	return &Proof{
		Point:         point,
		Eval:          eval,
		TPrime:        tPrime,
		OpenedColumns: openedColumns,
		Branches:      branches,
	}, nil
}

// Verify checks proof against commitment and point, returning (true,
// nil) only if every Merkle branch, the tensor-folded column
// reconstruction, and the final evaluation all check out. It never
// panics: every failure is reported as (false, biniuserr.VerificationFailure).
func Verify(cache *ntt.Cache, commitment *Commitment, proof *Proof, point []binfield128.Element) (bool, error) {
	logEvaluationCount := len(point)
	logRowLength, _, rowLength, rowCount := grid.ChooseRowLengthAndCount(logEvaluationCount)
	extendedRowLength := rowLength * ExpansionFactor / PackingFactor

	if rowLength < PackingFactor || len(commitment.PackedCols) != extendedRowLength ||
		len(proof.TPrime) != rowLength || len(proof.OpenedColumns) != NumChallenges ||
		len(proof.Branches) != NumChallenges {
		return false, biniuserr.VerificationFailure("proof or commitment shape does not match point")
	}
	for _, col := range proof.OpenedColumns {
		if len(col) != rowCount {
			return false, biniuserr.VerificationFailure("opened column length does not match row count")
		}
	}

	challenges := transcript.GetChallenges(commitment.Root[:], extendedRowLength, NumChallenges)

	for i, c := range challenges {
		packedCol := binfield16.SerializeColumn(proof.OpenedColumns[i])
		if !merkle.VerifyBranch(commitment.Root, int(c), packedCol, proof.Branches[i]) {
			return false, biniuserr.VerificationFailure("merkle branch mismatch at challenge index")
		}
		if string(packedCol) != string(commitment.PackedCols[c]) {
			return false, biniuserr.VerificationFailure("opened column does not match committed column")
		}
	}

	rowComb := grid.EvaluationTensorProduct(point[logRowLength:])
	if len(rowComb) != rowCount {
		return false, biniuserr.Precondition("pcs: row combination length %d, want %d", len(rowComb), rowCount)
	}

	// Path A: re-extend t' as its own Reed-Solomon codeword and select
	// the bits at the queried columns.
	tPrimeBitRows := make([][]byte, len(proof.TPrime))
	for i, e := range proof.TPrime {
		tPrimeBitRows[i] = binfield128.Bits(e)
	}
	tPrimeBitsTranspose := grid.TransposeBits(tPrimeBitRows)

	tPrimeColumns := make([][]binfield16.Element, len(tPrimeBitsTranspose))
	for i, row := range tPrimeBitsTranspose {
		tPrimeColumns[i] = grid.PackRow(row, len(tPrimeBitsTranspose[0])*8, PackingFactor)
	}
	extendedTPrimeColumns := grid.ExtendRows(cache, tPrimeColumns, ExpansionFactor)

	extendedTPrimeBits := make([][][]byte, len(extendedTPrimeColumns))
	for row, col := range extendedTPrimeColumns {
		extendedTPrimeBits[row] = make([][]byte, NumChallenges)
		for j, c := range challenges {
			extendedTPrimeBits[row][j] = binfield16.Bits(col[c])
		}
	}
	extendedTPrimeBitsTranspose := grid.Transpose3D(extendedTPrimeBits, [3]int{1, 2, 0})

	// Path B: recompute the same folding directly from the opened
	// columns using multi-subset XOR, independent of the re-extension.
	columnBits := make([][][]byte, NumChallenges)
	for i, col := range proof.OpenedColumns {
		columnBits[i] = make([][]byte, len(col))
		for b, e := range col {
			columnBits[i][b] = binfield16.Bits(e)
		}
	}
	transposedColumnBits := grid.Transpose3D(columnBits, [3]int{0, 2, 1})

	computedTPrimes := multisubset.XOR(rowComb, transposedColumnBits)
	computedTPrimeBits := make([][][]byte, len(computedTPrimes))
	for a, row := range computedTPrimes {
		computedTPrimeBits[a] = make([][]byte, len(row))
		for b, e := range row {
			computedTPrimeBits[a][b] = binfield128.Bits(e)
		}
	}

	if !bitTensorsEqual(computedTPrimeBits, extendedTPrimeBitsTranspose) {
		return false, biniuserr.VerificationFailure("reconstructed column tensor does not match re-extended t-prime")
	}

	colComb := grid.EvaluationTensorProduct(point[:logRowLength])
	computedEval := foldEval(proof.TPrime, colComb)
	if computedEval != proof.Eval {
		return false, biniuserr.VerificationFailure("recomputed evaluation does not match proof.Eval")
	}

	return true, nil
}

// foldEval computes XOR_i bigMul(tPrime[i], colComb[i]), the bridge
// between the row-folded t' and the evaluation at a point's column
// coordinates.
func foldEval(tPrime, colComb []binfield128.Element) binfield128.Element {
	var acc binfield128.Element
	for i := range tPrime {
		acc = binfield128.Add(acc, binfield128.Mul(tPrime[i], colComb[i]))
	}
	return acc
}

func bitTensorsEqual(a, b [][][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if len(a[i][j]) != len(b[i][j]) {
				return false
			}
			for k := range a[i][j] {
				if a[i][j][k] != b[i][j][k] {
					return false
				}
			}
		}
	}
	return true
}

// exactLog2 returns log2(n) if n is a positive power of two.
func exactLog2(n int) (int, error) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, biniuserr.Precondition("pcs: %d is not a positive power of two", n)
	}
	return bits.TrailingZeros(uint(n)), nil
}
