// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package proofcodec gives commitments and proofs a concrete,
// inspectable wire encoding (CBOR) without baking a transport format
// choice into pcs's operational types.
package proofcodec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/binius/biniuserr"
	"github.com/luxfi/binius/binfield128"
	"github.com/luxfi/binius/binfield16"
	"github.com/luxfi/binius/pcs"
)

// WireCommitment carries only the public fields of a pcs.Commitment —
// the retained grid and Merkle tree stay local to the committing
// process and are never serialized.
type WireCommitment struct {
	Root       [32]byte `cbor:"root"`
	PackedCols [][]byte `cbor:"packed_cols"`
}

// WireProof is the CBOR-tagged counterpart of pcs.Proof. Field values
// are flattened to plain integer types so the encoding doesn't depend
// on this module's internal element representations.
type WireProof struct {
	Point         [][2]uint64  `cbor:"point"`
	Eval          [2]uint64    `cbor:"eval"`
	TPrime        [][2]uint64  `cbor:"t_prime"`
	OpenedColumns [][]uint16   `cbor:"opened_columns"`
	Branches      [][][32]byte `cbor:"branches"`
}

// EncodeCommitment converts c to its wire form and CBOR-encodes it.
func EncodeCommitment(c *pcs.Commitment) ([]byte, error) {
	wire := WireCommitment{Root: c.Root, PackedCols: c.PackedCols}
	data, err := cbor.Marshal(wire)
	if err != nil {
		return nil, biniuserr.Precondition("proofcodec: encoding commitment: %v", err)
	}
	return data, nil
}

// DecodeCommitment CBOR-decodes bytes produced by EncodeCommitment back
// into a pcs.Commitment usable as Verify's commitment argument. The
// returned Commitment has no retained grid or Merkle tree — Verify only
// ever reads Root and PackedCols.
func DecodeCommitment(data []byte) (*pcs.Commitment, error) {
	var wire WireCommitment
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, biniuserr.Precondition("proofcodec: decoding commitment: %v", err)
	}
	return pcs.NewVerifierCommitment(wire.Root, wire.PackedCols), nil
}

// EncodeProof converts p to its wire form and CBOR-encodes it.
func EncodeProof(p *pcs.Proof) ([]byte, error) {
	wire := WireProof{
		Point:         elementsToWords(p.Point),
		Eval:          elementToWords(p.Eval),
		TPrime:        elementsToWords(p.TPrime),
		OpenedColumns: columnsToUint16(p.OpenedColumns),
		Branches:      p.Branches,
	}
	data, err := cbor.Marshal(wire)
	if err != nil {
		return nil, biniuserr.Precondition("proofcodec: encoding proof: %v", err)
	}
	return data, nil
}

// DecodeProof CBOR-decodes bytes produced by EncodeProof back into a
// pcs.Proof.
func DecodeProof(data []byte) (*pcs.Proof, error) {
	var wire WireProof
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, biniuserr.Precondition("proofcodec: decoding proof: %v", err)
	}
	return &pcs.Proof{
		Point:         wordsToElements(wire.Point),
		Eval:          wordsToElement(wire.Eval),
		TPrime:        wordsToElements(wire.TPrime),
		OpenedColumns: uint16ToColumns(wire.OpenedColumns),
		Branches:      wire.Branches,
	}, nil
}

func elementToWords(e binfield128.Element) [2]uint64 { return [2]uint64{e.Hi, e.Lo} }

func wordsToElement(w [2]uint64) binfield128.Element {
	return binfield128.Element{Hi: w[0], Lo: w[1]}
}

func elementsToWords(es []binfield128.Element) [][2]uint64 {
	out := make([][2]uint64, len(es))
	for i, e := range es {
		out[i] = elementToWords(e)
	}
	return out
}

func wordsToElements(ws [][2]uint64) []binfield128.Element {
	out := make([]binfield128.Element, len(ws))
	for i, w := range ws {
		out[i] = wordsToElement(w)
	}
	return out
}

func columnsToUint16(cols [][]binfield16.Element) [][]uint16 {
	out := make([][]uint16, len(cols))
	for i, col := range cols {
		row := make([]uint16, len(col))
		for j, e := range col {
			row[j] = uint16(e)
		}
		out[i] = row
	}
	return out
}

func uint16ToColumns(rows [][]uint16) [][]binfield16.Element {
	out := make([][]binfield16.Element, len(rows))
	for i, row := range rows {
		col := make([]binfield16.Element, len(row))
		for j, v := range row {
			col[j] = binfield16.Element(v)
		}
		out[i] = col
	}
	return out
}
