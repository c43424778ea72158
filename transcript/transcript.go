// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transcript derives the verifier's column-query indices from a
// commitment's Merkle root, giving prover and verifier a shared,
// Fiat-Shamir-style source of "randomness" without an interactive round
// trip.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"
)

// GetChallenges derives numChallenges column indices in
// [0, extendedRowLength) from root. Challenge i is the first two bytes
// of SHA-256(root || byte(i)), read little-endian, reduced mod
// extendedRowLength.
func GetChallenges(root []byte, extendedRowLength, numChallenges int) []uint16 {
	out := make([]uint16, numChallenges)
	for i := 0; i < numChallenges; i++ {
		buf := make([]byte, len(root)+1)
		copy(buf, root)
		buf[len(root)] = byte(i)
		digest := sha256.Sum256(buf)
		challenge := binary.LittleEndian.Uint16(digest[:2]) % uint16(extendedRowLength)
		out[i] = challenge
	}
	return out
}
