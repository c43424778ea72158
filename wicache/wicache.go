// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wicache persists an ntt.Cache's W_i evaluation tables to disk,
// so a long-running process doesn't recompute them on every restart.
package wicache

import (
	"bytes"
	"encoding/binary"
	"os"
	"sort"

	"github.com/gofrs/flock"
	"github.com/luxfi/binius/biniuserr"
	"github.com/luxfi/binius/binfield16"
	"github.com/luxfi/binius/ntt"
	"github.com/zeebo/blake3"
)

// formatVersion is bumped whenever the on-disk encoding changes shape.
const formatVersion uint32 = 1

// Save writes c's tables to path as a deterministic, versioned record: a
// 4-byte format version, each dimension's table sorted by point and
// length-prefixed, followed by a 32-byte BLAKE3 checksum of everything
// that precedes it. Concurrent writers to the same path are serialized
// via a "<path>.lock" sibling file.
func Save(c *ntt.Cache, path string) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return biniuserr.Precondition("wicache: acquiring lock for %s: %v", path, err)
	}
	defer lock.Unlock()

	var buf bytes.Buffer
	var versionBytes [4]byte
	binary.LittleEndian.PutUint32(versionBytes[:], formatVersion)
	buf.Write(versionBytes[:])

	tables := c.Tables()
	var dimCount [4]byte
	binary.LittleEndian.PutUint32(dimCount[:], uint32(len(tables)))
	buf.Write(dimCount[:])

	for _, table := range tables {
		points := make([]uint16, 0, len(table))
		for pt := range table {
			points = append(points, pt)
		}
		sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })

		var entryCount [4]byte
		binary.LittleEndian.PutUint32(entryCount[:], uint32(len(points)))
		buf.Write(entryCount[:])

		for _, pt := range points {
			var entry [4]byte
			binary.LittleEndian.PutUint16(entry[0:2], pt)
			binary.LittleEndian.PutUint16(entry[2:4], uint16(table[pt]))
			buf.Write(entry[:])
		}
	}

	checksum := blake3.Sum256(buf.Bytes())
	buf.Write(checksum[:])

	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// Load reads a cache previously written by Save. A checksum mismatch is
// reported as a biniuserr.IntegrityFault; callers should discard the
// file and rebuild the cache from scratch.
func Load(path string) (*ntt.Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, biniuserr.Precondition("wicache: reading %s: %v", path, err)
	}
	if len(data) < 4+4+32 {
		return nil, biniuserr.IntegrityFault(biniuserr.Precondition("wicache: %s is too short", path))
	}

	body, checksum := data[:len(data)-32], data[len(data)-32:]
	want := blake3.Sum256(body)
	if !bytes.Equal(want[:], checksum) {
		return nil, biniuserr.IntegrityFault(biniuserr.Precondition("wicache: checksum mismatch in %s", path))
	}

	r := bytes.NewReader(body)
	var versionBytes, dimCountBytes [4]byte
	if _, err := r.Read(versionBytes[:]); err != nil {
		return nil, biniuserr.IntegrityFault(err)
	}
	version := binary.LittleEndian.Uint32(versionBytes[:])
	if version != formatVersion {
		return nil, biniuserr.IntegrityFault(biniuserr.Precondition("wicache: unsupported format version %d", version))
	}
	if _, err := r.Read(dimCountBytes[:]); err != nil {
		return nil, biniuserr.IntegrityFault(err)
	}
	dimCount := binary.LittleEndian.Uint32(dimCountBytes[:])

	tables := make([]map[uint16]binfield16.Element, dimCount)
	for dim := range tables {
		var entryCountBytes [4]byte
		if _, err := r.Read(entryCountBytes[:]); err != nil {
			return nil, biniuserr.IntegrityFault(err)
		}
		entryCount := binary.LittleEndian.Uint32(entryCountBytes[:])

		table := make(map[uint16]binfield16.Element, entryCount)
		for i := uint32(0); i < entryCount; i++ {
			var entry [4]byte
			if _, err := r.Read(entry[:]); err != nil {
				return nil, biniuserr.IntegrityFault(err)
			}
			pt := binary.LittleEndian.Uint16(entry[0:2])
			val := binary.LittleEndian.Uint16(entry[2:4])
			table[pt] = binfield16.Element(val)
		}
		tables[dim] = table
	}

	return ntt.NewCacheFromTables(tables), nil
}
