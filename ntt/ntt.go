// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ntt implements the additive NTT over GF(2^16) and its inverse,
// the row-extension operation built on top of them, and the WiCache
// lookup table of W_i polynomial evaluations both NTT directions consume.
package ntt

import (
	"sync"

	"github.com/luxfi/binius/binfield16"
)

// Cache memoizes W_i(pt) evaluations per dimension. W_i(x) is the unique
// polynomial of degree 2^i that is 0 on {0,...,2^i-1} and 1 on 2^i. The
// zero value is ready to use.
//
// Grounded on original_source's WiEvalCache (binary_ntt.rs): a
// Vec<HashMap<B16,B16>> grown lazily as higher dimensions are requested,
// translated here into a slice of maps guarded by a single RWMutex
// (read-mostly after warmup, matching spec.md §5's "mutex strictly
// during initialization, read-only after" resource model).
type Cache struct {
	mu     sync.RWMutex
	tables []map[uint16]binfield16.Element
}

// NewCache returns an empty, ready-to-use cache.
func NewCache() *Cache {
	return &Cache{}
}

// NewCacheFromTables builds a Cache pre-seeded with previously computed
// tables, as loaded by wicache.Load.
func NewCacheFromTables(tables []map[uint16]binfield16.Element) *Cache {
	return &Cache{tables: tables}
}

// Tables returns the cache's current per-dimension tables, for
// persistence by wicache.Save. The returned slice and maps must not be
// mutated by the caller.
func (c *Cache) Tables() []map[uint16]binfield16.Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables
}

// Wi returns W_dim(pt), computing and memoizing it (and any dimension it
// depends on) on first request.
func (c *Cache) Wi(dim int, pt uint16) binfield16.Element {
	if dim == 0 {
		return binfield16.Element(pt)
	}

	c.mu.RLock()
	if dim < len(c.tables) {
		if v, ok := c.tables[dim][pt]; ok {
			c.mu.RUnlock()
			return v
		}
	}
	c.mu.RUnlock()

	prev := c.Wi(dim-1, pt)
	prevQuot := c.Wi(dim-1, uint16(1)<<uint(dim))

	num := binfield16.Mul(prev, binfield16.Add(prev, binfield16.One))
	denomBase := binfield16.Mul(prevQuot, binfield16.Add(prevQuot, binfield16.One))
	invQuot := binfield16.Inv(denomBase)
	result := binfield16.Mul(num, invQuot)

	c.mu.Lock()
	for len(c.tables) <= dim {
		c.tables = append(c.tables, nil)
	}
	if c.tables[dim] == nil {
		c.tables[dim] = make(map[uint16]binfield16.Element)
	}
	c.tables[dim][pt] = result
	c.mu.Unlock()

	return result
}

// log2 returns the base-2 logarithm of a power of two n.
func log2(n int) int {
	l := 0
	for (1 << uint(l)) < n {
		l++
	}
	return l
}

// Forward runs the additive NTT in place over vals, converting
// polynomial coefficients into evaluations on the domain shifted by
// start. len(vals) must be a power of two.
func Forward(c *Cache, vals []binfield16.Element, start int) {
	n := len(vals)
	for step := n / 2; step >= 1; step >>= 1 {
		halflen := step
		dim := log2(halflen)
		for i := 0; i < n; i += 2 * step {
			coeff := c.Wi(dim, uint16(start+i))
			for j := 0; j < halflen; j++ {
				l := vals[i+j]
				r := vals[i+j+halflen]
				newL := binfield16.Add(l, binfield16.Mul(r, coeff))
				vals[i+j] = newL
				vals[i+j+halflen] = binfield16.Add(newL, r)
			}
		}
	}
}

// Inverse runs the inverse additive NTT in place over vals, converting
// evaluations back into polynomial coefficients. len(vals) must be a
// power of two.
func Inverse(c *Cache, vals []binfield16.Element, start int) {
	n := len(vals)
	for step := 1; step <= n/2; step <<= 1 {
		halflen := step
		dim := log2(halflen)
		for i := 0; i < n; i += 2 * step {
			coeff := c.Wi(dim, uint16(start+i))
			coeffPlus1 := binfield16.Add(coeff, binfield16.One)
			for j := 0; j < halflen; j++ {
				l := vals[i+j]
				r := vals[i+j+halflen]
				vals[i+j] = binfield16.Add(binfield16.Mul(l, coeffPlus1), binfield16.Mul(r, coeff))
				vals[i+j+halflen] = binfield16.Add(l, r)
			}
		}
	}
}

// Extend returns the Reed-Solomon row extension of row by factor: the
// evaluations, on a domain factor times larger, of the unique polynomial
// whose coefficients are row's inverse-NTT. len(row) must be a power of
// two; factor must be >= 1.
func Extend(c *Cache, row []binfield16.Element, factor int) []binfield16.Element {
	coeffs := make([]binfield16.Element, len(row))
	copy(coeffs, row)
	Inverse(c, coeffs, 0)

	padded := make([]binfield16.Element, len(row)*factor)
	copy(padded, coeffs)

	Forward(c, padded, 0)
	return padded
}
