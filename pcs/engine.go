// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pcs

import (
	"sync"
	"sync/atomic"

	"github.com/luxfi/binius/biniuserr"
	"github.com/luxfi/binius/binfield128"
	"github.com/luxfi/binius/internal/clmul"
	"github.com/luxfi/binius/ntt"
	"github.com/luxfi/binius/wicache"
	"github.com/luxfi/log"
)

// Engine is a stateful commitment-scheme façade: it owns a lazily-built,
// shared Wi cache and tracks operation counters, so a long-running
// process doesn't thread cache/logger plumbing through every call site.
type Engine struct {
	cachePath string
	logger    log.Logger

	once  sync.Once
	cache *ntt.Cache

	totalCommits              atomic.Uint64
	totalProves               atomic.Uint64
	totalVerifications        atomic.Uint64
	totalVerificationFailures atomic.Uint64
}

// Stats is a snapshot of Engine's operation counters and host
// diagnostics.
type Stats struct {
	TotalCommits              uint64
	TotalProves               uint64
	TotalVerifications        uint64
	TotalVerificationFailures uint64

	// HardwareCLMULAvailable reports whether the host CPU advertises a
	// carryless-multiply instruction (PCLMULQDQ/PMULL); see
	// internal/clmul.HardwareAvailable.
	HardwareCLMULAvailable bool
}

// NewEngine returns a ready-to-use Engine. cachePath, if non-empty, is
// where the Wi cache is loaded from on first use and where Persist
// writes it; an empty path builds the cache in memory only.
func NewEngine(cachePath string, logger log.Logger) *Engine {
	e := &Engine{cachePath: cachePath, logger: logger}
	if logger != nil && !clmul.HardwareAvailable() {
		logger.Warn("pcs: host lacks hardware carryless-multiply support, using portable fallback")
	}
	return e
}

// wiCache returns the engine's Wi cache, loading it from cachePath (if
// set and readable) or else creating an empty one, exactly once. It
// never writes the cache; Persist does.
func (e *Engine) wiCache() *ntt.Cache {
	e.once.Do(func() {
		if e.cachePath != "" {
			if loaded, err := wicache.Load(e.cachePath); err == nil {
				e.cache = loaded
				return
			} else if e.logger != nil {
				e.logger.Warn("pcs: Wi cache unavailable, rebuilding", "path", e.cachePath, "err", err)
			}
		}
		e.cache = ntt.NewCache()
	})
	return e.cache
}

// Persist saves the engine's current Wi cache to cachePath, if set.
func (e *Engine) Persist() error {
	if e.cachePath == "" {
		return nil
	}
	if err := wicache.Save(e.wiCache(), e.cachePath); err != nil {
		return biniuserr.IntegrityFault(err)
	}
	return nil
}

// Commit wraps the package-level Commit with the engine's shared cache
// and commit counter.
func (e *Engine) Commit(evaluations []byte) (*Commitment, error) {
	c, err := Commit(e.wiCache(), evaluations)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("pcs: commit failed", "err", err)
		}
		return nil, err
	}
	e.totalCommits.Add(1)
	return c, nil
}

// Prove wraps the package-level Prove with the engine's shared cache and
// prove counter.
func (e *Engine) Prove(commitment *Commitment, point []binfield128.Element) (*Proof, error) {
	p, err := Prove(e.wiCache(), commitment, point)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("pcs: prove failed", "err", err)
		}
		return nil, err
	}
	e.totalProves.Add(1)
	return p, nil
}

// Verify wraps the package-level Verify with the engine's shared cache
// and verification counters.
func (e *Engine) Verify(commitment *Commitment, proof *Proof, point []binfield128.Element) (bool, error) {
	ok, err := Verify(e.wiCache(), commitment, proof, point)
	e.totalVerifications.Add(1)
	if err != nil || !ok {
		e.totalVerificationFailures.Add(1)
		if e.logger != nil {
			e.logger.Warn("pcs: verification failed", "err", err)
		}
	}
	return ok, err
}

// Stats returns a snapshot of the engine's operation counters and host
// diagnostics.
func (e *Engine) Stats() Stats {
	return Stats{
		TotalCommits:              e.totalCommits.Load(),
		TotalProves:               e.totalProves.Load(),
		TotalVerifications:        e.totalVerifications.Load(),
		TotalVerificationFailures: e.totalVerificationFailures.Load(),
		HardwareCLMULAvailable:    clmul.HardwareAvailable(),
	}
}
