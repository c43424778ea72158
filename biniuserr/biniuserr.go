// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package biniuserr defines the error taxonomy shared across the
// commitment-scheme packages: preconditions the caller violated,
// verification failures the protocol itself detected, and integrity
// faults found in persisted state.
package biniuserr

import "github.com/cockroachdb/errors"

// ErrPrecondition roots every error returned when a caller-supplied
// input violates a documented precondition (non-power-of-two length,
// mismatched point dimension, and the like).
var ErrPrecondition = errors.New("biniuserr: precondition violated")

// ErrVerificationFailed roots every error a Verify call returns when a
// proof fails one of its checks. It is never a panic: a failed
// verification is an expected outcome, not a programming error.
var ErrVerificationFailed = errors.New("biniuserr: verification failed")

// ErrIntegrityFault roots every error raised when persisted state (a
// cached Wi table, a loaded commitment) fails an integrity check.
var ErrIntegrityFault = errors.New("biniuserr: integrity fault")

// Precondition formats a precondition-violation error wrapping
// ErrPrecondition.
func Precondition(format string, args ...any) error {
	return errors.WithMessagef(ErrPrecondition, format, args...)
}

// VerificationFailure formats a verification-failure error wrapping
// ErrVerificationFailed, naming the specific check that failed.
func VerificationFailure(reason string) error {
	return errors.WithMessage(ErrVerificationFailed, reason)
}

// IntegrityFault wraps err as an integrity fault rooted at
// ErrIntegrityFault, preserving err's message and stack.
func IntegrityFault(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(errors.Mark(err, ErrIntegrityFault), "integrity fault")
}
