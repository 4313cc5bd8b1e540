// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "errors"

// Panic strings for structural precondition violations. These indicate a
// bug in the caller or in the symbolic layer, not a numerical failure.
const (
	badRank     = "updown: rank out of range"
	badPlan     = "updown: invalid path plan"
	badPlanLeaf = "updown: leaf path descriptor without source column"
	shortW      = "updown: workspace too short"
	shortAlpha  = "updown: alpha vector too short"
	badMask     = "updown: mask length does not match factor order"
	mismatchedC = "updown: factor and update matrix orders differ"
)

var (
	// ErrNotPosDef is returned when a diagonal entry became non-positive
	// (or non-finite) during the sweep. The factor has still been fully
	// rewritten, but it is no longer a factorization of a positive-definite
	// matrix; Options.NotPosDef counts the offending columns.
	ErrNotPosDef = errors.New("updown: factor is not positive definite")

	// ErrPatternMismatch is returned by the combined variant when the two
	// update matrices do not share a nonzero pattern.
	ErrPatternMismatch = errors.New("updown: update and downdate matrices differ in pattern")
)
