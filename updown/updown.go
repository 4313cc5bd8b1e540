// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "github.com/rogerhh/sparsechol/ldl"

// Update rewrites f in place so that it factors A + C·Cᵀ, where A is
// the matrix f currently factors and c holds C. The sparsity pattern of
// f is unchanged. opts may be nil.
//
// A non-nil error is ErrNotPosDef: the perturbed matrix is not positive
// definite (or a diagonal overflowed). The factor has still been fully
// rewritten and opts.NotPosDef counts the offending columns; whether
// that is fatal is the caller's decision.
func Update(f *ldl.Factor, c *ldl.Sparse, opts *Options) error {
	return apply(true, f, c, nil, 0, opts)
}

// Downdate rewrites f in place so that it factors A − C·Cᵀ. See Update.
func Downdate(f *ldl.Factor, c *ldl.Sparse, opts *Options) error {
	return apply(false, f, c, nil, 0, opts)
}

// UpdateMask is Update or Downdate restricted to the rows i of C with
// mask[i] < maskmark; the other rows are treated as zero. Callers use
// it to apply a modification to a subset of the rows, typically
// revisiting the remainder later with an adjusted mask.
func UpdateMask(update bool, f *ldl.Factor, c *ldl.Sparse, mask []int, maskmark int, opts *Options) error {
	return apply(update, f, c, mask, maskmark, opts)
}

func apply(update bool, f *ldl.Factor, c *ldl.Sparse, mask []int, maskmark int, opts *Options) error {
	paths := NewPlan(f, c, mask, maskmark)
	wdim := Width(c.NCol)
	w := getW(f.N * wdim)
	alpha := make([]float64, wdim)
	ok := Numeric(update, c, f, w, alpha, paths, mask, maskmark, opts)
	putW(w)
	if !ok {
		return ErrNotPosDef
	}
	return nil
}

// UpdateDowndate rewrites f in place so that it factors
// A + C·Cᵀ − D·Dᵀ in a single sweep. c and d must have the same
// dimensions and nonzero pattern. See Update for the error contract.
func UpdateDowndate(f *ldl.Factor, c, d *ldl.Sparse, opts *Options) error {
	if !c.SamePattern(d) {
		return ErrPatternMismatch
	}
	paths := NewPlan(f, c, nil, 0)
	wdim := Width(c.NCol)
	w := getW(f.N * wdim)
	wd := getW(f.N * wdim)
	alpha := make([]float64, wdim)
	alphaD := make([]float64, wdim)
	ok := NumericCombined(c, d, f, w, wd, alpha, alphaD, paths, nil, 0, opts)
	putW(w)
	putW(wd)
	if !ok {
		return ErrNotPosDef
	}
	return nil
}
