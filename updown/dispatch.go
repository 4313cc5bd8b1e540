// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "github.com/rogerhh/sparsechol/ldl"

// kernels and kernelsBoth are the dispatch tables of the specialized
// sweeps, indexed by log2 of the workspace width.
var kernels = [4]func(update bool, f *ldl.Factor, start, end, rank int, w, alpha []float64, dbound float64) int{
	updown1, updown2, updown4, updown8,
}

var kernelsBoth = [4]func(f *ldl.Factor, start, end, rank int, w, wd, alphaC, alphaD []float64, dbound float64) int{
	updown1c, updown2c, updown4c, updown8c,
}

// Width returns the workspace width used for a modification of the
// given total rank: the smallest power of two that holds it.
func Width(rank int) int {
	switch {
	case rank <= 1:
		return 1
	case rank <= 2:
		return 2
	case rank <= 4:
		return 4
	default:
		return 8
	}
}

func log2w(wdim int) int {
	switch wdim {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	}
	return 3
}

// Numeric performs the numerical stage of a rank-r update (+C·Cᵀ) or
// downdate (−C·Cᵀ) of the factor f, following a path plan produced by
// NewPlan or by the caller. r is the number of columns of c, at most 8.
//
// w is the caller-owned row-major n×Width(r) workspace and alpha the
// per-column scalar vector of length Width(r); both are treated as
// scratch. w must be entirely zero on entry and is zero again on
// return. The leaf descriptors of the plan drive the scatter of c into
// w, filtered by mask/maskmark when mask is non-nil (rows i with
// mask[i] >= maskmark are left out). Neither w, alpha, nor mask may
// alias each other or any array of f.
//
// The sparsity pattern of f is never modified. Numeric reports whether
// the factor is still positive definite; on false the sweep has still
// completed and opts.NotPosDef (when opts is non-nil) has been advanced
// by the number of offending columns.
func Numeric(update bool, c *ldl.Sparse, f *ldl.Factor, w, alpha []float64, paths []Path, mask []int, maskmark int, opts *Options) (ok bool) {
	rank := c.NCol
	if rank < 1 || rank > 8 {
		panic(badRank)
	}
	if f.N != c.NRow {
		panic(mismatchedC)
	}
	wdim := Width(rank)
	if len(w) < f.N*wdim {
		panic(shortW)
	}
	if len(alpha) < wdim {
		panic(shortAlpha)
	}
	if mask != nil && len(mask) < f.N {
		panic(badMask)
	}
	checkPlan(f, paths, rank, wdim)

	for k := 0; k < wdim; k++ {
		alpha[k] = 1
	}
	for k := 0; k < rank; k++ {
		scatter(c, paths[k].CCol, w, wdim, k, mask, maskmark)
	}

	dbound := opts.dbound()
	kern := kernels[log2w(wdim)]
	nbad := 0
	for _, pa := range paths {
		if pa.Start < 0 {
			continue
		}
		nbad += kern(update, f, pa.Start, pa.End, pa.Rank, w[pa.WFirst:], alpha[pa.WFirst:], dbound)
	}
	opts.countNotPosDef(nbad)
	return nbad == 0
}

// NumericCombined is the combined variant of Numeric: it applies
// +C·Cᵀ − D·Dᵀ in a single sweep. c and d must share their nonzero
// pattern; wd and alphaD play the roles of w and alpha for the downdate
// term and obey the same contracts.
func NumericCombined(c, d *ldl.Sparse, f *ldl.Factor, w, wd, alpha, alphaD []float64, paths []Path, mask []int, maskmark int, opts *Options) (ok bool) {
	rank := c.NCol
	if rank < 1 || rank > 8 {
		panic(badRank)
	}
	if f.N != c.NRow || c.NRow != d.NRow || c.NCol != d.NCol {
		panic(mismatchedC)
	}
	wdim := Width(rank)
	if len(w) < f.N*wdim || len(wd) < f.N*wdim {
		panic(shortW)
	}
	if len(alpha) < wdim || len(alphaD) < wdim {
		panic(shortAlpha)
	}
	if mask != nil && len(mask) < f.N {
		panic(badMask)
	}
	checkPlan(f, paths, rank, wdim)

	for k := 0; k < wdim; k++ {
		alpha[k] = 1
		alphaD[k] = 1
	}
	for k := 0; k < rank; k++ {
		scatter(c, paths[k].CCol, w, wdim, k, mask, maskmark)
		scatter(d, paths[k].CCol, wd, wdim, k, mask, maskmark)
	}

	dbound := opts.dbound()
	kern := kernelsBoth[log2w(wdim)]
	nbad := 0
	for _, pa := range paths {
		if pa.Start < 0 {
			continue
		}
		nbad += kern(f, pa.Start, pa.End, pa.Rank, w[pa.WFirst:], wd[pa.WFirst:], alpha[pa.WFirst:], alphaD[pa.WFirst:], dbound)
	}
	opts.countNotPosDef(nbad)
	return nbad == 0
}
