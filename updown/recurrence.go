// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "math"

// diagUpdown applies the Davis–Hager alpha/gamma recurrence to one
// diagonal entry dj for a rank-len(z) modification. sign is +1 for an
// update (+C·Cᵀ) and -1 for a downdate (−C·Cᵀ). z holds the workspace
// row at the diagonal's column, captured before the column sweep; g
// receives the per-rank coefficients applied to the off-diagonal
// entries, with the polarity folded in so the sweep is sign-free. alpha
// carries the running scalars across columns and is advanced in place.
//
// The returned diagonal has the dbound clamp applied when dbound > 0.
// bad reports loss of positive definiteness: a non-positive alpha step,
// a non-positive resulting diagonal, or a non-finite one (the recurrence
// divides by quantities it does not guard, so overflow or an exact zero
// surfaces here rather than as a quiet NaN downstream).
func diagUpdown(dj, sign float64, z, g, alpha []float64, dbound float64) (dnew float64, bad bool) {
	for k := range z {
		a := alpha[k] + sign*z[k]*z[k]/dj
		dj *= a
		g[k] = -sign * z[k] / dj
		dj /= alpha[k]
		alpha[k] = a
		if a <= 0 {
			bad = true
		}
	}
	if !(dj > 0) || math.IsInf(dj, 0) {
		bad = true
	}
	if dbound > 0 && dj < dbound {
		dj = dbound
	}
	return dj, bad
}

// diagUpdownBoth is the combined variant of diagUpdown: per rank it
// applies the update half for zc followed by the downdate half for zd,
// in that fixed order. The order is load-bearing for bitwise
// reproducibility of the combined kernels and must match the order the
// off-diagonal sweep applies gc and gd.
func diagUpdownBoth(dj float64, zc, gc, zd, gd, alphaC, alphaD []float64, dbound float64) (dnew float64, bad bool) {
	for k := range zc {
		a := alphaC[k] + zc[k]*zc[k]/dj
		dj *= a
		gc[k] = -zc[k] / dj
		dj /= alphaC[k]
		alphaC[k] = a
		if a <= 0 {
			bad = true
		}

		a = alphaD[k] - zd[k]*zd[k]/dj
		dj *= a
		gd[k] = zd[k] / dj
		dj /= alphaD[k]
		alphaD[k] = a
		if a <= 0 {
			bad = true
		}
	}
	if !(dj > 0) || math.IsInf(dj, 0) {
		bad = true
	}
	if dbound > 0 && dj < dbound {
		dj = dbound
	}
	return dj, bad
}
