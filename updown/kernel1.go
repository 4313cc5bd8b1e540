// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import (
	"math"

	"github.com/rogerhh/sparsechol/ldl"
)

// diag1 is the width-1 specialization of the alpha/gamma recurrence.
// See diagUpdown for the general form.
func diag1(dj, sign, z float64, alpha []float64, dbound float64) (dnew, g float64, bad bool) {
	a := alpha[0] + sign*z*z/dj
	dj *= a
	g = -sign * z / dj
	dj /= alpha[0]
	alpha[0] = a
	if a <= 0 || !(dj > 0) || math.IsInf(dj, 0) {
		bad = true
	}
	if dbound > 0 && dj < dbound {
		dj = dbound
	}
	return dj, g, bad
}

// updown1 sweeps one elimination-tree path for a rank-1 update
// (sign-selected by update) with workspace stride 1. Columns are fused
// four, two, or one at a time depending on the local pattern; each fused
// group loads and stores every workspace row once. rank is always 1 at
// this width.
func updown1(update bool, f *ldl.Factor, start, end, rank int, w, alpha []float64, dbound float64) (nbad int) {
	_ = rank
	sign := 1.0
	if !update {
		sign = -1.0
	}
	lp, li, lnz, lx := f.ColPtr, f.RowInd, f.ColNz, f.Data
	j := start
	for j <= end {
		p0 := lp[j]
		nz := lnz[j]

		if nz >= 4 {
			j1, j2, j3 := li[p0+1], li[p0+2], li[p0+3]
			if j3 <= end && lnz[j1] == nz-1 && lnz[j2] == nz-2 && lnz[j3] == nz-3 {
				// Quad: columns j, j1, j2, j3 share the pattern below j3.
				p1, p2, p3 := lp[j1], lp[j2], lp[j3]

				z0 := w[j]
				w[j] = 0
				d, g0, bad := diag1(lx[p0], sign, z0, alpha, dbound)
				if bad {
					nbad++
				}
				lx[p0] = d

				// Row j1 closes L(j1,j) and feeds D(j1,j1).
				l0 := lx[p0+1]
				z1 := w[j1] - z0*l0
				w[j1] = 0
				l0 -= g0 * z1
				lx[p0+1] = l0
				d, g1, bad := diag1(lx[p1], sign, z1, alpha, dbound)
				if bad {
					nbad++
				}
				lx[p1] = d

				// Row j2 spans columns j and j1.
				l0 = lx[p0+2]
				l1 := lx[p1+1]
				z2 := w[j2] - z0*l0
				l0 -= g0 * z2
				z2 -= z1 * l1
				l1 -= g1 * z2
				w[j2] = 0
				lx[p0+2] = l0
				lx[p1+1] = l1
				d, g2, bad := diag1(lx[p2], sign, z2, alpha, dbound)
				if bad {
					nbad++
				}
				lx[p2] = d

				// Row j3 spans columns j, j1 and j2.
				l0 = lx[p0+3]
				l1 = lx[p1+2]
				l2 := lx[p2+1]
				z3 := w[j3] - z0*l0
				l0 -= g0 * z3
				z3 -= z1 * l1
				l1 -= g1 * z3
				z3 -= z2 * l2
				l2 -= g2 * z3
				w[j3] = 0
				lx[p0+3] = l0
				lx[p1+2] = l1
				lx[p2+1] = l2
				d, g3, bad := diag1(lx[p3], sign, z3, alpha, dbound)
				if bad {
					nbad++
				}
				lx[p3] = d

				// Shared rows, one row across all four columns per
				// iteration, the four column pointers in lockstep.
				q1, q2, q3 := p1+3, p2+2, p3+1
				for q0 := p0 + 4; q0 < p0+nz; q0++ {
					i := li[q0]
					wi := w[i] - z0*lx[q0]
					lx[q0] -= g0 * wi
					wi -= z1 * lx[q1]
					lx[q1] -= g1 * wi
					wi -= z2 * lx[q2]
					lx[q2] -= g2 * wi
					wi -= z3 * lx[q3]
					lx[q3] -= g3 * wi
					w[i] = wi
					q1++
					q2++
					q3++
				}

				if lnz[j3] == 1 {
					return nbad
				}
				j = li[p3+1]
				continue
			}
		}

		if nz >= 2 {
			j1 := li[p0+1]
			if j1 <= end && lnz[j1] == nz-1 {
				// Dual: columns j and j1 share the pattern below j1.
				p1 := lp[j1]

				z0 := w[j]
				w[j] = 0
				d, g0, bad := diag1(lx[p0], sign, z0, alpha, dbound)
				if bad {
					nbad++
				}
				lx[p0] = d

				l0 := lx[p0+1]
				z1 := w[j1] - z0*l0
				w[j1] = 0
				l0 -= g0 * z1
				lx[p0+1] = l0
				d, g1, bad := diag1(lx[p1], sign, z1, alpha, dbound)
				if bad {
					nbad++
				}
				lx[p1] = d

				q1 := p1 + 1
				for q0 := p0 + 2; q0 < p0+nz; q0++ {
					i := li[q0]
					wi := w[i] - z0*lx[q0]
					lx[q0] -= g0 * wi
					wi -= z1 * lx[q1]
					lx[q1] -= g1 * wi
					w[i] = wi
					q1++
				}

				if lnz[j1] == 1 {
					return nbad
				}
				j = li[p1+1]
				continue
			}
		}

		// Single column.
		z := w[j]
		w[j] = 0
		d, g, bad := diag1(lx[p0], sign, z, alpha, dbound)
		if bad {
			nbad++
		}
		lx[p0] = d
		for q := p0 + 1; q < p0+nz; q++ {
			i := li[q]
			wi := w[i] - z*lx[q]
			w[i] = wi
			lx[q] -= g * wi
		}
		if nz == 1 {
			return nbad
		}
		j = li[p0+1]
	}
	return nbad
}

// diag1Both is the width-1 specialization of the combined recurrence:
// the update half for zc, then the downdate half for zd, per
// diagUpdownBoth.
func diag1Both(dj, zc, zd float64, alphaC, alphaD []float64, dbound float64) (dnew, gc, gd float64, bad bool) {
	a := alphaC[0] + zc*zc/dj
	dj *= a
	gc = -zc / dj
	dj /= alphaC[0]
	alphaC[0] = a
	if a <= 0 {
		bad = true
	}

	a = alphaD[0] - zd*zd/dj
	dj *= a
	gd = zd / dj
	dj /= alphaD[0]
	alphaD[0] = a
	if a <= 0 {
		bad = true
	}

	if !(dj > 0) || math.IsInf(dj, 0) {
		bad = true
	}
	if dbound > 0 && dj < dbound {
		dj = dbound
	}
	return dj, gc, gd, bad
}

// updown1c is the combined update+downdate sweep at width 1: one rank of
// +C·Cᵀ carried in w and one rank of −D·Dᵀ carried in wd, applied in
// that order at every diagonal and every off-diagonal row. Columns fuse
// two at a time; the quad form is provided by the single-polarity
// family only.
func updown1c(f *ldl.Factor, start, end, rank int, w, wd, alphaC, alphaD []float64, dbound float64) (nbad int) {
	_ = rank
	lp, li, lnz, lx := f.ColPtr, f.RowInd, f.ColNz, f.Data
	j := start
	for j <= end {
		p0 := lp[j]
		nz := lnz[j]

		if nz >= 2 {
			j1 := li[p0+1]
			if j1 <= end && lnz[j1] == nz-1 {
				p1 := lp[j1]

				zc0 := w[j]
				zd0 := wd[j]
				w[j] = 0
				wd[j] = 0
				d, gc0, gd0, bad := diag1Both(lx[p0], zc0, zd0, alphaC, alphaD, dbound)
				if bad {
					nbad++
				}
				lx[p0] = d

				l0 := lx[p0+1]
				zc1 := w[j1] - zc0*l0
				l0 -= gc0 * zc1
				zd1 := wd[j1] - zd0*l0
				l0 -= gd0 * zd1
				w[j1] = 0
				wd[j1] = 0
				lx[p0+1] = l0
				d, gc1, gd1, bad := diag1Both(lx[p1], zc1, zd1, alphaC, alphaD, dbound)
				if bad {
					nbad++
				}
				lx[p1] = d

				q1 := p1 + 1
				for q0 := p0 + 2; q0 < p0+nz; q0++ {
					i := li[q0]
					l := lx[q0]
					wi := w[i] - zc0*l
					l -= gc0 * wi
					di := wd[i] - zd0*l
					l -= gd0 * di
					lx[q0] = l
					l = lx[q1]
					wi -= zc1 * l
					l -= gc1 * wi
					di -= zd1 * l
					l -= gd1 * di
					lx[q1] = l
					w[i] = wi
					wd[i] = di
					q1++
				}

				if lnz[j1] == 1 {
					return nbad
				}
				j = li[p1+1]
				continue
			}
		}

		zc := w[j]
		zd := wd[j]
		w[j] = 0
		wd[j] = 0
		d, gc, gd, bad := diag1Both(lx[p0], zc, zd, alphaC, alphaD, dbound)
		if bad {
			nbad++
		}
		lx[p0] = d
		for q := p0 + 1; q < p0+nz; q++ {
			i := li[q]
			l := lx[q]
			wi := w[i] - zc*l
			l -= gc * wi
			di := wd[i] - zd*l
			l -= gd * di
			lx[q] = l
			w[i] = wi
			wd[i] = di
		}
		if nz == 1 {
			return nbad
		}
		j = li[p0+1]
	}
	return nbad
}
