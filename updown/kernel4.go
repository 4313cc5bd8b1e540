// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "github.com/rogerhh/sparsechol/ldl"

// updown4 is the width-4 form of updown2: the same fusion rules and
// sweep, with the workspace row stride fixed at 4 and k ≤ 4.
func updown4(update bool, f *ldl.Factor, start, end, rank int, w, alpha []float64, dbound float64) (nbad int) {
	sign := 1.0
	if !update {
		sign = -1.0
	}
	lp, li, lnz, lx := f.ColPtr, f.RowInd, f.ColNz, f.Data
	var z0, g0, z1, g1, z2, g2, z3, g3 [4]float64
	j := start
	for j <= end {
		p0 := lp[j]
		nz := lnz[j]

		if nz >= 4 {
			j1, j2, j3 := li[p0+1], li[p0+2], li[p0+3]
			if j3 <= end && lnz[j1] == nz-1 && lnz[j2] == nz-2 && lnz[j3] == nz-3 {
				p1, p2, p3 := lp[j1], lp[j2], lp[j3]

				r := 4 * j
				for k := 0; k < rank; k++ {
					z0[k] = w[r+k]
					w[r+k] = 0
				}
				d, bad := diagUpdown(lx[p0], sign, z0[:rank], g0[:rank], alpha, dbound)
				if bad {
					nbad++
				}
				lx[p0] = d

				// Row j1: L(j1,j) and D(j1,j1).
				l := lx[p0+1]
				r = 4 * j1
				for k := 0; k < rank; k++ {
					zv := w[r+k] - z0[k]*l
					l -= g0[k] * zv
					z1[k] = zv
					w[r+k] = 0
				}
				lx[p0+1] = l
				d, bad = diagUpdown(lx[p1], sign, z1[:rank], g1[:rank], alpha, dbound)
				if bad {
					nbad++
				}
				lx[p1] = d

				// Row j2: L(j2,{j,j1}) and D(j2,j2).
				la := lx[p0+2]
				lb := lx[p1+1]
				r = 4 * j2
				for k := 0; k < rank; k++ {
					zv := w[r+k] - z0[k]*la
					la -= g0[k] * zv
					zv -= z1[k] * lb
					lb -= g1[k] * zv
					z2[k] = zv
					w[r+k] = 0
				}
				lx[p0+2] = la
				lx[p1+1] = lb
				d, bad = diagUpdown(lx[p2], sign, z2[:rank], g2[:rank], alpha, dbound)
				if bad {
					nbad++
				}
				lx[p2] = d

				// Row j3: L(j3,{j,j1,j2}) and D(j3,j3).
				la = lx[p0+3]
				lb = lx[p1+2]
				lc := lx[p2+1]
				r = 4 * j3
				for k := 0; k < rank; k++ {
					zv := w[r+k] - z0[k]*la
					la -= g0[k] * zv
					zv -= z1[k] * lb
					lb -= g1[k] * zv
					zv -= z2[k] * lc
					lc -= g2[k] * zv
					z3[k] = zv
					w[r+k] = 0
				}
				lx[p0+3] = la
				lx[p1+2] = lb
				lx[p2+1] = lc
				d, bad = diagUpdown(lx[p3], sign, z3[:rank], g3[:rank], alpha, dbound)
				if bad {
					nbad++
				}
				lx[p3] = d

				q1, q2, q3 := p1+3, p2+2, p3+1
				for q0 := p0 + 4; q0 < p0+nz; q0++ {
					i := li[q0]
					r := 4 * i
					l0 := lx[q0]
					l1 := lx[q1]
					l2 := lx[q2]
					l3 := lx[q3]
					for k := 0; k < rank; k++ {
						wi := w[r+k] - z0[k]*l0
						l0 -= g0[k] * wi
						wi -= z1[k] * l1
						l1 -= g1[k] * wi
						wi -= z2[k] * l2
						l2 -= g2[k] * wi
						wi -= z3[k] * l3
						l3 -= g3[k] * wi
						w[r+k] = wi
					}
					lx[q0] = l0
					lx[q1] = l1
					lx[q2] = l2
					lx[q3] = l3
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
				p1 := lp[j1]

				r := 4 * j
				for k := 0; k < rank; k++ {
					z0[k] = w[r+k]
					w[r+k] = 0
				}
				d, bad := diagUpdown(lx[p0], sign, z0[:rank], g0[:rank], alpha, dbound)
				if bad {
					nbad++
				}
				lx[p0] = d

				l := lx[p0+1]
				r = 4 * j1
				for k := 0; k < rank; k++ {
					zv := w[r+k] - z0[k]*l
					l -= g0[k] * zv
					z1[k] = zv
					w[r+k] = 0
				}
				lx[p0+1] = l
				d, bad = diagUpdown(lx[p1], sign, z1[:rank], g1[:rank], alpha, dbound)
				if bad {
					nbad++
				}
				lx[p1] = d

				q1 := p1 + 1
				for q0 := p0 + 2; q0 < p0+nz; q0++ {
					i := li[q0]
					r := 4 * i
					l0 := lx[q0]
					l1 := lx[q1]
					for k := 0; k < rank; k++ {
						wi := w[r+k] - z0[k]*l0
						l0 -= g0[k] * wi
						wi -= z1[k] * l1
						l1 -= g1[k] * wi
						w[r+k] = wi
					}
					lx[q0] = l0
					lx[q1] = l1
					q1++
				}

				if lnz[j1] == 1 {
					return nbad
				}
				j = li[p1+1]
				continue
			}
		}

		r := 4 * j
		for k := 0; k < rank; k++ {
			z0[k] = w[r+k]
			w[r+k] = 0
		}
		d, bad := diagUpdown(lx[p0], sign, z0[:rank], g0[:rank], alpha, dbound)
		if bad {
			nbad++
		}
		lx[p0] = d
		for q := p0 + 1; q < p0+nz; q++ {
			i := li[q]
			r := 4 * i
			l := lx[q]
			for k := 0; k < rank; k++ {
				wi := w[r+k] - z0[k]*l
				w[r+k] = wi
				l -= g0[k] * wi
			}
			lx[q] = l
		}
		if nz == 1 {
			return nbad
		}
		j = li[p0+1]
	}
	return nbad
}

// updown4c is the width-4 form of updown2c.
func updown4c(f *ldl.Factor, start, end, rank int, w, wd, alphaC, alphaD []float64, dbound float64) (nbad int) {
	lp, li, lnz, lx := f.ColPtr, f.RowInd, f.ColNz, f.Data
	var zc0, gc0, zd0, gd0, zc1, gc1, zd1, gd1 [4]float64
	j := start
	for j <= end {
		p0 := lp[j]
		nz := lnz[j]

		if nz >= 2 {
			j1 := li[p0+1]
			if j1 <= end && lnz[j1] == nz-1 {
				p1 := lp[j1]

				r := 4 * j
				for k := 0; k < rank; k++ {
					zc0[k] = w[r+k]
					zd0[k] = wd[r+k]
					w[r+k] = 0
					wd[r+k] = 0
				}
				d, bad := diagUpdownBoth(lx[p0], zc0[:rank], gc0[:rank], zd0[:rank], gd0[:rank], alphaC, alphaD, dbound)
				if bad {
					nbad++
				}
				lx[p0] = d

				l := lx[p0+1]
				r = 4 * j1
				for k := 0; k < rank; k++ {
					zv := w[r+k] - zc0[k]*l
					l -= gc0[k] * zv
					dv := wd[r+k] - zd0[k]*l
					l -= gd0[k] * dv
					zc1[k] = zv
					zd1[k] = dv
					w[r+k] = 0
					wd[r+k] = 0
				}
				lx[p0+1] = l
				d, bad = diagUpdownBoth(lx[p1], zc1[:rank], gc1[:rank], zd1[:rank], gd1[:rank], alphaC, alphaD, dbound)
				if bad {
					nbad++
				}
				lx[p1] = d

				q1 := p1 + 1
				for q0 := p0 + 2; q0 < p0+nz; q0++ {
					i := li[q0]
					r := 4 * i
					l0 := lx[q0]
					l1 := lx[q1]
					for k := 0; k < rank; k++ {
						wi := w[r+k] - zc0[k]*l0
						l0 -= gc0[k] * wi
						di := wd[r+k] - zd0[k]*l0
						l0 -= gd0[k] * di
						wi -= zc1[k] * l1
						l1 -= gc1[k] * wi
						di -= zd1[k] * l1
						l1 -= gd1[k] * di
						w[r+k] = wi
						wd[r+k] = di
					}
					lx[q0] = l0
					lx[q1] = l1
					q1++
				}

				if lnz[j1] == 1 {
					return nbad
				}
				j = li[p1+1]
				continue
			}
		}

		r := 4 * j
		for k := 0; k < rank; k++ {
			zc0[k] = w[r+k]
			zd0[k] = wd[r+k]
			w[r+k] = 0
			wd[r+k] = 0
		}
		d, bad := diagUpdownBoth(lx[p0], zc0[:rank], gc0[:rank], zd0[:rank], gd0[:rank], alphaC, alphaD, dbound)
		if bad {
			nbad++
		}
		lx[p0] = d
		for q := p0 + 1; q < p0+nz; q++ {
			i := li[q]
			r := 4 * i
			l := lx[q]
			for k := 0; k < rank; k++ {
				wi := w[r+k] - zc0[k]*l
				w[r+k] = wi
				l -= gc0[k] * wi
				di := wd[r+k] - zd0[k]*l
				wd[r+k] = di
				l -= gd0[k] * di
			}
			lx[q] = l
		}
		if nz == 1 {
			return nbad
		}
		j = li[p0+1]
	}
	return nbad
}
