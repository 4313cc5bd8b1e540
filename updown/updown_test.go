// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestRankOneUpdateIdentity(t *testing.T) {
	f := factorOf(t, tridiagSym(3, 1, 0))
	c := sparseCols(t, 3, []float64{1, 0, 0})
	if err := Update(f, c, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !floats.Equal(diagOf(f), []float64{2, 1, 1}) {
		t.Errorf("got D = %v, want [2 1 1]", diagOf(f))
	}
	for j := 0; j < 3; j++ {
		if f.ColNz[j] != 1 {
			t.Errorf("column %d gained off-diagonal entries", j)
		}
	}
}

func TestRankOneDowndateInverts(t *testing.T) {
	f := factorOf(t, tridiagSym(3, 1, 0))
	f.Data[f.ColPtr[0]] = 2
	c := sparseCols(t, 3, []float64{1, 0, 0})
	if err := Downdate(f, c, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !floats.Equal(diagOf(f), []float64{1, 1, 1}) {
		t.Errorf("got D = %v, want [1 1 1]", diagOf(f))
	}
}

func TestRankTwoFusedPathResidual(t *testing.T) {
	a := tridiagSym(5, 2, -1)
	f := factorOf(t, a)
	c := sparseCols(t, 5,
		[]float64{1, 1, 0, 0, 0},
		[]float64{0, 0, 1, 0, 0},
	)
	if err := Update(f, c, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := residualNorm(f, perturbed(a, c, 1)); r > 1e-12 {
		t.Errorf("residual %v exceeds 1e-12", r)
	}
}

func TestQuadFusionMatchesSequentialRankOne(t *testing.T) {
	a := denseSPD(6)
	c := sparseCols(t, 6,
		[]float64{1, 0.5, 0.25, 0.125, 0.0625, 0.03125},
		[]float64{0.5, 1, -0.5, 0.25, -0.125, 0.0625},
		[]float64{-0.25, 0.5, 1, -0.5, 0.25, -0.125},
		[]float64{0.125, -0.25, 0.5, 1, -0.5, 0.25},
	)

	// The factor of a dense matrix has strictly nested column patterns,
	// so the rank-4 sweep fuses the leading four path columns.
	fused := factorOf(t, a)
	if err := Update(fused, c, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := factorOf(t, a)
	for j := 0; j < 4; j++ {
		cj := sparseCols(t, 6, column(c, j))
		if err := Update(seq, cj, nil); err != nil {
			t.Fatalf("rank-1 update %d: unexpected error: %v", j, err)
		}
	}

	if d := maxAbsDiff(t, fused, seq); d > 1e-11 {
		t.Errorf("fused and sequential results differ by %v", d)
	}
	if r := residualNorm(fused, perturbed(a, c, 1)); r > 1e-10 {
		t.Errorf("residual %v exceeds 1e-10", r)
	}
}

func TestRankEquivalence(t *testing.T) {
	// For every rank (covering all four workspace widths), a rank-k
	// modification must agree with k sequential rank-1 modifications.
	for k := 1; k <= 8; k++ {
		a := denseSPD(10)
		cols := make([][]float64, k)
		for j := range cols {
			col := make([]float64, 10)
			// Staircase support so the paths enter the tree at
			// different columns and merge progressively.
			for i := j; i < 10; i++ {
				col[i] = 1 / float64(1+((i*7+j*3)%5))
			}
			cols[j] = col
		}
		c := sparseCols(t, 10, cols...)

		multi := factorOf(t, a)
		if err := Update(multi, c, nil); err != nil {
			t.Fatalf("rank %d: unexpected error: %v", k, err)
		}
		single := factorOf(t, a)
		for j := 0; j < k; j++ {
			cj := sparseCols(t, 10, column(c, j))
			if err := Update(single, cj, nil); err != nil {
				t.Fatalf("rank %d, column %d: unexpected error: %v", k, j, err)
			}
		}
		if d := maxAbsDiff(t, multi, single); d > 1e-11 {
			t.Errorf("rank %d: multi and sequential results differ by %v", k, d)
		}
	}
}

func TestUpdateDowndateRoundTrip(t *testing.T) {
	a := tridiagSym(8, 4, -1)
	f := factorOf(t, a)
	want := f.Clone()
	c := sparseCols(t, 8,
		[]float64{1, 0.5, 0, 0, 0, 0, 0, 0},
		[]float64{0, 0, 1, -0.5, 0, 0, 0, 0},
		[]float64{0, 0, 0, 0, 0.5, 1, 0, 0},
	)
	if err := Update(f, c, nil); err != nil {
		t.Fatalf("update: unexpected error: %v", err)
	}
	if err := Downdate(f, c, nil); err != nil {
		t.Fatalf("downdate: unexpected error: %v", err)
	}
	if d := maxAbsDiff(t, f, want); d > 1e-12 {
		t.Errorf("round trip differs from original by %v", d)
	}
}

func TestResidualBound(t *testing.T) {
	const eps = 0x1p-52
	for _, n := range []int{4, 9, 16} {
		a := denseSPD(n)
		f := factorOf(t, a)
		col := make([]float64, n)
		for i := range col {
			col[i] = 1 - float64(i)/float64(2*n)
		}
		c := sparseCols(t, n, col)
		if err := Update(f, c, nil); err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		want := perturbed(a, c, 1)
		bound := 100 * float64(n) * eps * mat.Norm(want, 2)
		if r := residualNorm(f, want); r > bound {
			t.Errorf("n=%d: residual %v exceeds %v", n, r, bound)
		}
	}
}

func TestDowndateDetectsNotPositiveDefinite(t *testing.T) {
	f := factorOf(t, tridiagSym(3, 1, 0))
	c := sparseCols(t, 3, []float64{2, 0, 0})
	var opts Options
	err := Downdate(f, c, &opts)
	if !errors.Is(err, ErrNotPosDef) {
		t.Fatalf("got %v, want ErrNotPosDef", err)
	}
	if opts.NotPosDef != 1 {
		t.Errorf("got NotPosDef = %d, want 1", opts.NotPosDef)
	}
	// The sweep completes: D(0,0) = 1 - 4 = -3.
	if d := f.Data[f.ColPtr[0]]; d != -3 {
		t.Errorf("got D(0,0) = %v, want -3", d)
	}
}

func TestDBoundClamp(t *testing.T) {
	a := tridiagSym(2, 0, 0)
	a.SetSym(0, 0, 1)
	a.SetSym(1, 1, 1e-6)
	f := factorOf(t, a)

	// The downdate drives D(1,1) to about 1e-13; the clamp must lift it
	// to exactly dbound with no NaN anywhere.
	z := 1e-3 - 5e-11
	c := sparseCols(t, 2, []float64{0, z})
	opts := &Options{DBound: 1e-12}
	if err := Downdate(f, c, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := f.Data[f.ColPtr[1]]; d != 1e-12 {
		t.Errorf("got D(1,1) = %v, want the dbound 1e-12", d)
	}
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite entry %v in the factor", v)
		}
	}
}

func TestDBoundStopsNaNPropagation(t *testing.T) {
	a := tridiagSym(3, 0, 0)
	a.SetSym(0, 0, 1)
	a.SetSym(1, 1, 1e-6)
	a.SetSym(2, 2, 1)
	a.SetSym(1, 2, 1e-4)
	f := factorOf(t, a)

	z := 1e-3 - 5e-11
	c := sparseCols(t, 3, []float64{0, z, 0})
	opts := &Options{DBound: 1e-12}
	err := Downdate(f, c, opts)
	if err != nil && !errors.Is(err, ErrNotPosDef) {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite entry %v in the factor", v)
		}
	}
	if d := f.Data[f.ColPtr[1]]; d != 1e-12 {
		t.Errorf("got D(1,1) = %v, want the dbound 1e-12", d)
	}
}
