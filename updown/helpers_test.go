// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rogerhh/sparsechol/ldl"
)

// tridiagSym returns the n×n symmetric tridiagonal matrix with d on the
// diagonal and e on the off-diagonals.
func tridiagSym(n int, d, e float64) *mat.SymDense {
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		a.SetSym(i, i, d)
		if i+1 < n {
			a.SetSym(i, i+1, e)
		}
	}
	return a
}

// denseSPD returns a deterministic dense symmetric positive-definite
// matrix: a scaled Hilbert-like matrix with a dominant diagonal, whose
// factor has no exact zeros.
func denseSPD(n int) *mat.SymDense {
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 1 / float64(i+j+1)
			if i == j {
				v += 2
			}
			a.SetSym(i, j, v)
		}
	}
	return a
}

// blockDiagChains returns a 6×6 block-diagonal matrix of two
// tridiagonal 3×3 blocks, whose elimination tree is two disjoint chains.
func blockDiagChains(t *testing.T) *mat.SymDense {
	t.Helper()
	a := mat.NewSymDense(6, nil)
	for _, off := range []int{0, 3} {
		for i := 0; i < 3; i++ {
			a.SetSym(off+i, off+i, 2)
			if i+1 < 3 {
				a.SetSym(off+i, off+i+1, -1)
			}
		}
	}
	return a
}

func factorOf(t *testing.T, a mat.Symmetric) *ldl.Factor {
	t.Helper()
	f, ok := ldl.FactorizeDense(a)
	if !ok {
		t.Fatal("fixture matrix is not positive definite")
	}
	return f
}

// sparseCols builds an nrow×len(cols) sparse matrix from dense columns,
// dropping exact zeros.
func sparseCols(t *testing.T, nrow int, cols ...[]float64) *ldl.Sparse {
	t.Helper()
	d := mat.NewDense(nrow, len(cols), nil)
	for j, col := range cols {
		for i, v := range col {
			d.Set(i, j, v)
		}
	}
	s, err := ldl.SparseFromDense(d, 0)
	if err != nil {
		t.Fatalf("bad fixture columns: %v", err)
	}
	return s
}

// column extracts column j of c as a dense vector of length nrow.
func column(c *ldl.Sparse, j int) []float64 {
	col := make([]float64, c.NRow)
	start, end := c.ColRange(j)
	for p := start; p < end; p++ {
		col[c.RowInd[p]] = c.Data[p]
	}
	return col
}

// perturbed returns a + sign·(c·cᵀ) densely.
func perturbed(a mat.Symmetric, c *ldl.Sparse, sign float64) *mat.SymDense {
	n := a.SymmetricDim()
	s := mat.NewSymDense(n, nil)
	s.CopySym(a)
	for j := 0; j < c.NCol; j++ {
		col := column(c, j)
		for i := 0; i < n; i++ {
			for k := i; k < n; k++ {
				s.SetSym(i, k, s.At(i, k)+sign*col[i]*col[k])
			}
		}
	}
	return s
}

// residualNorm returns ‖L·D·Lᵀ − want‖F for the factor f.
func residualNorm(f *ldl.Factor, want mat.Symmetric) float64 {
	var diff mat.Dense
	diff.Sub(f.Reconstruct(), want)
	return mat.Norm(&diff, 2)
}

// diagOf returns the stored diagonal D of f.
func diagOf(f *ldl.Factor) []float64 {
	return f.D()
}

// maxAbsDiff returns the largest elementwise difference between the
// numerical values of two factors with identical patterns.
func maxAbsDiff(t *testing.T, a, b *ldl.Factor) float64 {
	t.Helper()
	if a.N != b.N {
		t.Fatal("factors differ in order")
	}
	var m float64
	for j := 0; j < a.N; j++ {
		pa, pb := a.ColPtr[j], b.ColPtr[j]
		if a.ColNz[j] != b.ColNz[j] {
			t.Fatal("factors differ in pattern")
		}
		for k := 0; k < a.ColNz[j]; k++ {
			d := a.Data[pa+k] - b.Data[pb+k]
			if d < 0 {
				d = -d
			}
			if d > m {
				m = d
			}
		}
	}
	return m
}
