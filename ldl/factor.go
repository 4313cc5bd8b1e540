// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldl

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrPattern indicates a malformed compressed-column pattern: rows out
	// of order or out of range, a missing diagonal, or an empty column.
	ErrPattern = errors.New("ldl: malformed factor pattern")

	// ErrShape indicates incompatible or invalid dimensions.
	ErrShape = errors.New("ldl: bad dimensions")

	// ErrEmptyColumn indicates an update matrix column with no entries.
	ErrEmptyColumn = errors.New("ldl: empty column in update matrix")
)

// Factor is a sparse LDLᵀ factorization in compressed-column form.
//
// Column j occupies the index range [ColPtr[j], ColPtr[j]+ColNz[j]) of
// RowInd and Data. Row indices are ascending within a column and the
// first entry of every column is the diagonal: RowInd[ColPtr[j]] == j,
// with Data[ColPtr[j]] holding D(j,j). L itself has unit diagonal, which
// is not stored; all entries after the first are strictly subdiagonal
// entries of L. For a non-root column with ColNz[j] > 1, the first
// off-diagonal row index is j's parent in the elimination tree.
//
// ColPtr need not be monotone and columns may have unused slack between
// them; ColNz is authoritative for column lengths.
type Factor struct {
	N      int
	ColPtr []int
	RowInd []int
	Data   []float64
	ColNz  []int
}

// NewFactor assembles a Factor from its raw compressed-column arrays and
// validates the pattern. The slices are retained, not copied.
func NewFactor(n int, colPtr, rowInd []int, data []float64, colNz []int) (*Factor, error) {
	if n < 0 || len(colPtr) < n || len(colNz) < n {
		return nil, ErrShape
	}
	f := &Factor{N: n, ColPtr: colPtr, RowInd: rowInd, Data: data, ColNz: colNz}
	if err := f.CheckPattern(); err != nil {
		return nil, err
	}
	return f, nil
}

// Parent returns the parent of column j in the elimination tree, or -1
// if j is a root. The parent is the first off-diagonal row of column j.
func (f *Factor) Parent(j int) int {
	if f.ColNz[j] <= 1 {
		return -1
	}
	return f.RowInd[f.ColPtr[j]+1]
}

// CheckPattern verifies the structural invariants of the factor: every
// column is non-empty, diagonal-first, strictly ascending in row index,
// and in bounds. It does not touch Data.
func (f *Factor) CheckPattern() error {
	for j := 0; j < f.N; j++ {
		p := f.ColPtr[j]
		nz := f.ColNz[j]
		if nz < 1 || p < 0 || p+nz > len(f.RowInd) || p+nz > len(f.Data) {
			return ErrPattern
		}
		if f.RowInd[p] != j {
			return ErrPattern
		}
		for q := p + 1; q < p+nz; q++ {
			if f.RowInd[q] <= f.RowInd[q-1] || f.RowInd[q] >= f.N {
				return ErrPattern
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the factor.
func (f *Factor) Clone() *Factor {
	c := &Factor{
		N:      f.N,
		ColPtr: make([]int, len(f.ColPtr)),
		RowInd: make([]int, len(f.RowInd)),
		Data:   make([]float64, len(f.Data)),
		ColNz:  make([]int, len(f.ColNz)),
	}
	copy(c.ColPtr, f.ColPtr)
	copy(c.RowInd, f.RowInd)
	copy(c.Data, f.Data)
	copy(c.ColNz, f.ColNz)
	return c
}

// D returns the diagonal matrix D as a slice of length n.
func (f *Factor) D() []float64 {
	d := make([]float64, f.N)
	for j := 0; j < f.N; j++ {
		d[j] = f.Data[f.ColPtr[j]]
	}
	return d
}

// LTo writes the unit lower-triangular factor L into dst, which must be
// n×n. Entries not present in the sparse pattern are zero.
func (f *Factor) LTo(dst *mat.Dense) {
	r, c := dst.Dims()
	if r != f.N || c != f.N {
		panic(mat.ErrShape)
	}
	dst.Zero()
	for j := 0; j < f.N; j++ {
		dst.Set(j, j, 1)
		p := f.ColPtr[j]
		for q := p + 1; q < p+f.ColNz[j]; q++ {
			dst.Set(f.RowInd[q], j, f.Data[q])
		}
	}
}

// Reconstruct returns L·D·Lᵀ as a dense symmetric matrix.
func (f *Factor) Reconstruct() *mat.SymDense {
	n := f.N
	l := mat.NewDense(n, n, nil)
	f.LTo(l)
	d := f.D()
	ld := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			ld.Set(i, j, l.At(i, j)*d[j])
		}
	}
	var a mat.Dense
	a.Mul(ld, l.T())
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, a.At(i, j))
		}
	}
	return s
}
