// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldl

import "gonum.org/v1/gonum/mat"

// Sparse is a sparse matrix in compressed-column form, used for the
// low-rank terms C and D of an update or downdate. Row indices are
// ascending within each column and every column has at least one entry.
//
// In the packed form ColNz is nil and column j occupies
// [ColPtr[j], ColPtr[j+1]). In the unpacked form ColNz[j] gives the
// length of column j starting at ColPtr[j].
type Sparse struct {
	NRow, NCol int
	ColPtr     []int
	ColNz      []int
	RowInd     []int
	Data       []float64
}

// NewSparse assembles a packed Sparse from its raw compressed-column
// arrays and validates it. The slices are retained, not copied.
func NewSparse(nrow, ncol int, colPtr, rowInd []int, data []float64) (*Sparse, error) {
	if nrow < 0 || ncol < 0 || len(colPtr) < ncol+1 {
		return nil, ErrShape
	}
	s := &Sparse{NRow: nrow, NCol: ncol, ColPtr: colPtr, RowInd: rowInd, Data: data}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// ColRange returns the index range [start, end) of column j in RowInd
// and Data, honoring the packed or unpacked form.
func (s *Sparse) ColRange(j int) (start, end int) {
	start = s.ColPtr[j]
	if s.ColNz != nil {
		return start, start + s.ColNz[j]
	}
	return start, s.ColPtr[j+1]
}

func (s *Sparse) check() error {
	for j := 0; j < s.NCol; j++ {
		start, end := s.ColRange(j)
		if end <= start {
			return ErrEmptyColumn
		}
		if start < 0 || end > len(s.RowInd) || end > len(s.Data) {
			return ErrShape
		}
		for p := start; p < end; p++ {
			if s.RowInd[p] < 0 || s.RowInd[p] >= s.NRow {
				return ErrShape
			}
			if p > start && s.RowInd[p] <= s.RowInd[p-1] {
				return ErrPattern
			}
		}
	}
	return nil
}

// SamePattern reports whether s and t have identical dimensions and an
// identical nonzero pattern.
func (s *Sparse) SamePattern(t *Sparse) bool {
	if s.NRow != t.NRow || s.NCol != t.NCol {
		return false
	}
	for j := 0; j < s.NCol; j++ {
		ss, se := s.ColRange(j)
		ts, te := t.ColRange(j)
		if se-ss != te-ts {
			return false
		}
		for k := 0; k < se-ss; k++ {
			if s.RowInd[ss+k] != t.RowInd[ts+k] {
				return false
			}
		}
	}
	return true
}

// SparseFromDense compresses the columns of m, dropping entries of
// absolute value at most tol.
func SparseFromDense(m mat.Matrix, tol float64) (*Sparse, error) {
	nrow, ncol := m.Dims()
	colPtr := make([]int, ncol+1)
	var rowInd []int
	var data []float64
	for j := 0; j < ncol; j++ {
		colPtr[j] = len(rowInd)
		for i := 0; i < nrow; i++ {
			v := m.At(i, j)
			if v > tol || v < -tol {
				rowInd = append(rowInd, i)
				data = append(data, v)
			}
		}
	}
	colPtr[ncol] = len(rowInd)
	return NewSparse(nrow, ncol, colPtr, rowInd, data)
}

// DenseTo writes s into dst, which must be NRow×NCol.
func (s *Sparse) DenseTo(dst *mat.Dense) {
	r, c := dst.Dims()
	if r != s.NRow || c != s.NCol {
		panic(mat.ErrShape)
	}
	dst.Zero()
	for j := 0; j < s.NCol; j++ {
		start, end := s.ColRange(j)
		for p := start; p < end; p++ {
			dst.Set(s.RowInd[p], j, s.Data[p])
		}
	}
}
