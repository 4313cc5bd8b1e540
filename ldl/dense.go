// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldl

import "gonum.org/v1/gonum/mat"

// FactorizeDense computes the LDLᵀ factorization of the symmetric
// positive-definite matrix a and compresses it into a Factor, dropping
// entries of L that are exactly zero. It returns whether the matrix is
// positive definite; the factor is only valid when ok is true.
//
// The column-by-column elimination keeps exact zeros exact, so a banded
// or arrow-shaped input yields the sparse pattern a sparse factorization
// would, including the elimination-tree parent links the modification
// kernels rely on.
func FactorizeDense(a mat.Symmetric) (f *Factor, ok bool) {
	n := a.SymmetricDim()
	l := make([]float64, n*n)
	d := make([]float64, n)
	ok = true
	for j := 0; j < n; j++ {
		dj := a.At(j, j)
		for k := 0; k < j; k++ {
			dj -= l[j*n+k] * l[j*n+k] * d[k]
		}
		if dj <= 0 {
			ok = false
		}
		d[j] = dj
		for i := j + 1; i < n; i++ {
			v := a.At(i, j)
			for k := 0; k < j; k++ {
				v -= l[i*n+k] * l[j*n+k] * d[k]
			}
			l[i*n+j] = v / dj
		}
	}
	if !ok {
		return nil, false
	}

	colPtr := make([]int, n)
	colNz := make([]int, n)
	var rowInd []int
	var data []float64
	for j := 0; j < n; j++ {
		colPtr[j] = len(rowInd)
		rowInd = append(rowInd, j)
		data = append(data, d[j])
		for i := j + 1; i < n; i++ {
			if l[i*n+j] != 0 {
				rowInd = append(rowInd, i)
				data = append(data, l[i*n+j])
			}
		}
		colNz[j] = len(rowInd) - colPtr[j]
	}
	return &Factor{N: n, ColPtr: colPtr, RowInd: rowInd, Data: data, ColNz: colNz}, true
}
