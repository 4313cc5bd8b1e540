// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanSingleRankOne(t *testing.T) {
	f := factorOf(t, tridiagSym(3, 1, 0))
	c := sparseCols(t, 3, []float64{1, 0, 0})
	paths := NewPlan(f, c, nil, 0)
	require.Equal(t, []Path{{Start: 0, End: 0, WFirst: 0, Rank: 1, CCol: 0}}, paths)
}

func TestPlanMergingChain(t *testing.T) {
	f := factorOf(t, tridiagSym(5, 2, -1))
	c := sparseCols(t, 5,
		[]float64{1, 1, 0, 0, 0},
		[]float64{0, 0, 1, 0, 0},
	)
	paths := NewPlan(f, c, nil, 0)
	require.Equal(t, []Path{
		{Start: 0, End: 1, WFirst: 0, Rank: 1, CCol: 0},
		{Start: -1, End: -1, WFirst: 1, Rank: 1, CCol: 1},
		{Start: 2, End: 4, WFirst: 0, Rank: 2, CCol: -1},
	}, paths)
}

func TestPlanStaircaseRanks(t *testing.T) {
	// Three update columns entering a chain at columns 0, 1, and 2 give
	// a leaf segment and two merged segments of growing rank.
	f := factorOf(t, tridiagSym(4, 2, -1))
	c := sparseCols(t, 4,
		[]float64{1, 0, 0, 0},
		[]float64{0, 1, 0, 0},
		[]float64{0, 0, 1, 0},
	)
	paths := NewPlan(f, c, nil, 0)
	require.Equal(t, []Path{
		{Start: 0, End: 0, WFirst: 0, Rank: 1, CCol: 0},
		{Start: -1, End: -1, WFirst: 1, Rank: 1, CCol: 1},
		{Start: -1, End: -1, WFirst: 2, Rank: 1, CCol: 2},
		{Start: 1, End: 1, WFirst: 0, Rank: 2, CCol: -1},
		{Start: 2, End: 3, WFirst: 0, Rank: 3, CCol: -1},
	}, paths)
}

func TestPlanDisjointSubtrees(t *testing.T) {
	// Block-diagonal matrix: two independent chains, so the two paths
	// never merge and each leaf keeps its full path.
	f := factorOf(t, blockDiagChains(t))
	c := sparseCols(t, 6,
		[]float64{1, 0, 0, 0, 0, 0},
		[]float64{0, 0, 0, 1, 0, 0},
	)
	paths := NewPlan(f, c, nil, 0)
	require.Equal(t, []Path{
		{Start: 0, End: 2, WFirst: 0, Rank: 1, CCol: 0},
		{Start: 3, End: 5, WFirst: 1, Rank: 1, CCol: 1},
	}, paths)
}

func TestPlanMaskedColumn(t *testing.T) {
	f := factorOf(t, tridiagSym(4, 2, -1))
	c := sparseCols(t, 4,
		[]float64{0, 1, 0, 0},
		[]float64{0, 0, 1, 0},
	)
	// Mask away all of the first update column: it must order last and
	// carry no path, while the survivor keeps workspace column 0.
	mask := []int{0, 1, 0, 0}
	paths := NewPlan(f, c, mask, 1)
	require.Equal(t, []Path{
		{Start: 2, End: 3, WFirst: 0, Rank: 1, CCol: 1},
		{Start: -1, End: -1, WFirst: 1, Rank: 1, CCol: 0},
	}, paths)
}

func TestPlanPanicsOnRankOutOfRange(t *testing.T) {
	f := factorOf(t, tridiagSym(3, 1, 0))
	cols := make([][]float64, 9)
	for j := range cols {
		cols[j] = []float64{1, 1, 1}
	}
	c := sparseCols(t, 3, cols...)
	require.PanicsWithValue(t, badRank, func() { NewPlan(f, c, nil, 0) })
}

func TestNumericPanicsOnBadPlan(t *testing.T) {
	f := factorOf(t, tridiagSym(3, 1, 0))
	c := sparseCols(t, 3, []float64{1, 0, 0})
	w := make([]float64, 3)
	alpha := make([]float64, 1)

	require.PanicsWithValue(t, badPlan, func() {
		Numeric(true, c, f, w, alpha, []Path{{Start: 2, End: 0, WFirst: 0, Rank: 1, CCol: 0}}, nil, 0, nil)
	})
	require.PanicsWithValue(t, badPlan, func() {
		Numeric(true, c, f, w, alpha, []Path{{Start: 0, End: 0, WFirst: 1, Rank: 1, CCol: 0}}, nil, 0, nil)
	})
	require.PanicsWithValue(t, badPlanLeaf, func() {
		Numeric(true, c, f, w, alpha, []Path{{Start: 0, End: 0, WFirst: 0, Rank: 1, CCol: -1}}, nil, 0, nil)
	})
	require.PanicsWithValue(t, shortW, func() {
		Numeric(true, c, f, w[:2], alpha, NewPlan(f, c, nil, 0), nil, 0, nil)
	})
}
