// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import (
	"sort"

	"github.com/rogerhh/sparsechol/ldl"
)

// NewPlan computes the path plan for modifying f by the columns of c.
//
// Each update column perturbs the columns of L on the elimination-tree
// path that starts at the column's first scattered row (mask and
// maskmark filter rows exactly as in the numerical stage; a nil mask
// admits all). Where paths meet they merge, and the merged segment is
// swept once for all the ranks it carries. The returned plan has one
// leaf descriptor per update column, in the workspace order the scatter
// stage will use, followed by the merged interior descriptors in
// children-first order. A leaf whose entry column is already shared, or
// whose rows are all masked away, has Start = -1.
//
// Update columns are ordered by the root-to-leaf column sequences of
// their paths, which groups columns by the subtree their paths merge in
// and keeps every merged descriptor's workspace range contiguous.
// Columns with no admitted rows order last.
func NewPlan(f *ldl.Factor, c *ldl.Sparse, mask []int, maskmark int) []Path {
	rank := c.NCol
	if rank < 1 || rank > 8 {
		panic(badRank)
	}
	if f.N != c.NRow {
		panic(mismatchedC)
	}
	n := f.N

	// Entry column of each update column: the first row scatter keeps.
	first := make([]int, rank)
	for cc := 0; cc < rank; cc++ {
		first[cc] = -1
		start, end := c.ColRange(cc)
		for p := start; p < end; p++ {
			i := c.RowInd[p]
			if mask == nil || mask[i] < maskmark {
				first[cc] = i
				break
			}
		}
	}

	// Full paths, leaf to root.
	colpath := make([][]int, rank)
	for cc, fr := range first {
		if fr < 0 {
			continue
		}
		for j := fr; j >= 0; j = f.Parent(j) {
			colpath[cc] = append(colpath[cc], j)
		}
	}

	order := make([]int, rank)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		pa, pb := colpath[order[a]], colpath[order[b]]
		if len(pa) == 0 || len(pb) == 0 {
			if (len(pa) == 0) != (len(pb) == 0) {
				return len(pb) == 0
			}
			return order[a] < order[b]
		}
		ia, ib := len(pa)-1, len(pb)-1
		for ia >= 0 && ib >= 0 {
			if pa[ia] != pb[ib] {
				return pa[ia] < pb[ib]
			}
			ia--
			ib--
		}
		if ia != ib {
			return ia > ib
		}
		return order[a] < order[b]
	})

	// Per-column path counts, and the number of path branches entering
	// each column: one per child column on some path, plus one per path
	// starting there. A column with two or more
	// entries is a junction: the head of a merged segment.
	cnt := make([]int, n)
	entries := make([]int, n)
	for cc := range colpath {
		if first[cc] < 0 {
			continue
		}
		for _, j := range colpath[cc] {
			cnt[j]++
		}
		entries[first[cc]]++
	}
	for j := 0; j < n; j++ {
		if cnt[j] > 0 {
			if q := f.Parent(j); q >= 0 {
				entries[q]++
			}
		}
	}
	junction := func(j int) bool { return entries[j] >= 2 }

	// segEnd walks from j to the last column before the next junction
	// or the end of the chain.
	segEnd := func(j int) int {
		for {
			q := f.Parent(j)
			if q < 0 || junction(q) {
				return j
			}
			j = q
		}
	}

	plan := make([]Path, 0, 2*rank)
	for k, cc := range order {
		pa := Path{Start: -1, End: -1, WFirst: k, Rank: 1, CCol: cc}
		if fr := first[cc]; fr >= 0 && !junction(fr) {
			pa.Start = fr
			pa.End = segEnd(fr)
		}
		plan = append(plan, pa)
	}

	// Workspace ranges of the merged segments: the span of workspace
	// columns whose paths pass through each junction.
	minw := make([]int, n)
	maxw := make([]int, n)
	for j := range minw {
		minw[j] = -1
	}
	for k, cc := range order {
		for _, j := range colpath[cc] {
			if junction(j) {
				if minw[j] < 0 {
					minw[j] = k
				}
				maxw[j] = k
			}
		}
	}

	for j := 0; j < n; j++ {
		if cnt[j] == 0 || !junction(j) {
			continue
		}
		if maxw[j]-minw[j]+1 != cnt[j] {
			panic(badPlan)
		}
		plan = append(plan, Path{Start: j, End: segEnd(j), WFirst: minw[j], Rank: cnt[j], CCol: -1})
	}
	return plan
}
