// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "github.com/rogerhh/sparsechol/ldl"

// Path describes one subpath of the elimination tree to be swept by a
// kernel. The first rank entries of a plan are leaf descriptors, one per
// update column; the remainder are interior descriptors for merged path
// segments, in children-first order. A leaf whose columns were all
// absorbed by an interior descriptor carries Start = -1 and is skipped
// by the sweep, but its CCol is still used for the scatter stage.
type Path struct {
	// Start and End are the first and last (inclusive) columns of the
	// subpath; End is an ancestor of Start.
	Start, End int

	// WFirst is the first workspace column this subpath consumes and
	// Rank the number of consecutive workspace columns, 1 ≤ Rank ≤ 8.
	WFirst, Rank int

	// CCol is the source column of the update matrix for leaf
	// descriptors, -1 for interior ones.
	CCol int
}

// checkPlan validates the structural invariants of a path plan against
// the factor and the chosen workspace width. Violations are programmer
// errors in the symbolic layer and panic.
func checkPlan(f *ldl.Factor, paths []Path, rank, wdim int) {
	if len(paths) < rank {
		panic(badPlan)
	}
	prev := -1
	for k, pa := range paths {
		leaf := k < rank
		if leaf && pa.CCol < 0 {
			panic(badPlanLeaf)
		}
		if pa.Start < 0 {
			if !leaf {
				panic(badPlan)
			}
			continue
		}
		if pa.Start > pa.End || pa.End >= f.N {
			panic(badPlan)
		}
		if pa.Rank < 1 || pa.Rank > wdim || pa.WFirst < 0 || pa.WFirst+pa.Rank > wdim {
			panic(badPlan)
		}
		if !leaf {
			// Interior descriptors arrive children-first; in an
			// elimination tree a parent column always has the larger
			// index, so the start columns must be ascending.
			if pa.Start <= prev {
				panic(badPlan)
			}
			prev = pa.Start
		}
	}
}
