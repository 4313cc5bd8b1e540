// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "github.com/rogerhh/sparsechol/ldl"

// scatter materializes column ccol of c into workspace column wcol of
// the row-major n×wdim workspace w, which must be zero in that column
// beforehand. Rows i with mask[i] >= maskmark are suppressed; a nil
// mask admits every row.
func scatter(c *ldl.Sparse, ccol int, w []float64, wdim, wcol int, mask []int, maskmark int) {
	start, end := c.ColRange(ccol)
	if mask == nil {
		for p := start; p < end; p++ {
			w[wdim*c.RowInd[p]+wcol] = c.Data[p]
		}
		return
	}
	for p := start; p < end; p++ {
		i := c.RowInd[p]
		if mask[i] < maskmark {
			w[wdim*i+wcol] = c.Data[p]
		}
	}
}
