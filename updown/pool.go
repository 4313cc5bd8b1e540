// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

import "sync"

// wPool recycles workspace buffers between calls of the high-level
// entry points. Every buffer in the pool is entirely zero: fresh
// allocations are zero, and the kernels' self-cleaning contract restores
// zero before a buffer is put back.
var wPool sync.Pool

func getW(n int) []float64 {
	if v := wPool.Get(); v != nil {
		w := *v.(*[]float64)
		if len(w) >= n {
			return w[:n]
		}
	}
	return make([]float64, n)
}

func putW(w []float64) {
	w = w[:cap(w)]
	wPool.Put(&w)
}
