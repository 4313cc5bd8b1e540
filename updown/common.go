// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown

// Options holds the tunables and diagnostic counters shared by the
// modification kernels. The kernels read DBound and only ever write
// NotPosDef, incrementing it once per offending column; everything else
// is owned by the caller. A nil *Options behaves as the zero value.
type Options struct {
	// DBound, when positive, is a lower bound clamped onto every modified
	// diagonal entry after its column recurrence. Zero disables clamping.
	DBound float64

	// NotPosDef accumulates the number of columns whose diagonal entry
	// became non-positive or non-finite during a sweep.
	NotPosDef int
}

func (o *Options) dbound() float64 {
	if o == nil {
		return 0
	}
	return o.DBound
}

func (o *Options) countNotPosDef(n int) {
	if o != nil {
		o.NotPosDef += n
	}
}
