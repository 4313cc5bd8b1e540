// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updown_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/rogerhh/sparsechol/ldl"
	"github.com/rogerhh/sparsechol/updown"
)

func ExampleUpdate() {
	a := mat.NewSymDense(3, []float64{
		2, -1, 0,
		-1, 2, -1,
		0, -1, 2,
	})
	f, ok := ldl.FactorizeDense(a)
	if !ok {
		fmt.Println("matrix is not positive definite")
		return
	}

	c, err := ldl.SparseFromDense(mat.NewDense(3, 1, []float64{1, 1, 0}), 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := updown.Update(f, c, nil); err != nil {
		fmt.Println(err)
		return
	}

	d := f.D()
	fmt.Printf("%.6f %.6f %.6f\n", d[0], d[1], d[2])
	// Output:
	// 3.000000 3.000000 1.666667
}
