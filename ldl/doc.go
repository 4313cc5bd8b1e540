// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ldl provides compressed-column storage for sparse LDLᵀ
// factorizations and for the sparse low-rank matrices used to modify
// them. The numerical modification kernels live in package updown.
package ldl // import "github.com/rogerhh/sparsechol/ldl"
