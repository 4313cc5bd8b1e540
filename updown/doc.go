// Copyright ©2026 The Sparsechol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package updown modifies a sparse LDLᵀ factorization after a low-rank
// symmetric perturbation, without refactorizing. Given the factorization
// L·D·Lᵀ of a positive-definite matrix A and a sparse n×r matrix C with
// r ≤ 8, it rewrites L and D in place so that they factor A + C·Cᵀ
// (update), A − C·Cᵀ (downdate), or A + C·Cᵀ − D·Dᵀ (combined).
//
// Only the columns of L on the elimination-tree paths reachable from the
// nonzero rows of C are touched, and the sparsity pattern of L is never
// changed. The numerical work follows the Davis–Hager method: a scalar
// alpha/gamma recurrence keeps each diagonal entry consistent while the
// affected columns are swept once, carrying up to eight dense update
// vectors through a row-major workspace. Adjacent path columns with
// nested patterns are fused two or four at a time so each workspace row
// is loaded once per fused group.
//
// The high-level entry points Update, Downdate, and UpdateDowndate plan
// the elimination-tree paths, allocate workspace, and dispatch to a
// width-specialized kernel. Callers that manage their own plan and
// workspace use Numeric and NumericCombined directly.
package updown // import "github.com/rogerhh/sparsechol/updown"
