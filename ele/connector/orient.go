// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewOrientation computes the orthonormal triad with rows X, Y, Z
//  Z = unit(x × yp), Y = unit(Z × x), X = unit(x)
//  Input:
//   x  -- local x-axis in global coordinates [3]
//   yp -- vector in the local x-y plane [3]
func NewOrientation(x, yp []float64) (trf *mat.Dense, err error) {

	// check
	if len(x) != 3 || len(yp) != 3 {
		err = newError(DegenerateGeometry, nil, "orientation vectors must have 3 components. len(x)=%d and len(yp)=%d are incorrect", len(x), len(yp))
		return
	}

	// vectors
	vx := r3.Vec{X: x[0], Y: x[1], Z: x[2]}
	vp := r3.Vec{X: yp[0], Y: yp[1], Z: yp[2]}
	vz := r3.Cross(vx, vp)
	vy := r3.Cross(vz, vx)

	// norms
	nx, np, nz, ny := r3.Norm(vx), r3.Norm(vp), r3.Norm(vz), r3.Norm(vy)
	if nx == 0 || np == 0 || nz == 0 || ny == 0 {
		err = newError(DegenerateGeometry, nil, "x=%v and yp=%v are zero or parallel (|x|=%g |yp|=%g |z|=%g |y|=%g)", x, yp, nx, np, nz, ny)
		return
	}
	vx = r3.Scale(1/nx, vx)
	vy = r3.Scale(1/ny, vy)
	vz = r3.Scale(1/nz, vz)

	// triad
	trf = mat.NewDense(3, 3, []float64{
		vx.X, vx.Y, vx.Z,
		vy.X, vy.Y, vy.Z,
		vz.X, vz.Y, vz.Z,
	})
	return
}
