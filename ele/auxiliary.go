// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Crds3 returns a copy of coordinates x with 3 components; missing components are zero
func Crds3(x []float64) (c []float64) {
	c = make([]float64, 3)
	copy(c, x)
	return
}
