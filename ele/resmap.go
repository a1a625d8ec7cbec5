// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/io"

// ResMap defines a map to hold results @ output steps; e.g. "force0" => [f@step0, f@step1, ...]
type ResMap map[string][]float64

// NewResMap returns a new ResMap
func NewResMap() *ResMap {
	M := make(ResMap)
	return &M
}

// Set sets item in map by key and step index. The slice is resized with nstp in case it's empty
//  Input:
//   idx  -- index of output step
//   nstp -- number of output steps (to resize if necessary)
//   val  -- value of 'key' @ step 'idx'
func (o *ResMap) Set(key string, idx, nstp int, val float64) {
	if slice, ok := (*o)[key]; ok {
		slice[idx] = val
		return
	}
	slice := make([]float64, nstp)
	slice[idx] = val
	(*o)[key] = slice
}

// SetAll sets many items with keys given by prefix and index; e.g. "force0", "force1"
func (o *ResMap) SetAll(prefix string, idx, nstp int, vals []float64) {
	for i, v := range vals {
		o.Set(io.Sf("%s%d", prefix, i), idx, nstp, v)
	}
}

// Get returns item corresponding to 'key' and step 'idx'
//  Note: this function returns 0 if 'key' is not found. It also does not check for out-of-bound errors
func (o *ResMap) Get(key string, idx int) float64 {
	if slice, ok := (*o)[key]; ok {
		return slice[idx]
	}
	return 0
}
