// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Response returns results by key
//  Keys:
//   "force", "forces"                   -- stresses of materials [nmat]
//   "deformation", "deformations", "defo" -- strains of materials [nmat]
//   "defoANDforce", "deformationANDforces", "deformationsANDforces" -- strains then stresses [2*nmat]
//   "stiff"                             -- tangents of materials [nmat]
//   "material", i, key                  -- response key of material i (1-based) [1]
func (o *ZeroLength) Response(key string, args ...string) (res []float64, err error) {
	nmat := len(o.Mats)
	switch key {

	case "force", "forces":
		res = make([]float64, nmat)
		for i, m := range o.Mats {
			res[i] = m.Stress()
		}

	case "deformation", "deformations", "defo":
		res = make([]float64, nmat)
		for i, m := range o.Mats {
			res[i] = m.Strain()
		}

	case "defoANDforce", "deformationANDforces", "deformationsANDforces":
		res = make([]float64, 2*nmat)
		for i, m := range o.Mats {
			res[i] = m.Strain()
			res[nmat+i] = m.Stress()
		}

	case "stiff":
		res = make([]float64, nmat)
		for i, m := range o.Mats {
			res[i] = m.Tangent()
		}

	case "material":
		if len(args) < 2 {
			return nil, chk.Err("zerolength element %d: response \"material\" needs the material number and a key", o.tag)
		}
		i, e := strconv.Atoi(args[0])
		if e != nil || i < 1 || i > nmat {
			return nil, chk.Err("zerolength element %d: material number %q is invalid; it must be in [1,%d]", o.tag, args[0], nmat)
		}
		v, e := o.Mats[i-1].Response(args[1])
		if e != nil {
			return nil, e
		}
		res = []float64{v}

	default:
		return nil, chk.Err("zerolength element %d: response %q is not available", o.tag, key)
	}
	return
}

// String returns a summary of element data
func (o *ZeroLength) String() string {
	l := io.Sf("Element: %d type: ZeroLength  iNode: %d jNode: %d\n", o.tag, o.Nodes[0], o.Nodes[1])
	for i, m := range o.Mats {
		l += io.Sf("\tMaterial1d, tag: %d, dir: %d (%s)\n", m.Tag(), o.Dirs[i], m.Name())
	}
	return l
}
