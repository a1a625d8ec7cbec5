// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import "gonum.org/v1/gonum/mat"

// Layout holds the rules of one element configuration
//  Trans[k] and Rot[k] give the component of the triad row placed at slot k of the node block for
//  translational and rotational directions, respectively; -1 means zero
type Layout struct {
	Name  string // e.g. "D2N6"
	Ndim  int    // space dimension
	Ndof  int    // number of DOFs per node
	Trans []int  // [Ndof] triad components for translations
	Rot   []int  // [Ndof] triad components for rotations
}

// NumDOF returns the total number of DOFs of element
func (o *Layout) NumDOF() int { return 2 * o.Ndof }

// layouts holds all available configurations
var layouts = []*Layout{
	{Name: "D1N2", Ndim: 1, Ndof: 1, Trans: []int{0}, Rot: []int{-1}},
	{Name: "D2N4", Ndim: 2, Ndof: 2, Trans: []int{0, 1}, Rot: []int{-1, -1}},
	{Name: "D2N6", Ndim: 2, Ndof: 3, Trans: []int{0, 1, -1}, Rot: []int{-1, -1, 2}},
	{Name: "D3N6", Ndim: 3, Ndof: 3, Trans: []int{0, 1, 2}, Rot: []int{-1, -1, -1}},
	{Name: "D3N12", Ndim: 3, Ndof: 6, Trans: []int{0, 1, 2, -1, -1, -1}, Rot: []int{-1, -1, -1, 0, 1, 2}},
}

// GetLayout returns the configuration for given space dimension and number of DOFs per node. It
// returns nil if the combination is not available
func GetLayout(ndim, ndof int) *Layout {
	for _, l := range layouts {
		if l.Ndim == ndim && l.Ndof == ndof {
			return l
		}
	}
	return nil
}

// BuildTran computes the strain-displacement matrix [nmat][2*ndof]
//  Row m is the projection of the triad row (dirs[m] mod 3) onto the translational (dirs[m] < 3) or
//  rotational (dirs[m] >= 3) slots of node 2; the node 1 block is the negative of the node 2 block
func BuildTran(lay *Layout, trf mat.Matrix, dirs []int) *mat.Dense {
	nmat, n := len(dirs), lay.Ndof
	if nmat == 0 {
		return nil
	}
	T := mat.NewDense(nmat, 2*n, nil)
	for m, d := range dirs {
		axis := d % 3
		slots := lay.Trans
		if d >= 3 {
			slots = lay.Rot
		}
		for k, c := range slots {
			if c < 0 {
				continue
			}
			v := trf.At(axis, c)
			T.Set(m, n+k, v)
			T.Set(m, k, -v)
		}
	}
	return T
}

// DofKeys returns the keys of DOFs of one node. ex: D2N6 => ["ux", "uy", "rz"]
func (o *Layout) DofKeys() []string {
	axes := "xyz"
	keys := make([]string, o.Ndof)
	for k := range keys {
		switch {
		case o.Trans[k] >= 0:
			keys[k] = "u" + axes[o.Trans[k]:o.Trans[k]+1]
		case o.Rot[k] >= 0:
			keys[k] = "r" + axes[o.Rot[k]:o.Rot[k]+1]
		}
	}
	return keys
}
