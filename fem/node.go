// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/zerolen/ele"
	"github.com/cpmech/zerolen/inp"
)

// Node holds node data and trial/committed displacements and velocities
type Node struct {
	tag int       // user tag
	X   []float64 // [3] coordinates
	U   []float64 // [ndof] trial displacements
	V   []float64 // [ndof] trial velocities
	Uc  []float64 // [ndof] committed displacements
	Vc  []float64 // [ndof] committed velocities
}

// NewNode returns a new node
func NewNode(tag, ndof int, x []float64) *Node {
	return &Node{
		tag: tag,
		X:   ele.Crds3(x),
		U:   make([]float64, ndof),
		V:   make([]float64, ndof),
		Uc:  make([]float64, ndof),
		Vc:  make([]float64, ndof),
	}
}

// NewNodeFromData returns a new node from input data
func NewNodeFromData(d *inp.NodeData) *Node {
	return NewNode(d.Tag, d.Ndof, d.X)
}

// Tag returns the user tag
func (o *Node) Tag() int { return o.tag }

// NumDOF returns the number of degrees of freedom
func (o *Node) NumDOF() int { return len(o.U) }

// Crds returns the coordinates
func (o *Node) Crds() []float64 { return o.X }

// TrialDisp returns the trial displacements
func (o *Node) TrialDisp() []float64 { return o.U }

// TrialVel returns the trial velocities
func (o *Node) TrialVel() []float64 { return o.V }

// SetTrial sets trial displacement and velocity of one DOF
func (o *Node) SetTrial(dof int, u, v float64) (err error) {
	if dof < 0 || dof >= len(o.U) {
		return chk.Err("node %d has %d DOFs. dof=%d is incorrect", o.tag, len(o.U), dof)
	}
	o.U[dof] = u
	o.V[dof] = v
	return
}

// CommitState accepts trial values
func (o *Node) CommitState() {
	copy(o.Uc, o.U)
	copy(o.Vc, o.V)
}

// RevertToLastCommit discards trial values
func (o *Node) RevertToLastCommit() {
	copy(o.U, o.Uc)
	copy(o.V, o.Vc)
}

// RevertToStart zeroes all values
func (o *Node) RevertToStart() {
	for i := range o.U {
		o.U[i], o.V[i], o.Uc[i], o.Vc[i] = 0, 0, 0, 0
	}
}

// packedSize returns the number of values of a node sent through channels
func (o *Node) packedSize() int { return 2 + 3 + 4*len(o.U) }

// pack writes {tag, ndof, x, u, v, uc, vc} into v
func (o *Node) pack(v []float64) {
	n := len(o.U)
	v[0], v[1] = float64(o.tag), float64(n)
	copy(v[2:5], o.X)
	copy(v[5:], o.U)
	copy(v[5+n:], o.V)
	copy(v[5+2*n:], o.Uc)
	copy(v[5+3*n:], o.Vc)
}

// unpackNode reads node from v; it returns the node and the number of values read
func unpackNode(v []float64) (o *Node, nread int, err error) {
	if len(v) < 5 {
		return nil, 0, chk.Err("cannot unpack node: not enough data")
	}
	n := int(v[1])
	o = NewNode(int(v[0]), n, v[2:5])
	nread = o.packedSize()
	if len(v) < nread {
		return nil, 0, chk.Err("cannot unpack node %d: not enough data", o.tag)
	}
	copy(o.U, v[5:5+n])
	copy(o.V, v[5+n:5+2*n])
	copy(o.Uc, v[5+2*n:5+3*n])
	copy(o.Vc, v[5+3*n:5+4*n])
	return
}
