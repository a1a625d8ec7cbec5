// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FuncData holds the definition of a function generating prescribed displacements
//  Note: the function is evaluated at the end of each step; i.e. at t = (k+1) dt
type FuncData struct {
	Type   string     `json:"type"`   // type of function. ex: rmp, sin, cos, lin
	Prms   dbf.Params `json:"prms"`   // parameters
	Nsteps int        `json:"nsteps"` // number of steps
}

// Values returns the displacements at each step
func (o *FuncData) Values(dt float64) (u []float64, err error) {
	if o.Nsteps < 1 {
		return nil, chk.Err("function %q: nsteps must be positive. nsteps=%d is incorrect", o.Type, o.Nsteps)
	}
	f, err := newFunction(o.Type, o.Prms)
	if err != nil {
		return
	}
	u = make([]float64, o.Nsteps)
	for k := range u {
		u[k] = f.F(float64(k+1)*dt, nil)
	}
	return
}

// newFunction allocates function by type; errors in dbf are reported with panics
func newFunction(typ string, prms dbf.Params) (f dbf.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot allocate function %q:\n%v", typ, r)
		}
	}()
	f = dbf.New(typ, prms)
	return
}

// PathData holds a displacement-controlled loading path
type PathData struct {
	Node  int       `json:"node"`  // tag of driven node
	Dof   int       `json:"dof"`   // index of driven DOF at node
	Disps []float64 `json:"disps"` // prescribed displacements at each step
	Dt    float64   `json:"dt"`    // time increment; velocities are Δu/dt. 0 => 1
	Fcn   *FuncData `json:"fcn"`   // [optional] function generating disps
}

// PostProcess checks data and sets default values
func (o *PathData) PostProcess() (err error) {
	if o.Dt <= 0 {
		o.Dt = 1
	}
	if o.Fcn != nil {
		o.Disps, err = o.Fcn.Values(o.Dt)
		if err != nil {
			return
		}
	}
	if len(o.Disps) == 0 {
		return chk.Err("path must have at least one prescribed displacement")
	}
	if o.Dof < 0 {
		return chk.Err("path: dof must be non-negative. dof=%d is incorrect", o.Dof)
	}
	return
}
