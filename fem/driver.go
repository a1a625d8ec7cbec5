// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/ele"
	"github.com/cpmech/zerolen/inp"
)

// StepFunc defines a function called after each committed step; e.g. to save checkpoints
type StepFunc func(step int, dom *Domain) error

// Driver runs a displacement-controlled path: for each step, the trial displacement of one DOF is
// prescribed, elements are updated and, if successful, the state is committed
type Driver struct {
	Dom   *Domain       // domain
	Path  *inp.PathData // path
	Res   *ele.ResMap   // results @ steps; keys: "u", "R", "Kt" and "e<tag>:<response><i>"
	Nstp  int           // number of steps completed
	After StepFunc      // [optional] called after each committed step

	// derived
	Ukey string // key of driven DOF; e.g. "ux". "u" if not available
	Fkey string // key of force at driven DOF; e.g. "fx". "R" if not available
}

// defaultOutputs holds the responses recorded for elements without information
var defaultOutputs = []string{"force", "deformation"}

// NewDriver returns a new driver
func NewDriver(dom *Domain, path *inp.PathData) (o *Driver, err error) {
	if path == nil {
		return nil, chk.Err("cannot allocate driver without path")
	}
	n, ok := dom.Tag2node[path.Node]
	if !ok {
		return nil, chk.Err("driven node %d does not exist", path.Node)
	}
	if path.Dof >= n.NumDOF() {
		return nil, chk.Err("driven node %d has %d DOFs. dof=%d is incorrect", path.Node, n.NumDOF(), path.Dof)
	}
	o = &Driver{Dom: dom, Path: path, Res: ele.NewResMap(), Ukey: "u", Fkey: "R"}
	o.setKeys()
	return
}

// setKeys sets the keys of driven DOF from the first element connected to the driven node
func (o *Driver) setKeys() {
	for i, e := range o.Dom.Elems {
		info := o.info(i)
		if info == nil {
			continue
		}
		for m, tag := range e.NodeTags() {
			if tag != o.Path.Node {
				continue
			}
			if ukey := info.Key(m, o.Path.Dof); ukey != "" {
				o.Ukey = ukey
				if fkey, ok := info.Y2F[ukey]; ok {
					o.Fkey = fkey
				}
				return
			}
		}
	}
}

// info returns information about element i or nil
func (o *Driver) info(i int) *ele.Info {
	if i < len(o.Dom.Infos) {
		return o.Dom.Infos[i]
	}
	return nil
}

// Run runs all steps
//  Note: when the update of a step fails, the domain is reverted to the last committed state and
//        the error is returned
func (o *Driver) Run() (err error) {
	node := o.Dom.Tag2node[o.Path.Node]
	nstp := len(o.Path.Disps)
	uprev := node.Uc[o.Path.Dof]
	if o.Dom.Verbose {
		io.Pf("%4s%13s%13s%13s\n", "step", o.Ukey, o.Fkey, "Kt")
	}
	for k, u := range o.Path.Disps {

		// trial state
		v := (u - uprev) / o.Path.Dt
		node.SetTrial(o.Path.Dof, u, v)
		err = o.Dom.Update()
		if err != nil {
			if e := o.Dom.RevertToLastCommit(); e != nil {
				return chk.Err("step %d: update failed:\n%v\nrevert failed:\n%v", k, err, e)
			}
			return chk.Err("step %d: update failed:\n%v", k, err)
		}

		// results
		o.record(k, nstp, u)

		// commit
		err = o.Dom.CommitState()
		if err != nil {
			return chk.Err("step %d: commit failed:\n%v", k, err)
		}
		o.Nstp = k + 1
		uprev = u
		if o.Dom.Verbose {
			io.Pf("%4d%13.6g%13.6g%13.6g\n", k, u, o.Res.Get("R", k), o.Res.Get("Kt", k))
		}
		if o.After != nil {
			err = o.After(k, o.Dom)
			if err != nil {
				return
			}
		}
	}
	return
}

// record saves results of step k
func (o *Driver) record(k, nstp int, u float64) {
	o.Res.Set("u", k, nstp, u)
	var R, Kt float64
	for i, c := range o.Dom.Assemble(2) {
		e := o.Dom.Elems[i]
		if idx := o.dofIndex(e); idx >= 0 {
			R += c.F.AtVec(idx)
			Kt += c.K.At(idx, idx)
		}
		outputs := defaultOutputs
		if info := o.info(i); info != nil {
			outputs = info.Outputs
		}
		for _, key := range outputs {
			if vals, err := e.Response(key); err == nil {
				o.Res.SetAll(io.Sf("e%d:%s", e.Tag(), key), k, nstp, vals)
			}
		}
	}
	o.Res.Set("R", k, nstp, R)
	o.Res.Set("Kt", k, nstp, Kt)
}

// dofIndex returns the local index of the driven DOF in element e or -1
func (o *Driver) dofIndex(e ele.Element) int {
	nu := e.NumDOF()
	tags := e.NodeTags()
	n := nu / len(tags)
	if o.Path.Dof >= n {
		return -1
	}
	for m, tag := range tags {
		if tag == o.Path.Node {
			return m*n + o.Path.Dof
		}
	}
	return -1
}
