// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.zlen) JSON files
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// NodeData holds node data
type NodeData struct {
	Tag  int       `json:"tag"`  // tag of node
	X    []float64 `json:"x"`    // coordinates (1, 2 or 3 components)
	Ndof int       `json:"ndof"` // number of degrees of freedom
}

// ElemData holds element data
type ElemData struct {
	Tag   int       `json:"tag"`   // tag of element
	Type  string    `json:"type"`  // type of element. ex: zerolength
	Nodes []int     `json:"nodes"` // tags of nodes
	X     []float64 `json:"x"`     // local x-axis; default = [1,0,0]
	Yp    []float64 `json:"yp"`    // vector in local x-y plane; default = [0,1,0]
	Mats  []string  `json:"mats"`  // names of materials
	Dirs  []int     `json:"dirs"`  // directions of materials: 0,1,2 => ux,uy,uz; 3,4,5 => rx,ry,rz
}

// Model holds all data of one model
type Model struct {

	// input
	Desc     string      `json:"desc"`     // description of model
	Ndim     int         `json:"ndim"`     // space dimension
	Encoder  string      `json:"encoder"`  // encoder name; e.g. "gob" "json"
	Verbose  bool        `json:"verbose"`  // show messages
	LenTol   float64     `json:"lentol"`   // tolerance for the length of zero-length elements; 0 => default
	Database string      `json:"database"` // [optional] SQLite file for checkpoints
	Nodes    []*NodeData `json:"nodes"`    // nodes
	Elements []*ElemData `json:"elements"` // elements
	Path     *PathData   `json:"path"`     // displacement path

	// materials
	MatDb

	// derived
	Key string `json:"-"` // filename key; e.g. model.zlen => model
}

// ReadModel reads model data from a JSON file
//  Note: ZLEN_ENCODER and ZLEN_DB environment variables override "encoder" and "database"
func ReadModel(dir, fn string) (o *Model, err error) {

	// read file
	fpath := filepath.Join(os.ExpandEnv(dir), fn)
	if _, err = os.Stat(fpath); err != nil {
		return nil, chk.Err("cannot read model file %q:\n%v", fpath, err)
	}
	b := io.ReadFile(fpath)

	// decode
	o = new(Model)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal model file %q:\n%v", fn, err)
	}
	o.Key = io.FnKey(fn)

	// overrides
	if enc := os.Getenv("ZLEN_ENCODER"); enc != "" {
		o.Encoder = enc
	}
	if db := os.Getenv("ZLEN_DB"); db != "" {
		o.Database = db
	}

	// check and set defaults
	err = o.PostProcess()
	if err != nil {
		return nil, err
	}

	// materials
	err = o.MatDb.Init()
	if err != nil {
		return nil, err
	}
	return
}

// PostProcess checks data and sets default values
func (o *Model) PostProcess() (err error) {
	if o.Ndim < 1 || o.Ndim > 3 {
		return chk.Err("ndim must be 1, 2 or 3. ndim=%d is incorrect", o.Ndim)
	}
	if o.Encoder != "gob" && o.Encoder != "json" {
		o.Encoder = "gob"
	}
	tags := make(map[int]bool)
	for _, n := range o.Nodes {
		if tags[n.Tag] {
			return chk.Err("node tag %d is repeated", n.Tag)
		}
		tags[n.Tag] = true
		if n.Ndof < 1 {
			return chk.Err("node %d: ndof must be positive. ndof=%d is incorrect", n.Tag, n.Ndof)
		}
	}
	tags = make(map[int]bool)
	for _, e := range o.Elements {
		if tags[e.Tag] {
			return chk.Err("element tag %d is repeated", e.Tag)
		}
		tags[e.Tag] = true
		if e.Type == "" {
			e.Type = "zerolength"
		}
	}
	if o.Path != nil {
		err = o.Path.PostProcess()
	}
	return
}

// Ndata returns node data by tag
//  Note: returns nil if not found
func (o *Model) Ndata(tag int) *NodeData {
	for _, n := range o.Nodes {
		if n.Tag == tag {
			return n
		}
	}
	return nil
}
