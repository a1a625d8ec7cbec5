// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/mdl/uniax"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Model string     `json:"model"` // name of model; e.g. "elastic", "elastic-pp", "viscous"
	Tag   int        `json:"tag"`   // user tag of material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material

	// derived
	Mdl uniax.Model `json:"-"` // pointer to actual uniaxial model
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {
	Materials MatsData `json:"materials"` // all materials
}

// Init allocates and initialises all models
func (o *MatDb) Init() (err error) {
	names := make(map[string]bool)
	for _, m := range o.Materials {
		if names[m.Name] {
			return chk.Err("material name %q is repeated", m.Name)
		}
		names[m.Name] = true
		m.Mdl, err = uniax.New(m.Model)
		if err != nil {
			return chk.Err("cannot allocate material %q:\n%v", m.Name, err)
		}
		err = m.Mdl.Init(m.Tag, m.Prms)
		if err != nil {
			return chk.Err("cannot initialise material %q:\n%v", m.Name, err)
		}
	}
	return
}

// Get returns the model of a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) uniax.Model {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat.Mdl
		}
	}
	return nil
}

// String prints one material
func (o *Material) String() string {
	return io.Sf("    {\"name\":%q, \"model\":%q, \"tag\":%d, \"prms\":[%s]}", o.Name, o.Model, o.Tag, prmsJSON(o.Prms))
}

// String prints materials
func (o MatsData) String() string {
	l := "  \"materials\" : [\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", m)
	}
	l += "\n  ]"
	return l
}

// prmsJSON prints parameters in JSON format
func prmsJSON(prms dbf.Params) (l string) {
	for i, p := range prms {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{\"n\":%q, \"v\":%g}", p.N, p.V)
	}
	return
}
