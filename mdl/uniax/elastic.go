// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniax

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/zerolen/comm"
)

// Elastic implements a linear elastic model with linear viscous damping
//  σ = E ε + η ε̇
type Elastic struct {
	core
	E   float64 // Young's modulus or spring stiffness
	Eta float64 // damping coefficient
}

// add model to factory
func init() {
	register("elastic", ClassElastic, func() Model { return new(Elastic) })
}

// Name returns the name of this model
func (o *Elastic) Name() string { return "elastic" }

// ClassTag returns the class tag of this model
func (o *Elastic) ClassTag() int { return ClassElastic }

// Init initialises model
func (o *Elastic) Init(tag int, prms dbf.Params) (err error) {
	o.tag = tag
	o.Eta = 0
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "eta":
			o.Eta = p.V
		default:
			return chk.Err("elastic model: parameter named %q is incorrect", p.N)
		}
	}
	if e := prms.Connect(&o.E, "E", "elastic model"); e != "" {
		return chk.Err("%s", e)
	}
	o.initStates(0)
	return
}

// GetPrms gets (an example) of parameters
func (o *Elastic) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "E", V: 100},
		&dbf.P{N: "eta", V: 0},
	}
}

// Copy returns a deep copy
func (o *Elastic) Copy() (Model, error) {
	c, err := o.copyCore()
	if err != nil {
		return nil, err
	}
	return &Elastic{core: c, E: o.E, Eta: o.Eta}, nil
}

// SetTrialStrain computes trial stress
func (o *Elastic) SetTrialStrain(strain, strainRate float64) error {
	o.Trial.Eps = strain
	o.Trial.EpsDot = strainRate
	o.Trial.Sig = o.E*strain + o.Eta*strainRate
	return nil
}

// Tangent returns dσ/dε
func (o *Elastic) Tangent() float64 { return o.E }

// InitialTangent returns dσ/dε @ initial state
func (o *Elastic) InitialTangent() float64 { return o.E }

// DampTangent returns dσ/dε̇
func (o *Elastic) DampTangent() float64 { return o.Eta }

// Response returns results by key
func (o *Elastic) Response(key string) (float64, error) { return response(o, key) }

// SendSelf sends parameters and states
func (o *Elastic) SendSelf(commitTag int, ch comm.Channel) error {
	return o.sendState(commitTag, ch, []float64{o.E, o.Eta})
}

// RecvSelf receives parameters and states
func (o *Elastic) RecvSelf(commitTag int, ch comm.Channel, b Broker) (err error) {
	prms := make([]float64, 2)
	err = o.recvState(commitTag, ch, prms, 0)
	if err != nil {
		return
	}
	o.E, o.Eta = prms[0], prms[1]
	return
}
