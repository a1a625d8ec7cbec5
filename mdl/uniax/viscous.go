// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniax

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/zerolen/comm"
)

// Viscous implements a nonlinear viscous damper
//  σ = C |ε̇|^α sign(ε̇)
//  Note: the damping tangent uses vmin when |ε̇| < vmin to avoid the singularity of α < 1
type Viscous struct {
	core
	C    float64 // damping coefficient
	Alph float64 // power factor α
	Vmin float64 // minimum velocity for the damping tangent
}

// add model to factory
func init() {
	register("viscous", ClassViscous, func() Model { return new(Viscous) })
}

// Name returns the name of this model
func (o *Viscous) Name() string { return "viscous" }

// ClassTag returns the class tag of this model
func (o *Viscous) ClassTag() int { return ClassViscous }

// Init initialises model
func (o *Viscous) Init(tag int, prms dbf.Params) (err error) {
	o.tag = tag
	o.Alph = 1
	o.Vmin = 1e-11
	for _, p := range prms {
		switch p.N {
		case "C":
			o.C = p.V
		case "alpha":
			o.Alph = p.V
		case "vmin":
			o.Vmin = p.V
		default:
			return chk.Err("viscous model: parameter named %q is incorrect", p.N)
		}
	}
	if o.Alph <= 0 {
		return chk.Err("viscous model: alpha must be positive. alpha = %g is incorrect", o.Alph)
	}
	if o.Vmin <= 0 {
		return chk.Err("viscous model: vmin must be positive. vmin = %g is incorrect", o.Vmin)
	}
	o.initStates(0)
	return
}

// GetPrms gets (an example) of parameters
func (o *Viscous) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "C", V: 10},
		&dbf.P{N: "alpha", V: 1},
		&dbf.P{N: "vmin", V: 1e-11},
	}
}

// Copy returns a deep copy
func (o *Viscous) Copy() (Model, error) {
	c, err := o.copyCore()
	if err != nil {
		return nil, err
	}
	return &Viscous{core: c, C: o.C, Alph: o.Alph, Vmin: o.Vmin}, nil
}

// SetTrialStrain computes trial stress; only the strain rate matters
func (o *Viscous) SetTrialStrain(strain, strainRate float64) error {
	o.Trial.Eps = strain
	o.Trial.EpsDot = strainRate
	o.Trial.Sig = math.Copysign(o.C*math.Pow(math.Abs(strainRate), o.Alph), strainRate)
	return nil
}

// Tangent returns dσ/dε
func (o *Viscous) Tangent() float64 { return 0 }

// InitialTangent returns dσ/dε @ initial state
func (o *Viscous) InitialTangent() float64 { return 0 }

// DampTangent returns dσ/dε̇
func (o *Viscous) DampTangent() float64 {
	v := math.Abs(o.Trial.EpsDot)
	if v < o.Vmin {
		v = o.Vmin
	}
	return o.Alph * o.C * math.Pow(v, o.Alph-1)
}

// Response returns results by key
func (o *Viscous) Response(key string) (float64, error) { return response(o, key) }

// SendSelf sends parameters and states
func (o *Viscous) SendSelf(commitTag int, ch comm.Channel) error {
	return o.sendState(commitTag, ch, []float64{o.C, o.Alph, o.Vmin})
}

// RecvSelf receives parameters and states
func (o *Viscous) RecvSelf(commitTag int, ch comm.Channel, b Broker) (err error) {
	prms := make([]float64, 3)
	err = o.recvState(commitTag, ch, prms, 0)
	if err != nil {
		return
	}
	o.C, o.Alph, o.Vmin = prms[0], prms[1], prms[2]
	return
}
