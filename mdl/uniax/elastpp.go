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

// ElastPlast implements a 1D elastoplastic model with linear isotropic and kinematic hardening
//  f = |σ - q| - (σy0 + Hi α)
//  Note: with Hi = Hk = 0, this becomes the elastic-perfectly-plastic model
//  Internal variables: Alp = {εp, α, q} == {plastic strain, accumulated plastic strain, back stress}
type ElastPlast struct {
	core
	E   float64 // Young's modulus
	Sy0 float64 // initial yield stress
	Hi  float64 // isotropic hardening modulus
	Hk  float64 // kinematic hardening modulus
}

// add model to factory
func init() {
	register("elastic-pp", ClassElastPlast, func() Model { return new(ElastPlast) })
}

// Name returns the name of this model
func (o *ElastPlast) Name() string { return "elastic-pp" }

// ClassTag returns the class tag of this model
func (o *ElastPlast) ClassTag() int { return ClassElastPlast }

// Init initialises model
func (o *ElastPlast) Init(tag int, prms dbf.Params) (err error) {
	o.tag = tag
	o.Hi, o.Hk = 0, 0
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "sy0":
			o.Sy0 = p.V
		case "Hi":
			o.Hi = p.V
		case "Hk":
			o.Hk = p.V
		default:
			return chk.Err("elastic-pp model: parameter named %q is incorrect", p.N)
		}
	}
	if o.E <= 0 {
		return chk.Err("elastic-pp model: E must be positive. E = %g is incorrect", o.E)
	}
	if o.Sy0 <= 0 {
		return chk.Err("elastic-pp model: sy0 must be positive. sy0 = %g is incorrect", o.Sy0)
	}
	o.initStates(3)
	return
}

// GetPrms gets (an example) of parameters
func (o *ElastPlast) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "sy0", V: 10},
		&dbf.P{N: "Hi", V: 0},
		&dbf.P{N: "Hk", V: 0},
	}
}

// Copy returns a deep copy
func (o *ElastPlast) Copy() (Model, error) {
	c, err := o.copyCore()
	if err != nil {
		return nil, err
	}
	return &ElastPlast{core: c, E: o.E, Sy0: o.Sy0, Hi: o.Hi, Hk: o.Hk}, nil
}

// SetTrialStrain updates stress for given strain by means of a return mapping from the last
// committed state
func (o *ElastPlast) SetTrialStrain(strain, strainRate float64) error {

	// committed internal values
	εp := o.Commit.Alp[0]
	α := o.Commit.Alp[1]
	q := o.Commit.Alp[2]

	// trial stress
	σtr := o.E * (strain - εp)
	ξtr := σtr - q
	ftr := math.Abs(ξtr) - (o.Sy0 + o.Hi*α)

	// elastic update
	o.Trial.Eps = strain
	o.Trial.EpsDot = strainRate
	if ftr <= 0.0 {
		o.Trial.Sig = σtr
		copy(o.Trial.Alp, o.Commit.Alp)
		o.Trial.Loading = false
		return nil
	}

	// plastic update
	Δγ := ftr / (o.E + o.Hi + o.Hk)
	s := math.Copysign(1, ξtr)
	o.Trial.Sig = σtr - o.E*Δγ*s
	o.Trial.Alp[0] = εp + Δγ*s
	o.Trial.Alp[1] = α + Δγ
	o.Trial.Alp[2] = q + o.Hk*Δγ*s
	o.Trial.Loading = true
	return nil
}

// Tangent returns dσ/dε consistent with the return mapping
func (o *ElastPlast) Tangent() float64 {
	if !o.Trial.Loading {
		return o.E
	}
	return o.E * (o.Hi + o.Hk) / (o.E + o.Hi + o.Hk)
}

// InitialTangent returns dσ/dε @ initial state
func (o *ElastPlast) InitialTangent() float64 { return o.E }

// DampTangent returns dσ/dε̇
func (o *ElastPlast) DampTangent() float64 { return 0 }

// Response returns results by key
//  Note: "plasticStrain" and "backStress" are also available
func (o *ElastPlast) Response(key string) (float64, error) {
	switch key {
	case "plasticStrain":
		return o.Trial.Alp[0], nil
	case "backStress":
		return o.Trial.Alp[2], nil
	}
	return response(o, key)
}

// SendSelf sends parameters and states
func (o *ElastPlast) SendSelf(commitTag int, ch comm.Channel) error {
	return o.sendState(commitTag, ch, []float64{o.E, o.Sy0, o.Hi, o.Hk})
}

// RecvSelf receives parameters and states
func (o *ElastPlast) RecvSelf(commitTag int, ch comm.Channel, b Broker) (err error) {
	prms := make([]float64, 4)
	err = o.recvState(commitTag, ch, prms, 3)
	if err != nil {
		return
	}
	o.E, o.Sy0, o.Hi, o.Hk = prms[0], prms[1], prms[2], prms[3]
	return
}
