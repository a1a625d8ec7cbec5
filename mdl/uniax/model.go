// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package uniax implements uniaxial (one-dimensional) constitutive models with trial/committed states
/*
 *   strain, strain rate ──► SetTrialStrain ──► trial state
 *                                                 │
 *                     CommitState ◄───────────────┤
 *                          │                      │
 *                          ▼                      ▼
 *                   committed state ──► RevertToLastCommit
 *
 *   RevertToStart: trial and committed states go back to the initial state
 */
package uniax

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/zerolen/comm"
)

// Class tags
const (
	ClassElastic    = 1 // linear elastic with viscous damping
	ClassElastPlast = 2 // elastoplastic with linear hardening
	ClassViscous    = 3 // nonlinear viscous damper
)

// Model defines the interface for uniaxial models
type Model interface {

	// information and initialisation
	Init(tag int, prms dbf.Params) error // initialises model and allocates states
	GetPrms() dbf.Params                 // gets (an example) of parameters
	Name() string                        // returns the name of model in the factory; e.g. "elastic"
	ClassTag() int                       // returns the class tag used by brokers
	Tag() int                            // returns the user tag of this material
	DbTag() int                          // returns the database tag
	SetDbTag(tag int)                    // sets the database tag
	Copy() (Model, error)                // returns a deep copy; the database tag is not copied

	// state
	SetTrialStrain(strain, strainRate float64) error // computes trial state from the last committed state
	CommitState() error                              // accepts trial state
	RevertToLastCommit() error                       // discards trial state
	RevertToStart() error                            // resets to initial state

	// results
	Strain() float64                      // trial strain
	StrainRate() float64                  // trial strain rate
	Stress() float64                      // trial stress
	Tangent() float64                     // dσ/dε @ trial state
	InitialTangent() float64              // dσ/dε @ initial state
	DampTangent() float64                 // dσ/dε̇ @ trial state
	Response(key string) (float64, error) // returns result by key; e.g. "stress"

	// persistence
	SendSelf(commitTag int, ch comm.Channel) error           // sends parameters and states
	RecvSelf(commitTag int, ch comm.Channel, b Broker) error // receives parameters and states
}

// Broker allocates models by class tag; e.g. when receiving data from a channel
type Broker interface {
	NewByClassTag(classTag int) Model // returns nil if class tag is unknown
}

// Factory implements a Broker with all models in this package
type Factory struct{}

// NewByClassTag returns a new (uninitialised) model
func (o Factory) NewByClassTag(classTag int) Model {
	name, ok := classnames[classTag]
	if !ok {
		return nil
	}
	return allocators[name]()
}

// New returns a new (uninitialised) model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'uniax' database", name)
	}
	return allocator(), nil
}

// Names returns the names of all available models
func Names() (names []string) {
	for classTag := 1; classTag <= len(classnames); classTag++ {
		if name, ok := classnames[classTag]; ok {
			names = append(names, name)
		}
	}
	return
}

// register adds model to factory
func register(name string, classTag int, allocator func() Model) {
	if _, ok := allocators[name]; ok {
		chk.Panic("cannot register model %q because name exists already", name)
	}
	if _, ok := classnames[classTag]; ok {
		chk.Panic("cannot register model %q because class tag %d exists already", name, classTag)
	}
	allocators[name] = allocator
	classnames[classTag] = name
}

// allocators holds all available models; modelname => allocator
var allocators = map[string]func() Model{}

// classnames maps class tags to model names
var classnames = map[int]string{}
