// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele defines the contracts between elements, nodes, domains and solvers
package ele

import (
	"github.com/cpmech/zerolen/comm"
	"github.com/cpmech/zerolen/mdl/uniax"
	"gonum.org/v1/gonum/mat"
)

// Node defines what elements need from nodes
type Node interface {
	Tag() int             // returns the user tag
	NumDOF() int          // number of degrees of freedom
	Crds() []float64      // coordinates (3 components; missing ones are zero)
	TrialDisp() []float64 // trial displacements (len == NumDOF)
	TrialVel() []float64  // trial velocities (len == NumDOF)
}

// Domain defines what elements need from domains
type Domain interface {
	Node(tag int) Node // returns nil if node is not available
}

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Tag() int                   // returns the user tag
	ClassTag() int              // returns the class tag used by blank allocators
	DbTag() int                 // returns the database tag
	SetDbTag(tag int)           // sets the database tag
	NodeTags() []int            // returns the tags of connected nodes
	NumDOF() int                // total number of degrees of freedom
	SetDomain(dom Domain) error // resolves nodes and configuration

	// called for each iteration
	Update() error                           // computes trial state from trial displacements of nodes
	TangentStiff() *mat.SymDense             // tangent stiffness matrix
	InitialStiff() *mat.SymDense             // initial stiffness matrix
	Damp() *mat.SymDense                     // damping matrix
	Mass() *mat.SymDense                     // mass matrix
	ResistingForce() *mat.VecDense           // internal forces
	ResistingForceIncInertia() *mat.VecDense // internal forces including inertial ones

	// state
	CommitState() error        // accepts trial state
	RevertToLastCommit() error // discards trial state
	RevertToStart() error      // resets to initial state

	// loads
	ZeroLoad()                                       // clears element loads
	AddLoad(load interface{}, factor float64) error  // adds element load
	AddInertiaLoadToUnbalance(accel []float64) error // adds inertial load

	// output and persistence
	Response(key string, args ...string) ([]float64, error)             // returns results by key
	SendSelf(commitTag int, ch comm.Channel) error                      // sends element data
	RecvSelf(commitTag int, ch comm.Channel, broker uniax.Broker) error // receives element data
}
