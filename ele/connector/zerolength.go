// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package connector implements zero-length connector elements with uniaxial materials
package connector

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/ele"
	"github.com/cpmech/zerolen/inp"
	"github.com/cpmech/zerolen/mdl/uniax"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ClassTag is the class tag of zero-length elements
const ClassTag = 1

// LenTol is the default tolerance for the length of zero-length elements
const LenTol = 1e-6

// Verbose enables printing of warnings
var Verbose = false

// Phase indicates the last state transition of an element
type Phase int

// phases
const (
	Initial   Phase = iota // after allocation or RevertToStart
	TrialSet               // after Update
	Committed              // after CommitState
)

// String returns the name of phase
func (o Phase) String() string {
	switch o {
	case TrialSet:
		return "trial"
	case Committed:
		return "committed"
	}
	return "initial"
}

// ZeroLength implements an element connecting two (coincident) nodes by means of uniaxial
// materials acting along the directions of a local triad
//  Directions: 0,1,2 => translations along X,Y,Z; 3,4,5 => rotations about X,Y,Z
type ZeroLength struct {

	// basic data
	tag    int     // user tag
	dbTag  int     // database tag
	Ndim   int     // space dimension
	Nodes  [2]int  // node tags
	LenTol float64 // tolerance for length check

	// materials
	Mats []uniax.Model // [nmat] materials owned by this element
	Dirs []int         // [nmat] directions

	// geometry and configuration
	Trf *mat.Dense // [3][3] orientation triad; rows are the local X, Y, Z axes
	Lay *Layout    // configuration; nil if element is inert
	Nu  int        // total number of DOFs
	T   *mat.Dense // [nmat][nu] strain-displacement matrix; nil if inert or nmat == 0

	// state
	phase    Phase       // last state transition
	ncommit  int         // number of commits since start
	nodes    [2]ele.Node // connected nodes; nil if not attached
	warnings []string    // diagnostics

	// scratchpad. per instance
	K  *mat.SymDense // [nu][nu] tangent stiffness
	K0 *mat.SymDense // [nu][nu] initial stiffness
	C  *mat.SymDense // [nu][nu] damping
	M  *mat.SymDense // [nu][nu] mass (always zero)
	F  *mat.VecDense // [nu] resisting force
	du []float64     // [ndof] displacement of node 2 minus node 1
	dv []float64     // [ndof] velocity of node 2 minus node 1
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("zerolength", func(mdl *inp.Model, edat *inp.ElemData, ndof int) *ele.Info {
		lay := GetLayout(mdl.Ndim, ndof)
		if lay == nil {
			return nil
		}
		keys := lay.DofKeys()
		return &ele.Info{
			Dofs:    [][]string{keys, keys},
			Y2F:     ele.Y2Fmap(),
			Outputs: []string{"force", "deformation", "stiff"},
		}
	})

	// element allocator
	ele.SetAllocator("zerolength", func(mdl *inp.Model, edat *inp.ElemData, mats []uniax.Model) (ele.Element, error) {
		if len(edat.Nodes) != 2 {
			return nil, chk.Err("zerolength element %d needs 2 nodes. nodes=%v is incorrect", edat.Tag, edat.Nodes)
		}
		x, yp := edat.X, edat.Yp
		if len(x) == 0 {
			x = []float64{1, 0, 0}
		}
		if len(yp) == 0 {
			yp = []float64{0, 1, 0}
		}
		o, err := New(edat.Tag, mdl.Ndim, edat.Nodes[0], edat.Nodes[1], x, yp, mats, edat.Dirs)
		if err != nil {
			return nil, err
		}
		if mdl.LenTol > 0 {
			o.LenTol = mdl.LenTol
		}
		return o, nil
	})

	// blank allocator
	ele.SetBlankAllocator(ClassTag, func() ele.Element { return NewBlank() })
}

// New returns a new zero-length element
//  Input:
//   tag      -- element tag
//   ndim     -- space dimension
//   nd1, nd2 -- node tags
//   x, yp    -- orientation vectors; see NewOrientation
//   mats     -- materials; they are copied
//   dirs     -- directions of materials; codes outside [0,5] are replaced by 0
func New(tag, ndim, nd1, nd2 int, x, yp []float64, mats []uniax.Model, dirs []int) (o *ZeroLength, err error) {

	// check
	if len(mats) < 1 {
		return nil, newError(Configuration, nil, "zerolength element %d needs at least one material", tag)
	}
	if len(dirs) != len(mats) {
		return nil, newError(Configuration, nil, "zerolength element %d: number of directions (%d) must be equal to the number of materials (%d)", tag, len(dirs), len(mats))
	}

	// basic data
	o = new(ZeroLength)
	o.tag = tag
	o.Ndim = ndim
	o.Nodes = [2]int{nd1, nd2}
	o.LenTol = LenTol

	// orientation
	o.Trf, err = NewOrientation(x, yp)
	if err != nil {
		return nil, err
	}

	// directions
	o.Dirs = make([]int, len(dirs))
	for i, d := range dirs {
		if d < 0 || d > 5 {
			o.warn(newError(DirectionRange, nil, "zerolength element %d: direction %d of material %d is out of range [0,5]; using 0", tag, d, i).Error())
			d = 0
		}
		o.Dirs[i] = d
	}

	// materials
	o.Mats = make([]uniax.Model, len(mats))
	for i, m := range mats {
		if m == nil {
			return nil, newError(MaterialAllocation, nil, "zerolength element %d: material %d is nil", tag, i)
		}
		o.Mats[i], err = m.Copy()
		if err != nil {
			return nil, newError(MaterialAllocation, err, "zerolength element %d: cannot copy material %d", tag, i)
		}
	}

	// not attached yet
	o.setInert()
	return
}

// NewBlank returns an empty element to be received from a channel
func NewBlank() *ZeroLength {
	o := &ZeroLength{LenTol: LenTol, Trf: mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})}
	o.setInert()
	return o
}

// Tag returns the user tag
func (o *ZeroLength) Tag() int { return o.tag }

// ClassTag returns the class tag
func (o *ZeroLength) ClassTag() int { return ClassTag }

// DbTag returns the database tag
func (o *ZeroLength) DbTag() int { return o.dbTag }

// SetDbTag sets the database tag
func (o *ZeroLength) SetDbTag(tag int) { o.dbTag = tag }

// NodeTags returns the tags of connected nodes
func (o *ZeroLength) NodeTags() []int { return []int{o.Nodes[0], o.Nodes[1]} }

// NumDOF returns the total number of DOFs; 2 if inert
func (o *ZeroLength) NumDOF() int { return o.Nu }

// Phase returns the last state transition
func (o *ZeroLength) Phase() Phase { return o.phase }

// Inert returns whether the element is inert; i.e. not attached or with bad configuration
func (o *ZeroLength) Inert() bool { return o.Lay == nil || o.nodes[0] == nil }

// Warnings returns the diagnostics recorded so far
func (o *ZeroLength) Warnings() []string {
	return append([]string{}, o.warnings...)
}

// SetDomain resolves nodes and configuration
//  Note: topology and configuration errors are returned, but the element is still usable: it becomes
//        inert with 2 DOFs and zero contributions
func (o *ZeroLength) SetDomain(dom ele.Domain) (err error) {

	// reset
	o.setInert()
	o.nodes = [2]ele.Node{}
	if dom == nil {
		return
	}

	// nodes
	n1, n2 := dom.Node(o.Nodes[0]), dom.Node(o.Nodes[1])
	if n1 == nil || n2 == nil {
		missing := o.Nodes[0]
		if n1 != nil {
			missing = o.Nodes[1]
		}
		return o.inert(newError(Topology, nil, "node %d does not exist in domain of zerolength element %d", missing, o.tag))
	}
	ndof := n1.NumDOF()
	if n2.NumDOF() != ndof {
		return o.inert(newError(Topology, nil, "nodes %d and %d of zerolength element %d have different number of DOFs (%d and %d)", o.Nodes[0], o.Nodes[1], o.tag, ndof, n2.NumDOF()))
	}

	// check length
	c1, c2 := ele.Crds3(n1.Crds()), ele.Crds3(n2.Crds())
	L := floats.Distance(c1, c2, 2)
	vm := math.Max(floats.Norm(c1, 2), floats.Norm(c2, 2))
	if L > o.LenTol*vm {
		o.warn(io.Sf("zerolength element %d has L=%g, which is greater than the tolerance", o.tag, L))
	}

	// configuration
	lay := GetLayout(o.Ndim, ndof)
	if lay == nil {
		return o.inert(newError(Configuration, nil, "zerolength element %d cannot handle %d DOFs at nodes in a %dD problem", o.tag, ndof, o.Ndim))
	}
	o.nodes = [2]ele.Node{n1, n2}
	o.setLayout(lay)
	return
}

// UpdateDir recomputes the orientation triad and, if attached, the strain-displacement matrix
func (o *ZeroLength) UpdateDir(x, yp []float64) (err error) {
	trf, err := NewOrientation(x, yp)
	if err != nil {
		return
	}
	o.Trf = trf
	if o.Lay != nil {
		o.T = BuildTran(o.Lay, o.Trf, o.Dirs)
	}
	return
}

// Update sets the trial strains of all materials from the trial displacements and velocities of
// nodes. All materials are updated even if some fail
func (o *ZeroLength) Update() (err error) {
	if o.Inert() {
		return
	}
	u1, u2 := o.nodes[0].TrialDisp(), o.nodes[1].TrialDisp()
	v1, v2 := o.nodes[0].TrialVel(), o.nodes[1].TrialVel()
	for i := 0; i < o.Lay.Ndof; i++ {
		o.du[i] = u2[i] - u1[i]
		o.dv[i] = v2[i] - v1[i]
	}
	err = forEach("update", len(o.Mats), func(m int) error {
		return o.Mats[m].SetTrialStrain(o.strain(m, o.du), o.strain(m, o.dv))
	})
	o.phase = TrialSet
	return
}

// TangentStiff returns the tangent stiffness matrix
func (o *ZeroLength) TangentStiff() *mat.SymDense {
	return o.assemble(o.K, func(m uniax.Model) float64 { return m.Tangent() })
}

// InitialStiff returns the initial stiffness matrix
func (o *ZeroLength) InitialStiff() *mat.SymDense {
	return o.assemble(o.K0, func(m uniax.Model) float64 { return m.InitialTangent() })
}

// Damp returns the damping matrix
func (o *ZeroLength) Damp() *mat.SymDense {
	return o.assemble(o.C, func(m uniax.Model) float64 { return m.DampTangent() })
}

// Mass returns the mass matrix; always zero
func (o *ZeroLength) Mass() *mat.SymDense {
	o.M.Zero()
	return o.M
}

// ResistingForce returns the internal forces
func (o *ZeroLength) ResistingForce() *mat.VecDense {
	o.F.Zero()
	if o.T == nil {
		return o.F
	}
	for m, mdl := range o.Mats {
		σ := mdl.Stress()
		for i := 0; i < o.Nu; i++ {
			o.F.SetVec(i, o.F.AtVec(i)+o.T.At(m, i)*σ)
		}
	}
	return o.F
}

// ResistingForceIncInertia returns the internal forces; the same as ResistingForce
func (o *ZeroLength) ResistingForceIncInertia() *mat.VecDense {
	return o.ResistingForce()
}

// CommitState accepts the trial states of all materials
func (o *ZeroLength) CommitState() (err error) {
	err = forEach("commit", len(o.Mats), func(m int) error { return o.Mats[m].CommitState() })
	if err == nil {
		o.phase = Committed
		o.ncommit++
	}
	return
}

// RevertToLastCommit discards the trial states of all materials
func (o *ZeroLength) RevertToLastCommit() (err error) {
	err = forEach("revert", len(o.Mats), func(m int) error { return o.Mats[m].RevertToLastCommit() })
	o.phase = Initial
	if o.ncommit > 0 {
		o.phase = Committed
	}
	return
}

// RevertToStart resets all materials
func (o *ZeroLength) RevertToStart() (err error) {
	err = forEach("revert to start", len(o.Mats), func(m int) error { return o.Mats[m].RevertToStart() })
	o.phase = Initial
	o.ncommit = 0
	return
}

// ZeroLoad does nothing; this element has no element loads
func (o *ZeroLength) ZeroLoad() {}

// AddLoad does nothing; this element has no element loads
func (o *ZeroLength) AddLoad(load interface{}, factor float64) error { return nil }

// AddInertiaLoadToUnbalance does nothing; this element has no mass
func (o *ZeroLength) AddInertiaLoadToUnbalance(accel []float64) error { return nil }

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// setInert sets minimum configuration with 2 DOFs and zero contributions
func (o *ZeroLength) setInert() {
	o.Lay = nil
	o.Nu = 2
	o.T = nil
	o.alloc()
}

// inert records error as warning, makes element inert and returns error
func (o *ZeroLength) inert(err *Error) error {
	o.warn(err.Error())
	o.setInert()
	return err
}

// setLayout sets configuration and computes the strain-displacement matrix
func (o *ZeroLength) setLayout(lay *Layout) {
	o.Lay = lay
	o.Nu = lay.NumDOF()
	o.T = BuildTran(lay, o.Trf, o.Dirs)
	o.alloc()
}

// alloc allocates scratchpad
func (o *ZeroLength) alloc() {
	o.K = mat.NewSymDense(o.Nu, nil)
	o.K0 = mat.NewSymDense(o.Nu, nil)
	o.C = mat.NewSymDense(o.Nu, nil)
	o.M = mat.NewSymDense(o.Nu, nil)
	o.F = mat.NewVecDense(o.Nu, nil)
	o.du = make([]float64, o.Nu/2)
	o.dv = make([]float64, o.Nu/2)
}

// warn records and prints (if Verbose) a diagnostic
func (o *ZeroLength) warn(msg string) {
	o.warnings = append(o.warnings, msg)
	if Verbose {
		io.Pfyel("WARNING: %s\n", msg)
	}
}

// strain computes the strain of material m for differences d of node 2 minus node 1
func (o *ZeroLength) strain(m int, d []float64) (ε float64) {
	for i := 0; i < o.Nu/2; i++ {
		ε -= d[i] * o.T.At(m, i)
	}
	return
}

// assemble computes Σ Tᵀ k T with k given by tangent; only the lower triangle is computed since
// SetSym mirrors it
func (o *ZeroLength) assemble(K *mat.SymDense, tangent func(m uniax.Model) float64) *mat.SymDense {
	K.Zero()
	if o.T == nil {
		return K
	}
	for m, mdl := range o.Mats {
		k := tangent(mdl)
		for i := 0; i < o.Nu; i++ {
			ti := o.T.At(m, i) * k
			for j := 0; j <= i; j++ {
				K.SetSym(i, j, K.At(i, j)+ti*o.T.At(m, j))
			}
		}
	}
	return K
}
