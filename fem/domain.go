// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the domain (nodes and elements) and a displacement-controlled driver
package fem

import (
	"errors"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/comm"
	"github.com/cpmech/zerolen/ele"
	"github.com/cpmech/zerolen/inp"
	"github.com/cpmech/zerolen/mdl/uniax"
	"gonum.org/v1/gonum/mat"

	// register elements
	_ "github.com/cpmech/zerolen/ele/connector"
)

// Domain holds all Nodes and Elements
type Domain struct {
	Verbose  bool          // show messages
	Nodes    []*Node       // all nodes
	Elems    []ele.Element // all elements
	Infos    []*ele.Info   // [nelems] information about elements; nil if not available
	Tag2node map[int]*Node // node tag => node
}

// NewDomain returns a new domain with nodes and elements from input data
//  Note: elements are not attached yet; call Attach
func NewDomain(mdl *inp.Model) (o *Domain, err error) {
	o = new(Domain)
	o.Verbose = mdl.Verbose
	o.Tag2node = make(map[int]*Node)
	for _, d := range mdl.Nodes {
		o.AddNode(NewNodeFromData(d))
	}
	for _, edat := range mdl.Elements {
		e, err := ele.New(mdl, edat)
		if err != nil {
			return nil, err
		}
		o.Elems = append(o.Elems, e)
		o.Infos = append(o.Infos, o.info(mdl, edat))
	}
	if o.Verbose {
		io.Pf("> domain with %d nodes and %d elements allocated\n", len(o.Nodes), len(o.Elems))
	}
	return
}

// info returns information about element or nil. Nodes whose DOFs do not match the information
// are reported in verbose mode; the element itself fails when attached
func (o *Domain) info(mdl *inp.Model, edat *inp.ElemData) *ele.Info {
	if len(edat.Nodes) == 0 {
		return nil
	}
	n1, ok := o.Tag2node[edat.Nodes[0]]
	if !ok {
		return nil
	}
	info, err := ele.GetInfo(mdl, edat, n1.NumDOF())
	if err != nil {
		if o.Verbose {
			io.Pfyel("WARNING: %v\n", err)
		}
		return nil
	}
	for m, tag := range edat.Nodes {
		n, ok := o.Tag2node[tag]
		if !ok || m >= len(info.Dofs) {
			continue
		}
		if n.NumDOF() != len(info.Dofs[m]) && o.Verbose {
			io.Pfyel("WARNING: element %d: node %d has %d DOFs; expected %v\n", edat.Tag, tag, n.NumDOF(), info.Dofs[m])
		}
	}
	return info
}

// AddNode adds node to domain
func (o *Domain) AddNode(n *Node) {
	if o.Tag2node == nil {
		o.Tag2node = make(map[int]*Node)
	}
	o.Nodes = append(o.Nodes, n)
	o.Tag2node[n.tag] = n
}

// Node returns node by tag or nil
func (o *Domain) Node(tag int) ele.Node {
	if n, ok := o.Tag2node[tag]; ok {
		return n
	}
	return nil
}

// Attach sets domain in all elements. Elements with errors are kept (inert) and all errors are
// returned together
func (o *Domain) Attach() error {
	var errs []error
	for _, e := range o.Elems {
		if err := e.SetDomain(o); err != nil {
			if o.Verbose {
				io.Pfyel("WARNING: %v\n", err)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update updates all elements; all elements are updated even if some fail
func (o *Domain) Update() error {
	var errs []error
	for _, e := range o.Elems {
		if err := e.Update(); err != nil {
			errs = append(errs, chk.Err("element %d:\n%v", e.Tag(), err))
		}
	}
	return errors.Join(errs...)
}

// CommitState commits nodes and elements
func (o *Domain) CommitState() error {
	var errs []error
	for _, e := range o.Elems {
		if err := e.CommitState(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	for _, n := range o.Nodes {
		n.CommitState()
	}
	return nil
}

// RevertToLastCommit reverts nodes and elements
func (o *Domain) RevertToLastCommit() error {
	for _, n := range o.Nodes {
		n.RevertToLastCommit()
	}
	var errs []error
	for _, e := range o.Elems {
		if err := e.RevertToLastCommit(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RevertToStart resets nodes and elements
func (o *Domain) RevertToStart() error {
	for _, n := range o.Nodes {
		n.RevertToStart()
	}
	var errs []error
	for _, e := range o.Elems {
		if err := e.RevertToStart(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Contrib holds the contributions of one element
type Contrib struct {
	K *mat.SymDense // tangent stiffness
	F *mat.VecDense // resisting force
}

// Assemble computes tangent stiffness and resisting forces of all elements using nworkers
// goroutines; each element owns its buffers, so the results are copies
func (o *Domain) Assemble(nworkers int) []Contrib {
	if nworkers < 1 {
		nworkers = 1
	}
	res := make([]Contrib, len(o.Elems))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < nworkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e := o.Elems[i]
				K := mat.NewSymDense(e.NumDOF(), nil)
				K.CopySym(e.TangentStiff())
				var F mat.VecDense
				F.CloneFromVec(e.ResistingForce())
				res[i] = Contrib{K: K, F: &F}
			}
		}()
	}
	for i := range o.Elems {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return res
}

// persistence ////////////////////////////////////////////////////////////////////////////////////

// Checkpoint sends nodes and elements through channel
//  Records at dbTag 0: header ID {nnodes, nelems, nvals}, ID {classTags, dbTags} of elements and a
//  vector with the values of all nodes. Then, each element sends its own data
func (o *Domain) Checkpoint(ch comm.Channel, commitTag int) (err error) {

	// element tags
	nelem := len(o.Elems)
	etags := make([]int, 2*nelem)
	for i, e := range o.Elems {
		if e.DbTag() == 0 {
			e.SetDbTag(ch.DbTag())
		}
		etags[i] = e.ClassTag()
		etags[nelem+i] = e.DbTag()
	}

	// nodes
	nvals := 0
	for _, n := range o.Nodes {
		nvals += n.packedSize()
	}
	vals := make([]float64, nvals)
	k := 0
	for _, n := range o.Nodes {
		n.pack(vals[k:])
		k += n.packedSize()
	}

	// send
	err = ch.SendID(0, commitTag, []int{len(o.Nodes), nelem, nvals})
	if err != nil {
		return chk.Err("cannot send domain header:\n%v", err)
	}
	err = ch.SendID(0, commitTag, etags)
	if err != nil {
		return chk.Err("cannot send class tags of elements:\n%v", err)
	}
	err = ch.SendVector(0, commitTag, vals)
	if err != nil {
		return chk.Err("cannot send nodes:\n%v", err)
	}
	for _, e := range o.Elems {
		err = e.SendSelf(commitTag, ch)
		if err != nil {
			return
		}
	}
	if o.Verbose {
		io.Pf("> checkpoint %d: %d nodes and %d elements sent\n", commitTag, len(o.Nodes), nelem)
	}
	return
}

// Restore returns a new domain received from channel; elements are attached already
//  Note: attach errors are returned together with the (usable) domain
func Restore(ch comm.Channel, commitTag int, broker uniax.Broker) (o *Domain, err error) {

	// header
	header := make([]int, 3)
	err = ch.RecvID(0, commitTag, header)
	if err != nil {
		return nil, chk.Err("cannot receive domain header:\n%v", err)
	}
	nnode, nelem, nvals := header[0], header[1], header[2]
	etags := make([]int, 2*nelem)
	err = ch.RecvID(0, commitTag, etags)
	if err != nil {
		return nil, chk.Err("cannot receive class tags of elements:\n%v", err)
	}
	vals := make([]float64, nvals)
	err = ch.RecvVector(0, commitTag, vals)
	if err != nil {
		return nil, chk.Err("cannot receive nodes:\n%v", err)
	}

	// nodes
	o = &Domain{Tag2node: make(map[int]*Node)}
	k := 0
	for i := 0; i < nnode; i++ {
		n, nread, e := unpackNode(vals[k:])
		if e != nil {
			return nil, e
		}
		o.AddNode(n)
		k += nread
	}

	// elements
	for i := 0; i < nelem; i++ {
		e := ele.NewBlank(etags[i])
		if e == nil {
			return nil, chk.Err("cannot allocate element with class tag %d", etags[i])
		}
		e.SetDbTag(etags[nelem+i])
		err = e.RecvSelf(commitTag, ch, broker)
		if err != nil {
			return nil, err
		}
		o.Elems = append(o.Elems, e)
		o.Infos = append(o.Infos, nil) // not stored
	}
	return o, o.Attach()
}
