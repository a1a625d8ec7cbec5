// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"github.com/cpmech/zerolen/comm"
	"github.com/cpmech/zerolen/ele"
	"github.com/cpmech/zerolen/mdl/uniax"
	"gonum.org/v1/gonum/mat"
)

// sizes of data sent through channels
const (
	nHeader = 7 // {tag, ndim, nu, nmat, nd1, nd2, 0}
)

// SendSelf sends element data
//  Records: header ID, triad matrix and, if nmat > 0, an ID with {dbTags, classTags, dirs} of
//  materials followed by the data of each material
func (o *ZeroLength) SendSelf(commitTag int, ch comm.Channel) (err error) {

	// materials metadata
	nmat := len(o.Mats)
	meta := make([]int, 3*nmat)
	for i, m := range o.Mats {
		dbTag := m.DbTag()
		if dbTag == 0 {
			dbTag = ch.DbTag()
			if dbTag == 0 {
				return newError(Serialization, nil, "zerolength element %d: channel cannot allocate database tag for material %d", o.tag, i)
			}
			m.SetDbTag(dbTag)
		}
		meta[i] = dbTag
		meta[nmat+i] = m.ClassTag()
		meta[2*nmat+i] = o.Dirs[i]
	}

	// header
	header := []int{o.tag, o.Ndim, o.Nu, nmat, o.Nodes[0], o.Nodes[1], 0}
	err = ch.SendID(o.dbTag, commitTag, header)
	if err != nil {
		return newError(Serialization, err, "zerolength element %d: cannot send ID data", o.tag)
	}

	// triad
	err = ch.SendMatrix(o.dbTag, commitTag, o.Trf)
	if err != nil {
		return newError(Serialization, err, "zerolength element %d: cannot send orientation matrix", o.tag)
	}
	if nmat < 1 {
		return
	}
	err = ch.SendID(o.dbTag, commitTag, meta)
	if err != nil {
		return newError(Serialization, err, "zerolength element %d: cannot send class tags ID", o.tag)
	}

	// materials
	for i, m := range o.Mats {
		err = m.SendSelf(commitTag, ch)
		if err != nil {
			return newError(Serialization, err, "zerolength element %d: cannot send material %d", o.tag, i)
		}
	}
	return
}

// RecvSelf receives element data
//  Note: materials are reallocated if their number changed; missing materials or materials with
//        different class tags are allocated by the broker. The element must be attached to a
//        domain (SetDomain) before being updated
func (o *ZeroLength) RecvSelf(commitTag int, ch comm.Channel, broker uniax.Broker) (err error) {

	// header
	header := make([]int, nHeader)
	err = ch.RecvID(o.dbTag, commitTag, header)
	if err != nil {
		return newError(Serialization, err, "zerolength element with dbTag=%d: cannot receive ID data", o.dbTag)
	}

	// triad
	trf := mat.NewDense(3, 3, nil)
	err = ch.RecvMatrix(o.dbTag, commitTag, trf)
	if err != nil {
		return newError(Serialization, err, "zerolength element with dbTag=%d: cannot receive orientation matrix", o.dbTag)
	}

	// basic data
	o.tag = header[0]
	o.Ndim = header[1]
	o.Nodes = [2]int{header[4], header[5]}
	o.Trf = trf
	o.nodes = [2]ele.Node{}
	nu, nmat := header[2], header[3]
	defer func() {
		if err == nil {
			o.restoreLayout(nu)
		}
	}()

	// no materials
	if nmat < 1 {
		o.Mats, o.Dirs = nil, nil
		return
	}

	// reallocate
	if len(o.Mats) != nmat {
		o.Mats = make([]uniax.Model, nmat)
		o.Dirs = make([]int, nmat)
	}

	// materials metadata
	meta := make([]int, 3*nmat)
	err = ch.RecvID(o.dbTag, commitTag, meta)
	if err != nil {
		return newError(Serialization, err, "zerolength element %d: cannot receive class tags ID", o.tag)
	}

	// materials
	for i := 0; i < nmat; i++ {
		classTag := meta[nmat+i]
		if o.Mats[i] == nil || o.Mats[i].ClassTag() != classTag {
			o.Mats[i] = nil
			if broker != nil {
				o.Mats[i] = broker.NewByClassTag(classTag)
			}
		}
		if o.Mats[i] == nil {
			return newError(MaterialAllocation, nil, "zerolength element %d: broker cannot allocate material %d with class tag %d", o.tag, i, classTag)
		}
		o.Mats[i].SetDbTag(meta[i])
		err = o.Mats[i].RecvSelf(commitTag, ch, broker)
		if err != nil {
			return newError(Serialization, err, "zerolength element %d: cannot receive material %d", o.tag, i)
		}
		d := meta[2*nmat+i]
		if d < 0 || d > 5 {
			o.warn(newError(DirectionRange, nil, "zerolength element %d: received direction %d of material %d is out of range [0,5]; using 0", o.tag, d, i).Error())
			d = 0
		}
		o.Dirs[i] = d
	}
	return
}

// restoreLayout recovers the configuration from the received total number of DOFs
func (o *ZeroLength) restoreLayout(nu int) {
	o.setInert()
	lay := GetLayout(o.Ndim, nu/2)
	if lay != nil && lay.NumDOF() == nu {
		o.setLayout(lay)
	}
	o.phase = Committed
	o.ncommit = 1
}
