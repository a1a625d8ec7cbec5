// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniax

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/zerolen/comm"
)

// core holds tags and states shared by all models
type core struct {
	tag    int        // user tag
	dbTag  int        // database tag
	Trial  *OnedState // trial state
	Commit *OnedState // last committed state
}

// Tag returns the user tag of this material
func (o *core) Tag() int { return o.tag }

// DbTag returns the database tag
func (o *core) DbTag() int { return o.dbTag }

// SetDbTag sets the database tag
func (o *core) SetDbTag(tag int) { o.dbTag = tag }

// Strain returns the trial strain
func (o *core) Strain() float64 { return o.Trial.Eps }

// StrainRate returns the trial strain rate
func (o *core) StrainRate() float64 { return o.Trial.EpsDot }

// Stress returns the trial stress
func (o *core) Stress() float64 { return o.Trial.Sig }

// CommitState accepts trial state
func (o *core) CommitState() error {
	if o.Trial == nil {
		return chk.Err("cannot commit state of material %d because it has not been initialised", o.tag)
	}
	o.Commit.Set(o.Trial)
	return nil
}

// RevertToLastCommit discards trial state
func (o *core) RevertToLastCommit() error {
	if o.Trial == nil {
		return chk.Err("cannot revert state of material %d because it has not been initialised", o.tag)
	}
	o.Trial.Set(o.Commit)
	return nil
}

// RevertToStart resets trial and committed states
func (o *core) RevertToStart() error {
	if o.Trial == nil {
		return chk.Err("cannot revert state of material %d because it has not been initialised", o.tag)
	}
	o.Trial.Reset()
	o.Commit.Reset()
	return nil
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// initStates allocates initial states
func (o *core) initStates(nalp int) {
	o.Trial = NewOnedState(nalp)
	o.Commit = NewOnedState(nalp)
}

// copyCore returns a deep copy of the user tag and states
//  Note: the copy gets a zero database tag, so each copy is stored under its own records
func (o *core) copyCore() (c core, err error) {
	if o.Trial == nil || o.Commit == nil {
		return c, chk.Err("cannot copy material %d because it has not been initialised", o.tag)
	}
	c.tag = o.tag
	c.Trial = o.Trial.GetCopy()
	c.Commit = o.Commit.GetCopy()
	return
}

// sendState sends {tag, prms..., trial..., committed...} as one vector
func (o *core) sendState(commitTag int, ch comm.Channel, prms []float64) (err error) {
	if o.Trial == nil {
		return chk.Err("cannot send material %d because it has not been initialised", o.tag)
	}
	ns := packedSize(len(o.Trial.Alp))
	data := make([]float64, 1+len(prms)+2*ns)
	data[0] = float64(o.tag)
	copy(data[1:], prms)
	o.Trial.pack(data[1+len(prms):])
	o.Commit.pack(data[1+len(prms)+ns:])
	err = ch.SendVector(o.dbTag, commitTag, data)
	if err != nil {
		return chk.Err("cannot send data of material %d:\n%v", o.tag, err)
	}
	return
}

// recvState is the inverse of sendState; prms must have the right size and nalp is the number of
// internal variables of the receiving model
func (o *core) recvState(commitTag int, ch comm.Channel, prms []float64, nalp int) (err error) {
	ns := packedSize(nalp)
	data := make([]float64, 1+len(prms)+2*ns)
	err = ch.RecvVector(o.dbTag, commitTag, data)
	if err != nil {
		return chk.Err("cannot receive data of material with dbTag=%d:\n%v", o.dbTag, err)
	}
	if o.Trial == nil || len(o.Trial.Alp) != nalp {
		o.initStates(nalp)
	}
	o.tag = int(data[0])
	copy(prms, data[1:])
	o.Trial.unpack(data[1+len(prms):])
	o.Commit.unpack(data[1+len(prms)+ns:])
	return
}

// response returns results by key
func response(m Model, key string) (float64, error) {
	switch key {
	case "stress":
		return m.Stress(), nil
	case "strain":
		return m.Strain(), nil
	case "strainRate":
		return m.StrainRate(), nil
	case "tangent":
		return m.Tangent(), nil
	case "dampTangent":
		return m.DampTangent(), nil
	}
	return 0, chk.Err("response %q is not available in material %d (%s)", key, m.Tag(), m.Name())
}
