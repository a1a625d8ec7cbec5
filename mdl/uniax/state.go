// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniax

// OnedState holds data for 1D models
type OnedState struct {
	Eps     float64   // ε: strain
	EpsDot  float64   // ε̇: strain rate
	Sig     float64   // σ: stress
	Alp     []float64 // α: internal variables of rate type [nalp]
	Loading bool      // unloading flag (for plasticity only)
}

// NewOnedState allocates state structure for 1D models
func NewOnedState(nalp int) *OnedState {
	var state OnedState
	if nalp > 0 {
		state.Alp = make([]float64, nalp)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *OnedState) Set(other *OnedState) {
	o.Eps = other.Eps
	o.EpsDot = other.EpsDot
	o.Sig = other.Sig
	copy(o.Alp, other.Alp)
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *OnedState) GetCopy() *OnedState {
	other := NewOnedState(len(o.Alp))
	other.Set(o)
	return other
}

// Reset sets all values to zero
func (o *OnedState) Reset() {
	o.Eps, o.EpsDot, o.Sig = 0, 0, 0
	for i := range o.Alp {
		o.Alp[i] = 0
	}
	o.Loading = false
}

// packedSize returns the number of reals needed to pack a state with nalp internal variables
func packedSize(nalp int) int {
	return 4 + nalp
}

// pack writes {ε, ε̇, σ, loading, α...} into v
func (o *OnedState) pack(v []float64) {
	v[0], v[1], v[2] = o.Eps, o.EpsDot, o.Sig
	v[3] = 0
	if o.Loading {
		v[3] = 1
	}
	copy(v[4:], o.Alp)
}

// unpack reads state from v; see pack
func (o *OnedState) unpack(v []float64) {
	o.Eps, o.EpsDot, o.Sig = v[0], v[1], v[2]
	o.Loading = v[3] != 0
	copy(o.Alp, v[4:])
}
