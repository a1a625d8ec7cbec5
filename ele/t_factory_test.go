// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/inp"
	"github.com/cpmech/zerolen/mdl/uniax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

// newModel returns a model with one material
func newModel(tst *testing.T) *inp.Model {
	mdl := &inp.Model{Ndim: 2}
	mdl.Materials = inp.MatsData{{Name: "spring", Model: "elastic", Tag: 1, Prms: dbf.Params{{N: "E", V: 100}}}}
	require.NoError(tst, mdl.MatDb.Init())
	return mdl
}

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01. allocators")

	mdl := newModel(tst)

	// register
	var received []uniax.Model
	SetInfoFunc("test-element", func(mdl *inp.Model, edat *inp.ElemData, ndof int) *Info {
		if ndof != 3 {
			return nil
		}
		keys := []string{"ux", "uy", "rz"}
		return &Info{Dofs: [][]string{keys, keys}, Y2F: Y2Fmap()}
	})
	SetAllocator("test-element", func(mdl *inp.Model, edat *inp.ElemData, mats []uniax.Model) (Element, error) {
		received = mats
		return nil, nil
	})
	assert.Panics(tst, func() { SetAllocator("test-element", nil) })
	assert.Panics(tst, func() { SetInfoFunc("test-element", nil) })

	// info
	edat := &inp.ElemData{Tag: 3, Type: "test-element", Nodes: []int{1, 2}, Mats: []string{"spring", "spring"}, Dirs: []int{0, 1}}
	info, err := GetInfo(mdl, edat, 3)
	require.NoError(tst, err)
	chk.Strings(tst, "dofs", info.Dofs[1], []string{"ux", "uy", "rz"})
	chk.String(tst, info.Y2F["rz"], "mz")
	chk.String(tst, info.Key(0, 2), "rz")
	chk.String(tst, info.Key(0, 3), "")
	_, err = GetInfo(mdl, edat, 4)
	assert.Error(tst, err)
	_, err = GetInfo(mdl, &inp.ElemData{Type: "unknown"}, 2)
	assert.Error(tst, err)

	// materials are resolved by name
	_, err = New(mdl, edat)
	require.NoError(tst, err)
	chk.Int(tst, "number of materials", len(received), 2)
	assert.True(tst, received[0] == mdl.MatDb.Get("spring"))

	_, err = New(mdl, &inp.ElemData{Tag: 4, Type: "test-element", Mats: []string{"steel"}})
	io.Pforan("err = %v\n", err)
	assert.Error(tst, err)
	_, err = New(mdl, &inp.ElemData{Tag: 5, Type: "unknown"})
	assert.Error(tst, err)

	// blank elements
	assert.Nil(tst, NewBlank(-1))
	assert.Panics(tst, func() {
		SetBlankAllocator(-2, func() Element { return nil })
		SetBlankAllocator(-2, func() Element { return nil })
	})
}

func Test_resmap01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resmap01. results")

	res := NewResMap()
	res.Set("u", 1, 3, 0.5)
	res.Set("u", 2, 3, 0.7)
	res.SetAll("force", 0, 2, []float64{1, 2})
	chk.Array(tst, "u", 1e-17, (*res)["u"], []float64{0, 0.5, 0.7})
	chk.Array(tst, "force0", 1e-17, (*res)["force0"], []float64{1, 0})
	chk.Array(tst, "force1", 1e-17, (*res)["force1"], []float64{2, 0})
	chk.Float64(tst, "u[2]", 1e-17, res.Get("u", 2), 0.7)
	chk.Float64(tst, "not found", 1e-17, res.Get("v", 0), 0)
}

func Test_auxiliary01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("auxiliary01. keys and coordinates")

	chk.String(tst, Y2Fmap()["uz"], "fz")
	chk.String(tst, Y2Fmap()["rx"], "mx")

	x := []float64{1, 2}
	c := Crds3(x)
	chk.Array(tst, "c", 1e-17, c, []float64{1, 2, 0})
	c[0] = 10
	chk.Float64(tst, "x[0]", 1e-17, x[0], 1)
	chk.Array(tst, "c", 1e-17, Crds3([]float64{1, 2, 3, 4}), []float64{1, 2, 3})
}
