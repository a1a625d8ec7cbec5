// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/comm"
	"github.com/cpmech/zerolen/mdl/uniax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// nobroker cannot allocate any material
type nobroker struct{}

func (o nobroker) NewByClassTag(classTag int) uniax.Model { return nil }

// notags is a database that cannot allocate tags
type notags struct{ *comm.MemDb }

func (o notags) NextDbTag() (int, error) { return 0, errors.New("database is full") }

// newIsolator returns a 3D element with three materials after one committed step and one trial step
func newIsolator(tst *testing.T) (domain, *ZeroLength) {
	dom := domain{1: newNode(1, 3, 0, 0, 0), 2: newNode(2, 3, 0, 0, 0)}
	mats := []uniax.Model{
		newMat(tst, "elastic", 1, 100, 1),
		newMat(tst, "elastic-pp", 2, 1000, 5, 50, 20),
		newMat(tst, "viscous", 3, 10, 0.5),
	}
	o, err := New(4, 3, 1, 2, []float64{1, 1, 0}, []float64{0, 0, 1}, mats, []int{0, 1, 2})
	require.NoError(tst, err)
	require.NoError(tst, o.SetDomain(dom))
	dom[2].u[0], dom[2].u[1], dom[2].u[2] = 0.002, -0.01, 0.004
	dom[2].v[2] = 0.3
	require.NoError(tst, o.Update())
	require.NoError(tst, o.CommitState())
	dom[2].u[1] = -0.012
	require.NoError(tst, o.Update())
	return dom, o
}

// checkRestored compares restored element b with a
func checkRestored(tst *testing.T, a, b *ZeroLength) {
	chk.Int(tst, "tag", b.Tag(), a.Tag())
	chk.Int(tst, "ndim", b.Ndim, a.Ndim)
	chk.Int(tst, "nu", b.NumDOF(), a.NumDOF())
	chk.Ints(tst, "node tags", b.NodeTags(), a.NodeTags())
	chk.Ints(tst, "dirs", b.Dirs, a.Dirs)
	chk.Deep2(tst, "trf", 1e-17, toSlices(b.Trf), toSlices(a.Trf))
	chk.Deep2(tst, "T", 1e-17, toSlices(b.T), toSlices(a.T))
	chk.String(tst, b.Phase().String(), "committed")
	require.Equal(tst, len(a.Mats), len(b.Mats))
	for i, m := range a.Mats {
		chk.Int(tst, "classTag", b.Mats[i].ClassTag(), m.ClassTag())
		chk.Int(tst, "material tag", b.Mats[i].Tag(), m.Tag())
		chk.Float64(tst, "ε", 1e-17, b.Mats[i].Strain(), m.Strain())
		chk.Float64(tst, "ε̇", 1e-17, b.Mats[i].StrainRate(), m.StrainRate())
		chk.Float64(tst, "σ", 1e-17, b.Mats[i].Stress(), m.Stress())
	}
	for _, key := range []string{"plasticStrain", "backStress"} {
		va, _ := a.Mats[1].Response(key)
		vb, _ := b.Mats[1].Response(key)
		chk.Float64(tst, key, 1e-17, vb, va)
	}
}

func Test_persist01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("persist01. send and receive through streams")

	for _, enctype := range []string{"gob", "json"} {
		dom, o := newIsolator(tst)
		var buf bytes.Buffer
		w := comm.NewWriter(&buf, enctype)
		o.SetDbTag(w.DbTag())
		require.NoError(tst, o.SendSelf(5, w))
		for i, m := range o.Mats {
			if m.DbTag() == 0 || m.DbTag() == o.DbTag() {
				tst.Errorf("material %d has a wrong database tag: %d", i, m.DbTag())
				return
			}
		}

		b := NewBlank()
		b.SetDbTag(o.DbTag())
		err := b.RecvSelf(5, comm.NewReader(&buf, enctype), uniax.Factory{})
		if err != nil {
			tst.Errorf("%s: RecvSelf failed:\n%v", enctype, err)
			return
		}
		checkRestored(tst, o, b)

		// both continue from the committed state
		require.True(tst, b.Inert())
		require.NoError(tst, b.SetDomain(dom))
		require.NoError(tst, o.RevertToLastCommit())
		require.NoError(tst, b.RevertToLastCommit())
		dom[2].u[1] = -0.02
		require.NoError(tst, o.Update())
		require.NoError(tst, b.Update())
		chk.Array(tst, "F", 1e-17, b.ResistingForce().RawVector().Data, o.ResistingForce().RawVector().Data)
		chk.Deep2(tst, "K", 1e-17, toSlices(b.TangentStiff()), toSlices(o.TangentStiff()))
	}
}

func Test_persist02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("persist02. send and receive through databases")

	ctx := context.Background()
	db, err := comm.OpenSQLite(filepath.Join(tst.TempDir(), "elements.db"))
	require.NoError(tst, err)
	defer db.Close()
	sdb, err := comm.NewSQLDb(ctx, db, "")
	require.NoError(tst, err)

	mem := comm.NewMemDb()
	for _, ch := range []*comm.Store{comm.NewStore(mem), comm.NewStore(sdb)} {
		_, o := newIsolator(tst)
		o.SetDbTag(ch.DbTag())
		require.NoError(tst, o.SendSelf(1, ch))
		require.NoError(tst, o.SendSelf(2, ch))

		// reallocation: number of materials differs
		b, err := New(9, 2, 5, 6, []float64{1, 0, 0}, []float64{0, 1, 0}, []uniax.Model{newMat(tst, "viscous", 8, 1)}, []int{3})
		require.NoError(tst, err)
		b.SetDbTag(o.DbTag())
		require.NoError(tst, b.RecvSelf(2, ch, uniax.Factory{}))
		checkRestored(tst, o, b)

		// reallocation: classes differ
		mats := []uniax.Model{newMat(tst, "elastic", 1, 1), newMat(tst, "elastic", 2, 1), newMat(tst, "elastic", 3, 1)}
		c, err := New(9, 1, 5, 6, []float64{1, 0, 0}, []float64{0, 1, 0}, mats, []int{0, 0, 0})
		require.NoError(tst, err)
		keep := c.Mats[0]
		c.SetDbTag(o.DbTag())
		require.NoError(tst, c.RecvSelf(1, ch, uniax.Factory{}))
		checkRestored(tst, o, c)
		if c.Mats[0] != keep {
			tst.Errorf("material of the same class must be reused")
			return
		}
	}
	io.Pforan("number of records in memory = %d\n", mem.Len())
	chk.Int(tst, "number of records", mem.Len(), 2*(3+3))
}

func Test_persist03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("persist03. no materials and errors")

	// element without materials sends the header and the triad only
	mem := comm.NewMemDb()
	ch := comm.NewStore(mem)
	a := NewBlank()
	a.SetDbTag(ch.DbTag())
	require.NoError(tst, a.SendSelf(1, ch))
	chk.Int(tst, "number of records", mem.Len(), 2)
	b := NewBlank()
	b.SetDbTag(a.DbTag())
	require.NoError(tst, b.RecvSelf(1, ch, nil))
	chk.Int(tst, "nmat", len(b.Mats), 0)
	require.True(tst, b.Inert())
	chk.Int(tst, "nu", b.NumDOF(), 2)

	// broker cannot allocate materials
	_, o := newIsolator(tst)
	o.SetDbTag(ch.DbTag())
	require.NoError(tst, o.SendSelf(1, ch))
	for _, broker := range []uniax.Broker{nil, nobroker{}} {
		b = NewBlank()
		b.SetDbTag(o.DbTag())
		err := b.RecvSelf(1, ch, broker)
		io.Pforan("err = %v\n", err)
		if !errors.Is(err, ErrMaterialAllocation) {
			tst.Errorf("error should be a material allocation error")
			return
		}
	}

	// channel failures
	var buf bytes.Buffer
	err := o.SendSelf(1, comm.NewReader(&buf, "gob"))
	assert.True(tst, errors.Is(err, ErrSerialization))
	err = NewBlank().RecvSelf(1, comm.NewReader(&buf, "gob"), uniax.Factory{})
	assert.True(tst, errors.Is(err, ErrSerialization))
	err = NewBlank().RecvSelf(3, ch, uniax.Factory{})
	io.Pforan("err = %v\n", err)
	assert.True(tst, errors.Is(err, ErrSerialization))
}

func Test_persist04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("persist04. received directions out of range")

	for _, dir := range []int{-1, 9} {

		// stream written by hand: header, triad, metadata and one elastic material
		var buf bytes.Buffer
		w := comm.NewWriter(&buf, "gob")
		require.NoError(tst, w.SendID(1, 0, []int{1, 2, 4, 1, 1, 2, 0}))
		require.NoError(tst, w.SendMatrix(1, 0, mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})))
		require.NoError(tst, w.SendID(1, 0, []int{7, uniax.ClassElastic, dir}))
		m := newMat(tst, "elastic", 1, 100, 0)
		m.SetDbTag(7)
		require.NoError(tst, m.SendSelf(0, w))

		b := NewBlank()
		b.SetDbTag(1)
		err := b.RecvSelf(0, comm.NewReader(&buf, "gob"), uniax.Factory{})
		if err != nil {
			tst.Errorf("direction %d: RecvSelf failed:\n%v", dir, err)
			return
		}
		chk.Ints(tst, "dirs", b.Dirs, []int{0})
		chk.Int(tst, "nu", b.NumDOF(), 4)
		chk.Deep2(tst, "T", 1e-17, toSlices(b.T), [][]float64{{-1, 0, 1, 0}})
		warnings := b.Warnings()
		if len(warnings) != 1 || !strings.Contains(warnings[0], "out of range") {
			tst.Errorf("direction %d: there should be one range warning. warnings=%v", dir, warnings)
			return
		}
		io.Pforan("%s\n", warnings[0])
	}
}

func Test_persist05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("persist05. channel without database tags")

	_, o := newIsolator(tst)
	o.SetDbTag(3)
	mem := comm.NewMemDb()
	err := o.SendSelf(1, comm.NewStore(notags{mem}))
	io.Pforan("err = %v\n", err)
	if !errors.Is(err, ErrSerialization) {
		tst.Errorf("error should be a serialization error")
		return
	}
	chk.Int(tst, "number of records", mem.Len(), 0)
	chk.Int(tst, "dbTag of material", o.Mats[0].DbTag(), 0)
}
