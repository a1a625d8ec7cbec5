// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uniax

import (
	"bytes"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/comm"
	"github.com/stretchr/testify/assert"
)

func verbose() {
	chk.Verbose = true
}

// newModel allocates and initialises model
func newModel(tst *testing.T, name string, tag int, prms dbf.Params) Model {
	mdl, err := New(name)
	if err != nil {
		tst.Fatalf("New failed:\n%v", err)
	}
	err = mdl.Init(tag, prms)
	if err != nil {
		tst.Fatalf("Init failed:\n%v", err)
	}
	return mdl
}

func Test_elastic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elastic01. stress, tangents and states")

	mdl := newModel(tst, "elastic", 7, dbf.Params{&dbf.P{N: "E", V: 100}, &dbf.P{N: "eta", V: 2}})
	chk.Int(tst, "tag", mdl.Tag(), 7)
	chk.Int(tst, "classTag", mdl.ClassTag(), ClassElastic)

	err := mdl.SetTrialStrain(0.01, 0.5)
	if err != nil {
		tst.Errorf("SetTrialStrain failed:\n%v", err)
		return
	}
	chk.Float64(tst, "σ", 1e-15, mdl.Stress(), 2.0)
	chk.Float64(tst, "E", 1e-15, mdl.Tangent(), 100)
	chk.Float64(tst, "E0", 1e-15, mdl.InitialTangent(), 100)
	chk.Float64(tst, "η", 1e-15, mdl.DampTangent(), 2)

	// commit and trial again
	mdl.CommitState()
	mdl.SetTrialStrain(0.02, 0)
	chk.Float64(tst, "σ", 1e-15, mdl.Stress(), 2.0)

	// revert to last commit
	mdl.RevertToLastCommit()
	chk.Float64(tst, "ε", 1e-15, mdl.Strain(), 0.01)
	chk.Float64(tst, "ε̇", 1e-15, mdl.StrainRate(), 0.5)
	chk.Float64(tst, "σ", 1e-15, mdl.Stress(), 2.0)

	// revert to start
	mdl.RevertToStart()
	chk.Float64(tst, "ε", 1e-15, mdl.Strain(), 0)
	chk.Float64(tst, "σ", 1e-15, mdl.Stress(), 0)

	// responses
	mdl.SetTrialStrain(0.03, 0)
	σ, err := mdl.Response("stress")
	if err != nil {
		tst.Errorf("Response failed:\n%v", err)
		return
	}
	chk.Float64(tst, "stress", 1e-15, σ, 3)
	if _, err = mdl.Response("energy"); err == nil {
		tst.Errorf("unknown response should have failed")
	}
}

func Test_elastic02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elastic02. errors and copies")

	mdl, _ := New("elastic")
	if _, err := mdl.Copy(); err == nil {
		tst.Errorf("copy of uninitialised material should have failed")
		return
	}
	if err := mdl.CommitState(); err == nil {
		tst.Errorf("commit of uninitialised material should have failed")
		return
	}
	if err := mdl.Init(1, dbf.Params{&dbf.P{N: "eta", V: 1}}); err == nil {
		tst.Errorf("Init without E should have failed")
		return
	}
	if err := mdl.Init(1, dbf.Params{&dbf.P{N: "E", V: 1}, &dbf.P{N: "nu", V: 0.2}}); err == nil {
		tst.Errorf("Init with unknown parameter should have failed")
		return
	}
	if _, err := New("unknown"); err == nil {
		tst.Errorf("New with unknown name should have failed")
		return
	}

	// copies are independent and have their own database tag
	mdl = newModel(tst, "elastic", 1, dbf.Params{&dbf.P{N: "E", V: 10}})
	mdl.SetDbTag(5)
	cpy, err := mdl.Copy()
	if err != nil {
		tst.Errorf("Copy failed:\n%v", err)
		return
	}
	chk.Int(tst, "dbTag(copy)", cpy.DbTag(), 0)
	chk.Int(tst, "dbTag(original)", mdl.DbTag(), 5)
	cpy.SetTrialStrain(1, 0)
	chk.Float64(tst, "σ(copy)", 1e-15, cpy.Stress(), 10)
	chk.Float64(tst, "σ(original)", 1e-15, mdl.Stress(), 0)
}

func Test_elastpp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elastpp01. return mapping with hardening")

	E, sy0, Hi, Hk := 1000.0, 10.0, 100.0, 50.0
	mdl := newModel(tst, "elastic-pp", 1, dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "sy0", V: sy0},
		&dbf.P{N: "Hi", V: Hi},
		&dbf.P{N: "Hk", V: Hk},
	})

	// elastic
	mdl.SetTrialStrain(0.005, 0)
	chk.Float64(tst, "σ", 1e-14, mdl.Stress(), 5)
	chk.Float64(tst, "D", 1e-14, mdl.Tangent(), E)
	mdl.CommitState()

	// plastic
	mdl.SetTrialStrain(0.02, 0)
	Δγ := (20.0 - sy0) / (E + Hi + Hk)
	chk.Float64(tst, "σ", 1e-13, mdl.Stress(), 20-E*Δγ)
	chk.Float64(tst, "D", 1e-13, mdl.Tangent(), E*(Hi+Hk)/(E+Hi+Hk))
	εp, _ := mdl.Response("plasticStrain")
	q, _ := mdl.Response("backStress")
	chk.Float64(tst, "εp", 1e-15, εp, Δγ)
	chk.Float64(tst, "q", 1e-13, q, Hk*Δγ)

	// consistent tangent
	ana := mdl.Tangent()
	h := 1e-6
	mdl.SetTrialStrain(0.02+h, 0)
	σp := mdl.Stress()
	mdl.SetTrialStrain(0.02-h, 0)
	σm := mdl.Stress()
	num := (σp - σm) / (2 * h)
	io.Pforan("D: ana = %v  num = %v\n", ana, num)
	chk.Float64(tst, "D(num)", 1e-6, num, ana)

	// trial states always start from the last commit
	mdl.SetTrialStrain(0.005, 0)
	chk.Float64(tst, "σ", 1e-14, mdl.Stress(), 5)

	// unloading after plastic commit
	mdl.SetTrialStrain(0.02, 0)
	mdl.CommitState()
	σc := mdl.Stress()
	mdl.SetTrialStrain(0.019, 0)
	chk.Float64(tst, "σ(unload)", 1e-13, mdl.Stress(), σc-E*0.001)
	if math.Abs(mdl.Tangent()-E) > 1e-15 {
		tst.Errorf("unloading tangent should be elastic")
		return
	}

	// revert to start
	mdl.RevertToStart()
	mdl.SetTrialStrain(0.005, 0)
	chk.Float64(tst, "σ", 1e-14, mdl.Stress(), 5)
}

func Test_viscous01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("viscous01. nonlinear damper")

	mdl := newModel(tst, "viscous", 3, dbf.Params{&dbf.P{N: "C", V: 10}, &dbf.P{N: "alpha", V: 0.5}})
	mdl.SetTrialStrain(0, -4)
	chk.Float64(tst, "σ", 1e-14, mdl.Stress(), -20)
	chk.Float64(tst, "D", 1e-15, mdl.Tangent(), 0)
	chk.Float64(tst, "C", 1e-14, mdl.DampTangent(), 0.5*10/2)

	// zero velocity uses vmin
	mdl.SetTrialStrain(0, 0)
	chk.Float64(tst, "σ", 1e-15, mdl.Stress(), 0)
	if math.IsInf(mdl.DampTangent(), 0) {
		tst.Errorf("damping tangent must be finite")
	}
}

func Test_broker01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("broker01. send and receive through broker")

	assert.Equal(tst, []string{"elastic", "elastic-pp", "viscous"}, Names())

	mdl := newModel(tst, "elastic-pp", 4, dbf.Params{&dbf.P{N: "E", V: 200}, &dbf.P{N: "sy0", V: 1}, &dbf.P{N: "Hk", V: 20}})
	mdl.SetTrialStrain(0.01, 0.1)
	mdl.CommitState()
	mdl.SetTrialStrain(0.015, 0.2)
	mdl.SetDbTag(11)

	var buf bytes.Buffer
	err := mdl.SendSelf(5, comm.NewWriter(&buf, "gob"))
	if err != nil {
		tst.Errorf("SendSelf failed:\n%v", err)
		return
	}

	var broker Factory
	if broker.NewByClassTag(99) != nil {
		tst.Errorf("unknown class tag should give nil")
		return
	}
	res := broker.NewByClassTag(mdl.ClassTag())
	res.SetDbTag(11)
	err = res.RecvSelf(5, comm.NewReader(&buf, "gob"), broker)
	if err != nil {
		tst.Errorf("RecvSelf failed:\n%v", err)
		return
	}
	chk.Int(tst, "tag", res.Tag(), 4)
	chk.Float64(tst, "σ", 1e-15, res.Stress(), mdl.Stress())
	chk.Float64(tst, "ε̇", 1e-15, res.StrainRate(), 0.2)
	chk.Float64(tst, "D", 1e-15, res.Tangent(), mdl.Tangent())

	// committed state was also received
	res.RevertToLastCommit()
	mdl.RevertToLastCommit()
	chk.Float64(tst, "σ(commit)", 1e-15, res.Stress(), mdl.Stress())
	chk.Float64(tst, "ε(commit)", 1e-15, res.Strain(), 0.01)
}

func Test_prms01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("prms01. example parameters of all models")

	for _, name := range Names() {
		mdl, err := New(name)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		prms := mdl.GetPrms()
		io.Pforan("%-10s: %d parameters\n", name, len(prms))
		err = mdl.Init(1, prms)
		if err != nil {
			tst.Errorf("%s: Init with example parameters failed:\n%v", name, err)
			return
		}
		for _, p := range prms {
			if prms.Find(p.N) != p {
				tst.Errorf("%s: cannot find parameter %q", name, p.N)
				return
			}
		}
	}
}
