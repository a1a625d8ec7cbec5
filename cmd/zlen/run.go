// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/ele/connector"
	"github.com/cpmech/zerolen/fem"
	"github.com/cpmech/zerolen/inp"
	"github.com/cpmech/zerolen/out"
	"github.com/spf13/cobra"
)

// runCmd returns the command that runs the path of a model
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run model.zlen",
		Short: "run the displacement path of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mdl, err := readModel(args[0])
			if err != nil {
				return err
			}
			dom, err := newDomain(mdl)
			if err != nil {
				return err
			}
			drv, err := fem.NewDriver(dom, mdl.Path)
			if err != nil {
				return err
			}
			if err = drv.Run(); err != nil {
				return err
			}
			report(mdl, drv)
			return nil
		},
	}
}

// readModel reads model file and sets verbose mode
func readModel(fnpath string) (mdl *inp.Model, err error) {
	dir, fn := filepath.Split(fnpath)
	mdl, err = inp.ReadModel(dir, fn)
	if err != nil {
		return
	}
	if mdl.Path == nil {
		return nil, chk.Err("model %q has no path", fnpath)
	}
	if verbose {
		mdl.Verbose = true
	}
	connector.Verbose = mdl.Verbose
	if mdl.Verbose {
		io.Pf("%v\n", io.ArgsTable("MODEL",
			"description", "desc", mdl.Desc,
			"space dimension", "ndim", mdl.Ndim,
			"number of nodes", "nodes", len(mdl.Nodes),
			"number of elements", "elements", len(mdl.Elements),
			"number of materials", "materials", len(mdl.Materials),
			"number of steps", "nsteps", len(mdl.Path.Disps),
			"encoder", "encoder", mdl.Encoder,
			"database", "database", mdl.Database,
		))
	}
	return
}

// newDomain allocates domain and attaches elements; elements that cannot be attached become inert
// and the analysis continues
func newDomain(mdl *inp.Model) (dom *fem.Domain, err error) {
	dom, err = fem.NewDomain(mdl)
	if err != nil {
		return
	}
	if e := dom.Attach(); e != nil {
		io.Pfyel("WARNING: some elements are inert:\n%v\n", e)
	}
	return
}

// report prints results and, if dirout is given, saves them
func report(mdl *inp.Model, drv *fem.Driver) {
	tab := out.NewTable(drv.Res, drv.Nstp)
	io.Pf("\n%v", tab)
	io.Pf("u = %s @ node %d; R = %s\n", drv.Ukey, drv.Path.Node, drv.Fkey)
	if dirout != "" {
		fn := tab.Write(dirout, mdl.Key)
		io.Pfblue("file <%s> written\n", fn)
	}
}
