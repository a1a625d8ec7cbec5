// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/zerolen/fem"
	"github.com/cpmech/zerolen/mdl/uniax"
	"github.com/stretchr/testify/require"
)

func Test_zlen01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("zlen01. checkpoints in files and databases")

	ctx := context.Background()
	for _, usedb := range []bool{false, true} {

		dirout = tst.TempDir()
		mdl, err := readModel("../../inp/data/isolator3d.zlen")
		require.NoError(tst, err)
		if usedb {
			mdl.Database = filepath.Join(dirout, "zlen.db")
		}
		dom, err := newDomain(mdl)
		require.NoError(tst, err)

		// run saving all steps
		save, done, err := saver(ctx, mdl)
		require.NoError(tst, err)
		drv, err := fem.NewDriver(dom, mdl.Path)
		require.NoError(tst, err)
		drv.After = func(step int, dom *fem.Domain) error { return save(step+1, dom) }
		require.NoError(tst, drv.Run())
		done()

		// restore step 5
		ch, done, err := opener(ctx, mdl, 5, "")
		require.NoError(tst, err)
		restored, err := fem.Restore(ch, 5, uniax.Factory{})
		done()
		require.NoError(tst, err)
		chk.Array(tst, "Uc", 1e-17, restored.Tag2node[20].Uc, []float64{mdl.Path.Disps[4], 0, 0, 0, 0, 0})

		// missing checkpoint file
		if !usedb {
			_, _, err = opener(ctx, mdl, 100, "")
			require.Error(tst, err)
		}
	}
}
