// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/zerolen/comm"
	"github.com/cpmech/zerolen/fem"
	"github.com/cpmech/zerolen/inp"
	"github.com/cpmech/zerolen/mdl/uniax"
	"github.com/spf13/cobra"
)

// checkpointCmd returns the command that runs the path of a model and saves checkpoints
//  Note: the commit tag of a checkpoint is the number of steps completed
func checkpointCmd() *cobra.Command {
	var every int
	cmd := &cobra.Command{
		Use:   "checkpoint model.zlen",
		Short: "run the displacement path of a model saving checkpoints",
		Long: `Run the displacement path of a model saving checkpoints.
Checkpoints go to the SQLite file given by "database" in the model (or ZLEN_DB).
Otherwise, each checkpoint is written to <out>/<key>-<step>.ckp with the model encoder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if every < 1 {
				return chk.Err("number of steps between checkpoints must be positive. every=%d is incorrect", every)
			}
			mdl, err := readModel(args[0])
			if err != nil {
				return err
			}
			dom, err := newDomain(mdl)
			if err != nil {
				return err
			}
			save, done, err := saver(cmd.Context(), mdl)
			if err != nil {
				return err
			}
			defer done()
			drv, err := fem.NewDriver(dom, mdl.Path)
			if err != nil {
				return err
			}
			nstp := len(mdl.Path.Disps)
			drv.After = func(step int, dom *fem.Domain) error {
				if (step+1)%every == 0 || step+1 == nstp {
					return save(step+1, dom)
				}
				return nil
			}
			if err = drv.Run(); err != nil {
				return err
			}
			report(mdl, drv)
			return nil
		},
	}
	cmd.Flags().IntVar(&every, "every", 1, "number of steps between checkpoints")
	return cmd
}

// restoreCmd returns the command that restores a checkpoint and runs the remaining steps
func restoreCmd() *cobra.Command {
	var step int
	var runId string
	cmd := &cobra.Command{
		Use:   "restore model.zlen",
		Short: "restore a checkpoint and run the remaining steps of the displacement path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mdl, err := readModel(args[0])
			if err != nil {
				return err
			}
			nstp := len(mdl.Path.Disps)
			if step < 1 || step > nstp {
				return chk.Err("step must be in [1,%d]. step=%d is incorrect", nstp, step)
			}
			ch, done, err := opener(cmd.Context(), mdl, step, runId)
			if err != nil {
				return err
			}
			defer done()
			dom, err := fem.Restore(ch, step, uniax.Factory{})
			if dom == nil {
				return err
			}
			if err != nil {
				io.Pfyel("WARNING: some elements are inert:\n%v\n", err)
			}
			dom.Verbose = mdl.Verbose
			if step == nstp {
				io.Pf("checkpoint %d is the last step; nothing to run\n", step)
				return nil
			}
			path := *mdl.Path
			path.Disps = mdl.Path.Disps[step:]
			drv, err := fem.NewDriver(dom, &path)
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
	cmd.Flags().IntVar(&step, "step", 0, "number of steps completed at the checkpoint")
	cmd.Flags().StringVar(&runId, "run", "", "run id in the database; default is the last run")
	cmd.MarkFlagRequired("step")
	return cmd
}

// runsCmd returns the command that lists the runs in a database
func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs database.db",
		Short: "list the runs saved in a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := comm.OpenSQLite(args[0])
			if err != nil {
				return err
			}
			defer db.Close()
			ids, err := comm.Runs(cmd.Context(), db)
			if err != nil {
				return err
			}
			for _, id := range ids {
				io.Pf("%s\n", id)
			}
			return nil
		},
	}
}

// saver returns a function to save checkpoints and a function to be called at the end
func saver(ctx context.Context, mdl *inp.Model) (save fem.StepFunc, done func(), err error) {

	// database
	if mdl.Database != "" {
		db, err := comm.OpenSQLite(mdl.Database)
		if err != nil {
			return nil, nil, err
		}
		sdb, err := comm.NewSQLDb(ctx, db, "")
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		io.Pfblue("run id = %s\n", sdb.RunId)
		store := comm.NewStore(sdb)
		save = func(tag int, dom *fem.Domain) error { return dom.Checkpoint(store, tag) }
		return save, func() { db.Close() }, nil
	}

	// files
	dir := dirout
	if dir == "" {
		dir = "."
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, chk.Err("cannot create directory %q:\n%v", dir, err)
	}
	save = func(tag int, dom *fem.Domain) (err error) {
		fn := ckpFile(dir, mdl.Key, tag)
		f, err := os.Create(fn)
		if err != nil {
			return chk.Err("cannot create checkpoint file:\n%v", err)
		}
		defer f.Close()
		return dom.Checkpoint(comm.NewWriter(f, mdl.Encoder), tag)
	}
	return save, func() {}, nil
}

// opener returns the channel with the checkpoint of given step and a function to be called at the end
func opener(ctx context.Context, mdl *inp.Model, step int, runId string) (ch comm.Channel, done func(), err error) {

	// database
	if mdl.Database != "" {
		db, err := comm.OpenSQLite(mdl.Database)
		if err != nil {
			return nil, nil, err
		}
		if runId == "" {
			ids, err := comm.Runs(ctx, db)
			if err != nil {
				db.Close()
				return nil, nil, chk.Err("cannot read runs in database %q:\n%v", mdl.Database, err)
			}
			if len(ids) == 0 {
				db.Close()
				return nil, nil, chk.Err("there are no runs in database %q", mdl.Database)
			}
			runId = ids[len(ids)-1]
		}
		sdb, err := comm.NewSQLDb(ctx, db, runId)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return comm.NewStore(sdb), func() { db.Close() }, nil
	}

	// files
	dir := dirout
	if dir == "" {
		dir = "."
	}
	f, err := os.Open(ckpFile(dir, mdl.Key, step))
	if err != nil {
		return nil, nil, chk.Err("cannot open checkpoint file:\n%v", err)
	}
	return comm.NewReader(f, mdl.Encoder), func() { f.Close() }, nil
}

// ckpFile returns the name of a checkpoint file
func ckpFile(dir, key string, step int) string {
	return filepath.Join(dir, io.Sf("%s-%d.ckp", key, step))
}
