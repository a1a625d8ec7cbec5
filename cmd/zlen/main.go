// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// zlen runs displacement-controlled analyses of models with zero-length connector elements
package main

import (
	"os"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// global flags
var (
	verbose bool   // show messages
	dirout  string // directory for results tables and checkpoint files
)

func main() {
	root := &cobra.Command{
		Use:           "zlen",
		Short:         "zlen runs displacement-controlled analyses of zero-length connector elements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				io.PfWhite("\nzlen -- zero-length connector elements\n")
				io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
				io.Pf("Use of this source code is governed by a BSD-style\n")
				io.Pf("license that can be found in the LICENSE file.\n\n")
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	root.PersistentFlags().StringVarP(&dirout, "out", "o", "", "directory for results tables and checkpoint files")
	root.AddCommand(runCmd(), checkpointCmd(), restoreCmd(), runsCmd())
	if err := root.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}
