// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output of results of simulations as tables
package out

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/zerolen/ele"
)

// constants
var (
	Wid    = 13                        // width of columns of tables printed on screen
	Ext    = ".res"                    // extension of results files
	Prefix = []string{"u", "R", "Kt"} // keys of driver results; they come first
)

// Table holds results at steps selected for output
type Table struct {
	Keys []string    // keys of columns
	Res  *ele.ResMap // results
	Nstp int         // number of steps
}

// NewTable returns a new table
//  Note: if no keys are given, all keys are used: "u", "R" and "Kt" first, then the sorted
//        element keys
func NewTable(res *ele.ResMap, nstp int, keys ...string) *Table {
	if len(keys) == 0 {
		keys = AllKeys(res)
	}
	return &Table{Keys: keys, Res: res, Nstp: nstp}
}

// AllKeys returns the keys in res; the driver keys come first
func AllKeys(res *ele.ResMap) (keys []string) {
	for _, key := range Prefix {
		if _, ok := (*res)[key]; ok {
			keys = append(keys, key)
		}
	}
	rest := make(map[string]bool)
	for key := range *res {
		if utl.StrIndexSmall(Prefix, key) < 0 {
			rest[key] = true
		}
	}
	return append(keys, utl.StrBoolMapSort(rest)...)
}

// String returns the table formatted for screen
func (o *Table) String() string {
	return o.format(Wid, "g", 6)
}

// Write saves table to dirout/fnkey.res with all digits
func (o *Table) Write(dirout, fnkey string) (fn string) {
	fn = filepath.Join(dirout, fnkey+Ext)
	io.WriteStringToFileD(dirout, fnkey+Ext, o.format(24, "e", 16))
	return
}

// ReadTable reads a table written by Write
func ReadTable(fn string) (o *Table, err error) {
	if _, err = os.Stat(fn); err != nil {
		return nil, chk.Err("cannot read results table %q:\n%v", fn, err)
	}
	keys, res, err := readTable(fn)
	if err != nil {
		return
	}
	if len(keys) < 1 || keys[0] != "step" {
		return nil, chk.Err("results table %q must start with the \"step\" column", fn)
	}
	R := ele.ResMap(res)
	o = &Table{Keys: keys[1:], Res: &R, Nstp: len(res["step"])}
	delete(R, "step")
	return
}

// readTable calls io.ReadTable and converts its panics into errors; e.g. rows with too many columns
func readTable(fn string) (keys []string, res map[string][]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot read results table %q:\n%v", fn, r)
		}
	}()
	keys, res = io.ReadTable(fn)
	return
}

// format formats table with columns of width wid; verb and prec define the format of values.
// Columns are always separated by at least one space
func (o *Table) format(wid int, verb string, prec int) string {
	keyfmt := io.Sf(" %%%ds", wid-1)
	valfmt := io.Sf(" %%%d.%d%s", wid-1, prec, verb)
	var b strings.Builder
	b.WriteString(io.Sf(keyfmt, "step"))
	for _, key := range o.Keys {
		b.WriteString(io.Sf(keyfmt, key))
	}
	b.WriteString("\n")
	for k := 0; k < o.Nstp; k++ {
		b.WriteString(io.Sf(valfmt, float64(k)))
		for _, key := range o.Keys {
			b.WriteString(io.Sf(valfmt, o.Res.Get(key, k)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
