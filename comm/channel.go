// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package comm implements channels to send and receive the data of elements and materials;
// e.g. for checkpoint/restart or for moving elements between domains
package comm

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Record kinds
const (
	KindID     = "id"  // integer data
	KindVector = "vec" // real data
	KindMatrix = "mat" // real data with dimensions
)

// Channel defines what channels must implement
//  Note: dbTag identifies the object sending/receiving and commitTag identifies the commit (step).
//        Receivers must know the size of the data in advance; i.e. data must be pre-allocated
type Channel interface {
	DbTag() int                                            // returns a new database tag; 0 means no tag is available
	SendID(dbTag, commitTag int, data []int) error         // sends integer data
	RecvID(dbTag, commitTag int, data []int) error         // receives integer data into pre-allocated slice
	SendVector(dbTag, commitTag int, data []float64) error // sends real data
	RecvVector(dbTag, commitTag int, data []float64) error // receives real data into pre-allocated slice
	SendMatrix(dbTag, commitTag int, m *mat.Dense) error   // sends matrix
	RecvMatrix(dbTag, commitTag int, m *mat.Dense) error   // receives matrix; m may be empty
}

// Record holds one piece of data going through a channel
type Record struct {
	Kind      string    // KindID, KindVector or KindMatrix
	DbTag     int       // database tag of sender
	CommitTag int       // commit tag
	Ints      []int     // integer data; or [nrow, ncol] for matrices
	Floats    []float64 // real data; row-major for matrices
}

// Size returns the number of entries in record
func (o *Record) Size() int {
	if o.Kind == KindID {
		return len(o.Ints)
	}
	return len(o.Floats)
}

// newMatrixRecord packs matrix into record (row-major)
func newMatrixRecord(dbTag, commitTag int, m *mat.Dense) *Record {
	r, c := m.Dims()
	rec := &Record{Kind: KindMatrix, DbTag: dbTag, CommitTag: commitTag, Ints: []int{r, c}}
	rec.Floats = make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rec.Floats[i*c+j] = m.At(i, j)
		}
	}
	return rec
}

// unpackMatrix copies record into matrix; an empty matrix is resized
func unpackMatrix(m *mat.Dense, rec *Record) (err error) {
	if len(rec.Ints) != 2 {
		return chk.Err("matrix record must have 2 dimensions. %d is incorrect", len(rec.Ints))
	}
	r, c := rec.Ints[0], rec.Ints[1]
	if r*c != len(rec.Floats) {
		return chk.Err("matrix record is corrupted: %d×%d != %d", r, c, len(rec.Floats))
	}
	if m.IsEmpty() {
		m.ReuseAs(r, c)
	}
	mr, mc := m.Dims()
	if mr != r || mc != c {
		return chk.Err("matrix dimensions do not match: received %d×%d but receiver is %d×%d", r, c, mr, mc)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, rec.Floats[i*c+j])
		}
	}
	return
}
