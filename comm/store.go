// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Key identifies a record in a database
//  Note: the size is part of the key because one object may send more than one ID (or vector)
//        with the same tags; e.g. the element header and the material metadata
type Key struct {
	Kind      string
	DbTag     int
	CommitTag int
	Size      int
}

// KeyOf returns the key of a record
func KeyOf(rec *Record) Key {
	return Key{rec.Kind, rec.DbTag, rec.CommitTag, rec.Size()}
}

// Database defines keyed storage of records
type Database interface {
	Put(rec *Record) error                // stores record; replaces existent one with the same key
	Get(key Key) (rec *Record, err error) // returns record; error if not found
	NextDbTag() (tag int, err error)      // allocates a new database tag
}

// Store implements a Channel on top of a database: records can be received in any order
type Store struct {
	Db Database
}

// NewStore returns a new channel backed by db
func NewStore(db Database) *Store {
	return &Store{Db: db}
}

// DbTag returns a new database tag
func (o *Store) DbTag() int {
	tag, err := o.Db.NextDbTag()
	if err != nil {
		return 0
	}
	return tag
}

// SendID sends integer data
func (o *Store) SendID(dbTag, commitTag int, data []int) error {
	return o.Db.Put(&Record{Kind: KindID, DbTag: dbTag, CommitTag: commitTag, Ints: append([]int{}, data...)})
}

// RecvID receives integer data
func (o *Store) RecvID(dbTag, commitTag int, data []int) (err error) {
	rec, err := o.Db.Get(Key{KindID, dbTag, commitTag, len(data)})
	if err != nil {
		return
	}
	copy(data, rec.Ints)
	return
}

// SendVector sends real data
func (o *Store) SendVector(dbTag, commitTag int, data []float64) error {
	return o.Db.Put(&Record{Kind: KindVector, DbTag: dbTag, CommitTag: commitTag, Floats: append([]float64{}, data...)})
}

// RecvVector receives real data
func (o *Store) RecvVector(dbTag, commitTag int, data []float64) (err error) {
	rec, err := o.Db.Get(Key{KindVector, dbTag, commitTag, len(data)})
	if err != nil {
		return
	}
	copy(data, rec.Floats)
	return
}

// SendMatrix sends matrix
func (o *Store) SendMatrix(dbTag, commitTag int, m *mat.Dense) error {
	return o.Db.Put(newMatrixRecord(dbTag, commitTag, m))
}

// RecvMatrix receives matrix
//  Note: an empty receiver cannot be resized because the size is part of the key
func (o *Store) RecvMatrix(dbTag, commitTag int, m *mat.Dense) (err error) {
	if m.IsEmpty() {
		return chk.Err("matrix receiver {dbTag=%d, commitTag=%d} must be pre-allocated", dbTag, commitTag)
	}
	r, c := m.Dims()
	rec, err := o.Db.Get(Key{KindMatrix, dbTag, commitTag, r * c})
	if err != nil {
		return
	}
	return unpackMatrix(m, rec)
}

// MemDb implements an in-memory database of records
type MemDb struct {
	mu     sync.Mutex
	recs   map[Key]*Record
	lastDb int
}

// NewMemDb returns a new in-memory database
func NewMemDb() *MemDb {
	return &MemDb{recs: make(map[Key]*Record)}
}

// Put stores record
func (o *MemDb) Put(rec *Record) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recs[KeyOf(rec)] = rec
	return nil
}

// Get returns record
func (o *MemDb) Get(key Key) (*Record, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	rec, ok := o.recs[key]
	if !ok {
		return nil, chk.Err("cannot find %q record {dbTag=%d, commitTag=%d, size=%d}", key.Kind, key.DbTag, key.CommitTag, key.Size)
	}
	return rec, nil
}

// NextDbTag allocates a new database tag
func (o *MemDb) NextDbTag() (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastDb++
	return o.lastDb, nil
}

// Len returns the number of records
func (o *MemDb) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.recs)
}
