// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"encoding/gob"
	"encoding/json"
	goio "io"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// Stream implements a sequential channel: records are written to (or read from) a stream in the
// same order they are sent (or received). Sending and receiving require separate streams
type Stream struct {
	enc    Encoder // encoder; nil if reading
	dec    Decoder // decoder; nil if writing
	lastDb int     // last database tag handed out
}

// NewWriter returns a stream to send data to w
func NewWriter(w goio.Writer, enctype string) *Stream {
	return &Stream{enc: GetEncoder(w, enctype)}
}

// NewReader returns a stream to receive data from r
func NewReader(r goio.Reader, enctype string) *Stream {
	return &Stream{dec: GetDecoder(r, enctype)}
}

// DbTag returns a new database tag
func (o *Stream) DbTag() int {
	o.lastDb++
	return o.lastDb
}

// SendID sends integer data
func (o *Stream) SendID(dbTag, commitTag int, data []int) error {
	return o.put(&Record{Kind: KindID, DbTag: dbTag, CommitTag: commitTag, Ints: data})
}

// RecvID receives integer data
func (o *Stream) RecvID(dbTag, commitTag int, data []int) (err error) {
	rec, err := o.get(KindID, dbTag, commitTag, len(data))
	if err != nil {
		return
	}
	copy(data, rec.Ints)
	return
}

// SendVector sends real data
func (o *Stream) SendVector(dbTag, commitTag int, data []float64) error {
	return o.put(&Record{Kind: KindVector, DbTag: dbTag, CommitTag: commitTag, Floats: data})
}

// RecvVector receives real data
func (o *Stream) RecvVector(dbTag, commitTag int, data []float64) (err error) {
	rec, err := o.get(KindVector, dbTag, commitTag, len(data))
	if err != nil {
		return
	}
	copy(data, rec.Floats)
	return
}

// SendMatrix sends matrix
func (o *Stream) SendMatrix(dbTag, commitTag int, m *mat.Dense) error {
	return o.put(newMatrixRecord(dbTag, commitTag, m))
}

// RecvMatrix receives matrix
func (o *Stream) RecvMatrix(dbTag, commitTag int, m *mat.Dense) (err error) {
	rec, err := o.get(KindMatrix, dbTag, commitTag, -1)
	if err != nil {
		return
	}
	return unpackMatrix(m, rec)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func (o *Stream) put(rec *Record) (err error) {
	if o.enc == nil {
		return chk.Err("cannot send %q record {dbTag=%d, commitTag=%d} through a reading stream", rec.Kind, rec.DbTag, rec.CommitTag)
	}
	err = o.enc.Encode(rec)
	if err != nil {
		return chk.Err("cannot encode %q record {dbTag=%d, commitTag=%d}:\n%v", rec.Kind, rec.DbTag, rec.CommitTag, err)
	}
	return
}

// get decodes the next record and checks it against what the receiver expects. size < 0 skips the size check
func (o *Stream) get(kind string, dbTag, commitTag, size int) (rec *Record, err error) {
	if o.dec == nil {
		return nil, chk.Err("cannot receive %q record {dbTag=%d, commitTag=%d} from a writing stream", kind, dbTag, commitTag)
	}
	rec = new(Record)
	err = o.dec.Decode(rec)
	if err != nil {
		return nil, chk.Err("cannot decode %q record {dbTag=%d, commitTag=%d}:\n%v", kind, dbTag, commitTag, err)
	}
	if rec.Kind != kind {
		return nil, chk.Err("expected %q record but got %q {dbTag=%d, commitTag=%d}", kind, rec.Kind, dbTag, commitTag)
	}
	if rec.DbTag != dbTag || rec.CommitTag != commitTag {
		return nil, chk.Err("record tags do not match: expected {dbTag=%d, commitTag=%d} but got {dbTag=%d, commitTag=%d}", dbTag, commitTag, rec.DbTag, rec.CommitTag)
	}
	if size >= 0 && rec.Size() != size {
		return nil, chk.Err("%q record {dbTag=%d, commitTag=%d} has size %d but receiver expects %d", kind, dbTag, commitTag, rec.Size(), size)
	}
	return
}
