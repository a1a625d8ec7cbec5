// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connector

import (
	"strings"

	"github.com/cpmech/gosl/io"
)

// Kind classifies errors of connector elements
type Kind int

// kinds of errors
const (
	DegenerateGeometry Kind = iota + 1 // parallel or zero-length orientation vectors
	Topology                           // missing node or nodes with different number of DOFs
	Configuration                      // unsupported (ndim, ndof) combination
	MaterialAllocation                 // material copy or broker allocation failed
	Serialization                      // channel failure
	DirectionRange                     // direction code outside [0,5]
)

// String returns the name of kind
func (o Kind) String() string {
	switch o {
	case DegenerateGeometry:
		return "degenerate geometry"
	case Topology:
		return "topology"
	case Configuration:
		return "configuration"
	case MaterialAllocation:
		return "material allocation"
	case Serialization:
		return "serialization"
	case DirectionRange:
		return "direction range"
	}
	return "unknown"
}

// Error holds errors of connector elements
type Error struct {
	Kind Kind   // kind of error
	Msg  string // message
	Err  error  // [optional] cause
}

// sentinel errors to be used with errors.Is
var (
	ErrDegenerateGeometry = &Error{Kind: DegenerateGeometry}
	ErrTopology           = &Error{Kind: Topology}
	ErrConfiguration      = &Error{Kind: Configuration}
	ErrMaterialAllocation = &Error{Kind: MaterialAllocation}
	ErrSerialization      = &Error{Kind: Serialization}
	ErrDirectionRange     = &Error{Kind: DirectionRange}
)

// newError returns a new error of given kind
func newError(kind Kind, cause error, msg string, prm ...interface{}) *Error {
	return &Error{Kind: kind, Msg: io.Sf(msg, prm...), Err: cause}
}

// Error returns the error message
func (o *Error) Error() string {
	if o.Err == nil {
		return io.Sf("%v error: %s", o.Kind, o.Msg)
	}
	return io.Sf("%v error: %s:\n%v", o.Kind, o.Msg, o.Err)
}

// Unwrap returns the cause
func (o *Error) Unwrap() error { return o.Err }

// Is reports whether target is the sentinel error of the same kind
func (o *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == o.Kind && t.Msg == ""
}

// MaterialErrors collects the failures of materials in one operation; e.g. "update"
type MaterialErrors struct {
	Op   string  // operation
	Nmat int     // total number of materials
	Idx  []int   // indices of materials that failed
	Errs []error // errors corresponding to Idx
}

// Count returns the number of failures
func (o *MaterialErrors) Count() int { return len(o.Idx) }

// Error returns the error message
func (o *MaterialErrors) Error() string {
	l := make([]string, len(o.Idx))
	for k, i := range o.Idx {
		l[k] = io.Sf("material %d: %v", i, o.Errs[k])
	}
	return io.Sf("%d of %d materials failed in %s:\n%s", len(o.Idx), o.Nmat, o.Op, strings.Join(l, "\n"))
}

// Unwrap returns all errors
func (o *MaterialErrors) Unwrap() []error { return o.Errs }

// forEach calls fcn for all materials and collects errors; it returns nil if all succeeded
func forEach(op string, nmat int, fcn func(i int) error) error {
	var res *MaterialErrors
	for i := 0; i < nmat; i++ {
		if err := fcn(i); err != nil {
			if res == nil {
				res = &MaterialErrors{Op: op, Nmat: nmat}
			}
			res.Idx = append(res.Idx, i)
			res.Errs = append(res.Errs, err)
		}
	}
	if res == nil {
		return nil
	}
	return res
}
