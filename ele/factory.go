// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/zerolen/inp"
	"github.com/cpmech/zerolen/mdl/uniax"
)

// InfoFuncType defines a function that returns information about a certain element type
//  Note: ndof is the number of DOFs per node of the connected nodes
type InfoFuncType func(mdl *inp.Model, edat *inp.ElemData, ndof int) *Info

// AllocatorType defines a function that allocates an element
//  Note: mats holds the materials of edat (same order) and must be copied by the element
type AllocatorType func(mdl *inp.Model, edat *inp.ElemData, mats []uniax.Model) (Element, error)

// BlankAllocatorType defines a function that allocates an empty element to be received from a channel
type BlankAllocatorType func() Element

// GetInfo returns information about elements from factory
func GetInfo(mdl *inp.Model, edat *inp.ElemData, ndof int) (info *Info, err error) {
	fcn, ok := infofactory[edat.Type]
	if !ok {
		err = chk.Err("cannot get info for element {type=%q, tag=%d}", edat.Type, edat.Tag)
		return
	}
	info = fcn(mdl, edat, ndof)
	if info == nil {
		err = chk.Err("info for element {type=%q, tag=%d} is not available", edat.Type, edat.Tag)
	}
	return
}

// New returns a new element from factory
func New(mdl *inp.Model, edat *inp.ElemData) (ele Element, err error) {
	fcn, ok := allocators[edat.Type]
	if !ok {
		err = chk.Err("cannot get allocator for element {type=%q, tag=%d}", edat.Type, edat.Tag)
		return
	}
	mats := make([]uniax.Model, len(edat.Mats))
	for i, name := range edat.Mats {
		mats[i] = mdl.MatDb.Get(name)
		if mats[i] == nil {
			err = chk.Err("cannot find material %q required by element {type=%q, tag=%d}", name, edat.Type, edat.Tag)
			return
		}
	}
	return fcn(mdl, edat, mats)
}

// NewBlank returns a new empty element; e.g. to be received from a channel. It returns nil if
// classTag is not available
func NewBlank(classTag int) Element {
	if fcn, ok := blanks[classTag]; ok {
		return fcn()
	}
	return nil
}

// SetInfoFunc sets a new callback function to return information about an element
func SetInfoFunc(elementName string, fcn InfoFuncType) {
	if _, ok := infofactory[elementName]; ok {
		chk.Panic("cannot set information function for %q because element name exists already", elementName)
	}
	infofactory[elementName] = fcn
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("cannot set allocator function for %q because element name exists already", elementName)
	}
	allocators[elementName] = fcn
}

// SetBlankAllocator sets a new callback function to allocate empty elements by class tag
func SetBlankAllocator(classTag int, fcn BlankAllocatorType) {
	if _, ok := blanks[classTag]; ok {
		chk.Panic("cannot set blank allocator function for class tag %d because it exists already", classTag)
	}
	blanks[classTag] = fcn
}

// infofactory holds all functions that return information about an element
var infofactory = make(map[string]InfoFuncType)

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)

// blanks holds all blank allocators; classTag => allocator
var blanks = make(map[int]BlankAllocatorType)
