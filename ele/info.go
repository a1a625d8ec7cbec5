// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Info holds information about the degrees of freedom of an element
type Info struct {

	// essential
	Dofs [][]string        // solution variables PER NODE. ex for 2 nodes: [["ux", "uy", "rz"], ["ux", "uy", "rz"]]
	Y2F  map[string]string // maps "y" keys to "f" keys. ex: "ux" => "fx", "rz" => "mz"

	// output
	Outputs []string // response keys recorded at each step; e.g. "force", "deformation"
}

// Key returns the key of DOF dof of local node m or "" if not available
func (o *Info) Key(m, dof int) string {
	if m < 0 || m >= len(o.Dofs) || dof < 0 || dof >= len(o.Dofs[m]) {
		return ""
	}
	return o.Dofs[m][dof]
}

// Y2Fmap returns the map from displacement/rotation keys to force/moment keys
func Y2Fmap() map[string]string {
	return map[string]string{
		"ux": "fx", "uy": "fy", "uz": "fz",
		"rx": "mx", "ry": "my", "rz": "mz",
	}
}
