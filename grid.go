/*
Copyright © 2024 the shallowmap authors.
This file is part of shallowmap.

shallowmap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

shallowmap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with shallowmap.  If not, see <http://www.gnu.org/licenses/>.
*/

package shallowmap

import "fmt"

// Direction identifies one of the four cardinal neighbor directions used
// by the reconstruction and scheme kernels.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Grid describes the immutable structured Cartesian mesh the solver runs
// on. It never changes after construction (SPEC_FULL.md §3).
type Grid struct {
	C, R   int     // columns, rows
	Dx, Dy float64 // cell spacing, m

	invDx float64
	invDy float64
}

// NewGrid validates and constructs a Grid.
func NewGrid(c, r int, dx, dy float64) (*Grid, error) {
	if c <= 0 || r <= 0 {
		return nil, fmt.Errorf("shallowmap: grid dimensions must be positive, got %dx%d", c, r)
	}
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("shallowmap: grid spacing must be positive, got dx=%g dy=%g", dx, dy)
	}
	return &Grid{C: c, R: r, Dx: dx, Dy: dy, invDx: 1 / dx, invDy: 1 / dy}, nil
}

// N returns the total cell count.
func (g *Grid) N() int { return g.C * g.R }

// InvDx and InvDy are the precomputed reciprocals the flux divergence
// uses on every cell, every step.
func (g *Grid) InvDx() float64 { return g.invDx }
func (g *Grid) InvDy() float64 { return g.invDy }

// ID returns the linear cell index for column i, row j.
func (g *Grid) ID(i, j int) int { return j*g.C + i }

// Coords returns the column, row for a linear cell index.
func (g *Grid) Coords(id int) (i, j int) { return id % g.C, id / g.C }

// Neighbor returns the linear index of the adjacent cell in direction d,
// clamping to the perimeter ring when stepping outside the grid. The
// perimeter ring is never advanced by the scheme kernels (§3), so a
// clamped lookup always resolves to a cell holding a valid, if
// externally-imposed, state.
func (g *Grid) Neighbor(i, j int, d Direction) int {
	ni, nj := i, j
	switch d {
	case North:
		nj++
	case South:
		nj--
	case East:
		ni++
	case West:
		ni--
	}
	if ni < 0 {
		ni = 0
	} else if ni >= g.C {
		ni = g.C - 1
	}
	if nj < 0 {
		nj = 0
	} else if nj >= g.R {
		nj = g.R - 1
	}
	return g.ID(ni, nj)
}

// OnPerimeter reports whether the cell at i,j sits on the outer ring and
// is therefore excluded from the scheme kernels' update loop.
func (g *Grid) OnPerimeter(i, j int) bool {
	return i == 0 || j == 0 || i == g.C-1 || j == g.R-1
}
