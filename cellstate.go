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

const (
	// Gravity is g, m/s^2.
	Gravity = 9.80665
	// VerySmall is the depth/discharge/residual tolerance epsilon used
	// throughout the wet/dry and stability logic.
	VerySmall = 1e-14
	// NoData marks an elevation, level, or disabled-cell sentinel.
	NoData = -9999.0
)

// CellState is the primary mutable field: per-cell free-surface level,
// running-maximum level, and unit-width discharges, stored as
// structure-of-arrays so a goroutine striding across cell indices walks
// one contiguous slice per field rather than a slice of structs
// (SPEC_FULL.md §3, grounded on the teacher's Ci/Cf split in
// framework.go).
type CellState struct {
	Eta    []float64 // free-surface level, m
	EtaMax []float64 // running max free-surface level, m
	Qx     []float64 // unit-width discharge in x, m^2/s
	Qy     []float64 // unit-width discharge in y, m^2/s
}

// NewCellState allocates a CellState for n cells, zeroed.
func NewCellState(n int) *CellState {
	return &CellState{
		Eta:    make([]float64, n),
		EtaMax: make([]float64, n),
		Qx:     make([]float64, n),
		Qy:     make([]float64, n),
	}
}

// CopyFrom overwrites c's contents with src's. Both must hold the same
// number of cells.
func (c *CellState) CopyFrom(src *CellState) {
	copy(c.Eta, src.Eta)
	copy(c.EtaMax, src.EtaMax)
	copy(c.Qx, src.Qx)
	copy(c.Qy, src.Qy)
}

// Disabled reports whether cell id is masked out of the simulation:
// eta_max <= NoData or eta == NoData (§3).
func (c *CellState) Disabled(id int) bool {
	return c.EtaMax[id] <= NoData || c.Eta[id] == NoData
}

// ClampAndTrackMax clamps eta to the bed if the depth has fallen within
// epsilon of zero, then advances eta_max. Disabled cells are untouched.
func (c *CellState) ClampAndTrackMax(t *Terrain, id int) {
	if c.Disabled(id) {
		return
	}
	if c.Eta[id]-t.Bed[id] < VerySmall {
		c.Eta[id] = t.Bed[id]
	}
	if c.Eta[id] > c.EtaMax[id] {
		c.EtaMax[id] = c.Eta[id]
	}
}

// copyCell passes a single cell's state through unchanged, used for
// perimeter and fully-dry cells that the scheme kernels skip.
func copyCell(dst, src *CellState, id int) {
	dst.Eta[id] = src.Eta[id]
	dst.EtaMax[id] = src.EtaMax[id]
	dst.Qx[id] = src.Qx[id]
	dst.Qy[id] = src.Qy[id]
}

// Terrain holds the static bed elevation and Manning roughness fields,
// immutable after initialization.
type Terrain struct {
	Bed     []float64 // z_b, m
	Manning []float64 // n
}

// NewTerrain allocates a Terrain for n cells, zeroed.
func NewTerrain(n int) *Terrain {
	return &Terrain{Bed: make([]float64, n), Manning: make([]float64, n)}
}

// NoDataBed reports whether the bed at id is NODATA.
func (t *Terrain) NoDataBed(id int) bool { return t.Bed[id] <= NoData }

// Depth returns h = eta - z_b for the given cell.
func (c *CellState) Depth(t *Terrain, id int) float64 {
	return c.Eta[id] - t.Bed[id]
}
