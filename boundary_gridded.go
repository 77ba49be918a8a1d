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

import (
	"math"

	"github.com/ctessum/sparse"
)

// GriddedSource supplies a raster sample for the gridded boundary
// kernels (§4.7). Resident gridded boundaries hold an entire timeseries
// of rasters in memory; streaming gridded boundaries hold one raster,
// refreshed out of band by the host (internal/rasterio's
// StreamingGriddedSource implements that upload contract against local
// raster slab files). Both share this one Apply; the only difference is
// whether Sample uses t or ignores it.
type GriddedSource interface {
	// Sample returns the rainfall intensity (mm/hr) or, when Flux is
	// true, a volumetric flux into the cell (m^3/s, spread over the
	// cell's area) at raster column/row (col,row) at simulation time t.
	Sample(col, row int, t float64) float64
	// Resolution returns the raster's origin and cell size, in the
	// solver's coordinate system.
	Resolution() (ox, oy, cellSize float64)
	// Flux reports whether Sample returns a mass flux rather than a
	// rain intensity.
	Flux() bool
}

// GriddedBoundary applies a rainfall or mass-flux raster sampled per
// cell (bdy_Gridded / bdy_StreamingGridded, §4.7).
type GriddedBoundary struct {
	Source GriddedSource
}

// Apply mutates cells in place on hydrological sub-steps, per §4.7.
func (b *GriddedBoundary) Apply(g *Grid, terrain *Terrain, cells *CellState, ts *TimestepState, dt float64) {
	if dt <= 0 || b.Source == nil || ts.THydro < HydroPeriod {
		return
	}
	ox, oy, cellSize := b.Source.Resolution()
	flux := b.Source.Flux()

	for j := 0; j < g.R; j++ {
		for i := 0; i < g.C; i++ {
			id := g.ID(i, j)
			if cells.Disabled(id) {
				continue
			}
			col := int(math.Floor((float64(i)*g.Dx - ox) / cellSize))
			row := int(math.Floor((float64(j)*g.Dy - oy) / cellSize))
			v := b.Source.Sample(col, row, ts.T)

			var depthChange float64
			if flux {
				depthChange = (v / (g.Dx * g.Dy)) * ts.THydro
			} else {
				depthChange = (v / 3.6e6) * ts.THydro
			}
			cells.Eta[id] += depthChange
			cells.ClampAndTrackMax(terrain, id)
		}
	}
}

// ResidentGriddedSource holds an entire gridded-boundary timeseries
// resident in memory (bdy_Gridded, §4.7): one sparse.DenseArray raster
// per timeseries interval, indexed by floor(t/Interval) and clamped to
// the last available interval.
type ResidentGriddedSource struct {
	Grids    []*sparse.DenseArray // one [rows][cols] raster per interval
	Interval float64              // seconds per raster
	OX, OY   float64
	CellSize float64
	IsFlux   bool
}

func (s *ResidentGriddedSource) Resolution() (ox, oy, cellSize float64) {
	return s.OX, s.OY, s.CellSize
}

func (s *ResidentGriddedSource) Flux() bool { return s.IsFlux }

func (s *ResidentGriddedSource) Sample(col, row int, t float64) float64 {
	if len(s.Grids) == 0 || s.Interval <= 0 {
		return 0
	}
	idx := int(t / s.Interval)
	if idx >= len(s.Grids) {
		idx = len(s.Grids) - 1
	}
	if idx < 0 {
		idx = 0
	}
	grid := s.Grids[idx]
	if row < 0 || row >= grid.Shape[0] || col < 0 || col >= grid.Shape[1] {
		return 0
	}
	return grid.Get(row, col)
}
