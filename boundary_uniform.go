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
	"runtime"
	"sync"
)

// UniformBoundary applies uniform rainfall (positive RateMmPerHr) or
// loss/infiltration (negative) across every enabled cell in the domain,
// on hydrological sub-steps only (bdy_Uniform, §4.7).
type UniformBoundary struct {
	RateMmPerHr float64
}

// Apply mutates cells in place. It only acts once t_hydro has reached
// the hydrological period T_H; a non-positive Δt skips the pass
// entirely, per the universal boundary-kernel rule.
func (b *UniformBoundary) Apply(g *Grid, terrain *Terrain, cells *CellState, ts *TimestepState, dt float64) {
	if dt <= 0 || ts.THydro < HydroPeriod {
		return
	}
	depthChange := (b.RateMmPerHr / 3.6e6) * ts.THydro

	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go func(p int) {
			defer wg.Done()
			for id := p; id < g.N(); id += nprocs {
				if cells.Disabled(id) {
					continue
				}
				cells.Eta[id] += depthChange
				if cells.Eta[id] < terrain.Bed[id] {
					cells.Eta[id] = terrain.Bed[id]
				}
				cells.ClampAndTrackMax(terrain, id)
			}
		}(p)
	}
	wg.Wait()
}
