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

import "math"

// CellBoundary is a cell-list timeseries boundary (bdy_Cell, §4.7): a
// set of target cells sharing one timeseries, interpolated at the
// current simulation time and applied through configured depth and
// discharge modes.
type CellBoundary struct {
	CellIDs   []int
	Series    []TimeSeriesEntry
	Depth     DepthMode
	Discharge DischargeMode
}

// Apply mutates every configured cell at the current time, per §4.7's
// bdy_Cell. Disabled cells and a non-positive Δt are skipped, per the
// universal boundary-kernel rule.
func (b *CellBoundary) Apply(g *Grid, terrain *Terrain, cells *CellState, ts *TimestepState, dt float64) {
	if dt <= 0 || len(b.CellIDs) == 0 {
		return
	}
	e := interpolateSeries(b.Series, ts.T)
	for _, id := range b.CellIDs {
		if cells.Disabled(id) {
			continue
		}
		applyCellBoundary(g, terrain, cells, id, e, b.Depth, b.Discharge, dt)
	}
}

func applyCellBoundary(g *Grid, terrain *Terrain, cells *CellState, id int, e TimeSeriesEntry, depthMode DepthMode, dischargeMode DischargeMode, dt float64) {
	zb := terrain.Bed[id]

	switch dischargeMode {
	case DischargeIsVolume:
		// VOLUME distributes |q|*Δt/(Δx*Δy) into the cell as a depth
		// increment without imposing a flow direction.
		mag := math.Hypot(e.Qx, e.Qy)
		cells.Eta[id] += mag * dt / (g.Dx * g.Dy)
	case DischargeIsDischarge, DischargeIsVelocity:
		qx, qy := e.Qx, e.Qy
		if dischargeMode == DischargeIsVelocity {
			h := math.Max(cells.Eta[id]-zb, 0)
			qx, qy = qx*h, qy*h
		}
		cells.Eta[id] += math.Abs(qx)*dt*g.InvDy() + math.Abs(qy)*dt*g.InvDx()
		if q := math.Hypot(qx, qy); q > 0 {
			hc := math.Cbrt(q * q / Gravity)
			if cells.Eta[id]-zb < hc {
				cells.Eta[id] = zb + hc
			}
		}
	}

	switch depthMode {
	case DepthIsFSL:
		cells.Eta[id] = e.Value
	case DepthIsDepth:
		cells.Eta[id] = zb + e.Value
	case DepthIsCritical:
		hc := math.Cbrt(e.Value * e.Value / Gravity)
		if cells.Eta[id]-zb < hc {
			cells.Eta[id] = zb + hc
		}
	}

	cells.ClampAndTrackMax(terrain, id)
}
