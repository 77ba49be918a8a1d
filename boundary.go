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

// DepthMode is the depth-imposition mode for a cell-list boundary (§4.7).
type DepthMode int

const (
	DepthIgnore DepthMode = iota
	DepthIsFSL
	DepthIsDepth
	DepthIsCritical
)

// DischargeMode is the discharge-imposition mode for a cell-list
// boundary (§4.7).
type DischargeMode int

const (
	DischargeIgnore DischargeMode = iota
	DischargeIsDischarge
	DischargeIsVelocity
	DischargeIsVolume
)

// TimeSeriesEntry is one (time, value, qx, qy) sample of a boundary
// timeseries, linearly interpolated between neighboring entries (§4.7).
// Value carries the depth/FSL/critical-depth source value, per the
// boundary's DepthMode.
type TimeSeriesEntry struct {
	Time  float64
	Value float64
	Qx    float64
	Qy    float64
}

// Boundary is implemented by every boundary-kernel family so Domain can
// hold a homogeneous slice of them and apply each in kernel-registration
// order (§4.7, §5). Ordering across boundaries that reference overlapping
// cells is undefined, same as the kernel invocation order on the
// original device queue; callers must keep each boundary's CellIDs (or
// raster footprint) disjoint from every other boundary's.
type Boundary interface {
	Apply(g *Grid, terrain *Terrain, cells *CellState, ts *TimestepState, dt float64)
}

// interpolateSeries linearly interpolates a timeseries of samples at
// time t, clamping to the first/last entry outside the series' range.
func interpolateSeries(entries []TimeSeriesEntry, t float64) TimeSeriesEntry {
	if len(entries) == 0 {
		return TimeSeriesEntry{}
	}
	if t <= entries[0].Time {
		return entries[0]
	}
	last := entries[len(entries)-1]
	if t >= last.Time {
		return last
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Time >= t {
			a, b := entries[i-1], entries[i]
			frac := (t - a.Time) / (b.Time - a.Time)
			return TimeSeriesEntry{
				Time:  t,
				Value: a.Value + frac*(b.Value-a.Value),
				Qx:    a.Qx + frac*(b.Qx-a.Qx),
				Qy:    a.Qy + frac*(b.Qy-a.Qy),
			}
		}
	}
	return last
}
