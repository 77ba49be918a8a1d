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
	"testing"
)

func TestCellBoundaryFixedSurfaceLevel(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	terrain.Bed[g.ID(1, 1)] = -5
	cells.Eta[g.ID(1, 1)] = 0

	b := &CellBoundary{
		CellIDs: []int{g.ID(1, 1)},
		Series:  []TimeSeriesEntry{{Time: 0, Value: 3}},
		Depth:   DepthIsFSL,
	}
	ts := &TimestepState{T: 0}
	b.Apply(g, terrain, cells, ts, 1)

	if cells.Eta[g.ID(1, 1)] != 3 {
		t.Errorf("Eta = %v, want fixed surface level 3", cells.Eta[g.ID(1, 1)])
	}
}

func TestCellBoundarySkipsZeroDt(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	id := g.ID(1, 1)
	cells.Eta[id] = 10

	b := &CellBoundary{
		CellIDs: []int{id},
		Series:  []TimeSeriesEntry{{Time: 0, Value: 999}},
		Depth:   DepthIsFSL,
	}
	b.Apply(g, terrain, cells, &TimestepState{}, 0)

	if cells.Eta[id] != 10 {
		t.Error("CellBoundary must be a no-op when dt <= 0")
	}
}

func TestCellBoundaryVolumeModeIsDirectionless(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	id := g.ID(1, 1)
	cells.Eta[id] = 10
	before := cells.Eta[id]

	b := &CellBoundary{
		CellIDs:   []int{id},
		Series:    []TimeSeriesEntry{{Time: 0, Qx: -2, Qy: 0}},
		Discharge: DischargeIsVolume,
	}
	b.Apply(g, terrain, cells, &TimestepState{}, 1)

	want := before + math.Hypot(2, 0)*1/(g.Dx*g.Dy)
	if math.Abs(cells.Eta[id]-want) > 1e-9 {
		t.Errorf("Eta = %v, want %v (sign of Qx must not matter in VOLUME mode)", cells.Eta[id], want)
	}
}

func TestCellBoundarySkipsDisabledCell(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	id := g.ID(1, 1)
	cells.Eta[id], cells.EtaMax[id] = NoData, NoData

	b := &CellBoundary{
		CellIDs: []int{id},
		Series:  []TimeSeriesEntry{{Time: 0, Value: 5}},
		Depth:   DepthIsFSL,
	}
	b.Apply(g, terrain, cells, &TimestepState{}, 1)

	if cells.Eta[id] != NoData {
		t.Error("CellBoundary must not touch a disabled cell")
	}
}
