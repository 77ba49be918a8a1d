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

type fakeGriddedSource struct {
	value    float64
	flux     bool
	cellSize float64
}

func (f *fakeGriddedSource) Sample(col, row int, t float64) float64 { return f.value }
func (f *fakeGriddedSource) Resolution() (ox, oy, cellSize float64) { return 0, 0, f.cellSize }
func (f *fakeGriddedSource) Flux() bool                             { return f.flux }

func TestGriddedBoundaryAppliesRainIntensity(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	id := g.ID(1, 1)
	before := cells.Eta[id]

	b := &GriddedBoundary{Source: &fakeGriddedSource{value: 36, cellSize: 1}}
	ts := &TimestepState{THydro: HydroPeriod}
	b.Apply(g, terrain, cells, ts, 1)

	want := before + (36.0/3.6e6)*HydroPeriod
	if math.Abs(cells.Eta[id]-want) > 1e-12 {
		t.Errorf("Eta = %v, want %v", cells.Eta[id], want)
	}
}

func TestGriddedBoundaryAppliesMassFlux(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	id := g.ID(1, 1)
	before := cells.Eta[id]

	b := &GriddedBoundary{Source: &fakeGriddedSource{value: 2, flux: true, cellSize: 1}}
	ts := &TimestepState{THydro: HydroPeriod}
	b.Apply(g, terrain, cells, ts, 1)

	want := before + (2.0/(g.Dx*g.Dy))*HydroPeriod
	if math.Abs(cells.Eta[id]-want) > 1e-12 {
		t.Errorf("Eta = %v, want %v", cells.Eta[id], want)
	}
}

func TestGriddedBoundaryNilSourceIsNoOp(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	id := g.ID(1, 1)
	before := cells.Eta[id]

	b := &GriddedBoundary{}
	b.Apply(g, terrain, cells, &TimestepState{THydro: HydroPeriod}, 1)

	if cells.Eta[id] != before {
		t.Error("GriddedBoundary with a nil Source must be a no-op")
	}
}

func TestResidentGriddedSourceWithNoGridsReturnsZero(t *testing.T) {
	s := &ResidentGriddedSource{Interval: 10}
	if v := s.Sample(0, 0, 1000); v != 0 {
		t.Errorf("Sample with no grids = %v, want 0", v)
	}
}
