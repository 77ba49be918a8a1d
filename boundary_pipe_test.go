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

func TestSimplePipeSteadyState(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	a, b := g.ID(0, 1), g.ID(2, 1)
	cells.Eta[a] = 10
	cells.Eta[b] = 8

	p := &PipeBoundary{
		CellA: a, CellB: b,
		Diameter: 0.5, Length: 10, Roughness: 0.0005, Zeta: 1.5,
	}

	ts := &TimestepState{}
	for step := 0; step < 500; step++ {
		p.Apply(g, terrain, cells, ts, 0.5)
	}

	if cells.Eta[a] < cells.Eta[b] {
		t.Errorf("EtaA = %v, EtaB = %v, want A still at or above B (flow never overshoots)", cells.Eta[a], cells.Eta[b])
	}
	diff := math.Abs(cells.Eta[a] - cells.Eta[b])
	if diff >= 2.0 {
		t.Errorf("head difference = %v, want reduced well below the initial 2.0 at steady state", diff)
	}
}

func TestPipeBoundaryNoFlowBelowInvert(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	a, b := g.ID(0, 1), g.ID(2, 1)
	cells.Eta[a] = 1
	cells.Eta[b] = 0

	p := &PipeBoundary{
		CellA: a, CellB: b,
		Diameter: 0.5, Length: 10, Roughness: 0.0005, Zeta: 1.5,
		InvertA: 5, InvertB: 5, // both heads below invert
	}
	p.Apply(g, terrain, cells, &TimestepState{}, 1)

	if cells.Eta[a] != 1 || cells.Eta[b] != 0 {
		t.Error("PipeBoundary must not transfer flow while either end is below its invert")
	}
}

func TestPipeBoundarySkipsDisabledCell(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	a, b := g.ID(0, 1), g.ID(2, 1)
	cells.Eta[a], cells.EtaMax[a] = NoData, NoData
	cells.Eta[b] = 5

	p := &PipeBoundary{CellA: a, CellB: b, Diameter: 0.5, Length: 10, Roughness: 0.0005, Zeta: 1.5}
	p.Apply(g, terrain, cells, &TimestepState{}, 1)

	if cells.Eta[b] != 5 {
		t.Error("PipeBoundary must skip the pass entirely when an end cell is disabled")
	}
}

func TestPipeBoundaryInactiveWhenInvertBelowBed(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	a, b := g.ID(0, 1), g.ID(2, 1)
	terrain.Bed[a] = 0
	cells.Eta[a] = 10
	cells.Eta[b] = 8

	p := &PipeBoundary{
		CellA: a, CellB: b,
		Diameter: 0.5, Length: 10, Roughness: 0.0005, Zeta: 1.5,
		InvertA: -1, InvertB: 0, // invert at A sits below the bed there
	}
	p.Apply(g, terrain, cells, &TimestepState{}, 1)

	if cells.Eta[a] != 10 || cells.Eta[b] != 8 {
		t.Error("PipeBoundary must stay inactive when an invert sits below its cell's bed")
	}
}

func TestPipeBoundaryInactiveOnNoDataBed(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	a, b := g.ID(0, 1), g.ID(2, 1)
	terrain.Bed[a] = NoData
	cells.Eta[a] = 10
	cells.Eta[b] = 8

	p := &PipeBoundary{CellA: a, CellB: b, Diameter: 0.5, Length: 10, Roughness: 0.0005, Zeta: 1.5}
	p.Apply(g, terrain, cells, &TimestepState{}, 1)

	if cells.Eta[a] != 10 || cells.Eta[b] != 8 {
		t.Error("PipeBoundary must stay inactive when either endpoint's bed is NODATA")
	}
}

func TestPipeBoundaryPoisonsStateOnNonConvergence(t *testing.T) {
	g, terrain, cells := flatDomain(3, 1)
	a, b := g.ID(0, 1), g.ID(2, 1)
	cells.Eta[a] = 10
	cells.Eta[b] = 8

	// Length 0 makes the Colebrook-White root divide by zero, so the
	// head-balance residual is infinite and the solve fails.
	p := &PipeBoundary{CellA: a, CellB: b, Diameter: 0.5, Length: 0, Roughness: 0.0005, Zeta: 1.5}
	p.Apply(g, terrain, cells, &TimestepState{}, 1)

	if !math.IsNaN(cells.Eta[a]) || !math.IsNaN(cells.Eta[b]) {
		t.Error("a non-convergent pipe solve must poison both cells with NaN to halt the batch")
	}
}

func TestPipeColebrookWhiteMatchesAcceptanceScenario(t *testing.T) {
	// §8.4: L=100, D=0.5, k=0.5mm, Δh=2m, dry downstream -> V ~= 3.1 m/s
	// (Colebrook-White result) within 5%. A free discharge into a dry
	// downstream has no submerged exit, so ζ's local loss term is zero
	// and the full head goes to friction: h_f == h_0.
	const diameter, length, roughness, h0 = 0.5, 100.0, 0.0005, 2.0

	dw := pipeWettedDiameter(diameter, diameter) // full-bore: h == D
	v := colebrookWhiteVelocity(h0, dw, roughness, kinematicViscosityWater, length)

	const want = 3.1
	if math.Abs(v-want)/want > 0.05 {
		t.Errorf("V = %v, want within 5%% of %v", v, want)
	}
}
