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

	"github.com/sirupsen/logrus"
)

const (
	// kinematicViscosityWater is ν for fresh water around 20°C, m^2/s.
	// The Colebrook-White relation takes it as a constant rather than a
	// per-pipe field; §4.7 names it alongside k and ζ but never makes it
	// configurable per boundary.
	kinematicViscosityWater = 1.0e-6

	pipeMaxIterations = 5000
	pipeTolerance     = 1e-4
	pipeMinStep       = 1e-5
)

// PipeBoundary is a simple pressurized-pipe connector between two cells
// (bdy_SimplePipe, §4.7). Each step it solves the Colebrook-White
// friction relation for the unknown friction head loss h_f by adaptive
// fixed-point iteration against the head balance h_0 - h_f - h_loc = 0,
// then moves the resulting discharge between CellA and CellB.
type PipeBoundary struct {
	CellA, CellB     int
	Diameter         float64 // D, m
	Length           float64 // L, m
	Roughness        float64 // k, absolute roughness height, m
	Zeta             float64 // ζ, local (fittings/entrance) loss coefficient
	InvertA, InvertB float64 // pipe invert level at each end, m

	// Log, if set, receives a report when the head-balance solve fails
	// to converge (alongside the NaN poison that halts the batch, §7).
	Log logrus.FieldLogger
}

// pipeWettedDiameter returns D_w = D·φ, the partial-pipe shape-factor
// correction applied to the full-bore diameter when the flow depth h is
// less than D (§4.7). h is assumed already clamped to [VerySmall, D].
func pipeWettedDiameter(h, d float64) float64 {
	theta := 2 * math.Acos(1-2*h/d)
	phi := (theta - math.Sin(theta)) / theta
	return d * phi
}

// colebrookWhiteVelocity solves the Colebrook-White relation for pipe
// velocity explicitly in terms of the trial friction head loss hf (§4.7).
func colebrookWhiteVelocity(hf, dw, k, nu, length float64) float64 {
	if hf <= 0 || dw <= 0 {
		return 0
	}
	root := math.Sqrt(2 * Gravity * dw * hf / length)
	if root <= 0 {
		return 0
	}
	return -2 * math.Log10(k/(3.71*dw)+2.51*nu/(dw*root)) * root
}

// solvePipeHeadBalance finds the friction head loss hf satisfying
// h0 - hf - h_loc(V(hf)) = 0 by fixed-point iteration with the adaptive
// step §4.7 specifies: step multiplier 0.2 while the residual is still
// large (|err| >= 0.2), 0.002 once it is small, a 1e-5 floor on the step
// magnitude, and the step halved whenever it would overshoot hf negative.
// It gives up after pipeMaxIterations without reaching pipeTolerance.
func solvePipeHeadBalance(h0, dw, length, k, zeta float64) (hf, residual float64, converged bool) {
	hf = h0
	for iter := 0; iter < pipeMaxIterations; iter++ {
		v := colebrookWhiteVelocity(hf, dw, k, kinematicViscosityWater, length)
		hloc := zeta * v * v / (2 * Gravity)
		err := h0 - hf - hloc
		if math.IsNaN(err) || math.IsInf(err, 0) {
			return hf, err, false
		}
		if math.Abs(err) < pipeTolerance {
			return hf, err, true
		}

		mult := 0.002
		if math.Abs(err) >= 0.2 {
			mult = 0.2
		}
		step := mult * err
		if math.Abs(step) < pipeMinStep {
			if step < 0 {
				step = -pipeMinStep
			} else {
				step = pipeMinStep
			}
		}
		next := hf + step
		for i := 0; next < 0 && i < 64; i++ {
			step /= 2
			next = hf + step
		}
		if next < 0 {
			next = 0
		}
		hf = next
	}
	v := colebrookWhiteVelocity(hf, dw, k, kinematicViscosityWater, length)
	hloc := zeta * v * v / (2 * Gravity)
	return hf, h0 - hf - hloc, false
}

// Apply moves the Colebrook-White discharge between CellA and CellB. The
// pipe is inactive while Δt <= 0, either end cell is disabled or in
// NODATA bed, either invert sits below its cell's bed, or the upstream
// depth is below its invert (§4.7).
func (p *PipeBoundary) Apply(g *Grid, terrain *Terrain, cells *CellState, ts *TimestepState, dt float64) {
	if dt <= 0 {
		return
	}
	if cells.Disabled(p.CellA) || cells.Disabled(p.CellB) {
		return
	}
	if terrain.NoDataBed(p.CellA) || terrain.NoDataBed(p.CellB) {
		return
	}
	if p.InvertA < terrain.Bed[p.CellA] || p.InvertB < terrain.Bed[p.CellB] {
		return
	}

	upstream, downstream := p.CellA, p.CellB
	invUp := p.InvertA
	if cells.Eta[p.CellB] > cells.Eta[p.CellA] {
		upstream, downstream = p.CellB, p.CellA
		invUp = p.InvertB
	}

	hUp := cells.Eta[upstream] - invUp
	if hUp < VerySmall {
		return
	}
	h0 := cells.Eta[upstream] - cells.Eta[downstream]
	if h0 < VerySmall {
		return
	}

	hPipe := hUp
	if hPipe > p.Diameter {
		hPipe = p.Diameter
	}
	dw := pipeWettedDiameter(hPipe, p.Diameter)

	hf, residual, converged := solvePipeHeadBalance(h0, dw, p.Length, p.Roughness, p.Zeta)
	if !converged {
		cells.Eta[p.CellA] = math.NaN()
		cells.Eta[p.CellB] = math.NaN()
		err := &PipeNonConvergenceError{CellA: p.CellA, CellB: p.CellB, Residual: residual}
		if p.Log != nil {
			p.Log.WithError(err).Error("pipe solver failed to converge")
		}
		return
	}

	v := colebrookWhiteVelocity(hf, dw, p.Roughness, kinematicViscosityWater, p.Length)
	area := math.Pi * p.Diameter * p.Diameter / 4
	q := v * area

	cellArea := g.Dx * g.Dy
	transfer := q * dt / cellArea
	if maxTransfer := 0.5 * h0; transfer > maxTransfer {
		transfer = maxTransfer
	}

	cells.Eta[upstream] -= transfer
	cells.Eta[downstream] += transfer
	cells.ClampAndTrackMax(terrain, upstream)
	cells.ClampAndTrackMax(terrain, downstream)
}
