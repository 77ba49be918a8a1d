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
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Timestep tuning constants (§6).
const (
	CourantDefault = 0.5
	HydroPeriod    = 0.25 // T_H, s
	EarlyLimit     = 0.1  // T_early_limit, s
	EarlyDuration  = 60.0 // T_early_dur, s
	MinDt          = 1e-10
	MaxDt          = 15.0
	StartMinDt     = 1e-10
	StartDuration  = 1.0 // T_start_dur, s
)

// BatchState is the controller's coarse state machine (§4.6).
type BatchState int

const (
	StateRun BatchState = iota
	StateSyncReached
	StateIdle
)

// TimestepState is the per-step scalar block (§3), mutated only by
// Advance and UpdateTimestep.
type TimestepState struct {
	T        float64
	Dt       float64
	THydro   float64
	TSync    float64
	DtBatch  float64
	NSuccess int
	NSkipped int
	SimEnd   float64 // 0 disables the end-of-run cap
	Courant  float64 // 0 uses CourantDefault
}

// ReduceWaveSpeed performs the parallel CFL reduction (§4.6 phase 1):
// GOMAXPROCS(0) goroutines each stride across a disjoint slice of the
// domain keeping a running max, then the per-goroutine maxima are
// combined with gonum's floats.Max — the two-phase in-group/cross-group
// tree reduction collapsed onto Go's scheduler instead of device
// workgroup barriers.
func ReduceWaveSpeed(g *Grid, terrain *Terrain, cells *CellState, simplified bool) float64 {
	nprocs := runtime.GOMAXPROCS(0)
	partial := make([]float64, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go func(p int) {
			defer wg.Done()
			var best float64
			for id := p; id < g.N(); id += nprocs {
				if cells.Disabled(id) {
					continue
				}
				h := cells.Eta[id] - terrain.Bed[id]
				if h < VerySmall {
					continue
				}
				c := math.Sqrt(Gravity * h)
				var s float64
				if simplified {
					s = c
				} else {
					u, v := cells.Qx[id]/h, cells.Qy[id]/h
					s = math.Max(math.Abs(u)+c, math.Abs(v)+c)
				}
				if s > best {
					best = s
				}
			}
			partial[p] = best
		}(p)
	}
	wg.Wait()
	return floats.Max(partial)
}

// dtBase computes the controller's baseline next Δt before any clamps:
// either the externally fixed value (TIMESTEP_FIXED, §6) or the CFL
// estimate Courant*dxMin/waveSpeedMax.
func (ts *TimestepState) dtBase(waveSpeedMax, dxMin float64, fixed bool, fixedDt float64) float64 {
	if fixed {
		return fixedDt
	}
	if waveSpeedMax <= 0 {
		return MaxDt
	}
	courant := ts.Courant
	if courant <= 0 {
		courant = CourantDefault
	}
	return courant * dxMin / waveSpeedMax
}

// clamp applies the shared start-floor, minimum-floor, sync, early-limit,
// and end/max-cap clamps to a baseline Δt and returns the resulting
// batch state (§4.6).
func (ts *TimestepState) clamp(dtNext float64) (float64, BatchState) {
	if ts.T < StartDuration && dtNext < StartMinDt {
		dtNext = StartMinDt
	}
	if dtNext > 0 && dtNext < MinDt {
		dtNext = MinDt
	}

	state := StateRun
	if ts.T+dtNext >= ts.TSync {
		if ts.TSync-ts.T > VerySmall {
			dtNext = ts.TSync - ts.T
		} else {
			dtNext = -dtNext
			state = StateSyncReached
		}
	}

	if dtNext > 0 {
		if ts.T < EarlyDuration && dtNext > EarlyLimit {
			dtNext = EarlyLimit
		}
		if ts.SimEnd > 0 && ts.T+dtNext > ts.SimEnd {
			dtNext = ts.SimEnd - ts.T
		}
		if dtNext > MaxDt {
			dtNext = MaxDt
		}
	}

	if dtNext == 0 {
		state = StateIdle
	}
	return dtNext, state
}

// Advance implements tst_Advance_Normal (§4.6 phase 2): given the Δt
// just taken and the freshly reduced wave-speed maximum, it advances
// simulated time and the hydrological sub-timestep counter, computes the
// next Δt, and returns the controller's batch state. A non-positive dtIn
// is counted as skipped and leaves the clocks untouched. t_hydro restarts
// from zero once a completed hydrological sub-step (t_hydro >= T_H) has
// been seen by the boundaries.
func (ts *TimestepState) Advance(dtIn, waveSpeedMax, dxMin float64, fixed bool, fixedDt float64) BatchState {
	if dtIn > 0 {
		if ts.THydro >= HydroPeriod {
			ts.THydro = 0
		}
		ts.T += dtIn
		ts.THydro += dtIn
		ts.DtBatch += dtIn
		ts.NSuccess++
	} else {
		ts.NSkipped++
	}

	dtNext, state := ts.clamp(ts.dtBase(waveSpeedMax, dxMin, fixed, fixedDt))
	ts.Dt = dtNext
	return state
}

// UpdateTimestep implements tst_UpdateTimestep (§4.6): used after a
// rollback or re-synchronisation. It recomputes a fresh baseline Δt the
// same way Advance would, keeps the smaller of that and the magnitude of
// the pre-rollback Δt, and reapplies the clamps.
func (ts *TimestepState) UpdateTimestep(preRollbackDt, waveSpeedMax, dxMin float64, fixed bool, fixedDt float64) BatchState {
	dtNext := ts.dtBase(waveSpeedMax, dxMin, fixed, fixedDt)
	if dtNext > math.Abs(preRollbackDt) {
		dtNext = math.Abs(preRollbackDt)
	}
	dtNext, state := ts.clamp(dtNext)
	ts.Dt = dtNext
	return state
}
