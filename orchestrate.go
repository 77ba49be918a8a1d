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
	"context"
	"math"

	"github.com/sirupsen/logrus"
)

// CommandQueue is the external kernel-invocation API (§6):
// boundaries.apply, scheme.step, friction.apply, timestep.reduce, and
// timestep.advance, mapped onto Go methods instead of an explicit device
// command queue.
type CommandQueue interface {
	ApplyBoundaries(ctx context.Context, cells *CellState) error
	Reduce(ctx context.Context, src *CellState) (waveSpeedMax float64, err error)
	Advance(ctx context.Context, ts *TimestepState, waveSpeedMax float64) error
	Step(ctx context.Context, src, dst *CellState, dt float64) error
	ApplyFriction(ctx context.Context, cells *CellState, dt float64) error
}

// Domain is the sole in-process, goroutine-pool CommandQueue
// implementation this module ships (§6).
type Domain struct {
	Grid       *Grid
	Terrain    *Terrain
	Switches   Switches
	Boundaries []Boundary

	Scheme    string // "godunov" or "inertial"
	Cache     bool
	BlockSize int

	TS  *TimestepState
	Log *logrus.Logger
}

var _ CommandQueue = (*Domain)(nil)

// NewDomain validates and constructs a Domain. It enforces §9's resolved
// open question that the simplified-inertial scheme requires square
// cells, rejecting the configuration up front rather than silently
// mis-simulating.
func NewDomain(g *Grid, terrain *Terrain, sw Switches, scheme string) (*Domain, error) {
	if scheme == "inertial" && g.Dx != g.Dy {
		return nil, ErrNonSquareCells
	}
	return &Domain{
		Grid:     g,
		Terrain:  terrain,
		Switches: sw,
		Scheme:   scheme,
		TS:       &TimestepState{Courant: sw.Courant},
		Log:      logrus.New(),
	}, nil
}

func (d *Domain) ApplyBoundaries(ctx context.Context, cells *CellState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, b := range d.Boundaries {
		b.Apply(d.Grid, d.Terrain, cells, d.TS, d.TS.Dt)
	}
	return nil
}

func (d *Domain) Reduce(ctx context.Context, src *CellState) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return ReduceWaveSpeed(d.Grid, d.Terrain, src, d.Switches.TimestepSimplified), nil
}

func (d *Domain) Advance(ctx context.Context, ts *TimestepState, waveSpeedMax float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dxMin := math.Min(d.Grid.Dx, d.Grid.Dy)
	state := ts.Advance(ts.Dt, waveSpeedMax, dxMin, d.Switches.TimestepFixed, d.Switches.FixedDt)
	if d.Switches.DebugOutput {
		d.Log.WithFields(logrus.Fields{"t": ts.T, "dt": ts.Dt, "state": state}).Debug("timestep advanced")
	}
	return nil
}

func (d *Domain) Step(ctx context.Context, src, dst *CellState, dt float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := d.Switches.SchemeConfig()
	switch d.Scheme {
	case "inertial":
		InertialStep(d.Grid, d.Terrain, src, dst, dt, cfg, d.Switches.InertialConfig())
	default:
		if d.Cache {
			GodunovStepCached(d.Grid, d.Terrain, src, dst, dt, cfg, d.BlockSize)
		} else {
			GodunovStep(d.Grid, d.Terrain, src, dst, dt, cfg)
		}
	}
	return nil
}

func (d *Domain) ApplyFriction(ctx context.Context, cells *CellState, dt float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.Switches.FrictionEnabled || d.Switches.FrictionInFluxKernel {
		return nil
	}
	FrictionApply(d.Grid, d.Terrain, cells, dt)
	return nil
}

// CheckFinite is an opt-in O(N) post-step scan for NaN/Inf (§7), off the
// hot path by default; meant for tests and debugging rather than
// production steps, which trust propagation elsewhere.
func (d *Domain) CheckFinite(cells *CellState) error {
	for id := 0; id < d.Grid.N(); id++ {
		if isBad(cells.Eta[id]) {
			return &NumericalEscapeError{CellID: id, Field: "eta", Value: cells.Eta[id]}
		}
		if isBad(cells.Qx[id]) {
			return &NumericalEscapeError{CellID: id, Field: "qx", Value: cells.Qx[id]}
		}
		if isBad(cells.Qy[id]) {
			return &NumericalEscapeError{CellID: id, Field: "qy", Value: cells.Qy[id]}
		}
	}
	return nil
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// RunToSync drives the domain forward — boundaries, reduce, advance,
// step, friction — until the timestep controller reports SYNC_REACHED or
// IDLE (§4.6, §5). Boundaries apply with the Δt of the step just taken,
// so the reduction sees the post-boundary state. It does not call
// StreamBoundary on any gridded source; the caller refreshes streamed
// rasters. cur and next are swapped after each successful step,
// in the teacher's ping-pong buffer idiom
// (_examples/spatialmodel-inmap/framework.go's Ci/Cf). It returns the
// (possibly swapped) buffer pair so the caller keeps the same two
// backing slices across many sync periods instead of reallocating.
func (d *Domain) RunToSync(ctx context.Context, cur, next *CellState, tSync float64) (*CellState, *CellState, error) {
	d.TS.TSync = tSync
	for {
		if err := d.ApplyBoundaries(ctx, cur); err != nil {
			return cur, next, err
		}
		waveSpeedMax, err := d.Reduce(ctx, cur)
		if err != nil {
			return cur, next, err
		}
		if err := d.Advance(ctx, d.TS, waveSpeedMax); err != nil {
			return cur, next, err
		}
		dt := d.TS.Dt
		if dt <= 0 {
			return cur, next, nil
		}

		if err := d.Step(ctx, cur, next, dt); err != nil {
			return cur, next, err
		}
		if err := d.ApplyFriction(ctx, next, dt); err != nil {
			return cur, next, err
		}
		cur, next = next, cur
	}
}
