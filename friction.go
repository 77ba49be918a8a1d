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
)

// frictionStep applies the point-implicit Manning friction update to a
// single cell's discharge components (§4.5). The implicit solve is
// closed-form for one cell, with an anti-reversal clamp so friction
// cannot flip the sign of either component within a single step.
func frictionStep(h, manning, qx, qy, dt float64) (float64, float64) {
	q := math.Hypot(qx, qy)
	if h < VerySmall || q < VerySmall {
		return qx, qy
	}
	cf := Gravity * manning * manning / math.Cbrt(h)
	h2 := h * h

	sfx := -cf * qx * q / h2
	sfy := -cf * qy * q / h2
	dDenomX := 1 + dt*(cf/h2)*(2*qx*qx+qy*qy)/q
	dDenomY := 1 + dt*(cf/h2)*(qx*qx+2*qy*qy)/q
	fx := sfx / dDenomX
	fy := sfy / dDenomY

	if qx >= 0 {
		fx = math.Max(fx, -qx/dt)
	} else {
		fx = math.Min(fx, -qx/dt)
	}
	if qy >= 0 {
		fy = math.Max(fy, -qy/dt)
	} else {
		fy = math.Min(fy, -qy/dt)
	}

	return qx + dt*fx, qy + dt*fy
}

// FrictionApply runs the standalone point-implicit friction pass over
// the whole domain (§4.5), used when FRICTION_IN_FLUX_KERNEL is false
// (§6). Disabled and dry cells are left untouched.
func FrictionApply(g *Grid, terrain *Terrain, cells *CellState, dt float64) {
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
				h := cells.Eta[id] - terrain.Bed[id]
				if h < VerySmall {
					continue
				}
				cells.Qx[id], cells.Qy[id] = frictionStep(h, terrain.Manning[id], cells.Qx[id], cells.Qy[id], dt)
			}
		}(p)
	}
	wg.Wait()
}
