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

// InertialConfig carries the parameters the simplified-inertial scheme
// needs beyond SchemeConfig (§4.4).
type InertialConfig struct {
	FroudeMax float64 // Fr_max, the Froude-number discharge limiter
}

// InertialStep advances the whole domain one step with the simplified
// inertial scheme (§4.4), a cheaper alternative to GodunovStep that
// drops the Riemann solve in favor of a direct interface-discharge
// update. As in LISFLOOD-FP-style storage, each cell owns its east-face
// and north-face discharge (Qx, Qy); a cell's west-face and south-face
// fluxes are therefore its west/south neighbor's own Qx/Qy.
//
// Requires square cells (Dx == Dy): NewDomain enforces this at
// construction when the inertial scheme is selected, resolving the
// corresponding open question in spec.md §9 by rejecting non-square
// grids up front rather than silently using the wrong spacing in the
// continuity update.
func InertialStep(g *Grid, terrain *Terrain, src, dst *CellState, dt float64, cfg SchemeConfig, icfg InertialConfig) {
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go func(p int) {
			defer wg.Done()
			for id := p; id < g.N(); id += nprocs {
				i, j := g.Coords(id)
				if src.Disabled(id) || g.OnPerimeter(i, j) {
					copyCell(dst, src, id)
					continue
				}
				inertialCell(g, terrain, src, dst, id, i, j, dt, cfg, icfg)
			}
		}(p)
	}
	wg.Wait()
}

// inertialDischarge computes the updated interface discharge between a
// left (upstream) and right (downstream) cell sample (§4.4): a
// point-implicit friction-like update of the previous discharge against
// the water-surface slope, followed by a Froude-number clamp and a
// reverse-flow-through-zero clamp.
func inertialDischarge(etaL, zbL, qPrev, etaR, zbR, manning, spacing, dt, froudeMax float64) float64 {
	zbStar := math.Max(zbL, zbR)
	h := math.Max(etaL, etaR) - zbStar
	if h < VerySmall {
		return 0
	}
	slope := (etaR - etaL) / spacing
	num := qPrev - Gravity*h*dt*slope
	denom := 1 + Gravity*h*dt*manning*manning*math.Abs(qPrev)/math.Pow(h, 10.0/3.0)
	qNew := num / denom

	qMax := froudeMax * h * math.Sqrt(Gravity*h)
	if qNew > qMax {
		qNew = qMax
	} else if qNew < -qMax {
		qNew = -qMax
	}

	if (qPrev > 0 && qNew < 0) || (qPrev < 0 && qNew > 0) {
		qNew = 0
	}
	return qNew
}

func inertialCell(g *Grid, terrain *Terrain, src, dst *CellState, id, i, j int, dt float64, cfg SchemeConfig, icfg InertialConfig) {
	eIdx := g.Neighbor(i, j, East)
	wIdx := g.Neighbor(i, j, West)
	nIdx := g.Neighbor(i, j, North)
	sIdx := g.Neighbor(i, j, South)

	etaC, zbC := src.Eta[id], terrain.Bed[id]
	manning := terrain.Manning[id]

	qxE := inertialDischarge(etaC, zbC, src.Qx[id], src.Eta[eIdx], terrain.Bed[eIdx], manning, g.Dx, dt, icfg.FroudeMax)
	qxW := inertialDischarge(src.Eta[wIdx], terrain.Bed[wIdx], src.Qx[wIdx], etaC, zbC, manning, g.Dx, dt, icfg.FroudeMax)
	qyN := inertialDischarge(etaC, zbC, src.Qy[id], src.Eta[nIdx], terrain.Bed[nIdx], manning, g.Dy, dt, icfg.FroudeMax)
	qyS := inertialDischarge(src.Eta[sIdx], terrain.Bed[sIdx], src.Qy[sIdx], etaC, zbC, manning, g.Dy, dt, icfg.FroudeMax)

	newEta := etaC + dt*(qxE-qxW+qyN-qyS)*g.InvDy()

	dst.Eta[id] = newEta
	dst.Qx[id] = qxE
	dst.Qy[id] = qyN
	dst.EtaMax[id] = src.EtaMax[id]

	if cfg.FrictionEnabled && cfg.FrictionInFluxKernel {
		h := newEta - zbC
		if h >= VerySmall {
			dst.Qx[id], dst.Qy[id] = frictionStep(h, manning, dst.Qx[id], dst.Qy[id], dt)
		}
	}
	dst.ClampAndTrackMax(terrain, id)
}
