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

// SchemeConfig carries the compile-time switches (§6) that affect scheme
// kernel behaviour.
type SchemeConfig struct {
	FrictionEnabled      bool
	FrictionInFluxKernel bool
}

// GodunovStep advances the whole domain one step with the first-order
// HLLC Godunov scheme (§4.3), reading from src and writing to dst. It
// mirrors the teacher's Calculations goroutine-pool pattern
// (_examples/spatialmodel-inmap/run.go): GOMAXPROCS(0) goroutines stride
// across cell indices, each touching disjoint output cells so no
// synchronization is needed beyond the final WaitGroup barrier.
func GodunovStep(g *Grid, terrain *Terrain, src, dst *CellState, dt float64, cfg SchemeConfig) {
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go func(p int) {
			defer wg.Done()
			for id := p; id < g.N(); id += nprocs {
				i, j := g.Coords(id)
				godunovCell(g, terrain, src, dst, id, i, j, dt, cfg)
			}
		}(p)
	}
	wg.Wait()
}

func allDry(c *CellState, t *Terrain, ids ...int) bool {
	for _, id := range ids {
		if c.Eta[id]-t.Bed[id] >= VerySmall {
			return false
		}
	}
	return true
}

func godunovCell(g *Grid, terrain *Terrain, src, dst *CellState, id, i, j int, dt float64, cfg SchemeConfig) {
	if src.Disabled(id) || g.OnPerimeter(i, j) {
		copyCell(dst, src, id)
		return
	}

	nIdx := g.Neighbor(i, j, North)
	eIdx := g.Neighbor(i, j, East)
	sIdx := g.Neighbor(i, j, South)
	wIdx := g.Neighbor(i, j, West)

	if allDry(src, terrain, id, nIdx, eIdx, sIdx, wIdx) {
		copyCell(dst, src, id)
		return
	}

	newEta, newQx, newQy := godunovUpdate(
		g.InvDx(), g.InvDy(), terrain.Manning[id], dt, cfg,
		src.Eta[id], terrain.Bed[id], src.Qx[id], src.Qy[id],
		src.Eta[nIdx], terrain.Bed[nIdx], src.Qx[nIdx], src.Qy[nIdx],
		src.Eta[eIdx], terrain.Bed[eIdx], src.Qx[eIdx], src.Qy[eIdx],
		src.Eta[sIdx], terrain.Bed[sIdx], src.Qx[sIdx], src.Qy[sIdx],
		src.Eta[wIdx], terrain.Bed[wIdx], src.Qx[wIdx], src.Qy[wIdx],
	)

	dst.Eta[id] = newEta
	dst.Qx[id] = newQx
	dst.Qy[id] = newQy
	dst.EtaMax[id] = src.EtaMax[id]
	dst.ClampAndTrackMax(terrain, id)
}

// godunovUpdate implements the per-cell Godunov update (§4.3 steps
// 2-8) given the raw state of a cell and its four neighbors. It is
// shared by the plain and cache-enabled dispatch loops so the two
// variants can never drift apart on the physics.
func godunovUpdate(dx1, dy1, manning, dt float64, cfg SchemeConfig,
	etaC, zbC, qxC, qyC float64,
	etaN, zbN, qxN, qyN float64,
	etaE, zbE, qxE, qyE float64,
	etaS, zbS, qxS, qyS float64,
	etaW, zbW, qxW, qyW float64) (newEta, newQx, newQy float64) {

	lE, rE, stopE := reconstruct(East, etaC, zbC, qxC, qyC, etaE, zbE, qxE, qyE)
	fE := HLLC(East, lE, rE)
	lW, rW, stopW := reconstruct(West, etaW, zbW, qxW, qyW, etaC, zbC, qxC, qyC)
	fW := HLLC(West, lW, rW)
	lN, rN, stopN := reconstruct(North, etaC, zbC, qxC, qyC, etaN, zbN, qxN, qyN)
	fN := HLLC(North, lN, rN)
	lS, rS, stopS := reconstruct(South, etaS, zbS, qxS, qyS, etaC, zbC, qxC, qyC)
	fS := HLLC(South, lS, rS)
	stop := stopE + stopW + stopN + stopS

	etaEWbar := 0.5 * (rE.Eta + lW.Eta)
	etaNSbar := 0.5 * (rN.Eta + lS.Eta)
	s1 := -Gravity * etaEWbar * (rE.Zb - lW.Zb) * dx1
	s2 := -Gravity * etaNSbar * (rN.Zb - lS.Zb) * dy1

	dEta := (fE.Mass-fW.Mass)*dx1 + (fN.Mass-fS.Mass)*dy1
	dQx := (fE.Qx-fW.Qx)*dx1 + (fN.Qx-fS.Qx)*dy1 - s1
	dQy := (fE.Qy-fW.Qy)*dx1 + (fN.Qy-fS.Qy)*dy1 - s2

	if math.Abs(dEta) < VerySmall {
		dEta = 0
	}
	if math.Abs(dQx) < VerySmall {
		dQx = 0
	}
	if math.Abs(dQy) < VerySmall {
		dQy = 0
	}

	newQx = qxC - dt*dQx
	newQy = qyC - dt*dQy
	if stop > 0 {
		newQx, newQy = 0, 0
	}
	newEta = etaC - dt*dEta

	if cfg.FrictionEnabled && cfg.FrictionInFluxKernel {
		h := newEta - zbC
		if h >= VerySmall {
			newQx, newQy = frictionStep(h, manning, newQx, newQy, dt)
		}
	}
	return newEta, newQx, newQy
}

// cellSample is a raw (eta, zb, qx, qy) readout staged into a
// workgroup's local memory by GodunovStepCached.
type cellSample struct {
	Eta, Zb, Qx, Qy float64
}

// GodunovStepCached behaves identically to GodunovStep but stages each
// workgroup's block of cells, plus a one-cell halo, into a local slice
// before computing (§4.3's cache-enabled variant) — the goroutine
// analogue of staging a device kernel's workgroup tile into local/shared
// memory so each cell's four neighbor reads hit the staged copy instead
// of the shared source buffer. Only cells strictly inside a block
// produce output here; halo cells are computed by whichever block owns
// them as an interior cell.
func GodunovStepCached(g *Grid, terrain *Terrain, src, dst *CellState, dt float64, cfg SchemeConfig, blockSize int) {
	if blockSize < 1 {
		blockSize = 16
	}
	type block struct{ i0, j0 int }
	var blocks []block
	for j0 := 0; j0 < g.R; j0 += blockSize {
		for i0 := 0; i0 < g.C; i0 += blockSize {
			blocks = append(blocks, block{i0, j0})
		}
	}

	nprocs := runtime.GOMAXPROCS(0)
	work := make(chan block)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go func() {
			defer wg.Done()
			for b := range work {
				stageAndComputeBlock(g, terrain, src, dst, dt, cfg, b.i0, b.j0, blockSize)
			}
		}()
	}
	for _, b := range blocks {
		work <- b
	}
	close(work)
	wg.Wait()
}

func stageAndComputeBlock(g *Grid, terrain *Terrain, src, dst *CellState, dt float64, cfg SchemeConfig, i0, j0, blockSize int) {
	iMax := i0 + blockSize
	if iMax > g.C {
		iMax = g.C
	}
	jMax := j0 + blockSize
	if jMax > g.R {
		jMax = g.R
	}

	w := iMax - i0 + 2
	local := make([]cellSample, w*(jMax-j0+2))
	at := func(i, j int) int { return (j-(j0-1))*w + (i - (i0 - 1)) }

	for j := j0 - 1; j <= jMax; j++ {
		if j < 0 || j >= g.R {
			continue
		}
		for i := i0 - 1; i <= iMax; i++ {
			if i < 0 || i >= g.C {
				continue
			}
			id := g.ID(i, j)
			local[at(i, j)] = cellSample{Eta: src.Eta[id], Zb: terrain.Bed[id], Qx: src.Qx[id], Qy: src.Qy[id]}
		}
	}
	sample := func(i, j int) cellSample {
		if i < 0 || i >= g.C || j < 0 || j >= g.R {
			return cellSample{}
		}
		return local[at(i, j)]
	}

	for j := j0; j < jMax; j++ {
		for i := i0; i < iMax; i++ {
			id := g.ID(i, j)
			if src.Disabled(id) || g.OnPerimeter(i, j) {
				copyCell(dst, src, id)
				continue
			}
			c := sample(i, j)
			n := sample(i, j+1)
			e := sample(i+1, j)
			s := sample(i, j-1)
			w := sample(i-1, j)
			if allDryStaged(c, n, e, s, w) {
				copyCell(dst, src, id)
				continue
			}
			newEta, newQx, newQy := godunovUpdate(
				g.InvDx(), g.InvDy(), terrain.Manning[id], dt, cfg,
				c.Eta, c.Zb, c.Qx, c.Qy,
				n.Eta, n.Zb, n.Qx, n.Qy,
				e.Eta, e.Zb, e.Qx, e.Qy,
				s.Eta, s.Zb, s.Qx, s.Qy,
				w.Eta, w.Zb, w.Qx, w.Qy,
			)
			dst.Eta[id] = newEta
			dst.Qx[id] = newQx
			dst.Qy[id] = newQy
			dst.EtaMax[id] = src.EtaMax[id]
			dst.ClampAndTrackMax(terrain, id)
		}
	}
}

func allDryStaged(samples ...cellSample) bool {
	for _, s := range samples {
		if s.Eta-s.Zb >= VerySmall {
			return false
		}
	}
	return true
}
