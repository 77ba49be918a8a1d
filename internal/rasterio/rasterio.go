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


// Package rasterio is a concrete, minimal implementation of the
// bdy_StreamingGridded host-upload contract (SPEC_FULL.md §6): a
// directory of per-timestep raster slab files, read lazily and retried
// with backoff since the host may not have finished writing a slab by
// the time the solver asks for it. Raster file I/O itself is an
// external collaborator per spec.md §1; this package exists so the core
// has *a* conforming implementation to exercise the contract end to end,
// not to define the canonical raster format.
package rasterio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/ctessum/sparse"
)

// StreamingGriddedSource implements shallowmap.GriddedSource against a
// directory of little-endian float64 raster slabs, one file per
// timestep, named slab_<t>.bin with t formatted to millisecond
// precision.
type StreamingGriddedSource struct {
	Dir              string
	Rows, Cols       int
	OX, OY, CellSize float64
	IsFluxField      bool

	current *sparse.DenseArray
}

// StreamBoundary implements the streaming callback invoked once per step
// for each streaming-gridded boundary (§4.7): it loads the raster slab
// for simulation time t, retrying with exponential backoff in case the
// host hasn't finished writing it yet.
func (s *StreamingGriddedSource) StreamBoundary(ctx context.Context, t float64) error {
	path := filepath.Join(s.Dir, fmt.Sprintf("slab_%012.3f.bin", t))

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 5 * time.Second

	var grid *sparse.DenseArray
	op := func() error {
		g, err := loadSlab(path, s.Rows, s.Cols)
		if err != nil {
			return err
		}
		grid = g
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("rasterio: loading slab %s: %w", path, err)
	}
	s.current = grid
	return nil
}

func loadSlab(path string, rows, cols int) (*sparse.DenseArray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	grid := sparse.ZerosDense(rows, cols)
	buf := make([]byte, 8)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if _, err := io.ReadFull(f, buf); err != nil {
				return nil, fmt.Errorf("short raster slab: %w", err)
			}
			grid.Set(math.Float64frombits(binary.LittleEndian.Uint64(buf)), r, c)
		}
	}
	return grid, nil
}

// Sample returns the most recently streamed raster's value at col, row;
// 0 before the first StreamBoundary call or outside the raster's extent.
func (s *StreamingGriddedSource) Sample(col, row int, t float64) float64 {
	if s.current == nil {
		return 0
	}
	if row < 0 || row >= s.current.Shape[0] || col < 0 || col >= s.current.Shape[1] {
		return 0
	}
	return s.current.Get(row, col)
}

func (s *StreamingGriddedSource) Resolution() (ox, oy, cellSize float64) {
	return s.OX, s.OY, s.CellSize
}

func (s *StreamingGriddedSource) Flux() bool { return s.IsFluxField }
