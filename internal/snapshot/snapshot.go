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


// Package snapshot is a minimal gob-encoded CellState persistence sink,
// in the teacher's own persistence idiom
// (_examples/spatialmodel-inmap/save.go's gob.NewEncoder/Decoder pair
// with a version check). It is explicitly not the canonical solver
// output format — SPEC_FULL.md says that format is out of scope for the
// core — just a working example sink an orchestrator can call at sync
// points.
package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/ctessum-labs/shallowmap"
)

const formatVersion = "shallowmap-snapshot-v1"

type record struct {
	Version string
	T       float64
	Eta     []float64
	EtaMax  []float64
	Qx      []float64
	Qy      []float64
}

// Save gob-encodes cells at simulation time t to w.
func Save(w io.Writer, t float64, cells *shallowmap.CellState) error {
	rec := record{
		Version: formatVersion,
		T:       t,
		Eta:     cells.Eta,
		EtaMax:  cells.EtaMax,
		Qx:      cells.Qx,
		Qy:      cells.Qy,
	}
	if err := gob.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("snapshot.Save: %v", err)
	}
	return nil
}

// Load decodes a snapshot written by Save into cells, returning the
// simulation time it was taken at. cells must already be sized for the
// same grid the snapshot was written from.
func Load(r io.Reader, cells *shallowmap.CellState) (float64, error) {
	var rec record
	if err := gob.NewDecoder(r).Decode(&rec); err != nil {
		return 0, fmt.Errorf("snapshot.Load: %v", err)
	}
	if rec.Version != formatVersion {
		return 0, fmt.Errorf("snapshot.Load: snapshot version %s is not compatible with %s", rec.Version, formatVersion)
	}
	if len(rec.Eta) != len(cells.Eta) {
		return 0, fmt.Errorf("snapshot.Load: snapshot has %d cells but destination has %d", len(rec.Eta), len(cells.Eta))
	}
	copy(cells.Eta, rec.Eta)
	copy(cells.EtaMax, rec.EtaMax)
	copy(cells.Qx, rec.Qx)
	copy(cells.Qy, rec.Qy)
	return rec.T, nil
}
