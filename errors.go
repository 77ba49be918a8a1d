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

import "fmt"

// ErrNonSquareCells is returned by NewDomain when the simplified-inertial
// scheme is selected on a non-square grid. §9 resolves the corresponding
// open question by rejecting the configuration outright rather than
// silently using the wrong spacing in the continuity update.
var ErrNonSquareCells = fmt.Errorf("shallowmap: simplified-inertial scheme requires square cells (Dx == Dy)")

// NumericalEscapeError reports a NaN or Inf detected in a CellState,
// either by the pipe solver's deliberate poison on non-convergence or by
// Domain.CheckFinite's opt-in post-step scan (§7).
type NumericalEscapeError struct {
	CellID int
	Field  string // "eta", "qx", or "qy"
	Value  float64
}

func (e *NumericalEscapeError) Error() string {
	return fmt.Sprintf("shallowmap: numerical escape in cell %d field %s: %v", e.CellID, e.Field, e.Value)
}

// PipeNonConvergenceError reports that a PipeBoundary's fixed-point
// discharge solve failed to settle within its iteration budget (§7).
type PipeNonConvergenceError struct {
	CellA, CellB int
	Residual     float64
}

func (e *PipeNonConvergenceError) Error() string {
	return fmt.Sprintf("shallowmap: pipe between cells %d and %d did not converge, residual %g", e.CellA, e.CellB, e.Residual)
}
