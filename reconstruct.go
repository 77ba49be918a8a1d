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

import "math"

// interfaceState is one side's reconstructed state at a cell interface,
// produced by reconstruct (§4.1).
type interfaceState struct {
	Eta float64
	H   float64
	Qx  float64
	Qy  float64
	U   float64
	V   float64
	Zb  float64 // shifted interface bed level, shared by both sides
}

func velocityComponents(qx, qy, h float64) (u, v float64) {
	if h < VerySmall {
		return 0, 0
	}
	return qx / h, qy / h
}

// reconstruct computes the depth-positivity-preserving interface states
// on both sides of the interface between a "left" and "right" cell along
// direction d (§4.1). By convention the caller always passes the
// upstream-in-d cell as left and the downstream-in-d cell as right: for
// an East interface, left is the center cell and right its east
// neighbor; for a West interface, left is the west neighbor and right
// the center cell (and symmetrically for North/South).
//
// stop counts how many sides of this interface required a dry-front
// velocity correction; the caller sums stop across all four of a cell's
// interfaces and arrests the cell's momentum entirely when the total is
// nonzero (§4.3 step 5).
func reconstruct(d Direction, etaL, zbL, qxL, qyL, etaR, zbR, qxR, qyR float64) (left, right interfaceState, stop int) {
	hL := etaL - zbL
	hR := etaR - zbR

	uL, vL := velocityComponents(qxL, qyL, hL)
	uR, vR := velocityComponents(qxR, qyR, hR)

	zbStar := math.Max(zbL, zbR)

	var etaRef float64
	switch d {
	case North, East:
		etaRef = etaL
	default: // South, West
		etaRef = etaR
	}
	shift := math.Max(0, zbStar-etaRef)
	zbShifted := zbStar - shift

	hLp := math.Max(etaL-zbStar, 0)
	hRp := math.Max(etaR-zbStar, 0)

	left = interfaceState{
		Eta: hLp + zbShifted,
		H:   hLp,
		Qx:  hLp * uL,
		Qy:  hLp * vL,
		U:   uL,
		V:   vL,
		Zb:  zbShifted,
	}
	right = interfaceState{
		Eta: hRp + zbShifted,
		H:   hRp,
		Qx:  hRp * uR,
		Qy:  hRp * vR,
		U:   uR,
		V:   vR,
		Zb:  zbShifted,
	}

	// Normal-direction raw discharge and reconstructed normal velocity,
	// oriented so positive points from left to right.
	var nL, nR, rawQL, rawQR float64
	switch d {
	case East, West:
		nL, nR = left.U, right.U
		rawQL, rawQR = qxL, qxR
	default:
		nL, nR = left.V, right.V
		rawQL, rawQR = qyL, qyR
	}

	if left.H <= VerySmall {
		if nR < 0 {
			zeroNormal(&right, d)
			stop++
		}
		if rawQL > 0 {
			stop++
		}
	}
	if right.H <= VerySmall {
		if nL > 0 {
			zeroNormal(&left, d)
			stop++
		}
		if rawQR < 0 {
			stop++
		}
	}
	return left, right, stop
}

// zeroNormal zeroes the velocity and discharge component normal to
// interface direction d, arresting flow that would otherwise advect into
// a dry neighbor.
func zeroNormal(s *interfaceState, d Direction) {
	switch d {
	case East, West:
		s.U, s.Qx = 0, 0
	default:
		s.V, s.Qy = 0, 0
	}
}
