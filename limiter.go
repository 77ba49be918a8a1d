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

// MinbeeBeta is beta in the MINBEE slope limiter (§4.8). 1.0 recovers
// classic MINMOD.
const MinbeeBeta = 1.0

// MinmodSlope computes the MINBEE/MINMOD-limited slope across three
// consecutive samples left, center, right, returning the limited
// difference (not divided by spacing). Returns zero across a wet-dry
// front, since an unlimited slope there would extrapolate into negative
// depth.
func MinmodSlope(left, center, right, hL, hR float64) float64 {
	if hL < VerySmall || hR < VerySmall {
		return 0
	}
	denom := center - left
	if denom == 0 {
		return 0
	}
	r := (right - center) / denom
	a := math.Min(MinbeeBeta*r, 1)
	b := math.Min(r, MinbeeBeta)
	phi := math.Max(0, math.Max(a, b))
	return phi * denom
}
