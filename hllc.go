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

// flux is the per-edge numerical flux (F_eta, F_qx, F_qy) produced by
// HLLC (§4.2).
type flux struct {
	Mass float64
	Qx   float64
	Qy   float64
}

// physFlux is a flux expressed in the interface's own normal/tangential
// frame, before being rotated back into x/y components.
type physFlux struct {
	Mass       float64
	Normal     float64
	Tangential float64
}

func normalVelocity(d Direction, s interfaceState) float64 {
	if d == East || d == West {
		return s.U
	}
	return s.V
}

func tangentialVelocity(d Direction, s interfaceState) float64 {
	if d == East || d == West {
		return s.V
	}
	return s.U
}

// physicalFlux computes the physical (non-numerical) flux of an
// interface state in its own frame: mass flux is h*u_n; normal-momentum
// flux is the advective term plus a hydrostatic pressure term reduced by
// a linear bed term for well-balancing (§4.2); tangential momentum is
// carried advectively.
func physicalFlux(d Direction, s interfaceState) physFlux {
	un := normalVelocity(d, s)
	ut := tangentialVelocity(d, s)
	qn := s.H * un
	return physFlux{
		Mass:       qn,
		Normal:     qn*un + 0.5*Gravity*(s.Eta*s.Eta-2*s.Zb*s.Eta),
		Tangential: qn * ut,
	}
}

func assembleFlux(d Direction, mass, normal, tangential float64) flux {
	if d == East || d == West {
		return flux{Mass: mass, Qx: normal, Qy: tangential}
	}
	return flux{Mass: mass, Qx: tangential, Qy: normal}
}

// HLLC computes the numerical flux across the interface described by l
// (left) and r (right), oriented along direction d (§4.2).
func HLLC(d Direction, l, r interfaceState) flux {
	if l.H < VerySmall && r.H < VerySmall {
		hAvg := 0.5 * (l.H + r.H)
		return assembleFlux(d, 0, 0.5*Gravity*hAvg*hAvg, 0)
	}

	uL, uR := normalVelocity(d, l), normalVelocity(d, r)
	aL := math.Sqrt(Gravity * math.Max(l.H, 0))
	aR := math.Sqrt(Gravity * math.Max(r.H, 0))
	aBar := 0.5 * (aL + aR)

	hStar := math.Pow(aBar+(uL-uR)/4, 2) / Gravity
	aStar := math.Sqrt(Gravity * math.Max(hStar, 0))

	var sL, sR float64
	if l.H < VerySmall {
		sL = uR - 2*aR
	} else {
		sL = math.Min(uL-aL, 0.5*(uL+uR)+aL-aR-aStar)
	}
	if r.H < VerySmall {
		sR = uL + 2*aL
	} else {
		sR = math.Max(uR+aR, 0.5*(uL+uR)+aL-aR+aStar)
	}

	fL := physicalFlux(d, l)
	fR := physicalFlux(d, r)

	switch {
	case sL >= 0:
		return assembleFlux(d, fL.Mass, fL.Normal, fL.Tangential)
	case sR <= 0:
		return assembleFlux(d, fR.Mass, fR.Normal, fR.Tangential)
	}

	denom := sR - sL
	f1 := (sR*fL.Mass - sL*fR.Mass + sL*sR*(r.H-l.H)) / denom
	qL, qR := l.H*uL, r.H*uR
	f2 := (sR*fL.Normal - sL*fR.Normal + sL*sR*(qR-qL)) / denom

	sM := 0.0
	qDenom := r.H*(uR-sR) - l.H*(uL-sL)
	if qDenom != 0 {
		sM = (sL*r.H*(uR-sR) - sR*l.H*(uL-sL)) / qDenom
	}
	var ut float64
	if sM >= 0 {
		ut = tangentialVelocity(d, l)
	} else {
		ut = tangentialVelocity(d, r)
	}
	f3 := f1 * ut

	return assembleFlux(d, f1, f2, f3)
}
