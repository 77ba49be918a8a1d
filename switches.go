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

// Switches mirrors the external configuration surface described in §6:
// a flat set of booleans and debug hooks an operator toggles per run,
// independent of the grid and terrain data.
type Switches struct {
	TimestepFixed        bool // TIMESTEP_DYNAMIC (false) | TIMESTEP_FIXED (true)
	FixedDt              float64
	TimestepSimplified   bool // TIMESTEP_SIMPLIFIED: wave speed = sqrt(g h) only
	FrictionEnabled      bool // FRICTION_ENABLED
	FrictionInFluxKernel bool // FRICTION_IN_FLUX_KERNEL

	// UseAlternateConstructs is carried for config-file compatibility
	// with USE_ALTERNATE_CONSTRUCTS (§6). It is a documented no-op: Go
	// has one vector-literal dialect, so nothing in this module ever
	// branches on it.
	UseAlternateConstructs bool

	DebugOutput bool
	DebugCellX  int
	DebugCellY  int

	Courant   float64
	FroudeMax float64
}

// SchemeConfig projects the subset of switches the scheme kernels need.
func (s Switches) SchemeConfig() SchemeConfig {
	return SchemeConfig{
		FrictionEnabled:      s.FrictionEnabled,
		FrictionInFluxKernel: s.FrictionInFluxKernel,
	}
}

// InertialConfig projects the subset of switches the inertial scheme needs.
func (s Switches) InertialConfig() InertialConfig {
	return InertialConfig{FroudeMax: s.FroudeMax}
}
