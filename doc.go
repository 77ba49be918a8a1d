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

// Package shallowmap implements a finite-volume shallow-water
// hydrodynamic solver over a structured Cartesian grid: an HLLC Godunov
// scheme with depth-positivity reconstruction, a cheaper
// simplified-inertial alternative, point-implicit Manning friction, a
// goroutine-pool CFL reduction and timestep controller, and the
// rainfall/stage/discharge/gridded-raster/pipe boundary kernel family.
//
// Domain is the entry point: construct a Grid and Terrain, wire up
// Boundaries, and call NewDomain followed by RunToSync (or drive the
// CommandQueue methods directly).
package shallowmap
