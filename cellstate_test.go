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

import "testing"

func TestDisabledCellDetection(t *testing.T) {
	c := NewCellState(2)
	c.Eta[0], c.EtaMax[0] = 1, 1
	c.Eta[1], c.EtaMax[1] = NoData, NoData

	if c.Disabled(0) {
		t.Error("cell 0 should not be disabled")
	}
	if !c.Disabled(1) {
		t.Error("cell 1 should be disabled")
	}
}

func TestClampAndTrackMaxClampsToBed(t *testing.T) {
	terrain := NewTerrain(1)
	terrain.Bed[0] = 10
	c := NewCellState(1)
	c.Eta[0] = 10 + VerySmall/10
	c.EtaMax[0] = 9

	c.ClampAndTrackMax(terrain, 0)

	if c.Eta[0] != terrain.Bed[0] {
		t.Errorf("eta = %v, want clamped to bed %v", c.Eta[0], terrain.Bed[0])
	}
	if c.EtaMax[0] != terrain.Bed[0] {
		t.Errorf("etaMax = %v, want %v", c.EtaMax[0], terrain.Bed[0])
	}
}

func TestClampAndTrackMaxSkipsDisabledCell(t *testing.T) {
	terrain := NewTerrain(1)
	terrain.Bed[0] = 0
	c := NewCellState(1)
	c.Eta[0] = NoData
	c.EtaMax[0] = NoData

	c.ClampAndTrackMax(terrain, 0)

	if c.Eta[0] != NoData {
		t.Error("disabled cell's eta should not be touched")
	}
}
