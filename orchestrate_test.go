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
	"context"
	"math"
	"testing"
)

func TestNewDomainRejectsNonSquareInertialGrid(t *testing.T) {
	g, err := NewGrid(3, 3, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	terrain := NewTerrain(g.N())
	_, err = NewDomain(g, terrain, Switches{}, "inertial")
	if err != ErrNonSquareCells {
		t.Errorf("err = %v, want ErrNonSquareCells", err)
	}
}

func TestNewDomainAcceptsSquareInertialGrid(t *testing.T) {
	g, err := NewGrid(3, 3, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	terrain := NewTerrain(g.N())
	if _, err := NewDomain(g, terrain, Switches{}, "inertial"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckFiniteDetectsEscape(t *testing.T) {
	g, err := NewGrid(2, 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	terrain := NewTerrain(g.N())
	d, err := NewDomain(g, terrain, Switches{}, "godunov")
	if err != nil {
		t.Fatal(err)
	}
	cells := NewCellState(g.N())
	cells.Qx[0] = math.NaN()

	if err := d.CheckFinite(cells); err == nil {
		t.Error("CheckFinite did not detect a NaN discharge")
	}
}

func TestRunToSyncStopsAtSync(t *testing.T) {
	g, err := NewGrid(5, 5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	terrain := NewTerrain(g.N())
	sw := Switches{Courant: 0.5}
	d, err := NewDomain(g, terrain, sw, "godunov")
	if err != nil {
		t.Fatal(err)
	}
	cur := NewCellState(g.N())
	next := NewCellState(g.N())
	for id := 0; id < g.N(); id++ {
		cur.Eta[id] = 10
	}

	cur, next, err = d.RunToSync(context.Background(), cur, next, 1.0)
	if err != nil {
		t.Fatalf("RunToSync returned error: %v", err)
	}
	if d.TS.T < 1.0-1e-6 {
		t.Errorf("T = %v, want advanced up to TSync = 1.0", d.TS.T)
	}
	_ = next
}

func TestRunToSyncHonorsContextCancellation(t *testing.T) {
	g, err := NewGrid(5, 5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	terrain := NewTerrain(g.N())
	d, err := NewDomain(g, terrain, Switches{}, "godunov")
	if err != nil {
		t.Fatal(err)
	}
	cur := NewCellState(g.N())
	next := NewCellState(g.N())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = d.RunToSync(ctx, cur, next, 100)
	if err == nil {
		t.Error("RunToSync did not propagate a cancelled context")
	}
}
