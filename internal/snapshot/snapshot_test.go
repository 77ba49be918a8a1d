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

package snapshot

import (
	"bytes"
	"testing"

	"github.com/ctessum-labs/shallowmap"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cells := shallowmap.NewCellState(4)
	cells.Eta[1] = 3.5
	cells.Qx[2] = 1.25

	var buf bytes.Buffer
	if err := Save(&buf, 12.5, cells); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := shallowmap.NewCellState(4)
	tOut, err := Load(&buf, loaded)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tOut != 12.5 {
		t.Errorf("t = %v, want 12.5", tOut)
	}
	if loaded.Eta[1] != 3.5 || loaded.Qx[2] != 1.25 {
		t.Errorf("loaded cells = %+v, want round-tripped values", loaded)
	}
}

func TestLoadRejectsCellCountMismatch(t *testing.T) {
	cells := shallowmap.NewCellState(4)
	var buf bytes.Buffer
	if err := Save(&buf, 0, cells); err != nil {
		t.Fatalf("Save: %v", err)
	}

	wrongSize := shallowmap.NewCellState(5)
	if _, err := Load(&buf, wrongSize); err == nil {
		t.Error("Load did not reject a cell-count mismatch")
	}
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	var buf bytes.Buffer
	// Overwrite the version string in a saved stream with another string
	// of the same length, so the record still decodes but its Version
	// field mismatches formatVersion.
	if err := Save(&buf, 0, shallowmap.NewCellState(1)); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()
	corrupted := bytes.Replace(raw, []byte(formatVersion), []byte("bogus-snapshot-version"), 1)
	if bytes.Equal(raw, corrupted) {
		t.Skip("version string not found verbatim in gob stream; nothing to corrupt")
	}
	if _, err := Load(bytes.NewReader(corrupted), shallowmap.NewCellState(1)); err == nil {
		t.Error("Load did not reject a mismatched snapshot version")
	}
}
