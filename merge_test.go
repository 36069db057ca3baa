/*
Copyright © 2021 the S5PRaster authors.
This file is part of S5PRaster.

S5PRaster is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

S5PRaster is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with S5PRaster.  If not, see <http://www.gnu.org/licenses/>.
*/

package s5praster

import (
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestGridBounds(t *testing.T) {
	// A north-up grid: origin at the top-left corner, negative y cell
	// size.
	g := GridGeom{
		XSize:        100,
		YSize:        50,
		GeoTransform: [6]float64{-10, 0.1, 0, 60, 0, -0.2},
	}
	b := gridBounds(g)
	want := &geom.Bounds{
		Min: geom.Point{X: -10, Y: 50},
		Max: geom.Point{X: 0, Y: 60},
	}
	if !reflect.DeepEqual(b, want) {
		t.Errorf("have %+v, want %+v", b, want)
	}
}

func TestGridBoundsUnion(t *testing.T) {
	a := gridBounds(GridGeom{XSize: 10, YSize: 10, GeoTransform: [6]float64{0, 1, 0, 10, 0, -1}})
	b := gridBounds(GridGeom{XSize: 10, YSize: 10, GeoTransform: [6]float64{5, 1, 0, 15, 0, -1}})
	a.Extend(b)
	want := &geom.Bounds{
		Min: geom.Point{X: 0, Y: 0},
		Max: geom.Point{X: 15, Y: 15},
	}
	if !reflect.DeepEqual(a, want) {
		t.Errorf("have %+v, want %+v", a, want)
	}
}

func TestMergeSwitches(t *testing.T) {
	extent := &geom.Bounds{
		Min: geom.Point{X: -10, Y: 50},
		Max: geom.Point{X: 0, Y: 60},
	}
	switches := mergeSwitches(extent, MergeConfig{})
	want := []string{
		"-of", "GTiff",
		"-te", "-10", "50", "0", "60",
		"-dstnodata", "9999",
		"-wo", "INIT_DEST=255",
	}
	if !reflect.DeepEqual(switches, want) {
		t.Errorf("have %v, want %v", switches, want)
	}
}

func TestMergeNoInputs(t *testing.T) {
	err := Merge(nil, "out.tif", MergeConfig{})
	if err == nil {
		t.Fatal("expected error for empty input list")
	}
	if _, ok := err.(*MergeError); !ok {
		t.Errorf("expected MergeError, got %T", err)
	}
}
