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
)

func TestResolveResolution(t *testing.T) {
	tests := []struct {
		epsg     string
		explicit []float64
		wantX    float64
		wantY    float64
		wantErr  bool
	}{
		{"4326", nil, 0.06288, 0.06288, false},
		{"3857", nil, 7000, 7000, false},
		{"4326", []float64{0.1, 0.2}, 0.1, 0.2, false},
		{"3857", []float64{3500, 7000}, 3500, 7000, false},
		{"4326", []float64{0.1}, 0, 0, true},
		{"4326", []float64{0.1, -0.2}, 0, 0, true},
	}
	for _, test := range tests {
		x, y, err := resolveResolution(test.epsg, test.explicit)
		if (err != nil) != test.wantErr {
			t.Errorf("resolveResolution(%q, %v): err = %v", test.epsg, test.explicit, err)
			continue
		}
		if x != test.wantX || y != test.wantY {
			t.Errorf("resolveResolution(%q, %v) = %g, %g; want %g, %g",
				test.epsg, test.explicit, x, y, test.wantX, test.wantY)
		}
	}
}

// The y resolution must always be assigned: the tooling this replaces
// set the x resolution twice and never y.
func TestResolveResolutionSetsBothAxes(t *testing.T) {
	x, y, err := resolveResolution("4326", []float64{0.5, 0.25})
	if err != nil {
		t.Fatal(err)
	}
	if x == y {
		t.Fatal("test wants distinct x and y inputs")
	}
	if y != 0.25 {
		t.Errorf("y resolution = %g; want 0.25", y)
	}
}

func TestWarpSwitches(t *testing.T) {
	switches, err := warpSwitches(9.96921e+36, WarpConfig{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"-geoloc",
		"-t_srs", "EPSG:4326",
		"-tr", "0.06288", "0.06288",
		"-srcnodata", "9.96921e+36",
		"-dstnodata", "9999",
		"-of", "GTiff",
	}
	if !reflect.DeepEqual(switches, want) {
		t.Errorf("have %v, want %v", switches, want)
	}
}

func TestWarpSwitchesProjected(t *testing.T) {
	switches, err := warpSwitches(255, WarpConfig{EPSG: "3857", NoData: -1})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"-geoloc",
		"-t_srs", "EPSG:3857",
		"-tr", "7000", "7000",
		"-srcnodata", "255",
		"-dstnodata", "-1",
		"-of", "GTiff",
	}
	if !reflect.DeepEqual(switches, want) {
		t.Errorf("have %v, want %v", switches, want)
	}
}
