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
	"errors"
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

func denseFrom(vals []float64, ny, nx int) *sparse.DenseArray {
	a := sparse.ZerosDense(ny, nx)
	copy(a.Elements, vals)
	return a
}

func TestMaskGrid(t *testing.T) {
	data := denseFrom([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	qa := denseFrom([]float64{0, 75, 75.0001, 76, 100, 74.9999}, 2, 3)

	masked, err := maskGrid(data, qa, 75)
	if err != nil {
		t.Fatal(err)
	}

	// qa <= 75 masks the pixel; qa > 75 keeps the value exactly.
	wantNaN := []bool{true, true, false, false, false, true}
	for i, nan := range wantNaN {
		if math.IsNaN(masked.Elements[i]) != nan {
			t.Errorf("pixel %d: masked = %v; want %v (qa=%g)", i, masked.Elements[i], nan, qa.Elements[i])
		}
		if !nan && masked.Elements[i] != data.Elements[i] {
			t.Errorf("pixel %d: value %g changed from %g", i, masked.Elements[i], data.Elements[i])
		}
	}
}

func TestMaskGridIdempotent(t *testing.T) {
	data := denseFrom([]float64{1, 2, 3, 4}, 2, 2)
	qa := denseFrom([]float64{100, 50, 80, 75}, 2, 2)

	once, err := maskGrid(data, qa, 75)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := maskGrid(once, qa, 75)
	if err != nil {
		t.Fatal(err)
	}
	for i := range once.Elements {
		a, b := once.Elements[i], twice.Elements[i]
		if math.IsNaN(a) != math.IsNaN(b) || (!math.IsNaN(a) && a != b) {
			t.Errorf("pixel %d: %g != %g after second masking", i, a, b)
		}
	}
}

func TestMaskGridShapeMismatch(t *testing.T) {
	data := sparse.ZerosDense(2, 3)
	qa := sparse.ZerosDense(3, 2)

	_, err := maskGrid(data, qa, 75)
	var gme *GeometryMismatchError
	if !errors.As(err, &gme) {
		t.Fatalf("expected GeometryMismatchError, got %v", err)
	}
}

func TestEqualGeom(t *testing.T) {
	a := GridGeom{
		XSize:        10,
		YSize:        20,
		GeoTransform: [6]float64{-180, 0.06288, 0, 90, 0, -0.06288},
		Projection:   "WGS 84",
	}
	if !equalGeom(a, a) {
		t.Error("geometry should equal itself")
	}
	b := a
	b.GeoTransform[1] = 0.1
	if equalGeom(a, b) {
		t.Error("differing geotransforms should not compare equal")
	}
	c := a
	c.YSize++
	if equalGeom(a, c) {
		t.Error("differing sizes should not compare equal")
	}
}
