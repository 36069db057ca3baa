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
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// WriteNetCDF writes a gridded variable to w as a NetCDF classic file.
// The grid geometry is recorded as global attributes (grid origin, cell
// size, projection) so the raster can be georeferenced by downstream
// tools that prefer NetCDF over GeoTIFF.
func WriteNetCDF(w *os.File, variable string, grid *sparse.DenseArray, g GridGeom, fillValue float64) error {
	if len(grid.Shape) != 2 || grid.Shape[0] != g.YSize || grid.Shape[1] != g.XSize {
		return fmt.Errorf("s5praster: grid shape %v does not match geometry %dx%d", grid.Shape, g.XSize, g.YSize)
	}
	h := cdf.NewHeader([]string{"y", "x"}, []int{g.YSize, g.XSize})
	h.AddAttribute("", "comment", "S5PRaster masked raster export")
	h.AddAttribute("", "x0", []float64{g.GeoTransform[0]})
	h.AddAttribute("", "y0", []float64{g.GeoTransform[3]})
	h.AddAttribute("", "dx", []float64{g.GeoTransform[1]})
	h.AddAttribute("", "dy", []float64{g.GeoTransform[5]})
	h.AddAttribute("", "projection", g.Projection)
	h.AddVariable(variable, []string{"y", "x"}, []float32{0})
	h.AddAttribute(variable, "_FillValue", []float32{float32(fillValue)})
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return err
	}
	if err := writeNCF(f, variable, grid); err != nil {
		return fmt.Errorf("s5praster: writing variable %s to netcdf file: %v", variable, err)
	}
	return cdf.UpdateNumRecs(w)
}

func writeNCF(f *cdf.File, Var string, data *sparse.DenseArray) error {
	// Check that data matches dimensions.
	n := 1
	for _, v := range data.Shape {
		n *= v
	}
	if len(data.Elements) != n {
		return fmt.Errorf("dims are %d but array length is %d", n, len(data.Elements))
	}

	data32 := make([]float32, len(data.Elements))
	for i, e := range data.Elements {
		data32[i] = float32(e)
	}
	end := f.Header.Lengths(Var)
	start := make([]int, len(end))
	w := f.Writer(Var, start, end)
	_, err := w.Write(data32)
	return err
}
