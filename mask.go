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
	"math"

	"github.com/airbusgeo/godal"
	"github.com/ctessum/sparse"
)

const (
	// DefaultQualityVariable is the per-pixel quality indicator paired
	// with each data variable in Sentinel-5P products.
	DefaultQualityVariable = "qa_value"

	// DefaultQualityThreshold is the quality value at or below which a
	// pixel is discarded.
	DefaultQualityThreshold = 75
)

// A GridGeom describes the geometry of a regular output grid.
type GridGeom struct {
	XSize, YSize int
	GeoTransform [6]float64
	Projection   string
}

func (g GridGeom) String() string {
	return fmt.Sprintf("%dx%d gt=%v", g.XSize, g.YSize, g.GeoTransform)
}

// equalGeom reports whether two grids are pixel-aligned. Both grids come
// out of the same warp parameters, so their geotransforms are expected to
// match bit-for-bit.
func equalGeom(a, b GridGeom) bool {
	return a.XSize == b.XSize && a.YSize == b.YSize &&
		a.GeoTransform == b.GeoTransform && a.Projection == b.Projection
}

// maskGrid applies the quality threshold to data: wherever the quality
// indicator is at or below threshold the output pixel becomes NaN,
// otherwise the input value is kept exactly. Masking an already-masked
// grid with the same threshold yields the same result, because NaN
// compares false against any threshold.
func maskGrid(data, qa *sparse.DenseArray, threshold float64) (*sparse.DenseArray, error) {
	if !equalShape(data.Shape, qa.Shape) {
		return nil, &GeometryMismatchError{
			Data:    fmt.Sprintf("shape %v", data.Shape),
			Quality: fmt.Sprintf("shape %v", qa.Shape),
		}
	}
	o := sparse.ZerosDense(data.Shape...)
	for i, v := range data.Elements {
		if qa.Elements[i] <= threshold {
			o.Elements[i] = math.NaN()
		} else {
			o.Elements[i] = v
		}
	}
	return o, nil
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}

// ReadGrid reads the first band of the raster at path into a dense array
// along with the grid's geometry.
func ReadGrid(path string) (*sparse.DenseArray, GridGeom, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, GridGeom{}, &SourceError{Path: path, Err: err}
	}
	defer ds.Close()

	st := ds.Structure()
	geom := GridGeom{XSize: st.SizeX, YSize: st.SizeY, Projection: ds.Projection()}
	geom.GeoTransform, err = ds.GeoTransform()
	if err != nil {
		return nil, GridGeom{}, &SourceError{Path: path, Err: err}
	}

	buf := make([]float64, st.SizeX*st.SizeY)
	if err := ds.Bands()[0].Read(0, 0, buf, st.SizeX, st.SizeY); err != nil {
		return nil, GridGeom{}, &SourceError{Path: path, Err: err}
	}
	arr := sparse.ZerosDense(st.SizeY, st.SizeX)
	copy(arr.Elements, buf)
	return arr, geom, nil
}

// WriteGrid writes the dense array as a single-band Float32 GeoTIFF at
// path with the given grid geometry and nodata sentinel.
func WriteGrid(path string, grid *sparse.DenseArray, geom GridGeom, noData float64) error {
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, geom.XSize, geom.YSize)
	if err != nil {
		return err
	}
	if err := ds.SetGeoTransform(geom.GeoTransform); err != nil {
		ds.Close()
		return err
	}
	if geom.Projection != "" {
		if err := ds.SetProjection(geom.Projection); err != nil {
			ds.Close()
			return err
		}
	}
	band := ds.Bands()[0]
	if err := band.SetNoData(noData); err != nil {
		ds.Close()
		return err
	}
	if err := band.Write(0, 0, grid.Elements, geom.XSize, geom.YSize); err != nil {
		ds.Close()
		return err
	}
	return ds.Close()
}

// ApplyQualityMask reads the data and quality rasters, verifies that they
// share the same grid geometry, applies the quality threshold, and writes
// the masked result to outPath with the data raster's georeferencing
// copied verbatim.
func ApplyQualityMask(dataPath, qaPath, outPath string, threshold, noData float64) error {
	data, dataGeom, err := ReadGrid(dataPath)
	if err != nil {
		return err
	}
	qa, qaGeom, err := ReadGrid(qaPath)
	if err != nil {
		return err
	}
	if !equalGeom(dataGeom, qaGeom) {
		return &GeometryMismatchError{Data: dataGeom.String(), Quality: qaGeom.String()}
	}
	masked, err := maskGrid(data, qa, threshold)
	if err != nil {
		return err
	}
	return WriteGrid(outPath, masked, dataGeom, noData)
}
