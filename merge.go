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

	"github.com/airbusgeo/godal"
	"github.com/ctessum/geom"
)

// DefaultMergeInit is the value mosaic pixels are initialized to before
// the inputs are pasted in.
const DefaultMergeInit = 255

// A MergeConfig describes a mosaic operation.
type MergeConfig struct {
	// Init is the value the output is initialized to. Zero means
	// DefaultMergeInit.
	Init float64

	// NoData is the mosaic's nodata sentinel. Zero means DefaultNoData.
	NoData float64
}

func (c MergeConfig) init() float64 {
	if c.Init == 0 {
		return DefaultMergeInit
	}
	return c.Init
}

func (c MergeConfig) noData() float64 {
	if c.NoData == 0 {
		return DefaultNoData
	}
	return c.NoData
}

// gridBounds returns the georeferenced extent of a grid.
func gridBounds(g GridGeom) *geom.Bounds {
	gt := g.GeoTransform
	w, h := float64(g.XSize), float64(g.YSize)
	x0, y0 := gt[0], gt[3]
	x1 := gt[0] + gt[1]*w + gt[2]*h
	y1 := gt[3] + gt[4]*w + gt[5]*h
	b := geom.NewBounds()
	b.Min = geom.Point{X: min(x0, x1), Y: min(y0, y1)}
	b.Max = geom.Point{X: max(x0, x1), Y: max(y0, y1)}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// mergeSwitches assembles the GDAL warp switches for a mosaic covering
// extent.
func mergeSwitches(extent *geom.Bounds, cfg MergeConfig) []string {
	return []string{
		"-of", "GTiff",
		"-te", formatFloat(extent.Min.X), formatFloat(extent.Min.Y),
		formatFloat(extent.Max.X), formatFloat(extent.Max.Y),
		"-dstnodata", formatFloat(cfg.noData()),
		"-wo", "INIT_DEST=" + formatFloat(cfg.init()),
	}
}

// Merge mosaics the input rasters into a single GeoTIFF at output. The
// mosaic covers the union of the input extents; inputs are pasted in
// order, so later inputs win where they overlap. One input merged with
// itself leaves the pixel values unchanged.
func Merge(inputs []string, output string, cfg MergeConfig) error {
	if len(inputs) == 0 {
		return &MergeError{Output: output, Err: fmt.Errorf("no input rasters")}
	}

	datasets := make([]*godal.Dataset, 0, len(inputs))
	defer func() {
		for _, ds := range datasets {
			ds.Close()
		}
	}()

	extent := geom.NewBounds()
	for _, in := range inputs {
		ds, err := godal.Open(in)
		if err != nil {
			return &MergeError{Output: output, Err: fmt.Errorf("opening %s: %v", in, err)}
		}
		datasets = append(datasets, ds)

		gt, err := ds.GeoTransform()
		if err != nil {
			return &MergeError{Output: output, Err: fmt.Errorf("reading geotransform of %s: %v", in, err)}
		}
		st := ds.Structure()
		extent.Extend(gridBounds(GridGeom{XSize: st.SizeX, YSize: st.SizeY, GeoTransform: gt}))
	}

	out, err := godal.Warp(output, datasets, mergeSwitches(extent, cfg))
	if err != nil {
		return &MergeError{Output: output, Err: err}
	}
	if err := out.Close(); err != nil {
		return &MergeError{Output: output, Err: err}
	}
	return nil
}
