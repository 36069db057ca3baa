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
	"strconv"

	"github.com/airbusgeo/godal"
)

const (
	// DefaultEPSG is the EPSG code of the default output reference system.
	DefaultEPSG = "4326"

	// DefaultNoData is the nodata sentinel written to output rasters.
	DefaultNoData = 9999

	// defaultDegreeResolution approximates 7000 m at the equator in
	// EPSG:4326 degrees.
	defaultDegreeResolution = 0.06288

	// defaultMeterResolution is the default sampling for projected
	// reference systems, in meters.
	defaultMeterResolution = 7000
)

// A WarpConfig describes the target grid of a reprojection.
type WarpConfig struct {
	// EPSG is the bare EPSG code of the target reference system,
	// e.g. "4326".
	EPSG string

	// Resolution is an explicit [x, y] sampling in target units. Empty
	// means the default sampling (~7000 m or its degree equivalent).
	Resolution []float64

	// NoData is the nodata sentinel for the output raster. Zero means
	// DefaultNoData.
	NoData float64
}

func (c WarpConfig) epsg() string {
	if c.EPSG == "" {
		return DefaultEPSG
	}
	return c.EPSG
}

func (c WarpConfig) noData() float64 {
	if c.NoData == 0 {
		return DefaultNoData
	}
	return c.NoData
}

// resolveResolution returns the x and y sampling for the target grid.
// Both axes are always assigned: the original tooling this replaces set
// the x resolution twice and left y to the driver, which is treated here
// as a defect rather than a behavior to keep.
func resolveResolution(epsg string, explicit []float64) (xRes, yRes float64, err error) {
	switch len(explicit) {
	case 0:
		if epsg == "4326" {
			return defaultDegreeResolution, defaultDegreeResolution, nil
		}
		return defaultMeterResolution, defaultMeterResolution, nil
	case 2:
		if explicit[0] <= 0 || explicit[1] <= 0 {
			return 0, 0, fmt.Errorf("s5praster: resolution values must be >0, got %v", explicit)
		}
		return explicit[0], explicit[1], nil
	default:
		return 0, 0, fmt.Errorf("s5praster: resolution must be an [x, y] pair, got %d values", len(explicit))
	}
}

// warpSwitches assembles the GDAL warp switches for resampling a
// geolocation-bound descriptor onto the target grid.
func warpSwitches(srcNoData float64, cfg WarpConfig) ([]string, error) {
	xRes, yRes, err := resolveResolution(cfg.epsg(), cfg.Resolution)
	if err != nil {
		return nil, err
	}
	return []string{
		"-geoloc",
		"-t_srs", "EPSG:" + cfg.epsg(),
		"-tr", formatFloat(xRes), formatFloat(yRes),
		"-srcnodata", formatFloat(srcNoData),
		"-dstnodata", formatFloat(cfg.noData()),
		"-of", "GTiff",
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Reproject warps the geolocation-bound descriptor at vrtPath onto the
// target grid described by cfg, writing a GeoTIFF at outPath. srcNoData
// is the source variable's fill value; variable is used only for error
// context.
func Reproject(vrtPath, outPath, variable string, srcNoData float64, cfg WarpConfig) error {
	switches, err := warpSwitches(srcNoData, cfg)
	if err != nil {
		return &ReprojectionError{Variable: variable, Err: err}
	}
	src, err := godal.Open(vrtPath)
	if err != nil {
		return &ReprojectionError{Variable: variable, Err: err}
	}
	defer src.Close()

	out, err := src.Warp(outPath, switches)
	if err != nil {
		return &ReprojectionError{Variable: variable, Err: err}
	}
	if err := out.Close(); err != nil {
		return &ReprojectionError{Variable: variable, Err: err}
	}
	return nil
}
