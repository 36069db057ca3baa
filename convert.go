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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// A ConvertConfig holds the parameters of a conversion run.
type ConvertConfig struct {
	// Warp describes the target grid.
	Warp WarpConfig

	// QualityVariable is the per-pixel quality indicator warped
	// alongside each data variable. Empty means
	// DefaultQualityVariable.
	QualityVariable string

	// QualityThreshold is the quality value at or below which output
	// pixels are masked out.
	QualityThreshold float64

	// NetCDF additionally exports each masked raster as a NetCDF
	// classic file next to the GeoTIFF.
	NetCDF bool
}

func (c ConvertConfig) qualityVariable() string {
	if c.QualityVariable == "" {
		return DefaultQualityVariable
	}
	return c.QualityVariable
}

// Convert runs the full pipeline for each of the given variables:
// geolocation extraction, descriptor construction, reprojection of the
// variable and its paired quality indicator onto the target grid, quality
// masking, and persistence of the masked GeoTIFF in outputDir. All
// intermediate files live in a per-run temporary directory that is
// removed on every exit path, so concurrent runs never collide.
//
// A failure while processing one variable does not stop the others; the
// paths of the rasters that were written are always returned, together
// with an error naming each variable that failed, if any.
func Convert(p *Product, variables []string, outputDir string, cfg ConvertConfig) ([]string, error) {
	tmpDir, err := ioutil.TempDir("", "s5praster")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	geo, err := p.ExtractGeolocation(tmpDir, cfg.Warp.epsg())
	if err != nil {
		return nil, err
	}

	// The quality indicator warps the same way for every variable.
	qaTIFF, err := p.warpVariable(cfg.qualityVariable(), tmpDir, geo, cfg.Warp)
	if err != nil {
		return nil, err
	}

	var outputs []string
	var failed []string
	for _, variable := range variables {
		out, err := p.convertVariable(variable, outputDir, tmpDir, geo, qaTIFF, cfg, len(outputs))
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", variable, err))
			continue
		}
		outputs = append(outputs, out)
	}
	if len(failed) > 0 {
		return outputs, fmt.Errorf("s5praster: converting %s: %s", p.Path, strings.Join(failed, "; "))
	}
	return outputs, nil
}

// warpVariable reprojects a single product variable onto the target grid,
// returning the path of the flat raster it wrote inside dir.
func (p *Product) warpVariable(variable, dir string, geo *Geolocation, warp WarpConfig) (string, error) {
	fill, err := p.FillValue(variable)
	if err != nil {
		return "", err
	}
	vrtPath := filepath.Join(dir, variable+".vrt")
	if err := WriteGeolocationVRT(vrtPath, p.SubdatasetPath(variable), geo); err != nil {
		return "", err
	}
	outPath := filepath.Join(dir, variable+".tif")
	if err := Reproject(vrtPath, outPath, variable, fill, warp); err != nil {
		return "", err
	}
	return outPath, nil
}

func (p *Product) convertVariable(variable, outputDir, tmpDir string, geo *Geolocation, qaTIFF string, cfg ConvertConfig, nDone int) (string, error) {
	dataTIFF, err := p.warpVariable(variable, tmpDir, geo, cfg.Warp)
	if err != nil {
		return "", err
	}

	outPath, err := p.OutputTIFF(outputDir)
	if err != nil {
		return "", err
	}
	// The output name is derived from the product filename, so a run
	// over several variables would otherwise write them all to the same
	// file; variables after the first get their name appended.
	if nDone > 0 {
		outPath = strings.TrimSuffix(outPath, ".tif") + "_" + variable + ".tif"
	}

	if err := ApplyQualityMask(dataTIFF, qaTIFF, outPath, cfg.QualityThreshold, cfg.Warp.noData()); err != nil {
		return "", err
	}

	if cfg.NetCDF {
		if err := p.exportNetCDF(outPath, variable, cfg.Warp.noData()); err != nil {
			return "", err
		}
	}
	return outPath, nil
}

func (p *Product) exportNetCDF(tiffPath, variable string, noData float64) error {
	grid, geom, err := ReadGrid(tiffPath)
	if err != nil {
		return err
	}
	ncPath := strings.TrimSuffix(tiffPath, filepath.Ext(tiffPath)) + ".nc"
	w, err := os.Create(ncPath)
	if err != nil {
		return err
	}
	defer w.Close()
	return WriteNetCDF(w, variable, grid, geom, noData)
}
