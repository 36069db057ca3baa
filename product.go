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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/airbusgeo/godal"
)

// Positions of the fixed-width fields in a standard Sentinel-5P product
// filename (e.g. "S5P_OFFL_L2__NO2____20210101T120000_..."). The filename
// convention is owned by the data provider; these offsets are an external
// contract, not something this package is free to change.
const (
	varTokenStart   = 13
	varTokenEnd     = 20
	timestampStart  = 20
	timestampEnd    = 35
	minFilenameLen  = timestampEnd
	productGroup    = "PRODUCT"
	fillValueSuffix = "__FillValue"
)

// A Product is an open Sentinel-5P level-2 file. The file is accessed
// through GDAL's HDF5 driver; individual variables are addressed as
// subdatasets within the PRODUCT group.
type Product struct {
	// Path is the location of the product file on local disk.
	Path string

	ds       *godal.Dataset
	metadata map[string]string
}

// OpenProduct opens the product file at path.
func OpenProduct(path string) (*Product, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return &Product{
		Path:     path,
		ds:       ds,
		metadata: ds.Metadatas(),
	}, nil
}

// Close releases the underlying dataset.
func (p *Product) Close() error {
	if p.ds == nil {
		return nil
	}
	err := p.ds.Close()
	p.ds = nil
	return err
}

// SubdatasetPath returns the GDAL subdataset name addressing the given
// variable within the product's PRODUCT group.
func (p *Product) SubdatasetPath(variable string) string {
	return fmt.Sprintf("HDF5:\"%s\"://%s/%s", p.Path, productGroup, variable)
}

// FillValue returns the fill (nodata) value recorded in the product
// metadata for the given variable. A missing metadata key means the
// variable is not part of the product, so a MissingVariableError is
// returned rather than letting the warp step fail with a driver message.
func (p *Product) FillValue(variable string) (float64, error) {
	return fillValueFromMetadata(p.metadata, variable, p.Path)
}

func fillValueFromMetadata(md map[string]string, variable, path string) (float64, error) {
	key := productGroup + "_" + variable + fillValueSuffix
	v, ok := md[key]
	if !ok {
		return 0, &MissingVariableError{Variable: variable, Path: path}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("s5praster: parsing fill value %q for variable %s: %v", v, variable, err)
	}
	return f, nil
}

// VarToken extracts the short variable-name token from a standard product
// filename, with padding underscores stripped.
func VarToken(filename string) string {
	if len(filename) < varTokenEnd {
		return ""
	}
	return strings.Replace(filename[varTokenStart:varTokenEnd], "_", "", -1)
}

// TimestampToken extracts the sensing-start timestamp token from a
// standard product filename.
func TimestampToken(filename string) string {
	if len(filename) < timestampEnd {
		return ""
	}
	return filename[timestampStart:timestampEnd]
}

// OutputPath derives the output raster path for the product file named by
// filename: <outputDir>/<varToken>_<timestamp><ext>. The extension should
// include the leading dot.
func OutputPath(outputDir, filename, ext string) (string, error) {
	base := filepath.Base(filename)
	if len(base) < minFilenameLen {
		return "", fmt.Errorf("s5praster: product filename %q is shorter than the %d characters the naming convention requires", base, minFilenameLen)
	}
	return filepath.Join(outputDir, VarToken(base)+"_"+TimestampToken(base)+ext), nil
}

// OutputTIFF derives the GeoTIFF output path for the product.
func (p *Product) OutputTIFF(outputDir string) (string, error) {
	return OutputPath(outputDir, p.Path, ".tif")
}
