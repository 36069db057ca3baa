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
	"path/filepath"

	"github.com/airbusgeo/godal"
)

// A Geolocation holds the extracted latitude and longitude arrays of a
// product swath, persisted as virtual raster files. It is valid for the
// duration of one conversion run; the files live in a per-run directory
// and are removed with it.
type Geolocation struct {
	LatPath, LonPath string

	// XSize and YSize are the swath dimensions shared by the
	// geolocation arrays and every data variable.
	XSize, YSize int
}

// ExtractGeolocation translates the product's latitude and longitude
// variables into virtual rasters inside dir, tagged with the target
// spatial reference system. epsg is a bare EPSG code such as "4326".
func (p *Product) ExtractGeolocation(dir, epsg string) (*Geolocation, error) {
	switches := []string{"-of", "VRT", "-a_srs", "EPSG:" + epsg}

	g := &Geolocation{
		LatPath: filepath.Join(dir, "lat.vrt"),
		LonPath: filepath.Join(dir, "lon.vrt"),
	}

	latDS, err := p.translateVariable("latitude", g.LatPath, switches)
	if err != nil {
		return nil, err
	}
	st := latDS.Structure()
	g.XSize, g.YSize = st.SizeX, st.SizeY
	if err := latDS.Close(); err != nil {
		return nil, &SourceError{Path: p.Path, Err: err}
	}

	lonDS, err := p.translateVariable("longitude", g.LonPath, switches)
	if err != nil {
		return nil, err
	}
	if err := lonDS.Close(); err != nil {
		return nil, &SourceError{Path: p.Path, Err: err}
	}
	return g, nil
}

func (p *Product) translateVariable(variable, dst string, switches []string) (*godal.Dataset, error) {
	src, err := godal.Open(p.SubdatasetPath(variable))
	if err != nil {
		return nil, &MissingVariableError{Variable: variable, Path: p.Path}
	}
	defer src.Close()

	out, err := src.Translate(dst, switches)
	if err != nil {
		return nil, &SourceError{Path: p.Path, Err: err}
	}
	return out, nil
}
