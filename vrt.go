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
	"encoding/xml"
	"io/ioutil"
)

// The types below mirror the subset of GDAL's VRT schema needed to bind a
// swath variable to its geolocation arrays. The GEOLOCATION metadata
// domain declares a one-to-one pixel mapping (step 1, offset 0) between
// the data array and the latitude/longitude arrays, which all share the
// swath's dimensions.

type vrtDataset struct {
	XMLName     xml.Name      `xml:"VRTDataset"`
	RasterXSize int           `xml:"rasterXSize,attr"`
	RasterYSize int           `xml:"rasterYSize,attr"`
	Metadata    vrtMetadata   `xml:"Metadata"`
	Band        vrtRasterBand `xml:"VRTRasterBand"`
}

type vrtMetadata struct {
	Domain string   `xml:"domain,attr"`
	Items  []vrtMDI `xml:"MDI"`
}

type vrtMDI struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type vrtRasterBand struct {
	Band     int          `xml:"band,attr"`
	DataType string       `xml:"dataType,attr"`
	Source   simpleSource `xml:"SimpleSource"`
}

type simpleSource struct {
	SourceFilename   sourceFilename   `xml:"SourceFilename"`
	SourceBand       int              `xml:"SourceBand"`
	SourceProperties sourceProperties `xml:"SourceProperties"`
	SrcRect          vrtRect          `xml:"SrcRect"`
	DstRect          vrtRect          `xml:"DstRect"`
}

type sourceFilename struct {
	RelativeToVRT int    `xml:"relativeToVRT,attr"`
	Name          string `xml:",chardata"`
}

type sourceProperties struct {
	RasterXSize int    `xml:"RasterXSize,attr"`
	RasterYSize int    `xml:"RasterYSize,attr"`
	DataType    string `xml:"DataType,attr"`
	BlockXSize  int    `xml:"BlockXSize,attr"`
	BlockYSize  int    `xml:"BlockYSize,attr"`
}

type vrtRect struct {
	XOff  int `xml:"xOff,attr"`
	YOff  int `xml:"yOff,attr"`
	XSize int `xml:"xSize,attr"`
	YSize int `xml:"ySize,attr"`
}

// geolocationVRT builds the descriptor binding the variable subdataset at
// source to the geolocation arrays in geo. The named variable is not
// checked for existence here; a bad name surfaces when the descriptor is
// warped.
func geolocationVRT(source string, geo *Geolocation) *vrtDataset {
	return &vrtDataset{
		RasterXSize: geo.XSize,
		RasterYSize: geo.YSize,
		Metadata: vrtMetadata{
			Domain: "GEOLOCATION",
			Items: []vrtMDI{
				{Key: "X_DATASET", Value: geo.LonPath},
				{Key: "X_BAND", Value: "1"},
				{Key: "Y_DATASET", Value: geo.LatPath},
				{Key: "Y_BAND", Value: "1"},
				{Key: "PIXEL_OFFSET", Value: "0"},
				{Key: "LINE_OFFSET", Value: "0"},
				{Key: "PIXEL_STEP", Value: "1"},
				{Key: "LINE_STEP", Value: "1"},
			},
		},
		Band: vrtRasterBand{
			Band:     1,
			DataType: "Float32",
			Source: simpleSource{
				SourceFilename: sourceFilename{RelativeToVRT: 0, Name: source},
				SourceBand:     1,
				SourceProperties: sourceProperties{
					RasterXSize: geo.XSize,
					RasterYSize: geo.YSize,
					DataType:    "Float32",
					BlockXSize:  geo.XSize,
					BlockYSize:  geo.YSize,
				},
				SrcRect: vrtRect{XSize: geo.XSize, YSize: geo.YSize},
				DstRect: vrtRect{XSize: geo.XSize, YSize: geo.YSize},
			},
		},
	}
}

// WriteGeolocationVRT writes a virtual raster descriptor to path that
// binds the variable subdataset at source to the geolocation arrays in
// geo.
func WriteGeolocationVRT(path, source string, geo *Geolocation) error {
	b, err := xml.MarshalIndent(geolocationVRT(source, geo), "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, append(b, '\n'), 0644)
}
