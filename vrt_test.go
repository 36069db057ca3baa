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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testGeolocation() *Geolocation {
	return &Geolocation{
		LatPath: "/tmp/run/lat.vrt",
		LonPath: "/tmp/run/lon.vrt",
		XSize:   450,
		YSize:   3245,
	}
}

func TestGeolocationVRT(t *testing.T) {
	geo := testGeolocation()
	d := geolocationVRT(`HDF5:"f.nc"://PRODUCT/qa_value`, geo)

	if d.RasterXSize != 450 || d.RasterYSize != 3245 {
		t.Errorf("raster size %dx%d; want 450x3245", d.RasterXSize, d.RasterYSize)
	}
	if d.Metadata.Domain != "GEOLOCATION" {
		t.Errorf("metadata domain %q", d.Metadata.Domain)
	}
	want := map[string]string{
		"X_DATASET":    geo.LonPath,
		"X_BAND":       "1",
		"Y_DATASET":    geo.LatPath,
		"Y_BAND":       "1",
		"PIXEL_OFFSET": "0",
		"LINE_OFFSET":  "0",
		"PIXEL_STEP":   "1",
		"LINE_STEP":    "1",
	}
	have := make(map[string]string)
	for _, mdi := range d.Metadata.Items {
		have[mdi.Key] = mdi.Value
	}
	for k, v := range want {
		if have[k] != v {
			t.Errorf("%s = %q; want %q", k, have[k], v)
		}
	}
	if d.Band.DataType != "Float32" || d.Band.Band != 1 {
		t.Errorf("band %d type %s; want band 1 Float32", d.Band.Band, d.Band.DataType)
	}
	src := d.Band.Source
	if src.SourceFilename.RelativeToVRT != 0 {
		t.Error("source filename must be absolute")
	}
	if src.SrcRect != (vrtRect{XSize: 450, YSize: 3245}) {
		t.Errorf("SrcRect = %+v", src.SrcRect)
	}
	if src.DstRect != src.SrcRect {
		t.Errorf("DstRect %+v != SrcRect %+v", src.DstRect, src.SrcRect)
	}
}

func TestWriteGeolocationVRT(t *testing.T) {
	dir, err := ioutil.TempDir("", "s5praster_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "temp_s5p.vrt")
	source := `HDF5:"f.nc"://PRODUCT/nitrogendioxide_tropospheric_column`
	if err := WriteGeolocationVRT(path, source, testGeolocation()); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{
		`<VRTDataset rasterXSize="450" rasterYSize="3245">`,
		`<Metadata domain="GEOLOCATION">`,
		`<MDI key="X_DATASET">/tmp/run/lon.vrt</MDI>`,
		`<MDI key="PIXEL_STEP">1</MDI>`,
		`<VRTRasterBand band="1" dataType="Float32">`,
		`://PRODUCT/nitrogendioxide_tropospheric_column</SourceFilename>`,
		`<SrcRect xOff="0" yOff="0" xSize="450" ySize="3245">`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("descriptor missing %q:\n%s", want, s)
		}
	}
}
