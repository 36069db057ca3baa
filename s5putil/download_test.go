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

package s5putil

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func helperLog(t *testing.T) chan string {
	outChan := make(chan string)
	go func() {
		for {
			msg := <-outChan
			t.Log(msg)
		}
	}()
	return outChan
}

func TestMaybeDownloadLocal(t *testing.T) {
	if k := maybeDownload("/dev/null", helperLog(t)); k != "/dev/null" {
		t.Error("Expected /dev/null, got ", k)
	}
}

func TestMaybeDownloadLocal2(t *testing.T) {
	if k := maybeDownload("/blah/test/", helperLog(t)); k != "/blah/test/" {
		t.Error("Expected /blah/test/, got ", k)
	}
}

func TestMaybeDownloadRemote(t *testing.T) {
	dir, err := ioutil.TempDir("", "s5putil_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	const name = "S5P_OFFL_L2__NO2____20210101T120000_20210101T134130_16773_01_010400_20210103T074855.nc"
	if err := ioutil.WriteFile(filepath.Join(dir, name), []byte("not a real product"), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	k := maybeDownload(srv.URL+"/"+name, helperLog(t))
	if !strings.HasSuffix(k, name) || k == srv.URL+"/"+name {
		t.Error("Expected tempDir/"+name+", got ", k)
	}
	b, err := ioutil.ReadFile(k)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "not a real product" {
		t.Errorf("downloaded content %q", b)
	}
}

func TestMaybeDownloadRemoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	// A failed download returns the original path so the error surfaces
	// when the file is opened.
	if k := maybeDownload(srv.URL+"/missing.nc", helperLog(t)); k != srv.URL+"/missing.nc" {
		t.Error("Expected the original URL, got ", k)
	}
}

func TestIsBlob(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"gs://bucket/f.nc", true},
		{"s3://bucket/f.nc", true},
		{"file://dir/f.nc", true},
		{"https://example.com/f.nc", false},
		{"/data/f.nc", false},
	}
	for _, test := range tests {
		if have := IsBlob(test.path); have != test.want {
			t.Errorf("IsBlob(%q) = %v; want %v", test.path, have, test.want)
		}
	}
}
