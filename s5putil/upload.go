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
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/go-cloud/blob"
)

// An uploader stages output files locally when the configured output
// directory is a blob storage location, and uploads them afterward.
type uploader struct {
	// dest is the blob storage directory outputs are uploaded to;
	// empty when outputs are written directly to local disk.
	dest string

	// dir is the local directory output files are written to.
	dir string
}

func newUploader(outputDir string) (*uploader, error) {
	u := &uploader{dir: outputDir}
	if IsBlob(outputDir) {
		u.dest = outputDir
		var err error
		u.dir, err = ioutil.TempDir("", "s5praster")
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	if _, err := os.Stat(u.dir); err != nil {
		return nil, fmt.Errorf("s5praster: the OutputDir directory doesn't exist: %v", err)
	}
	return u, nil
}

// uploadOutput uploads the given local files to the blob destination,
// keeping their base names. It is a no-op for local output directories.
func (u *uploader) uploadOutput(files []string) error {
	if u.dest == "" {
		return nil
	}
	ctx := context.TODO()
	dest, err := url.Parse(u.dest)
	if err != nil {
		return fmt.Errorf("s5putil: parsing url '%s' for upload: %s", u.dest, err)
	}
	bucket, err := OpenBucket(ctx, dest.Scheme+"://"+dest.Host)
	if err != nil {
		return fmt.Errorf("s5putil: opening bucket to upload outputs: %s", err)
	}
	prefix := strings.TrimPrefix(dest.Path, "/")
	for _, f := range files {
		r, err := os.Open(f)
		if err != nil {
			return fmt.Errorf("s5putil: opening file '%s' for upload: %s", f, err)
		}
		w, err := bucket.NewWriter(ctx, path.Join(prefix, filepath.Base(f)), &blob.WriterOptions{})
		if err != nil {
			r.Close()
			return fmt.Errorf("s5putil: opening writer to upload file '%s': %s", f, err)
		}
		if _, err := io.Copy(w, r); err != nil {
			r.Close()
			w.Close()
			return fmt.Errorf("s5putil: uploading file '%s' to '%s': %s", f, u.dest, err)
		}
		r.Close()
		if err := w.Close(); err != nil {
			return fmt.Errorf("s5putil: uploading file '%s' to '%s': %s", f, u.dest, err)
		}
	}
	return nil
}
