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
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cenkalti/backoff"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
)

// maybeDownload checks if the input is an existing file locally.
// If not, it checks if the file is a URL or a blob storage location,
// downloads it, and returns the path to the downloaded file. Products
// are single files, so no companion files are fetched. c, if not nil,
// is a channel across which error and logging messages will be sent.
func maybeDownload(path string, c chan string) string {
	// Check if local file exists. If it does, return the given path.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return downloadHTTP(path, c)
	}

	if IsBlob(path) {
		return downloadBlob(context.TODO(), path, c)
	}

	return path
}

// downloadHTTP downloads a file from the specified URL and returns
// the path to the downloaded file. Transient failures are retried with
// exponential backoff.
func downloadHTTP(path string, c chan string) string {
	dir, err := ioutil.TempDir("", "s5praster")
	if err != nil {
		panic(fmt.Errorf("s5putil: failed creating temporary download directory: %v", err))
	}
	local := filepath.Join(dir, filepath.Base(path))

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = time.Minute

	err = backoff.RetryNotify(
		func() error {
			w, err := os.Create(local)
			if err != nil {
				return err
			}
			defer w.Close()
			resp, err := http.Get(path)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				// The server answered; asking again won't change its mind.
				return backoff.Permanent(fmt.Errorf("downloading %s: %s", path, resp.Status))
			}
			_, err = io.Copy(w, resp.Body)
			return err
		},
		bo,
		func(err error, d time.Duration) {
			if c != nil {
				c <- fmt.Sprintf("retrying download of %s in %v after error: %v", path, d, err)
			}
		},
	)
	if err != nil {
		if c != nil {
			c <- err.Error()
		}
		return path
	}
	return local
}

// IsBlob returns whether the given filename represents a blob.
// (i.e., if it starts with `gs://`, 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// where bucketName must be in the format 'provider://name' where provider
// is the name of the storage provider and name is the name of the bucket.
// The currently accepted storage providers are "file" for the local
// filesystem (e.g., for testing), "gs" for Google Cloud Storage, and
// "s3" for AWS S3.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	url, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("s5putil.OpenBucket: %v", err)
	}
	switch url.Scheme {
	case "file":
		return fileblob.NewBucket(url.Hostname())
	case "gs":
		return gsBucket(ctx, url.Hostname())
	case "s3":
		return s3Bucket(ctx, url.Hostname())
	default:
		return nil, fmt.Errorf("s5putil.OpenBucket: invalid provider %s", url.Scheme)
	}
}

func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	// See here for information on credentials:
	// https://cloud.google.com/docs/authentication/getting-started
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, name, c)
}

// s3Bucket opens an s3 storage bucket. It assumes the following
// environment variables are set: AWS_REGION, AWS_ACCESS_KEY_ID, and
// AWS_SECRET_ACCESS_KEY.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	c := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	s := session.Must(session.NewSession(c))
	return s3blob.OpenBucket(ctx, s, name)
}

// downloadBlob downloads the specified file from blob storage.
func downloadBlob(ctx context.Context, path string, c chan string) string {
	url, err := url.Parse(path)
	if err != nil {
		if c != nil {
			c <- err.Error()
		}
		return path
	}
	bucket, err := OpenBucket(ctx, url.Scheme+"://"+url.Host)
	if err != nil {
		if c != nil {
			c <- err.Error()
		}
		return path
	}
	dir, err := ioutil.TempDir("", "s5praster")
	if err != nil {
		panic(fmt.Errorf("s5putil: failed creating temporary download directory: %v", err))
	}
	local := filepath.Join(dir, filepath.Base(url.Path))
	w, err := os.Create(local)
	if err != nil {
		panic(fmt.Errorf("s5putil: failed creating file for download: %v", err))
	}
	defer w.Close()
	r, err := bucket.NewReader(ctx, strings.TrimPrefix(url.Path, "/"))
	if err != nil {
		if c != nil {
			c <- err.Error()
		}
		return path
	}
	defer r.Close()
	if _, err := io.Copy(w, r); err != nil {
		if c != nil {
			c <- err.Error()
		}
		return path
	}
	return local
}
