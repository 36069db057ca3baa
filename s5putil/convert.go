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
	"fmt"
	"strings"

	"github.com/atmosgrid/s5praster"
	"github.com/sirupsen/logrus"
)

// Convert downloads each input product as needed and runs the conversion
// pipeline over it, writing one masked raster per variable to outputDir.
// When outputDir is a blob storage location, outputs are staged locally
// and uploaded after all products have been processed. A failing product
// does not stop the remaining ones; the returned error names every
// product that failed.
func Convert(inputs, variables []string, outputDir string, cfg s5praster.ConvertConfig, c chan string) error {
	u, err := newUploader(outputDir)
	if err != nil {
		return err
	}

	var outputs []string
	var failed []string
	for _, input := range inputs {
		outs, err := convertOne(input, variables, u.dir, cfg, c)
		outputs = append(outputs, outs...)
		if err != nil {
			logrus.Errorf("converting %s: %v", input, err)
			failed = append(failed, fmt.Sprintf("%s: %v", input, err))
			continue
		}
		logrus.Infof("converted %s: %d raster(s)", input, len(outs))
	}

	if err := u.uploadOutput(outputs); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("s5praster: %d of %d product(s) failed: %s",
			len(failed), len(inputs), strings.Join(failed, "; "))
	}
	return nil
}

func convertOne(input string, variables []string, outputDir string, cfg s5praster.ConvertConfig, c chan string) ([]string, error) {
	local := maybeDownload(input, c)
	p, err := s5praster.OpenProduct(local)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return s5praster.Convert(p, variables, outputDir, cfg)
}
