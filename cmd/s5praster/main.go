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

// Command s5praster is a command-line interface for converting
// Sentinel-5P products to georeferenced rasters.
package main

import (
	"os"

	"github.com/airbusgeo/godal"
	"github.com/atmosgrid/s5praster/s5putil"
	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if lvl, err := logrus.ParseLevel(os.Getenv("S5P_LOGLEVEL")); err == nil {
		logrus.SetLevel(lvl)
	}
}

func main() {
	godal.RegisterAll()

	if err := s5putil.Root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
