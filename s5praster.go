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

// Package s5praster converts Sentinel-5P level-2 swath products into
// georeferenced rasters. Each requested variable is bound to the product's
// latitude/longitude geolocation arrays through a virtual raster
// descriptor, warped onto a regular grid in a target coordinate reference
// system, and masked by the product's quality indicator before being
// written out as GeoTIFF. The heavy lifting (swath resampling,
// reprojection, raster I/O) is delegated to GDAL through
// github.com/airbusgeo/godal; this package supplies the descriptors, the
// masking policy, and the orchestration around them.
package s5praster

// Version gives the version number of this version of S5PRaster.
const Version = "1.2.1"
