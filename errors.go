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

import "fmt"

// SourceError is returned when a source product cannot be opened or read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("s5praster: reading source product %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// MissingVariableError is returned when a requested variable does not
// exist in the source product, or when the product metadata is missing
// the variable's fill value.
type MissingVariableError struct {
	Variable string
	Path     string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("s5praster: variable %q not present in product %s", e.Variable, e.Path)
}

// ReprojectionError is returned when warping a variable onto the target
// grid fails.
type ReprojectionError struct {
	Variable string
	Err      error
}

func (e *ReprojectionError) Error() string {
	return fmt.Sprintf("s5praster: reprojecting %s: %v", e.Variable, e.Err)
}

func (e *ReprojectionError) Unwrap() error { return e.Err }

// GeometryMismatchError is returned when the data raster and the quality
// raster handed to the masking step do not share the same grid geometry.
type GeometryMismatchError struct {
	Data, Quality string // descriptions of the two grids
}

func (e *GeometryMismatchError) Error() string {
	return fmt.Sprintf("s5praster: grid geometry mismatch between data (%s) and quality (%s) rasters",
		e.Data, e.Quality)
}

// MergeError is returned when mosaicking output rasters fails.
type MergeError struct {
	Output string
	Err    error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("s5praster: merging into %s: %v", e.Output, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }
