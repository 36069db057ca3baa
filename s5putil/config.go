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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
)

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}

// toFloat64Slice returns a []float64 from a viper configuration,
// accounting for the fact that it might be a json array or a string
// slice if it was set from a command line argument.
func toFloat64Slice(s interface{}) ([]float64, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case []float64:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		var o []float64
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		vs, err := cast.ToStringSliceE(s)
		if err != nil {
			return nil, err
		}
		o := make([]float64, len(vs))
		for i, val := range vs {
			if o[i], err = cast.ToFloat64E(val); err != nil {
				return nil, err
			}
		}
		return o, nil
	}
}

// checkFile ensures that the configuration variable name is set and
// expands any environment variables in it. Remote locations are allowed;
// they are checked when downloaded.
func checkFile(f, name string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("s5praster: you need to specify the %s configuration variable", name)
	}
	return os.ExpandEnv(f), nil
}

// checkOutputFile makes sure that the output file is specified and that
// its directory exists, and expands any environment variables.
func checkOutputFile(f, name string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("s5praster: you need to specify the %s configuration variable", name)
	}
	f = os.ExpandEnv(f)
	if IsBlob(f) {
		return f, nil
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("s5praster: the %s directory doesn't exist: %v", name, err)
	}
	return f, nil
}
