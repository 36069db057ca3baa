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

// Package s5putil holds the command-line interface and configuration
// handling for the s5praster command.
package s5putil

import (
	"fmt"
	"os"

	"github.com/atmosgrid/s5praster"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to S5PRaster.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFiles",
			usage: `
              InputFiles is the list of Sentinel-5P product files (.nc) to
              convert. Each entry may be a local path, an http(s) URL, or a
              blob storage location (gs://, s3://, file://); remote files
              are downloaded before processing.`,
			shorthand:  "i",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory output rasters are written to.
              A blob storage location (gs://, s3://, file://) causes the
              outputs to be staged locally and uploaded afterward.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Variables",
			usage: `
              Variables is the list of product variables to convert, named
              as they appear in the product's PRODUCT group.`,
			defaultVal: []string{"nitrogendioxide_tropospheric_column"},
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "QualityVariable",
			usage: `
              QualityVariable is the per-pixel quality indicator warped
              alongside each data variable and compared against
              QualityThreshold.`,
			defaultVal: s5praster.DefaultQualityVariable,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "QualityThreshold",
			usage: `
              QualityThreshold is the quality value at or below which
              output pixels are replaced with the missing-value sentinel.`,
			defaultVal: float64(s5praster.DefaultQualityThreshold),
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), maskCmd.Flags()},
		},
		{
			name: "EPSG",
			usage: `
              EPSG is the bare EPSG code of the target coordinate
              reference system, for example "4326".`,
			defaultVal: s5praster.DefaultEPSG,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Resolution",
			usage: `
              Resolution is the target [x, y] sampling in the units of the
              target reference system (degrees or meters). Empty selects a
              default approximating 7000 m.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "NoData",
			usage: `
              NoData is the nodata sentinel written to output rasters.`,
			defaultVal: float64(s5praster.DefaultNoData),
			flagsets:   []*pflag.FlagSet{convertCmd.Flags(), maskCmd.Flags(), mergeCmd.Flags()},
		},
		{
			name: "NetCDF",
			usage: `
              NetCDF additionally exports each masked raster as a NetCDF
              classic file next to the GeoTIFF.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Mask.DataFile",
			usage: `
              Mask.DataFile is the already-reprojected data raster the
              mask command reads.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{maskCmd.Flags()},
		},
		{
			name: "Mask.QualityFile",
			usage: `
              Mask.QualityFile is the quality-indicator raster paired with
              Mask.DataFile. It must share Mask.DataFile's grid geometry.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{maskCmd.Flags()},
		},
		{
			name: "Mask.OutputFile",
			usage: `
              Mask.OutputFile is where the mask command writes the masked
              raster.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{maskCmd.Flags()},
		},
		{
			name: "Merge.Files",
			usage: `
              Merge.Files is the list of rasters to mosaic into one file.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Merge.OutputFile",
			usage: `
              Merge.OutputFile is where the merge command writes the
              mosaic.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Merge.Init",
			usage: `
              Merge.Init is the value mosaic pixels are initialized to
              before the inputs are pasted in.`,
			defaultVal: float64(s5praster.DefaultMergeInit),
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("S5P")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(maskCmd)
	Root.AddCommand(mergeCmd)
}

// outChan returns a channel whose messages are forwarded to the log.
func outChan() chan string {
	outChan := make(chan string)
	go func() {
		for {
			msg := <-outChan
			logrus.Info(msg)
		}
	}()
	return outChan
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("s5praster: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "s5praster",
	Short: "Convert Sentinel-5P products to georeferenced rasters.",
	Long: `S5PRaster converts Sentinel-5P atmospheric level-2 products into
quality-masked, georeferenced GeoTIFF rasters.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'S5P_var' where 'var' is the
name of the variable to be set. Many configuration variables are additionally
allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of S5PRaster.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("S5PRaster v%s\n", s5praster.Version)
	},
	DisableAutoGenTag: true,
}

// convertCmd runs the full swath-to-raster pipeline.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert product files to masked GeoTIFF rasters.",
	Long: `convert extracts the geolocation arrays of each input product, warps
the configured variables and their quality indicator onto a regular grid in
the target reference system, applies the quality threshold mask, and writes
one GeoTIFF per variable into OutputDir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outChan := outChan()

		inputs := expandStringSlice(Cfg.GetStringSlice("InputFiles"))
		if len(inputs) == 0 {
			return fmt.Errorf("s5praster: no input files specified; set the InputFiles configuration variable")
		}
		variables := expandStringSlice(Cfg.GetStringSlice("Variables"))
		resolution, err := toFloat64Slice(Cfg.Get("Resolution"))
		if err != nil {
			return fmt.Errorf("s5praster: reading 'Resolution': %v", err)
		}
		cfg := s5praster.ConvertConfig{
			Warp: s5praster.WarpConfig{
				EPSG:       os.ExpandEnv(Cfg.GetString("EPSG")),
				Resolution: resolution,
				NoData:     Cfg.GetFloat64("NoData"),
			},
			QualityVariable:  os.ExpandEnv(Cfg.GetString("QualityVariable")),
			QualityThreshold: Cfg.GetFloat64("QualityThreshold"),
			NetCDF:           Cfg.GetBool("NetCDF"),
		}
		return Convert(inputs, variables, os.ExpandEnv(Cfg.GetString("OutputDir")), cfg, outChan)
	},
	DisableAutoGenTag: true,
}

// maskCmd applies the quality threshold to an existing raster pair.
var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Apply a quality threshold mask to a raster pair.",
	Long: `mask reads an already-reprojected data raster and its paired
quality-indicator raster, verifies that they share the same grid geometry,
and writes a copy of the data raster in which every pixel whose quality
value is at or below QualityThreshold is replaced with NaN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outChan := outChan()

		data, err := checkFile(Cfg.GetString("Mask.DataFile"), "Mask.DataFile")
		if err != nil {
			return err
		}
		qa, err := checkFile(Cfg.GetString("Mask.QualityFile"), "Mask.QualityFile")
		if err != nil {
			return err
		}
		out, err := checkOutputFile(Cfg.GetString("Mask.OutputFile"), "Mask.OutputFile")
		if err != nil {
			return err
		}
		return s5praster.ApplyQualityMask(
			maybeDownload(data, outChan),
			maybeDownload(qa, outChan),
			out,
			Cfg.GetFloat64("QualityThreshold"),
			Cfg.GetFloat64("NoData"),
		)
	},
	DisableAutoGenTag: true,
}

// mergeCmd mosaics output rasters.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Mosaic rasters into a single file.",
	Long: `merge mosaics the rasters listed in Merge.Files into a single
GeoTIFF covering the union of their extents. Inputs are pasted in order,
so later files win where they overlap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outChan := outChan()

		files := expandStringSlice(Cfg.GetStringSlice("Merge.Files"))
		for i := range files {
			files[i] = maybeDownload(files[i], outChan)
		}
		out, err := checkOutputFile(Cfg.GetString("Merge.OutputFile"), "Merge.OutputFile")
		if err != nil {
			return err
		}
		return s5praster.Merge(files, out, s5praster.MergeConfig{
			Init:   Cfg.GetFloat64("Merge.Init"),
			NoData: Cfg.GetFloat64("NoData"),
		})
	},
	DisableAutoGenTag: true,
}
