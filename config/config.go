/*
Copyright © 2024 the shallowmap authors.
This file is part of shallowmap.

shallowmap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

shallowmap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with shallowmap.  If not, see <http://www.gnu.org/licenses/>.
*/


// Package config loads solver run configuration the teacher's way:
// a viper.Viper tree seeded with defaults, overridable by a TOML file
// and SHALLOWMAP_-prefixed environment variables
// (_examples/spatialmodel-inmap/inmaputil/cmd.go's Cfg/setConfig idiom),
// with github.com/spf13/cast used to coerce loosely-typed config values
// the way inmaputil/config.go does.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/ctessum-labs/shallowmap"
)

// Config holds the run configuration loaded from a TOML file and
// environment.
type Config struct {
	*viper.Viper
}

// New returns a Config with the solver's defaults pre-populated.
func New() *Config {
	v := viper.New()
	v.SetEnvPrefix("SHALLOWMAP")
	v.AutomaticEnv()

	v.SetDefault("Scheme", "godunov")
	v.SetDefault("CacheEnabled", false)
	v.SetDefault("BlockSize", 16)
	v.SetDefault("Courant", shallowmap.CourantDefault)
	v.SetDefault("FroudeMax", 0.8)
	v.SetDefault("FrictionEnabled", true)
	v.SetDefault("FrictionInFluxKernel", true)
	v.SetDefault("TimestepFixed", false)
	v.SetDefault("TimestepSimplified", false)

	return &Config{Viper: v}
}

// Load reads path (TOML) into the configuration, in the teacher's
// setConfig idiom: a missing path is not an error, since command-line
// flags and defaults may be sufficient on their own.
func (c *Config) Load(path string) error {
	if path == "" {
		return nil
	}
	c.SetConfigFile(path)
	if err := c.ReadInConfig(); err != nil {
		return fmt.Errorf("shallowmap: problem reading configuration file: %v", err)
	}
	return nil
}

// Switches projects the loaded configuration onto shallowmap.Switches.
func (c *Config) Switches() shallowmap.Switches {
	return shallowmap.Switches{
		TimestepFixed:        c.GetBool("TimestepFixed"),
		FixedDt:              cast.ToFloat64(c.Get("FixedDt")),
		TimestepSimplified:   c.GetBool("TimestepSimplified"),
		FrictionEnabled:      c.GetBool("FrictionEnabled"),
		FrictionInFluxKernel: c.GetBool("FrictionInFluxKernel"),
		DebugOutput:          c.GetBool("DebugOutput"),
		DebugCellX:           c.GetInt("DebugCellX"),
		DebugCellY:           c.GetInt("DebugCellY"),
		Courant:              cast.ToFloat64(c.Get("Courant")),
		FroudeMax:            cast.ToFloat64(c.Get("FroudeMax")),
	}
}

// GridSpec is the subset of configuration needed to construct a Grid.
type GridSpec struct {
	Columns, Rows int
	Dx, Dy        float64
}

func (c *Config) GridSpec() GridSpec {
	return GridSpec{
		Columns: c.GetInt("Columns"),
		Rows:    c.GetInt("Rows"),
		Dx:      cast.ToFloat64(c.Get("Dx")),
		Dy:      cast.ToFloat64(c.Get("Dy")),
	}
}

func (c *Config) Scheme() string     { return c.GetString("Scheme") }
func (c *Config) CacheEnabled() bool { return c.GetBool("CacheEnabled") }
func (c *Config) BlockSize() int     { return c.GetInt("BlockSize") }

// boundarySeriesFile is the on-disk shape of a cell-boundary timeseries
// file: an array of tables, one per sample, decoded directly with
// BurntSushi/toml rather than through viper, since viper's flattened key
// tree is awkward for an ordered array of structurally-identical
// records.
type boundarySeriesFile struct {
	Entries []struct {
		Time  float64
		Value float64
		Qx    float64
		Qy    float64
	}
}

// LoadBoundarySeries reads a cell-boundary timeseries TOML file of the
// form `[[Entries]] Time = ... Value = ... Qx = ... Qy = ...`.
func LoadBoundarySeries(path string) ([]shallowmap.TimeSeriesEntry, error) {
	var f boundarySeriesFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("shallowmap: reading boundary series %s: %v", path, err)
	}
	out := make([]shallowmap.TimeSeriesEntry, len(f.Entries))
	for i, e := range f.Entries {
		out[i] = shallowmap.TimeSeriesEntry{Time: e.Time, Value: e.Value, Qx: e.Qx, Qy: e.Qy}
	}
	return out, nil
}
