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


// Command shallowmap is a command-line interface for the shallowmap
// shallow-water solver.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ctessum-labs/shallowmap"
	"github.com/ctessum-labs/shallowmap/config"
	"github.com/ctessum-labs/shallowmap/internal/snapshot"
)

var (
	cfg        = config.New()
	configFile string
	snapOut    string
	simEnd     float64
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shallowmap",
		Short: "A finite-volume shallow-water hydrodynamic solver.",
		Long: `shallowmap runs a finite-volume shallow-water simulation over a
structured Cartesian grid. Configuration can be changed with a TOML file
(--config) or SHALLOWMAP_-prefixed environment variables; refer to
https://github.com/spf13/viper for the general mechanism.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return cfg.Load(configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "configuration file location")
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation to completion.",
		RunE: func(*cobra.Command, []string) error {
			return runSimulation()
		},
		DisableAutoGenTag: true,
	}
	flags := pflag.NewFlagSet("run", pflag.ExitOnError)
	flags.Float64Var(&simEnd, "sim-end", 3600, "simulation end time, seconds")
	flags.StringVar(&snapOut, "snapshot-out", "", "if set, write a final CellState snapshot to this path")
	cmd.Flags().AddFlagSet(flags)
	return cmd
}

func runSimulation() error {
	log := shallowmap.NewLogger(cfg.Switches().DebugOutput)
	spec := cfg.GridSpec()

	grid, err := shallowmap.NewGrid(spec.Columns, spec.Rows, spec.Dx, spec.Dy)
	if err != nil {
		return fmt.Errorf("shallowmap: %v", err)
	}
	terrain := shallowmap.NewTerrain(grid.N())

	sw := cfg.Switches()
	domain, err := shallowmap.NewDomain(grid, terrain, sw, cfg.Scheme())
	if err != nil {
		return fmt.Errorf("shallowmap: %v", err)
	}
	domain.Cache = cfg.CacheEnabled()
	domain.BlockSize = cfg.BlockSize()
	domain.Log = log

	cur := shallowmap.NewCellState(grid.N())
	next := shallowmap.NewCellState(grid.N())
	domain.TS.SimEnd = simEnd

	ctx := context.Background()
	cur, next, err = domain.RunToSync(ctx, cur, next, simEnd)
	if err != nil {
		return fmt.Errorf("shallowmap: run failed at t=%g: %v", domain.TS.T, err)
	}
	log.WithField("t", domain.TS.T).Info("simulation reached end time")

	if snapOut != "" {
		f, err := os.Create(snapOut)
		if err != nil {
			return fmt.Errorf("shallowmap: %v", err)
		}
		defer f.Close()
		if err := snapshot.Save(f, domain.TS.T, cur); err != nil {
			return fmt.Errorf("shallowmap: %v", err)
		}
	}
	_ = next
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
