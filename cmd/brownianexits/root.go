// BrownianExits - parallel simulation of Brownian paths escaping a rectangle
// Copyright (C) 2026  Sam Vermeulen
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newRootCommand lets child commands read settings from CLI flags,
// environment variables prefixed with BROWNIANEXITS, or a
// brownianexits.yaml config file, in that order.
func newRootCommand() *cobra.Command {
	viper.SetConfigName("brownianexits")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("BROWNIANEXITS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.brownianexits")
	_ = viper.ReadInConfig() // a missing config file is fine

	return &cobra.Command{
		Use:   "brownianexits",
		Short: "Simulate Brownian paths escaping a rectangular domain",
		Long: `Simulate many concurrent two-dimensional random walks confined to a
rectangle, record every step, and compute the exact point where each walk
first leaves the domain.`,
		SilenceUsage: true,
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
