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

// Command brownianexits simulates Brownian paths escaping a rectangular
// domain, writes the recorded segments as CSV, and plots them.
package main

import "os"

func main() {
	root := newRootCommand()
	root.AddCommand(newRunCommand())
	root.AddCommand(newPlotCommand())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
