// seehuhn.de/go/postfix - an interpreter for a small postfix language
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

// Command postfix runs programs written in the postfix stack language.
//
// Usage:
//
//	postfix run [-config file] [-out dir] [-log-level level] input-NNN.txt
//	postfix repl [-config file]
//	postfix ops
//
// The run subcommand evaluates the input file and writes the final stack,
// one value per line and bottom first, to output-NNN.txt.
package main

import (
	"fmt"
	"os"

	"seehuhn.de/go/postfix"
)

const appName = "postfix"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "ops":
		os.Exit(cmdOps(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %s run [-config file] [-out dir] [-log-level level] input-NNN.txt
                       Evaluate a file and write output-NNN.txt.
  %s repl [-config file]
                       Start an interactive session.
  %s ops               List the operator names.
`, appName, appName, appName)
}

func cmdOps(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "usage: %s ops\n", appName)
		return 2
	}
	for _, name := range postfix.OperatorNames() {
		fmt.Println(name)
	}
	return 0
}
