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

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"

	"seehuhn.de/go/postfix"
)

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configFile := fs.String("config", "", "read settings from this YAML `file`")
	outDir := fs.String("out", "", "write the output file to this `directory`")
	logLevel := fs.String("log-level", "", "log `level` (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [flags] input-NNN.txt\n", appName)
		return 2
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %+v\n", appName, err)
		return 1
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := cfg.level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %+v\n", appName, err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	outPath, err := run(logger, fs.Arg(0), cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %+v\n", appName, err)
		return 1
	}
	logger.Info("output written", "path", outPath)
	return 0
}

var inputNameRe = regexp.MustCompile(`input-(\d{3})\.txt`)

// identifier returns the three digit identifier in an input file name.
func identifier(inPath string) (string, error) {
	base := filepath.Base(inPath)
	m := inputNameRe.FindStringSubmatch(base)
	if m == nil {
		return "", errors.Errorf("cannot derive an identifier from %q", base)
	}
	return m[1], nil
}

// run evaluates the program in inPath and writes the formatted final stack
// to output-NNN.txt, in outDir or next to the input file.  The output file
// is written even if the run fails, and is empty in this case.
func run(logger *slog.Logger, inPath, outDir string) (string, error) {
	outName := "output.txt"
	id, err := identifier(inPath)
	if err == nil {
		outName = "output-" + id + ".txt"
	}
	if outDir == "" {
		outDir = filepath.Dir(inPath)
	}
	outPath := filepath.Join(outDir, outName)

	var body string
	if err == nil {
		body, err = evaluate(logger, inPath)
	}

	werr := os.WriteFile(outPath, []byte(body), 0o644)
	if err != nil {
		return outPath, err
	}
	if werr != nil {
		return outPath, errors.Wrap(werr, "write output")
	}
	return outPath, nil
}

func evaluate(logger *slog.Logger, inPath string) (string, error) {
	fd, err := os.Open(inPath)
	if err != nil {
		return "", errors.Wrap(err, "read input")
	}
	defer fd.Close()

	intp := postfix.NewInterpreter()
	intp.Logger = logger
	err = intp.Execute(fd)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", inPath)
	}
	logger.Debug("program finished",
		"file", inPath,
		"depth", len(intp.Stack),
		"skipped", intp.Skipped)
	return postfix.FormatStack(intp.Stack), nil
}
