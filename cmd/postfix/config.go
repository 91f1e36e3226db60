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
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings which can be read from a YAML file.
// Command line flags take precedence over values from the file.
type Config struct {
	// OutputDir is the directory for output files.  If empty, output files
	// are written next to the input file.
	OutputDir string `yaml:"output_dir"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`

	// HistoryFile is where the REPL keeps its line history.  A relative
	// path is interpreted relative to the user's home directory.
	HistoryFile string `yaml:"history_file"`
}

const defaultHistoryFile = ".postfix_history"

// loadConfig reads the configuration file at path.
// An empty path gives the default configuration.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{
		LogLevel:    "warn",
		HistoryFile: defaultHistoryFile,
	}
	if path == "" {
		return cfg, nil
	}

	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	defer fd.Close()

	dec := yaml.NewDecoder(fd)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}

	_, err = cfg.level()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(cfg.LogLevel))
	if err != nil {
		return 0, errors.Wrapf(err, "config: log_level %q", cfg.LogLevel)
	}
	return level, nil
}
