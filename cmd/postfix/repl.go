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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"seehuhn.de/go/postfix"
)

const prompt = "> "

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	configFile := fs.String("config", "", "read settings from this YAML `file`")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %+v\n", appName, err)
		return 1
	}
	histPath := historyPath(cfg.HistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(completeWord)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	intp := postfix.NewInterpreter()
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}

		cmd := strings.TrimSpace(line)
		switch cmd {
		case "":
			continue
		case ":quit":
			return 0
		case ":clear":
			intp.Stack = intp.Stack[:0]
		default:
			if strings.HasPrefix(cmd, ":") {
				fmt.Println("unknown command. Commands are :clear and :quit.")
				continue
			}
			intp.ExecuteLine(line)
		}
		ln.AppendHistory(line)
		if s := postfix.FormatStack(intp.Stack); s != "" {
			fmt.Println(s)
		}
	}
}

// completeWord completes the word before the cursor to an operator name.
func completeWord(line string, pos int) (head string, completions []string, tail string) {
	head = line[:pos]
	tail = line[pos:]
	start := strings.LastIndexAny(head, " \t{[") + 1
	word := head[start:]
	head = head[:start]
	if word == "" {
		return head, nil, tail
	}
	for _, name := range postfix.OperatorNames() {
		if strings.HasPrefix(name, word) {
			completions = append(completions, name)
		}
	}
	return head, completions, tail
}

func historyPath(name string) string {
	if name == "" {
		name = defaultHistoryFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}
