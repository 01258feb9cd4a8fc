// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelview/main.go
// Summary: Terminal source viewer. Opens a file with syntax highlighting,
// indent guides and remembered scroll position.
// Usage: texelview [flags] <file>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/framegrace/texelview/apps/codeview"
	"github.com/framegrace/texelview/internal/runner"
	"github.com/framegrace/texelview/viewstate"
	"golang.org/x/term"
)

func main() {
	fs := flag.NewFlagSet("texelview", flag.ExitOnError)
	noPersist := fs.Bool("no-persist", false, "Do not remember the scroll position")
	forget := fs.Bool("forget", false, "Drop the remembered position for this file and exit")
	logPath := fs.String("log", "", "Append logs to this file instead of discarding them")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: texelview [flags] <file>\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	path := fs.Arg(0)

	if err := run(path, *noPersist, *forget, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, noPersist, forget bool, logPath string) error {
	// The UI needs a real terminal; logs go to a file or nowhere.
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0); err == nil {
		defer devNull.Close()
		log.SetOutput(devNull)
	}

	var store *viewstate.Store
	if !noPersist || forget {
		s, err := viewstate.Open(viewstate.DefaultConfig())
		if err != nil {
			log.Printf("texelview: view state unavailable: %v", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	if forget {
		if store == nil {
			return fmt.Errorf("view state store unavailable")
		}
		abs, err := absPath(path)
		if err != nil {
			return err
		}
		return store.Forget(abs)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	abs, err := absPath(path)
	if err != nil {
		return err
	}
	if noPersist {
		store = nil
	}
	app, err := codeview.New(abs, store)
	if err != nil {
		return err
	}
	return runner.Run(app)
}

// absPath normalizes the file argument so view state keys are stable no
// matter which directory the viewer was launched from.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}
