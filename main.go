// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/emu6502/emu6502/chipdef"
	"github.com/emu6502/emu6502/cpu"
	"github.com/emu6502/emu6502/host"
	"github.com/emu6502/emu6502/logger"
)

var (
	chip         string
	profile      string
	load         string
	run          bool
	housekeeping bool
	loadLimit    uint64
	execLimit    uint64
	script       string
	verbose      bool
)

func init() {
	flag.StringVar(&chip, "chip", "", "chip definition file or name")
	flag.StringVar(&profile, "profile", "nmos", "chip profile (nmos, nmos-early, cmos)")
	flag.StringVar(&load, "load", "", "load a binary `file[@addr]` into memory (addr as $c000)")
	flag.BoolVar(&run, "run", false, "reset and run the CPU before anything else")
	flag.BoolVar(&housekeeping, "housekeeping", false, "run CLI and CLD as part of reset")
	flag.Uint64Var(&loadLimit, "load-limit", 0, "stop before fetching more than `n` opcodes")
	flag.Uint64Var(&execLimit, "exec-limit", 0, "stop after executing `n` instructions")
	flag.StringVar(&script, "script", "", "run a Lua script `file`")
	flag.BoolVar(&verbose, "v", false, "echo log entries to stderr")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: emu6502 [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if verbose {
		logger.SetEcho(os.Stderr)
	}

	h := host.New()
	if err := configure(h); err != nil {
		exitOnError(err)
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	if run {
		h.Reset()
		h.RunCommands(strings.NewReader("run\n"), os.Stdout, false)
	}

	if script != "" {
		if err := h.RunScript(script); err != nil {
			exitOnError(err)
		}
	}

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Run commands interactively, or from a pipe.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		h.Set("Color", term.IsTerminal(int(os.Stdout.Fd())))
	}
	if interactive || len(flag.Args()) == 0 {
		h.RunCommands(os.Stdin, os.Stdout, interactive)
	}
}

// Apply the command-line options to the host.
func configure(h *host.Host) error {
	p, err := cpu.ParseProfile(profile)
	if err != nil {
		return err
	}
	if chip == "" {
		h.SetInstructionSet(cpu.GetInstructionSet(p))
	} else {
		def, err := chipdef.Find(chip)
		if err != nil {
			return err
		}
		if _, err := h.LoadChip(def, p); err != nil {
			return err
		}
	}

	settings := map[string]any{
		"Housekeeping": housekeeping,
		"LoadLimit":    loadLimit,
		"ExecLimit":    execLimit,
	}
	for k, v := range settings {
		if err := h.Set(k, v); err != nil {
			return err
		}
	}

	if load != "" {
		if err := h.LoadFileArg(load); err != nil {
			return err
		}
	}
	return nil
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
