// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a computer system
// with a 6502 CPU, 64K of memory, a built-in debugger, and other useful
// tools.
//
// Within the host it is possible to load machine code into memory, debug
// and step through machine code, count the instructions executed, set
// address and data breakpoints, dump the contents of memory, disassemble
// the contents of memory, manipulate CPU registers and memory, save and
// restore snapshots, swap the chip definition, and script the emulator
// with Lua.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/chzyer/readline"
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	lua "github.com/yuin/gopher-lua"

	"github.com/emu6502/emu6502/chipdef"
	"github.com/emu6502/emu6502/cpu"
	"github.com/emu6502/emu6502/disasm"
	"github.com/emu6502/emu6502/logger"
)

var (
	errQuit        = errors.New("quit")
	errInterrupted = errors.New("interrupted")
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCounters

	displayAll = displayRegisters | displayCounters
)

// Style used to highlight registers that changed since the last display.
const changedStyle = "yellow+b"

type selection struct {
	c    *command
	args []string
}

// A Host represents a fully emulated 6502 system, 64K of memory, a built-in
// debugger, and other useful tools.
type Host struct {
	input       lineReader
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *selection
	settings    *settings
	values      valueParser
	shown       cpu.Registers
	brkHit      bool
	stepping    bool
	changed     uint8 // registers changed while stepping, by bit
	interrupted atomic.Bool
	lua         *lua.LState
}

// New creates a new 6502 host environment running the NMOS instruction
// set.
func New() *Host {
	h := &Host{
		settings: newSettings(),
		output:   bufio.NewWriter(io.Discard),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(cpu.ProfileNMOS, h.mem)
	h.cpu.AttachStateHandler(h)
	h.cpu.Reg.Watch(h.onRegisterChange)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger()
	h.cpu.AttachDebugger(h.debugger)

	h.values.reg = &h.cpu.Reg
	h.onSettingsUpdate()
	return h
}

// CPU returns the emulated CPU.
func (h *Host) CPU() *cpu.CPU {
	return h.cpu
}

// SetInstructionSet replaces the instruction set used by the CPU.
func (h *Host) SetInstructionSet(set *cpu.InstructionSet) {
	h.cpu.InstSet = set
	logger.Logf("host", "instruction set %s (%d opcodes)", set.Profile, set.Len())
}

// LoadChip builds an instruction set from a chip definition and installs
// it. The flag records of the definition give the processor status.
func (h *Host) LoadChip(def *chipdef.Definition, p cpu.Profile) (*cpu.InstructionSet, error) {
	set, err := chipdef.Build(def, p)
	if err != nil {
		return nil, err
	}
	h.SetInstructionSet(set)
	if ps, ok := def.Status(); ok {
		h.cpu.Reg.Set(cpu.RegPS, uint16(ps))
	}
	return set, nil
}

// Set changes the value of a host setting. The name may be any unambiguous
// prefix of the setting's name.
func (h *Host) Set(name string, value any) error {
	if err := h.settings.Set(name, value); err != nil {
		return err
	}
	h.onSettingsUpdate()
	return nil
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.output = bufio.NewWriter(w)
	h.interactive = interactive
	h.input = h.newLineReader(r, w)
	defer h.input.Close()

	if interactive {
		h.println()
		h.displayPC()
	}

	for {
		line, err := h.input.ReadLine()
		if err == errInterrupted {
			continue
		}
		if err != nil {
			break
		}
		if err := h.execLine(line); err != nil {
			break
		}
	}
	h.flush()
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.interrupted.Store(true)
}

// Execute a single command line.
func (h *Host) execLine(line string) error {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
		return nil
	}

	var sel selection
	switch {
	case line != "":
		n, args, err := cmds.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			h.println("Command not found.")
			return nil
		case err == cmd.ErrAmbiguous:
			h.println("Command is ambiguous.")
			return nil
		case err != nil:
			h.printf("ERROR: %v.\n", err)
			return nil
		}
		nc, _ := n.(*cmd.Command)
		if nc == nil {
			return nil
		}
		c, ok := nc.Data.(*command)
		if !ok {
			h.println("Incomplete command. Type 'help' for a list of commands.")
			return nil
		}
		sel = selection{c: c, args: args}

	case h.interactive && h.lastCmd != nil:
		sel = *h.lastCmd

	default:
		return nil
	}

	h.lastCmd = &sel
	return sel.c.fn(h, sel.c, sel.args)
}

// Run every command in a monitor script.
func (h *Host) execScript(r io.Reader) error {
	interactive := h.interactive
	h.interactive = false
	defer func() { h.interactive = interactive }()

	s := bufio.NewScanner(r)
	for s.Scan() {
		if err := h.execLine(s.Text()); err != nil {
			return err
		}
	}
	return s.Err()
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) displayHelpText(c *command) {
	if c.desc.Usage != "" {
		h.printf("Syntax: %s\n", c.desc.Usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) onSettingsUpdate() {
	h.values.hexMode = h.settings.HexMode
	h.cpu.LoadLimit = h.settings.LoadLimit
	h.cpu.ExecLimit = h.settings.ExecLimit
	h.cpu.Housekeeping = h.settings.Housekeeping
	if h.settings.BrkStop {
		h.cpu.AttachBrkHandler(h)
	} else {
		h.cpu.AttachBrkHandler(nil)
	}
}

func (h *Host) parseAddr(s string) (uint16, error) {
	v, err := h.values.Parse(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0x10000 + v
	}
	if v < 0 || v > 0xffff {
		return 0, errors.Wrapf(cpu.ErrMemoryOutOfRange, "address %d", v)
	}
	return uint16(v), nil
}

func (h *Host) parseByte(s string) (byte, error) {
	v, err := h.values.Parse(s)
	if err != nil {
		return 0, err
	}
	if v < -128 || v > 0xff {
		return 0, errors.Wrapf(cpu.ErrValueOutOfRange, "byte value %d", v)
	}
	return byte(v), nil
}

func (h *Host) parseCount(s string) (int, error) {
	v, err := h.values.Parse(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.Errorf("invalid count %d", v)
	}
	return int(v), nil
}

// LoadFile loads the contents of a binary file into memory at addr.
func (h *Host) LoadFile(filename string, addr uint16) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to read '%s'", filepath.Base(filename))
	}
	if err := h.mem.Load(int(addr), b); err != nil {
		return errors.Wrapf(err, "failed to load '%s'", filepath.Base(filename))
	}
	logger.Logf("host", "loaded %d bytes from %s at $%04X", len(b), filepath.Base(filename), addr)
	return nil
}

// LoadFileArg loads a binary file named by a "file[@addr]" argument. The
// address accepts the same forms as monitor commands and defaults to 0.
func (h *Host) LoadFileArg(arg string) error {
	filename, addrArg := splitLoadArg(arg)
	var addr uint16
	if addrArg != "" {
		var err error
		if addr, err = h.parseAddr(addrArg); err != nil {
			return errors.Wrapf(err, "invalid load address '%s'", addrArg)
		}
	}
	return h.LoadFile(filename, addr)
}

// Reset the CPU.
func (h *Host) Reset() {
	h.cpu.Reset()
	logger.Logf("host", "reset, PC=$%04X", h.cpu.Reg.PC)
}

// OnStateChange is called by the CPU when its run state changes.
func (h *Host) OnStateChange(c *cpu.CPU, s cpu.State) {
	logger.Logf("cpu", "state %s after %d instructions", s, c.Executed)
}

// OnBrk is called by the CPU in place of executing BRK when the BrkStop
// setting is on. The program counter is left on the BRK instruction.
func (h *Host) OnBrk(c *cpu.CPU) {
	h.brkHit = true
	c.SetPC(c.LastPC)
}

func (h *Host) onRegisterChange(reg cpu.Register, v uint16) {
	if h.stepping {
		h.changed |= 1 << reg
		return
	}
	logger.Logf("register", "%s=$%0*X", reg, reg.Width()/4, v)
}

// Log one entry naming the registers changed by a stepping session.
func (h *Host) endStepping() {
	h.stepping = false
	if h.changed == 0 {
		return
	}
	var names []string
	for _, reg := range cpu.RegisterList {
		if h.changed&(1<<reg) != 0 {
			names = append(names, reg.String())
		}
	}
	h.changed = 0
	logger.Logf("register", "%s changed after %d instructions", strings.Join(names, " "), h.cpu.Executed)
}

// Step the CPU up to 'n' times, or without limit if n is 0. After each
// instruction, 'after' is called and stepping ends early if it returns
// true. The return value is false if stepping was cut short by a signal,
// an error or a break.
func (h *Host) stepCPU(n int, after func() bool) bool {
	h.interrupted.Store(false)
	h.brkHit = false
	h.stepping = true
	defer h.endStepping()

	for i := 0; n == 0 || i < n; i++ {
		if h.interrupted.Load() {
			h.println("Interrupted.")
			return false
		}
		if err := h.cpu.Step(); err != nil {
			h.onStepError(err)
			return false
		}
		if h.brkHit {
			h.printf("BRK at $%04X.\n", h.cpu.Reg.PC)
			return false
		}
		if after != nil && after() {
			break
		}
	}
	return true
}

func (h *Host) onStepError(err error) {
	var bp *cpu.BreakpointError
	var dbp *cpu.DataBreakpointError
	var sc *cpu.StateChangedError

	switch {
	case errors.As(err, &bp):
		logger.Logf("debugger", "breakpoint hit at $%04X", bp.Addr)
		h.printf("Breakpoint hit at $%04X.\n", bp.Addr)

	case errors.As(err, &dbp):
		logger.Logf("debugger", "data breakpoint hit at $%04X (value $%02X)", dbp.Addr, dbp.Value)
		h.printf("Data breakpoint hit on address $%04X.\n", dbp.Addr)
		if h.cpu.LastPC != h.cpu.Reg.PC {
			d, _ := h.disassemble(h.cpu.LastPC, 0)
			h.println(d)
		}

	case errors.As(err, &sc):
		h.printf("CPU %s after %d instructions.\n", sc.State, h.cpu.Executed)

	default:
		logger.Logf("cpu", "%v", err)
		h.printf("ERROR: %v.\n", err)
	}
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.cpu.Mem, h.cpu.InstSet, addr)

	b := make([]byte, next-addr)
	h.cpu.Mem.LoadBytes(addr, b)

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b), line)

	if (flags & displayRegisters) != 0 {
		str += " " + h.registerString()
	}

	if (flags & displayCounters) != 0 {
		str += fmt.Sprintf(" E=%-10d", h.cpu.Executed)
	}

	return str, next
}

// Return the register display string. If color is enabled, registers that
// changed since the previous display are highlighted.
func (h *Host) registerString() string {
	r := &h.cpu.Reg
	prev := h.shown
	h.shown = *r

	if !h.settings.Color {
		return disasm.GetRegisterString(r)
	}

	field := func(s string, changed bool) string {
		if changed {
			return ansi.Color(s, changedStyle)
		}
		return s
	}
	return strings.Join([]string{
		field(fmt.Sprintf("A=%02X", r.A), r.A != prev.A),
		field(fmt.Sprintf("X=%02X", r.X), r.X != prev.X),
		field(fmt.Sprintf("Y=%02X", r.Y), r.Y != prev.Y),
		field(fmt.Sprintf("PS=[%s]", r.PS), r.PS != prev.PS),
		field(fmt.Sprintf("SP=%02X", r.SP), r.SP != prev.SP),
		field(fmt.Sprintf("PC=%04X", r.PC), r.PC != prev.PC),
	}, " ")
}

func (h *Host) dumpMemory(addr, bytes uint16) {
	h.printf("%s", cpu.Dump(h.cpu.Mem, addr, int(bytes)))
}

//
// line input
//

type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

type scanReader struct {
	h       *Host
	scanner *bufio.Scanner
	prompt  bool
}

func (s *scanReader) ReadLine() (string, error) {
	if s.prompt {
		s.h.printf("* ")
	}
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if s.scanner.Err() != nil {
		return "", s.scanner.Err()
	}
	return "", io.EOF
}

func (s *scanReader) Close() error {
	return nil
}

type editReader struct {
	rl *readline.Instance
}

func (e *editReader) ReadLine() (string, error) {
	line, err := e.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", errInterrupted
	}
	return line, err
}

func (e *editReader) Close() error {
	return e.rl.Close()
}

// Interactive sessions get a line editor with history kept in the user's
// cache folder. Everything else is read line by line.
func (h *Host) newLineReader(r io.Reader, w io.Writer) lineReader {
	if h.interactive {
		config := &readline.Config{
			Prompt:          "* ",
			InterruptPrompt: "^C",
			HistoryFile:     historyPath(),
			Stdout:          w,
		}
		if r != os.Stdin {
			config.Stdin = io.NopCloser(r)
		}
		if rl, err := readline.NewEx(config); err == nil {
			return &editReader{rl: rl}
		}
	}
	return &scanReader{h: h, scanner: bufio.NewScanner(r), prompt: h.interactive}
}

func historyPath() string {
	cacheDir := configdir.New("emu6502", "host").QueryCacheFolder()
	if err := cacheDir.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cacheDir.Path, "history")
}
