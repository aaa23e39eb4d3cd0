// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/beevik/cmd"
	"github.com/emu6502/emu6502/chipdef"
	"github.com/emu6502/emu6502/cpu"
	"github.com/emu6502/emu6502/logger"
	"github.com/emu6502/emu6502/snapshot"
)

func (h *Host) cmdHelp(c *command, args []string) error {
	if len(args) == 0 {
		h.displayCommands(cmdGroups)
		return nil
	}

	if g := cmdGroups.find(args[0]); g != nil && len(args) == 1 {
		h.displayCommands(g)
		return nil
	}

	n, _, err := cmds.Lookup(strings.Join(args, " "))
	nc, _ := n.(*cmd.Command)
	if err != nil || nc == nil {
		h.printf("Command '%s' not found.\n", strings.Join(args, " "))
		return nil
	}
	if hc, ok := nc.Data.(*command); ok {
		if hc.desc.Description != "" {
			h.println(hc.desc.Description)
		}
		h.displayHelpText(hc)
	}
	return nil
}

func (h *Host) displayCommands(g *commandGroup) {
	type entry struct{ name, brief string }
	var entries []entry
	for _, c := range g.commands {
		if c.desc.Brief != "" {
			entries = append(entries, entry{c.desc.Name, c.desc.Brief})
		}
	}
	for _, sub := range g.groups {
		entries = append(entries, entry{sub.name, sub.brief})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	h.printf("%s commands:\n", g.name)
	for _, e := range entries {
		h.printf("    %-15s  %s\n", e.name, e.brief)
	}
}

func (h *Host) cmdBreakpointList(c *command, args []string) error {
	h.println("Addr  Enabled")
	h.println("----- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c *command, args []string) error {
	return h.toggleBreakpoint(c, args, false)
}

func (h *Host) cmdBreakpointDisable(c *command, args []string) error {
	return h.toggleBreakpoint(c, args, true)
}

func (h *Host) toggleBreakpoint(c *command, args []string, disabled bool) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = disabled
	if disabled {
		h.printf("Breakpoint at $%04X disabled.\n", addr)
	} else {
		h.printf("Breakpoint at $%04X enabled.\n", addr)
	}
	return nil
}

func (h *Host) cmdChipInfo(c *command, args []string) error {
	set := h.cpu.InstSet
	h.printf("Profile:  %s\n", set.Profile)
	h.printf("Opcodes:  %d documented, %d undocumented\n", set.Len(), 256-set.Len())
	return nil
}

func (h *Host) cmdChipLoad(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	p := h.cpu.InstSet.Profile
	if len(args) > 1 {
		var err error
		if p, err = cpu.ParseProfile(args[1]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	def, err := chipdef.Find(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	set, err := h.LoadChip(def, p)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("Loaded chip '%s' (%s, %d opcodes).\n", args[0], p, set.Len())
	return nil
}

func (h *Host) cmdChipExport(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	filename := args[0]
	if filepath.Ext(filename) == "" {
		filename += ".yaml"
	}

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		h.printf("Failed to create '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	if err := chipdef.Encode(file, chipdef.FromInstructionSet(h.cpu.InstSet)); err != nil {
		h.printf("Failed to write '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	logger.Logf("host", "exported instruction set to %s", filepath.Base(filename))
	h.printf("Exported chip definition to '%s'.\n", filepath.Base(filename))
	return nil
}

func (h *Host) cmdDataBreakpointList(c *command, args []string) error {
	h.println("Addr  Enabled  Value")
	h.println("----- -------  -----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%04X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(args) > 1 {
		value, err := h.parseByte(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, value)
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, value)
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c *command, args []string) error {
	return h.toggleDataBreakpoint(c, args, false)
}

func (h *Host) cmdDataBreakpointDisable(c *command, args []string) error {
	return h.toggleDataBreakpoint(c, args, true)
}

func (h *Host) toggleDataBreakpoint(c *command, args []string, disabled bool) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = disabled
	if disabled {
		h.printf("Data breakpoint at $%04X disabled.\n", addr)
	} else {
		h.printf("Data breakpoint at $%04X enabled.\n", addr)
	}
	return nil
}

func (h *Host) cmdDisassemble(c *command, args []string) error {
	addr := h.settings.NextDisasmAddr
	if len(args) > 0 {
		var err error
		if addr, err = h.parseAddr(args[0]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	lines := h.settings.DisasmLines
	if len(args) > 1 {
		var err error
		if lines, err = h.parseCount(args[1]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	for i := 0; i < lines; i++ {
		var d string
		d, addr = h.disassemble(addr, 0)
		h.println(d)
	}

	h.settings.NextDisasmAddr = addr
	return nil
}

func (h *Host) cmdEvaluate(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	v, err := h.values.Parse(strings.Join(args, ""))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X  %d  %%%b\n", uint16(v), v, uint16(v))
	return nil
}

func (h *Host) cmdExecute(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	file, err := os.Open(args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(args[0]), err)
		return nil
	}
	defer file.Close()

	return h.execScript(file)
}

func (h *Host) cmdInterruptIRQ(c *command, args []string) error {
	if h.cpu.Reg.PS.Get(cpu.InterruptDisable) {
		h.println("Interrupts are disabled.")
		return nil
	}
	return h.interrupt(h.cpu.IRQ, "IRQ")
}

func (h *Host) cmdInterruptNMI(c *command, args []string) error {
	return h.interrupt(h.cpu.NMI, "NMI")
}

func (h *Host) interrupt(fn func() error, name string) error {
	if err := fn(); err != nil {
		h.printf("ERROR: %v.\n", err)
		return nil
	}
	logger.Logf("host", "%s, PC=$%04X", name, h.cpu.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdLoad(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	filename, addrArg := splitLoadArg(args[0])
	if len(args) > 1 {
		addrArg = args[1]
	}

	var addr uint16
	if addrArg != "" {
		var err error
		if addr, err = h.parseAddr(addrArg); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	} else {
		fi, err := os.Stat(filename)
		if err != nil {
			h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
			return nil
		}
		if fi.Size() != cpu.MemorySize {
			h.displayHelpText(c)
			return nil
		}
	}

	if err := h.LoadFile(filename, addr); err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("Loaded '%s' to $%04X.\n", filepath.Base(filename), addr)
	h.settings.NextDisasmAddr = addr
	h.settings.NextMemDumpAddr = addr
	return nil
}

func (h *Host) cmdLogShow(c *command, args []string) error {
	n := h.settings.LogLines
	if len(args) > 0 {
		var err error
		if n, err = h.parseCount(args[0]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}
	logger.Tail(h.output, n)
	h.flush()
	return nil
}

func (h *Host) cmdLogClear(c *command, args []string) error {
	logger.Clear()
	h.println("Log cleared.")
	return nil
}

func (h *Host) cmdMemoryDump(c *command, args []string) error {
	addr := h.settings.NextMemDumpAddr
	if len(args) > 0 {
		var err error
		if addr, err = h.parseAddr(args[0]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(args) > 1 {
		n, err := h.parseCount(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = uint16(min(n, 0xffff))
	}

	h.dumpMemory(addr, bytes)
	h.settings.NextMemDumpAddr = addr + bytes
	return nil
}

func (h *Host) cmdMemorySet(c *command, args []string) error {
	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := h.parseByte(a)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		b = append(b, v)
	}

	h.mem.StoreBytes(addr, b)
	h.dumpMemory(addr, uint16(len(b)))
	return nil
}

func (h *Host) cmdMemoryCopy(c *command, args []string) error {
	if len(args) < 3 {
		h.displayHelpText(c)
		return nil
	}

	var addr [3]uint16
	for i := range addr {
		var err error
		if addr[i], err = h.parseAddr(args[i]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	dst, start, end := addr[0], addr[1], addr[2]
	if end < start {
		h.println("Source end address must not precede the start address.")
		return nil
	}

	b := make([]byte, int(end-start)+1)
	h.mem.LoadBytes(start, b)
	h.mem.StoreBytes(dst, b)
	h.printf("Copied $%04X-$%04X to $%04X.\n", start, end, dst)
	return nil
}

func (h *Host) cmdQuit(c *command, args []string) error {
	return errQuit
}

func (h *Host) cmdRegister(c *command, args []string) error {
	if len(args) == 0 {
		h.println(h.registerString())
		return nil
	}
	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	v, err := h.values.Parse(args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if reg, err := cpu.ParseRegister(args[0]); err == nil {
		if reg == cpu.RegSP {
			h.cpu.SetSP(byte(v))
			h.onRegisterChange(reg, uint16(byte(v)))
		} else {
			h.cpu.Reg.Set(reg, uint16(v))
		}
		h.printf("Register %s set to $%0*X.\n", reg, reg.Width()/4, h.cpu.Reg.Get(reg))
		return nil
	}

	if f, err := cpu.ParseFlag(args[0]); err == nil {
		h.cpu.Reg.PS.Assign(f, v != 0)
		h.printf("Status flag %s set to %v.\n", f.Name(), v != 0)
		return nil
	}

	h.printf("Unknown register '%s'.\n", args[0])
	return nil
}

func (h *Host) cmdReset(c *command, args []string) error {
	h.Reset()
	h.displayPC()
	return nil
}

func (h *Host) cmdRun(c *command, args []string) error {
	n := 0
	if len(args) > 0 {
		var err error
		if n, err = h.parseCount(args[0]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.stepCPU(n, nil)
	h.displayPC()
	return nil
}

func (h *Host) cmdScript(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	if err := h.RunScript(args[0]); err != nil {
		h.printf("%v\n", err)
	}
	return nil
}

func (h *Host) cmdSet(c *command, args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayHelpText(c)

	default:
		key, value := args[0], strings.Join(args[1:], " ")
		name, kind, err := h.settings.Lookup(key)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}

		var v any
		if kind == reflect.Bool {
			v, err = stringToBool(value)
		} else {
			v, err = h.values.Parse(value)
		}
		if err == nil {
			err = h.Set(name, v)
		}
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.printf("Setting '%s' updated.\n", name)
	}
	return nil
}

func (h *Host) cmdSnapshotSave(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	file, err := os.OpenFile(args[0], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		h.printf("Failed to create '%s': %v\n", filepath.Base(args[0]), err)
		return nil
	}
	defer file.Close()

	if err := snapshot.Save(file, h.cpu); err != nil {
		h.printf("Failed to save '%s': %v\n", filepath.Base(args[0]), err)
		return nil
	}

	logger.Logf("snapshot", "saved %s at PC=$%04X", filepath.Base(args[0]), h.cpu.Reg.PC)
	h.printf("Snapshot saved to '%s'.\n", filepath.Base(args[0]))
	return nil
}

func (h *Host) cmdSnapshotLoad(c *command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	file, err := os.Open(args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(args[0]), err)
		return nil
	}
	defer file.Close()

	if err := snapshot.Restore(file, h.cpu); err != nil {
		h.printf("Failed to restore '%s': %v\n", filepath.Base(args[0]), err)
		return nil
	}

	logger.Logf("snapshot", "restored %s at PC=$%04X", filepath.Base(args[0]), h.cpu.Reg.PC)
	h.printf("Snapshot restored from '%s'.\n", filepath.Base(args[0]))
	h.displayPC()
	return nil
}

func (h *Host) cmdStepIn(c *command, args []string) error {
	return h.step(args, func() bool {
		return !h.stepCPU(1, nil)
	})
}

func (h *Host) cmdStepOver(c *command, args []string) error {
	return h.step(args, h.stepOver)
}

// Step over the next instruction. A JSR runs until the subroutine returns
// to the instruction following it.
func (h *Host) stepOver() (stopped bool) {
	inst := h.cpu.GetInstruction(h.cpu.Reg.PC)
	if inst == nil || inst.Kind != cpu.JSR {
		return !h.stepCPU(1, nil)
	}

	next := h.cpu.Reg.PC + uint16(inst.Length)
	sp := h.cpu.Reg.SP
	return !h.stepCPU(0, func() bool {
		return h.cpu.Reg.PC == next && h.cpu.Reg.SP >= sp
	})
}

func (h *Host) cmdStepOut(c *command, args []string) error {
	depth := 0
	h.stepCPU(0, func() bool {
		switch h.cpu.Current().Kind {
		case cpu.JSR:
			depth++
		case cpu.RTS, cpu.RTI:
			if depth == 0 {
				return true
			}
			depth--
		}
		return false
	})
	h.displayPC()
	return nil
}

// Perform a step operation the number of times requested in args. Only the
// last MaxStepLines steps are displayed.
func (h *Host) step(args []string, fn func() (stopped bool)) error {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = h.parseCount(args[0]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	for i := 0; i < n; i++ {
		if fn() {
			h.displayPC()
			break
		}
		if n-i <= h.settings.MaxStepLines {
			h.displayPC()
		}
	}
	return nil
}
