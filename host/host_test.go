// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emu6502/emu6502/cpu"
)

// Run a sequence of commands on a new host and return its output.
func runHost(t *testing.T, h *Host, commands ...string) string {
	t.Helper()
	var out bytes.Buffer
	h.RunCommands(strings.NewReader(strings.Join(commands, "\n")), &out, false)
	return out.String()
}

func expectOutput(t *testing.T, out string, exp ...string) {
	t.Helper()
	for _, e := range exp {
		if !strings.Contains(out, e) {
			t.Errorf("exp: output containing %q, got:\n%s", e, out)
		}
	}
}

// A loop counting X up to 5, storing it at $10 and hitting BRK.
var countProgram = []string{
	"memory set $0600 $a2 $00 $e8 $e0 $05 $d0 $fb $86 $10 $00",
	"memory set $fffc $00 $06",
	"reset",
}

func TestMemorySetDump(t *testing.T) {
	out := runHost(t, New(),
		"memory set $1000 $a9 $05",
		"memory dump $1000 2",
	)
	expectOutput(t, out, "0x1000  a9 05\n")
}

func TestMemoryDumpRows(t *testing.T) {
	out := runHost(t, New(),
		"memory set $2000 0 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16 17",
		"memory dump $2000 18",
	)
	expectOutput(t, out,
		"0x2000  00 01 02 03 04 05 06 07  08 09 0a 0b 0c 0d 0e 0f\n0x2010  10 11\n",
	)
}

func TestRunBreakpoint(t *testing.T) {
	h := New()
	cmds := append(countProgram,
		"breakpoint add $0609",
		"run",
		"memory dump $10 1",
		"register",
	)
	out := runHost(t, h, cmds...)
	expectOutput(t, out,
		"Breakpoint added at $0609.",
		"Breakpoint hit at $0609.",
		"0x0010  05",
		"X=05",
		"PC=0609",
	)
}

func TestRunDataBreakpoint(t *testing.T) {
	cmds := append(countProgram,
		"databreakpoint add $10",
		"run",
	)
	out := runHost(t, New(), cmds...)
	expectOutput(t, out,
		"Data breakpoint added at $0010.",
		"Data breakpoint hit on address $0010.",
		"STX $10",
	)
}

func TestRunExecLimit(t *testing.T) {
	cmds := append([]string{"set execlimit 3"}, countProgram...)
	cmds = append(cmds, "run", "log show 5")
	out := runHost(t, New(), cmds...)
	expectOutput(t, out,
		"Setting 'ExecLimit' updated.",
		"CPU STOPPED after 3 instructions.",
		"register: X PS changed after 3 instructions",
	)
}

func TestStepOver(t *testing.T) {
	h := New()
	out := runHost(t, h,
		"memory set $0600 $20 $00 $07 $ea",
		"memory set $0700 $a9 $01 $60",
		"memory set $fffc $00 $06",
		"reset",
		"step over",
		"register",
	)
	expectOutput(t, out, "A=01", "SP=FF", "PC=0603")
	if h.cpu.Executed != 3 {
		t.Errorf("executed: exp: 3, got: %d", h.cpu.Executed)
	}
}

func TestStepOut(t *testing.T) {
	h := New()
	runHost(t, h,
		"memory set $0600 $20 $00 $07 $ea",
		"memory set $0700 $a9 $01 $60",
		"memory set $fffc $00 $06",
		"reset",
		"step in",
		"step out",
	)
	if h.cpu.Reg.PC != 0x0603 {
		t.Errorf("PC: exp: $0603, got: $%04X", h.cpu.Reg.PC)
	}
}

func TestBrkStop(t *testing.T) {
	cmds := append([]string{"set brkstop true"}, countProgram...)
	cmds = append(cmds, "run")
	h := New()
	out := runHost(t, h, cmds...)
	expectOutput(t, out, "BRK at $0609.")
	if h.cpu.Reg.PC != 0x0609 {
		t.Errorf("PC: exp: $0609, got: $%04X", h.cpu.Reg.PC)
	}
}

func TestRegisterSet(t *testing.T) {
	h := New()
	out := runHost(t, h,
		"register a $12",
		"register pc $c000",
		"register c 1",
	)
	expectOutput(t, out,
		"Register A set to $12.",
		"Register PC set to $C000.",
		"Status flag Carry set to true.",
	)
	if h.cpu.Reg.A != 0x12 || h.cpu.Reg.PC != 0xc000 {
		t.Errorf("exp: A=$12 PC=$C000, got: A=$%02X PC=$%04X", h.cpu.Reg.A, h.cpu.Reg.PC)
	}
}

func TestHexMode(t *testing.T) {
	h := New()
	out := runHost(t, h,
		"set hexmode true",
		"memory set 300 ff 10",
		"evaluate 10+2",
	)
	expectOutput(t, out, "$0012  18  %10010")
	if v := h.mem.LoadByte(0x301); v != 0x10 {
		t.Errorf("exp: $10, got: $%02X", v)
	}
}

func TestDisassemble(t *testing.T) {
	out := runHost(t, New(),
		"memory set $0600 $a9 $05 $8d $34 $12",
		"disassemble $0600 2",
	)
	expectOutput(t, out,
		"0600-   A9 05       LDA #$05",
		"0602-   8D 34 12    STA $1234",
	)
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.snap")
	h := New()
	out := runHost(t, h,
		"memory set $0200 $55",
		"register x $33",
		"snapshot save "+path,
		"memory set $0200 $00",
		"register x 0",
		"snapshot load "+path,
		"memory dump $0200 1",
	)
	expectOutput(t, out, "Snapshot saved", "Snapshot restored", "0x0200  55")
	if h.cpu.Reg.X != 0x33 {
		t.Errorf("X: exp: $33, got: $%02X", h.cpu.Reg.X)
	}
}

func TestChipExportLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nmos.yaml")
	h := New()
	out := runHost(t, h,
		"chip export "+path,
		"chip load "+path+" cmos",
		"chip info",
	)
	expectOutput(t, out,
		"Exported chip definition to 'nmos.yaml'.",
		"(cmos, 151 opcodes)",
		"Opcodes:  151 documented, 105 undocumented",
	)
	if h.cpu.Reg.PS != cpu.Status(cpu.Expansion) {
		t.Errorf("status: exp: %s, got: %s", cpu.Status(cpu.Expansion), h.cpu.Reg.PS)
	}
}

func TestScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lua")
	script := `
poke(0x20, 0x42)
print(peek(0x20))
setreg("A", 7)
print(reg("A"))
cmd("memory set $30 $99")
print(peek(0x30))
`
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	out := runHost(t, New(), "script "+path)
	expectOutput(t, out, "66\n7\n", "153\n")
}

func TestScriptError(t *testing.T) {
	h := New()
	if err := h.RunScriptString(`reg("Q")`); err == nil {
		t.Error("exp: error for unknown register, got: nil")
	}
}

func TestExecute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmds.txt")
	script := "# comment\nmemory set $40 $01 $02\n"
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	h := New()
	runHost(t, h, "execute "+path)
	if v := h.mem.LoadByte(0x41); v != 0x02 {
		t.Errorf("exp: $02, got: $%02X", v)
	}
}

func TestQuit(t *testing.T) {
	h := New()
	runHost(t, h, "quit", "memory set $50 $01")
	if v := h.mem.LoadByte(0x50); v != 0 {
		t.Errorf("exp: commands after quit ignored, got: $%02X", v)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bin")
	if err := os.WriteFile(path, []byte{0xa9, 0x01}, 0644); err != nil {
		t.Fatal(err)
	}

	h := New()
	out := runHost(t, h, "load "+path+"@$c000")
	expectOutput(t, out, "Loaded 'prog.bin' to $C000.")
	if v := h.mem.LoadByte(0xc001); v != 0x01 {
		t.Errorf("exp: $01, got: $%02X", v)
	}

	if err := h.LoadFile(path, 0xffff); err == nil {
		t.Error("exp: error loading past the end of memory, got: nil")
	}

	if err := h.LoadFileArg(path + "@$d000"); err != nil {
		t.Fatal(err)
	}
	if v := h.mem.LoadByte(0xd000); v != 0xa9 {
		t.Errorf("exp: $A9, got: $%02X", v)
	}
	if err := h.LoadFileArg(path + "@zz"); err == nil {
		t.Error("exp: error for a bad load address, got: nil")
	}
}

func TestValueParser(t *testing.T) {
	h := New()
	h.cpu.Reg.PC = 0x1234
	tests := []struct {
		in  string
		exp int64
	}{
		{"$ff", 255},
		{"0x10", 16},
		{"%101", 5},
		{"'A'", 65},
		{"42", 42},
		{"pc", 0x1234},
		{".+2", 0x1236},
		{"$10-1", 15},
		{"-3", -3},
	}
	for _, test := range tests {
		v, err := h.values.Parse(test.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.in, err)
			continue
		}
		if v != test.exp {
			t.Errorf("%s: exp: %d, got: %d", test.in, test.exp, v)
		}
	}
	if _, err := h.values.Parse("zz"); err == nil {
		t.Error("zz: exp: error, got: nil")
	}
}
