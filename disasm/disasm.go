// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set
// disassembler.
package disasm

import (
	"fmt"

	"github.com/emu6502/emu6502/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	cpu.IMP:  "%s",
	cpu.ACC:  "A",
	cpu.IMM:  "#$%s",
	cpu.ZPG:  "$%s",
	cpu.ZPX:  "$%s,X",
	cpu.ZPY:  "$%s,Y",
	cpu.REL:  "$%s",
	cpu.ABS:  "$%s",
	cpu.ABX:  "$%s,X",
	cpu.ABY:  "$%s,Y",
	cpu.IND:  "($%s)",
	cpu.INDB: "($%s)",
	cpu.IDX:  "($%s,X)",
	cpu.IDY:  "($%s),Y",
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the byte slice, most
// significant byte last in memory order.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble the machine code in memory 'm' at address 'addr' using the
// instruction set 'set'. Return a 'line' string representing the
// disassembled instruction and a 'next' address that starts the following
// line of machine code. Opcodes outside the set are rendered as a .BYTE
// directive one byte long.
func Disassemble(m cpu.Memory, set *cpu.InstructionSet, addr uint16) (line string, next uint16) {
	opcode := m.LoadByte(addr)
	inst := set.Lookup(opcode)
	if inst == nil {
		return fmt.Sprintf(".BYTE $%02X", opcode), addr + 1
	}

	operand := make([]byte, inst.Length-1)
	m.LoadBytes(addr+1, operand)
	if inst.Mode == cpu.REL {
		// Convert relative offset to absolute address.
		braddr := int(addr) + int(inst.Length) + int(int8(operand[0]))
		operand = []byte{byte(braddr), byte(braddr >> 8)}
	}

	switch inst.Mode {
	case cpu.IMP:
		line = inst.Name
	case cpu.ACC:
		line = inst.Name + " A"
	default:
		line = fmt.Sprintf("%s "+modeFormat[inst.Mode], inst.Name, hexString(operand))
	}
	next = addr + uint16(inst.Length)
	return
}

// GetRegisterString returns a string describing the contents of the 6502
// registers.
func GetRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, r.PS, r.SP, r.PC)
}

// Listing disassembles 'lines' consecutive instructions starting at 'addr'
// and returns them along with the address following the last one.
func Listing(m cpu.Memory, set *cpu.InstructionSet, addr uint16, lines int) ([]string, uint16) {
	out := make([]string, 0, lines)
	for i := 0; i < lines; i++ {
		var l string
		l, addr = Disassemble(m, set, addr)
		out = append(out, l)
	}
	return out, addr
}
