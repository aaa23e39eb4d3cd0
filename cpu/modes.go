// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMP  Mode = iota // Implied (no operand)
	ACC              // Accumulator (no operand)
	IMM              // Immediate
	ZPG              // Zero Page
	ZPX              // Zero Page,X
	ZPY              // Zero Page,Y
	REL              // Relative
	ABS              // Absolute
	ABX              // Absolute,X
	ABY              // Absolute,Y
	IND              // (Indirect)
	INDB             // (Indirect) with the NMOS page-wrap bug
	IDX              // (Indirect,X)
	IDY              // (Indirect),Y
)

type modeInfo struct {
	name   string
	short  string
	length byte
}

var modes = []modeInfo{
	IMP:  {"implied", "IMP", 1},
	ACC:  {"accumulator", "ACC", 1},
	IMM:  {"immediate", "IMM", 2},
	ZPG:  {"zero_page", "ZPG", 2},
	ZPX:  {"zero_page_x", "ZPX", 2},
	ZPY:  {"zero_page_y", "ZPY", 2},
	REL:  {"relative", "REL", 2},
	ABS:  {"absolute", "ABS", 3},
	ABX:  {"absolute_x", "ABX", 3},
	ABY:  {"absolute_y", "ABY", 3},
	IND:  {"absolute_indirect", "IND", 3},
	INDB: {"absolute_indirect", "IND", 3},
	IDX:  {"indexed_indirect", "IDX", 2},
	IDY:  {"indirect_indexed", "IDY", 2},
}

var modeAliases = map[string]Mode{
	"indirect_x": IDX,
	"indirect_y": IDY,
	"indirect":   IND,
}

// Length returns the size in bytes of an instruction using the mode,
// including the opcode.
func (m Mode) Length() byte {
	return modes[m].length
}

// String returns the name of the mode as used in chip definitions.
func (m Mode) String() string {
	return modes[m].name
}

// Short returns the three-letter abbreviation of the mode.
func (m Mode) Short() string {
	return modes[m].short
}

// ParseMode converts a mode name or abbreviation into a Mode. The match is
// case-insensitive.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := modeAliases[s]; ok {
		return m, nil
	}
	for i, info := range modes {
		if Mode(i) == INDB {
			continue
		}
		if info.name == s || strings.ToLower(info.short) == s {
			return Mode(i), nil
		}
	}
	return IMP, errors.Errorf("unknown addressing mode '%s'", s)
}

// An operand holds the effective address and value produced by an
// addressing mode. Either may be absent.
type operand struct {
	addr     uint16
	value    byte
	hasAddr  bool
	hasValue bool
}

// Return the operand value or ErrIncompleteInstruction if the addressing
// mode produced none.
func (o *operand) byteValue() (byte, error) {
	if !o.hasValue {
		return 0, ErrIncompleteInstruction
	}
	return o.value, nil
}

// Return the effective address or ErrIncompleteInstruction if the
// addressing mode produced none.
func (o *operand) address() (uint16, error) {
	if !o.hasAddr {
		return 0, ErrIncompleteInstruction
	}
	return o.addr, nil
}

// Fetch the byte at PC and advance PC.
func (cpu *CPU) fetch() byte {
	v := cpu.Mem.LoadByte(cpu.Reg.PC)
	cpu.Reg.PC++
	return v
}

// Fetch a little-endian address at PC and advance PC past it.
func (cpu *CPU) fetchAddress() uint16 {
	lo := cpu.fetch()
	hi := cpu.fetch()
	return Word(lo, hi)
}

// Load a 16-bit address whose low byte is at lo and whose high byte is at
// hi.
func (cpu *CPU) loadAddress(lo, hi uint16) uint16 {
	return Word(cpu.Mem.LoadByte(lo), cpu.Mem.LoadByte(hi))
}

// Resolve the operand of an instruction using the addressing mode. PC must
// point at the byte following the opcode. On return PC points at the next
// instruction.
func (cpu *CPU) resolve(mode Mode) operand {
	var o operand

	switch mode {
	case IMP:
		return o
	case ACC:
		o.value, o.hasValue = cpu.Reg.A, true
		return o
	case IMM:
		o.value, o.hasValue = cpu.fetch(), true
		return o
	case ZPG:
		o.addr = uint16(cpu.fetch())
	case ZPX:
		o.addr = uint16(cpu.fetch() + cpu.Reg.X)
	case ZPY:
		o.addr = uint16(cpu.fetch() + cpu.Reg.Y)
	case REL:
		offset := cpu.fetch()
		o.addr = offsetSigned(cpu.Reg.PC, offset)
	case ABS:
		o.addr = cpu.fetchAddress()
	case ABX:
		o.addr = cpu.fetchAddress() + uint16(cpu.Reg.X)
	case ABY:
		o.addr = cpu.fetchAddress() + uint16(cpu.Reg.Y)
	case IND:
		p := cpu.fetchAddress()
		o.addr = cpu.loadAddress(p, p+1)
	case INDB:
		// The high byte of the target is read from the start of the
		// pointer's page when the pointer ends in $FF.
		p := cpu.fetchAddress()
		o.addr = cpu.loadAddress(p, p&0xff00|uint16(byte(p)+1))
	case IDX:
		zp := cpu.fetch() + cpu.Reg.X
		o.addr = cpu.loadAddress(uint16(zp), uint16(zp+1))
	case IDY:
		zp := cpu.fetch()
		o.addr = cpu.loadAddress(uint16(zp), uint16(zp+1)) + uint16(cpu.Reg.Y)
	}

	o.hasAddr = true
	o.value, o.hasValue = cpu.Mem.LoadByte(o.addr), true
	return o
}

// Store the result of a read-modify-write instruction. The accumulator mode
// stores into A; all other modes store to the effective address.
func (cpu *CPU) write(mode Mode, o *operand, v byte) error {
	if mode == ACC {
		cpu.Reg.Set(RegA, uint16(v))
		return nil
	}
	addr, err := o.address()
	if err != nil {
		return err
	}
	cpu.storeByte(cpu, addr, v)
	return nil
}
