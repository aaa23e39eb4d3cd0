// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"strings"

	"github.com/pkg/errors"
)

// A Flag is one bit of the processor status register.
type Flag byte

// Bits assigned to the processor status byte
const (
	Carry            Flag = 1 << 0
	Zero             Flag = 1 << 1
	InterruptDisable Flag = 1 << 2
	Decimal          Flag = 1 << 3
	Break            Flag = 1 << 4
	Expansion        Flag = 1 << 5
	Overflow         Flag = 1 << 6
	Negative         Flag = 1 << 7
)

// Flags lists every status flag from bit 7 down to bit 0.
var Flags = []Flag{Negative, Overflow, Expansion, Break, Decimal, InterruptDisable, Zero, Carry}

var flagShort = map[Flag]string{
	Carry: "C", Zero: "Z", InterruptDisable: "I", Decimal: "D",
	Break: "B", Expansion: "E", Overflow: "V", Negative: "N",
}

var flagName = map[Flag]string{
	Carry: "Carry", Zero: "Zero", InterruptDisable: "Interrupt", Decimal: "Decimal",
	Break: "Break", Expansion: "Expansion", Overflow: "Overflow", Negative: "Negative",
}

// String returns the single-letter name of the flag.
func (f Flag) String() string {
	return flagShort[f]
}

// Name returns the long name of the flag.
func (f Flag) Name() string {
	return flagName[f]
}

// Pos returns the bit position of the flag within the status register.
func (f Flag) Pos() int {
	for i := 0; i < 8; i++ {
		if f == 1<<i {
			return i
		}
	}
	return -1
}

// ParseFlag returns the flag whose single-letter name is s.
func ParseFlag(s string) (Flag, error) {
	s = strings.ToUpper(s)
	for f, n := range flagShort {
		if n == s {
			return f, nil
		}
	}
	return 0, errors.Errorf("unknown flag '%s'", s)
}

// Status holds the processor status register. Every flag is a bit of the
// byte, so the byte and flag views can never disagree.
type Status byte

// Get returns true if flag f is set.
func (s Status) Get(f Flag) bool {
	return byte(s)&byte(f) != 0
}

// Set sets flag f.
func (s *Status) Set(f Flag) {
	*s |= Status(f)
}

// Clear clears flag f.
func (s *Status) Clear(f Flag) {
	*s &^= Status(f)
}

// Assign sets flag f if v is true and clears it otherwise.
func (s *Status) Assign(f Flag, v bool) {
	if v {
		s.Set(f)
	} else {
		s.Clear(f)
	}
}

// TestZero sets the Zero flag if v is zero.
func (s *Status) TestZero(v byte) {
	s.Assign(Zero, v == 0)
}

// TestNegative sets the Negative flag from bit 7 of v.
func (s *Status) TestNegative(v byte) {
	s.Assign(Negative, v&0x80 != 0)
}

// TestCarry sets the Carry flag if bit 7 of the subtraction result v is
// clear.
func (s *Status) TestCarry(v byte) {
	s.Assign(Carry, v&0x80 == 0)
}

// String returns the flags as letters, upper case when set.
func (s Status) String() string {
	var b [8]byte
	for i, f := range Flags {
		n := flagShort[f][0]
		if !s.Get(f) {
			n += 'a' - 'A'
		}
		b[i] = n
	}
	return string(b[:])
}

// A Register identifies one of the CPU registers.
type Register byte

// All CPU registers
const (
	RegA Register = iota
	RegX
	RegY
	RegSP
	RegPS
	RegPC
)

// RegisterList lists every register.
var RegisterList = []Register{RegA, RegX, RegY, RegSP, RegPS, RegPC}

var regNames = []string{"A", "X", "Y", "SP", "PS", "PC"}
var regLongNames = []string{"Accumulator", "X index", "Y index", "Stack pointer", "Processor status", "Program counter"}

// String returns the short name of the register.
func (r Register) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return "?"
}

// Name returns the long name of the register.
func (r Register) Name() string {
	if int(r) < len(regLongNames) {
		return regLongNames[r]
	}
	return "?"
}

// Width returns the register size in bits.
func (r Register) Width() int {
	if r == RegPC {
		return 16
	}
	return 8
}

func (r Register) mask() uint16 {
	if r == RegPC {
		return 0xffff
	}
	return 0xff
}

// ParseRegister returns the register with short name s. "S" and "P" are
// accepted as aliases for the stack pointer and status registers.
func ParseRegister(s string) (Register, error) {
	s = strings.ToUpper(s)
	switch s {
	case "S":
		return RegSP, nil
	case "P":
		return RegPS, nil
	}
	for i, n := range regNames {
		if n == s {
			return Register(i), nil
		}
	}
	return 0, errors.Errorf("unknown register '%s'", s)
}

// Registers contains the state of all 6502 registers.
type Registers struct {
	A     byte   // accumulator
	X     byte   // X indexing register
	Y     byte   // Y indexing register
	SP    byte   // stack pointer ($100 + SP = stack memory location)
	PC    uint16 // program counter
	PS    Status // processor status
	watch func(r Register, v uint16)
}

// Init initializes all registers. A, X, Y = 0. SP = 0xff. PC = 0. PS = 0.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = 0xff
	r.PC = 0
	r.PS = 0
}

// Watch installs a function called whenever a register changes. A, X and
// Y are reported as they are written, whether by Set, Inc, Dec, Add or an
// instruction. A stepping CPU reports SP, PS and PC once per instruction
// if they changed, and PC only when it does not simply move past the
// instruction. The function must not modify the registers.
func (r *Registers) Watch(fn func(reg Register, v uint16)) {
	r.watch = fn
}

func (r *Registers) notify(reg Register) {
	if r.watch != nil {
		r.watch(reg, r.Get(reg))
	}
}

// Get returns the value of the register.
func (r *Registers) Get(reg Register) uint16 {
	switch reg {
	case RegA:
		return uint16(r.A)
	case RegX:
		return uint16(r.X)
	case RegY:
		return uint16(r.Y)
	case RegSP:
		return uint16(r.SP)
	case RegPS:
		return uint16(r.PS)
	default:
		return r.PC
	}
}

// Set assigns v to the register, truncated to the register's width.
func (r *Registers) Set(reg Register, v uint16) {
	v &= reg.mask()
	switch reg {
	case RegA:
		r.A = byte(v)
	case RegX:
		r.X = byte(v)
	case RegY:
		r.Y = byte(v)
	case RegSP:
		r.SP = byte(v)
	case RegPS:
		r.PS = Status(v)
	default:
		r.PC = v
	}
	r.notify(reg)
}

// Inc increments the register, wrapping within its width.
func (r *Registers) Inc(reg Register) {
	r.Add(reg, 1)
}

// Dec decrements the register, wrapping within its width.
func (r *Registers) Dec(reg Register) {
	r.Add(reg, -1)
}

// Add adds n to the register, wrapping within its width.
func (r *Registers) Add(reg Register, n int) {
	r.Set(reg, uint16(int(r.Get(reg))+n))
}

// TestRegisterResult updates the Zero and Negative flags from the value of
// an 8-bit register.
func (r *Registers) TestRegisterResult(reg Register) {
	v := byte(r.Get(reg))
	r.PS.TestZero(v)
	r.PS.TestNegative(v)
}
