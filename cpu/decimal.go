// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Add with carry in binary mode. Both chip generations behave the same.
func (cpu *CPU) adcBinary(m byte) {
	a := cpu.Reg.A
	r := uint(a) + uint(m) + uint(boolToByte(cpu.Reg.PS.Get(Carry)))
	cpu.Reg.PS.Assign(Carry, r > 0xff)
	cpu.Reg.PS.Assign(Overflow, ^(a^m)&(a^byte(r))&0x80 != 0)
	cpu.Reg.Set(RegA, uint16(byte(r)))
	cpu.updateNZ(cpu.Reg.A)
}

// Compute the BCD sum of a, m and the carry. Returns the adjusted result
// and the unadjusted sum of the nibbles, whose bit 7 the NMOS chip reports
// as the sign.
func bcdAdd(a, m byte, carry int) (r, rs int) {
	ln := int(a&0x0f) + int(m&0x0f) + carry
	if ln >= 0x0a {
		ln = ((ln + 0x06) & 0x0f) + 0x10
	}
	rs = ln + int(a&0xf0) + int(m&0xf0)
	r = rs
	if rs >= 0xa0 {
		r += 0x60
	}
	return r, rs
}

// Add with carry (NMOS)
func (cpu *CPU) adcn(inst *Instruction, o *operand) error {
	m, err := o.byteValue()
	if err != nil {
		return err
	}
	if !cpu.Reg.PS.Get(Decimal) {
		cpu.adcBinary(m)
		return nil
	}

	a := cpu.Reg.A
	carry := boolToInt(cpu.Reg.PS.Get(Carry))
	rb := int(a) + int(m) + carry
	r, rs := bcdAdd(a, m, carry)

	// N and Z come from intermediate results, not the accumulator.
	cpu.Reg.Set(RegA, uint16(byte(r)))
	cpu.Reg.PS.Assign(Carry, r > 0x99)
	cpu.Reg.PS.Assign(Negative, rs&0x80 != 0)
	cpu.Reg.PS.Assign(Zero, rb&0xff == 0)
	cpu.Reg.PS.Assign(Overflow, ^(int(a)^int(m))&(int(a)^rs)&0x80 != 0)
	return nil
}

// Add with carry (CMOS)
func (cpu *CPU) adcc(inst *Instruction, o *operand) error {
	m, err := o.byteValue()
	if err != nil {
		return err
	}
	if !cpu.Reg.PS.Get(Decimal) {
		cpu.adcBinary(m)
		return nil
	}

	r, _ := bcdAdd(cpu.Reg.A, m, boolToInt(cpu.Reg.PS.Get(Carry)))
	cpu.Reg.Set(RegA, uint16(byte(r)))
	cpu.Reg.PS.Assign(Carry, r > 0x99)
	cpu.Reg.PS.Assign(Overflow, r >= 0x80)
	cpu.updateNZ(cpu.Reg.A)
	return nil
}

// Subtract with carry in binary mode. Both chip generations behave the
// same. Returns the 9-bit binary sum used for the overflow flag.
func (cpu *CPU) sbcBinary(m byte) int {
	a := cpu.Reg.A
	sum := int(a) + int(0xff-m) + boolToInt(cpu.Reg.PS.Get(Carry))
	cpu.Reg.PS.Assign(Overflow, (int(a)^int(m))&(int(a)^sum)&0x80 != 0)
	cpu.Reg.PS.Assign(Carry, sum >= 0x100)
	cpu.Reg.Set(RegA, uint16(byte(sum)))
	cpu.updateNZ(cpu.Reg.A)
	return sum
}

// Subtract with Carry (NMOS)
func (cpu *CPU) sbcn(inst *Instruction, o *operand) error {
	m, err := o.byteValue()
	if err != nil {
		return err
	}
	a := cpu.Reg.A
	borrow := 1 - boolToInt(cpu.Reg.PS.Get(Carry))

	// The flags other than carry follow the binary subtraction.
	cpu.sbcBinary(m)
	if !cpu.Reg.PS.Get(Decimal) {
		return nil
	}

	ln := int(a&0x0f) - int(m&0x0f) - borrow
	if ln&0x10 != 0 {
		ln = ((ln - 0x06) & 0x0f) - 0x10
	}
	r := ln + int(a&0xf0) - int(m&0xf0)
	if r&0x100 != 0 {
		r -= 0x60
	}

	cpu.Reg.Set(RegA, uint16(byte(r)))
	cpu.Reg.PS.Assign(Carry, r >= 0)
	cpu.updateNZ(cpu.Reg.A)
	return nil
}

// Subtract with Carry (CMOS)
func (cpu *CPU) sbcc(inst *Instruction, o *operand) error {
	m, err := o.byteValue()
	if err != nil {
		return err
	}
	if !cpu.Reg.PS.Get(Decimal) {
		cpu.sbcBinary(m)
		return nil
	}

	a := int(cpu.Reg.A)
	sub := int(m)
	carry := boolToInt(cpu.Reg.PS.Get(Carry))
	full := a + (0xff - sub) + carry

	lo := 0x0f + (a & 0x0f) - (sub & 0x0f) + carry
	var carrylo int
	if lo < 0x10 {
		lo -= 0x06
	} else {
		lo -= 0x10
		carrylo = 0x10
	}

	hi := 0xf0 + (a & 0xf0) - (sub & 0xf0) + carrylo
	if hi < 0x100 {
		cpu.Reg.PS.Clear(Carry)
		hi -= 0x60
	} else {
		cpu.Reg.PS.Set(Carry)
		hi -= 0x100
	}

	cpu.Reg.Set(RegA, uint16(byte(hi&0xf0 | lo&0x0f)))
	cpu.Reg.PS.Assign(Overflow, (a^sub)&(a^full)&0x80 != 0)
	cpu.updateNZ(cpu.Reg.A)
	return nil
}
