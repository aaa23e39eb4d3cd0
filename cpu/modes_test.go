// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		mode     Mode
		pc       uint16
		operand  []byte
		x, y     byte
		setup    map[uint16]byte
		hasAddr  bool
		addr     uint16
		value    byte
		hasValue bool
	}{
		{mode: IMP, pc: 0x1000},
		{mode: IMM, pc: 0x1000, operand: []byte{0x42}, value: 0x42, hasValue: true},
		{mode: ZPG, pc: 0x1000, operand: []byte{0x80}, setup: map[uint16]byte{0x80: 0x11},
			hasAddr: true, addr: 0x80, value: 0x11, hasValue: true},
		{mode: ZPX, pc: 0x1000, operand: []byte{0xf0}, x: 0x20,
			hasAddr: true, addr: 0x10, hasValue: true},
		{mode: ZPY, pc: 0x1000, operand: []byte{0xff}, y: 0x01,
			hasAddr: true, addr: 0x00, hasValue: true},
		{mode: REL, pc: 0x1000, operand: []byte{0x10},
			hasAddr: true, addr: 0x1011, hasValue: true},
		{mode: REL, pc: 0x1000, operand: []byte{0xfe},
			hasAddr: true, addr: 0x0fff, hasValue: true},
		{mode: REL, pc: 0xffff, operand: []byte{0x02},
			hasAddr: true, addr: 0x0002, hasValue: true},
		{mode: ABS, pc: 0x1000, operand: []byte{0x34, 0x12}, setup: map[uint16]byte{0x1234: 0x99},
			hasAddr: true, addr: 0x1234, value: 0x99, hasValue: true},
		{mode: ABX, pc: 0x1000, operand: []byte{0xff, 0xff}, x: 0x02,
			hasAddr: true, addr: 0x0001, hasValue: true},
		{mode: ABY, pc: 0x1000, operand: []byte{0x00, 0x20}, y: 0x05,
			hasAddr: true, addr: 0x2005, hasValue: true},
		{mode: IND, pc: 0x1000, operand: []byte{0xff, 0x20}, setup: map[uint16]byte{0x20ff: 0x34, 0x2100: 0x12, 0x2000: 0x56},
			hasAddr: true, addr: 0x1234, hasValue: true},
		{mode: INDB, pc: 0x1000, operand: []byte{0xff, 0x20}, setup: map[uint16]byte{0x20ff: 0x34, 0x2100: 0x12, 0x2000: 0x56},
			hasAddr: true, addr: 0x5634, hasValue: true},
		{mode: INDB, pc: 0x1000, operand: []byte{0x10, 0x20}, setup: map[uint16]byte{0x2010: 0x34, 0x2011: 0x12},
			hasAddr: true, addr: 0x1234, hasValue: true},
		{mode: IDX, pc: 0x1000, operand: []byte{0xfe}, x: 0x01, setup: map[uint16]byte{0xff: 0x34, 0x00: 0x12, 0x1234: 0x77},
			hasAddr: true, addr: 0x1234, value: 0x77, hasValue: true},
		{mode: IDY, pc: 0x1000, operand: []byte{0xff}, y: 0x10, setup: map[uint16]byte{0xff: 0xf8, 0x00: 0xff},
			hasAddr: true, addr: 0x0008, hasValue: true},
	}

	for i, test := range tests {
		mem := NewFlatMemory()
		cpu := NewCPU(ProfileNMOS, mem)
		for a, v := range test.setup {
			mem.StoreByte(a, v)
		}
		mem.StoreBytes(test.pc, test.operand)
		cpu.Reg.PC = test.pc
		cpu.Reg.X = test.x
		cpu.Reg.Y = test.y

		o := cpu.resolve(test.mode)

		expPC := test.pc + uint16(test.mode.Length()) - 1
		if cpu.Reg.PC != expPC {
			t.Errorf("%d %s: PC incorrect. exp: $%04X, got: $%04X", i, test.mode.Short(), expPC, cpu.Reg.PC)
		}
		if o.hasAddr != test.hasAddr || o.addr != test.addr {
			t.Errorf("%d %s: address incorrect. exp: $%04X, got: $%04X", i, test.mode.Short(), test.addr, o.addr)
		}
		if o.hasValue != test.hasValue || o.value != test.value {
			t.Errorf("%d %s: value incorrect. exp: $%02X, got: $%02X", i, test.mode.Short(), test.value, o.value)
		}
		if (test.mode == ZPX || test.mode == ZPY) && o.addr > 0xff {
			t.Errorf("%d %s: zero page address out of page: $%04X", i, test.mode.Short(), o.addr)
		}
	}
}

func TestAccumulatorMode(t *testing.T) {
	cpu := NewCPU(ProfileNMOS, NewFlatMemory())
	cpu.Reg.A = 0x5a
	cpu.Reg.PC = 0x1000

	o := cpu.resolve(ACC)
	if o.hasAddr || !o.hasValue || o.value != 0x5a || cpu.Reg.PC != 0x1000 {
		t.Errorf("accumulator operand incorrect: %+v", o)
	}
	if err := cpu.write(ACC, &o, 0x12); err != nil || cpu.Reg.A != 0x12 {
		t.Errorf("accumulator write incorrect. exp: $12, got: $%02X", cpu.Reg.A)
	}

	var none operand
	if err := cpu.write(ZPG, &none, 0x12); err != ErrIncompleteInstruction {
		t.Errorf("expected incomplete instruction error, got: %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		s    string
		mode Mode
	}{
		{"implied", IMP},
		{"Zero_Page_X", ZPX},
		{"absolute_indirect", IND},
		{"indirect_x", IDX},
		{"indirect_y", IDY},
		{"indexed_indirect", IDX},
		{"ZPG", ZPG},
		{"rel", REL},
	}
	for _, test := range tests {
		m, err := ParseMode(test.s)
		if err != nil || m != test.mode {
			t.Errorf("ParseMode(%q) incorrect. exp: %s, got: %s (%v)", test.s, test.mode.Short(), m.Short(), err)
		}
	}
	if _, err := ParseMode("sideways"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}
