// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/emu6502/emu6502/cpu"
	"github.com/pkg/errors"
)

// Create a CPU whose reset vector points at 'origin', where 'code' is
// stored.
func loadCPU(p cpu.Profile, origin uint16, code ...byte) *cpu.CPU {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(origin, code)
	mem.StoreByte(0xfffc, byte(origin))
	mem.StoreByte(0xfffd, byte(origin>>8))
	c := cpu.NewCPU(p, mem)
	c.Reset()
	return c
}

func stepCPU(t *testing.T, c *cpu.CPU, steps int) {
	t.Helper()
	for i := 0; i < steps; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	t.Helper()
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectX(t *testing.T, c *cpu.CPU, x byte) {
	t.Helper()
	if c.Reg.X != x {
		t.Errorf("X register incorrect. exp: $%02X, got: $%02X", x, c.Reg.X)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: $%02X, got $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	t.Helper()
	got := c.Mem.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func expectFlag(t *testing.T, c *cpu.CPU, f cpu.Flag, v bool) {
	t.Helper()
	if c.Reg.PS.Get(f) != v {
		t.Errorf("%s flag incorrect. exp: %v, got: %v", f.Name(), v, !v)
	}
}

func TestAccumulator(t *testing.T) {
	// LDA #$5E; STA $15; STA $1500
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xa9, 0x5e, 0x85, 0x15, 0x8d, 0x00, 0x15)
	stepCPU(t, c, 3)

	expectPC(t, c, 0x1007)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

func TestStack(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000,
		0xa9, 0x11, 0x48, // LDA #$11; PHA
		0xa9, 0x12, 0x48, // LDA #$12; PHA
		0xa9, 0x13, 0x48, // LDA #$13; PHA
		0x68, 0x8d, 0x00, 0x20, // PLA; STA $2000
		0x68, 0x8d, 0x01, 0x20, // PLA; STA $2001
		0x68, 0x8d, 0x02, 0x20, // PLA; STA $2002
	)
	stepCPU(t, c, 6)

	expectSP(t, c, 0xfc)
	expectACC(t, c, 0x13)
	expectMem(t, c, 0x1ff, 0x11)
	expectMem(t, c, 0x1fe, 0x12)
	expectMem(t, c, 0x1fd, 0x13)

	stepCPU(t, c, 6)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x2000, 0x13)
	expectMem(t, c, 0x2001, 0x12)
	expectMem(t, c, 0x2002, 0x11)
}

func TestNOPLoadLimit(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(0x0000, []byte{0xea, 0xea, 0xea})
	c := cpu.NewCPU(cpu.ProfileNMOS, mem)
	c.LoadLimit = 3
	c.Reset()

	if c.State() != cpu.Running {
		t.Errorf("state incorrect after reset. exp: %s, got: %s", cpu.Running, c.State())
	}

	stepCPU(t, c, 3)
	expectPC(t, c, 0x0003)
	if c.Executed != 3 {
		t.Errorf("executed count incorrect. exp: 3, got: %d", c.Executed)
	}

	err := c.Step()
	var sc *cpu.StateChangedError
	if !errors.As(err, &sc) || sc.State != cpu.Stopped {
		t.Fatalf("expected state change to STOPPED, got: %v", err)
	}
	if c.Loaded != 3 {
		t.Errorf("loaded count incorrect. exp: 3, got: %d", c.Loaded)
	}
	expectPC(t, c, 0x0003)
	if c.State() != cpu.Stopped {
		t.Errorf("state incorrect. exp: %s, got: %s", cpu.Stopped, c.State())
	}
}

func TestExecLimit(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x0000, 0xea, 0xea, 0xea)
	c.ExecLimit = 2
	c.Reset()

	stepCPU(t, c, 1)
	err := c.Step()
	var sc *cpu.StateChangedError
	if !errors.As(err, &sc) {
		t.Fatalf("expected state change, got: %v", err)
	}
	if c.Executed != 2 {
		t.Errorf("executed count incorrect. exp: 2, got: %d", c.Executed)
	}
	expectPC(t, c, 0x0002)
}

type stateRecorder struct {
	states []cpu.State
}

func (r *stateRecorder) OnStateChange(c *cpu.CPU, s cpu.State) {
	r.states = append(r.states, s)
}

func TestStateHandler(t *testing.T) {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(cpu.ProfileNMOS, mem)
	r := &stateRecorder{}
	c.AttachStateHandler(r)
	c.LoadLimit = 1
	mem.StoreByte(0, 0xea)

	c.Reset()
	c.Reset()
	stepCPU(t, c, 1)
	c.Step()
	c.Step()

	if len(r.states) != 2 || r.states[0] != cpu.Running || r.states[1] != cpu.Stopped {
		t.Errorf("state transitions incorrect. exp: [RUNNING STOPPED], got: %v", r.states)
	}
}

func TestDelayLoop(t *testing.T) {
	// LDX #5; loop: DEX; BNE loop; NOP
	c := loadCPU(cpu.ProfileNMOS, 0x0000, 0xa2, 0x05, 0xca, 0xd0, 0xfd, 0xea)
	stepCPU(t, c, 11)

	expectPC(t, c, 0x0005)
	expectX(t, c, 0x00)
	expectFlag(t, c, cpu.Zero, true)
	if inst := c.GetInstruction(c.Reg.PC); inst == nil || inst.Kind != cpu.NOP {
		t.Errorf("expected NOP at PC")
	}
}

func TestSubroutine(t *testing.T) {
	// JSR $0005; ...; RTS at $0005
	c := loadCPU(cpu.ProfileNMOS, 0x0000, 0x20, 0x05, 0x00, 0xea, 0xea, 0x60)

	stepCPU(t, c, 1)
	expectSP(t, c, 0xfd)
	expectMem(t, c, 0x01ff, 0x00)
	expectMem(t, c, 0x01fe, 0x03)
	expectPC(t, c, 0x0005)

	stepCPU(t, c, 1)
	expectPC(t, c, 0x0003)
	expectSP(t, c, 0xff)
}

func TestBrkRti(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x0000, 0x00)
	c.Mem.StoreByte(0xfffe, 0x10)
	c.Mem.StoreByte(0xffff, 0x20)
	c.Mem.StoreByte(0x2010, 0x40)

	stepCPU(t, c, 1)
	expectPC(t, c, 0x2010)
	expectMem(t, c, 0x01ff, 0x00)
	expectMem(t, c, 0x01fe, 0x02)
	expectMem(t, c, 0x01fd, 0x34)
	expectFlag(t, c, cpu.InterruptDisable, true)

	stepCPU(t, c, 1)
	expectPC(t, c, 0x0002)
	expectSP(t, c, 0xff)
	expectFlag(t, c, cpu.InterruptDisable, false)
	expectFlag(t, c, cpu.Break, false)
	expectFlag(t, c, cpu.Expansion, true)
}

type brkCounter struct {
	n int
}

func (b *brkCounter) OnBrk(c *cpu.CPU) {
	b.n++
	c.SetPC(c.Reg.PC + 1)
}

func TestBrkHandler(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0x00, 0x00, 0xea)
	h := &brkCounter{}
	c.AttachBrkHandler(h)

	stepCPU(t, c, 2)
	if h.n != 1 {
		t.Errorf("BRK handler calls incorrect. exp: 1, got: %d", h.n)
	}
	expectPC(t, c, 0x1003)
	expectSP(t, c, 0xff)
}

func TestIndirectJumpPageBug(t *testing.T) {
	setup := func(p cpu.Profile) *cpu.CPU {
		c := loadCPU(p, 0x0200, 0x6c, 0xff, 0x00)
		c.Mem.StoreByte(0x00ff, 0x4d)
		c.Mem.StoreByte(0x0000, 0x9a)
		c.Mem.StoreByte(0x0100, 0x12)
		return c
	}

	c := setup(cpu.ProfileNMOS)
	stepCPU(t, c, 1)
	expectPC(t, c, 0x9a4d)

	c = setup(cpu.Profile{Generation: cpu.NMOS})
	stepCPU(t, c, 1)
	expectPC(t, c, 0x124d)

	c = setup(cpu.ProfileCMOS)
	stepCPU(t, c, 1)
	expectPC(t, c, 0x124d)
}

func TestDecimalAdcChipSplit(t *testing.T) {
	// SED; SEC; ADC #$99
	code := []byte{0xf8, 0x38, 0x69, 0x99}

	c := loadCPU(cpu.ProfileNMOS, 0x1000, code...)
	stepCPU(t, c, 3)
	expectACC(t, c, 0x00)
	expectFlag(t, c, cpu.Carry, true)
	expectFlag(t, c, cpu.Zero, false)
	expectFlag(t, c, cpu.Overflow, false)
	expectFlag(t, c, cpu.Negative, true)

	c = loadCPU(cpu.ProfileCMOS, 0x1000, code...)
	stepCPU(t, c, 3)
	expectACC(t, c, 0x00)
	expectFlag(t, c, cpu.Carry, true)
	expectFlag(t, c, cpu.Zero, true)
	expectFlag(t, c, cpu.Overflow, true)
	expectFlag(t, c, cpu.Negative, false)
}

func TestReset(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreByte(0xfffc, 0x34)
	mem.StoreByte(0xfffd, 0x12)
	mem.StoreByte(0x1234, 0xa9)
	c := cpu.NewCPU(cpu.ProfileNMOS, mem)
	c.Reg.A, c.Reg.X, c.Reg.Y = 1, 2, 3
	c.Reg.PS = 0xff
	c.Reset()

	expectPC(t, c, 0x1234)
	expectACC(t, c, 0)
	expectX(t, c, 0)
	if c.Reg.Y != 0 {
		t.Errorf("Y register incorrect. exp: $00, got: $%02X", c.Reg.Y)
	}
	expectSP(t, c, 0xff)
	if c.Reg.PS != 0x30 {
		t.Errorf("status incorrect. exp: $30, got: $%02X", byte(c.Reg.PS))
	}
	if inst := c.Current(); inst == nil || inst.Kind != cpu.LDA {
		t.Errorf("current instruction incorrect after reset")
	}
	if c.Executed != 0 || c.Loaded != 0 {
		t.Errorf("counters not cleared. loaded: %d, executed: %d", c.Loaded, c.Executed)
	}
}

func TestResetHousekeeping(t *testing.T) {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(cpu.ProfileNMOS, mem)
	c.Housekeeping = true
	c.Reset()

	if c.Executed != 2 || c.Loaded != 2 {
		t.Errorf("counters incorrect. exp: 2/2, got: %d/%d", c.Loaded, c.Executed)
	}
	expectFlag(t, c, cpu.InterruptDisable, false)
	expectFlag(t, c, cpu.Decimal, false)
	expectFlag(t, c, cpu.Expansion, true)
	expectFlag(t, c, cpu.Break, true)
}

func TestBreakpoint(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xea, 0xea, 0xea)
	d := cpu.NewDebugger()
	c.AttachDebugger(d)
	d.AddBreakpoint(0x1001)

	stepCPU(t, c, 1)

	err := c.Step()
	var bp *cpu.BreakpointError
	if !errors.As(err, &bp) || bp.Addr != 0x1001 {
		t.Fatalf("expected breakpoint at $1001, got: %v", err)
	}
	expectPC(t, c, 0x1001)

	// The guard lets the next step run the instruction.
	stepCPU(t, c, 1)
	expectPC(t, c, 0x1002)

	d.GetBreakpoint(0x1001).Disabled = true
	c.SetPC(0x1001)
	stepCPU(t, c, 1)
	expectPC(t, c, 0x1002)
}

func TestDataBreakpoint(t *testing.T) {
	// LDA #$07; STA $20; STA $21
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xa9, 0x07, 0x85, 0x20, 0x85, 0x21)
	d := cpu.NewDebugger()
	c.AttachDebugger(d)
	d.AddConditionalDataBreakpoint(0x20, 0x07)
	d.AddConditionalDataBreakpoint(0x21, 0x08)

	stepCPU(t, c, 1)
	err := c.Step()
	var dbp *cpu.DataBreakpointError
	if !errors.As(err, &dbp) || dbp.Addr != 0x20 || dbp.Value != 0x07 {
		t.Fatalf("expected data breakpoint at $20, got: %v", err)
	}
	expectMem(t, c, 0x20, 0x07)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x21, 0x07)

	c.DetachDebugger()
	if len(d.GetDataBreakpoints()) != 2 {
		t.Errorf("data breakpoint count incorrect")
	}
}

func TestUndocumented(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0x02)
	err := c.Step()
	if !errors.Is(err, cpu.ErrUndocumented) {
		t.Fatalf("expected undocumented opcode error, got: %v", err)
	}
	var ue *cpu.UndocumentedError
	if !errors.As(err, &ue) || ue.Opcode != 0x02 || ue.Addr != 0x1000 {
		t.Errorf("undocumented error incorrect: %v", err)
	}
}

func TestUnimplemented(t *testing.T) {
	set, err := cpu.BuildInstructionSet([]cpu.OpcodeSpec{
		{Opcode: 0x02, Kind: cpu.Kind(200), Mode: cpu.IMP},
	}, cpu.ProfileNMOS)
	if err != nil {
		t.Fatal(err)
	}
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0x02)
	c.InstSet = set

	err = c.Step()
	if !errors.Is(err, cpu.ErrUnimplemented) {
		t.Errorf("expected unimplemented error, got: %v", err)
	}
}

func TestIncompleteInstruction(t *testing.T) {
	set, err := cpu.BuildInstructionSet([]cpu.OpcodeSpec{
		{Opcode: 0xa9, Kind: cpu.LDA, Mode: cpu.IMP},
	}, cpu.ProfileNMOS)
	if err != nil {
		t.Fatal(err)
	}
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xa9)
	c.InstSet = set

	err = c.Step()
	if !errors.Is(err, cpu.ErrIncompleteInstruction) {
		t.Errorf("expected incomplete instruction error, got: %v", err)
	}
}

func TestStackLimits(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000)

	if _, err := c.Pop(); !errors.Is(err, cpu.ErrStackUnderflow) {
		t.Errorf("expected stack underflow, got: %v", err)
	}

	for i := 0; i < 256; i++ {
		if err := c.Push(byte(i)); err != nil {
			t.Fatalf("push %d failed: %v", i, err)
		}
	}
	if err := c.Push(0); !errors.Is(err, cpu.ErrStackOverflow) {
		t.Errorf("expected stack overflow, got: %v", err)
	}

	for i := 255; i >= 0; i-- {
		v, err := c.Pop()
		if err != nil {
			t.Fatalf("pop %d failed: %v", i, err)
		}
		if v != byte(i) {
			t.Errorf("popped value incorrect. exp: $%02X, got: $%02X", i, v)
		}
	}
	expectSP(t, c, 0xff)
}

func TestStackAddress(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000)
	if err := c.Push(0x42); err != nil {
		t.Fatal(err)
	}
	if err := c.PushAddress(0xbeef); err != nil {
		t.Fatal(err)
	}
	expectMem(t, c, 0x1fe, 0xbe)
	expectMem(t, c, 0x1fd, 0xef)

	addr, err := c.PopAddress()
	if err != nil || addr != 0xbeef {
		t.Errorf("popped address incorrect. exp: $BEEF, got: $%04X (%v)", addr, err)
	}
	v, err := c.Pop()
	if err != nil || v != 0x42 {
		t.Errorf("popped value incorrect. exp: $42, got: $%02X (%v)", v, err)
	}
	expectSP(t, c, 0xff)
}

func TestPlpForcesBits(t *testing.T) {
	// LDA #$FF; PHA; PLP
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xa9, 0xff, 0x48, 0x28)
	stepCPU(t, c, 3)
	if c.Reg.PS != 0xef {
		t.Errorf("status incorrect. exp: $EF, got: $%02X", byte(c.Reg.PS))
	}
}

func TestIRQ(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xea)
	c.Mem.StoreByte(0xfffe, 0x00)
	c.Mem.StoreByte(0xffff, 0x30)
	c.Mem.StoreByte(0xfffa, 0x00)
	c.Mem.StoreByte(0xfffb, 0x40)

	c.Reg.PS.Set(cpu.InterruptDisable)
	if err := c.IRQ(); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, 0x1000)

	c.Reg.PS.Clear(cpu.InterruptDisable)
	if err := c.IRQ(); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, 0x3000)
	expectMem(t, c, 0x1fd, 0x20)
	expectFlag(t, c, cpu.InterruptDisable, true)

	if err := c.NMI(); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, 0x4000)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		r, m    byte
		c, z, n bool
	}{
		{0x10, 0x10, true, true, false},
		{0x10, 0x20, false, false, true},
		{0x20, 0x10, true, false, false},
		{0xff, 0x00, true, false, true},
	}

	for _, test := range tests {
		// LDX #r; CPX #m
		c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xa2, test.r, 0xe0, test.m)
		stepCPU(t, c, 2)
		expectFlag(t, c, cpu.Carry, test.c)
		expectFlag(t, c, cpu.Zero, test.z)
		expectFlag(t, c, cpu.Negative, test.n)
	}
}

func TestShifts(t *testing.T) {
	// SEC; LDA #$81; ROR A; STA $10; ROL $10; LSR $10; ASL A
	c := loadCPU(cpu.ProfileNMOS, 0x1000,
		0x38, 0xa9, 0x81, 0x6a, 0x85, 0x10, 0x26, 0x10, 0x46, 0x10, 0x0a)

	stepCPU(t, c, 3)
	expectACC(t, c, 0xc0)
	expectFlag(t, c, cpu.Carry, true)
	expectFlag(t, c, cpu.Negative, true)

	stepCPU(t, c, 2)
	expectMem(t, c, 0x10, 0x81)
	expectFlag(t, c, cpu.Carry, true)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x10, 0x40)
	expectFlag(t, c, cpu.Carry, true)
	expectFlag(t, c, cpu.Negative, false)

	stepCPU(t, c, 1)
	expectACC(t, c, 0x80)
	expectFlag(t, c, cpu.Carry, true)
}

func TestRorNoCarryBug(t *testing.T) {
	// CLC; LDA #$01; ROR A
	code := []byte{0x18, 0xa9, 0x01, 0x6a}

	c := loadCPU(cpu.ProfileNMOS, 0x1000, code...)
	stepCPU(t, c, 3)
	expectACC(t, c, 0x00)
	expectFlag(t, c, cpu.Carry, true)

	c = loadCPU(cpu.ProfileNMOSEarly, 0x1000, code...)
	stepCPU(t, c, 3)
	expectACC(t, c, 0x00)
	expectFlag(t, c, cpu.Carry, false)
}

func TestBit(t *testing.T) {
	// LDA #$01; BIT $10
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xa9, 0x01, 0x24, 0x10)
	c.Mem.StoreByte(0x10, 0xc0)
	stepCPU(t, c, 2)
	expectFlag(t, c, cpu.Zero, true)
	expectFlag(t, c, cpu.Negative, true)
	expectFlag(t, c, cpu.Overflow, true)
}

func TestTransfers(t *testing.T) {
	// LDA #$80; TAX; TAY; LDX #$00; TXS; TSX; INX; TXA; DEY; TYA
	c := loadCPU(cpu.ProfileNMOS, 0x1000,
		0xa9, 0x80, 0xaa, 0xa8, 0xa2, 0x00, 0x9a, 0xba, 0xe8, 0x8a, 0x88, 0x98)
	stepCPU(t, c, 3)
	expectX(t, c, 0x80)
	expectFlag(t, c, cpu.Negative, true)

	stepCPU(t, c, 3)
	expectSP(t, c, 0x00)
	expectFlag(t, c, cpu.Zero, true)

	stepCPU(t, c, 2)
	expectACC(t, c, 0x01)

	stepCPU(t, c, 2)
	expectACC(t, c, 0x7f)
	expectFlag(t, c, cpu.Negative, false)
}

func TestMemoryModify(t *testing.T) {
	// INC $10; DEC $11; INC $12,X
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xe6, 0x10, 0xc6, 0x11, 0xf6, 0x12)
	c.Mem.StoreByte(0x10, 0xff)
	c.Mem.StoreByte(0x11, 0x00)
	c.Reg.X = 0xf0
	c.Mem.StoreByte(0x02, 0x41)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x10, 0x00)
	expectFlag(t, c, cpu.Zero, true)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x11, 0xff)
	expectFlag(t, c, cpu.Negative, true)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x02, 0x42)
}

func TestRun(t *testing.T) {
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xea, 0xea, 0xea, 0x02)
	if err := c.Run(2); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, 0x1002)

	err := c.Run(0)
	if !errors.Is(err, cpu.ErrUndocumented) {
		t.Errorf("expected run to stop on undocumented opcode, got: %v", err)
	}
	if !cpu.IsSignal(&cpu.BreakpointError{}) || cpu.IsSignal(err) {
		t.Errorf("IsSignal incorrect")
	}
}

func TestRegisterWatch(t *testing.T) {
	// LDA #$42; SEC; PHA; JMP $1000
	c := loadCPU(cpu.ProfileNMOS, 0x1000, 0xa9, 0x42, 0x38, 0x48, 0x4c, 0x00, 0x10)

	type change struct {
		reg cpu.Register
		v   uint16
	}
	var changes []change
	c.Reg.Watch(func(reg cpu.Register, v uint16) {
		changes = append(changes, change{reg, v})
	})
	stepCPU(t, c, 4)

	exp := []change{
		{cpu.RegA, 0x42},
		{cpu.RegPS, 0x31},
		{cpu.RegSP, 0xfe},
		{cpu.RegPC, 0x1000},
	}
	if len(changes) != len(exp) {
		t.Fatalf("watch notifications incorrect. exp: %v, got: %v", exp, changes)
	}
	for i := range exp {
		if changes[i] != exp[i] {
			t.Errorf("watch notification %d incorrect. exp: %s=$%02X, got: %s=$%02X",
				i, exp[i].reg, exp[i].v, changes[i].reg, changes[i].v)
		}
	}
}
