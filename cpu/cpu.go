// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a 6502 CPU instruction
// set and emulator.
package cpu

// State is the run state of the CPU.
type State byte

// CPU run states
const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "RUNNING"
	}
	return "STOPPED"
}

// BrkHandler is an interface implemented by types that wish to be notified
// when a BRK instruction is about to be executed.
type BrkHandler interface {
	OnBrk(cpu *CPU)
}

// StateHandler is an interface implemented by types that wish to be notified
// when the CPU changes run state.
type StateHandler interface {
	OnStateChange(cpu *CPU, s State)
}

// CPU represents a single 6502 CPU. It contains a pointer to the
// memory associated with the CPU.
type CPU struct {
	Reg          Registers       // CPU registers
	Mem          Memory          // assigned memory
	InstSet      *InstructionSet // Instruction set used by the CPU
	LastPC       uint16          // Address of the last fetched opcode
	Loaded       uint64          // Number of opcodes fetched since reset
	Executed     uint64          // Number of instructions executed since reset
	LoadLimit    uint64          // Stop before fetching beyond this count (0 = no limit)
	ExecLimit    uint64          // Stop after executing this many (0 = no limit)
	Housekeeping bool            // Run CLI and CLD as part of reset
	current      *Instruction
	state        State
	stackFull    bool
	ignoreBreak  bool
	dataHit      *DataBreakpointError
	debugger     *Debugger
	brkHandler   BrkHandler
	stateHandler StateHandler
	storeByte    func(cpu *CPU, addr uint16, v byte)
}

// Interrupt vectors
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

// NewCPU creates an emulated 6502 CPU bound to the specified memory and
// using the documented instruction set built for the chip profile.
func NewCPU(p Profile, m Memory) *CPU {
	cpu := &CPU{
		Mem:       m,
		InstSet:   GetInstructionSet(p),
		storeByte: (*CPU).storeByteNormal,
	}

	cpu.Reg.Init()
	return cpu
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.Set(RegPC, addr)
}

// SetSP updates the stack pointer to 'sp'.
func (cpu *CPU) SetSP(sp byte) {
	cpu.Reg.Set(RegSP, uint16(sp))
	cpu.stackFull = false
}

// State returns the current run state.
func (cpu *CPU) State() State {
	return cpu.state
}

// Current returns the instruction most recently fetched, or nil if nothing
// has been fetched since construction.
func (cpu *CPU) Current() *Instruction {
	return cpu.current
}

// GetInstruction returns the instruction opcode at the requested address,
// or nil if the opcode is undocumented.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Mem.LoadByte(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the next instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	inst := cpu.GetInstruction(addr)
	if inst == nil {
		return addr + 1
	}
	return addr + uint16(inst.Length)
}

// AttachBrkHandler attaches a handler that is called whenever the BRK
// instruction is executed.
func (cpu *CPU) AttachBrkHandler(handler BrkHandler) {
	cpu.brkHandler = handler
}

// AttachStateHandler attaches a handler that is called whenever the CPU
// changes run state.
func (cpu *CPU) AttachStateHandler(handler StateHandler) {
	cpu.stateHandler = handler
}

// AttachDebugger attaches a debugger to the CPU. The debugger supplies the
// breakpoints checked by Step and watches every byte stored to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the currently debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// SetState changes the run state. If the state differs from the current one,
// the attached state handler is notified.
func (cpu *CPU) SetState(s State) {
	if cpu.state == s {
		return
	}
	cpu.state = s
	if cpu.stateHandler != nil {
		cpu.stateHandler.OnStateChange(cpu, s)
	}
}

// Stop the CPU and return the signal reporting it.
func (cpu *CPU) stop() error {
	cpu.SetState(Stopped)
	return &StateChangedError{State: Stopped}
}

// Reset the CPU the way the 6502 does at power-on. PC is loaded from the
// reset vector and the instruction there is decoded without being executed.
// If Housekeeping is set, CLI and CLD are executed as well.
func (cpu *CPU) Reset() {
	cpu.Loaded = 0
	cpu.Executed = 0
	cpu.ignoreBreak = false
	cpu.dataHit = nil

	cpu.Reg.PS = 0
	cpu.Reg.PC = cpu.loadAddress(vectorReset, vectorReset+1)
	cpu.Reg.A = 0
	cpu.Reg.X = 0
	cpu.Reg.Y = 0
	cpu.Reg.SP = 0xff
	cpu.stackFull = false
	cpu.current = cpu.GetInstruction(cpu.Reg.PC)

	if cpu.Housekeeping {
		cpu.cli(nil, nil)
		cpu.cld(nil, nil)
		cpu.Loaded += 2
		cpu.Executed += 2
	}

	cpu.Reg.PS.Set(Expansion)
	cpu.Reg.PS.Set(Break)
	for _, reg := range RegisterList {
		cpu.Reg.notify(reg)
	}
	cpu.SetState(Running)
}

// Step the cpu by one instruction. Step returns a *BreakpointError,
// *DataBreakpointError or *StateChangedError to hand control back to the
// caller, or an error describing why the instruction could not run.
func (cpu *CPU) Step() error {
	if cpu.LoadLimit > 0 && cpu.Loaded >= cpu.LoadLimit {
		return cpu.stop()
	}

	cpu.LastPC = cpu.Reg.PC

	// Stop before an instruction with a breakpoint, but only once, so that
	// the next Step executes it.
	if cpu.debugger != nil && !cpu.ignoreBreak && cpu.debugger.isBreakpoint(cpu.LastPC) {
		cpu.ignoreBreak = true
		return &BreakpointError{Addr: cpu.LastPC}
	}
	cpu.ignoreBreak = false

	// Grab the next opcode at the current PC
	opcode := cpu.fetch()
	cpu.Loaded++

	// Look up the instruction data for the opcode
	inst := cpu.InstSet.Lookup(opcode)
	if inst == nil {
		return &UndocumentedError{Opcode: opcode, Addr: cpu.LastPC}
	}
	if inst.fn == nil {
		return &UnimplementedError{Name: inst.Name, Opcode: opcode, Addr: cpu.LastPC}
	}
	cpu.current = inst

	// If a BRK instruction is about to be executed and a BRK handler has been
	// installed, call the BRK handler instead of executing the instruction.
	if inst.Kind == BRK && cpu.brkHandler != nil {
		cpu.brkHandler.OnBrk(cpu)
		return nil
	}

	// Resolve the operand (if any), advancing the PC, and execute.
	cpu.dataHit = nil
	sp, ps := cpu.Reg.SP, cpu.Reg.PS
	o := cpu.resolve(inst.Mode)
	err := inst.fn(cpu, inst, &o)
	cpu.notifyChanges(sp, ps, cpu.LastPC+uint16(inst.Length))
	if err != nil {
		return err
	}
	cpu.Executed++

	if cpu.ExecLimit > 0 && cpu.Executed >= cpu.ExecLimit {
		err = cpu.stop()
	}
	if cpu.dataHit != nil {
		err, cpu.dataHit = cpu.dataHit, nil
	}
	return err
}

// Report changes to SP, PS and PC made since SP was 'sp' and PS was 'ps'.
// PC is reported only if it differs from 'next'.
func (cpu *CPU) notifyChanges(sp byte, ps Status, next uint16) {
	if cpu.Reg.watch == nil {
		return
	}
	if cpu.Reg.SP != sp {
		cpu.Reg.notify(RegSP)
	}
	if cpu.Reg.PS != ps {
		cpu.Reg.notify(RegPS)
	}
	if cpu.Reg.PC != next {
		cpu.Reg.notify(RegPC)
	}
}

// Run steps the CPU until Step returns an error or signal, or until 'n'
// instructions have been stepped. If n is zero, there is no step limit.
func (cpu *CPU) Run(n int) error {
	for i := 0; n == 0 || i < n; i++ {
		if err := cpu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// IRQ raises a maskable interrupt request. It is ignored while the
// InterruptDisable flag is set.
func (cpu *CPU) IRQ() error {
	if cpu.Reg.PS.Get(InterruptDisable) {
		return nil
	}
	return cpu.handleInterrupt(vectorIRQ)
}

// NMI raises a non-maskable interrupt.
func (cpu *CPU) NMI() error {
	return cpu.handleInterrupt(vectorNMI)
}

// Handle a hardware interrupt by storing the program counter and status
// flags on the stack. Then switch the program counter to the requested
// address.
func (cpu *CPU) handleInterrupt(vector uint16) error {
	sp, ps, pc := cpu.Reg.SP, cpu.Reg.PS, cpu.Reg.PC
	defer cpu.notifyChanges(sp, ps, pc)

	if err := cpu.pushAddress(cpu.Reg.PC); err != nil {
		return err
	}
	ps = cpu.Reg.PS
	ps.Clear(Break)
	ps.Set(Expansion)
	if err := cpu.push(byte(ps)); err != nil {
		return err
	}
	cpu.Reg.PS.Set(InterruptDisable)
	cpu.Reg.PC = cpu.loadAddress(vector, vector+1)
	return nil
}

// Store the byte value 'v' add the address 'addr'.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Mem.StoreByte(addr, v)
}

// Store the byte value 'v' add the address 'addr'.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	if cpu.debugger.isDataBreakpoint(addr, v) {
		cpu.dataHit = &DataBreakpointError{Addr: addr, Value: v}
	}
	cpu.Mem.StoreByte(addr, v)
}

// Push a value 'v' onto the stack. Pushing more than 256 bytes without a
// pop fails with ErrStackOverflow.
func (cpu *CPU) push(v byte) error {
	if cpu.stackFull {
		return ErrStackOverflow
	}
	cpu.storeByte(cpu, stackAddress(cpu.Reg.SP), v)
	if cpu.Reg.SP == 0 {
		cpu.stackFull = true
	}
	cpu.Reg.SP--
	return nil
}

// Push the address 'addr' onto the stack, high byte first.
func (cpu *CPU) pushAddress(addr uint16) error {
	if err := cpu.push(byte(addr >> 8)); err != nil {
		return err
	}
	return cpu.push(byte(addr))
}

// Pop a value from the stack and return it. Popping from an empty stack
// fails with ErrStackUnderflow.
func (cpu *CPU) pop() (byte, error) {
	if cpu.Reg.SP == 0xff && !cpu.stackFull {
		return 0, ErrStackUnderflow
	}
	cpu.stackFull = false
	cpu.Reg.SP++
	return cpu.Mem.LoadByte(stackAddress(cpu.Reg.SP)), nil
}

// Pop a 16-bit address off the stack.
func (cpu *CPU) popAddress() (uint16, error) {
	lo, err := cpu.pop()
	if err != nil {
		return 0, err
	}
	hi, err := cpu.pop()
	if err != nil {
		return 0, err
	}
	return Word(lo, hi), nil
}

// Push pushes a byte onto the stack.
func (cpu *CPU) Push(v byte) error {
	return cpu.push(v)
}

// Pop pops a byte off the stack.
func (cpu *CPU) Pop() (byte, error) {
	return cpu.pop()
}

// PushAddress pushes a 16-bit address onto the stack, high byte first.
func (cpu *CPU) PushAddress(addr uint16) error {
	return cpu.pushAddress(addr)
}

// PopAddress pops a 16-bit address off the stack.
func (cpu *CPU) PopAddress() (uint16, error) {
	return cpu.popAddress()
}

// Assign v to an 8-bit register and update N and Z from it.
func (cpu *CPU) setReg(reg Register, v byte) {
	cpu.Reg.Set(reg, uint16(v))
	cpu.Reg.TestRegisterResult(reg)
}

// Update the Zero and Negative flags based on the value of 'v'.
func (cpu *CPU) updateNZ(v byte) {
	cpu.Reg.PS.TestZero(v)
	cpu.Reg.PS.TestNegative(v)
}

// Execute a branch to the resolved address if 'cond' is true.
func (cpu *CPU) branch(o *operand, cond bool) error {
	addr, err := o.address()
	if err != nil {
		return err
	}
	if cond {
		cpu.Reg.PC = addr
	}
	return nil
}

// Load a register from the operand and update N and Z.
func (cpu *CPU) load(reg Register, o *operand) error {
	v, err := o.byteValue()
	if err != nil {
		return err
	}
	cpu.setReg(reg, v)
	return nil
}

// Store the value 'v' at the operand's address.
func (cpu *CPU) store(o *operand, v byte) error {
	addr, err := o.address()
	if err != nil {
		return err
	}
	cpu.storeByte(cpu, addr, v)
	return nil
}

// Compare register value 'r' to the operand.
func (cpu *CPU) compare(r byte, o *operand) error {
	v, err := o.byteValue()
	if err != nil {
		return err
	}
	cpu.Reg.PS.Assign(Carry, r >= v)
	cpu.updateNZ(r - v)
	return nil
}

// Apply 'fn' to the operand value, write the result back through the
// addressing mode and update N and Z.
func (cpu *CPU) modify(inst *Instruction, o *operand, fn func(v byte) byte) error {
	v, err := o.byteValue()
	if err != nil {
		return err
	}
	v = fn(v)
	cpu.updateNZ(v)
	return cpu.write(inst.Mode, o, v)
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction, o *operand) error {
	v, err := o.byteValue()
	if err != nil {
		return err
	}
	cpu.setReg(RegA, cpu.Reg.A&v)
	return nil
}

// Arithmetic Shift Left
func (cpu *CPU) asl(inst *Instruction, o *operand) error {
	return cpu.modify(inst, o, func(v byte) byte {
		cpu.Reg.PS.Assign(Carry, v&0x80 != 0)
		return v << 1
	})
}

// Branch if Carry Clear
func (cpu *CPU) bcc(inst *Instruction, o *operand) error {
	return cpu.branch(o, !cpu.Reg.PS.Get(Carry))
}

// Branch if Carry Set
func (cpu *CPU) bcs(inst *Instruction, o *operand) error {
	return cpu.branch(o, cpu.Reg.PS.Get(Carry))
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction, o *operand) error {
	return cpu.branch(o, cpu.Reg.PS.Get(Zero))
}

// Bit Test
func (cpu *CPU) bit(inst *Instruction, o *operand) error {
	v, err := o.byteValue()
	if err != nil {
		return err
	}
	cpu.Reg.PS.TestZero(v & cpu.Reg.A)
	cpu.Reg.PS.TestNegative(v)
	cpu.Reg.PS.Assign(Overflow, v&0x40 != 0)
	return nil
}

// Branch if MInus (negative)
func (cpu *CPU) bmi(inst *Instruction, o *operand) error {
	return cpu.branch(o, cpu.Reg.PS.Get(Negative))
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne(inst *Instruction, o *operand) error {
	return cpu.branch(o, !cpu.Reg.PS.Get(Zero))
}

// Branch if PLus (positive)
func (cpu *CPU) bpl(inst *Instruction, o *operand) error {
	return cpu.branch(o, !cpu.Reg.PS.Get(Negative))
}

// Break
func (cpu *CPU) brk(inst *Instruction, o *operand) error {
	cpu.Reg.PC++
	cpu.Reg.PS.Set(InterruptDisable)
	cpu.Reg.PS.Set(Break)
	if err := cpu.pushAddress(cpu.Reg.PC); err != nil {
		return err
	}
	if err := cpu.push(byte(cpu.Reg.PS)); err != nil {
		return err
	}
	cpu.Reg.PC = cpu.loadAddress(vectorBRK, vectorBRK+1)
	return nil
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc(inst *Instruction, o *operand) error {
	return cpu.branch(o, !cpu.Reg.PS.Get(Overflow))
}

// Branch if oVerflow Set
func (cpu *CPU) bvs(inst *Instruction, o *operand) error {
	return cpu.branch(o, cpu.Reg.PS.Get(Overflow))
}

// Clear Carry flag
func (cpu *CPU) clc(inst *Instruction, o *operand) error {
	cpu.Reg.PS.Clear(Carry)
	return nil
}

// Clear Decimal flag
func (cpu *CPU) cld(inst *Instruction, o *operand) error {
	cpu.Reg.PS.Clear(Decimal)
	return nil
}

// Clear InterruptDisable flag
func (cpu *CPU) cli(inst *Instruction, o *operand) error {
	cpu.Reg.PS.Clear(InterruptDisable)
	return nil
}

// Clear oVerflow flag
func (cpu *CPU) clv(inst *Instruction, o *operand) error {
	cpu.Reg.PS.Clear(Overflow)
	return nil
}

// Compare to accumulator
func (cpu *CPU) cmp(inst *Instruction, o *operand) error {
	return cpu.compare(cpu.Reg.A, o)
}

// Compare to X register
func (cpu *CPU) cpx(inst *Instruction, o *operand) error {
	return cpu.compare(cpu.Reg.X, o)
}

// Compare to Y register
func (cpu *CPU) cpy(inst *Instruction, o *operand) error {
	return cpu.compare(cpu.Reg.Y, o)
}

// Decrement memory value
func (cpu *CPU) dec(inst *Instruction, o *operand) error {
	return cpu.modify(inst, o, func(v byte) byte { return v - 1 })
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction, o *operand) error {
	cpu.setReg(RegX, cpu.Reg.X-1)
	return nil
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction, o *operand) error {
	cpu.setReg(RegY, cpu.Reg.Y-1)
	return nil
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction, o *operand) error {
	v, err := o.byteValue()
	if err != nil {
		return err
	}
	cpu.setReg(RegA, cpu.Reg.A^v)
	return nil
}

// Increment memory value
func (cpu *CPU) inc(inst *Instruction, o *operand) error {
	return cpu.modify(inst, o, func(v byte) byte { return v + 1 })
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction, o *operand) error {
	cpu.setReg(RegX, cpu.Reg.X+1)
	return nil
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction, o *operand) error {
	cpu.setReg(RegY, cpu.Reg.Y+1)
	return nil
}

// Jump to memory address. The page-wrap bug of the NMOS indirect jump is
// handled by the addressing mode.
func (cpu *CPU) jmp(inst *Instruction, o *operand) error {
	addr, err := o.address()
	if err != nil {
		return err
	}
	cpu.Reg.PC = addr
	return nil
}

// Jump to subroutine. The pushed return address is the address following
// the JSR operand, and RTS restores it unchanged.
func (cpu *CPU) jsr(inst *Instruction, o *operand) error {
	addr, err := o.address()
	if err != nil {
		return err
	}
	if err := cpu.pushAddress(cpu.Reg.PC); err != nil {
		return err
	}
	cpu.Reg.PC = addr
	return nil
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction, o *operand) error {
	return cpu.load(RegA, o)
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction, o *operand) error {
	return cpu.load(RegX, o)
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction, o *operand) error {
	return cpu.load(RegY, o)
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction, o *operand) error {
	return cpu.modify(inst, o, func(v byte) byte {
		cpu.Reg.PS.Assign(Carry, v&1 != 0)
		return v >> 1
	})
}

// No-operation
func (cpu *CPU) nop(inst *Instruction, o *operand) error {
	return nil
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction, o *operand) error {
	v, err := o.byteValue()
	if err != nil {
		return err
	}
	cpu.setReg(RegA, cpu.Reg.A|v)
	return nil
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction, o *operand) error {
	return cpu.push(cpu.Reg.A)
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction, o *operand) error {
	return cpu.push(byte(cpu.Reg.PS))
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction, o *operand) error {
	v, err := cpu.pop()
	if err != nil {
		return err
	}
	cpu.setReg(RegA, v)
	return nil
}

// Pull (pop) Processor flags
func (cpu *CPU) plp(inst *Instruction, o *operand) error {
	v, err := cpu.pop()
	if err != nil {
		return err
	}
	cpu.restorePS(v)
	return nil
}

// Restore the status register from a byte pulled off the stack. The
// expansion bit always reads as 1 and the break bit as 0.
func (cpu *CPU) restorePS(v byte) {
	cpu.Reg.PS = Status(v)
	cpu.Reg.PS.Set(Expansion)
	cpu.Reg.PS.Clear(Break)
}

// Rotate Left
func (cpu *CPU) rol(inst *Instruction, o *operand) error {
	return cpu.modify(inst, o, func(v byte) byte {
		carry := boolToByte(cpu.Reg.PS.Get(Carry))
		cpu.Reg.PS.Assign(Carry, v&0x80 != 0)
		return v<<1 | carry
	})
}

// Rotate Right
func (cpu *CPU) ror(inst *Instruction, o *operand) error {
	return cpu.modify(inst, o, func(v byte) byte {
		carry := boolToByte(cpu.Reg.PS.Get(Carry))
		cpu.Reg.PS.Assign(Carry, v&1 != 0)
		return v>>1 | carry<<7
	})
}

// Rotate Right (early NMOS silicon, carry flag is not updated)
func (cpu *CPU) rorNoCarry(inst *Instruction, o *operand) error {
	return cpu.modify(inst, o, func(v byte) byte {
		carry := boolToByte(cpu.Reg.PS.Get(Carry))
		return v>>1 | carry<<7
	})
}

// Return from Interrupt
func (cpu *CPU) rti(inst *Instruction, o *operand) error {
	v, err := cpu.pop()
	if err != nil {
		return err
	}
	addr, err := cpu.popAddress()
	if err != nil {
		return err
	}
	cpu.restorePS(v)
	cpu.Reg.PS.Clear(InterruptDisable)
	cpu.Reg.PC = addr
	return nil
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction, o *operand) error {
	addr, err := cpu.popAddress()
	if err != nil {
		return err
	}
	cpu.Reg.PC = addr
	return nil
}

// Set Carry flag
func (cpu *CPU) sec(inst *Instruction, o *operand) error {
	cpu.Reg.PS.Set(Carry)
	return nil
}

// Set Decimal flag
func (cpu *CPU) sed(inst *Instruction, o *operand) error {
	cpu.Reg.PS.Set(Decimal)
	return nil
}

// Set InterruptDisable flag
func (cpu *CPU) sei(inst *Instruction, o *operand) error {
	cpu.Reg.PS.Set(InterruptDisable)
	return nil
}

// Store Accumulator
func (cpu *CPU) sta(inst *Instruction, o *operand) error {
	return cpu.store(o, cpu.Reg.A)
}

// Store X register
func (cpu *CPU) stx(inst *Instruction, o *operand) error {
	return cpu.store(o, cpu.Reg.X)
}

// Store Y register
func (cpu *CPU) sty(inst *Instruction, o *operand) error {
	return cpu.store(o, cpu.Reg.Y)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction, o *operand) error {
	cpu.setReg(RegX, cpu.Reg.A)
	return nil
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction, o *operand) error {
	cpu.setReg(RegY, cpu.Reg.A)
	return nil
}

// Transfer stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction, o *operand) error {
	cpu.setReg(RegX, cpu.Reg.SP)
	return nil
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction, o *operand) error {
	cpu.setReg(RegA, cpu.Reg.X)
	return nil
}

// Transfer X register to the stack pointer
func (cpu *CPU) txs(inst *Instruction, o *operand) error {
	cpu.SetSP(cpu.Reg.X)
	return nil
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction, o *operand) error {
	cpu.setReg(RegA, cpu.Reg.Y)
	return nil
}
