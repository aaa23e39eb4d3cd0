// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors
var (
	ErrMemoryOutOfRange      = errors.New("memory access out of range")
	ErrIncompleteInstruction = errors.New("instruction operand missing")
	ErrUndocumented          = errors.New("undocumented opcode")
	ErrUnimplemented         = errors.New("unimplemented instruction")
	ErrStackOverflow         = errors.New("stack overflow")
	ErrStackUnderflow        = errors.New("stack underflow")
	ErrValueOutOfRange       = errors.New("value out of range")
)

// An UndocumentedError is returned by Step when the fetched opcode has no
// entry in the CPU's instruction set.
type UndocumentedError struct {
	Opcode byte   // the opcode fetched
	Addr   uint16 // address the opcode was fetched from
}

func (e *UndocumentedError) Error() string {
	return fmt.Sprintf("undocumented opcode $%02X at $%04X", e.Opcode, e.Addr)
}

// Unwrap returns ErrUndocumented.
func (e *UndocumentedError) Unwrap() error {
	return ErrUndocumented
}

// A BreakpointError is returned by Step when the CPU reaches an address with
// an enabled breakpoint. The instruction at the address has not been
// executed. The next call to Step executes it.
type BreakpointError struct {
	Addr uint16
}

func (e *BreakpointError) Error() string {
	return fmt.Sprintf("breakpoint at $%04X", e.Addr)
}

// A DataBreakpointError is returned by Step after an instruction stored a
// byte to an address with an enabled data breakpoint.
type DataBreakpointError struct {
	Addr  uint16 // address stored to
	Value byte   // value stored
}

func (e *DataBreakpointError) Error() string {
	return fmt.Sprintf("data breakpoint at $%04X (value $%02X)", e.Addr, e.Value)
}

// A StateChangedError is returned when the CPU has left the RUNNING state
// because a load or execute limit was reached.
type StateChangedError struct {
	State State
}

func (e *StateChangedError) Error() string {
	return fmt.Sprintf("cpu state changed to %s", e.State)
}

// IsSignal returns true if err is one of the control-flow signals returned
// by Step (a breakpoint, a data breakpoint or a state change) rather than
// an emulation failure.
func IsSignal(err error) bool {
	var bp *BreakpointError
	var dbp *DataBreakpointError
	var sc *StateChangedError
	return errors.As(err, &bp) || errors.As(err, &dbp) || errors.As(err, &sc)
}

// An UnimplementedError is returned by Step when the fetched opcode belongs
// to an instruction the emulator has no implementation for.
type UnimplementedError struct {
	Name   string // instruction name
	Opcode byte   // the opcode fetched
	Addr   uint16 // address the opcode was fetched from
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented instruction %s (opcode $%02X) at $%04X", e.Name, e.Opcode, e.Addr)
}

// Unwrap returns ErrUnimplemented.
func (e *UnimplementedError) Unwrap() error {
	return ErrUnimplemented
}
