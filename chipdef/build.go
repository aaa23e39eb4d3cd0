// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chipdef

import (
	"strings"

	"github.com/emu6502/emu6502/cpu"
	"github.com/pkg/errors"
)

var validSizes = map[int]bool{8: true, 9: true, 16: true}

// Validate checks that the registers and flags of the definition describe
// the emulated CPU.
func (def *Definition) Validate() error {
	for i, r := range def.Registers {
		if !validSizes[r.Size] {
			return errors.Errorf("register %d (%s): invalid size %d", i, r.ShortName, r.Size)
		}
		reg, err := cpu.ParseRegister(r.ShortName)
		if err != nil {
			return errors.Wrapf(err, "register %d", i)
		}
		if reg.Width() != r.Size {
			return errors.Errorf("register %d (%s): size %d, expected %d", i, r.ShortName, r.Size, reg.Width())
		}
	}

	for i, f := range def.Flags {
		flag, err := cpu.ParseFlag(f.ShortName)
		if err != nil {
			return errors.Wrapf(err, "flag %d", i)
		}
		if flag.Pos() != f.BitFieldPos {
			return errors.Errorf("flag %d (%s): bit %d, expected %d", i, f.ShortName, f.BitFieldPos, flag.Pos())
		}
		if f.Status != 0 && f.Status != 1 {
			return errors.Errorf("flag %d (%s): invalid status %d", i, f.ShortName, f.Status)
		}
	}
	return nil
}

// Status returns the processor status described by the flag records. The
// result is false if the definition has no flag records.
func (def *Definition) Status() (cpu.Status, bool) {
	var ps cpu.Status
	for _, f := range def.Flags {
		flag, err := cpu.ParseFlag(f.ShortName)
		if err == nil && f.Status == 1 {
			ps.Set(flag)
		}
	}
	return ps, len(def.Flags) > 0
}

// Specs converts the instruction records of the definition into opcode
// specifications.
func (def *Definition) Specs() ([]cpu.OpcodeSpec, error) {
	var specs []cpu.OpcodeSpec
	for i, inst := range def.Instructions {
		kind, err := cpu.ParseKind(inst.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
		opts, err := inst.Options.options()
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d (%s)", i, inst.Name)
		}

		for j, op := range inst.Opcodes {
			if op.Opcode < 0 || op.Opcode > 0xff {
				return nil, errors.Errorf("instruction %d (%s) opcode %d: invalid opcode %d", i, inst.Name, j, op.Opcode)
			}
			mode, err := cpu.ParseMode(op.AddressingMode)
			if err != nil {
				return nil, errors.Wrapf(err, "instruction %d (%s) opcode %d", i, inst.Name, j)
			}
			specs = append(specs, cpu.OpcodeSpec{
				Opcode:  byte(op.Opcode),
				Kind:    kind,
				Mode:    mode,
				Options: opts,
			})
		}
	}
	return specs, nil
}

// Build validates the definition and creates an instruction set from it
// for the chip profile.
func Build(def *Definition, p cpu.Profile) (*cpu.InstructionSet, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	specs, err := def.Specs()
	if err != nil {
		return nil, err
	}
	return cpu.BuildInstructionSet(specs, p)
}

func (o *OptionsDef) options() (cpu.Options, error) {
	var opts cpu.Options
	if o == nil {
		return opts, nil
	}
	if o.Bugs != nil && o.Bugs.PageBoundaryBug != nil {
		opts.PageBoundaryBug = &cpu.BugOption{
			Exists: o.Bugs.PageBoundaryBug.Exists,
			Patch:  o.Bugs.PageBoundaryBug.Patch,
		}
	}
	if o.RorNoCarryBug != nil {
		v := *o.RorNoCarryBug
		opts.RorNoCarryBug = &v
	}
	if o.ChipGeneration != "" {
		g, err := cpu.ParseGeneration(o.ChipGeneration)
		if err != nil {
			return opts, err
		}
		opts.Generation = &g
	}
	return opts, nil
}

func optionsDef(o cpu.Options) *OptionsDef {
	if o.IsZero() {
		return nil
	}
	def := &OptionsDef{}
	if o.PageBoundaryBug != nil {
		def.Bugs = &BugsDef{PageBoundaryBug: &BugDef{
			Exists: o.PageBoundaryBug.Exists,
			Patch:  o.PageBoundaryBug.Patch,
		}}
	}
	if o.RorNoCarryBug != nil {
		v := *o.RorNoCarryBug
		def.RorNoCarryBug = &v
	}
	if o.Generation != nil {
		def.ChipGeneration = o.Generation.String()
	}
	return def
}

var descriptions = map[cpu.Kind]string{
	cpu.ADC: "Add with carry", cpu.AND: "Logical AND", cpu.ASL: "Arithmetic shift left",
	cpu.BCC: "Branch if carry clear", cpu.BCS: "Branch if carry set", cpu.BEQ: "Branch if equal",
	cpu.BIT: "Bit test", cpu.BMI: "Branch if minus", cpu.BNE: "Branch if not equal",
	cpu.BPL: "Branch if plus", cpu.BRK: "Force interrupt", cpu.BVC: "Branch if overflow clear",
	cpu.BVS: "Branch if overflow set", cpu.CLC: "Clear carry flag", cpu.CLD: "Clear decimal mode",
	cpu.CLI: "Clear interrupt disable", cpu.CLV: "Clear overflow flag", cpu.CMP: "Compare accumulator",
	cpu.CPX: "Compare X register", cpu.CPY: "Compare Y register", cpu.DEC: "Decrement memory",
	cpu.DEX: "Decrement X register", cpu.DEY: "Decrement Y register", cpu.EOR: "Exclusive OR",
	cpu.INC: "Increment memory", cpu.INX: "Increment X register", cpu.INY: "Increment Y register",
	cpu.JMP: "Jump", cpu.JSR: "Jump to subroutine", cpu.LDA: "Load accumulator",
	cpu.LDX: "Load X register", cpu.LDY: "Load Y register", cpu.LSR: "Logical shift right",
	cpu.NOP: "No operation", cpu.ORA: "Logical inclusive OR", cpu.PHA: "Push accumulator",
	cpu.PHP: "Push processor status", cpu.PLA: "Pull accumulator", cpu.PLP: "Pull processor status",
	cpu.ROL: "Rotate left", cpu.ROR: "Rotate right", cpu.RTI: "Return from interrupt",
	cpu.RTS: "Return from subroutine", cpu.SBC: "Subtract with carry", cpu.SEC: "Set carry flag",
	cpu.SED: "Set decimal flag", cpu.SEI: "Set interrupt disable", cpu.STA: "Store accumulator",
	cpu.STX: "Store X register", cpu.STY: "Store Y register", cpu.TAX: "Transfer accumulator to X",
	cpu.TAY: "Transfer accumulator to Y", cpu.TSX: "Transfer stack pointer to X",
	cpu.TXA: "Transfer X to accumulator", cpu.TXS: "Transfer X to stack pointer",
	cpu.TYA: "Transfer Y to accumulator",
}

// FromInstructionSet creates a definition describing the emulated CPU's
// registers and flags and the opcodes of an instruction set. Opcodes of
// the same kind with the same options share an instruction record.
func FromInstructionSet(set *cpu.InstructionSet) *Definition {
	def := &Definition{}
	for _, r := range cpu.RegisterList {
		def.Registers = append(def.Registers, RegisterDef{
			ShortName: r.String(),
			Name:      r.Name(),
			Size:      r.Width(),
		})
	}
	for _, f := range cpu.Flags {
		status := 0
		if f == cpu.Expansion {
			status = 1
		}
		def.Flags = append(def.Flags, FlagDef{
			ShortName:   f.String(),
			Name:        f.Name(),
			BitFieldPos: f.Pos(),
			Status:      status,
		})
	}

	type key struct {
		kind cpu.Kind
		opts string
	}
	index := make(map[key]int)
	for _, s := range set.Specs() {
		opts := optionsDef(s.Options)
		k := key{s.Kind, optionsKey(opts)}
		i, ok := index[k]
		if !ok {
			i = len(def.Instructions)
			index[k] = i
			def.Instructions = append(def.Instructions, InstructionDef{
				Name:        s.Kind.String(),
				Description: descriptions[s.Kind],
				Options:     opts,
			})
		}
		def.Instructions[i].Opcodes = append(def.Instructions[i].Opcodes, OpcodeDef{
			Opcode:         int(s.Opcode),
			AddressingMode: s.Mode.String(),
		})
	}
	return def
}

func optionsKey(o *OptionsDef) string {
	if o == nil {
		return ""
	}
	var sb strings.Builder
	if o.Bugs != nil && o.Bugs.PageBoundaryBug != nil {
		b := o.Bugs.PageBoundaryBug
		sb.WriteString("pb")
		sb.WriteByte("01"[boolIndex(b.Exists)])
		sb.WriteByte("01"[boolIndex(b.Patch)])
	}
	if o.RorNoCarryBug != nil {
		sb.WriteString("ror")
		sb.WriteByte("01"[boolIndex(*o.RorNoCarryBug)])
	}
	sb.WriteString(o.ChipGeneration)
	return sb.String()
}

func boolIndex(v bool) int {
	if v {
		return 1
	}
	return 0
}

// Default returns the definition of the documented NMOS 6502.
func Default() *Definition {
	return FromInstructionSet(cpu.GetInstructionSet(cpu.ProfileNMOS))
}
