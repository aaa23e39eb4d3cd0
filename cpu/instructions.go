// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// A Kind identifies one of the documented 6502 instructions.
type Kind byte

// All documented instruction kinds
const (
	ADC Kind = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
	numKinds
)

type instfunc func(c *CPU, inst *Instruction, o *operand) error

// Emulator implementation for each instruction kind
type kindImpl struct {
	kind Kind
	name string
	fn   [2]instfunc // NMOS=0, CMOS=1
}

var impl = []kindImpl{
	{ADC, "ADC", [2]instfunc{(*CPU).adcn, (*CPU).adcc}},
	{AND, "AND", [2]instfunc{(*CPU).and, (*CPU).and}},
	{ASL, "ASL", [2]instfunc{(*CPU).asl, (*CPU).asl}},
	{BCC, "BCC", [2]instfunc{(*CPU).bcc, (*CPU).bcc}},
	{BCS, "BCS", [2]instfunc{(*CPU).bcs, (*CPU).bcs}},
	{BEQ, "BEQ", [2]instfunc{(*CPU).beq, (*CPU).beq}},
	{BIT, "BIT", [2]instfunc{(*CPU).bit, (*CPU).bit}},
	{BMI, "BMI", [2]instfunc{(*CPU).bmi, (*CPU).bmi}},
	{BNE, "BNE", [2]instfunc{(*CPU).bne, (*CPU).bne}},
	{BPL, "BPL", [2]instfunc{(*CPU).bpl, (*CPU).bpl}},
	{BRK, "BRK", [2]instfunc{(*CPU).brk, (*CPU).brk}},
	{BVC, "BVC", [2]instfunc{(*CPU).bvc, (*CPU).bvc}},
	{BVS, "BVS", [2]instfunc{(*CPU).bvs, (*CPU).bvs}},
	{CLC, "CLC", [2]instfunc{(*CPU).clc, (*CPU).clc}},
	{CLD, "CLD", [2]instfunc{(*CPU).cld, (*CPU).cld}},
	{CLI, "CLI", [2]instfunc{(*CPU).cli, (*CPU).cli}},
	{CLV, "CLV", [2]instfunc{(*CPU).clv, (*CPU).clv}},
	{CMP, "CMP", [2]instfunc{(*CPU).cmp, (*CPU).cmp}},
	{CPX, "CPX", [2]instfunc{(*CPU).cpx, (*CPU).cpx}},
	{CPY, "CPY", [2]instfunc{(*CPU).cpy, (*CPU).cpy}},
	{DEC, "DEC", [2]instfunc{(*CPU).dec, (*CPU).dec}},
	{DEX, "DEX", [2]instfunc{(*CPU).dex, (*CPU).dex}},
	{DEY, "DEY", [2]instfunc{(*CPU).dey, (*CPU).dey}},
	{EOR, "EOR", [2]instfunc{(*CPU).eor, (*CPU).eor}},
	{INC, "INC", [2]instfunc{(*CPU).inc, (*CPU).inc}},
	{INX, "INX", [2]instfunc{(*CPU).inx, (*CPU).inx}},
	{INY, "INY", [2]instfunc{(*CPU).iny, (*CPU).iny}},
	{JMP, "JMP", [2]instfunc{(*CPU).jmp, (*CPU).jmp}},
	{JSR, "JSR", [2]instfunc{(*CPU).jsr, (*CPU).jsr}},
	{LDA, "LDA", [2]instfunc{(*CPU).lda, (*CPU).lda}},
	{LDX, "LDX", [2]instfunc{(*CPU).ldx, (*CPU).ldx}},
	{LDY, "LDY", [2]instfunc{(*CPU).ldy, (*CPU).ldy}},
	{LSR, "LSR", [2]instfunc{(*CPU).lsr, (*CPU).lsr}},
	{NOP, "NOP", [2]instfunc{(*CPU).nop, (*CPU).nop}},
	{ORA, "ORA", [2]instfunc{(*CPU).ora, (*CPU).ora}},
	{PHA, "PHA", [2]instfunc{(*CPU).pha, (*CPU).pha}},
	{PHP, "PHP", [2]instfunc{(*CPU).php, (*CPU).php}},
	{PLA, "PLA", [2]instfunc{(*CPU).pla, (*CPU).pla}},
	{PLP, "PLP", [2]instfunc{(*CPU).plp, (*CPU).plp}},
	{ROL, "ROL", [2]instfunc{(*CPU).rol, (*CPU).rol}},
	{ROR, "ROR", [2]instfunc{(*CPU).ror, (*CPU).ror}},
	{RTI, "RTI", [2]instfunc{(*CPU).rti, (*CPU).rti}},
	{RTS, "RTS", [2]instfunc{(*CPU).rts, (*CPU).rts}},
	{SBC, "SBC", [2]instfunc{(*CPU).sbcn, (*CPU).sbcc}},
	{SEC, "SEC", [2]instfunc{(*CPU).sec, (*CPU).sec}},
	{SED, "SED", [2]instfunc{(*CPU).sed, (*CPU).sed}},
	{SEI, "SEI", [2]instfunc{(*CPU).sei, (*CPU).sei}},
	{STA, "STA", [2]instfunc{(*CPU).sta, (*CPU).sta}},
	{STX, "STX", [2]instfunc{(*CPU).stx, (*CPU).stx}},
	{STY, "STY", [2]instfunc{(*CPU).sty, (*CPU).sty}},
	{TAX, "TAX", [2]instfunc{(*CPU).tax, (*CPU).tax}},
	{TAY, "TAY", [2]instfunc{(*CPU).tay, (*CPU).tay}},
	{TSX, "TSX", [2]instfunc{(*CPU).tsx, (*CPU).tsx}},
	{TXA, "TXA", [2]instfunc{(*CPU).txa, (*CPU).txa}},
	{TXS, "TXS", [2]instfunc{(*CPU).txs, (*CPU).txs}},
	{TYA, "TYA", [2]instfunc{(*CPU).tya, (*CPU).tya}},
}

// Map from kind to implementation, filled at startup.
var kindImpls [numKinds]*kindImpl

// Map from upper-case instruction name to kind.
var kindByName = make(map[string]Kind, numKinds)

func init() {
	for i := range impl {
		kindImpls[impl[i].kind] = &impl[i]
		kindByName[impl[i].name] = impl[i].kind
	}
}

// String returns the mnemonic of the instruction kind.
func (k Kind) String() string {
	if k < numKinds && kindImpls[k] != nil {
		return kindImpls[k].name
	}
	return "???"
}

// ParseKind returns the instruction kind with the given mnemonic.
func ParseKind(name string) (Kind, error) {
	k, ok := kindByName[strings.ToUpper(name)]
	if !ok {
		return 0, errors.Errorf("unknown instruction '%s'", name)
	}
	return k, nil
}

// An OpcodeSpec describes one opcode of an instruction set before any chip
// profile has been applied to it.
type OpcodeSpec struct {
	Opcode  byte    // opcode hex value
	Kind    Kind    // instruction kind
	Mode    Mode    // addressing mode
	Options Options // per-opcode overrides of the chip profile
}

// Opcode data for an (instruction, mode) pair
type opcodeData struct {
	kind   Kind
	mode   Mode
	opcode byte
}

// All documented (opcode, mode) pairs
var data = []opcodeData{
	{LDA, IMM, 0xa9},
	{LDA, ZPG, 0xa5},
	{LDA, ZPX, 0xb5},
	{LDA, ABS, 0xad},
	{LDA, ABX, 0xbd},
	{LDA, ABY, 0xb9},
	{LDA, IDX, 0xa1},
	{LDA, IDY, 0xb1},

	{LDX, IMM, 0xa2},
	{LDX, ZPG, 0xa6},
	{LDX, ZPY, 0xb6},
	{LDX, ABS, 0xae},
	{LDX, ABY, 0xbe},

	{LDY, IMM, 0xa0},
	{LDY, ZPG, 0xa4},
	{LDY, ZPX, 0xb4},
	{LDY, ABS, 0xac},
	{LDY, ABX, 0xbc},

	{STA, ZPG, 0x85},
	{STA, ZPX, 0x95},
	{STA, ABS, 0x8d},
	{STA, ABX, 0x9d},
	{STA, ABY, 0x99},
	{STA, IDX, 0x81},
	{STA, IDY, 0x91},

	{STX, ZPG, 0x86},
	{STX, ZPY, 0x96},
	{STX, ABS, 0x8e},

	{STY, ZPG, 0x84},
	{STY, ZPX, 0x94},
	{STY, ABS, 0x8c},

	{ADC, IMM, 0x69},
	{ADC, ZPG, 0x65},
	{ADC, ZPX, 0x75},
	{ADC, ABS, 0x6d},
	{ADC, ABX, 0x7d},
	{ADC, ABY, 0x79},
	{ADC, IDX, 0x61},
	{ADC, IDY, 0x71},

	{SBC, IMM, 0xe9},
	{SBC, ZPG, 0xe5},
	{SBC, ZPX, 0xf5},
	{SBC, ABS, 0xed},
	{SBC, ABX, 0xfd},
	{SBC, ABY, 0xf9},
	{SBC, IDX, 0xe1},
	{SBC, IDY, 0xf1},

	{CMP, IMM, 0xc9},
	{CMP, ZPG, 0xc5},
	{CMP, ZPX, 0xd5},
	{CMP, ABS, 0xcd},
	{CMP, ABX, 0xdd},
	{CMP, ABY, 0xd9},
	{CMP, IDX, 0xc1},
	{CMP, IDY, 0xd1},

	{CPX, IMM, 0xe0},
	{CPX, ZPG, 0xe4},
	{CPX, ABS, 0xec},

	{CPY, IMM, 0xc0},
	{CPY, ZPG, 0xc4},
	{CPY, ABS, 0xcc},

	{BIT, ZPG, 0x24},
	{BIT, ABS, 0x2c},

	{CLC, IMP, 0x18},

	{SEC, IMP, 0x38},

	{CLI, IMP, 0x58},

	{SEI, IMP, 0x78},

	{CLD, IMP, 0xd8},

	{SED, IMP, 0xf8},

	{CLV, IMP, 0xb8},

	{BCC, REL, 0x90},

	{BCS, REL, 0xb0},

	{BEQ, REL, 0xf0},

	{BNE, REL, 0xd0},

	{BMI, REL, 0x30},

	{BPL, REL, 0x10},

	{BVC, REL, 0x50},

	{BVS, REL, 0x70},

	{BRK, IMP, 0x00},

	{AND, IMM, 0x29},
	{AND, ZPG, 0x25},
	{AND, ZPX, 0x35},
	{AND, ABS, 0x2d},
	{AND, ABX, 0x3d},
	{AND, ABY, 0x39},
	{AND, IDX, 0x21},
	{AND, IDY, 0x31},

	{ORA, IMM, 0x09},
	{ORA, ZPG, 0x05},
	{ORA, ZPX, 0x15},
	{ORA, ABS, 0x0d},
	{ORA, ABX, 0x1d},
	{ORA, ABY, 0x19},
	{ORA, IDX, 0x01},
	{ORA, IDY, 0x11},

	{EOR, IMM, 0x49},
	{EOR, ZPG, 0x45},
	{EOR, ZPX, 0x55},
	{EOR, ABS, 0x4d},
	{EOR, ABX, 0x5d},
	{EOR, ABY, 0x59},
	{EOR, IDX, 0x41},
	{EOR, IDY, 0x51},

	{INC, ZPG, 0xe6},
	{INC, ZPX, 0xf6},
	{INC, ABS, 0xee},
	{INC, ABX, 0xfe},

	{DEC, ZPG, 0xc6},
	{DEC, ZPX, 0xd6},
	{DEC, ABS, 0xce},
	{DEC, ABX, 0xde},

	{INX, IMP, 0xe8},

	{INY, IMP, 0xc8},

	{DEX, IMP, 0xca},

	{DEY, IMP, 0x88},

	{JMP, ABS, 0x4c},
	{JMP, IND, 0x6c},

	{JSR, ABS, 0x20},

	{RTS, IMP, 0x60},

	{RTI, IMP, 0x40},

	{NOP, IMP, 0xea},

	{TAX, IMP, 0xaa},

	{TXA, IMP, 0x8a},

	{TAY, IMP, 0xa8},

	{TYA, IMP, 0x98},

	{TXS, IMP, 0x9a},

	{TSX, IMP, 0xba},

	{PHA, IMP, 0x48},

	{PLA, IMP, 0x68},

	{PHP, IMP, 0x08},

	{PLP, IMP, 0x28},

	{ASL, ACC, 0x0a},
	{ASL, ZPG, 0x06},
	{ASL, ZPX, 0x16},
	{ASL, ABS, 0x0e},
	{ASL, ABX, 0x1e},

	{LSR, ACC, 0x4a},
	{LSR, ZPG, 0x46},
	{LSR, ZPX, 0x56},
	{LSR, ABS, 0x4e},
	{LSR, ABX, 0x5e},

	{ROL, ACC, 0x2a},
	{ROL, ZPG, 0x26},
	{ROL, ZPX, 0x36},
	{ROL, ABS, 0x2e},
	{ROL, ABX, 0x3e},

	{ROR, ACC, 0x6a},
	{ROR, ZPG, 0x66},
	{ROR, ZPX, 0x76},
	{ROR, ABS, 0x6e},
	{ROR, ABX, 0x7e},
}

// DefaultSpecs returns the opcode specifications of the documented NMOS
// 6502 instruction set, sorted by opcode.
func DefaultSpecs() []OpcodeSpec {
	specs := make([]OpcodeSpec, 0, len(data))
	for _, d := range data {
		specs = append(specs, OpcodeSpec{Opcode: d.opcode, Kind: d.kind, Mode: d.mode})
	}
	sortSpecs(specs)
	return specs
}

func sortSpecs(specs []OpcodeSpec) {
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Opcode < specs[j].Opcode
	})
}

// An Instruction describes a CPU instruction, including its name, its
// addressing mode, its opcode value and its operand size.
type Instruction struct {
	Name    string   // all-caps name of the instruction
	Kind    Kind     // instruction kind
	Mode    Mode     // addressing mode
	Opcode  byte     // hexadecimal opcode value
	Length  byte     // combined size of opcode and operand, in bytes
	Options Options  // per-opcode overrides used to build the instruction
	fn      instfunc // emulator implementation of the function
}

// Implemented returns true if the emulator has an implementation for the
// instruction.
func (inst *Instruction) Implemented() bool {
	return inst.fn != nil
}

// An InstructionSet defines the set of all possible instructions that
// can run on the emulated CPU.
type InstructionSet struct {
	Profile      Profile
	instructions [256]*Instruction          // all instructions by opcode
	variants     map[string][]*Instruction // variants of each instruction
	specs        []OpcodeSpec
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
// It returns nil if the opcode is not part of the instruction set.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return s.instructions[opcode]
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Specs returns the opcode specifications the set was built from, sorted
// by opcode.
func (s *InstructionSet) Specs() []OpcodeSpec {
	specs := make([]OpcodeSpec, len(s.specs))
	copy(specs, s.specs)
	return specs
}

// Len returns the number of opcodes in the set.
func (s *InstructionSet) Len() int {
	return len(s.specs)
}

// BuildInstructionSet creates an instruction set from opcode specifications.
// The profile, adjusted by each opcode's options, selects the concrete
// implementation of every opcode. Opcodes missing from specs are
// undocumented.
func BuildInstructionSet(specs []OpcodeSpec, p Profile) (*InstructionSet, error) {
	set := &InstructionSet{
		Profile:  p,
		variants: make(map[string][]*Instruction),
		specs:    make([]OpcodeSpec, len(specs)),
	}
	copy(set.specs, specs)
	sortSpecs(set.specs)

	for _, d := range set.specs {
		if set.instructions[d.Opcode] != nil {
			return nil, errors.Errorf("opcode $%02X defined more than once", d.Opcode)
		}
		if int(d.Mode) >= len(modes) || d.Mode == INDB {
			return nil, errors.Errorf("opcode $%02X has an invalid addressing mode", d.Opcode)
		}

		prof := d.Options.Apply(p)
		if prof.Generation > CMOS {
			return nil, errors.Errorf("opcode $%02X has an unknown chip generation", d.Opcode)
		}
		inst := &Instruction{
			Name:    d.Kind.String(),
			Kind:    d.Kind,
			Mode:    d.Mode,
			Opcode:  d.Opcode,
			Length:  d.Mode.Length(),
			Options: d.Options,
		}

		if d.Kind < numKinds && kindImpls[d.Kind] != nil {
			inst.fn = kindImpls[d.Kind].fn[prof.Generation]
		}

		switch {
		case d.Kind == JMP && d.Mode == IND && prof.JmpIndirectPageBug:
			inst.Mode = INDB
		case d.Kind == ROR && prof.RorNoCarryBug:
			inst.fn = (*CPU).rorNoCarry
		}

		set.instructions[d.Opcode] = inst
		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
	}
	return set, nil
}

var instructionSets = make(map[Profile]*InstructionSet)

// GetInstructionSet returns the documented instruction set built for the
// requested chip profile.
func GetInstructionSet(p Profile) *InstructionSet {
	if set, ok := instructionSets[p]; ok {
		return set
	}

	// The built-in table is valid for every known generation.
	set, err := BuildInstructionSet(DefaultSpecs(), p)
	if err != nil {
		panic(err)
	}
	instructionSets[p] = set
	return set
}
