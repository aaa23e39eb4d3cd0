// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chipdef reads and writes chip definitions: structured documents
// listing the registers, flags and instruction opcodes of a 6502-family
// CPU. A definition is turned into a cpu.InstructionSet for a chip profile.
package chipdef

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/emu6502/emu6502/logger"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"gopkg.in/yaml.v3"
)

// A Definition describes a chip.
type Definition struct {
	Registers    []RegisterDef    `yaml:"registers"`
	Flags        []FlagDef        `yaml:"flags"`
	Instructions []InstructionDef `yaml:"instructions"`
}

// RegisterDef describes one register.
type RegisterDef struct {
	ShortName string `yaml:"short_name"`
	Name      string `yaml:"name"`
	Size      int    `yaml:"size"`
}

// FlagDef describes one bit of the status register.
type FlagDef struct {
	ShortName   string `yaml:"short_name"`
	Name        string `yaml:"name"`
	BitFieldPos int    `yaml:"bit_field_pos"`
	Status      int    `yaml:"status"`
}

// InstructionDef describes an instruction and the opcodes that select it.
type InstructionDef struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Opcodes     []OpcodeDef `yaml:"opcodes"`
	Options     *OptionsDef `yaml:"options,omitempty"`
}

// OpcodeDef pairs an opcode with its addressing mode.
type OpcodeDef struct {
	Opcode         int    `yaml:"opcode"`
	AddressingMode string `yaml:"addressing_mode"`
}

// OptionsDef holds the chip-specific options of an instruction.
type OptionsDef struct {
	Bugs           *BugsDef `yaml:"bugs,omitempty"`
	RorNoCarryBug  *bool    `yaml:"ror_no_carry_bug,omitempty"`
	ChipGeneration string   `yaml:"chip_generation,omitempty"`
}

// BugsDef lists the hardware bugs of an instruction.
type BugsDef struct {
	PageBoundaryBug *BugDef `yaml:"page_boundary_bug,omitempty"`
}

// BugDef records whether a bug exists and whether it is patched.
type BugDef struct {
	Exists bool `yaml:"exists"`
	Patch  bool `yaml:"patch"`
}

// Keys a record must contain to be kept.
var (
	registerKeys    = []string{"short_name", "name", "size"}
	flagKeys        = []string{"short_name", "name", "bit_field_pos", "status"}
	instructionKeys = []string{"name", "opcodes"}
	opcodeKeys      = []string{"opcode", "addressing_mode"}
)

// The raw document, decoded one record at a time so records missing
// required keys can be dropped.
type document struct {
	Registers    []yaml.Node `yaml:"registers"`
	Flags        []yaml.Node `yaml:"flags"`
	Instructions []yaml.Node `yaml:"instructions"`
}

// Decode reads a definition document from r. Unknown keys are ignored.
// Records missing a required key are dropped and logged.
func Decode(r io.Reader) (*Definition, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &Definition{}, nil
		}
		return nil, errors.Wrap(err, "chip definition")
	}

	def := &Definition{}
	for i := range doc.Registers {
		var rec RegisterDef
		if ok, err := decodeRecord(&doc.Registers[i], "register", i, registerKeys, &rec); err != nil {
			return nil, err
		} else if ok {
			def.Registers = append(def.Registers, rec)
		}
	}
	for i := range doc.Flags {
		var rec FlagDef
		if ok, err := decodeRecord(&doc.Flags[i], "flag", i, flagKeys, &rec); err != nil {
			return nil, err
		} else if ok {
			def.Flags = append(def.Flags, rec)
		}
	}
	for i := range doc.Instructions {
		rec, ok, err := decodeInstruction(&doc.Instructions[i], i)
		if err != nil {
			return nil, err
		}
		if ok {
			def.Instructions = append(def.Instructions, rec)
		}
	}
	return def, nil
}

func decodeInstruction(n *yaml.Node, index int) (InstructionDef, bool, error) {
	var rec struct {
		Name        string      `yaml:"name"`
		Description string      `yaml:"description"`
		Opcodes     []yaml.Node `yaml:"opcodes"`
		Options     *OptionsDef `yaml:"options"`
	}
	ok, err := decodeRecord(n, "instruction", index, instructionKeys, &rec)
	if !ok || err != nil {
		return InstructionDef{}, false, err
	}

	inst := InstructionDef{Name: rec.Name, Description: rec.Description, Options: rec.Options}
	for i := range rec.Opcodes {
		var op OpcodeDef
		ok, err := decodeRecord(&rec.Opcodes[i], rec.Name+" opcode", i, opcodeKeys, &op)
		if err != nil {
			return InstructionDef{}, false, err
		}
		if ok {
			inst.Opcodes = append(inst.Opcodes, op)
		}
	}
	return inst, true, nil
}

// Decode node n into v if it is a mapping containing all the required keys.
// Returns false if the record was dropped.
func decodeRecord(n *yaml.Node, kind string, index int, required []string, v any) (bool, error) {
	if n.Kind != yaml.MappingNode {
		logger.Logf("chipdef", "dropped %s %d: not a mapping", kind, index)
		return false, nil
	}
	for _, k := range required {
		if !hasKey(n, k) {
			logger.Logf("chipdef", "dropped %s %d: missing key '%s'", kind, index, k)
			return false, nil
		}
	}
	if err := n.Decode(v); err != nil {
		return false, errors.Wrapf(err, "%s %d (line %d)", kind, index, n.Line)
	}
	return true, nil
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Encode writes the definition to w as a YAML document.
func Encode(w io.Writer, def *Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return errors.Wrap(err, "chip definition")
	}
	return enc.Close()
}

// Load reads the definition stored in the file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	logger.Logf("chipdef", "loaded %s (%d instructions)", path, len(def.Instructions))
	return def, nil
}

// Find loads a definition by file path or by name. A name is looked up as
// "<name>.yaml" in the user and system configuration folders.
func Find(name string) (*Definition, error) {
	if _, err := os.Stat(name); err == nil {
		return Load(name)
	}

	file := name
	if filepath.Ext(file) == "" {
		file += ".yaml"
	}
	for _, folder := range Folders() {
		path := filepath.Join(folder, file)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, errors.Errorf("chip definition '%s' not found", name)
}

// Folders returns the configuration folders searched by Find, most
// specific first.
func Folders() []string {
	var paths []string
	configDirs := configdir.New("emu6502", "chips")
	for _, config := range configDirs.QueryFolders(configdir.All) {
		paths = append(paths, config.Path)
	}
	return paths
}
