// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snapshot saves and restores the complete state of an emulated
// 6502 system: registers, counters, limits, chip profile and all 64K of
// memory.
//
// A snapshot file begins with a fixed-size little-endian header followed by
// a snappy-compressed image of memory.
package snapshot

import (
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/emu6502/emu6502/cpu"
)

// Magic identifies a snapshot file.
const Magic = "E65S"

// Version is the snapshot format version written by Save.
const Version = 1

// ErrBadMagic is returned by Restore when the input is not a snapshot.
var ErrBadMagic = errors.New("invalid snapshot magic")

// A Header holds everything in a snapshot except memory.
type Header struct {
	Magic   string `struc:"[4]byte"`
	Version uint32

	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PS uint8
	PC uint16

	LastPC    uint16
	Loaded    uint64
	Executed  uint64
	LoadLimit uint64
	ExecLimit uint64

	Housekeeping bool
	Running      bool

	Generation         uint8
	JmpIndirectPageBug bool
	RorNoCarryBug      bool
}

func newHeader(c *cpu.CPU) *Header {
	p := c.InstSet.Profile
	return &Header{
		Magic:              Magic,
		Version:            Version,
		A:                  c.Reg.A,
		X:                  c.Reg.X,
		Y:                  c.Reg.Y,
		SP:                 c.Reg.SP,
		PS:                 uint8(c.Reg.PS),
		PC:                 c.Reg.PC,
		LastPC:             c.LastPC,
		Loaded:             c.Loaded,
		Executed:           c.Executed,
		LoadLimit:          c.LoadLimit,
		ExecLimit:          c.ExecLimit,
		Housekeeping:       c.Housekeeping,
		Running:            c.State() == cpu.Running,
		Generation:         uint8(p.Generation),
		JmpIndirectPageBug: p.JmpIndirectPageBug,
		RorNoCarryBug:      p.RorNoCarryBug,
	}
}

// Profile returns the chip profile recorded in the header.
func (h *Header) Profile() cpu.Profile {
	return cpu.Profile{
		Generation:         cpu.Generation(h.Generation),
		JmpIndirectPageBug: h.JmpIndirectPageBug,
		RorNoCarryBug:      h.RorNoCarryBug,
	}
}

// Save writes a snapshot of the CPU and its memory to w.
func Save(w io.Writer, c *cpu.CPU) error {
	if err := struc.PackWithOrder(w, newHeader(c), binary.LittleEndian); err != nil {
		return errors.Wrap(err, "failed to pack header")
	}

	image := make([]byte, cpu.MemorySize)
	c.Mem.LoadBytes(0, image)

	zw := snappy.NewBufferedWriter(w)
	if _, err := zw.Write(image); err != nil {
		return errors.Wrap(err, "failed to write memory image")
	}
	return errors.Wrap(zw.Close(), "failed to flush memory image")
}

// ReadHeader reads and validates the header of a snapshot.
func ReadHeader(r io.Reader) (*Header, error) {
	h := new(Header)
	if err := struc.UnpackWithOrder(r, h, binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if h.Magic != Magic {
		return nil, ErrBadMagic
	}
	if h.Version != Version {
		return nil, errors.Errorf("unsupported snapshot version %d", h.Version)
	}
	if h.Generation > uint8(cpu.CMOS) {
		return nil, errors.Errorf("unknown chip generation %d", h.Generation)
	}
	return h, nil
}

// Restore reads a snapshot from r and loads it into the CPU and its memory.
// If the snapshot was taken with a different chip profile, the CPU switches
// to the predefined instruction set for that profile.
func Restore(r io.Reader, c *cpu.CPU) error {
	h, err := ReadHeader(r)
	if err != nil {
		return err
	}

	image := make([]byte, cpu.MemorySize)
	if _, err := io.ReadFull(snappy.NewReader(r), image); err != nil {
		return errors.Wrap(err, "failed to read memory image")
	}

	if p := h.Profile(); c.InstSet.Profile != p {
		c.InstSet = cpu.GetInstructionSet(p)
	}
	c.Mem.StoreBytes(0, image)

	c.Reg.Set(cpu.RegA, uint16(h.A))
	c.Reg.Set(cpu.RegX, uint16(h.X))
	c.Reg.Set(cpu.RegY, uint16(h.Y))
	c.Reg.Set(cpu.RegPS, uint16(h.PS))
	c.Reg.Set(cpu.RegPC, h.PC)
	c.SetSP(h.SP)

	c.LastPC = h.LastPC
	c.Loaded = h.Loaded
	c.Executed = h.Executed
	c.LoadLimit = h.LoadLimit
	c.ExecLimit = h.ExecLimit
	c.Housekeeping = h.Housekeeping

	if h.Running {
		c.SetState(cpu.Running)
	} else {
		c.SetState(cpu.Stopped)
	}
	return nil
}
