// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MemorySize is the number of bytes addressable by the CPU.
const MemorySize = 64 * 1024

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur. Addresses wrap at the end of the 16-bit space.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes from the address and stores them into
	// the buffer 'b'.
	LoadBytes(addr uint16, b []byte)

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint16, v byte)

	// StoreBytes stores multiple bytes to the requested address.
	StoreBytes(addr uint16, b []byte)
}

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer.
type FlatMemory struct {
	b [MemorySize]byte
}

// NewFlatMemory creates a new 16-bit memory space. All bytes are zero.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// LoadByte loads a single byte from the address and returns it.
func (m *FlatMemory) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address and returns them.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.b[addr]
		addr++
	}
}

// StoreByte stores a byte at the requested address.
func (m *FlatMemory) StoreByte(addr uint16, v byte) {
	m.b[addr] = v
}

// StoreBytes stores multiple bytes to the requested address.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	for _, v := range b {
		m.b[addr] = v
		addr++
	}
}

// Len returns the size of the memory in bytes.
func (m *FlatMemory) Len() int {
	return len(m.b)
}

// Read returns the byte at addr. It fails with ErrMemoryOutOfRange if addr
// is not a valid 16-bit address.
func (m *FlatMemory) Read(addr int) (byte, error) {
	if err := checkRange(addr, 1); err != nil {
		return 0, err
	}
	return m.b[addr], nil
}

// Write stores v at addr. It fails with ErrMemoryOutOfRange if addr is not
// a valid 16-bit address.
func (m *FlatMemory) Write(addr int, v byte) error {
	if err := checkRange(addr, 1); err != nil {
		return err
	}
	m.b[addr] = v
	return nil
}

// ReadWord reads a little-endian 16-bit value whose low byte is at lo and
// whose high byte is at hi. The two addresses need not be adjacent.
func (m *FlatMemory) ReadWord(lo, hi int) (uint16, error) {
	l, err := m.Read(lo)
	if err != nil {
		return 0, err
	}
	h, err := m.Read(hi)
	if err != nil {
		return 0, err
	}
	return Word(l, h), nil
}

// Load copies the program 'b' into memory starting at addr. The program
// must fit entirely within the address space.
func (m *FlatMemory) Load(addr int, b []byte) error {
	if err := checkRange(addr, len(b)); err != nil {
		return err
	}
	copy(m.b[addr:], b)
	return nil
}

func checkRange(addr, n int) error {
	if addr < 0 || addr+n > MemorySize {
		return errors.Wrapf(ErrMemoryOutOfRange, "address $%X", addr)
	}
	return nil
}

// Dump returns a hexadecimal listing of 'n' bytes of memory starting at
// addr. Each row holds 16 bytes split into two groups of 8.
func Dump(m Memory, addr uint16, n int) string {
	var sb strings.Builder
	for n > 0 {
		var row [16]byte
		c := min(n, len(row))
		m.LoadBytes(addr, row[:c])

		fmt.Fprintf(&sb, "0x%04x  ", addr)
		for i := 0; i < c; i++ {
			switch {
			case i == 8:
				sb.WriteString("  ")
			case i > 0:
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%02x", row[i])
		}
		sb.WriteByte('\n')

		addr += uint16(c)
		n -= c
	}
	return sb.String()
}
