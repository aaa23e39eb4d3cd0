// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "github.com/pkg/errors"

// Word combines a low and high byte into a little-endian 16-bit value.
func Word(lo, hi byte) uint16 {
	return uint16(lo) | uint16(hi)<<8
}

// Signed returns the two's complement interpretation of the byte value v.
// It fails if v does not fit in a byte.
func Signed(v int) (int, error) {
	if v < 0 || v > 0xff {
		return 0, errors.Wrapf(ErrValueOutOfRange, "%d is not a byte", v)
	}
	if v < 0x80 {
		return v, nil
	}
	return v - 0x100, nil
}

// Unsigned returns the byte encoding the signed value v in two's
// complement. It fails if v is outside the range -128..127.
func Unsigned(v int) (byte, error) {
	if v < -128 || v > 127 {
		return 0, errors.Wrapf(ErrValueOutOfRange, "%d is not a signed byte", v)
	}
	return byte(v), nil
}

// Return the 16-bit value 'addr' offset by the signed byte 'offset'.
func offsetSigned(addr uint16, offset byte) uint16 {
	return addr + uint16(int16(int8(offset)))
}

// Given a 1-byte stack pointer register, return the stack
// corresponding memory address.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) + uint16(offset)
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
