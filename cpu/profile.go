// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"strings"

	"github.com/pkg/errors"
)

// Generation selects the CPU chip family: NMOS 6502 or CMOS 65c02.
type Generation byte

const (
	// NMOS 6502 CPU
	NMOS Generation = iota

	// CMOS 65c02 CPU
	CMOS
)

func (g Generation) String() string {
	switch g {
	case NMOS:
		return "nmos"
	case CMOS:
		return "cmos"
	default:
		return "unknown"
	}
}

// ParseGeneration converts "nmos" or "cmos" into a Generation.
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(s) {
	case "nmos":
		return NMOS, nil
	case "cmos":
		return CMOS, nil
	default:
		return NMOS, errors.Errorf("unknown chip generation '%s'", s)
	}
}

// A Profile describes the chip-specific behaviors selected when an
// instruction set is built.
type Profile struct {
	Generation         Generation // selects ADC and SBC decimal semantics
	JmpIndirectPageBug bool       // JMP ($xxFF) reads its high byte from $xx00
	RorNoCarryBug      bool       // ROR leaves the carry flag untouched
}

// Predefined chip profiles
var (
	ProfileNMOS      = Profile{Generation: NMOS, JmpIndirectPageBug: true}
	ProfileNMOSEarly = Profile{Generation: NMOS, JmpIndirectPageBug: true, RorNoCarryBug: true}
	ProfileCMOS      = Profile{Generation: CMOS}
)

var profiles = map[string]Profile{
	"nmos":       ProfileNMOS,
	"nmos-early": ProfileNMOSEarly,
	"cmos":       ProfileCMOS,
}

// ParseProfile returns the predefined profile with the given name.
func ParseProfile(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, errors.Errorf("unknown chip profile '%s'", name)
	}
	return p, nil
}

func (p Profile) String() string {
	for n, q := range profiles {
		if p == q {
			return n
		}
	}
	return p.Generation.String() + "-custom"
}

// A BugOption records whether a hardware bug exists on an opcode and whether
// it has been patched.
type BugOption struct {
	Exists bool
	Patch  bool
}

// Active returns true if the bug exists and has not been patched.
func (b BugOption) Active() bool {
	return b.Exists && !b.Patch
}

// Options hold per-opcode overrides of a Profile. Nil fields leave the
// profile's setting in place.
type Options struct {
	PageBoundaryBug *BugOption
	RorNoCarryBug   *bool
	Generation      *Generation
}

// IsZero returns true if no override is present.
func (o Options) IsZero() bool {
	return o.PageBoundaryBug == nil && o.RorNoCarryBug == nil && o.Generation == nil
}

// Apply returns the profile p with the option overrides applied.
func (o Options) Apply(p Profile) Profile {
	if o.PageBoundaryBug != nil {
		p.JmpIndirectPageBug = o.PageBoundaryBug.Active()
	}
	if o.RorNoCarryBug != nil {
		p.RorNoCarryBug = *o.RorNoCarryBug
	}
	if o.Generation != nil {
		p.Generation = *o.Generation
	}
	return p
}
