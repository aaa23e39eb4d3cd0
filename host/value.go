// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/emu6502/emu6502/cpu"
)

var errValueSyntax = errors.New("value syntax error")

// A valueParser converts command arguments into numbers. A value is a
// term optionally followed by '+' or '-' and further terms. A term is one
// of:
//
//	$1F, 0x1F   hexadecimal
//	%1010       binary
//	'c'         character code
//	31          decimal, or hexadecimal in hex mode
//	pc, x, sp   current register value ('.' is the PC)
type valueParser struct {
	hexMode bool
	reg     *cpu.Registers
}

func (p *valueParser) Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errValueSyntax
	}

	var total int64
	sign := int64(1)
	for {
		i := strings.IndexAny(s[1:], "+-") + 1
		term := s
		if i > 0 {
			term = s[:i]
		}
		v, err := p.parseTerm(strings.TrimSpace(term))
		if err != nil {
			return 0, err
		}
		total += sign * v
		if i == 0 {
			return total, nil
		}
		if s[i] == '-' {
			sign = -1
		} else {
			sign = 1
		}
		s = s[i+1:]
	}
}

func (p *valueParser) parseTerm(t string) (int64, error) {
	switch {
	case t == "":
		return 0, errValueSyntax
	case t == ".":
		return int64(p.reg.PC), nil
	case t[0] == '$':
		return parseInt(t[1:], 16)
	case strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X"):
		return parseInt(t[2:], 16)
	case t[0] == '%':
		return parseInt(t[1:], 2)
	case len(t) == 3 && t[0] == '\'' && t[2] == '\'':
		return int64(t[1]), nil
	}

	if p.hexMode {
		if v, err := parseInt(t, 16); err == nil {
			return v, nil
		}
	}
	if p.reg != nil {
		if r, err := cpu.ParseRegister(t); err == nil {
			return int64(p.reg.Get(r)), nil
		}
	}
	return parseInt(t, 10)
}

func parseInt(s string, base int) (int64, error) {
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, errors.Wrapf(errValueSyntax, "'%s'", s)
	}
	return v, nil
}
