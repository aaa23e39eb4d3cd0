// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	Clear()
	var sb strings.Builder

	Write(&sb)
	if sb.String() != "" {
		t.Errorf("empty log incorrect. got: %q", sb.String())
	}

	Log("test", "this is a test")
	Logf("test2", "value $%02X", 0x3f)
	sb.Reset()
	Write(&sb)
	exp := "test: this is a test\ntest2: value $3F\n"
	if sb.String() != exp {
		t.Errorf("log incorrect. exp: %q, got: %q", exp, sb.String())
	}

	sb.Reset()
	Tail(&sb, 100)
	if sb.String() != exp {
		t.Errorf("tail incorrect. exp: %q, got: %q", exp, sb.String())
	}

	sb.Reset()
	Tail(&sb, 1)
	if sb.String() != "test2: value $3F\n" {
		t.Errorf("tail incorrect. got: %q", sb.String())
	}

	sb.Reset()
	Tail(&sb, 0)
	if sb.String() != "" {
		t.Errorf("tail incorrect. got: %q", sb.String())
	}
}

func TestRepeats(t *testing.T) {
	Clear()
	Log("cpu", "reset")
	Log("cpu", "reset")
	Log("cpu", "reset")

	if Len() != 1 {
		t.Errorf("entry count incorrect. exp: 1, got: %d", Len())
	}

	var sb strings.Builder
	Write(&sb)
	if sb.String() != "cpu: reset (repeat x3)\n" {
		t.Errorf("repeat incorrect. got: %q", sb.String())
	}
}

func TestMaxEntries(t *testing.T) {
	Clear()
	for i := 0; i < MaxEntries+10; i++ {
		Log("n", fmt.Sprint(i))
	}
	if Len() != MaxEntries {
		t.Errorf("entry count incorrect. exp: %d, got: %d", MaxEntries, Len())
	}

	var sb strings.Builder
	Tail(&sb, 1)
	if sb.String() != fmt.Sprintf("n: %d\n", MaxEntries+9) {
		t.Errorf("last entry incorrect. got: %q", sb.String())
	}
}

func TestEcho(t *testing.T) {
	Clear()
	var sb strings.Builder
	SetEcho(&sb)
	Log("echo", "one\ntwo")
	SetEcho(nil)
	Log("echo", "three")

	if sb.String() != "echo: one two\n" {
		t.Errorf("echo incorrect. got: %q", sb.String())
	}
}
