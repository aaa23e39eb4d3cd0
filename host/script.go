// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	lua "github.com/yuin/gopher-lua"

	"github.com/emu6502/emu6502/cpu"
	"github.com/emu6502/emu6502/logger"
)

// RunScript runs a Lua script file against the host. All scripts share one
// Lua state, so globals set by one script are visible to the next.
func (h *Host) RunScript(filename string) error {
	if err := h.scriptState().DoFile(filename); err != nil {
		logger.Logf("script", "%s: %v", filepath.Base(filename), err)
		return errors.Wrapf(err, "script '%s'", filepath.Base(filename))
	}
	return nil
}

// RunScriptString runs a chunk of Lua source against the host.
func (h *Host) RunScriptString(source string) error {
	if err := h.scriptState().DoString(source); err != nil {
		logger.Logf("script", "%v", err)
		return errors.Wrap(err, "script")
	}
	return nil
}

// Return the host's Lua state, creating it and running any init.lua found
// in the user's config folders on first use.
func (h *Host) scriptState() *lua.LState {
	if h.lua != nil {
		return h.lua
	}

	L := lua.NewState()
	for name, fn := range h.scriptBindings() {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	h.lua = L

	configDirs := configdir.New("emu6502", "lua")
	for _, config := range configDirs.QueryFolders(configdir.All) {
		if data, err := config.ReadFile("init.lua"); err == nil {
			if err := L.DoString(string(data)); err != nil {
				logger.Logf("script", "init.lua: %v", err)
			}
		}
	}
	return L
}

func (h *Host) scriptBindings() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"peek":   h.luaPeek,
		"poke":   h.luaPoke,
		"reg":    h.luaReg,
		"setreg": h.luaSetReg,
		"step":   h.luaStep,
		"run":    h.luaRun,
		"reset":  h.luaReset,
		"cmd":    h.luaCmd,
		"print":  h.luaPrint,
	}
}

func (h *Host) luaPeek(L *lua.LState) int {
	addr := L.CheckInt(1)
	L.Push(lua.LNumber(h.mem.LoadByte(uint16(addr))))
	return 1
}

func (h *Host) luaPoke(L *lua.LState) int {
	addr, v := L.CheckInt(1), L.CheckInt(2)
	if v < 0 || v > 0xff {
		L.ArgError(2, "byte value out of range")
	}
	h.cpu.Mem.StoreByte(uint16(addr), byte(v))
	return 0
}

func (h *Host) luaReg(L *lua.LState) int {
	reg, err := cpu.ParseRegister(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	L.Push(lua.LNumber(h.cpu.Reg.Get(reg)))
	return 1
}

func (h *Host) luaSetReg(L *lua.LState) int {
	reg, err := cpu.ParseRegister(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	v := L.CheckInt(2)
	if reg == cpu.RegSP {
		h.cpu.SetSP(byte(v))
	} else {
		h.cpu.Reg.Set(reg, uint16(v))
	}
	return 0
}

// step([n]) steps n instructions (default 1) and returns false if the CPU
// stopped early.
func (h *Host) luaStep(L *lua.LState) int {
	L.Push(lua.LBool(h.stepCPU(L.OptInt(1, 1), nil)))
	return 1
}

// run([n]) runs until the CPU stops, or for at most n instructions.
func (h *Host) luaRun(L *lua.LState) int {
	L.Push(lua.LBool(h.stepCPU(L.OptInt(1, 0), nil)))
	return 1
}

func (h *Host) luaReset(L *lua.LState) int {
	h.Reset()
	return 0
}

func (h *Host) luaCmd(L *lua.LState) int {
	if err := h.execLine(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) luaPrint(L *lua.LState) int {
	args := make([]string, L.GetTop())
	for i := range args {
		args[i] = L.Get(i + 1).String()
	}
	h.println(strings.Join(args, "\t"))
	return 0
}
