// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command is the data attached to every node of the command tree.
type command struct {
	desc cmd.CommandDescriptor
	fn   func(h *Host, c *command, args []string) error
}

// A commandGroup is a level of the command tree along with the commands
// added to it, in the order they are listed by the help command.
type commandGroup struct {
	name     string
	brief    string
	tree     *cmd.Tree
	commands []*command
	groups   []*commandGroup
}

func (g *commandGroup) add(d cmd.CommandDescriptor, fn func(h *Host, c *command, args []string) error) {
	c := &command{desc: d, fn: fn}
	d.Data = c
	g.tree.AddCommand(d)
	g.commands = append(g.commands, c)
}

func (g *commandGroup) subgroup(name, brief string) *commandGroup {
	sub := &commandGroup{
		name:  name,
		brief: brief,
		tree:  g.tree.AddSubtree(cmd.TreeDescriptor{Name: name, Brief: brief}),
	}
	g.groups = append(g.groups, sub)
	return sub
}

func (g *commandGroup) find(name string) *commandGroup {
	for _, sub := range g.groups {
		if sub.name == name {
			return sub
		}
	}
	return nil
}

var (
	cmds      *cmd.Tree
	cmdGroups *commandGroup
)

func init() {
	root := &commandGroup{
		name: "emu6502",
		tree: cmd.NewTree(cmd.TreeDescriptor{Name: "emu6502"}),
	}
	root.add(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
	}, (*Host).cmdHelp)

	// Breakpoint commands
	bp := root.subgroup("breakpoint", "Breakpoint commands")
	bp.add(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		Usage:       "breakpoint list",
	}, (*Host).cmdBreakpointList)
	bp.add(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		Usage: "breakpoint add <address>",
	}, (*Host).cmdBreakpointAdd)
	bp.add(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
	}, (*Host).cmdBreakpointRemove)
	bp.add(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		Usage:       "breakpoint enable <address>",
	}, (*Host).cmdBreakpointEnable)
	bp.add(cmd.CommandDescriptor{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint. This" +
			" prevents the breakpoint from being hit when running the" +
			" CPU.",
		Usage: "breakpoint disable <address>",
	}, (*Host).cmdBreakpointDisable)

	// Chip commands
	ch := root.subgroup("chip", "Chip definition commands")
	ch.add(cmd.CommandDescriptor{
		Name:  "info",
		Brief: "Display the active chip",
		Description: "Display the chip profile and the number of opcodes" +
			" in the active instruction set.",
		Usage: "chip info",
	}, (*Host).cmdChipInfo)
	ch.add(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a chip definition",
		Description: "Load a chip definition file and build the CPU's" +
			" instruction set from it. The name may be a file path or the" +
			" name of a definition stored in the user's config folder." +
			" An optional profile (nmos, nmos-early or cmos) selects the" +
			" chip behaviors the definition is built for.",
		Usage: "chip load <name> [<profile>]",
	}, (*Host).cmdChipLoad)
	ch.add(cmd.CommandDescriptor{
		Name:  "export",
		Brief: "Export the instruction set",
		Description: "Write the active instruction set to a file as a chip" +
			" definition document.",
		Usage: "chip export <filename>",
	}, (*Host).cmdChipExport)

	// Data breakpoint commands
	db := root.subgroup("databreakpoint", "Data breakpoint commands")
	db.add(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List data breakpoints",
		Description: "List all current data breakpoints.",
		Usage:       "databreakpoint list",
	}, (*Host).cmdDataBreakpointList)
	db.add(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a data breakpoint",
		Description: "Add a new data breakpoint at the specified" +
			" memory address. When the CPU stores data at this address, the" +
			" breakpoint will stop the CPU. Optionally, a byte" +
			" value may be specified, and the CPU will stop only" +
			" when this value is stored. The data breakpoint starts" +
			" enabled.",
		Usage: "databreakpoint add <address> [<value>]",
	}, (*Host).cmdDataBreakpointAdd)
	db.add(cmd.CommandDescriptor{
		Name:  "remove",
		Brief: "Remove a data breakpoint",
		Description: "Remove a previously added data breakpoint at" +
			" the specified memory address.",
		Usage: "databreakpoint remove <address>",
	}, (*Host).cmdDataBreakpointRemove)
	db.add(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a data breakpoint",
		Description: "Enable a previously added data breakpoint.",
		Usage:       "databreakpoint enable <address>",
	}, (*Host).cmdDataBreakpointEnable)
	db.add(cmd.CommandDescriptor{
		Name:        "disable",
		Brief:       "Disable a data breakpoint",
		Description: "Disable a previously added data breakpoint.",
		Usage:       "databreakpoint disable <address>",
	}, (*Host).cmdDataBreakpointDisable)

	root.add(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble code",
		Description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		Usage: "disassemble [<address>] [<lines>]",
	}, (*Host).cmdDisassemble)
	root.add(cmd.CommandDescriptor{
		Name:  "evaluate",
		Brief: "Evaluate a value",
		Description: "Evaluate a numeric value and display it in hexadecimal," +
			" decimal and binary. Values may reference registers and be" +
			" combined with + and -.",
		Usage: "evaluate <value>",
	}, (*Host).cmdEvaluate)
	root.add(cmd.CommandDescriptor{
		Name:  "execute",
		Brief: "Execute a monitor script file",
		Description: "Load a monitor script file from disk and execute the" +
			" commands it contains.",
		Usage: "execute <filename>",
	}, (*Host).cmdExecute)

	// Interrupt commands
	in := root.subgroup("interrupt", "Raise a hardware interrupt")
	in.add(cmd.CommandDescriptor{
		Name:  "irq",
		Brief: "Raise a maskable interrupt",
		Description: "Push the program counter and status and jump through" +
			" the IRQ vector, unless interrupts are disabled.",
		Usage: "interrupt irq",
	}, (*Host).cmdInterruptIRQ)
	in.add(cmd.CommandDescriptor{
		Name:  "nmi",
		Brief: "Raise a non-maskable interrupt",
		Description: "Push the program counter and status and jump through" +
			" the NMI vector.",
		Usage: "interrupt nmi",
	}, (*Host).cmdInterruptNMI)

	root.add(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a binary file",
		Description: "Load the contents of a binary file into the emulated" +
			" system's memory at the specified address. A file of exactly" +
			" 64K may be loaded without an address. The address may also be" +
			" given as <filename>@<address>.",
		Usage: "load <filename> [<address>]",
	}, (*Host).cmdLoad)

	// Log commands
	lg := root.subgroup("log", "Log commands")
	lg.add(cmd.CommandDescriptor{
		Name:        "show",
		Brief:       "Show recent log entries",
		Description: "Display the most recent entries of the emulator log.",
		Usage:       "log show [<count>]",
	}, (*Host).cmdLogShow)
	lg.add(cmd.CommandDescriptor{
		Name:        "clear",
		Brief:       "Clear the log",
		Description: "Remove all entries from the emulator log.",
		Usage:       "log clear",
	}, (*Host).cmdLogClear)

	// Memory commands
	me := root.subgroup("memory", "Memory commands")
	me.add(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		Usage: "memory dump [<address>] [<bytes>]",
	}, (*Host).cmdMemoryDump)
	me.add(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set memory at address",
		Description: "Set the contents of memory starting from the specified" +
			" address. The values to assign should be a series of" +
			" space-separated byte values.",
		Usage: "memory set <address> <byte> [<byte> ...]",
	}, (*Host).cmdMemorySet)
	me.add(cmd.CommandDescriptor{
		Name:  "copy",
		Brief: "Copy memory",
		Description: "Copy memory from one range of addresses to another. You" +
			" must specify the destination address, the first byte of the source" +
			" address, and the last byte of the source address.",
		Usage: "memory copy <dst addr> <src addr begin> <src addr end>",
	}, (*Host).cmdMemoryCopy)

	root.add(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
	}, (*Host).cmdQuit)
	root.add(cmd.CommandDescriptor{
		Name:  "register",
		Brief: "View or change register values",
		Description: "When used without arguments, this command displays the current" +
			" contents of the CPU registers. When used with arguments, this" +
			" command changes the value of a register or one of the CPU's status" +
			" flags. Allowed register names include A, X, Y, PC, SP and PS. Allowed" +
			" status flag names include N (Negative), V (Overflow), B (Break)," +
			" D (Decimal), I (InterruptDisable), Z (Zero) and C (Carry).",
		Usage: "register [<name> <value>]",
	}, (*Host).cmdRegister)
	root.add(cmd.CommandDescriptor{
		Name:  "reset",
		Brief: "Reset the CPU",
		Description: "Reset the CPU. The program counter is loaded from the" +
			" reset vector at $FFFC and the counters are cleared.",
		Usage: "reset",
	}, (*Host).cmdReset)
	root.add(cmd.CommandDescriptor{
		Name:  "run",
		Brief: "Run the CPU",
		Description: "Run the CPU until a breakpoint is hit, a limit is reached," +
			" an error occurs or the user types Ctrl-C. An optional count" +
			" limits the number of instructions run.",
		Usage: "run [<count>]",
	}, (*Host).cmdRun)
	root.add(cmd.CommandDescriptor{
		Name:  "script",
		Brief: "Run a Lua script",
		Description: "Load a Lua script from disk and run it. Scripts may use" +
			" peek, poke, reg, setreg, step, run, reset and print to drive the" +
			" emulator.",
		Usage: "script <filename>",
	}, (*Host).cmdScript)
	root.add(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
	}, (*Host).cmdSet)

	// Snapshot commands
	sn := root.subgroup("snapshot", "Snapshot commands")
	sn.add(cmd.CommandDescriptor{
		Name:  "save",
		Brief: "Save a snapshot",
		Description: "Save the registers, counters, chip profile and memory" +
			" of the emulated system to a file.",
		Usage: "snapshot save <filename>",
	}, (*Host).cmdSnapshotSave)
	sn.add(cmd.CommandDescriptor{
		Name:        "load",
		Brief:       "Load a snapshot",
		Description: "Restore the emulated system from a snapshot file.",
		Usage:       "snapshot load <filename>",
	}, (*Host).cmdSnapshotLoad)

	// Step commands
	st := root.subgroup("step", "Step the debugger")
	st.add(cmd.CommandDescriptor{
		Name:  "in",
		Brief: "Step into next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step into the subroutine." +
			" The number of steps may be specified as an option.",
		Usage: "step in [<count>]",
	}, (*Host).cmdStepIn)
	st.add(cmd.CommandDescriptor{
		Name:  "over",
		Brief: "Step over next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step over the subroutine." +
			" The number of steps may be specified as an option.",
		Usage: "step over [<count>]",
	}, (*Host).cmdStepOver)
	st.add(cmd.CommandDescriptor{
		Name:  "out",
		Brief: "Step out of the current subroutine",
		Description: "Step the CPU until it executes an RTS or RTI" +
			" instruction. This has the effect of stepping until the" +
			" currently running subroutine has returned.",
		Usage: "step out",
	}, (*Host).cmdStepOut)

	// Add command shortcuts.
	t := root.tree
	t.AddShortcut("b", "breakpoint")
	t.AddShortcut("bp", "breakpoint")
	t.AddShortcut("ba", "breakpoint add")
	t.AddShortcut("br", "breakpoint remove")
	t.AddShortcut("bl", "breakpoint list")
	t.AddShortcut("be", "breakpoint enable")
	t.AddShortcut("bd", "breakpoint disable")
	t.AddShortcut("d", "disassemble")
	t.AddShortcut("db", "databreakpoint")
	t.AddShortcut("dbp", "databreakpoint")
	t.AddShortcut("dbl", "databreakpoint list")
	t.AddShortcut("dba", "databreakpoint add")
	t.AddShortcut("dbr", "databreakpoint remove")
	t.AddShortcut("dbe", "databreakpoint enable")
	t.AddShortcut("dbd", "databreakpoint disable")
	t.AddShortcut("e", "evaluate")
	t.AddShortcut("m", "memory dump")
	t.AddShortcut("mc", "memory copy")
	t.AddShortcut("ms", "memory set")
	t.AddShortcut("r", "register")
	t.AddShortcut("s", "step over")
	t.AddShortcut("si", "step in")
	t.AddShortcut("so", "step out")
	t.AddShortcut("?", "help")
	t.AddShortcut(".", "register")

	cmds = t
	cmdGroups = root
}
