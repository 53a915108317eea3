package cpu

import "fmt"

// CBPrefixOpcode (0xCB) introduces the second, 256-entry opcode table. It is decoded
// strictly as a prefix: fetch never treats it as an instruction in its own
// right, and BaseTable has no entry for it.
const CBPrefixOpcode = 0xCB

// keep the historical name used by cpu.go's fetch in one place.
const cbPrefix = CBPrefixOpcode

// Handler executes one instruction's effect against the CPU (and, through
// it, the MMU). Its return value only matters for branch instructions: true
// means the branch was taken (the handler already set PC to the target and
// the core must not add Length on top); false means it fell through (the
// core advances PC by Length as usual). Non-branch handlers always return
// false; the return value is ignored for them.
type Handler func(c *CPU) bool

// Instruction is an immutable table entry: everything needed to execute and
// to disassemble one opcode.
type Instruction struct {
	Mnemonic string
	Opcode   uint8 // unprefixed opcode, or the second byte of a CB sequence
	Length   uint8 // encoded length in bytes: 1, 2, or 3
	Prefixed bool

	// CyclesTaken is the M-cycle cost when a branch is taken (or the only
	// cost, for non-branching instructions). CyclesUntaken is the cost when
	// a conditional branch falls through; for non-branching and
	// unconditional-branch instructions the two are equal.
	CyclesTaken   uint8
	CyclesUntaken uint8

	// IsBranch marks instructions whose handler may itself set PC: the core
	// skips the uniform PC+=Length advance when the handler reports the
	// branch was taken.
	IsBranch bool

	Handler Handler
}

// BaseTable and CBTable are the process-wide, opcode-keyed instruction
// catalogs. A nil entry means the reference platform leaves that opcode
// undefined; reaching one during Step is a fatal DecodeError. Both tables
// are built once, in each family's init(), and are never mutated afterward.
var (
	BaseTable [256]*Instruction
	CBTable   [256]*Instruction
)

// register installs ins into table at opcode, panicking if the slot is
// already taken — opcodes must be unique within a table.
func register(table *[256]*Instruction, opcode uint8, ins *Instruction) {
	if table[opcode] != nil {
		panic(fmt.Sprintf("cpu: duplicate opcode %#02x (%s collides with %s)",
			opcode, ins.Mnemonic, table[opcode].Mnemonic))
	}
	ins.Opcode = opcode
	table[opcode] = ins
}

// registerBase adds a non-branching, single-cost instruction to BaseTable.
func registerBase(opcode uint8, mnemonic string, length, cycles uint8, h Handler) {
	register(&BaseTable, opcode, &Instruction{
		Mnemonic:      mnemonic,
		Length:        length,
		CyclesTaken:   cycles,
		CyclesUntaken: cycles,
		Handler:       h,
	})
}

// registerBranch adds a (possibly conditional) control-flow instruction to
// BaseTable.
func registerBranch(opcode uint8, mnemonic string, length, cyclesTaken, cyclesUntaken uint8, h Handler) {
	register(&BaseTable, opcode, &Instruction{
		Mnemonic:      mnemonic,
		Length:        length,
		CyclesTaken:   cyclesTaken,
		CyclesUntaken: cyclesUntaken,
		IsBranch:      true,
		Handler:       h,
	})
}

// registerCB adds an entry to the CB-prefixed table. Every CB-prefixed
// instruction is 2 bytes long and non-branching.
func registerCB(opcode uint8, mnemonic string, cycles uint8, h Handler) {
	register(&CBTable, opcode, &Instruction{
		Mnemonic:      mnemonic,
		Length:        2,
		Prefixed:      true,
		CyclesTaken:   cycles,
		CyclesUntaken: cycles,
		Handler:       h,
	})
}
