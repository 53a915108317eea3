package cpu

import (
	"fmt"

	"github.com/oisee/gbz80/pkg/mem"
)

// RunState is the CPU's execution state machine: Running -> Halted -> Running
// on any enabled interrupt, Running -> Stopped -> Running on joypad input or
// reset.
type RunState uint8

const (
	Running RunState = iota
	Halted
	Stopped
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Interrupt vectors, lowest bit (highest priority) first.
const (
	vecVBlank  uint16 = 0x40
	vecLCDStat uint16 = 0x48
	vecTimer   uint16 = 0x50
	vecSerial  uint16 = 0x58
	vecJoypad  uint16 = 0x60
)

var interruptVectors = [5]struct {
	bit uint8
	vec uint16
}{
	{0x01, vecVBlank},
	{0x02, vecLCDStat},
	{0x04, vecTimer},
	{0x08, vecSerial},
	{0x10, vecJoypad},
}

// DecodeError reports a fetch of an opcode the instruction table has no
// entry for. It is fatal at the core level: the driver surfaces it and
// exits.
type DecodeError struct {
	Opcode  uint8
	PC      uint16
	Prefix  bool
}

func (e *DecodeError) Error() string {
	if e.Prefix {
		return fmt.Sprintf("cpu: no instruction for CB-prefixed opcode %#02x at PC=%#04x", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: no instruction for opcode %#02x at PC=%#04x", e.Opcode, e.PC)
}

// CPU is the processor: its register file, the state machine, the running
// M-cycle counter, and the MMU it exclusively drives memory effects through.
type CPU struct {
	Reg    *Registers
	MMU    *mem.MMU
	State  RunState
	Cycles uint64

	// IME is the interrupt master enable flag, set/cleared by EI/DI and by
	// the interrupt dispatcher itself. It lives on the CPU rather than in F
	// because it is not one of the four documented flag bits.
	IME bool

	// pendingEI defers EI's effect by one instruction, matching the
	// documented one-instruction latency: EI takes effect only after the
	// instruction following it has executed.
	pendingEI bool
}

// New returns a CPU in the documented post-boot state, driving the given
// MMU.
func New(mmu *mem.MMU) *CPU {
	return &CPU{
		Reg:   NewRegisters(),
		MMU:   mmu,
		State: Running,
	}
}

// Reset restores the register file to its post-boot state and returns the
// CPU to Running.
func (c *CPU) Reset() {
	c.Reg.Reset()
	c.State = Running
	c.Cycles = 0
	c.IME = false
	c.pendingEI = false
}

// Imm8 reads the immediate byte at PC+1.
func (c *CPU) Imm8() uint8 { return c.MMU.Read(c.Reg.PC + 1) }

// Imm16 reads the little-endian immediate word at PC+1.
func (c *CPU) Imm16() uint16 { return c.MMU.ReadWord(c.Reg.PC + 1) }

// Push decrements SP then stores value at the new SP, per the platform's
// descending stack.
func (c *CPU) Push(value uint8) {
	c.Reg.SP--
	c.MMU.Write(c.Reg.SP, value)
}

// Pop reads the byte at SP then increments SP.
func (c *CPU) Pop() uint8 {
	v := c.MMU.Read(c.Reg.SP)
	c.Reg.SP++
	return v
}

// PushWord pushes a word high byte first, so the low byte ends up at the
// lower address — consistent with the little-endian memory convention.
func (c *CPU) PushWord(value uint16) {
	c.Push(uint8(value >> 8))
	c.Push(uint8(value))
}

// PopWord pops a word pushed by PushWord.
func (c *CPU) PopWord() uint16 {
	lo := c.Pop()
	hi := c.Pop()
	return uint16(hi)<<8 | uint16(lo)
}

// Step fetches, decodes, and executes exactly one instruction, then advances
// PC and the cycle counter. It returns the DecodeError if the fetched
// opcode has no table entry; the CPU is left at the faulting PC in that
// case, since decode errors are unrecoverable at this level.
func (c *CPU) Step() error {
	if c.State != Running {
		return nil
	}

	pc := c.Reg.PC
	opcode := c.MMU.Read(pc)

	var entry *Instruction
	if opcode == cbPrefix {
		sub := c.MMU.Read(pc + 1)
		entry = CBTable[sub]
		if entry == nil {
			return &DecodeError{Opcode: sub, PC: pc, Prefix: true}
		}
	} else {
		entry = BaseTable[opcode]
		if entry == nil {
			return &DecodeError{Opcode: opcode, PC: pc}
		}
	}

	// An EI executed by an earlier Step takes effect once this instruction
	// has run; capture it before the handler so EI itself doesn't count.
	enableIME := c.pendingEI

	taken := entry.Handler(c)

	if entry.IsBranch {
		if !taken {
			c.Reg.PC = pc + uint16(entry.Length)
			c.Cycles += uint64(entry.CyclesUntaken)
		} else {
			c.Cycles += uint64(entry.CyclesTaken)
		}
	} else {
		c.Reg.PC = pc + uint16(entry.Length)
		c.Cycles += uint64(entry.CyclesTaken)
	}

	if enableIME && c.pendingEI {
		c.pendingEI = false
		c.IME = true
	}

	return nil
}

// ServiceInterrupts is the interrupt-dispatch seam a driver calls between
// Step calls; it never runs as part of Step itself. When
// IME is set and a requested interrupt is also enabled, it clears IME,
// pushes PC, jumps to the interrupt's vector, and clears the request bit.
// A Halted CPU wakes on any enabled, requested interrupt even if IME is
// clear (the interrupt simply isn't serviced in that case).
func (c *CPU) ServiceInterrupts() {
	pending := c.MMU.InterruptIF & c.MMU.InterruptIE & 0x1F
	if pending == 0 {
		return
	}
	if c.State == Halted {
		c.State = Running
	}
	if !c.IME {
		return
	}
	for _, iv := range interruptVectors {
		if pending&iv.bit == 0 {
			continue
		}
		c.IME = false
		c.MMU.InterruptIF &^= iv.bit
		c.PushWord(c.Reg.PC)
		c.Reg.PC = iv.vec
		c.Cycles += 5
		return
	}
}
