package cpu

import "fmt"

// init builds the four unprefixed accumulator rotates and the CB-prefixed
// rotate/shift/swap block, which applies the same eight operations across
// all 8 operand slots.
func init() {
	registerAccumulatorRotates()
	registerCBRotates()
}

// registerAccumulatorRotates builds RLCA/RLA/RRCA/RRA. Unlike their CB
// counterparts these never set Z from the result: it is unconditionally
// cleared.
func registerAccumulatorRotates() {
	registerBase(0x07, "RLCA", 1, 1, func(c *CPU) bool {
		v := c.Reg.A
		carry := v&0x80 != 0
		c.Reg.A = v<<1 | b2u8(carry)
		setRotateFlags(c, carry, true)
		return false
	})
	registerBase(0x0F, "RRCA", 1, 1, func(c *CPU) bool {
		v := c.Reg.A
		carry := v&0x01 != 0
		c.Reg.A = v>>1 | (b2u8(carry) << 7)
		setRotateFlags(c, carry, true)
		return false
	})
	registerBase(0x17, "RLA", 1, 1, func(c *CPU) bool {
		v := c.Reg.A
		carry := v&0x80 != 0
		c.Reg.A = v<<1 | carryIn(c)
		setRotateFlags(c, carry, true)
		return false
	})
	registerBase(0x1F, "RRA", 1, 1, func(c *CPU) bool {
		v := c.Reg.A
		carry := v&0x01 != 0
		c.Reg.A = v>>1 | (carryIn(c) << 7)
		setRotateFlags(c, carry, true)
		return false
	})
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// setRotateFlags clears N and H and sets C; Z is cleared when forceZeroClear
// is true (as the unprefixed accumulator forms pass, since they never set Z)
// and left unchanged otherwise.
func setRotateFlags(c *CPU, carry bool, forceZeroClear bool) {
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagH, false)
	c.Reg.SetFlag(FlagC, carry)
	if forceZeroClear {
		c.Reg.SetFlag(FlagZ, false)
	}
}

type cbShiftOp struct {
	name string
	fn   func(c *CPU, v uint8) (result uint8, carry bool)
}

var cbShiftOps = [8]cbShiftOp{
	{"RLC", func(c *CPU, v uint8) (uint8, bool) {
		carry := v&0x80 != 0
		return v<<1 | b2u8(carry), carry
	}},
	{"RRC", func(c *CPU, v uint8) (uint8, bool) {
		carry := v&0x01 != 0
		return v>>1 | (b2u8(carry) << 7), carry
	}},
	{"RL", func(c *CPU, v uint8) (uint8, bool) {
		carry := v&0x80 != 0
		return v<<1 | carryIn(c), carry
	}},
	{"RR", func(c *CPU, v uint8) (uint8, bool) {
		carry := v&0x01 != 0
		return v>>1 | (carryIn(c) << 7), carry
	}},
	{"SLA", func(c *CPU, v uint8) (uint8, bool) {
		carry := v&0x80 != 0
		return v << 1, carry
	}},
	{"SRA", func(c *CPU, v uint8) (uint8, bool) {
		carry := v&0x01 != 0
		return v>>1 | (v & 0x80), carry
	}},
	{"SWAP", func(c *CPU, v uint8) (uint8, bool) {
		return v<<4 | v>>4, false
	}},
	{"SRL", func(c *CPU, v uint8) (uint8, bool) {
		carry := v&0x01 != 0
		return v >> 1, carry
	}},
}

func registerCBRotates() {
	for opIdx := uint8(0); opIdx < 8; opIdx++ {
		op := cbShiftOps[opIdx]
		for reg := uint8(0); reg < 8; reg++ {
			reg := reg
			opcode := opIdx*8 + reg
			cycles := uint8(2)
			if reg == hlOperand {
				cycles = 4
			}
			registerCB(opcode, fmt.Sprintf("%s %s", op.name, reg8Name(reg)), cycles, func(c *CPU) bool {
				result, carry := op.fn(c, reg8Get(c, reg))
				reg8Set(c, reg, result)
				c.Reg.SetFlag(FlagN, false)
				c.Reg.SetFlag(FlagH, false)
				c.Reg.SetFlag(FlagC, carry)
				setZ(c, result)
				return false
			})
		}
	}
}
