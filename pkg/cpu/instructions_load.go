package cpu

import "fmt"

// init builds every 8-bit and 16-bit load form: the register-to-register
// block, immediates, (BC)/(DE) indirection, the (a16) absolute forms, the
// LDH shorthand, HL+/- auto stepping, and the full PUSH/POP set with AF
// masked on the way in.
func init() {
	registerRegToRegLoads()
	registerImmediate8Loads()
	registerIndirectAccumulatorLoads()
	registerAbsoluteAccumulatorLoads()
	registerHighPageLoads()
	registerAutoStepLoads()
	register16BitLoads()
	registerStackOps()
}

// registerRegToRegLoads builds the 0x40-0x7F block: LD r,r' for every pair
// of the 8 operand slots, except 0x76 which is HALT.
func registerRegToRegLoads() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if dst == hlOperand && src == hlOperand {
				continue // 0x76 is HALT, registered in instructions_control.go
			}
			dst, src := dst, src
			cycles := uint8(1)
			if dst == hlOperand || src == hlOperand {
				cycles = 2
			}
			registerBase(opcode, fmt.Sprintf("LD %s,%s", reg8Name(dst), reg8Name(src)), 1, cycles,
				func(c *CPU) bool {
					reg8Set(c, dst, reg8Get(c, src))
					return false
				})
		}
	}
}

// registerImmediate8Loads builds LD r,n for all 8 operand slots.
func registerImmediate8Loads() {
	for idx := uint8(0); idx < 8; idx++ {
		idx := idx
		opcode := 0x06 + idx*8
		cycles := uint8(2)
		if idx == hlOperand {
			cycles = 3
		}
		registerBase(opcode, fmt.Sprintf("LD %s,n", reg8Name(idx)), 2, cycles,
			func(c *CPU) bool {
				reg8Set(c, idx, c.Imm8())
				return false
			})
	}
}

// registerIndirectAccumulatorLoads builds LD A,(BC)/(DE) and LD (BC)/(DE),A.
func registerIndirectAccumulatorLoads() {
	registerBase(0x0A, "LD A,(BC)", 1, 2, func(c *CPU) bool {
		c.Reg.A = c.MMU.Read(c.Reg.BC())
		return false
	})
	registerBase(0x1A, "LD A,(DE)", 1, 2, func(c *CPU) bool {
		c.Reg.A = c.MMU.Read(c.Reg.DE())
		return false
	})
	registerBase(0x02, "LD (BC),A", 1, 2, func(c *CPU) bool {
		c.MMU.Write(c.Reg.BC(), c.Reg.A)
		return false
	})
	registerBase(0x12, "LD (DE),A", 1, 2, func(c *CPU) bool {
		c.MMU.Write(c.Reg.DE(), c.Reg.A)
		return false
	})
}

// registerAbsoluteAccumulatorLoads builds LD A,(a16) and LD (a16),A.
func registerAbsoluteAccumulatorLoads() {
	registerBase(0xFA, "LD A,(nn)", 3, 4, func(c *CPU) bool {
		c.Reg.A = c.MMU.Read(c.Imm16())
		return false
	})
	registerBase(0xEA, "LD (nn),A", 3, 4, func(c *CPU) bool {
		c.MMU.Write(c.Imm16(), c.Reg.A)
		return false
	})
}

// registerHighPageLoads builds the LDH shorthand forms that address
// 0xFF00+n (or 0xFF00+C): LDH (n),A / LDH A,(n) / LD (C),A / LD A,(C).
func registerHighPageLoads() {
	registerBase(0xE0, "LDH (n),A", 2, 3, func(c *CPU) bool {
		c.MMU.Write(0xFF00+uint16(c.Imm8()), c.Reg.A)
		return false
	})
	registerBase(0xF0, "LDH A,(n)", 2, 3, func(c *CPU) bool {
		c.Reg.A = c.MMU.Read(0xFF00 + uint16(c.Imm8()))
		return false
	})
	registerBase(0xE2, "LD (C),A", 1, 2, func(c *CPU) bool {
		c.MMU.Write(0xFF00+uint16(c.Reg.C), c.Reg.A)
		return false
	})
	registerBase(0xF2, "LD A,(C)", 1, 2, func(c *CPU) bool {
		c.Reg.A = c.MMU.Read(0xFF00 + uint16(c.Reg.C))
		return false
	})
}

// registerAutoStepLoads builds LD A,(HL+/-) and LD (HL+/-),A.
func registerAutoStepLoads() {
	registerBase(0x22, "LD (HL+),A", 1, 2, func(c *CPU) bool {
		c.MMU.Write(c.Reg.HL(), c.Reg.A)
		c.Reg.SetHL(c.Reg.HL() + 1)
		return false
	})
	registerBase(0x32, "LD (HL-),A", 1, 2, func(c *CPU) bool {
		c.MMU.Write(c.Reg.HL(), c.Reg.A)
		c.Reg.SetHL(c.Reg.HL() - 1)
		return false
	})
	registerBase(0x2A, "LD A,(HL+)", 1, 2, func(c *CPU) bool {
		c.Reg.A = c.MMU.Read(c.Reg.HL())
		c.Reg.SetHL(c.Reg.HL() + 1)
		return false
	})
	registerBase(0x3A, "LD A,(HL-)", 1, 2, func(c *CPU) bool {
		c.Reg.A = c.MMU.Read(c.Reg.HL())
		c.Reg.SetHL(c.Reg.HL() - 1)
		return false
	})
}

// register16BitLoads builds LD rr,nn, LD (nn),SP, LD SP,HL, and
// LD HL,SP+r8.
func register16BitLoads() {
	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		registerBase(0x01+idx*0x10, fmt.Sprintf("LD %s,nn", regPairName(idx)), 3, 3,
			func(c *CPU) bool {
				regPairSet(c, idx, c.Imm16())
				return false
			})
	}

	registerBase(0x08, "LD (nn),SP", 3, 5, func(c *CPU) bool {
		c.MMU.WriteWord(c.Imm16(), c.Reg.SP)
		return false
	})

	registerBase(0xF9, "LD SP,HL", 1, 2, func(c *CPU) bool {
		c.Reg.SP = c.Reg.HL()
		return false
	})

	registerBase(0xF8, "LD HL,SP+r8", 2, 3, func(c *CPU) bool {
		offset := signExtend(c.Imm8())
		result := uint32(int32(c.Reg.SP) + int32(offset))
		sp8 := c.Reg.SP & 0xFF
		val8 := uint16(c.Imm8())
		c.Reg.SetFlag(FlagZ, false)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagH, (sp8&0xF)+(val8&0xF) > 0xF)
		c.Reg.SetFlag(FlagC, (sp8)+(val8&0xFF) > 0xFF)
		c.Reg.SetHL(uint16(result))
		return false
	})
}

// registerStackOps builds PUSH/POP for all four pairs, including AF — POP AF
// masks F's low nibble through Registers.SetAF.
func registerStackOps() {
	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		registerBase(0xC5+idx*0x10, fmt.Sprintf("PUSH %s", stackPairName(idx)), 1, 4,
			func(c *CPU) bool {
				c.PushWord(stackPairGet(c, idx))
				return false
			})
		registerBase(0xC1+idx*0x10, fmt.Sprintf("POP %s", stackPairName(idx)), 1, 3,
			func(c *CPU) bool {
				stackPairSet(c, idx, c.PopWord())
				return false
			})
	}
}
