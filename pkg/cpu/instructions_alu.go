package cpu

import "fmt"

// init builds the accumulator ALU block (0x80-0xBF plus the 0xC6-0xFE
// immediate forms), INC/DEC for both operand sizes, and the remaining
// single-opcode arithmetic instructions (DAA, CPL, SCF, CCF, ADD HL,rr,
// ADD SP,r8).
func init() {
	registerAluOps()
	registerIncDec8()
	registerIncDec16()
	registerAddHL()
	registerMiscArith()
}

// aluOps names the 8 accumulator operations in their table order.
var aluOps = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

// applyAlu performs operation opIdx against the accumulator and operand,
// updating flags and storing the result in A (CP discards it).
func applyAlu(c *CPU, opIdx uint8, operand uint8) {
	a := c.Reg.A
	switch opIdx {
	case 0: // ADD
		result := uint16(a) + uint16(operand)
		c.Reg.SetFlag(FlagH, halfCarryAdd8(a, operand, 0))
		c.Reg.SetFlag(FlagC, result > 0xFF)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.A = uint8(result)
		setZ(c, c.Reg.A)
	case 1: // ADC
		cin := carryIn(c)
		result := uint16(a) + uint16(operand) + uint16(cin)
		c.Reg.SetFlag(FlagH, halfCarryAdd8(a, operand, cin))
		c.Reg.SetFlag(FlagC, result > 0xFF)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.A = uint8(result)
		setZ(c, c.Reg.A)
	case 2: // SUB
		c.Reg.SetFlag(FlagH, halfCarrySub8(a, operand, 0))
		c.Reg.SetFlag(FlagC, uint16(a) < uint16(operand))
		c.Reg.SetFlag(FlagN, true)
		c.Reg.A = a - operand
		setZ(c, c.Reg.A)
	case 3: // SBC
		cin := carryIn(c)
		c.Reg.SetFlag(FlagH, halfCarrySub8(a, operand, cin))
		c.Reg.SetFlag(FlagC, uint16(a) < uint16(operand)+uint16(cin))
		c.Reg.SetFlag(FlagN, true)
		c.Reg.A = a - operand - cin
		setZ(c, c.Reg.A)
	case 4: // AND
		c.Reg.A = a & operand
		c.Reg.SetFlag(FlagH, true)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagC, false)
		setZ(c, c.Reg.A)
	case 5: // XOR
		c.Reg.A = a ^ operand
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagC, false)
		setZ(c, c.Reg.A)
	case 6: // OR
		c.Reg.A = a | operand
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagC, false)
		setZ(c, c.Reg.A)
	case 7: // CP compares without storing
		c.Reg.SetFlag(FlagH, halfCarrySub8(a, operand, 0))
		c.Reg.SetFlag(FlagC, uint16(a) < uint16(operand))
		c.Reg.SetFlag(FlagN, true)
		setZ(c, a-operand)
	default:
		panic("cpu: alu op index out of range")
	}
}

func registerAluOps() {
	for opIdx := uint8(0); opIdx < 8; opIdx++ {
		opIdx := opIdx
		for reg := uint8(0); reg < 8; reg++ {
			reg := reg
			opcode := 0x80 + opIdx*8 + reg
			cycles := uint8(1)
			if reg == hlOperand {
				cycles = 2
			}
			registerBase(opcode, fmt.Sprintf("%s A,%s", aluOps[opIdx], reg8Name(reg)), 1, cycles,
				func(c *CPU) bool {
					applyAlu(c, opIdx, reg8Get(c, reg))
					return false
				})
		}
		opcode := 0xC6 + opIdx*8
		registerBase(opcode, fmt.Sprintf("%s A,n", aluOps[opIdx]), 2, 2, func(c *CPU) bool {
			applyAlu(c, opIdx, c.Imm8())
			return false
		})
	}
}

func registerIncDec8() {
	for idx := uint8(0); idx < 8; idx++ {
		idx := idx
		cycles := uint8(1)
		if idx == hlOperand {
			cycles = 3
		}
		registerBase(0x04+idx*8, fmt.Sprintf("INC %s", reg8Name(idx)), 1, cycles, func(c *CPU) bool {
			v := reg8Get(c, idx)
			result := v + 1
			c.Reg.SetFlag(FlagH, halfCarryAdd8(v, 1, 0))
			c.Reg.SetFlag(FlagN, false)
			setZ(c, result)
			reg8Set(c, idx, result)
			return false
		})
		registerBase(0x05+idx*8, fmt.Sprintf("DEC %s", reg8Name(idx)), 1, cycles, func(c *CPU) bool {
			v := reg8Get(c, idx)
			result := v - 1
			c.Reg.SetFlag(FlagH, halfCarrySub8(v, 1, 0))
			c.Reg.SetFlag(FlagN, true)
			setZ(c, result)
			reg8Set(c, idx, result)
			return false
		})
	}
}

func registerIncDec16() {
	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		registerBase(0x03+idx*0x10, fmt.Sprintf("INC %s", regPairName(idx)), 1, 2, func(c *CPU) bool {
			regPairSet(c, idx, regPairGet(c, idx)+1)
			return false
		})
		registerBase(0x0B+idx*0x10, fmt.Sprintf("DEC %s", regPairName(idx)), 1, 2, func(c *CPU) bool {
			regPairSet(c, idx, regPairGet(c, idx)-1)
			return false
		})
	}
}

func registerAddHL() {
	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		registerBase(0x09+idx*0x10, fmt.Sprintf("ADD HL,%s", regPairName(idx)), 1, 2, func(c *CPU) bool {
			hl := c.Reg.HL()
			operand := regPairGet(c, idx)
			result := uint32(hl) + uint32(operand)
			c.Reg.SetFlag(FlagH, (hl&0xFFF)+(operand&0xFFF) > 0xFFF)
			c.Reg.SetFlag(FlagC, result > 0xFFFF)
			c.Reg.SetFlag(FlagN, false)
			c.Reg.SetHL(uint16(result))
			return false
		})
	}
}

func registerMiscArith() {
	registerBase(0x27, "DAA", 1, 1, func(c *CPU) bool {
		a := c.Reg.A
		adjust := uint8(0)
		carry := false
		if c.Reg.IsSet(FlagN) {
			if c.Reg.IsSet(FlagH) {
				adjust += 0x06
			}
			if c.Reg.IsSet(FlagC) {
				adjust += 0x60
			}
			a -= adjust
		} else {
			if c.Reg.IsSet(FlagH) || a&0xF > 0x9 {
				adjust += 0x06
			}
			if c.Reg.IsSet(FlagC) || a > 0x99 {
				adjust += 0x60
				carry = true
			}
			a += adjust
		}
		c.Reg.A = a
		setZ(c, a)
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagC, carry || c.Reg.IsSet(FlagC))
		return false
	})

	registerBase(0x2F, "CPL", 1, 1, func(c *CPU) bool {
		c.Reg.A = ^c.Reg.A
		c.Reg.SetFlag(FlagN, true)
		c.Reg.SetFlag(FlagH, true)
		return false
	})

	registerBase(0x37, "SCF", 1, 1, func(c *CPU) bool {
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagC, true)
		return false
	})

	registerBase(0x3F, "CCF", 1, 1, func(c *CPU) bool {
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagC, !c.Reg.IsSet(FlagC))
		return false
	})

	registerBase(0xE8, "ADD SP,r8", 2, 4, func(c *CPU) bool {
		offset := signExtend(c.Imm8())
		sp8 := c.Reg.SP & 0xFF
		val8 := uint16(c.Imm8())
		c.Reg.SetFlag(FlagZ, false)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagH, (sp8&0xF)+(val8&0xF) > 0xF)
		c.Reg.SetFlag(FlagC, sp8+(val8&0xFF) > 0xFF)
		c.Reg.SP = uint16(int32(c.Reg.SP) + int32(offset))
		return false
	})
}
