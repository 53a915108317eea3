package cpu

import "fmt"

// conditionNames names the four branch conditions in their table order: NZ, Z,
// NC, C.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

func conditionMet(c *CPU, idx uint8) bool {
	switch idx {
	case 0:
		return !c.Reg.IsSet(FlagZ)
	case 1:
		return c.Reg.IsSet(FlagZ)
	case 2:
		return !c.Reg.IsSet(FlagC)
	case 3:
		return c.Reg.IsSet(FlagC)
	default:
		panic("cpu: condition index out of range")
	}
}

// init builds every control-flow instruction: JP/JR (absolute and
// conditional), CALL/RET/RETI, and RST. All of these are registered as
// branch instructions: the handler sets PC itself when the branch is
// taken, and Step only applies the uniform PC+=Length advance when it is
// not.
func init() {
	registerJumps()
	registerCalls()
	registerReturns()
	registerRST()
}

func registerJumps() {
	registerBranch(0xC3, "JP nn", 3, 4, 4, func(c *CPU) bool {
		c.Reg.PC = c.MMU.ReadWord(c.Reg.PC + 1)
		return true
	})

	registerBranch(0xE9, "JP HL", 1, 1, 1, func(c *CPU) bool {
		c.Reg.PC = c.Reg.HL()
		return true
	})

	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		opcode := 0xC2 + idx*0x08
		registerBranch(opcode, fmt.Sprintf("JP %s,nn", conditionNames[idx]), 3, 4, 3, func(c *CPU) bool {
			target := c.MMU.ReadWord(c.Reg.PC + 1)
			if !conditionMet(c, idx) {
				return false
			}
			c.Reg.PC = target
			return true
		})
	}

	registerBranch(0x18, "JR r8", 2, 3, 3, func(c *CPU) bool {
		offset := signExtend(c.Imm8())
		c.Reg.PC = uint16(int32(c.Reg.PC) + 2 + int32(offset))
		return true
	})

	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		opcode := 0x20 + idx*0x08
		registerBranch(opcode, fmt.Sprintf("JR %s,r8", conditionNames[idx]), 2, 3, 2, func(c *CPU) bool {
			offset := signExtend(c.Imm8())
			if !conditionMet(c, idx) {
				return false
			}
			c.Reg.PC = uint16(int32(c.Reg.PC) + 2 + int32(offset))
			return true
		})
	}
}

func registerCalls() {
	registerBranch(0xCD, "CALL nn", 3, 6, 6, func(c *CPU) bool {
		target := c.MMU.ReadWord(c.Reg.PC + 1)
		c.PushWord(c.Reg.PC + 3)
		c.Reg.PC = target
		return true
	})

	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		opcode := 0xC4 + idx*0x08
		registerBranch(opcode, fmt.Sprintf("CALL %s,nn", conditionNames[idx]), 3, 6, 3, func(c *CPU) bool {
			target := c.MMU.ReadWord(c.Reg.PC + 1)
			if !conditionMet(c, idx) {
				return false
			}
			c.PushWord(c.Reg.PC + 3)
			c.Reg.PC = target
			return true
		})
	}
}

func registerReturns() {
	registerBranch(0xC9, "RET", 1, 4, 4, func(c *CPU) bool {
		c.Reg.PC = c.PopWord()
		return true
	})

	registerBranch(0xD9, "RETI", 1, 4, 4, func(c *CPU) bool {
		c.Reg.PC = c.PopWord()
		c.IME = true
		return true
	})

	for idx := uint8(0); idx < 4; idx++ {
		idx := idx
		opcode := 0xC0 + idx*0x08
		registerBranch(opcode, fmt.Sprintf("RET %s", conditionNames[idx]), 1, 5, 2, func(c *CPU) bool {
			if !conditionMet(c, idx) {
				return false
			}
			c.Reg.PC = c.PopWord()
			return true
		})
	}
}

// registerRST builds the eight RST vectors. RST 7 (opcode 0xFF) must land
// on 0x0038 (7*0x08), not 0x0138.
func registerRST() {
	vectors := [8]uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	for idx := uint8(0); idx < 8; idx++ {
		idx := idx
		vec := vectors[idx]
		opcode := 0xC7 + idx*0x08
		registerBranch(opcode, fmt.Sprintf("RST %02Xh", vec), 1, 4, 4, func(c *CPU) bool {
			c.PushWord(c.Reg.PC + 1)
			c.Reg.PC = vec
			return true
		})
	}
}
