package cpu

import "fmt"

// init builds the BIT/RES/SET block of the CB-prefixed table: each tests,
// clears, or sets one of 8 bits across all 8 operand slots, 192 opcodes in
// total.
func init() {
	for bit := uint8(0); bit < 8; bit++ {
		bit := bit
		mask := uint8(1) << bit
		for reg := uint8(0); reg < 8; reg++ {
			reg := reg

			bitCycles := uint8(2)
			if reg == hlOperand {
				bitCycles = 3
			}
			registerCB(0x40+bit*8+reg, fmt.Sprintf("BIT %d,%s", bit, reg8Name(reg)), bitCycles, func(c *CPU) bool {
				v := reg8Get(c, reg)
				c.Reg.SetFlag(FlagZ, v&mask == 0)
				c.Reg.SetFlag(FlagN, false)
				c.Reg.SetFlag(FlagH, true)
				return false
			})

			rwCycles := uint8(2)
			if reg == hlOperand {
				rwCycles = 4
			}
			registerCB(0x80+bit*8+reg, fmt.Sprintf("RES %d,%s", bit, reg8Name(reg)), rwCycles, func(c *CPU) bool {
				reg8Set(c, reg, reg8Get(c, reg)&^mask)
				return false
			})
			registerCB(0xC0+bit*8+reg, fmt.Sprintf("SET %d,%s", bit, reg8Name(reg)), rwCycles, func(c *CPU) bool {
				reg8Set(c, reg, reg8Get(c, reg)|mask)
				return false
			})
		}
	}
}
