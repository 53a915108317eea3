package cpu

// init registers the handful of instructions that don't fit any of the
// generated families: NOP, HALT, STOP, and the IME toggles DI/EI. The eleven
// opcodes the platform leaves undefined (0xD3, 0xDB, 0xDD, 0xE3, 0xE4,
// 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD) are simply never registered, so a
// fetch of one of them surfaces as a DecodeError.
func init() {
	registerBase(0x00, "NOP", 1, 1, func(c *CPU) bool {
		return false
	})

	// HALT shares its slot with LD (HL),(HL), which would otherwise decode
	// to opcode 0x76; the platform repurposes it entirely.
	registerBase(0x76, "HALT", 1, 1, func(c *CPU) bool {
		c.State = Halted
		return false
	})

	registerBase(0x10, "STOP", 2, 1, func(c *CPU) bool {
		c.State = Stopped
		return false
	})

	registerBase(0xF3, "DI", 1, 1, func(c *CPU) bool {
		c.IME = false
		c.pendingEI = false
		return false
	})

	registerBase(0xFB, "EI", 1, 1, func(c *CPU) bool {
		c.pendingEI = true
		return false
	})
}
