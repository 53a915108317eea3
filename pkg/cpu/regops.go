package cpu

// The platform's 3-bit register field encodes B,C,D,E,H,L,(HL),A in that
// order; every opcode family that varies by "operand register" (LD r,r',
// the accumulator ALU block, INC/DEC r, and every CB-prefixed op) indexes
// into this same order. reg8Get/reg8Set are the single place that encoding
// is interpreted, so every generated table entry shares one definition of
// "operand 6 means (HL)".
const hlOperand = 6

func reg8Get(c *CPU, idx uint8) uint8 {
	switch idx {
	case 0:
		return c.Reg.B
	case 1:
		return c.Reg.C
	case 2:
		return c.Reg.D
	case 3:
		return c.Reg.E
	case 4:
		return c.Reg.H
	case 5:
		return c.Reg.L
	case hlOperand:
		return c.MMU.Read(c.Reg.HL())
	case 7:
		return c.Reg.A
	default:
		panic("cpu: register index out of range")
	}
}

func reg8Set(c *CPU, idx uint8, v uint8) {
	switch idx {
	case 0:
		c.Reg.B = v
	case 1:
		c.Reg.C = v
	case 2:
		c.Reg.D = v
	case 3:
		c.Reg.E = v
	case 4:
		c.Reg.H = v
	case 5:
		c.Reg.L = v
	case hlOperand:
		c.MMU.Write(c.Reg.HL(), v)
	case 7:
		c.Reg.A = v
	default:
		panic("cpu: register index out of range")
	}
}

func reg8Name(idx uint8) string {
	return [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}[idx]
}

// regPair indexes the four 16-bit pairs as they appear in the LD rr,nn /
// INC rr / DEC rr / ADD HL,rr opcode families: BC, DE, HL, SP.
func regPairGet(c *CPU, idx uint8) uint16 {
	switch idx {
	case 0:
		return c.Reg.BC()
	case 1:
		return c.Reg.DE()
	case 2:
		return c.Reg.HL()
	case 3:
		return c.Reg.SP
	default:
		panic("cpu: register pair index out of range")
	}
}

func regPairSet(c *CPU, idx uint8, v uint16) {
	switch idx {
	case 0:
		c.Reg.SetBC(v)
	case 1:
		c.Reg.SetDE(v)
	case 2:
		c.Reg.SetHL(v)
	case 3:
		c.Reg.SP = v
	default:
		panic("cpu: register pair index out of range")
	}
}

func regPairName(idx uint8) string {
	return [4]string{"BC", "DE", "HL", "SP"}[idx]
}

// stackPairGet/Set index the four pairs as they appear in PUSH/POP, where
// the fourth slot is AF rather than SP.
func stackPairGet(c *CPU, idx uint8) uint16 {
	if idx == 3 {
		return c.Reg.AF()
	}
	return regPairGet(c, idx)
}

func stackPairSet(c *CPU, idx uint8, v uint16) {
	if idx == 3 {
		c.Reg.SetAF(v)
		return
	}
	regPairSet(c, idx, v)
}

func stackPairName(idx uint8) string {
	if idx == 3 {
		return "AF"
	}
	return regPairName(idx)
}

// signExtend interprets v as a two's-complement 8-bit displacement.
func signExtend(v uint8) int16 {
	return int16(int8(v))
}

// halfCarryAdd8 reports whether adding a+b (+carry-in) overflows bit 3 into
// bit 4.
func halfCarryAdd8(a, b, carryIn uint8) bool {
	return (a&0xF)+(b&0xF)+carryIn > 0xF
}

// halfCarrySub8 reports whether subtracting b (+borrow-in) from a borrows
// out of bit 4. This is deliberately the borrow-based formula, not the
// addition-style check — reusing an addition's half-carry test for
// subtraction is wrong, since it can never detect a borrow.
func halfCarrySub8(a, b, borrowIn uint8) bool {
	return (int(a) & 0xF) - (int(b) & 0xF) - int(borrowIn) < 0
}

func carryIn(c *CPU) uint8 {
	if c.Reg.IsSet(FlagC) {
		return 1
	}
	return 0
}

func setZ(c *CPU, v uint8) { c.Reg.SetFlag(FlagZ, v == 0) }
