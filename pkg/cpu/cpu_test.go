package cpu

import (
	"testing"

	"github.com/oisee/gbz80/pkg/mem"
)

func newTestCPU() *CPU {
	mmu := mem.New()
	c := New(mmu)
	return c
}

func TestPostBootRegisterState(t *testing.T) {
	c := newTestCPU()
	tests := []struct {
		name string
		got  uint16
		want uint16
	}{
		{"AF", c.Reg.AF(), 0x0180},
		{"BC", c.Reg.BC(), 0x0013},
		{"DE", c.Reg.DE(), 0x00D8},
		{"HL", c.Reg.HL(), 0x014D},
		{"PC", c.Reg.PC, 0x0100},
		{"SP", c.Reg.SP, 0xFFFE},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %#04x, want %#04x", tc.name, tc.got, tc.want)
		}
	}
}

func TestEveryBaseOpcodeIsUniqueOrUndefined(t *testing.T) {
	for i := 0; i < 256; i++ {
		entry := BaseTable[i]
		if entry == nil {
			continue
		}
		if int(entry.Opcode) != i {
			t.Errorf("opcode %#02x stored under the wrong slot (Opcode field says %#02x)", i, entry.Opcode)
		}
	}
}

func TestEveryCBOpcodeIsDefined(t *testing.T) {
	for i := 0; i < 256; i++ {
		if CBTable[i] == nil {
			t.Errorf("CB opcode %#02x has no table entry", i)
		}
	}
}

func TestNOPAdvancesPCByOne(t *testing.T) {
	c := newTestCPU()
	start := c.Reg.PC
	c.MMU.Write(start, 0x00)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != start+1 {
		t.Errorf("PC: got %#04x, want %#04x", c.Reg.PC, start+1)
	}
	if c.Cycles != 1 {
		t.Errorf("cycles: got %d, want 1", c.Cycles)
	}
}

func TestAddSetsCarryAndHalfCarry(t *testing.T) {
	c := newTestCPU()
	c.Reg.A = 0xFF
	c.Reg.B = 0x01
	c.MMU.Write(c.Reg.PC, 0x80) // ADD A,B
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0x00 {
		t.Errorf("A: got %#02x, want 0x00", c.Reg.A)
	}
	if !c.Reg.IsSet(FlagZ) || !c.Reg.IsSet(FlagH) || !c.Reg.IsSet(FlagC) {
		t.Errorf("flags: got %#02x, want Z,H,C all set", c.Reg.F)
	}
}

func TestSubBorrowUsesSubtractionFormula(t *testing.T) {
	// 0x10 - 0x01: borrows out of bit 4 (0x0 - 0x1 < 0) even though the
	// addition-style check ((a&0xF)+(b&0xF))&0x10 would report no
	// half-carry here.
	c := newTestCPU()
	c.Reg.A = 0x10
	c.Reg.B = 0x01
	c.MMU.Write(c.Reg.PC, 0x90) // SUB A,B
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0x0F {
		t.Errorf("A: got %#02x, want 0x0F", c.Reg.A)
	}
	if !c.Reg.IsSet(FlagH) {
		t.Error("H should be set: subtracting 1 from 0x10 borrows out of bit 4")
	}
	if c.Reg.IsSet(FlagC) {
		t.Error("C should be clear: 0x10 >= 0x01")
	}
}

func TestSubWithoutBorrow(t *testing.T) {
	c := newTestCPU()
	c.Reg.A = 62
	c.Reg.B = 34
	c.MMU.Write(c.Reg.PC, 0x90) // SUB A,B
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 28 {
		t.Errorf("A: got %d, want 28", c.Reg.A)
	}
	if c.Reg.IsSet(FlagZ) {
		t.Error("Z should be clear: result is nonzero")
	}
	if !c.Reg.IsSet(FlagN) {
		t.Error("N should be set: SUB is a subtraction")
	}
	if c.Reg.IsSet(FlagH) {
		t.Error("H should be clear: no borrow out of bit 4 (0x3E - 0x22, low nibbles 0xE - 0x2)")
	}
	if c.Reg.IsSet(FlagC) {
		t.Error("C should be clear: 62 >= 34")
	}
}

func TestXorAClearsAccumulatorAndSetsZero(t *testing.T) {
	c := newTestCPU()
	c.Reg.A = 0x5A
	c.MMU.Write(c.Reg.PC, 0xAF) // XOR A
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0 {
		t.Errorf("A: got %#02x, want 0", c.Reg.A)
	}
	if !c.Reg.IsSet(FlagZ) {
		t.Error("Z should be set")
	}
	if c.Reg.IsSet(FlagN) || c.Reg.IsSet(FlagH) || c.Reg.IsSet(FlagC) {
		t.Error("N, H, and C should all be clear after XOR A")
	}
}

func TestIncCWrapsAndSetsHalfCarry(t *testing.T) {
	c := newTestCPU()
	c.Reg.C = 0xFF
	c.MMU.Write(c.Reg.PC, 0x0C) // INC C
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.C != 0x00 {
		t.Errorf("C: got %#02x, want 0x00", c.Reg.C)
	}
	if !c.Reg.IsSet(FlagZ) || !c.Reg.IsSet(FlagH) {
		t.Error("Z and H should both be set when 0xFF wraps to 0x00")
	}
}

func TestLdSpD16(t *testing.T) {
	c := newTestCPU()
	c.MMU.Write(c.Reg.PC, 0x31)
	c.MMU.WriteWord(c.Reg.PC+1, 0xC0DE)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.SP != 0xC0DE {
		t.Errorf("SP: got %#04x, want 0xC0DE", c.Reg.SP)
	}
}

func TestCallAndRetRoundTrip(t *testing.T) {
	c := newTestCPU()
	start := c.Reg.PC
	c.MMU.Write(start, 0xCD) // CALL nn
	c.MMU.WriteWord(start+1, 0x2000)
	c.MMU.Write(0x2000, 0xC9) // RET

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != 0x2000 {
		t.Fatalf("after CALL: PC got %#04x, want 0x2000", c.Reg.PC)
	}
	if c.Reg.SP != 0xFFFC {
		t.Fatalf("after CALL: SP got %#04x, want 0xFFFC", c.Reg.SP)
	}

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != start+3 {
		t.Fatalf("after RET: PC got %#04x, want %#04x", c.Reg.PC, start+3)
	}
	if c.Reg.SP != 0xFFFE {
		t.Fatalf("after RET: SP got %#04x, want 0xFFFE", c.Reg.SP)
	}
}

func TestRst7LandsAt0038(t *testing.T) {
	// RST 7 (opcode 0xFF) must land on 0x0038, the 8th vector slot
	// (7*0x08), not 0x0138.
	c := newTestCPU()
	c.MMU.Write(c.Reg.PC, 0xFF) // RST 38h
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != 0x0038 {
		t.Errorf("PC: got %#04x, want 0x0038", c.Reg.PC)
	}
}

func TestConditionalJumpChargesUntakenCyclesAndAdvancesPC(t *testing.T) {
	c := newTestCPU()
	start := c.Reg.PC
	c.Reg.SetFlag(FlagZ, false)
	c.MMU.Write(start, 0xCA) // JP Z,nn
	c.MMU.WriteWord(start+1, 0x3000)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != start+3 {
		t.Errorf("untaken JP Z should fall through: PC got %#04x, want %#04x", c.Reg.PC, start+3)
	}
	if c.Cycles != 3 {
		t.Errorf("untaken JP Z cycles: got %d, want 3", c.Cycles)
	}
}

func TestConditionalJumpTakenJumpsAndChargesTakenCycles(t *testing.T) {
	c := newTestCPU()
	start := c.Reg.PC
	c.Reg.SetFlag(FlagZ, true)
	c.MMU.Write(start, 0xCA) // JP Z,nn
	c.MMU.WriteWord(start+1, 0x3000)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != 0x3000 {
		t.Errorf("taken JP Z should jump: PC got %#04x, want 0x3000", c.Reg.PC)
	}
	if c.Cycles != 4 {
		t.Errorf("taken JP Z cycles: got %d, want 4", c.Cycles)
	}
}

func TestDecodeErrorOnUndefinedOpcode(t *testing.T) {
	c := newTestCPU()
	c.MMU.Write(c.Reg.PC, 0xD3) // undefined on this platform
	err := c.Step()
	if err == nil {
		t.Fatal("expected a DecodeError")
	}
	var decErr *DecodeError
	if !asDecodeError(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func asDecodeError(err error, target **DecodeError) bool {
	de, ok := err.(*DecodeError)
	if ok {
		*target = de
	}
	return ok
}

func TestHaltStopsFetchingUntilInterrupt(t *testing.T) {
	c := newTestCPU()
	c.MMU.Write(c.Reg.PC, 0x76) // HALT
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.State != Halted {
		t.Fatalf("state: got %v, want Halted", c.State)
	}
	pc := c.Reg.PC
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.PC != pc {
		t.Error("Step should not fetch while halted")
	}

	c.IME = true
	c.MMU.InterruptIE = 0x01
	c.MMU.InterruptIF = 0x01
	c.ServiceInterrupts()
	if c.State != Running {
		t.Error("a pending, enabled interrupt should wake a halted CPU")
	}
	if c.Reg.PC != 0x0040 {
		t.Errorf("PC should jump to the VBlank vector: got %#04x, want 0x0040", c.Reg.PC)
	}
}

func TestEiLatencyDelaysImeByOneInstruction(t *testing.T) {
	c := newTestCPU()
	start := c.Reg.PC
	c.MMU.Write(start, 0xFB)   // EI
	c.MMU.Write(start+1, 0x00) // NOP

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.IME {
		t.Error("IME should not be set immediately after EI")
	}

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if !c.IME {
		t.Error("IME should be set after the instruction following EI")
	}
}

func TestPushPopWordRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.PushWord(0xBEEF)
	if c.Reg.SP != 0xFFFC {
		t.Errorf("SP after push: got %#04x, want 0xFFFC", c.Reg.SP)
	}
	if got := c.PopWord(); got != 0xBEEF {
		t.Errorf("PopWord: got %#04x, want 0xBEEF", got)
	}
	if c.Reg.SP != 0xFFFE {
		t.Errorf("SP after pop: got %#04x, want 0xFFFE", c.Reg.SP)
	}
}
