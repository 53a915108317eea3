package mem

import "github.com/sirupsen/logrus"

// Address map bounds, bit-exact to the platform's memory layout.
const (
	CartridgeBase = 0x0000
	CartridgeSize = 0x8000 // 32 KiB

	VRAMBase = 0x8000
	VRAMSize = 0x2000 // 8 KiB

	ExternalRAMBase = 0xA000
	ExternalRAMSize = 0x2000

	WorkRAMBase = 0xC000
	WorkRAMSize = 0x2000 // 8 KiB

	EchoRAMBase = 0xE000
	EchoRAMSize = 0x1E00

	OAMBase = 0xFE00
	OAMSize = 0xA0

	UnusableBase = 0xFEA0
	UnusableSize = 0x60

	IOBase = 0xFF00
	IOSize = 0x80

	HighRAMBase = 0xFF80
	HighRAMSize = 0x7F // 127 bytes

	InterruptEnableAddr = 0xFFFF

	joypadAddr  = 0xFF00
	dividerAddr = 0xFF04
	timerCntr   = 0xFF05
	timerModulo = 0xFF06
	timerCtrl   = 0xFF07
	interruptIF = 0xFF0F
)

// stubRead is returned for every address the reference platform documents as
// "not usable" or that is stubbed pending a collaborator (PPU, APU, joypad,
// serial, RTC): such reads are defined to come back as 1.
const stubRead byte = 1

// MMU owns every byte of the 64 KiB address space and dispatches each access
// to the region or pseudo-register that owns it. It is the sole owner of its
// regions — handlers never touch a Region directly, only through the MMU.
type MMU struct {
	Cartridge *Region
	VRAM      *Region
	WorkRAM   *Region
	HighRAM   *Region

	// Byte-wide pseudo-registers with no backing Region: the platform's
	// timer and interrupt plumbing, plus the joypad latch. A PPU/APU/joypad
	// collaborator attaches here without touching the decoder.
	Joypad       byte
	Divider      byte
	TimerCounter byte
	TimerModulo  byte
	TimerControl byte
	InterruptIF  byte
	InterruptIE  byte

	Log *logrus.Logger
}

// New returns an MMU with all regions allocated and zeroed.
func New() *MMU {
	return &MMU{
		Cartridge: NewRegion(CartridgeBase, CartridgeSize),
		VRAM:      NewRegion(VRAMBase, VRAMSize),
		WorkRAM:   NewRegion(WorkRAMBase, WorkRAMSize),
		HighRAM:   NewRegion(HighRAMBase, HighRAMSize),
		Log:       logrus.StandardLogger(),
	}
}

// Read returns the byte at addr, routing to whichever region or
// pseudo-register owns it.
func (m *MMU) Read(addr uint16) byte {
	switch {
	case addr < VRAMBase:
		return m.Cartridge.Read8(addr)
	case addr < ExternalRAMBase:
		return m.VRAM.Read8(addr)
	case addr < WorkRAMBase:
		return stubRead // external cartridge RAM: no MBC RAM in scope
	case addr < EchoRAMBase:
		return m.WorkRAM.Read8(addr)
	case addr < OAMBase:
		return stubRead // echo RAM
	case addr < UnusableBase:
		return stubRead // OAM: owned by a future PPU
	case addr < IOBase:
		return stubRead // not usable
	case addr == joypadAddr:
		return m.Joypad
	case addr == dividerAddr:
		return m.Divider
	case addr == timerCntr:
		return m.TimerCounter
	case addr == timerModulo:
		return m.TimerModulo
	case addr == timerCtrl:
		return m.TimerControl
	case addr == interruptIF:
		return m.InterruptIF
	case addr < HighRAMBase:
		return stubRead // sound + other I/O: owned by a future APU
	case addr < InterruptEnableAddr:
		return m.HighRAM.Read8(addr)
	case addr == InterruptEnableAddr:
		return m.InterruptIE
	default:
		return stubRead
	}
}

// Write stores value at addr. Writes into an unusable or stubbed window are
// ignored with a diagnostic, never an error.
func (m *MMU) Write(addr uint16, value byte) {
	switch {
	case addr < VRAMBase:
		m.Cartridge.Write8(addr, value)
	case addr < ExternalRAMBase:
		m.VRAM.Write8(addr, value)
	case addr < WorkRAMBase:
		m.Log.WithField("addr", addr).Trace("mem: write to external cartridge RAM ignored")
	case addr < EchoRAMBase:
		m.WorkRAM.Write8(addr, value)
	case addr < OAMBase:
		m.Log.WithField("addr", addr).Trace("mem: write to echo RAM ignored")
	case addr < UnusableBase:
		m.Log.WithField("addr", addr).Trace("mem: write to OAM ignored (no PPU attached)")
	case addr < IOBase:
		m.Log.WithField("addr", addr).Debug("mem: write to unusable region ignored")
	case addr == joypadAddr:
		m.Joypad = value
	case addr == dividerAddr:
		m.Divider = 0 // writing any value to DIV resets it
	case addr == timerCntr:
		m.TimerCounter = value
	case addr == timerModulo:
		m.TimerModulo = value
	case addr == timerCtrl:
		m.TimerControl = value
	case addr == interruptIF:
		m.InterruptIF = value
	case addr < HighRAMBase:
		m.Log.WithField("addr", addr).Trace("mem: write to sound/other I/O ignored (no APU attached)")
	case addr < InterruptEnableAddr:
		m.HighRAM.Write8(addr, value)
	case addr == InterruptEnableAddr:
		m.InterruptIE = value
	default:
		m.Log.WithField("addr", addr).Warn("mem: write outside the address space ignored")
	}
}

// ReadWord returns the little-endian word at addr: the byte at addr is the
// low byte, the byte at addr+1 is the high byte.
func (m *MMU) ReadWord(addr uint16) uint16 {
	lo := m.Read(addr)
	hi := m.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// WriteWord stores value little-endian at addr: value&0xFF goes to addr,
// value>>8 goes to addr+1.
func (m *MMU) WriteWord(addr uint16, value uint16) {
	m.Write(addr, byte(value))
	m.Write(addr+1, byte(value>>8))
}

// ReadRange returns length bytes starting at addr. Used by the disassembler
// and by tests. Each byte is routed through Read, so a range may span more
// than one region.
func (m *MMU) ReadRange(addr uint16, length int) []byte {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = m.Read(addr + uint16(i))
	}
	return out
}
