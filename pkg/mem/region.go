// Package mem implements the address space the CPU executes against: a set
// of fixed-size memory regions and the MMU that routes a 16-bit address to
// the region that owns it.
package mem

import "fmt"

// Region is a fixed-length byte buffer anchored at a base address. It
// accepts addresses in [Base, Base+len(bytes)) only; anything else is a
// programmer error, since the MMU is expected to range-check before calling
// in.
type Region struct {
	Base  uint16
	bytes []byte
}

// NewRegion allocates a zeroed region of the given size at base.
func NewRegion(base uint16, size int) *Region {
	return &Region{Base: base, bytes: make([]byte, size)}
}

// Len returns the region's size in bytes.
func (r *Region) Len() int {
	return len(r.bytes)
}

// Contains reports whether addr falls within [Base, Base+Len).
func (r *Region) Contains(addr uint16) bool {
	off := int(addr) - int(r.Base)
	return off >= 0 && off < len(r.bytes)
}

func (r *Region) offset(addr uint16) int {
	off := int(addr) - int(r.Base)
	if off < 0 || off >= len(r.bytes) {
		panic(fmt.Sprintf("mem: address %#04x out of range for region [%#04x, %#04x)",
			addr, r.Base, int(r.Base)+len(r.bytes)))
	}
	return off
}

// Read8 returns the byte at addr.
func (r *Region) Read8(addr uint16) uint8 {
	return r.bytes[r.offset(addr)]
}

// Write8 stores value at addr.
func (r *Region) Write8(addr uint16, value uint8) {
	r.bytes[r.offset(addr)] = value
}

// ReadRange returns a copy of length bytes starting at addr.
func (r *Region) ReadRange(addr uint16, length int) []byte {
	start := r.offset(addr)
	end := start + length
	if end > len(r.bytes) {
		panic(fmt.Sprintf("mem: range [%#04x, %#04x) out of range for region [%#04x, %#04x)",
			addr, int(addr)+length, r.Base, int(r.Base)+len(r.bytes)))
	}
	out := make([]byte, length)
	copy(out, r.bytes[start:end])
	return out
}

// WriteRange copies src into the region starting at addr. A src that would
// run past the end of the region is a programmer error, just like an
// out-of-range address. A src shorter than the rest of the region is
// accepted: only len(src) bytes are written, the bytes after them are left
// unchanged.
func (r *Region) WriteRange(addr uint16, src []byte) {
	start := r.offset(addr)
	end := start + len(src)
	if end > len(r.bytes) {
		panic(fmt.Sprintf("mem: write of %d bytes at %#04x overruns region [%#04x, %#04x)",
			len(src), addr, r.Base, int(r.Base)+len(r.bytes)))
	}
	copy(r.bytes[start:end], src)
}

// Fill resets every byte in the region to value.
func (r *Region) Fill(value byte) {
	for i := range r.bytes {
		r.bytes[i] = value
	}
}
