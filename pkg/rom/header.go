// Package rom loads cartridge images into an MMU's cartridge region,
// validating the header the way the platform's own boot sequence would,
// and exposes the parsed header for diagnostics.
package rom

import "fmt"

// NintendoLogo is the 48-byte bitmap every licensed cartridge embeds at
// 0x0104-0x0133. The platform's real boot ROM refuses to run anything that
// doesn't reproduce it exactly; this is the published, widely-documented
// constant, not the (copyrighted) boot ROM code that checks it.
var NintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

const (
	headerLogoOffset   = 0x0104
	headerTitleOffset  = 0x0134
	headerTitleLen     = 16
	headerLicenseeNew  = 0x0144
	headerSGBOffset    = 0x0146
	headerCartType     = 0x0147
	headerROMSize      = 0x0148
	headerRAMSize      = 0x0149
	headerDestination  = 0x014A
	headerLicenseeOld  = 0x014B
	headerMaskVersion  = 0x014C
	headerChecksum     = 0x014D
	headerGlobalChkLo  = 0x014F
	headerGlobalChkHi  = 0x014E
	headerMinLength    = 0x0150
)

// Header is the parsed content of a cartridge's 0x0100-0x014F block.
type Header struct {
	Title             string
	NewLicenseeCode   string
	SGBSupported      bool
	CartridgeType     uint8
	ROMSizeCode       uint8
	RAMSizeCode       uint8
	DestinationCode   uint8
	OldLicenseeCode   uint8
	MaskVersion       uint8
	HeaderChecksum    uint8
	GlobalChecksum    uint16
	ChecksumValid     bool
	GlobalChecksumAdd bool
}

// ParseHeader reads the header fields out of a full cartridge image. It does
// not validate the Nintendo logo; callers that need that check call
// ValidateLogo separately, since a disassembler or header inspector may want
// to read a header without rejecting the file outright.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < headerMinLength {
		return nil, fmt.Errorf("rom: image too short for a header (%d bytes)", len(data))
	}

	h := &Header{
		CartridgeType:   data[headerCartType],
		ROMSizeCode:     data[headerROMSize],
		RAMSizeCode:     data[headerRAMSize],
		DestinationCode: data[headerDestination],
		OldLicenseeCode: data[headerLicenseeOld],
		MaskVersion:     data[headerMaskVersion],
		HeaderChecksum:  data[headerChecksum],
		SGBSupported:    data[headerSGBOffset] == 0x03,
	}

	title := data[headerTitleOffset : headerTitleOffset+headerTitleLen]
	end := len(title)
	for i, b := range title {
		if b == 0x00 {
			end = i
			break
		}
	}
	h.Title = string(title[:end])

	if h.OldLicenseeCode == 0x33 {
		h.NewLicenseeCode = string(data[headerLicenseeNew : headerLicenseeNew+2])
	}

	h.GlobalChecksum = uint16(data[headerGlobalChkHi])<<8 | uint16(data[headerGlobalChkLo])

	h.ChecksumValid = computeHeaderChecksum(data) == h.HeaderChecksum

	return h, nil
}

// computeHeaderChecksum reproduces the boot ROM's own header checksum: a
// running x = x - byte - 1 over 0x0134..0x014C inclusive, seeded at zero.
func computeHeaderChecksum(data []byte) uint8 {
	var x uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		x = x - data[addr] - 1
	}
	return x
}

// ValidateLogo reports whether data reproduces the Nintendo logo bitmap at
// its documented offset. A cartridge image that doesn't is one the real
// boot ROM would refuse to hand off to.
func ValidateLogo(data []byte) bool {
	if len(data) < headerLogoOffset+len(NintendoLogo) {
		return false
	}
	for i, want := range NintendoLogo {
		if data[headerLogoOffset+i] != want {
			return false
		}
	}
	return true
}
