package rom

import (
	"fmt"
	"os"

	"github.com/oisee/gbz80/pkg/mem"
)

// LoadError reports a cartridge image the loader refused to accept.
type LoadError struct {
	Path   string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("rom: %s: %s", e.Path, e.Reason)
}

// Load reads the cartridge image at path, validates its Nintendo logo, and
// copies it verbatim into the MMU's cartridge region. It returns the parsed
// header alongside the populated MMU state.
func Load(path string, mmu *mem.MMU) (*Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: err.Error()}
	}

	if !ValidateLogo(data) {
		return nil, &LoadError{Path: path, Reason: "Nintendo logo mismatch"}
	}

	header, err := ParseHeader(data)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: err.Error()}
	}

	if len(data) > mem.CartridgeSize {
		data = data[:mem.CartridgeSize]
	}
	mmu.Cartridge.WriteRange(mem.CartridgeBase, data)

	return header, nil
}

// bootSequence is a synthetic placeholder startup program: it is NOT the
// platform's real boot ROM, which is proprietary and is not reproduced
// here. It sets SP, loads A with zero, and jumps to 0x0100 where a
// loaded cartridge's entry point lives — enough to exercise
// LoadBoot and the driver's startup path without embedding copyrighted
// firmware.
var bootSequence = []byte{
	0x31, 0xFE, 0xFF, // LD SP,0xFFFE
	0x3E, 0x00, // LD A,0x00
	0xC3, 0x00, 0x01, // JP 0x0100
}

// LoadBoot installs the placeholder startup sequence at cartridge offset 0,
// the address the platform's own boot ROM is mapped over before the
// cartridge takes control.
func LoadBoot(mmu *mem.MMU) {
	mmu.Cartridge.WriteRange(mem.CartridgeBase, bootSequence)
}
