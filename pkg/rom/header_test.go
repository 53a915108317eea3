package rom

import "testing"

func makeValidImage() []byte {
	data := make([]byte, 0x8000)
	copy(data[headerLogoOffset:], NintendoLogo[:])
	copy(data[headerTitleOffset:], []byte("TESTGAME"))
	data[headerCartType] = 0x01
	data[headerROMSize] = 0x00
	data[headerRAMSize] = 0x00

	var x uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		x = x - data[addr] - 1
	}
	data[headerChecksum] = x

	return data
}

func TestValidateLogoAcceptsExactMatch(t *testing.T) {
	data := makeValidImage()
	if !ValidateLogo(data) {
		t.Error("expected a valid image to pass logo validation")
	}
}

func TestValidateLogoRejectsCorruption(t *testing.T) {
	data := makeValidImage()
	data[headerLogoOffset] ^= 0xFF
	if ValidateLogo(data) {
		t.Error("expected a corrupted logo to fail validation")
	}
}

func TestValidateLogoRejectsShortImage(t *testing.T) {
	if ValidateLogo(make([]byte, 10)) {
		t.Error("expected a too-short image to fail validation")
	}
}

func TestParseHeaderTitleAndChecksum(t *testing.T) {
	data := makeValidImage()
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	if h.Title != "TESTGAME" {
		t.Errorf("title: got %q, want %q", h.Title, "TESTGAME")
	}
	if !h.ChecksumValid {
		t.Error("expected the header checksum to validate")
	}
}

func TestParseHeaderRejectsShortImage(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 10)); err == nil {
		t.Error("expected an error for a too-short image")
	}
}

func TestParseHeaderDetectsChecksumMismatch(t *testing.T) {
	data := makeValidImage()
	data[headerChecksum] ^= 0xFF
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	if h.ChecksumValid {
		t.Error("expected a corrupted checksum to be reported invalid")
	}
}
