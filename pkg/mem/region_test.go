package mem

import "testing"

func TestRegionReadWrite(t *testing.T) {
	r := NewRegion(0x8000, 0x2000)
	r.Write8(0x8010, 0x7F)
	if got := r.Read8(0x8010); got != 0x7F {
		t.Errorf("got %#02x, want 0x7F", got)
	}
}

func TestRegionContains(t *testing.T) {
	r := NewRegion(0xC000, 0x2000)
	if !r.Contains(0xC000) || !r.Contains(0xDFFF) {
		t.Error("region should contain its own bounds")
	}
	if r.Contains(0xE000) || r.Contains(0xBFFF) {
		t.Error("region should not contain addresses outside its bounds")
	}
}

func TestRegionOutOfRangePanics(t *testing.T) {
	r := NewRegion(0x8000, 0x2000)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range address")
		}
	}()
	r.Read8(0xA000)
}

func TestRegionWriteRangeOverrunPanics(t *testing.T) {
	r := NewRegion(0xFF80, 0x7F)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an overrunning write")
		}
	}()
	r.WriteRange(0xFF80, make([]byte, 0x100))
}

func TestRegionReadRangeIsACopy(t *testing.T) {
	r := NewRegion(0xC000, 0x10)
	r.WriteRange(0xC000, []byte{1, 2, 3})
	got := r.ReadRange(0xC000, 3)
	got[0] = 99
	if r.Read8(0xC000) == 99 {
		t.Error("ReadRange should return a copy, not a view into the backing array")
	}
}

func TestRegionFill(t *testing.T) {
	r := NewRegion(0x0000, 4)
	r.Fill(0xFF)
	for i := uint16(0); i < 4; i++ {
		if got := r.Read8(i); got != 0xFF {
			t.Errorf("byte %d: got %#02x, want 0xFF", i, got)
		}
	}
}
