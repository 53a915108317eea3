package driver

import (
	"testing"

	"github.com/oisee/gbz80/pkg/cpu"
	"github.com/oisee/gbz80/pkg/mem"
	"github.com/oisee/gbz80/pkg/rom"
)

// TestBootSequenceReachesCartridgeEntryPoint loads the built-in boot
// sequence, runs it to completion, and checks it falls through to the
// cartridge entry point without a decode error.
func TestBootSequenceReachesCartridgeEntryPoint(t *testing.T) {
	mmu := mem.New()
	rom.LoadBoot(mmu)
	// The boot sequence ends in JP 0x0100; put a HALT there so the run
	// settles into a deterministic final state as soon as it reaches the
	// cartridge entry point, instead of decoding whatever garbage follows
	// in an otherwise-empty cartridge.
	mmu.Cartridge.WriteRange(0x0100, []byte{0x76})

	c := cpu.New(mmu)
	c.Reg.PC = 0x0000 // start at the boot sequence, not the post-boot entry point
	d := New(c)

	stop := make(chan struct{})
	snapshots, reports := d.Run(Config{SnapshotBuffer: 16}, stop)

	var last Snapshot
	for snap := range snapshots {
		last = snap
	}
	report := <-reports

	if report.DecodeError != "" {
		t.Fatalf("unexpected decode error: %s", report.DecodeError)
	}
	if report.FinalState != "halted" {
		t.Errorf("final state: got %q, want %q", report.FinalState, "halted")
	}
	// The cartridge entry point is 0x0100; HALT there is still one
	// instruction, so PC has advanced one byte past it by the time the
	// run reports its final snapshot.
	if last.Registers.PC != 0x0101 {
		t.Errorf("PC: got %#04x, want 0x0101 (one past the cartridge entry point's HALT)", last.Registers.PC)
	}
	if last.Registers.SP != 0xFFFE {
		t.Errorf("SP: got %#04x, want 0xFFFE", last.Registers.SP)
	}
	if last.State != cpu.Halted {
		t.Errorf("state: got %v, want Halted", last.State)
	}
}

func TestRunStopsAtMaxSteps(t *testing.T) {
	mmu := mem.New()
	// An infinite loop: JR -2 jumps back onto itself forever.
	mmu.Cartridge.WriteRange(0x0100, []byte{0x18, 0xFE})

	c := cpu.New(mmu)
	d := New(c)

	stop := make(chan struct{})
	snapshots, reports := d.Run(Config{MaxSteps: 10, SnapshotBuffer: 16}, stop)
	for range snapshots {
	}
	report := <-reports

	if report.StepsExecuted != 10 {
		t.Errorf("steps executed: got %d, want 10", report.StepsExecuted)
	}
	if report.FinalState != "max steps reached" {
		t.Errorf("final state: got %q, want %q", report.FinalState, "max steps reached")
	}
}

func TestRunSurfacesDecodeError(t *testing.T) {
	mmu := mem.New()
	mmu.Cartridge.WriteRange(0x0100, []byte{0xD3}) // undefined opcode

	c := cpu.New(mmu)
	d := New(c)

	stop := make(chan struct{})
	snapshots, reports := d.Run(Config{SnapshotBuffer: 16}, stop)
	for range snapshots {
	}
	report := <-reports

	if report.DecodeError == "" {
		t.Fatal("expected a decode error in the run report")
	}
	if report.FinalState != "decode error" {
		t.Errorf("final state: got %q, want %q", report.FinalState, "decode error")
	}
}
