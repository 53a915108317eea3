// Package driver runs a CPU to completion, publishing periodic snapshots
// over a channel and producing a structured run report.
package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/oisee/gbz80/pkg/cpu"
	"github.com/sirupsen/logrus"
)

// Snapshot is a point-in-time view of the CPU, published after every Step.
// It copies the register file so a receiver can hold onto it without
// racing the driver's next Step.
type Snapshot struct {
	Registers cpu.Registers
	State     cpu.RunState
	Cycles    uint64
	Steps     uint64
}

// RunReport summarizes a finished run: how far it got, and why it stopped.
// It is a plain struct serialized over encoding/json rather than gob, since
// a run report is meant to be read by a person, not resumed.
type RunReport struct {
	StepsExecuted uint64         `json:"steps_executed"`
	CyclesElapsed uint64         `json:"cycles_elapsed"`
	FinalState    string         `json:"final_state"`
	FinalRegs     cpu.Registers  `json:"final_registers"`
	DecodeError   string         `json:"decode_error,omitempty"`
}

// Config controls pacing and bounds for a Run.
type Config struct {
	// FrameRate paces Step calls: the driver sleeps 1/FrameRate seconds
	// after every Step, so it bounds instructions per second; steps are not
	// grouped into emulated frames. 0 runs as fast as possible.
	FrameRate int
	// MaxSteps stops the run after this many instructions; 0 means
	// unbounded (run until HALT/STOP/decode error or stop is closed).
	MaxSteps uint64
	// SnapshotBuffer sizes the channel Run publishes Snapshots on.
	SnapshotBuffer int
}

// Driver owns a CPU and steps it, servicing interrupts between
// instructions: ServiceInterrupts runs between Step calls, never inside
// one.
type Driver struct {
	CPU *cpu.CPU
	Log *logrus.Logger
}

// New returns a Driver for c, with a Log handle set to logrus's standard
// logger (the same logger mem.New gives the MMU).
func New(c *cpu.CPU) *Driver {
	return &Driver{CPU: c, Log: logrus.StandardLogger()}
}

// Run steps the CPU until it halts, stops, hits a decode error, reaches
// cfg.MaxSteps, or stop is closed. It publishes a Snapshot after every
// step on the returned channel, which is closed when the run ends.
func (d *Driver) Run(cfg Config, stop <-chan struct{}) (<-chan Snapshot, <-chan RunReport) {
	snapshots := make(chan Snapshot, cfg.SnapshotBuffer)
	reports := make(chan RunReport, 1)

	go func() {
		defer close(snapshots)
		defer close(reports)

		var period time.Duration
		if cfg.FrameRate > 0 {
			period = time.Second / time.Duration(cfg.FrameRate)
		}

		report := RunReport{}
		var steps uint64

		for {
			select {
			case <-stop:
				report.FinalState = "stopped by caller"
				d.finish(&report, steps)
				reports <- report
				return
			default:
			}

			if cfg.MaxSteps > 0 && steps >= cfg.MaxSteps {
				report.FinalState = "max steps reached"
				d.finish(&report, steps)
				reports <- report
				return
			}

			if d.CPU.State == cpu.Stopped {
				report.FinalState = "stopped"
				d.finish(&report, steps)
				reports <- report
				return
			}

			// A halted CPU only resumes via ServiceInterrupts, and nothing
			// in this core raises an interrupt on its own (that's a PPU or
			// timer collaborator's job); without one attached, Halted is a
			// dead end, so the run ends here instead of spinning forever.
			if d.CPU.State == cpu.Halted {
				report.FinalState = "halted"
				d.finish(&report, steps)
				reports <- report
				return
			}

			if err := d.CPU.Step(); err != nil {
				report.DecodeError = err.Error()
				report.FinalState = "decode error"
				d.finish(&report, steps)
				reports <- report
				return
			}
			steps++

			d.CPU.ServiceInterrupts()

			snapshots <- Snapshot{
				Registers: *d.CPU.Reg,
				State:     d.CPU.State,
				Cycles:    d.CPU.Cycles,
				Steps:     steps,
			}

			if period > 0 {
				time.Sleep(period)
			}
		}
	}()

	return snapshots, reports
}

func (d *Driver) finish(report *RunReport, steps uint64) {
	report.StepsExecuted = steps
	report.CyclesElapsed = d.CPU.Cycles
	report.FinalRegs = *d.CPU.Reg
	if report.FinalState == "" {
		report.FinalState = d.CPU.State.String()
	}
}

// SaveReport writes report as indented JSON to path.
func SaveReport(path string, report RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("driver: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
