package main

import (
	"fmt"
	"os"

	"github.com/oisee/gbz80/pkg/cpu"
	"github.com/oisee/gbz80/pkg/disasm"
	"github.com/oisee/gbz80/pkg/driver"
	"github.com/oisee/gbz80/pkg/mem"
	"github.com/oisee/gbz80/pkg/rom"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gbcore",
		Short: "A handheld console CPU core — run cartridges or disassemble them",
	}

	var frameRate int
	var maxSteps int
	var reportPath string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Load a cartridge and run it to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			romPath, _ := cmd.Flags().GetString("rom")

			mmu := mem.New()
			core := cpu.New(mmu)
			if romPath == "" {
				rom.LoadBoot(mmu)
				core.Reg.PC = mem.CartridgeBase
			} else {
				header, err := rom.Load(romPath, mmu)
				if err != nil {
					return err
				}
				fmt.Printf("Loaded %q (cartridge type %#02x, checksum valid: %v)\n",
					header.Title, header.CartridgeType, header.ChecksumValid)
			}

			d := driver.New(core)

			stop := make(chan struct{})
			snapshots, reports := d.Run(driver.Config{
				FrameRate:      frameRate,
				MaxSteps:       uint64(maxSteps),
				SnapshotBuffer: 16,
			}, stop)

			var last driver.Snapshot
			for snap := range snapshots {
				last = snap
			}
			report := <-reports

			fmt.Printf("Ran %d steps, %d cycles, ended: %s\n",
				report.StepsExecuted, report.CyclesElapsed, report.FinalState)
			fmt.Printf("Final PC=%#04x SP=%#04x AF=%#04x\n",
				last.Registers.PC, last.Registers.SP, last.Registers.AF())

			if reportPath != "" {
				if err := driver.SaveReport(reportPath, report); err != nil {
					return err
				}
			}

			if report.DecodeError != "" {
				return fmt.Errorf("%s", report.DecodeError)
			}
			return nil
		},
	}
	runCmd.Flags().String("rom", "", "Path to the cartridge image (default: the built-in boot sequence)")
	runCmd.Flags().IntVar(&frameRate, "frame-rate", 0, "Cap instructions per second (0 = unbounded)")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Stop after this many instructions (0 = unbounded)")
	runCmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON run report to this path")

	var minify bool

	disasmCmd := &cobra.Command{
		Use:   "disasm <path>",
		Short: "Disassemble a cartridge image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			mmu := mem.New()
			if len(data) > mem.CartridgeSize {
				data = data[:mem.CartridgeSize]
			}
			mmu.Cartridge.WriteRange(mem.CartridgeBase, data)

			lines := disasm.Walk(mmu.Read, 0, len(data))
			if minify {
				lines = disasm.Minify(lines)
			}
			for _, l := range lines {
				fmt.Printf("%04X  % -8x  %s\n", l.Addr, l.Raw, l.Text)
			}
			return nil
		},
	}
	disasmCmd.Flags().BoolVar(&minify, "minify", false, "Collapse runs of filler bytes")

	rootCmd.AddCommand(runCmd, disasmCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
