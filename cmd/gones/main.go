// Package main implements the gones NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"gones/internal/nes"
	"gones/internal/version"
)

func main() {
	var (
		romFile   = flag.String("rom", "", "Path to NES ROM file (required)")
		frames    = flag.Int("frames", 60, "Number of frames to run headlessly")
		outFile   = flag.String("out", "", "Write the final frame buffer to this PPM file")
		saveState = flag.String("save-state", "", "Write a save state to this file after running")
		loadState = flag.String("load-state", "", "Load a save state from this file before running")
		showVer   = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()
	defer glog.Flush()

	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	if *romFile == "" {
		glog.Fatalf("gones: -rom is required")
	}

	romData, err := os.ReadFile(*romFile)
	if err != nil {
		glog.Fatalf("gones: reading rom %q: %v", *romFile, err)
	}

	console, err := nes.LoadROM(romData)
	if err != nil {
		glog.Fatalf("gones: loading rom %q: %v", *romFile, err)
	}

	if *loadState != "" {
		stateData, err := os.ReadFile(*loadState)
		if err != nil {
			glog.Fatalf("gones: reading save state %q: %v", *loadState, err)
		}
		if err := console.LoadState(stateData); err != nil {
			glog.Fatalf("gones: loading save state %q: %v", *loadState, err)
		}
	}

	var lastFrame [256 * 240]uint32
	for i := 0; i < *frames; i++ {
		frame, _, err := console.RunFrame()
		lastFrame = frame
		if err != nil {
			glog.Fatalf("gones: run halted at frame %d: %v", i, err)
		}
	}

	if *outFile != "" {
		if err := writePPM(lastFrame, *outFile); err != nil {
			glog.Fatalf("gones: writing frame buffer %q: %v", *outFile, err)
		}
	}

	if *saveState != "" {
		stateData, err := console.SaveState()
		if err != nil {
			glog.Fatalf("gones: saving state: %v", err)
		}
		if err := os.WriteFile(*saveState, stateData, 0644); err != nil {
			glog.Fatalf("gones: writing save state %q: %v", *saveState, err)
		}
	}
}

// writePPM writes a frame buffer as a PPM (P3, ASCII) image.
func writePPM(frame [256 * 240]uint32, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n256 240\n255\n")
	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			pixel := frame[y*256+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			fmt.Fprintf(file, "%d %d %d ", r, g, b)
		}
		fmt.Fprintln(file)
	}
	return nil
}
