// Package nes is the facade over the emulator core: ROM loading, frame
// stepping, controller input, and save-state serialization. It wraps
// internal/bus's component wiring rather than reimplementing it.
package nes

import (
	"bytes"

	"github.com/golang/glog"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/savestate"
)

// saveStateVersion is bumped whenever the save-state payload layout
// changes; LoadState rejects any other value with VersionMismatch.
const saveStateVersion = 1

const saveStateMagic = "CCNS"

// NES is the emulator core facade described by spec §4.7.
type NES struct {
	bus       *bus.Bus
	cartridge *cartridge.Cartridge
}

// LoadROM parses iNES-format ROM bytes and returns a freshly reset core
// ready to run. Fails with BadMagic, TruncatedRom, or UnsupportedMapper.
func LoadROM(data []byte) (*NES, error) {
	if len(data) < 16 {
		return nil, ErrTruncatedRom("header shorter than 16 bytes")
	}
	if string(data[0:4]) != "NES\x1A" {
		return nil, ErrBadMagic()
	}

	mapperID := (data[6] >> 4) | (data[7] & 0xF0)
	if !cartridge.SupportedMapper(mapperID) {
		return nil, ErrUnsupportedMapper(mapperID)
	}

	cart, err := cartridge.LoadFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, ErrTruncatedRom(err.Error())
	}

	b := bus.New()
	b.LoadCartridge(cart)

	glog.Infof("nes: loaded rom, mapper=%d", mapperID)

	return &NES{bus: b, cartridge: cart}, nil
}

// Reset asserts reset on every component and reloads PC from the reset
// vector.
func (n *NES) Reset() {
	n.bus.Reset()
}

// RunFrame runs the core until the PPU completes one frame, returning the
// completed frame buffer and the audio samples generated while producing
// it. A non-nil err wraps InvalidOpcode if the CPU trapped during this
// frame; the returned buffers still reflect state up to the trap point.
func (n *NES) RunFrame() (frame [256 * 240]uint32, samples []float32, err error) {
	targetFrame := n.bus.GetFrameCount() + 1
	for n.bus.GetFrameCount() < targetFrame {
		n.bus.Step()
		if pc, op, trapped := n.bus.CPU.Trapped(); trapped {
			return n.bus.GetFrameBuffer(), n.bus.GetAudioSamples(), ErrInvalidOpcode(pc, op)
		}
	}
	return n.bus.GetFrameBuffer(), n.bus.GetAudioSamples(), nil
}

// SetController sets the full 8-bit button state for controller port
// (0 or 1).
func (n *NES) SetController(port int, state uint8) {
	var buttons [8]bool
	for i := 0; i < 8; i++ {
		buttons[i] = state&(1<<uint(i)) != 0
	}
	n.bus.SetControllerButtons(port+1, buttons)
}

// SaveState serializes the entire machine into a versioned, ROM-checked
// blob per spec §6's "CCNS" envelope format.
func (n *NES) SaveState() ([]byte, error) {
	cpuState, err := n.bus.CPU.SaveState()
	if err != nil {
		return nil, err
	}
	ppuState, err := n.bus.PPU.SaveState()
	if err != nil {
		return nil, err
	}
	memState, err := n.bus.Memory.SaveState()
	if err != nil {
		return nil, err
	}
	apuState, err := n.bus.APU.SaveState()
	if err != nil {
		return nil, err
	}
	inputState, err := n.bus.Input.SaveState()
	if err != nil {
		return nil, err
	}
	cartState, err := n.cartridge.SaveState()
	if err != nil {
		return nil, err
	}

	w := savestate.NewWriter()
	w.Bytes8([]byte(saveStateMagic))
	w.U32(saveStateVersion)
	w.U32(n.cartridge.ROMChecksum())
	for _, blob := range [][]byte{cpuState, ppuState, memState, apuState, inputState, cartState} {
		w.U32(uint32(len(blob)))
		w.Bytes8(blob)
	}
	return w.Bytes()
}

// LoadState restores machine state previously produced by SaveState.
// Fails with VersionMismatch, RomMismatch, or CorruptState.
func (n *NES) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	magic := r.Bytes8(len(saveStateMagic))
	version := r.U32()
	romCRC := r.U32()
	if err := r.Err(); err != nil {
		return ErrCorruptState(err.Error())
	}
	if string(magic) != saveStateMagic {
		return ErrCorruptState("bad magic")
	}
	if version != saveStateVersion {
		return ErrVersionMismatch()
	}
	if romCRC != n.cartridge.ROMChecksum() {
		return ErrRomMismatch()
	}

	blobs := make([][]byte, 6)
	for i := range blobs {
		blobLen := int(r.U32())
		blobs[i] = r.Bytes8(blobLen)
	}
	if err := r.Err(); err != nil {
		return ErrCorruptState(err.Error())
	}

	if err := n.bus.CPU.LoadState(blobs[0]); err != nil {
		return ErrCorruptState(err.Error())
	}
	if err := n.bus.PPU.LoadState(blobs[1]); err != nil {
		return ErrCorruptState(err.Error())
	}
	if err := n.bus.Memory.LoadState(blobs[2]); err != nil {
		return ErrCorruptState(err.Error())
	}
	if err := n.bus.APU.LoadState(blobs[3]); err != nil {
		return ErrCorruptState(err.Error())
	}
	if err := n.bus.Input.LoadState(blobs[4]); err != nil {
		return ErrCorruptState(err.Error())
	}
	if err := n.cartridge.LoadState(blobs[5]); err != nil {
		return ErrMapperError(err.Error())
	}
	return nil
}
