package memory

import "gones/internal/savestate"

// SnapshotVRAM returns copies of nametable VRAM and palette RAM for the
// facade's save-state serializer. Mapper-owned CHR-RAM is snapshotted by
// the cartridge package, not here.
func (pm *PPUMemory) SnapshotVRAM() (vram []uint8, palette []uint8) {
	vram = make([]uint8, len(pm.vram))
	copy(vram, pm.vram[:])
	palette = make([]uint8, len(pm.paletteRAM))
	copy(palette, pm.paletteRAM[:])
	return vram, palette
}

// RestoreVRAM replaces nametable VRAM and palette RAM contents in place.
func (pm *PPUMemory) RestoreVRAM(vram, palette []uint8) {
	copy(pm.vram[:], vram)
	copy(pm.paletteRAM[:], palette)
}

// SaveState serializes CPU-visible RAM and bus open-bus tracking.
func (m *Memory) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	w.Bytes8(m.ram[:])
	w.U8(m.openBusValue)
	return w.Bytes()
}

// LoadState restores CPU-visible RAM and bus open-bus tracking previously
// produced by SaveState.
func (m *Memory) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	copy(m.ram[:], r.Bytes8(len(m.ram)))
	m.openBusValue = r.U8()
	return r.Err()
}
