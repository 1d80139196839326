package ppu

import "gones/internal/savestate"

// SaveState serializes PPU register and rendering-pipeline state. The
// frame buffer is not included: it is fully reproducible from the
// remaining state by the next RunFrame and spec §8 only requires that
// subsequent output match, not that the buffer itself round-trip.
func (p *PPU) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	w.U8(p.ppuCtrl)
	w.U8(p.ppuMask)
	w.U8(p.ppuStatus)
	w.U8(p.oamAddr)
	w.U8(p.oamData)
	w.U8(p.ppuScroll)
	w.U8(p.ppuAddr)
	w.U8(p.ppuData)
	w.U16(p.v)
	w.U16(p.t)
	w.U8(p.x)
	w.Bool(p.w)
	w.I32(int32(p.scanline))
	w.I32(int32(p.cycle))
	w.U64(p.frameCount)
	w.Bool(p.oddFrame)
	w.U8(p.readBuffer)
	w.Bytes8(p.oam[:])
	w.Bytes8(p.secondaryOAM[:])
	w.U8(p.spriteCount)
	w.Bool(p.sprite0Hit)
	w.Bool(p.spriteOverflow)
	w.I32(int32(p.lastEvalScanline))
	w.Bytes8(p.spriteIndexes[:])
	w.Bool(p.sprite0OnScanline)
	w.Bool(p.backgroundEnabled)
	w.Bool(p.spritesEnabled)
	w.Bool(p.renderingEnabled)
	w.U64(p.cycleCount)

	if p.memory != nil {
		vram, palette := p.memory.SnapshotVRAM()
		w.Bytes8(vram)
		w.Bytes8(palette)
	}

	return w.Bytes()
}

// LoadState restores PPU register and rendering-pipeline state previously
// produced by SaveState.
func (p *PPU) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	p.ppuCtrl = r.U8()
	p.ppuMask = r.U8()
	p.ppuStatus = r.U8()
	p.oamAddr = r.U8()
	p.oamData = r.U8()
	p.ppuScroll = r.U8()
	p.ppuAddr = r.U8()
	p.ppuData = r.U8()
	p.v = r.U16()
	p.t = r.U16()
	p.x = r.U8()
	p.w = r.Bool()
	p.scanline = int(r.I32())
	p.cycle = int(r.I32())
	p.frameCount = r.U64()
	p.oddFrame = r.Bool()
	p.readBuffer = r.U8()
	copy(p.oam[:], r.Bytes8(len(p.oam)))
	copy(p.secondaryOAM[:], r.Bytes8(len(p.secondaryOAM)))
	p.spriteCount = r.U8()
	p.sprite0Hit = r.Bool()
	p.spriteOverflow = r.Bool()
	p.lastEvalScanline = int(r.I32())
	copy(p.spriteIndexes[:], r.Bytes8(len(p.spriteIndexes)))
	p.sprite0OnScanline = r.Bool()
	p.backgroundEnabled = r.Bool()
	p.spritesEnabled = r.Bool()
	p.renderingEnabled = r.Bool()
	p.cycleCount = r.U64()

	if p.memory != nil {
		vram := r.Bytes8(0x1000)
		palette := r.Bytes8(32)
		p.memory.RestoreVRAM(vram, palette)
	}

	return r.Err()
}
