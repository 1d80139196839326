// Package cartridge implements ROM loading and parsing for NES cartridges.
package cartridge

import "gones/internal/savestate"

// Mapper005 implements a compatible subset of MMC5 (iNES mapper 5), used
// by Castlevania III and a handful of other carts. Real MMC5 hardware has
// four PRG modes, independent 8x1KB/4x2KB/2x4KB/1x8KB CHR windows for
// background and sprites, a scanline-count-based split screen, and an
// expansion audio channel. This implementation covers the common case:
// fixed 8KB PRG-ROM windows selected by $5113-$5117, a single set of eight
// 1KB CHR banks selected by $5120-$5127 shared between background and
// sprites, and the scanline IRQ counter at $5203/$5204. Split-screen mode
// and the extra audio channel are not implemented; spec's expansion-audio
// Non-goal already excludes the latter.
type Mapper005 struct {
	cart *Cartridge

	prgBanks uint8 // number of 8KB PRG banks
	chrBanks uint8 // number of 1KB CHR banks

	prgRAMEnabled bool
	prgBank       [5]uint8 // $5113-$5117, bank for $6000/$8000/$A000/$C000/$E000
	chrBank       [8]uint8 // $5120-$5127

	irqTarget    uint8
	irqEnabled   bool
	irqPending   bool
	irqInFrame   bool
	scanlineNum  uint16
}

// NewMapper005 creates a new MMC5 mapper.
func NewMapper005(cart *Cartridge) *Mapper005 {
	return &Mapper005{
		cart:          cart,
		prgBanks:      uint8(len(cart.prgROM) / 0x2000),
		chrBanks:      uint8(len(cart.chrROM) / 0x400),
		prgRAMEnabled: true,
	}
}

// ReadPRG reads from PRG-RAM ($6000-$7FFF, a single unbanked 8KB; the $5113
// value is stored but not applied) or one of the four 8KB PRG-ROM windows
// ($8000-$FFFF, selected by $5114-$5117).
func (m *Mapper005) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x5000 && address < 0x6000:
		return m.readExpansionRegister(address)

	case address >= 0x6000 && address < 0x8000:
		if m.prgRAMEnabled {
			return m.cart.sram[address-0x6000]
		}
		return 0

	case address >= 0x8000:
		slot := (address - 0x8000) / 0x2000
		bank := m.prgBank[slot+1]
		if m.prgBanks > 0 {
			bank %= m.prgBanks
		}
		offset := uint32(bank)*0x2000 + uint32(address&0x1FFF)
		if int(offset) < len(m.cart.prgROM) {
			return m.cart.prgROM[offset]
		}
	}
	return 0
}

func (m *Mapper005) readExpansionRegister(address uint16) uint8 {
	switch address {
	case 0x5204:
		var status uint8
		if m.irqPending {
			status |= 0x80
		}
		if m.irqInFrame {
			status |= 0x40
		}
		m.irqPending = false
		return status
	default:
		return 0
	}
}

// WritePRG handles the expansion register window ($5000-$5FFF), PRG-RAM
// writes, and ignores direct writes to the ROM address space.
func (m *Mapper005) WritePRG(address uint16, value uint8) {
	switch {
	case address >= 0x5113 && address <= 0x5117:
		m.prgBank[address-0x5113] = value & 0x7F

	case address >= 0x5120 && address <= 0x5127:
		m.WriteCHRBank(address, value)

	case address == 0x5203:
		m.irqTarget = value

	case address == 0x5204:
		m.irqEnabled = value&0x80 != 0

	case address >= 0x6000 && address < 0x8000:
		if m.prgRAMEnabled {
			m.cart.sram[address-0x6000] = value
		}
	}
}

// ReadCHR reads through the eight 1KB CHR bank registers.
func (m *Mapper005) ReadCHR(address uint16) uint8 {
	offset := m.chrOffset(address)
	if int(offset) < len(m.cart.chrROM) {
		return m.cart.chrROM[offset]
	}
	return 0
}

// WriteCHR writes to CHR-RAM; CHR-ROM carts ignore the write. MMC5
// register writes for CHR bank selection go through WriteCHRBank, not
// through the PPU-facing CHR window.
func (m *Mapper005) WriteCHR(address uint16, value uint8) {
	if !m.cart.hasCHRRAM {
		return
	}
	offset := m.chrOffset(address)
	if int(offset) < len(m.cart.chrROM) {
		m.cart.chrROM[offset] = value
	}
}

// WriteCHRBank handles the $5120-$5127 CHR bank-select registers, reached
// through WritePRG since they live in CPU address space but affect PPU
// fetches.
func (m *Mapper005) WriteCHRBank(address uint16, value uint8) {
	if address >= 0x5120 && address <= 0x5127 {
		m.chrBank[address-0x5120] = value
	}
}

func (m *Mapper005) chrOffset(address uint16) uint32 {
	bank := m.chrBank[(address>>10)&0x07]
	if m.chrBanks > 0 {
		bank %= m.chrBanks
	}
	return uint32(bank)*0x400 + uint32(address&0x3FF)
}

// ClockScanline advances the scanline IRQ counter, approximating the real
// chip's internal scanline detection via PPU A12 timing.
func (m *Mapper005) ClockScanline() {
	m.irqInFrame = true
	m.scanlineNum++
	if uint8(m.scanlineNum) == m.irqTarget && m.irqEnabled {
		m.irqPending = true
	}
}

// Mirroring returns the header-specified mirroring; MMC5's nametable-mapping
// register, nametable-fill and extended-attribute modes are not implemented
// in this subset.
func (m *Mapper005) Mirroring() MirrorMode {
	return m.cart.mirror
}

// IRQPending reports whether the scanline counter has hit its target.
func (m *Mapper005) IRQPending() bool {
	return m.irqPending
}

// Reset restores bank selection and IRQ state to power-on defaults.
func (m *Mapper005) Reset() {
	m.prgBank = [5]uint8{}
	m.chrBank = [8]uint8{}
	m.irqTarget = 0
	m.irqEnabled = false
	m.irqPending = false
	m.irqInFrame = false
	m.scanlineNum = 0
	m.prgRAMEnabled = true
}

// SaveState serializes bank selection and the scanline IRQ counter state.
func (m *Mapper005) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	w.Bytes8(m.prgBank[:])
	w.Bytes8(m.chrBank[:])
	w.U8(m.irqTarget)
	w.Bool(m.irqEnabled)
	w.Bool(m.irqPending)
	w.Bool(m.irqInFrame)
	w.U16(m.scanlineNum)
	w.Bool(m.prgRAMEnabled)
	return w.Bytes()
}

// LoadState restores state previously produced by SaveState.
func (m *Mapper005) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	copy(m.prgBank[:], r.Bytes8(len(m.prgBank)))
	copy(m.chrBank[:], r.Bytes8(len(m.chrBank)))
	m.irqTarget = r.U8()
	m.irqEnabled = r.Bool()
	m.irqPending = r.Bool()
	m.irqInFrame = r.Bool()
	m.scanlineNum = r.U16()
	m.prgRAMEnabled = r.Bool()
	return r.Err()
}
