// Package cartridge implements ROM loading and parsing for NES cartridges.
package cartridge

import "gones/internal/savestate"

// Mapper003 implements CNROM (iNES mapper 3), used by Arkanoid and
// Solomon's Key. PRG-ROM is fixed (16KB mirrored or 32KB direct); a write
// anywhere in $8000-$FFFF selects the 8KB CHR-ROM bank visible at
// $0000-$1FFF.
type Mapper003 struct {
	cart *Cartridge

	prgBanks uint8
	chrBanks uint8
	chrBank  uint8
}

// NewMapper003 creates a new CNROM mapper.
func NewMapper003(cart *Cartridge) *Mapper003 {
	return &Mapper003{
		cart:     cart,
		prgBanks: uint8(len(cart.prgROM) / 0x4000),
		chrBanks: uint8(len(cart.chrROM) / 0x2000),
	}
}

// ReadPRG reads from PRG-ROM, mirroring a 16KB image across the full
// $8000-$FFFF window.
func (m *Mapper003) ReadPRG(address uint16) uint8 {
	if address < 0x8000 {
		return 0
	}
	offset := address - 0x8000
	if m.prgBanks == 1 {
		offset %= 0x4000
	}
	if int(offset) < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

// WritePRG selects the CHR bank visible at $0000-$1FFF.
func (m *Mapper003) WritePRG(address uint16, value uint8) {
	if address >= 0x8000 && m.chrBanks > 0 {
		m.chrBank = value & (m.chrBanks - 1)
	}
}

// ReadCHR reads from the bank-selected 8KB CHR-ROM window.
func (m *Mapper003) ReadCHR(address uint16) uint8 {
	offset := uint32(m.chrBank)*0x2000 + uint32(address)
	if int(offset) < len(m.cart.chrROM) {
		return m.cart.chrROM[offset]
	}
	return 0
}

// WriteCHR is a no-op; CNROM's CHR-ROM is read-only.
func (m *Mapper003) WriteCHR(address uint16, value uint8) {
}

// Mirroring returns the header-specified mirroring; CNROM has no control
// register for it.
func (m *Mapper003) Mirroring() MirrorMode {
	return m.cart.mirror
}

// IRQPending always returns false; CNROM generates no interrupts.
func (m *Mapper003) IRQPending() bool {
	return false
}

// Reset restores the CHR bank selection to power-on state.
func (m *Mapper003) Reset() {
	m.chrBank = 0
}

// SaveState serializes the selected CHR bank.
func (m *Mapper003) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	w.U8(m.chrBank)
	return w.Bytes()
}

// LoadState restores state previously produced by SaveState.
func (m *Mapper003) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	m.chrBank = r.U8()
	return r.Err()
}
