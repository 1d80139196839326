// Package cartridge implements ROM loading and parsing for NES cartridges.
package cartridge

import "gones/internal/savestate"

// Mapper002 implements UxROM (iNES mapper 2), used by Mega Man, Castlevania
// and Contra. A write anywhere in $8000-$FFFF selects the 16KB PRG bank
// visible at $8000-$BFFF; $C000-$FFFF is hardwired to the last bank. CHR
// is always 8KB of fixed RAM.
type Mapper002 struct {
	cart *Cartridge

	prgBanks uint8
	prgBank  uint8
}

// NewMapper002 creates a new UxROM mapper.
func NewMapper002(cart *Cartridge) *Mapper002 {
	return &Mapper002{
		cart:     cart,
		prgBanks: uint8(len(cart.prgROM) / 0x4000),
	}
}

// ReadPRG reads from the switchable bank ($8000-$BFFF) or the fixed last
// bank ($C000-$FFFF).
func (m *Mapper002) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address < 0xC000:
		offset := uint32(m.prgBank)*0x4000 + uint32(address-0x8000)
		if int(offset) < len(m.cart.prgROM) {
			return m.cart.prgROM[offset]
		}
	case address >= 0xC000:
		if m.prgBanks == 0 {
			return 0
		}
		last := m.prgBanks - 1
		offset := uint32(last)*0x4000 + uint32(address-0xC000)
		if int(offset) < len(m.cart.prgROM) {
			return m.cart.prgROM[offset]
		}
	}
	return 0
}

// WritePRG selects the PRG bank visible at $8000-$BFFF.
func (m *Mapper002) WritePRG(address uint16, value uint8) {
	if address >= 0x8000 && m.prgBanks > 0 {
		m.prgBank = value & (m.prgBanks - 1)
	}
}

// ReadCHR reads from fixed 8KB CHR-RAM.
func (m *Mapper002) ReadCHR(address uint16) uint8 {
	if int(address) < len(m.cart.chrROM) {
		return m.cart.chrROM[address]
	}
	return 0
}

// WriteCHR writes to fixed 8KB CHR-RAM.
func (m *Mapper002) WriteCHR(address uint16, value uint8) {
	if int(address) < len(m.cart.chrROM) {
		m.cart.chrROM[address] = value
	}
}

// Mirroring returns the header-specified mirroring; UxROM has no control
// register for it.
func (m *Mapper002) Mirroring() MirrorMode {
	return m.cart.mirror
}

// IRQPending always returns false; UxROM generates no interrupts.
func (m *Mapper002) IRQPending() bool {
	return false
}

// Reset restores the PRG bank selection to power-on state.
func (m *Mapper002) Reset() {
	m.prgBank = 0
}

// SaveState serializes the selected PRG bank.
func (m *Mapper002) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	w.U8(m.prgBank)
	return w.Bytes()
}

// LoadState restores state previously produced by SaveState.
func (m *Mapper002) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	m.prgBank = r.U8()
	return r.Err()
}
