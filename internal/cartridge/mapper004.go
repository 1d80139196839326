// Package cartridge implements ROM loading and parsing for NES cartridges.
package cartridge

import "gones/internal/savestate"

// Mapper004 implements MMC3 (iNES mapper 4), the most common discrete
// mapper chip, used by Super Mario Bros. 2/3, Mega Man 3-6 and many more.
//
// Eight bank registers (R0-R7) are selected through an even/odd register
// pair at $8000/$8001: an even write ($8000) picks which Rn the next odd
// write ($8001) updates, and also sets the PRG/CHR bank-layout mode bits.
// $A000/$A001 control mirroring and PRG-RAM write protection; $C000/$C001
// reload the scanline IRQ counter's latch/value; $E000/$E001 disable/
// enable the IRQ.
//
// The IRQ counter is clocked once per rendered scanline by ClockScanline,
// called from the facade's step loop when rendering is enabled, rather
// than filtering true PPU A12 address-line edges. This loses split-second
// mid-scanline retriggers some demos rely on but matches the timing every
// game's status-bar/raster-split effect actually needs.
type Mapper004 struct {
	cart *Cartridge

	prgBanks uint8 // number of 8KB PRG banks

	bankSelect uint8
	prgMode    uint8
	chrMode    uint8
	registers  [8]uint8

	mirroring MirrorMode

	prgRAMEnabled      bool
	prgRAMWriteProtect bool

	irqLatch      uint8
	irqCounter    uint8
	irqEnabled    bool
	irqPending    bool
	irqReloadFlag bool
}

// NewMapper004 creates a new MMC3 mapper.
func NewMapper004(cart *Cartridge) *Mapper004 {
	return &Mapper004{
		cart:          cart,
		prgBanks:      uint8(len(cart.prgROM) / 0x2000),
		mirroring:     cart.mirror,
		prgRAMEnabled: true,
	}
}

// ReadPRG reads from PRG-RAM or one of the four 8KB PRG-ROM windows.
func (m *Mapper004) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x6000 && address < 0x8000:
		if m.prgRAMEnabled {
			return m.cart.sram[address-0x6000]
		}
		return 0

	case address >= 0x8000 && address < 0xA000:
		var bank uint8
		if m.prgMode == 0 {
			bank = m.registers[6]
		} else {
			bank = m.secondLastBank()
		}
		return m.readPRGBank(bank, address-0x8000)

	case address >= 0xA000 && address < 0xC000:
		return m.readPRGBank(m.registers[7], address-0xA000)

	case address >= 0xC000 && address < 0xE000:
		var bank uint8
		if m.prgMode == 0 {
			bank = m.secondLastBank()
		} else {
			bank = m.registers[6]
		}
		return m.readPRGBank(bank, address-0xC000)

	case address >= 0xE000:
		return m.readPRGBank(m.lastBank(), address-0xE000)
	}
	return 0
}

func (m *Mapper004) lastBank() uint8 {
	if m.prgBanks == 0 {
		return 0
	}
	return m.prgBanks - 1
}

func (m *Mapper004) secondLastBank() uint8 {
	if m.prgBanks < 2 {
		return 0
	}
	return m.prgBanks - 2
}

func (m *Mapper004) readPRGBank(bank uint8, offsetInBank uint16) uint8 {
	offset := uint32(bank)*0x2000 + uint32(offsetInBank)
	if int(offset) < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

// WritePRG handles PRG-RAM writes and the even/odd bank/mirroring/IRQ
// register pairs at $8000-$FFFF.
func (m *Mapper004) WritePRG(address uint16, value uint8) {
	switch {
	case address >= 0x6000 && address < 0x8000:
		if m.prgRAMEnabled && !m.prgRAMWriteProtect {
			m.cart.sram[address-0x6000] = value
		}

	case address >= 0x8000 && address < 0xA000:
		if address&1 == 0 {
			m.bankSelect = value & 0x07
			m.prgMode = (value >> 6) & 0x01
			m.chrMode = (value >> 7) & 0x01
		} else {
			m.registers[m.bankSelect] = value
		}

	case address >= 0xA000 && address < 0xC000:
		if address&1 == 0 {
			if value&1 == 0 {
				m.mirroring = MirrorVertical
			} else {
				m.mirroring = MirrorHorizontal
			}
		} else {
			m.prgRAMWriteProtect = value&0x40 != 0
			m.prgRAMEnabled = value&0x80 != 0
		}

	case address >= 0xC000 && address < 0xE000:
		if address&1 == 0 {
			m.irqLatch = value
		} else {
			m.irqCounter = 0
			m.irqReloadFlag = true
		}

	case address >= 0xE000:
		if address&1 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

// ReadCHR reads through the six 1KB/2KB CHR bank registers, whose layout
// flips between two regions depending on chrMode.
func (m *Mapper004) ReadCHR(address uint16) uint8 {
	offset := m.chrOffset(address)
	if int(offset) < len(m.cart.chrROM) {
		return m.cart.chrROM[offset]
	}
	return 0
}

// WriteCHR writes to CHR-RAM; CHR-ROM carts ignore the write.
func (m *Mapper004) WriteCHR(address uint16, value uint8) {
	if !m.cart.hasCHRRAM {
		return
	}
	offset := m.chrOffset(address)
	if int(offset) < len(m.cart.chrROM) {
		m.cart.chrROM[offset] = value
	}
}

func (m *Mapper004) chrOffset(address uint16) uint32 {
	if m.chrMode == 0 {
		switch {
		case address < 0x0800:
			return uint32(m.registers[0]&0xFE)*0x400 + uint32(address)
		case address < 0x1000:
			return uint32(m.registers[1]&0xFE)*0x400 + uint32(address-0x0800)
		case address < 0x1400:
			return uint32(m.registers[2])*0x400 + uint32(address-0x1000)
		case address < 0x1800:
			return uint32(m.registers[3])*0x400 + uint32(address-0x1400)
		case address < 0x1C00:
			return uint32(m.registers[4])*0x400 + uint32(address-0x1800)
		default:
			return uint32(m.registers[5])*0x400 + uint32(address-0x1C00)
		}
	}
	switch {
	case address < 0x0400:
		return uint32(m.registers[2])*0x400 + uint32(address)
	case address < 0x0800:
		return uint32(m.registers[3])*0x400 + uint32(address-0x0400)
	case address < 0x0C00:
		return uint32(m.registers[4])*0x400 + uint32(address-0x0800)
	case address < 0x1000:
		return uint32(m.registers[5])*0x400 + uint32(address-0x0C00)
	case address < 0x1800:
		return uint32(m.registers[0]&0xFE)*0x400 + uint32(address-0x1000)
	default:
		return uint32(m.registers[1]&0xFE)*0x400 + uint32(address-0x1800)
	}
}

// ClockScanline decrements the IRQ counter once per rendered scanline,
// reloading from the latch when it hits zero or a reload was requested.
func (m *Mapper004) ClockScanline() {
	if m.irqCounter == 0 || m.irqReloadFlag {
		m.irqCounter = m.irqLatch
		m.irqReloadFlag = false
	} else {
		m.irqCounter--
	}

	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

// Mirroring returns the current nametable arrangement set by $A000.
func (m *Mapper004) Mirroring() MirrorMode {
	return m.mirroring
}

// IRQPending reports whether the scanline counter has requested an IRQ
// that hasn't been acknowledged by an $E000 write yet.
func (m *Mapper004) IRQPending() bool {
	return m.irqPending
}

// Reset restores bank selection and IRQ state to power-on defaults.
func (m *Mapper004) Reset() {
	m.bankSelect = 0
	m.prgMode = 0
	m.chrMode = 0
	m.registers = [8]uint8{}
	m.prgRAMEnabled = true
	m.prgRAMWriteProtect = false
	m.irqLatch = 0
	m.irqCounter = 0
	m.irqEnabled = false
	m.irqPending = false
	m.irqReloadFlag = false
}

// SaveState serializes bank selection, mirroring and IRQ counter state.
func (m *Mapper004) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	w.U8(m.bankSelect)
	w.U8(m.prgMode)
	w.U8(m.chrMode)
	w.Bytes8(m.registers[:])
	w.U8(uint8(m.mirroring))
	w.Bool(m.prgRAMEnabled)
	w.Bool(m.prgRAMWriteProtect)
	w.U8(m.irqLatch)
	w.U8(m.irqCounter)
	w.Bool(m.irqEnabled)
	w.Bool(m.irqPending)
	w.Bool(m.irqReloadFlag)
	return w.Bytes()
}

// LoadState restores state previously produced by SaveState.
func (m *Mapper004) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	m.bankSelect = r.U8()
	m.prgMode = r.U8()
	m.chrMode = r.U8()
	copy(m.registers[:], r.Bytes8(len(m.registers)))
	m.mirroring = MirrorMode(r.U8())
	m.prgRAMEnabled = r.Bool()
	m.prgRAMWriteProtect = r.Bool()
	m.irqLatch = r.U8()
	m.irqCounter = r.U8()
	m.irqEnabled = r.Bool()
	m.irqPending = r.Bool()
	m.irqReloadFlag = r.Bool()
	return r.Err()
}
