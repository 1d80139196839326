package cpu

import "gones/internal/savestate"

// SaveState serializes the CPU's register and interrupt state. The
// instruction lookup table is static and rebuilt by New, so it is not part
// of the snapshot.
func (cpu *CPU) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	w.U8(cpu.A)
	w.U8(cpu.X)
	w.U8(cpu.Y)
	w.U8(cpu.SP)
	w.U16(cpu.PC)
	w.Bool(cpu.C)
	w.Bool(cpu.Z)
	w.Bool(cpu.I)
	w.Bool(cpu.D)
	w.Bool(cpu.B)
	w.Bool(cpu.V)
	w.Bool(cpu.N)
	w.U64(cpu.cycles)
	w.Bool(cpu.nmiPending)
	w.Bool(cpu.irqPending)
	w.Bool(cpu.nmiPrevious)
	w.Bool(cpu.interruptDelay)
	w.Bool(cpu.trapped)
	w.U16(cpu.trappedPC)
	w.U8(cpu.trappedOp)
	return w.Bytes()
}

// LoadState restores CPU register and interrupt state previously produced
// by SaveState.
func (cpu *CPU) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	cpu.A = r.U8()
	cpu.X = r.U8()
	cpu.Y = r.U8()
	cpu.SP = r.U8()
	cpu.PC = r.U16()
	cpu.C = r.Bool()
	cpu.Z = r.Bool()
	cpu.I = r.Bool()
	cpu.D = r.Bool()
	cpu.B = r.Bool()
	cpu.V = r.Bool()
	cpu.N = r.Bool()
	cpu.cycles = r.U64()
	cpu.nmiPending = r.Bool()
	cpu.irqPending = r.Bool()
	cpu.nmiPrevious = r.Bool()
	cpu.interruptDelay = r.Bool()
	cpu.trapped = r.Bool()
	cpu.trappedPC = r.U16()
	cpu.trappedOp = r.U8()
	return r.Err()
}
