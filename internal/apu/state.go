package apu

import "gones/internal/savestate"

// SaveState serializes all five channels plus frame-sequencer and timing
// state. The pending audio sample buffer is not included: it is transient
// output already drained once per RunFrame, not persistent machine state.
// The memory-read callback and pending DMA stall counter are likewise
// excluded: the former is re-wired by the bus on load, the latter is
// drained every Step and never outlives one.
func (a *APU) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	writePulse(w, &a.pulse1)
	writePulse(w, &a.pulse2)
	writeTriangle(w, &a.triangle)
	writeNoise(w, &a.noise)
	writeDMC(w, &a.dmc)

	w.U16(a.frameCounter)
	w.Bool(a.frameMode)
	w.Bool(a.frameIRQEnable)
	w.U8(a.frameCounterStep)
	w.Bool(a.frameIRQFlag)
	for _, enabled := range a.channelEnable {
		w.Bool(enabled)
	}
	w.U32(uint32(a.sampleRate))
	w.F64(a.cpuFrequency)
	w.F64(a.cycleAccumulator)
	w.U64(a.cycles)
	return w.Bytes()
}

// LoadState restores APU channel and frame-sequencer state previously
// produced by SaveState.
func (a *APU) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	readPulse(r, &a.pulse1)
	readPulse(r, &a.pulse2)
	readTriangle(r, &a.triangle)
	readNoise(r, &a.noise)
	readDMC(r, &a.dmc)

	a.frameCounter = r.U16()
	a.frameMode = r.Bool()
	a.frameIRQEnable = r.Bool()
	a.frameCounterStep = r.U8()
	a.frameIRQFlag = r.Bool()
	for i := range a.channelEnable {
		a.channelEnable[i] = r.Bool()
	}
	a.sampleRate = int(r.U32())
	a.cpuFrequency = r.F64()
	a.cycleAccumulator = r.F64()
	a.cycles = r.U64()
	return r.Err()
}

func writePulse(w *savestate.Writer, p *PulseChannel) {
	w.U8(p.dutyCycle)
	w.Bool(p.envelopeLoop)
	w.Bool(p.envelopeDisable)
	w.U8(p.volume)
	w.Bool(p.sweepEnable)
	w.U8(p.sweepPeriod)
	w.Bool(p.sweepNegate)
	w.U8(p.sweepShift)
	w.Bool(p.sweepReload)
	w.U8(p.sweepCounter)
	w.U16(p.timer)
	w.U16(p.timerCounter)
	w.U8(p.lengthCounter)
	w.Bool(p.lengthHalt)
	w.Bool(p.envelopeStart)
	w.U8(p.envelopeCounter)
	w.U8(p.envelopeDivider)
	w.U8(p.dutyIndex)
	w.U8(p.output)
	w.U8(p.sequencerPos)
}

func readPulse(r *savestate.Reader, p *PulseChannel) {
	p.dutyCycle = r.U8()
	p.envelopeLoop = r.Bool()
	p.envelopeDisable = r.Bool()
	p.volume = r.U8()
	p.sweepEnable = r.Bool()
	p.sweepPeriod = r.U8()
	p.sweepNegate = r.Bool()
	p.sweepShift = r.U8()
	p.sweepReload = r.Bool()
	p.sweepCounter = r.U8()
	p.timer = r.U16()
	p.timerCounter = r.U16()
	p.lengthCounter = r.U8()
	p.lengthHalt = r.Bool()
	p.envelopeStart = r.Bool()
	p.envelopeCounter = r.U8()
	p.envelopeDivider = r.U8()
	p.dutyIndex = r.U8()
	p.output = r.U8()
	p.sequencerPos = r.U8()
}

func writeTriangle(w *savestate.Writer, t *TriangleChannel) {
	w.Bool(t.lengthCounterHalt)
	w.U8(t.linearCounterLoad)
	w.U16(t.timer)
	w.U16(t.timerCounter)
	w.U8(t.lengthCounter)
	w.U8(t.linearCounter)
	w.Bool(t.linearCounterReload)
	w.U8(t.sequencerPos)
	w.U8(t.output)
}

func readTriangle(r *savestate.Reader, t *TriangleChannel) {
	t.lengthCounterHalt = r.Bool()
	t.linearCounterLoad = r.U8()
	t.timer = r.U16()
	t.timerCounter = r.U16()
	t.lengthCounter = r.U8()
	t.linearCounter = r.U8()
	t.linearCounterReload = r.Bool()
	t.sequencerPos = r.U8()
	t.output = r.U8()
}

func writeNoise(w *savestate.Writer, n *NoiseChannel) {
	w.Bool(n.envelopeLoop)
	w.Bool(n.envelopeDisable)
	w.U8(n.volume)
	w.Bool(n.mode)
	w.U8(n.periodIndex)
	w.U16(n.timerCounter)
	w.U8(n.lengthCounter)
	w.Bool(n.lengthHalt)
	w.Bool(n.envelopeStart)
	w.U8(n.envelopeCounter)
	w.U8(n.envelopeDivider)
	w.U16(n.shiftRegister)
	w.U8(n.output)
}

func readNoise(r *savestate.Reader, n *NoiseChannel) {
	n.envelopeLoop = r.Bool()
	n.envelopeDisable = r.Bool()
	n.volume = r.U8()
	n.mode = r.Bool()
	n.periodIndex = r.U8()
	n.timerCounter = r.U16()
	n.lengthCounter = r.U8()
	n.lengthHalt = r.Bool()
	n.envelopeStart = r.Bool()
	n.envelopeCounter = r.U8()
	n.envelopeDivider = r.U8()
	n.shiftRegister = r.U16()
	n.output = r.U8()
}

func writeDMC(w *savestate.Writer, d *DMCChannel) {
	w.Bool(d.irqEnable)
	w.Bool(d.loop)
	w.U8(d.rateIndex)
	w.U8(d.outputLevel)
	w.U16(d.sampleAddress)
	w.U16(d.sampleLength)
	w.U16(d.timerCounter)
	w.U8(d.sampleBuffer)
	w.U8(d.sampleBufferBits)
	w.Bool(d.sampleBufferEmpty)
	w.U16(d.bytesRemaining)
	w.U16(d.currentAddress)
	w.Bool(d.irqFlag)
	w.U8(d.output)
}

func readDMC(r *savestate.Reader, d *DMCChannel) {
	d.irqEnable = r.Bool()
	d.loop = r.Bool()
	d.rateIndex = r.U8()
	d.outputLevel = r.U8()
	d.sampleAddress = r.U16()
	d.sampleLength = r.U16()
	d.timerCounter = r.U16()
	d.sampleBuffer = r.U8()
	d.sampleBufferBits = r.U8()
	d.sampleBufferEmpty = r.Bool()
	d.bytesRemaining = r.U16()
	d.currentAddress = r.U16()
	d.irqFlag = r.Bool()
	d.output = r.U8()
}
