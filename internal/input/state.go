package input

import "gones/internal/savestate"

// SaveState serializes both controllers' shift-register state. Button
// states (set live by the host each frame) are not part of the snapshot;
// loading a state does not imply any particular buttons are held.
func (s *InputState) SaveState() ([]byte, error) {
	w := savestate.NewWriter()
	writeController(w, s.Controller1)
	writeController(w, s.Controller2)
	return w.Bytes()
}

// LoadState restores both controllers' shift-register state previously
// produced by SaveState.
func (s *InputState) LoadState(data []byte) error {
	r := savestate.NewReader(data)
	readController(r, s.Controller1)
	readController(r, s.Controller2)
	return r.Err()
}

func writeController(w *savestate.Writer, c *Controller) {
	w.U8(c.buttons)
	w.U8(c.shiftRegister)
	w.Bool(c.strobe)
	w.U8(c.buttonSnapshot)
	w.U8(c.bitPosition)
}

func readController(r *savestate.Reader, c *Controller) {
	c.buttons = r.U8()
	c.shiftRegister = r.U8()
	c.strobe = r.Bool()
	c.buttonSnapshot = r.U8()
	c.bitPosition = r.U8()
}
