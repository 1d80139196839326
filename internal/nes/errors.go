package nes

import "fmt"

// ErrorKind identifies which of spec §7's error conditions a CoreError
// represents, so callers can branch on kind rather than string-matching.
type ErrorKind int

const (
	KindBadMagic ErrorKind = iota
	KindTruncatedRom
	KindUnsupportedMapper
	KindMapperError
	KindVersionMismatch
	KindCorruptState
	KindRomMismatch
	KindInvalidOpcode
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadMagic:
		return "BadMagic"
	case KindTruncatedRom:
		return "TruncatedRom"
	case KindUnsupportedMapper:
		return "UnsupportedMapper"
	case KindMapperError:
		return "MapperError"
	case KindVersionMismatch:
		return "VersionMismatch"
	case KindCorruptState:
		return "CorruptState"
	case KindRomMismatch:
		return "RomMismatch"
	case KindInvalidOpcode:
		return "InvalidOpcode"
	default:
		return "Unknown"
	}
}

// CoreError is implemented by every error this package returns, so
// callers can recover the error kind without type-switching on the
// concrete type.
type CoreError interface {
	error
	Kind() ErrorKind
}

type coreError struct {
	kind ErrorKind
	msg  string
}

func (e *coreError) Error() string  { return e.msg }
func (e *coreError) Kind() ErrorKind { return e.kind }

// ErrBadMagic reports an iNES header whose magic bytes aren't "NES\x1A".
func ErrBadMagic() CoreError {
	return &coreError{KindBadMagic, "nes: bad iNES magic"}
}

// ErrTruncatedRom reports a ROM file shorter than its header declares.
func ErrTruncatedRom(detail string) CoreError {
	return &coreError{KindTruncatedRom, fmt.Sprintf("nes: truncated rom: %s", detail)}
}

// ErrUnsupportedMapper reports an iNES mapper id this build doesn't
// implement.
func ErrUnsupportedMapper(id uint8) CoreError {
	return &coreError{KindUnsupportedMapper, fmt.Sprintf("nes: unsupported mapper %d", id)}
}

// ErrMapperError wraps a mapper-level failure surfaced during state load
// (e.g. a corrupt per-mapper register sub-blob).
func ErrMapperError(detail string) CoreError {
	return &coreError{KindMapperError, fmt.Sprintf("nes: mapper error: %s", detail)}
}

// ErrVersionMismatch reports a save-state whose version word doesn't
// match this build's format constant.
func ErrVersionMismatch() CoreError {
	return &coreError{KindVersionMismatch, "nes: save state version mismatch"}
}

// ErrCorruptState reports a save-state blob that's truncated or otherwise
// fails to decode.
func ErrCorruptState(detail string) CoreError {
	return &coreError{KindCorruptState, fmt.Sprintf("nes: corrupt save state: %s", detail)}
}

// ErrRomMismatch reports a save-state whose rom_crc doesn't match the
// currently loaded ROM.
func ErrRomMismatch() CoreError {
	return &coreError{KindRomMismatch, "nes: save state was made against a different rom"}
}

// ErrInvalidOpcode reports the CPU trapping on an illegal/unimplemented
// opcode at pc.
func ErrInvalidOpcode(pc uint16, op uint8) CoreError {
	return &coreError{KindInvalidOpcode, fmt.Sprintf("nes: invalid opcode $%02X at $%04X", op, pc)}
}
