package wire

import (
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/types"
)

type Kind = types.Kind

const (
	KindBool    = types.KindBool
	KindUint    = types.KindUint
	KindInt     = types.KindInt
	KindFloat32 = types.KindFloat32
	KindFloat64 = types.KindFloat64
	KindPad     = types.KindPad
	KindStruct  = types.KindStruct
	KindTuple   = types.KindTuple
	KindArray   = types.KindArray
	KindEnum    = types.KindEnum
)

type Descriptor = types.Descriptor
type Field = types.Field
type Variant = types.Variant

type Policy = types.Policy

const (
	StrictError = types.StrictError
	CatchAll    = types.CatchAll
)

type ByteOrder = bitio.ByteOrder

const (
	LittleEndian = bitio.LittleEndian
	BigEndian    = bitio.BigEndian
)

// Cursor is a forward-only bit position over a caller-owned buffer.
type Cursor = bitio.Cursor

// NewCursor returns a cursor at bit 0 of buf.
func NewCursor(buf []byte) *Cursor {
	return bitio.NewCursor(buf)
}

// MakeCursor returns a cursor value at bit 0 of buf, suitable for the stack.
func MakeCursor(buf []byte) Cursor {
	return bitio.MakeCursor(buf)
}
