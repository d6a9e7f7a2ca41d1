package wire

import (
	"fmt"
	"math"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/types"
)

// Primitive accessors shared by the compiled and dynamic paths.
// The descriptor must already be validated.

func writeBool(c *bitio.Cursor, v bool) error {
	var bit uint64
	if v {
		bit = 1
	}
	return c.WriteBitsOrder(1, bit, bitio.LittleEndian)
}

func readBool(c *bitio.Cursor) (bool, error) {
	v, err := c.ReadBitsOrder(1, bitio.LittleEndian)
	return v == 1, err
}

func writeUint(c *bitio.Cursor, d *types.Descriptor, v uint64) error {
	return c.WriteBitsOrder(uint(d.Bits), v, d.Order)
}

func readUint(c *bitio.Cursor, d *types.Descriptor) (uint64, error) {
	return c.ReadBitsOrder(uint(d.Bits), d.Order)
}

func writeInt(c *bitio.Cursor, d *types.Descriptor, v int64) error {
	w := uint(d.Bits)
	if !bitio.FitsSigned(v, w) {
		lo, hi := bitio.SignedRange(w)
		err := errors.ValueOutOfRange(errors.PhasePack, nil, v, uint64(hi))
		if v < lo {
			err.Detail = fmt.Sprintf("value %d is below field minimum %d", v, lo)
		}
		return err
	}
	return c.WriteBitsOrder(w, bitio.TruncSigned(v, w), d.Order)
}

func readInt(c *bitio.Cursor, d *types.Descriptor) (int64, error) {
	raw, err := c.ReadBitsOrder(uint(d.Bits), d.Order)
	if err != nil {
		return 0, err
	}
	return bitio.SignExtend(raw, uint(d.Bits)), nil
}

// Floats travel as raw IEEE-754 patterns so NaN payloads survive.

func writeFloat32(c *bitio.Cursor, d *types.Descriptor, f float32) error {
	return c.WriteBitsOrder(32, uint64(math.Float32bits(f)), d.Order)
}

func readFloat32(c *bitio.Cursor, d *types.Descriptor) (float32, error) {
	raw, err := c.ReadBitsOrder(32, d.Order)
	return math.Float32frombits(uint32(raw)), err
}

func writeFloat64(c *bitio.Cursor, d *types.Descriptor, f float64) error {
	return c.WriteBitsOrder(64, math.Float64bits(f), d.Order)
}

func readFloat64(c *bitio.Cursor, d *types.Descriptor) (float64, error) {
	raw, err := c.ReadBitsOrder(64, d.Order)
	return math.Float64frombits(raw), err
}

func writePad(c *bitio.Cursor, d *types.Descriptor) error {
	return c.ZeroBits(uint64(d.Bits))
}

func skipPad(c *bitio.Cursor, d *types.Descriptor) error {
	return c.Skip(uint64(d.Bits))
}
