package wire

import (
	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/types"
)

// resolveVariant maps a raw discriminant to a variant index. Unmapped values
// select the fallback under CatchAll and fail under StrictError.
func resolveVariant(d *types.Descriptor, raw uint64, phase errors.Phase) (int, error) {
	if idx, ok := d.Lookup(raw); ok {
		return idx, nil
	}
	if d.Policy == types.CatchAll && d.Fallback >= 0 {
		return d.Fallback, nil
	}
	return -1, errors.InvalidDiscriminant(phase, nil, enumName(d), raw)
}

func enumName(d *types.Descriptor) string {
	if d.Name != "" {
		return d.Name
	}
	return d.WireName()
}

func writeTag(c *bitio.Cursor, d *types.Descriptor, raw uint64) error {
	return c.WriteBitsOrder(uint(d.TagBits), raw, d.Order)
}

func readTag(c *bitio.Cursor, d *types.Descriptor) (uint64, error) {
	return c.ReadBitsOrder(uint(d.TagBits), d.Order)
}

// variantBits returns the payload width of variant idx.
func variantBits(d *types.Descriptor, idx int) uint32 {
	if p := d.Variants[idx].Payload; p != nil {
		return p.Bits
	}
	return 0
}

// The tail after a short payload is zero on pack and ignored on unpack.

func writeTail(c *bitio.Cursor, d *types.Descriptor, idx int) error {
	return c.ZeroBits(uint64(d.PayloadBits() - variantBits(d, idx)))
}

func skipTail(c *bitio.Cursor, d *types.Descriptor, idx int) error {
	return c.Skip(uint64(d.PayloadBits() - variantBits(d, idx)))
}
