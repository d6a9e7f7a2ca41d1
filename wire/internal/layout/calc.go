package layout

import (
	"math"
	"slices"

	"github.com/wippyai/bitwire/wire/internal/types"
)

// Overflow marks a width that does not fit in 32 bits. Validate rejects it.
const Overflow = math.MaxUint32

func saturate(v uint64) uint32 {
	if v >= Overflow {
		return Overflow
	}
	return uint32(v)
}

// Compute fills in the packed width, field offsets and variant index of d.
// Children must already be computed. Leaf widths are set by the constructor.
func Compute(d *types.Descriptor) {
	switch d.Kind {
	case types.KindStruct, types.KindTuple:
		var off uint64
		for i := range d.Fields {
			d.Fields[i].Offset = saturate(off)
			if ft := d.Fields[i].Type; ft != nil {
				off += uint64(ft.Bits)
			}
		}
		d.Bits = saturate(off)

	case types.KindArray:
		if d.Elem == nil {
			d.Bits = 0
			return
		}
		d.Bits = saturate(uint64(d.Elem.Bits) * uint64(d.Len))

	case types.KindEnum:
		computeEnum(d)
	}
}

func computeEnum(d *types.Descriptor) {
	var widest uint32
	d.Fallback = -1
	d.ByValue = make([]int, 0, len(d.Variants))
	for i, v := range d.Variants {
		if v.Fallback {
			if d.Fallback < 0 {
				d.Fallback = i
			}
			continue
		}
		d.ByValue = append(d.ByValue, i)
		if v.Payload != nil && v.Payload.Bits > widest {
			widest = v.Payload.Bits
		}
	}
	slices.SortStableFunc(d.ByValue, func(a, b int) int {
		va, vb := d.Variants[a].Value, d.Variants[b].Value
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	})
	d.Bits = saturate(uint64(d.TagBits) + uint64(widest))
}

// FieldOffset returns the parent-relative offset of element i.
func FieldOffset(d *types.Descriptor, i int) uint32 {
	if d.Kind == types.KindArray {
		return uint32(i) * d.Elem.Bits
	}
	return d.Fields[i].Offset
}
