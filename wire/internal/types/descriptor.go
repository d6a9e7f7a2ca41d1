package types

import (
	"fmt"
	"strings"

	"github.com/wippyai/bitwire/wire/internal/bitio"
)

// Descriptor is the immutable wire metadata of one type.
// Composite widths and field offsets are filled in by the layout package
// when the descriptor is constructed.
type Descriptor struct {
	Elem     *Descriptor
	Fields   []Field
	Variants []Variant
	// ByValue holds indices into Variants sorted by Value, fallback excluded.
	ByValue  []int
	Name     string
	Fallback int
	Bits     uint32
	Len      uint32
	TagBits  uint32
	Kind     Kind
	Order    bitio.ByteOrder
	Policy   Policy
}

// Field is a struct member or tuple element. Offset is relative to the parent.
type Field struct {
	Type   *Descriptor
	Name   string
	Offset uint32
}

// Variant is one enum case. A fallback variant carries no payload and
// absorbs any discriminant without a mapped variant.
type Variant struct {
	Payload  *Descriptor
	Name     string
	Value    uint64
	Fallback bool
}

// ByteWidth returns ceil(Bits/8).
func (d *Descriptor) ByteWidth() uint32 {
	return uint32(bitio.ByteWidth(uint64(d.Bits)))
}

// PayloadBits returns the bits reserved after the discriminant.
func (d *Descriptor) PayloadBits() uint32 {
	return d.Bits - d.TagBits
}

// Lookup returns the index of the variant mapped to raw.
func (d *Descriptor) Lookup(raw uint64) (int, bool) {
	lo, hi := 0, len(d.ByValue)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if d.Variants[d.ByValue[mid]].Value < raw {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(d.ByValue) && d.Variants[d.ByValue[lo]].Value == raw {
		return d.ByValue[lo], true
	}
	return -1, false
}

// VariantByName returns the index of the named variant.
func (d *Descriptor) VariantByName(name string) (int, bool) {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// FieldByName returns the index of the named struct field.
func (d *Descriptor) FieldByName(name string) (int, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// WireName renders the type expression form: u3, i12, be:u16, u8[4],
// tuple<bool, u7>. Named composites render as their name.
func (d *Descriptor) WireName() string {
	if d == nil {
		return "<nil>"
	}
	var s string
	switch d.Kind {
	case KindBool, KindFloat32, KindFloat64:
		s = d.Kind.String()
	case KindUint:
		s = fmt.Sprintf("u%d", d.Bits)
	case KindInt:
		s = fmt.Sprintf("i%d", d.Bits)
	case KindPad:
		s = fmt.Sprintf("pad%d", d.Bits)
	case KindArray:
		s = fmt.Sprintf("%s[%d]", d.Elem.WireName(), d.Len)
	case KindTuple:
		if d.Name != "" {
			return d.Name
		}
		parts := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			parts[i] = f.Type.WireName()
		}
		s = "tuple<" + strings.Join(parts, ", ") + ">"
	case KindStruct, KindEnum:
		if d.Name != "" {
			return d.Name
		}
		s = d.Kind.String()
	default:
		s = d.Kind.String()
	}
	if d.Order == bitio.BigEndian {
		return "be:" + s
	}
	return s
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s(%d bits)", d.WireName(), d.Bits)
}
