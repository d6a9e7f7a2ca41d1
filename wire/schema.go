package wire

import (
	"github.com/wippyai/bitwire/wire/internal/layout"
	"github.com/wippyai/bitwire/wire/internal/types"
)

// Tuple arity bounds.
const (
	MinTupleArity = layout.MinTupleArity
	MaxTupleArity = layout.MaxTupleArity
)

func leaf(kind Kind, bits uint32) *Descriptor {
	return &Descriptor{Kind: kind, Bits: bits}
}

// Bool is a 1-bit boolean.
func Bool() *Descriptor { return leaf(KindBool, 1) }

// Uint is an unsigned integer of the given width (1..64).
func Uint(bits uint32) *Descriptor { return leaf(KindUint, bits) }

// Int is a two's complement integer of the given width (1..64).
func Int(bits uint32) *Descriptor { return leaf(KindInt, bits) }

func Float32() *Descriptor { return leaf(KindFloat32, 32) }
func Float64() *Descriptor { return leaf(KindFloat64, 64) }

// Pad is a run of reserved bits, written as zero and skipped on unpack.
func Pad(bits uint32) *Descriptor { return leaf(KindPad, bits) }

// Named returns a struct field.
func Named(name string, d *Descriptor) Field {
	return Field{Name: name, Type: d}
}

// Reserved returns an unnamed padding field.
func Reserved(bits uint32) Field {
	return Field{Type: Pad(bits)}
}

// Struct lays out fields back to back in declaration order.
func Struct(name string, fields ...Field) *Descriptor {
	d := &Descriptor{
		Kind:   KindStruct,
		Name:   name,
		Fields: append([]Field(nil), fields...),
	}
	layout.Compute(d)
	return d
}

// Tuple lays out 2..16 positional elements back to back.
func Tuple(elems ...*Descriptor) *Descriptor {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Type: e}
	}
	d := &Descriptor{Kind: KindTuple, Fields: fields}
	layout.Compute(d)
	return d
}

// Array repeats elem n times.
func Array(elem *Descriptor, n uint32) *Descriptor {
	d := &Descriptor{Kind: KindArray, Elem: elem, Len: n}
	layout.Compute(d)
	return d
}

// Enum declares a discriminant of tagBits followed by the active variant's payload.
func Enum(name string, tagBits uint32, policy Policy, variants ...Variant) *Descriptor {
	d := &Descriptor{
		Kind:     KindEnum,
		Name:     name,
		TagBits:  tagBits,
		Policy:   policy,
		Variants: append([]Variant(nil), variants...),
	}
	layout.Compute(d)
	return d
}

// Case is a payload-less variant mapped to value.
func Case(name string, value uint64) Variant {
	return Variant{Name: name, Value: value}
}

// CaseWith is a variant mapped to value carrying payload after the discriminant.
func CaseWith(name string, value uint64, payload *Descriptor) Variant {
	return Variant{Name: name, Value: value, Payload: payload}
}

// Fallback is the catch-all variant that keeps unmapped raw values.
func Fallback(name string) Variant {
	return Variant{Name: name, Fallback: true}
}

// WithOrder returns a copy of d using the given byte order.
// Only byte-sized integers, floats and enum discriminants accept BigEndian.
func WithOrder(d *Descriptor, order ByteOrder) *Descriptor {
	cp := *d
	cp.Order = order
	return &cp
}

// BE is shorthand for WithOrder(d, BigEndian).
func BE(d *Descriptor) *Descriptor {
	return WithOrder(d, BigEndian)
}

// Rename returns a copy of d with a different name.
func Rename(d *Descriptor, name string) *Descriptor {
	cp := *d
	cp.Name = name
	return &cp
}

// Validate checks d and its children against the layout rules.
func Validate(d *Descriptor) error {
	return layout.Validate(d)
}

// isPadLike reports whether d carries no value: padding or arrays of padding.
func isPadLike(d *types.Descriptor) bool {
	for d != nil {
		switch d.Kind {
		case KindPad:
			return true
		case KindArray:
			d = d.Elem
		default:
			return false
		}
	}
	return false
}
