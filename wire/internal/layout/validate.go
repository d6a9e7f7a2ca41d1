package layout

import (
	"strconv"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/types"
)

const (
	MinTupleArity = 2
	MaxTupleArity = 16
)

// Validate checks d and all of its children. Violations are reported as
// compile-phase InvalidSchema errors carrying the offending path.
func Validate(d *types.Descriptor) error {
	return validate(d, nil)
}

func invalid(path []string, detail string, args ...any) error {
	return errors.InvalidSchema(errors.PhaseCompile, path, detail, args...)
}

func child(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}

func validate(d *types.Descriptor, path []string) error {
	if d == nil {
		return invalid(path, "nil descriptor")
	}
	if d.Bits == Overflow {
		return invalid(path, "packed width overflows 32 bits")
	}
	if d.Order == bitio.BigEndian {
		switch d.Kind {
		case types.KindUint, types.KindInt, types.KindFloat32, types.KindFloat64:
			if d.Bits%8 != 0 {
				return invalid(path, "big-endian %s is not byte-sized", d.WireName())
			}
		case types.KindEnum:
			if d.TagBits%8 != 0 {
				return invalid(path, "big-endian discriminant of %d bits is not byte-sized", d.TagBits)
			}
		default:
			return invalid(path, "byte order does not apply to %s", d.Kind)
		}
	}

	switch d.Kind {
	case types.KindBool:
		if d.Bits != 1 {
			return invalid(path, "bool must be 1 bit, got %d", d.Bits)
		}
	case types.KindUint, types.KindInt:
		if d.Bits < 1 || d.Bits > bitio.MaxAccess {
			return invalid(path, "integer width %d outside 1..64", d.Bits)
		}
	case types.KindFloat32:
		if d.Bits != 32 {
			return invalid(path, "f32 must be 32 bits, got %d", d.Bits)
		}
	case types.KindFloat64:
		if d.Bits != 64 {
			return invalid(path, "f64 must be 64 bits, got %d", d.Bits)
		}
	case types.KindPad:
		if d.Bits < 1 {
			return invalid(path, "padding must be at least 1 bit")
		}
	case types.KindStruct:
		return validateStruct(d, path)
	case types.KindTuple:
		return validateTuple(d, path)
	case types.KindArray:
		if d.Elem == nil {
			return invalid(path, "array has no element type")
		}
		if d.Len < 1 {
			return invalid(path, "array length must be at least 1")
		}
		return validate(d.Elem, child(path, "[]"))
	case types.KindEnum:
		return validateEnum(d, path)
	default:
		return invalid(path, "unknown kind %d", d.Kind)
	}
	return nil
}

func validateStruct(d *types.Descriptor, path []string) error {
	if len(d.Fields) == 0 {
		return invalid(path, "struct %q has no fields", d.Name)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		name := f.Name
		if name == "" {
			if f.Type == nil || f.Type.Kind != types.KindPad {
				return invalid(path, "field %d has no name", i)
			}
			name = "[" + strconv.Itoa(i) + "]"
		} else {
			if _, dup := seen[name]; dup {
				return invalid(path, "duplicate field %q", name)
			}
			seen[name] = struct{}{}
		}
		if err := validate(f.Type, child(path, name)); err != nil {
			return err
		}
	}
	return nil
}

func validateTuple(d *types.Descriptor, path []string) error {
	if n := len(d.Fields); n < MinTupleArity || n > MaxTupleArity {
		return invalid(path, "tuple arity %d outside %d..%d", n, MinTupleArity, MaxTupleArity)
	}
	for i, f := range d.Fields {
		if err := validate(f.Type, child(path, "["+strconv.Itoa(i)+"]")); err != nil {
			return err
		}
	}
	return nil
}

func validateEnum(d *types.Descriptor, path []string) error {
	if d.TagBits < 1 || d.TagBits > bitio.MaxAccess {
		return invalid(path, "discriminant width %d outside 1..64", d.TagBits)
	}
	if len(d.Variants) == 0 {
		return invalid(path, "enum %q has no variants", d.Name)
	}
	limit := bitio.MaxUnsigned(uint(d.TagBits))
	names := make(map[string]struct{}, len(d.Variants))
	values := make(map[uint64]string, len(d.Variants))
	fallbacks := 0
	for _, v := range d.Variants {
		if v.Name == "" {
			return invalid(path, "variant with empty name")
		}
		if _, dup := names[v.Name]; dup {
			return invalid(path, "duplicate variant %q", v.Name)
		}
		names[v.Name] = struct{}{}

		if v.Fallback {
			fallbacks++
			if v.Payload != nil {
				return invalid(path, "fallback variant %q cannot carry a payload", v.Name)
			}
			continue
		}
		if v.Value > limit {
			return invalid(path, "variant %q value %d does not fit %d-bit discriminant", v.Name, v.Value, d.TagBits)
		}
		if prev, dup := values[v.Value]; dup {
			return invalid(path, "variants %q and %q share discriminant %d", prev, v.Name, v.Value)
		}
		values[v.Value] = v.Name
		if v.Payload != nil {
			if err := validate(v.Payload, child(path, v.Name)); err != nil {
				return err
			}
		}
	}

	switch d.Policy {
	case types.StrictError:
		if fallbacks > 0 {
			return invalid(path, "strict enum %q declares a fallback variant", d.Name)
		}
	case types.CatchAll:
		if fallbacks != 1 {
			return invalid(path, "catch-all enum %q needs exactly one fallback variant, has %d", d.Name, fallbacks)
		}
	default:
		return invalid(path, "unknown discriminant policy %d", d.Policy)
	}
	return nil
}
