package wire

import (
	"math"
	"sort"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/layout"
	"github.com/wippyai/bitwire/wire/internal/types"
)

// EnumValue is the dynamic form of an enum. Variant names the case; Raw is
// the discriminant as written on the wire. Payload is nil for payload-less
// variants.
type EnumValue struct {
	Payload any    `yaml:"payload,omitempty" cbor:"payload,omitempty"`
	Variant string `yaml:"variant" cbor:"variant"`
	Raw     uint64 `yaml:"raw" cbor:"raw"`
}

// Pack writes a dynamic value laid out as d into dst, zero-filling the
// first ByteWidth bytes. Accepted values:
//
//	bool                  -> bool (also 0 or 1)
//	uint / int kinds      -> any Go integer, or an integral float64
//	f32 / f64             -> any Go number
//	struct                -> map[string]any keyed by field name
//	tuple / array         -> []any, pads take any placeholder
//	enum                  -> EnumValue, variant name, raw integer, or a
//	                         map with variant/raw/payload keys
//
// Pack validates d on every call and allocates; use Codec for hot paths.
func Pack(d *Descriptor, v any, dst []byte) error {
	if err := layout.Validate(d); err != nil {
		return err
	}
	if err := bitio.ZeroFill(dst, uint64(d.Bits)); err != nil {
		return err
	}
	c := bitio.MakeCursor(dst)
	return packValue(&c, d, v)
}

// PackValue is Pack into a freshly allocated buffer.
func PackValue(d *Descriptor, v any) ([]byte, error) {
	if err := layout.Validate(d); err != nil {
		return nil, err
	}
	buf := make([]byte, d.ByteWidth())
	c := bitio.MakeCursor(buf)
	if err := packValue(&c, d, v); err != nil {
		return nil, err
	}
	return buf, nil
}

// Unpack reads a dynamic value laid out as d from the start of src.
// Struct fields come back as map[string]any without padding, tuples and
// arrays as []any (nil at pad positions), enums as EnumValue.
func Unpack(d *Descriptor, src []byte) (any, error) {
	if err := layout.Validate(d); err != nil {
		return nil, err
	}
	c := bitio.MakeCursor(src)
	if need := uint64(d.Bits); need > c.Len() {
		return nil, errors.BufferTooSmall(errors.PhaseUnpack, nil, need, c.Len())
	}
	return unpackValue(&c, d)
}

func mismatch(v any, want string) error {
	return errors.TypeMismatch(errors.PhasePack, nil, bitio.TypeName(v), want)
}

// integerMismatch classifies a value the integer coercions rejected. Whole
// numbers outside the int64/uint64 range are out of range, anything else is
// the wrong type.
func integerMismatch(v any, d *types.Descriptor, limit uint64) error {
	if _, isBool := v.(bool); !isBool {
		if f, ok := bitio.CoerceToFloat64(v); ok && f == math.Trunc(f) {
			return errors.ValueOutOfRange(errors.PhasePack, nil, v, limit)
		}
	}
	return mismatch(v, d.WireName())
}

func packValue(c *bitio.Cursor, d *types.Descriptor, v any) error {
	switch d.Kind {
	case types.KindBool:
		b, ok := bitio.CoerceToBool(v)
		if !ok {
			return mismatch(v, "bool")
		}
		return writeBool(c, b)
	case types.KindUint:
		u, ok := bitio.CoerceToUint64(v)
		if !ok {
			return integerMismatch(v, d, bitio.MaxUnsigned(uint(d.Bits)))
		}
		return writeUint(c, d, u)
	case types.KindInt:
		i, ok := bitio.CoerceToInt64(v)
		if !ok {
			_, hi := bitio.SignedRange(uint(d.Bits))
			return integerMismatch(v, d, uint64(hi))
		}
		return writeInt(c, d, i)
	case types.KindFloat32:
		if f, ok := v.(float32); ok {
			return writeFloat32(c, d, f)
		}
		f, ok := bitio.CoerceToFloat64(v)
		if !ok {
			return mismatch(v, "f32")
		}
		return writeFloat32(c, d, float32(f))
	case types.KindFloat64:
		f, ok := bitio.CoerceToFloat64(v)
		if !ok {
			return mismatch(v, "f64")
		}
		return writeFloat64(c, d, f)
	case types.KindPad:
		return writePad(c, d)
	case types.KindStruct:
		return packStruct(c, d, v)
	case types.KindTuple:
		items, ok := v.([]any)
		if !ok || len(items) != len(d.Fields) {
			return mismatch(v, d.WireName())
		}
		for i, f := range d.Fields {
			if err := packValue(c, f.Type, items[i]); err != nil {
				return errors.Within(err, indexName(i))
			}
		}
		return nil
	case types.KindArray:
		if isPadLike(d) {
			return writePad(c, d)
		}
		items, ok := v.([]any)
		if !ok || len(items) != int(d.Len) {
			return mismatch(v, d.WireName())
		}
		for i, item := range items {
			if err := packValue(c, d.Elem, item); err != nil {
				return errors.Within(err, indexName(i))
			}
		}
		return nil
	case types.KindEnum:
		return packEnumValue(c, d, v)
	}
	return errors.Unsupported(errors.PhasePack, d.Kind.String())
}

func packStruct(c *bitio.Cursor, d *types.Descriptor, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return mismatch(v, d.WireName())
	}

	var unknown []string
	for k := range m {
		if idx, found := d.FieldByName(k); !found || isPadLike(d.Fields[idx].Type) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.FieldUnknown(errors.PhasePack, nil, unknown[0])
	}

	for _, f := range d.Fields {
		if isPadLike(f.Type) {
			if err := writePad(c, f.Type); err != nil {
				return err
			}
			continue
		}
		fv, found := m[f.Name]
		if !found {
			return errors.FieldMissing(errors.PhasePack, nil, f.Name)
		}
		if err := packValue(c, f.Type, fv); err != nil {
			return errors.Within(err, f.Name)
		}
	}
	return nil
}

// enumInput normalises the accepted enum value forms.
func enumInput(d *types.Descriptor, v any) (EnumValue, error) {
	switch ev := v.(type) {
	case EnumValue:
		return ev, nil
	case *EnumValue:
		if ev != nil {
			return *ev, nil
		}
	case string:
		return EnumValue{Variant: ev}, nil
	case map[string]any:
		var out EnumValue
		for k, val := range ev {
			switch k {
			case "variant":
				s, ok := val.(string)
				if !ok {
					return out, mismatch(val, "string")
				}
				out.Variant = s
			case "raw":
				raw, ok := bitio.CoerceToUint64(val)
				if !ok {
					return out, mismatch(val, "uint")
				}
				out.Raw = raw
			case "payload":
				out.Payload = val
			default:
				return out, errors.FieldUnknown(errors.PhasePack, nil, k)
			}
		}
		return out, nil
	default:
		if raw, ok := bitio.CoerceToUint64(v); ok {
			return EnumValue{Raw: raw}, nil
		}
	}
	return EnumValue{}, mismatch(v, enumName(d))
}

func packEnumValue(c *bitio.Cursor, d *types.Descriptor, v any) error {
	ev, err := enumInput(d, v)
	if err != nil {
		return err
	}

	raw := ev.Raw
	if ev.Variant != "" {
		idx, ok := d.VariantByName(ev.Variant)
		if !ok {
			return errors.New(errors.PhasePack, errors.KindInvalidDiscriminant).
				WireType(enumName(d)).
				Value(ev.Variant).
				Detail("enum %s has no variant %q", enumName(d), ev.Variant).
				Build()
		}
		if !d.Variants[idx].Fallback {
			raw = d.Variants[idx].Value
		} else if mapped, taken := d.Lookup(raw); taken {
			return errors.New(errors.PhasePack, errors.KindInvalidDiscriminant).
				WireType(enumName(d)).
				Value(raw).
				Detail("discriminant %d belongs to variant %q, not %q", raw, d.Variants[mapped].Name, ev.Variant).
				Build()
		}
	}

	idx, err := resolveVariant(d, raw, errors.PhasePack)
	if err != nil {
		return err
	}
	if err := writeTag(c, d, raw); err != nil {
		return err
	}
	if p := d.Variants[idx].Payload; p != nil {
		if err := packValue(c, p, ev.Payload); err != nil {
			return errors.Within(err, d.Variants[idx].Name)
		}
	}
	return writeTail(c, d, idx)
}

func unpackValue(c *bitio.Cursor, d *types.Descriptor) (any, error) {
	switch d.Kind {
	case types.KindBool:
		return readBool(c)
	case types.KindUint:
		return readUint(c, d)
	case types.KindInt:
		return readInt(c, d)
	case types.KindFloat32:
		return readFloat32(c, d)
	case types.KindFloat64:
		return readFloat64(c, d)
	case types.KindPad:
		return nil, skipPad(c, d)
	case types.KindStruct:
		m := make(map[string]any, len(d.Fields))
		for _, f := range d.Fields {
			if isPadLike(f.Type) {
				if err := skipPad(c, f.Type); err != nil {
					return nil, err
				}
				continue
			}
			fv, err := unpackValue(c, f.Type)
			if err != nil {
				return nil, errors.Within(err, f.Name)
			}
			m[f.Name] = fv
		}
		return m, nil
	case types.KindTuple:
		items := make([]any, len(d.Fields))
		for i, f := range d.Fields {
			fv, err := unpackValue(c, f.Type)
			if err != nil {
				return nil, errors.Within(err, indexName(i))
			}
			items[i] = fv
		}
		return items, nil
	case types.KindArray:
		if isPadLike(d) {
			return nil, skipPad(c, d)
		}
		items := make([]any, d.Len)
		for i := range items {
			fv, err := unpackValue(c, d.Elem)
			if err != nil {
				return nil, errors.Within(err, indexName(i))
			}
			items[i] = fv
		}
		return items, nil
	case types.KindEnum:
		raw, err := readTag(c, d)
		if err != nil {
			return nil, err
		}
		idx, err := resolveVariant(d, raw, errors.PhaseUnpack)
		if err != nil {
			return nil, err
		}
		ev := EnumValue{Variant: d.Variants[idx].Name, Raw: raw}
		if p := d.Variants[idx].Payload; p != nil {
			pv, err := unpackValue(c, p)
			if err != nil {
				return nil, errors.Within(err, ev.Variant)
			}
			ev.Payload = pv
		}
		if err := skipTail(c, d, idx); err != nil {
			return nil, err
		}
		return ev, nil
	}
	return nil, errors.Unsupported(errors.PhaseUnpack, d.Kind.String())
}
