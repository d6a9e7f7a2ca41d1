package layout

import (
	"testing"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/types"
)

func uint_(bits uint32) *types.Descriptor {
	return &types.Descriptor{Kind: types.KindUint, Bits: bits}
}

func boolean() *types.Descriptor {
	return &types.Descriptor{Kind: types.KindBool, Bits: 1}
}

func pad(bits uint32) *types.Descriptor {
	return &types.Descriptor{Kind: types.KindPad, Bits: bits}
}

func structOf(fields ...types.Field) *types.Descriptor {
	d := &types.Descriptor{Kind: types.KindStruct, Name: "s", Fields: fields}
	Compute(d)
	return d
}

func TestComputeStruct(t *testing.T) {
	d := structOf(
		types.Field{Name: "flag", Type: boolean()},
		types.Field{Name: "mode", Type: uint_(3)},
		types.Field{Name: "reserved", Type: uint_(4)},
		types.Field{Name: "count", Type: uint_(11)},
	)

	wantOffs := []uint32{0, 1, 4, 8}
	for i, f := range d.Fields {
		if f.Offset != wantOffs[i] {
			t.Errorf("field %s offset = %d, want %d", f.Name, f.Offset, wantOffs[i])
		}
	}
	if d.Bits != 19 {
		t.Errorf("bits = %d, want 19", d.Bits)
	}
	if d.ByteWidth() != 3 {
		t.Errorf("bytes = %d, want 3", d.ByteWidth())
	}
}

func TestComputeArray(t *testing.T) {
	d := &types.Descriptor{Kind: types.KindArray, Elem: uint_(3), Len: 5}
	Compute(d)
	if d.Bits != 15 {
		t.Errorf("bits = %d, want 15", d.Bits)
	}
	if off := FieldOffset(d, 4); off != 12 {
		t.Errorf("element 4 offset = %d, want 12", off)
	}
	s := structOf(types.Field{Name: "a", Type: uint_(3)}, types.Field{Name: "b", Type: uint_(5)})
	if off := FieldOffset(s, 1); off != 3 {
		t.Errorf("field b offset = %d, want 3", off)
	}
}

func TestComputeEnum(t *testing.T) {
	payload := structOf(types.Field{Name: "x", Type: uint_(12)})
	d := &types.Descriptor{
		Kind:    types.KindEnum,
		TagBits: 4,
		Policy:  types.CatchAll,
		Variants: []types.Variant{
			{Name: "b", Value: 9},
			{Name: "a", Value: 2, Payload: payload},
			{Name: "other", Fallback: true},
		},
	}
	Compute(d)

	if d.Bits != 16 {
		t.Errorf("bits = %d, want 16", d.Bits)
	}
	if d.Fallback != 2 {
		t.Errorf("fallback = %d, want 2", d.Fallback)
	}
	if len(d.ByValue) != 2 || d.ByValue[0] != 1 || d.ByValue[1] != 0 {
		t.Errorf("ByValue = %v, want [1 0]", d.ByValue)
	}
}

func TestComputeOverflow(t *testing.T) {
	d := &types.Descriptor{Kind: types.KindArray, Elem: uint_(64), Len: 1 << 27}
	Compute(d)
	if d.Bits != Overflow {
		t.Fatalf("bits = %d, want overflow marker", d.Bits)
	}
	if err := Validate(d); !errors.IsKind(err, errors.KindInvalidSchema) {
		t.Errorf("Validate = %v, want invalid_schema", err)
	}
}

func TestValidate(t *testing.T) {
	enum := func(policy types.Policy, tag uint32, vs ...types.Variant) *types.Descriptor {
		d := &types.Descriptor{Kind: types.KindEnum, Name: "e", TagBits: tag, Policy: policy, Variants: vs}
		Compute(d)
		return d
	}
	tuple := func(n int) *types.Descriptor {
		fields := make([]types.Field, n)
		for i := range fields {
			fields[i] = types.Field{Type: uint_(2)}
		}
		d := &types.Descriptor{Kind: types.KindTuple, Fields: fields}
		Compute(d)
		return d
	}

	tests := []struct {
		d    *types.Descriptor
		name string
		ok   bool
	}{
		{name: "valid_struct", ok: true, d: structOf(
			types.Field{Name: "a", Type: uint_(3)},
			types.Field{Type: pad(5)},
		)},
		{name: "nil", d: nil},
		{name: "zero_width_uint", d: uint_(0)},
		{name: "wide_uint", d: uint_(65)},
		{name: "be_u12", d: &types.Descriptor{Kind: types.KindUint, Bits: 12, Order: bitio.BigEndian}},
		{name: "be_u16", ok: true, d: &types.Descriptor{Kind: types.KindUint, Bits: 16, Order: bitio.BigEndian}},
		{name: "be_struct", d: &types.Descriptor{Kind: types.KindStruct, Order: bitio.BigEndian}},
		{name: "empty_struct", d: structOf()},
		{name: "duplicate_field", d: structOf(
			types.Field{Name: "a", Type: uint_(1)},
			types.Field{Name: "a", Type: uint_(1)},
		)},
		{name: "unnamed_field", d: structOf(types.Field{Type: uint_(1)})},
		{name: "nil_field", d: structOf(types.Field{Name: "a"})},
		{name: "tuple_1", d: tuple(1)},
		{name: "tuple_2", ok: true, d: tuple(2)},
		{name: "tuple_16", ok: true, d: tuple(16)},
		{name: "tuple_17", d: tuple(17)},
		{name: "array_empty", d: &types.Descriptor{Kind: types.KindArray, Elem: uint_(8)}},
		{name: "array_nil_elem", d: &types.Descriptor{Kind: types.KindArray, Len: 2}},
		{name: "strict_enum", ok: true, d: enum(types.StrictError, 2,
			types.Variant{Name: "a", Value: 0},
			types.Variant{Name: "b", Value: 3},
		)},
		{name: "duplicate_value", d: enum(types.StrictError, 2,
			types.Variant{Name: "a", Value: 1},
			types.Variant{Name: "b", Value: 1},
		)},
		{name: "duplicate_name", d: enum(types.StrictError, 2,
			types.Variant{Name: "a", Value: 1},
			types.Variant{Name: "a", Value: 2},
		)},
		{name: "value_too_wide", d: enum(types.StrictError, 2,
			types.Variant{Name: "a", Value: 4},
		)},
		{name: "strict_with_fallback", d: enum(types.StrictError, 2,
			types.Variant{Name: "a", Value: 1},
			types.Variant{Name: "other", Fallback: true},
		)},
		{name: "catch_all_without_fallback", d: enum(types.CatchAll, 2,
			types.Variant{Name: "a", Value: 1},
		)},
		{name: "catch_all_two_fallbacks", d: enum(types.CatchAll, 2,
			types.Variant{Name: "x", Fallback: true},
			types.Variant{Name: "y", Fallback: true},
		)},
		{name: "fallback_with_payload", d: enum(types.CatchAll, 2,
			types.Variant{Name: "x", Fallback: true, Payload: uint_(3)},
		)},
		{name: "catch_all", ok: true, d: enum(types.CatchAll, 4,
			types.Variant{Name: "init", Value: 1},
			types.Variant{Name: "other", Fallback: true},
		)},
		{name: "zero_tag", d: enum(types.StrictError, 0, types.Variant{Name: "a"})},
		{name: "no_variants", d: enum(types.StrictError, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.d)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, &errors.Error{Phase: errors.PhaseCompile, Kind: errors.KindInvalidSchema}) {
					t.Errorf("error = %v, want compile invalid_schema", err)
				}
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	inner := structOf(types.Field{Name: "mode", Type: uint_(70)})
	outer := structOf(types.Field{Name: "status", Type: inner})

	err := Validate(outer)
	e, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if len(e.Path) != 2 || e.Path[0] != "status" || e.Path[1] != "mode" {
		t.Errorf("path = %v, want [status mode]", e.Path)
	}
}
