package wire

import (
	"reflect"
	"testing"

	"github.com/wippyai/bitwire/errors"
)

func TestToKebabCase(t *testing.T) {
	tests := map[string]string{
		"Flag":        "flag",
		"MoreFollows": "more-follows",
		"IDRequest":   "id-request",
		"SafeOp":      "safe-op",
		"PDUHeader":   "pdu-header",
		"IRQ":         "irq",
		"U16Value":    "u16-value",
	}
	for in, want := range tests {
		if got := toKebabCase(in); got != want {
			t.Errorf("toKebabCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindGoField(t *testing.T) {
	type sample struct {
		Tagged    uint8 `wire:"renamed"`
		Skipped   uint8 `wire:"-"`
		Code      uint8 `wire:",tag"`
		MoreBits  uint8
		Lowercase uint8
		hidden    uint8 //nolint:unused
	}
	goType := reflect.TypeOf(sample{})

	tests := []struct {
		wireName string
		goName   string
		found    bool
	}{
		{"renamed", "Tagged", true},
		{"tagged", "", false},
		{"skipped", "", false},
		{"code", "", false},
		{"more-bits", "MoreBits", true},
		{"LOWERCASE", "Lowercase", true},
		{"hidden", "", false},
	}
	for _, tc := range tests {
		f, ok := findGoField(goType, tc.wireName)
		if ok != tc.found {
			t.Errorf("findGoField(%q) found = %v, want %v", tc.wireName, ok, tc.found)
			continue
		}
		if ok && f.Name != tc.goName {
			t.Errorf("findGoField(%q) = %s, want %s", tc.wireName, f.Name, tc.goName)
		}
	}

	if f, ok := findTagField(goType); !ok || f.Name != "Code" {
		t.Errorf("findTagField = %s, %v", f.Name, ok)
	}
}

func TestCompileErrors(t *testing.T) {
	type narrow struct{ Mode uint8 }
	type signed struct{ Mode int16 }
	type missing struct{ Other uint8 }
	type tag struct {
		Tag uint16
	}
	type shortTag struct {
		Tag     uint8
		Logical uint8
	}

	tests := []struct {
		name    string
		compile func() error
		kind    errors.Kind
	}{
		{"narrow_go_int", func() error {
			_, err := Compile[narrow](Struct("s", Named("mode", Uint(9))))
			return err
		}, errors.KindTypeMismatch},
		{"signed_for_uint", func() error {
			_, err := Compile[signed](Struct("s", Named("mode", Uint(4))))
			return err
		}, errors.KindTypeMismatch},
		{"unsigned_for_int", func() error {
			_, err := Compile[narrow](Struct("s", Named("mode", Int(4))))
			return err
		}, errors.KindTypeMismatch},
		{"missing_field", func() error {
			_, err := Compile[missing](Struct("s", Named("mode", Uint(4))))
			return err
		}, errors.KindFieldMissing},
		{"struct_for_uint", func() error {
			_, err := Compile[narrow](Uint(4))
			return err
		}, errors.KindTypeMismatch},
		{"array_len", func() error {
			_, err := Compile[[3]uint8](Array(Uint(4), 2))
			return err
		}, errors.KindTypeMismatch},
		{"tuple_count", func() error {
			_, err := Compile[[3]uint8](Tuple(Uint(4), Uint(4)))
			return err
		}, errors.KindTypeMismatch},
		{"payload_into_int", func() error {
			_, err := Compile[uint8](commandLayout)
			return err
		}, errors.KindTypeMismatch},
		{"enum_without_tag", func() error {
			_, err := Compile[missing](commandLayout)
			return err
		}, errors.KindFieldMissing},
		{"enum_missing_payload", func() error {
			_, err := Compile[tag](commandLayout)
			return err
		}, errors.KindFieldMissing},
		{"enum_tag_too_narrow", func() error {
			_, err := Compile[shortTag](Enum("e", 12, StrictError, CaseWith("logical", 1, Uint(8))))
			return err
		}, errors.KindTypeMismatch},
		{"invalid_schema", func() error {
			_, err := Compile[uint8](Enum("e", 2, StrictError, Case("a", 1), Case("b", 1)))
			return err
		}, errors.KindInvalidSchema},
		{"float_kind", func() error {
			_, err := Compile[float64](Float32())
			return err
		}, errors.KindTypeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.compile()
			if !errors.IsKind(err, tc.kind) {
				t.Fatalf("err = %v, want %s", err, tc.kind)
			}
			if e, _ := errors.As(err); e.Phase != errors.PhaseCompile {
				t.Errorf("phase = %s, want compile", e.Phase)
			}
		})
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewCompiler()
	a, err := CompileWith[status](c, statusLayout)
	if err != nil {
		t.Fatal(err)
	}
	b, err := CompileWith[status](c, statusLayout)
	if err != nil {
		t.Fatal(err)
	}
	if a.root != b.root {
		t.Error("second compile did not reuse the cached binding")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic")
		}
	}()
	MustCompile[bool](Uint(4))
}

func TestSharedPayloadField(t *testing.T) {
	addr := Struct("physical", Named("station", Uint(16)))
	d := Enum("cmd", 8, StrictError,
		CaseWith("aprd", 1, addr),
		CaseWith("fprd", 4, addr),
		CaseWith("lrd", 10, Uint(32)),
	)
	type physical struct{ Station uint16 }
	type cmd struct {
		Code     uint8 `wire:",tag"`
		Physical physical
		Lrd      uint32
	}
	codec := MustCompile[cmd](d)

	v := cmd{Code: 4, Physical: physical{Station: 0x1234}}
	buf, err := codec.Pack(&v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := codec.UnpackFrom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != v {
		t.Errorf("got %+v, want %+v", got, v)
	}
}
