package layoutfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire"
)

func TestLoadFormats(t *testing.T) {
	for _, path := range []string{"testdata/status.yaml", "testdata/status.toml"} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			r, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			wantNames := []string{"al-control", "nibbles", "slave-state", "word-pair"}
			if !reflect.DeepEqual(r.Names(), wantNames) {
				t.Errorf("Names() = %v, want %v", r.Names(), wantNames)
			}

			al, err := r.Get("al-control")
			if err != nil {
				t.Fatal(err)
			}
			if al.Bits != 16 || al.Kind != wire.KindStruct {
				t.Errorf("al-control = %s", al)
			}

			buf, err := wire.PackValue(al, map[string]any{
				"state":      "safe-op",
				"error":      true,
				"id-request": false,
			})
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf, []byte{0x14, 0x00}) {
				t.Errorf("al-control packed % x, want 14 00", buf)
			}

			pair, _ := r.Lookup("word-pair")
			buf, err = wire.PackValue(pair, []any{0x1234, 0x1234})
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf, []byte{0x12, 0x34, 0x34, 0x12}) {
				t.Errorf("word-pair packed % x", buf)
			}

			nibbles, _ := r.Lookup("nibbles")
			if nibbles.Kind != wire.KindArray || nibbles.Len != 3 || nibbles.Elem.Len != 2 || nibbles.Bits != 24 {
				t.Errorf("nibbles = %s", nibbles)
			}
		})
	}
}

func TestYAMLAndTOMLAgree(t *testing.T) {
	y, err := Load("testdata/status.yaml")
	if err != nil {
		t.Fatal(err)
	}
	m, err := Load("testdata/status.toml")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range y.Names() {
		a, _ := y.Lookup(name)
		b, ok := m.Lookup(name)
		if !ok {
			t.Fatalf("toml lacks %s", name)
		}
		if !reflect.DeepEqual(wire.Leaves(a), wire.Leaves(b)) {
			t.Errorf("%s differs between formats", name)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		kind   errors.Kind
		detail string
	}{
		{"unknown_reference", `
layouts:
  a:
    fields:
      - {name: x, type: missing}
`, errors.KindInvalidSchema, `unknown layout "missing"`},
		{"cycle", `
layouts:
  a:
    fields:
      - {name: b, type: b}
  b:
    fields:
      - {name: a, type: a}
`, errors.KindInvalidSchema, "cycle"},
		{"self_array_cycle", `
layouts:
  a:
    type: "a[2]"
`, errors.KindInvalidSchema, "cycle"},
		{"two_forms", `
layouts:
  a:
    type: u8
    tuple: [u8, u8]
`, errors.KindInvalidSchema, "more than one"},
		{"no_form", `
layouts:
  a:
    doc: nothing
`, errors.KindInvalidSchema, "declares no type"},
		{"unknown_key", `
layouts:
  a:
    type: u8
    colour: red
`, errors.KindInvalidSchema, "decode yaml"},
		{"bad_policy", `
layouts:
  a:
    enum: {bits: 2, unknown: maybe, variants: [{name: x, value: 1}]}
`, errors.KindInvalidSchema, "policy"},
		{"bad_order", `
layouts:
  a:
    enum: {bits: 8, order: middle, variants: [{name: x, value: 1}]}
`, errors.KindInvalidSchema, "byte order"},
		{"bad_width", `
layouts:
  a:
    type: u65
`, errors.KindInvalidSchema, "outside 1..64"},
		{"bad_array", `
layouts:
  a:
    type: "u8[0]"
`, errors.KindInvalidSchema, "array length"},
		{"be_nibble", `
layouts:
  a:
    type: "be:u4"
`, errors.KindInvalidSchema, "big-endian"},
		{"tuple_arity", `
layouts:
  a:
    tuple: [u8]
`, errors.KindInvalidSchema, "arity"},
		{"catch_all_without_fallback", `
layouts:
  a:
    enum: {bits: 2, unknown: catch-all, variants: [{name: x, value: 1}]}
`, errors.KindInvalidSchema, "fallback"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), FormatYAML)
			e, ok := errors.As(err)
			if !ok {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != tc.kind || e.Phase != errors.PhaseLoad {
				t.Errorf("err = %v, want load %s", err, tc.kind)
			}
			if !strings.Contains(err.Error(), tc.detail) {
				t.Errorf("err %q lacks %q", err, tc.detail)
			}
		})
	}
}

func TestParseTOMLUndecoded(t *testing.T) {
	doc := `
[layouts.a]
type = "u8"
colour = "red"
`
	_, err := Parse([]byte(doc), FormatTOML)
	if !errors.IsKind(err, errors.KindFieldUnknown) {
		t.Errorf("err = %v, want field_unknown", err)
	}
}

func TestParseWithBase(t *testing.T) {
	base, err := Parse([]byte("layouts:\n  flags:\n    tuple: [bool, bool]\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	doc := []byte("layouts:\n  frame:\n    fields:\n      - {name: f, type: \"flags[2]\"}\n      - {type: pad4}\n")

	if _, err := Parse(doc, FormatYAML); err == nil {
		t.Fatal("reference to base layout resolved without a base")
	}
	r, err := Parse(doc, FormatYAML, WithBase(base))
	if err != nil {
		t.Fatal(err)
	}
	if r.Names()[0] != "frame" || r.Len() != 1 {
		t.Errorf("names = %v", r.Names())
	}
	frame, _ := r.Lookup("frame")
	if frame.Bits != 8 {
		t.Errorf("frame bits = %d, want 8", frame.Bits)
	}

	merged, err := base.Merge(r)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Len() != 2 {
		t.Errorf("merged len = %d", merged.Len())
	}
	if _, err := merged.Merge(base); !errors.IsKind(err, errors.KindInvalidSchema) {
		t.Errorf("duplicate merge: %v", err)
	}

	override, err := Parse([]byte("layouts:\n  flags:\n    type: u3\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	extended, err := merged.Extend(override)
	if err != nil {
		t.Fatal(err)
	}
	if flags, _ := extended.Lookup("flags"); extended.Len() != 2 || flags.Bits != 3 {
		t.Errorf("extended = %v, flags = %s", extended.Names(), flags)
	}
}

func TestRegistryResolve(t *testing.T) {
	r, err := Load("testdata/status.yaml")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		expr string
		bits uint32
		name string
	}{
		{"u11", 11, "u11"},
		{"be:u32", 32, "be:u32"},
		{"al-control[2]", 32, "al-control[2]"},
		{"slave-state", 4, "slave-state"},
		{"bool[3]", 3, "bool[3]"},
		{"f64", 64, "f64"},
		{"i7", 7, "i7"},
	}
	for _, tc := range tests {
		d, err := r.Resolve(tc.expr)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tc.expr, err)
			continue
		}
		if d.Bits != tc.bits || d.WireName() != tc.name {
			t.Errorf("Resolve(%q) = %s (%d bits), want %s (%d bits)", tc.expr, d.WireName(), d.Bits, tc.name, tc.bits)
		}
	}

	for _, bad := range []string{"", "nope", "u8[", "u8[x]", "be:bool"} {
		if _, err := r.Resolve(bad); err == nil {
			t.Errorf("Resolve(%q) should fail", bad)
		}
	}

	if _, err := r.Get("nope"); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("Get(nope) = %v", err)
	}
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layouts.yml")
	if err := os.WriteFile(path, []byte("layouts:\n  b:\n    type: u8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 1 {
		t.Errorf("len = %d", r.Len())
	}

	if _, err := Load(filepath.Join(dir, "layouts.json")); !errors.IsKind(err, errors.KindUnsupported) {
		t.Errorf("json extension: %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("missing file: %v", err)
	}

	empty, err := Parse(nil, FormatYAML)
	if err != nil || empty.Len() != 0 {
		t.Errorf("empty document: %v, %d", err, empty.Len())
	}
}

func TestNewRegistryValidates(t *testing.T) {
	_, err := NewRegistry(map[string]*wire.Descriptor{"bad": wire.Uint(0)})
	e, ok := errors.As(err)
	if !ok || e.Phase != errors.PhaseLoad || len(e.Path) == 0 || e.Path[0] != "bad" {
		t.Errorf("err = %v", err)
	}
}
