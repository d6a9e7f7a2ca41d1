package wire

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/layout"
	"github.com/wippyai/bitwire/wire/internal/types"
	"go.uber.org/zap"
)

// binding pairs a validated descriptor with the Go memory layout it is
// packed from and unpacked into. Bindings are immutable once built.
type binding struct {
	desc   *types.Descriptor
	elem   *binding
	fields []fieldBinding
	cases  []caseBinding
	slots  []payloadSlot
	goSize uintptr
	stride uintptr
	// enum discriminant location inside the Go value
	tagOffset uintptr
	tagSize   uintptr
	skip      bool
}

type fieldBinding struct {
	b        *binding
	name     string
	goOffset uintptr
}

type caseBinding struct {
	b        *binding
	goOffset uintptr
	slot     int
}

// payloadSlot is a Go field holding some variant's payload. Slots of
// inactive variants are zeroed on unpack.
type payloadSlot struct {
	offset uintptr
	size   uintptr
}

// Compiler binds descriptors to Go types and caches the result.
// It is safe for concurrent use.
type Compiler struct {
	cache sync.Map // cacheKey -> *binding
}

type cacheKey struct {
	goType reflect.Type
	desc   *types.Descriptor
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

var defaultCompiler = NewCompiler()

func (c *Compiler) bindRoot(d *types.Descriptor, goType reflect.Type) (*binding, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Detail("Go type cannot be nil").
			Build()
	}
	key := cacheKey{goType: goType, desc: d}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*binding), nil
	}

	if err := layout.Validate(d); err != nil {
		return nil, err
	}
	b, err := c.bind(d, goType, nil)
	if err != nil {
		return nil, err
	}

	Logger().Debug("compiled wire binding",
		zap.String("wire", d.WireName()),
		zap.String("go", goType.String()),
		zap.Uint32("bits", d.Bits))

	actual, _ := c.cache.LoadOrStore(key, b)
	return actual.(*binding), nil
}

func childPath(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}

func indexName(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func (c *Compiler) bind(d *types.Descriptor, goType reflect.Type, path []string) (*binding, error) {
	if isPadLike(d) {
		return &binding{desc: d, skip: true}, nil
	}

	switch d.Kind {
	case types.KindBool:
		if goType.Kind() != reflect.Bool {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "bool")
		}
		return &binding{desc: d, goSize: goType.Size()}, nil
	case types.KindUint:
		if !isUnsigned(goType) || goType.Bits() < int(d.Bits) {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), d.WireName())
		}
		return &binding{desc: d, goSize: goType.Size()}, nil
	case types.KindInt:
		if !isSigned(goType) || goType.Bits() < int(d.Bits) {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), d.WireName())
		}
		return &binding{desc: d, goSize: goType.Size()}, nil
	case types.KindFloat32:
		if goType.Kind() != reflect.Float32 {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "f32")
		}
		return &binding{desc: d, goSize: 4}, nil
	case types.KindFloat64:
		if goType.Kind() != reflect.Float64 {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "f64")
		}
		return &binding{desc: d, goSize: 8}, nil
	case types.KindStruct:
		return c.bindStruct(d, goType, path)
	case types.KindTuple:
		return c.bindTuple(d, goType, path)
	case types.KindArray:
		return c.bindArray(d, goType, path)
	case types.KindEnum:
		return c.bindEnum(d, goType, path)
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported wire kind: %s", d.Kind).
			Build()
	}
}

func isUnsigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return true
	}
	return false
}

func isSigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return true
	}
	return false
}

func isInteger(t reflect.Type) bool {
	return isUnsigned(t) || isSigned(t)
}

func (c *Compiler) bindStruct(d *types.Descriptor, goType reflect.Type, path []string) (*binding, error) {
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct")
	}

	fields := make([]fieldBinding, len(d.Fields))
	for i, wf := range d.Fields {
		name := wf.Name
		if name == "" {
			name = indexName(i)
		}
		if isPadLike(wf.Type) {
			fields[i] = fieldBinding{b: &binding{desc: wf.Type, skip: true}, name: name}
			continue
		}

		goField, found := findGoField(goType, wf.Name)
		if !found {
			return nil, errors.FieldMissing(errors.PhaseCompile, path, wf.Name)
		}
		fb, err := c.bind(wf.Type, goField.Type, childPath(path, wf.Name))
		if err != nil {
			return nil, err
		}
		fields[i] = fieldBinding{b: fb, name: name, goOffset: goField.Offset}
	}

	return &binding{desc: d, goSize: goType.Size(), fields: fields}, nil
}

// bindTuple maps value-carrying elements positionally onto the exported
// fields of a Go struct, or onto the elements of a Go array.
func (c *Compiler) bindTuple(d *types.Descriptor, goType reflect.Type, path []string) (*binding, error) {
	var slots []reflect.StructField
	switch goType.Kind() {
	case reflect.Struct:
		for i := 0; i < goType.NumField(); i++ {
			f := goType.Field(i)
			if f.IsExported() && f.Tag.Get("wire") != "-" {
				slots = append(slots, f)
			}
		}
	case reflect.Array:
		for i := 0; i < goType.Len(); i++ {
			slots = append(slots, reflect.StructField{
				Type:   goType.Elem(),
				Offset: uintptr(i) * goType.Elem().Size(),
			})
		}
	default:
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct or array")
	}

	values := 0
	for _, wf := range d.Fields {
		if !isPadLike(wf.Type) {
			values++
		}
	}
	if values != len(slots) {
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Path(path...).
			GoType(goType.String()).
			WireType(d.WireName()).
			Detail("tuple has %d value elements but Go type has %d", values, len(slots)).
			Build()
	}

	fields := make([]fieldBinding, len(d.Fields))
	next := 0
	for i, wf := range d.Fields {
		name := indexName(i)
		if isPadLike(wf.Type) {
			fields[i] = fieldBinding{b: &binding{desc: wf.Type, skip: true}, name: name}
			continue
		}
		slot := slots[next]
		next++
		fb, err := c.bind(wf.Type, slot.Type, childPath(path, name))
		if err != nil {
			return nil, err
		}
		fields[i] = fieldBinding{b: fb, name: name, goOffset: slot.Offset}
	}

	return &binding{desc: d, goSize: goType.Size(), fields: fields}, nil
}

func (c *Compiler) bindArray(d *types.Descriptor, goType reflect.Type, path []string) (*binding, error) {
	if goType.Kind() != reflect.Array {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), d.WireName())
	}
	if goType.Len() != int(d.Len) {
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Path(path...).
			GoType(goType.String()).
			WireType(d.WireName()).
			Detail("array length %d, Go array has %d", d.Len, goType.Len()).
			Build()
	}

	elem, err := c.bind(d.Elem, goType.Elem(), childPath(path, "[]"))
	if err != nil {
		return nil, err
	}
	return &binding{
		desc:   d,
		elem:   elem,
		goSize: goType.Size(),
		stride: goType.Elem().Size(),
	}, nil
}

// bindEnum accepts an integer Go type holding the raw discriminant, or a
// struct with a tag field plus one field per payload variant. Payload fields
// are matched by variant name, then by payload descriptor name, so variants
// sharing a payload type can share a field.
func (c *Compiler) bindEnum(d *types.Descriptor, goType reflect.Type, path []string) (*binding, error) {
	cases := make([]caseBinding, len(d.Variants))
	for i := range cases {
		cases[i].slot = -1
	}

	if isInteger(goType) {
		if goType.Bits() < int(d.TagBits) {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), d.WireName())
		}
		for i, v := range d.Variants {
			if v.Payload == nil {
				continue
			}
			if !isPadLike(v.Payload) {
				return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
					Path(path...).
					GoType(goType.String()).
					WireType(d.WireName()).
					Detail("variant %q carries a payload; bind the enum to a struct", v.Name).
					Build()
			}
			cases[i].b = &binding{desc: v.Payload, skip: true}
		}
		return &binding{
			desc:    d,
			goSize:  goType.Size(),
			tagSize: goType.Size(),
			cases:   cases,
		}, nil
	}

	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "integer or struct")
	}

	tag, ok := findTagField(goType)
	if !ok {
		return nil, errors.FieldMissing(errors.PhaseCompile, path, "tag")
	}
	if !isInteger(tag.Type) || tag.Type.Bits() < int(d.TagBits) {
		return nil, errors.TypeMismatch(errors.PhaseCompile, childPath(path, "tag"), tag.Type.String(), "u"+strconv.Itoa(int(d.TagBits)))
	}

	var slots []payloadSlot
	slotOf := make(map[uintptr]int)
	for i, v := range d.Variants {
		if v.Payload == nil {
			continue
		}
		if isPadLike(v.Payload) {
			cases[i].b = &binding{desc: v.Payload, skip: true}
			continue
		}

		goField, found := findGoField(goType, v.Name)
		if !found && v.Payload.Name != "" {
			goField, found = findGoField(goType, v.Payload.Name)
		}
		if !found {
			return nil, errors.FieldMissing(errors.PhaseCompile, path, v.Name)
		}
		pb, err := c.bind(v.Payload, goField.Type, childPath(path, v.Name))
		if err != nil {
			return nil, err
		}

		slot, seen := slotOf[goField.Offset]
		if !seen {
			slot = len(slots)
			slotOf[goField.Offset] = slot
			slots = append(slots, payloadSlot{offset: goField.Offset, size: goField.Type.Size()})
		}
		cases[i] = caseBinding{b: pb, goOffset: goField.Offset, slot: slot}
	}

	return &binding{
		desc:      d,
		goSize:    goType.Size(),
		tagOffset: tag.Offset,
		tagSize:   tag.Type.Size(),
		cases:     cases,
		slots:     slots,
	}, nil
}

func findTagField(goType reflect.Type) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		f := goType.Field(i)
		if _, opts, _ := strings.Cut(f.Tag.Get("wire"), ","); opts == "tag" {
			return f, true
		}
	}
	f, ok := goType.FieldByName("Tag")
	if ok && len(f.Index) == 1 {
		return f, true
	}
	return reflect.StructField{}, false
}

// findGoField matches by: 1) wire:"name" tag, 2) case-insensitive, 3) kebab-case.
// Fields tagged wire:"-" or wire:",tag" never match.
func findGoField(goType reflect.Type, wireName string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(field.Tag.Get("wire"), ",")
		if name == "-" || opts == "tag" {
			continue
		}
		if name != "" {
			if name == wireName {
				return field, true
			}
			continue
		}

		if strings.EqualFold(field.Name, wireName) {
			return field, true
		}
		if toKebabCase(field.Name) == wireName {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

// toKebabCase keeps acronym runs together: IDRequest -> id-request.
func toKebabCase(s string) string {
	runes := []rune(s)
	var result strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prevLower := !unicode.IsUpper(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || nextLower {
					result.WriteByte('-')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
