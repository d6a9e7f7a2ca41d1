package layoutfile

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, errors.Unsupported(errors.PhaseLoad, "layout file extension "+filepath.Ext(path))
}

type options struct {
	base *Registry
}

type Option func(*options)

// WithBase lets documents reference layouts from an existing registry,
// such as the built-in EtherCAT set. Base layouts are not re-exported.
func WithBase(r *Registry) Option {
	return func(o *options) { o.base = r }
}

// Load reads and compiles a layout file.
func Load(path string, opts ...Option) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "read "+path)
	}
	r, err := Parse(data, format, opts...)
	if err != nil {
		return nil, err
	}
	Logger().Debug("loaded layout file",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("layouts", r.Len()))
	return r, nil
}

// Parse decodes data and compiles every declared layout.
// Unknown document keys are rejected.
func Parse(data []byte, format Format, opts ...Option) (*Registry, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return Compile(doc, opts...)
}

func decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidSchema, err, "decode toml")
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.FieldUnknown(errors.PhaseLoad, nil, undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidSchema, err, "decode yaml")
		}
	}
	return &doc, nil
}

// Compile builds a registry from an already decoded document.
func Compile(doc *Document, opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res := &resolver{
		defs:  doc.Layouts,
		base:  o.base,
		built: make(map[string]*wire.Descriptor, len(doc.Layouts)),
		state: make(map[string]uint8, len(doc.Layouts)),
	}

	names := make([]string, 0, len(doc.Layouts))
	for name := range doc.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := res.resolve(name); err != nil {
			return nil, err
		}
	}
	return NewRegistry(res.built)
}

const (
	unvisited uint8 = iota
	visiting
	done
)

type resolver struct {
	defs  map[string]Definition
	base  *Registry
	built map[string]*wire.Descriptor
	state map[string]uint8
	stack []string
}

func (r *resolver) resolve(name string) (*wire.Descriptor, error) {
	def, ok := r.defs[name]
	if !ok {
		if d, found := r.base.Lookup(name); found {
			return d, nil
		}
		return nil, errors.InvalidSchema(errors.PhaseLoad, append([]string(nil), r.stack...), "unknown layout %q", name)
	}

	switch r.state[name] {
	case done:
		return r.built[name], nil
	case visiting:
		cycle := append(append([]string(nil), r.stack...), name)
		return nil, errors.InvalidSchema(errors.PhaseLoad, []string{name}, "layout cycle %s", strings.Join(cycle, " -> "))
	}

	r.state[name] = visiting
	r.stack = append(r.stack, name)
	d, err := r.build(name, def)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		return nil, err
	}

	r.state[name] = done
	r.built[name] = d
	return d, nil
}

func (r *resolver) typeOf(expr string) (*wire.Descriptor, error) {
	return parseType(expr, r.resolve)
}

func (r *resolver) build(name string, def Definition) (*wire.Descriptor, error) {
	switch def.forms() {
	case 0:
		return nil, errors.InvalidSchema(errors.PhaseLoad, []string{name}, "layout declares no type, fields, tuple or enum")
	case 1:
	default:
		return nil, errors.InvalidSchema(errors.PhaseLoad, []string{name}, "layout declares more than one of type, fields, tuple and enum")
	}

	switch {
	case def.Type != "":
		d, err := r.typeOf(def.Type)
		return d, errors.Within(err, name)

	case len(def.Fields) > 0:
		fields := make([]wire.Field, len(def.Fields))
		for i, f := range def.Fields {
			ft, err := r.typeOf(f.Type)
			if err != nil {
				return nil, errors.Within(errors.Within(err, fieldLabel(f.Name, i)), name)
			}
			fields[i] = wire.Named(f.Name, ft)
		}
		return wire.Struct(name, fields...), nil

	case len(def.Tuple) > 0:
		elems := make([]*wire.Descriptor, len(def.Tuple))
		for i, expr := range def.Tuple {
			et, err := r.typeOf(expr)
			if err != nil {
				return nil, errors.Within(errors.Within(err, fieldLabel("", i)), name)
			}
			elems[i] = et
		}
		return wire.Rename(wire.Tuple(elems...), name), nil
	}

	return r.buildEnum(name, def.Enum)
}

func (r *resolver) buildEnum(name string, def *EnumDef) (*wire.Descriptor, error) {
	var policy wire.Policy
	switch strings.ToLower(def.Unknown) {
	case "", "strict", "strict-error":
		policy = wire.StrictError
	case "catch-all", "catchall":
		policy = wire.CatchAll
	default:
		return nil, errors.InvalidSchema(errors.PhaseLoad, []string{name}, "unknown discriminant policy %q", def.Unknown)
	}

	variants := make([]wire.Variant, len(def.Variants))
	for i, v := range def.Variants {
		switch {
		case v.Fallback:
			if v.Payload != "" {
				return nil, errors.InvalidSchema(errors.PhaseLoad, []string{name, v.Name}, "fallback variant cannot carry a payload")
			}
			variants[i] = wire.Fallback(v.Name)
		case v.Payload != "":
			p, err := r.typeOf(v.Payload)
			if err != nil {
				return nil, errors.Within(errors.Within(err, v.Name), name)
			}
			variants[i] = wire.CaseWith(v.Name, v.Value, p)
		default:
			variants[i] = wire.Case(v.Name, v.Value)
		}
	}

	d := wire.Enum(name, def.Bits, policy, variants...)
	switch strings.ToLower(def.Order) {
	case "", "le":
	case "be":
		d = wire.BE(d)
	default:
		return nil, errors.InvalidSchema(errors.PhaseLoad, []string{name}, "unknown byte order %q", def.Order)
	}
	return d, nil
}

func fieldLabel(name string, i int) string {
	if name != "" {
		return name
	}
	return "[" + strconv.Itoa(i) + "]"
}
