package layoutfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire"
)

// lookupFunc resolves a layout reference inside a type expression.
type lookupFunc func(name string) (*wire.Descriptor, error)

// parseType turns a type expression into a descriptor.
func parseType(expr string, lookup lookupFunc) (*wire.Descriptor, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, errors.InvalidSchema(errors.PhaseLoad, nil, "empty type expression")
	}

	bigEndian := false
	if rest, ok := strings.CutPrefix(s, "be:"); ok {
		bigEndian = true
		s = strings.TrimSpace(rest)
	}

	base, dims, err := splitDims(s)
	if err != nil {
		return nil, errors.InvalidSchema(errors.PhaseLoad, nil, "type %q: %v", expr, err)
	}

	d, err := parseBase(base, lookup)
	if err != nil {
		return nil, err
	}
	if bigEndian {
		d = wire.BE(d)
	}
	for _, n := range dims {
		d = wire.Array(d, n)
	}
	return d, nil
}

// splitDims separates "u4[2][3]" into "u4" and [2 3].
func splitDims(s string) (string, []uint32, error) {
	idx := strings.IndexByte(s, '[')
	if idx < 0 {
		return s, nil, nil
	}
	base, rest := s[:idx], s[idx:]
	var dims []uint32
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("unexpected %q", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, fmt.Errorf("unterminated array length")
		}
		n, err := strconv.ParseUint(strings.TrimSpace(rest[1:end]), 10, 32)
		if err != nil || n == 0 {
			return "", nil, fmt.Errorf("bad array length %q", rest[1:end])
		}
		dims = append(dims, uint32(n))
		rest = rest[end+1:]
	}
	return strings.TrimSpace(base), dims, nil
}

func parseBase(s string, lookup lookupFunc) (*wire.Descriptor, error) {
	switch s {
	case "bool":
		return wire.Bool(), nil
	case "f32":
		return wire.Float32(), nil
	case "f64":
		return wire.Float64(), nil
	}

	for prefix, ctor := range widthCtors {
		if n, ok := parseWidth(s, prefix); ok {
			return ctor(n), nil
		}
	}

	if lookup == nil {
		return nil, errors.InvalidSchema(errors.PhaseLoad, nil, "unknown type %q", s)
	}
	return lookup(s)
}

var widthCtors = map[string]func(uint32) *wire.Descriptor{
	"u":   wire.Uint,
	"i":   wire.Int,
	"pad": wire.Pad,
}

// parseWidth matches prefix followed by a decimal width, e.g. u12.
func parseWidth(s, prefix string) (uint32, bool) {
	digits, ok := strings.CutPrefix(s, prefix)
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
