package wire

import (
	"strings"

	"github.com/wippyai/bitwire/wire/internal/layout"
	"github.com/wippyai/bitwire/wire/internal/types"
)

// FieldInfo describes one leaf of a layout at its absolute bit offset.
// Enums are leaves; their payload depends on the value.
type FieldInfo struct {
	Type   *Descriptor
	Path   string
	Offset uint64
	Bits   uint32
	Depth  int
}

// Walk calls fn for every leaf and nested composite of d in wire order,
// composites before their children. Returning false from fn skips the
// node's children.
func Walk(d *Descriptor, fn func(FieldInfo) bool) {
	walk(d, nil, 0, 0, fn)
}

func walk(d *types.Descriptor, path []string, off uint64, depth int, fn func(FieldInfo) bool) {
	if d == nil {
		return
	}
	info := FieldInfo{
		Type:   d,
		Path:   strings.Join(path, "."),
		Offset: off,
		Bits:   d.Bits,
		Depth:  depth,
	}
	if !fn(info) {
		return
	}

	if !d.Kind.IsSequence() {
		return
	}
	n := len(d.Fields)
	if d.Kind == types.KindArray {
		if d.Elem == nil {
			return
		}
		n = int(d.Len)
	}
	for i := 0; i < n; i++ {
		child, name := d.Elem, indexName(i)
		if d.Kind != types.KindArray {
			child = d.Fields[i].Type
			if d.Kind == types.KindStruct && d.Fields[i].Name != "" {
				name = d.Fields[i].Name
			}
		}
		walk(child, append(path, name), off+uint64(layout.FieldOffset(d, i)), depth+1, fn)
	}
}

// Leaves returns the leaves of d in wire order.
func Leaves(d *Descriptor) []FieldInfo {
	var out []FieldInfo
	Walk(d, func(fi FieldInfo) bool {
		if !fi.Type.Kind.IsSequence() {
			out = append(out, fi)
		}
		return true
	})
	return out
}
