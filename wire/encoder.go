package wire

import (
	"unsafe"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/types"
)

// pack writes the Go value at ptr through the cursor. It never allocates on
// success; failures add their field name to the error path as they unwind.
func (b *binding) pack(c *bitio.Cursor, ptr unsafe.Pointer) error {
	d := b.desc
	if b.skip {
		return writePad(c, d)
	}

	switch d.Kind {
	case types.KindBool:
		return writeBool(c, *(*bool)(ptr))
	case types.KindUint:
		return writeUint(c, d, loadUint(ptr, b.goSize))
	case types.KindInt:
		return writeInt(c, d, loadInt(ptr, b.goSize))
	case types.KindFloat32:
		return writeFloat32(c, d, *(*float32)(ptr))
	case types.KindFloat64:
		return writeFloat64(c, d, *(*float64)(ptr))
	case types.KindStruct, types.KindTuple:
		for i := range b.fields {
			f := &b.fields[i]
			if err := f.b.pack(c, unsafe.Add(ptr, f.goOffset)); err != nil {
				return errors.Within(err, f.name)
			}
		}
		return nil
	case types.KindArray:
		for i := uintptr(0); i < uintptr(d.Len); i++ {
			if err := b.elem.pack(c, unsafe.Add(ptr, i*b.stride)); err != nil {
				return errors.Within(err, indexName(int(i)))
			}
		}
		return nil
	case types.KindEnum:
		return b.packEnum(c, ptr)
	}
	return errors.Unsupported(errors.PhasePack, d.Kind.String())
}

func (b *binding) packEnum(c *bitio.Cursor, ptr unsafe.Pointer) error {
	d := b.desc
	raw := loadUint(unsafe.Add(ptr, b.tagOffset), b.tagSize)
	idx, err := resolveVariant(d, raw, errors.PhasePack)
	if err != nil {
		return err
	}
	if err := writeTag(c, d, raw); err != nil {
		return err
	}
	if cb := &b.cases[idx]; cb.b != nil {
		if err := cb.b.pack(c, unsafe.Add(ptr, cb.goOffset)); err != nil {
			return errors.Within(err, d.Variants[idx].Name)
		}
	}
	return writeTail(c, d, idx)
}

func loadUint(ptr unsafe.Pointer, size uintptr) uint64 {
	switch size {
	case 1:
		return uint64(*(*uint8)(ptr))
	case 2:
		return uint64(*(*uint16)(ptr))
	case 4:
		return uint64(*(*uint32)(ptr))
	default:
		return *(*uint64)(ptr)
	}
}

func loadInt(ptr unsafe.Pointer, size uintptr) int64 {
	switch size {
	case 1:
		return int64(*(*int8)(ptr))
	case 2:
		return int64(*(*int16)(ptr))
	case 4:
		return int64(*(*int32)(ptr))
	default:
		return *(*int64)(ptr)
	}
}
