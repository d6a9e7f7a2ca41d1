package wire

import (
	"unsafe"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
	"github.com/wippyai/bitwire/wire/internal/types"
)

// unpack reads through the cursor into the Go value at ptr.
func (b *binding) unpack(c *bitio.Cursor, ptr unsafe.Pointer) error {
	d := b.desc
	if b.skip {
		return skipPad(c, d)
	}

	switch d.Kind {
	case types.KindBool:
		v, err := readBool(c)
		if err != nil {
			return err
		}
		*(*bool)(ptr) = v
		return nil
	case types.KindUint:
		v, err := readUint(c, d)
		if err != nil {
			return err
		}
		storeUint(ptr, b.goSize, v)
		return nil
	case types.KindInt:
		v, err := readInt(c, d)
		if err != nil {
			return err
		}
		storeInt(ptr, b.goSize, v)
		return nil
	case types.KindFloat32:
		v, err := readFloat32(c, d)
		if err != nil {
			return err
		}
		*(*float32)(ptr) = v
		return nil
	case types.KindFloat64:
		v, err := readFloat64(c, d)
		if err != nil {
			return err
		}
		*(*float64)(ptr) = v
		return nil
	case types.KindStruct, types.KindTuple:
		for i := range b.fields {
			f := &b.fields[i]
			if err := f.b.unpack(c, unsafe.Add(ptr, f.goOffset)); err != nil {
				return errors.Within(err, f.name)
			}
		}
		return nil
	case types.KindArray:
		for i := uintptr(0); i < uintptr(d.Len); i++ {
			if err := b.elem.unpack(c, unsafe.Add(ptr, i*b.stride)); err != nil {
				return errors.Within(err, indexName(int(i)))
			}
		}
		return nil
	case types.KindEnum:
		return b.unpackEnum(c, ptr)
	}
	return errors.Unsupported(errors.PhaseUnpack, d.Kind.String())
}

func (b *binding) unpackEnum(c *bitio.Cursor, ptr unsafe.Pointer) error {
	d := b.desc
	raw, err := readTag(c, d)
	if err != nil {
		return err
	}
	idx, err := resolveVariant(d, raw, errors.PhaseUnpack)
	if err != nil {
		return err
	}
	storeUint(unsafe.Add(ptr, b.tagOffset), b.tagSize, raw)

	cb := &b.cases[idx]
	if cb.b != nil {
		if err := cb.b.unpack(c, unsafe.Add(ptr, cb.goOffset)); err != nil {
			return errors.Within(err, d.Variants[idx].Name)
		}
	}
	for i := range b.slots {
		if i != cb.slot {
			s := &b.slots[i]
			clear(unsafe.Slice((*byte)(unsafe.Add(ptr, s.offset)), s.size))
		}
	}
	return skipTail(c, d, idx)
}

func storeUint(ptr unsafe.Pointer, size uintptr, v uint64) {
	switch size {
	case 1:
		*(*uint8)(ptr) = uint8(v)
	case 2:
		*(*uint16)(ptr) = uint16(v)
	case 4:
		*(*uint32)(ptr) = uint32(v)
	default:
		*(*uint64)(ptr) = v
	}
}

func storeInt(ptr unsafe.Pointer, size uintptr, v int64) {
	switch size {
	case 1:
		*(*int8)(ptr) = int8(v)
	case 2:
		*(*int16)(ptr) = int16(v)
	case 4:
		*(*int32)(ptr) = int32(v)
	default:
		*(*int64)(ptr) = v
	}
}
