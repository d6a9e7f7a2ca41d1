package wire

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire/internal/bitio"
)

// Codec packs and unpacks values of T against one descriptor.
// A Codec is immutable and safe for concurrent use. Its pack and unpack
// methods do not allocate on success.
type Codec[T any] struct {
	desc *Descriptor
	root *binding
}

// Compile validates d and binds it to T using the default compiler.
func Compile[T any](d *Descriptor) (*Codec[T], error) {
	return CompileWith[T](defaultCompiler, d)
}

// CompileWith binds d to T using c's cache.
func CompileWith[T any](c *Compiler, d *Descriptor) (*Codec[T], error) {
	root, err := c.bindRoot(d, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Codec[T]{desc: d, root: root}, nil
}

// MustCompile is like Compile but panics on error.
// Intended for package-level codec variables.
func MustCompile[T any](d *Descriptor) *Codec[T] {
	c, err := Compile[T](d)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec[T]) Descriptor() *Descriptor {
	return c.desc
}

// BitWidth returns the packed width in bits.
func (c *Codec[T]) BitWidth() uint32 {
	return c.desc.Bits
}

// ByteWidth returns the number of bytes PackInto and UnpackFrom require.
func (c *Codec[T]) ByteWidth() uint32 {
	return c.desc.ByteWidth()
}

// PackInto zero-fills the first ByteWidth bytes of dst and writes v at bit 0.
func (c *Codec[T]) PackInto(v *T, dst []byte) error {
	if v == nil {
		return errors.New(errors.PhasePack, errors.KindTypeMismatch).
			Detail("nil value").
			Build()
	}
	bits := uint64(c.desc.Bits)
	if err := bitio.ZeroFill(dst, bits); err != nil {
		return err
	}
	cur := bitio.MakeCursor(dst)
	return c.root.pack(&cur, unsafe.Pointer(v))
}

// Pack allocates a buffer of ByteWidth bytes and packs v into it.
func (c *Codec[T]) Pack(v *T) ([]byte, error) {
	buf := make([]byte, c.ByteWidth())
	if err := c.PackInto(v, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// UnpackFrom reads a T from the start of src. On failure it returns the
// zero value; no partially decoded value escapes.
func (c *Codec[T]) UnpackFrom(src []byte) (T, error) {
	var v T
	if err := c.unpackAt(&v, src, 0); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// UnpackInto reads into v, leaving Go fields without a wire counterpart
// untouched. On failure *v is reset to the zero value.
func (c *Codec[T]) UnpackInto(v *T, src []byte) error {
	if v == nil {
		return errors.New(errors.PhaseUnpack, errors.KindTypeMismatch).
			Detail("nil destination").
			Build()
	}
	if err := c.unpackAt(v, src, 0); err != nil {
		var zero T
		*v = zero
		return err
	}
	return nil
}

func (c *Codec[T]) unpackAt(v *T, src []byte, off uint64) error {
	cur := bitio.MakeCursor(src)
	if err := cur.Seek(off); err != nil {
		return err
	}
	if need := off + uint64(c.desc.Bits); need > cur.Len() {
		return errors.BufferTooSmall(errors.PhaseUnpack, nil, need, cur.Len())
	}
	return c.root.unpack(&cur, unsafe.Pointer(v))
}

// PackCursor writes v at the cursor position and advances past it. Every bit
// of the value's range is written, so earlier buffer contents do not leak.
// The cursor does not move on failure.
func (c *Codec[T]) PackCursor(v *T, cur *Cursor) error {
	if v == nil {
		return errors.New(errors.PhasePack, errors.KindTypeMismatch).
			Detail("nil value").
			Build()
	}
	bits := uint64(c.desc.Bits)
	if cur.Remaining() < bits {
		return errors.BufferTooSmall(errors.PhasePack, nil, cur.Offset()+bits, cur.Len())
	}
	sub := bitio.MakeCursor(cur.Bytes())
	if err := sub.Seek(cur.Offset()); err != nil {
		return err
	}
	if err := c.root.pack(&sub, unsafe.Pointer(v)); err != nil {
		return err
	}
	return cur.Skip(bits)
}

// UnpackCursor reads a T at the cursor position and advances past it.
// The cursor does not move on failure.
func (c *Codec[T]) UnpackCursor(cur *Cursor) (T, error) {
	var v T
	if err := c.unpackAt(&v, cur.Bytes(), cur.Offset()); err != nil {
		var zero T
		return zero, err
	}
	if err := cur.Skip(uint64(c.desc.Bits)); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
