package bitio

import (
	"math/bits"

	"github.com/wippyai/bitwire/errors"
)

// ByteOrder selects how multi-byte values are assembled.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "be"
	}
	return "le"
}

// MaxAccess is the widest single read or write in bits.
const MaxAccess = 64

// Cursor tracks a bit position within a caller-owned byte buffer.
// The offset only moves forward; Reset starts a new pass.
type Cursor struct {
	buf   []byte
	off   uint64
	order ByteOrder
}

// MakeCursor returns a cursor positioned at bit 0 of buf.
// The value form lets callers keep the cursor on the stack.
func MakeCursor(buf []byte) Cursor {
	return Cursor{buf: buf}
}

// NewCursor returns a heap cursor positioned at bit 0 of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Reset rebinds the cursor to buf at bit 0, keeping the byte order.
func (c *Cursor) Reset(buf []byte) {
	c.buf = buf
	c.off = 0
}

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Offset returns the current bit position.
func (c *Cursor) Offset() uint64 {
	return c.off
}

// Len returns the buffer capacity in bits.
func (c *Cursor) Len() uint64 {
	return uint64(len(c.buf)) * 8
}

// Remaining returns the number of bits between the offset and the buffer end.
func (c *Cursor) Remaining() uint64 {
	return c.Len() - c.off
}

// Order returns the default byte order.
func (c *Cursor) Order() ByteOrder {
	return c.order
}

// SetOrder changes the default byte order used by ReadBits and WriteBits.
func (c *Cursor) SetOrder(o ByteOrder) {
	c.order = o
}

// Seek moves the offset forward to bit. Moving backwards is rejected.
func (c *Cursor) Seek(bit uint64) error {
	if bit < c.off {
		return errors.New(errors.PhaseUnpack, errors.KindUnsupported).
			Detail("seek to bit %d behind offset %d", bit, c.off).
			Build()
	}
	if bit > c.Len() {
		return errors.BufferTooSmall(errors.PhaseUnpack, nil, bit, c.Len())
	}
	c.off = bit
	return nil
}

// Skip advances the offset by n bits without touching the buffer.
func (c *Cursor) Skip(n uint64) error {
	if err := c.check(errors.PhaseUnpack, n); err != nil {
		return err
	}
	c.off += n
	return nil
}

// Align advances to the next byte boundary.
func (c *Cursor) Align() error {
	if pad := c.off & 7; pad != 0 {
		return c.Skip(8 - pad)
	}
	return nil
}

// ZeroBits clears n bits at the offset and advances past them.
func (c *Cursor) ZeroBits(n uint64) error {
	if err := c.check(errors.PhasePack, n); err != nil {
		return err
	}
	for n > 0 {
		take := n
		if take > MaxAccess {
			take = MaxAccess
		}
		c.writeLE(uint(take), 0)
		n -= take
	}
	return nil
}

// ReadBits reads n bits (0..64) in the cursor's byte order.
func (c *Cursor) ReadBits(n uint) (uint64, error) {
	return c.ReadBitsOrder(n, c.order)
}

// WriteBits writes the low n bits of v in the cursor's byte order.
func (c *Cursor) WriteBits(n uint, v uint64) error {
	return c.WriteBitsOrder(n, v, c.order)
}

// ReadBitsOrder reads n bits using an explicit byte order.
func (c *Cursor) ReadBitsOrder(n uint, order ByteOrder) (uint64, error) {
	if err := c.checkWidth(errors.PhaseUnpack, n, order); err != nil {
		return 0, err
	}
	if err := c.check(errors.PhaseUnpack, uint64(n)); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	v := c.readLE(n)
	if order == BigEndian && n > 8 {
		v = bits.ReverseBytes64(v) >> (64 - n)
	}
	return v, nil
}

// WriteBitsOrder writes the low n bits of v using an explicit byte order.
// The cursor does not advance on failure.
func (c *Cursor) WriteBitsOrder(n uint, v uint64, order ByteOrder) error {
	if err := c.checkWidth(errors.PhasePack, n, order); err != nil {
		return err
	}
	if max := MaxUnsigned(n); v > max {
		return errors.ValueOutOfRange(errors.PhasePack, nil, v, max)
	}
	if err := c.check(errors.PhasePack, uint64(n)); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if order == BigEndian && n > 8 {
		v = bits.ReverseBytes64(v << (64 - n))
	}
	c.writeLE(n, v)
	return nil
}

func (c *Cursor) check(phase errors.Phase, n uint64) error {
	if avail := c.Len(); c.off+n > avail || c.off+n < c.off {
		return errors.BufferTooSmall(phase, nil, c.off+n, avail)
	}
	return nil
}

func (c *Cursor) checkWidth(phase errors.Phase, n uint, order ByteOrder) error {
	if n > MaxAccess {
		return errors.New(phase, errors.KindUnsupported).
			Detail("access width %d exceeds %d bits", n, MaxAccess).
			Build()
	}
	if order == BigEndian && n%8 != 0 {
		return errors.New(phase, errors.KindUnsupported).
			Detail("big-endian access of %d bits is not byte-sized", n).
			Build()
	}
	return nil
}

// readLE assembles n bits LSB-first. Bounds are checked by the caller.
func (c *Cursor) readLE(n uint) uint64 {
	var v uint64
	var got uint
	off := c.off
	for got < n {
		shift := uint(off & 7)
		take := 8 - shift
		if rem := n - got; take > rem {
			take = rem
		}
		chunk := (uint64(c.buf[off>>3]) >> shift) & (1<<take - 1)
		v |= chunk << got
		got += take
		off += uint64(take)
	}
	c.off = off
	return v
}

// writeLE stores the low n bits of v LSB-first, leaving neighbouring bits intact.
func (c *Cursor) writeLE(n uint, v uint64) {
	var done uint
	off := c.off
	for done < n {
		shift := uint(off & 7)
		take := 8 - shift
		if rem := n - done; take > rem {
			take = rem
		}
		mask := byte((1<<take - 1) << shift)
		chunk := byte(((v >> done) & (1<<take - 1)) << shift)
		idx := off >> 3
		c.buf[idx] = c.buf[idx]&^mask | chunk
		done += take
		off += uint64(take)
	}
	c.off = off
}

// ZeroFill clears the ceil(bits/8) leading bytes of buf.
func ZeroFill(buf []byte, bits uint64) error {
	n := ByteWidth(bits)
	if uint64(len(buf)) < n {
		return errors.BufferTooSmall(errors.PhasePack, nil, bits, uint64(len(buf))*8)
	}
	clear(buf[:n])
	return nil
}
