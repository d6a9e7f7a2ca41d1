package bitio

import (
	"bytes"
	"math"
	"testing"

	"github.com/wippyai/bitwire/errors"
)

func TestWriteBitsLSBFirst(t *testing.T) {
	buf := make([]byte, 1)
	c := MakeCursor(buf)

	// flag=1 at bit 0, mode=5 at bits 1..3, reserved=0 at bits 4..7
	mustWrite(t, &c, 1, 1)
	mustWrite(t, &c, 3, 5)
	mustWrite(t, &c, 4, 0)

	if buf[0] != 0x0B {
		t.Errorf("byte = %#08b, want %#08b", buf[0], 0x0B)
	}
	if c.Offset() != 8 {
		t.Errorf("offset = %d, want 8", c.Offset())
	}
}

func TestCrossByteAccess(t *testing.T) {
	tests := []struct {
		name   string
		lead   uint
		width  uint
		value  uint64
		expect []byte
	}{
		{"aligned_u16", 0, 16, 0x1234, []byte{0x34, 0x12, 0x00}},
		{"offset_4_u8", 4, 8, 0xAB, []byte{0xB0, 0x0A, 0x00}},
		{"offset_3_u11", 3, 11, 0x7FF, []byte{0xF8, 0x3F, 0x00}},
		{"offset_7_u9", 7, 9, 0x1FF, []byte{0x80, 0xFF, 0x00}},
		{"offset_1_u20", 1, 20, 0xABCDE, []byte{0xBC, 0x79, 0x15}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 3)
			c := MakeCursor(buf)
			if err := c.Skip(uint64(tc.lead)); err != nil {
				t.Fatal(err)
			}
			mustWrite(t, &c, tc.width, tc.value)
			if !bytes.Equal(buf, tc.expect) {
				t.Fatalf("buf = % x, want % x", buf, tc.expect)
			}

			r := MakeCursor(buf)
			if err := r.Skip(uint64(tc.lead)); err != nil {
				t.Fatal(err)
			}
			got, err := r.ReadBits(tc.width)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.value {
				t.Errorf("read %#x, want %#x", got, tc.value)
			}
		})
	}
}

func TestWritePreservesNeighbours(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	c := MakeCursor(buf)
	if err := c.Skip(4); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, &c, 8, 0)
	if !bytes.Equal(buf, []byte{0x0F, 0xF0}) {
		t.Errorf("buf = % x, want 0f f0", buf)
	}
}

func TestFullWidth64(t *testing.T) {
	for _, lead := range []uint64{0, 1, 5} {
		buf := make([]byte, 9)
		c := MakeCursor(buf)
		if err := c.Skip(lead); err != nil {
			t.Fatal(err)
		}
		mustWrite(t, &c, 64, math.MaxUint64-1)

		r := MakeCursor(buf)
		if err := r.Skip(lead); err != nil {
			t.Fatal(err)
		}
		got, err := r.ReadBits(64)
		if err != nil {
			t.Fatal(err)
		}
		if got != math.MaxUint64-1 {
			t.Errorf("lead %d: got %#x", lead, got)
		}
	}
}

func TestBigEndian(t *testing.T) {
	buf := make([]byte, 4)
	c := MakeCursor(buf)
	if err := c.WriteBitsOrder(16, 0x1234, BigEndian); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteBitsOrder(8, 0xAB, BigEndian); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf[:3], []byte{0x12, 0x34, 0xAB}) {
		t.Fatalf("buf = % x", buf)
	}

	r := MakeCursor(buf)
	r.SetOrder(BigEndian)
	v, err := r.ReadBits(16)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x1234 {
		t.Errorf("got %#x, want 0x1234", v)
	}

	if err := c.WriteBitsOrder(4, 1, BigEndian); !errors.IsKind(err, errors.KindUnsupported) {
		t.Errorf("expected unsupported for 4-bit big-endian, got %v", err)
	}
}

func TestBufferTooSmall(t *testing.T) {
	buf := make([]byte, 1)
	c := MakeCursor(buf)
	mustWrite(t, &c, 5, 3)

	err := c.WriteBits(4, 1)
	e, ok := errors.As(err)
	if !ok || e.Kind != errors.KindBufferTooSmall {
		t.Fatalf("expected buffer_too_small, got %v", err)
	}
	if e.Required != 9 || e.Available != 8 {
		t.Errorf("bounds = %d/%d, want 9/8", e.Required, e.Available)
	}
	if c.Offset() != 5 {
		t.Errorf("offset moved on failure: %d", c.Offset())
	}

	if _, err := c.ReadBits(4); !errors.IsKind(err, errors.KindBufferTooSmall) {
		t.Errorf("read past end: %v", err)
	}
	_, err = c.ReadBits(4)
	if e, _ := errors.As(err); e == nil || e.Phase != errors.PhaseUnpack {
		t.Errorf("read error = %v, want unpack phase", err)
	}
}

func TestValueOutOfRange(t *testing.T) {
	c := MakeCursor(make([]byte, 1))
	err := c.WriteBits(3, 8)
	e, ok := errors.As(err)
	if !ok || e.Kind != errors.KindValueOutOfRange {
		t.Fatalf("expected value_out_of_range, got %v", err)
	}
	if e.Max != 7 {
		t.Errorf("Max = %d, want 7", e.Max)
	}
	if c.Offset() != 0 {
		t.Errorf("offset moved on failure: %d", c.Offset())
	}
}

func TestZeroWidth(t *testing.T) {
	c := MakeCursor(nil)
	v, err := c.ReadBits(0)
	if err != nil || v != 0 {
		t.Errorf("ReadBits(0) = %d, %v", v, err)
	}
	if err := c.WriteBits(0, 0); err != nil {
		t.Errorf("WriteBits(0, 0) = %v", err)
	}
	if err := c.WriteBits(65, 0); !errors.IsKind(err, errors.KindUnsupported) {
		t.Errorf("WriteBits(65) = %v", err)
	}
}

func TestZeroBitsAndAlign(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF}
	c := MakeCursor(buf)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	if err := c.ZeroBits(12); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, []byte{0x03, 0xC0, 0xFF}) {
		t.Errorf("buf = % x", buf)
	}
	if err := c.Align(); err != nil {
		t.Fatal(err)
	}
	if c.Offset() != 16 {
		t.Errorf("offset after align = %d, want 16", c.Offset())
	}
	if err := c.Seek(8); err == nil {
		t.Error("backwards seek should fail")
	}
	if err := c.Seek(24); err != nil {
		t.Errorf("seek to end: %v", err)
	}
	if c.Remaining() != 0 {
		t.Errorf("remaining = %d", c.Remaining())
	}
}

func TestZeroFill(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF}
	if err := ZeroFill(buf, 12); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, []byte{0x00, 0x00, 0xFF}) {
		t.Errorf("buf = % x", buf)
	}
	if err := ZeroFill(buf[:1], 12); !errors.IsKind(err, errors.KindBufferTooSmall) {
		t.Errorf("short buffer: %v", err)
	}
}

func TestReset(t *testing.T) {
	c := NewCursor(make([]byte, 2))
	c.SetOrder(BigEndian)
	mustWrite(t, c, 8, 1)
	c.Reset(make([]byte, 4))
	if c.Offset() != 0 || c.Len() != 32 || c.Order() != BigEndian {
		t.Errorf("reset state: off=%d len=%d order=%v", c.Offset(), c.Len(), c.Order())
	}
}

func mustWrite(t *testing.T, c *Cursor, n uint, v uint64) {
	t.Helper()
	if err := c.WriteBits(n, v); err != nil {
		t.Fatalf("WriteBits(%d, %#x): %v", n, v, err)
	}
}

func BenchmarkWriteBits(b *testing.B) {
	buf := make([]byte, 16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c := MakeCursor(buf)
		_ = c.WriteBits(3, 5)
		_ = c.WriteBits(11, 0x5A5)
		_ = c.WriteBits(32, 0xDEADBEEF)
	}
}

func BenchmarkReadBits(b *testing.B) {
	buf := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c := MakeCursor(buf)
		_, _ = c.ReadBits(3)
		_, _ = c.ReadBits(11)
		_, _ = c.ReadBits(32)
	}
}
