package ttf

import (
	"fmt"
)

// Reading bytes from a font's binary representation

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// Cursor is a positioned, bounds-checked big-endian reader over a byte slice.
//
// Every read advances the cursor by exactly the width of the decoded value. A read or
// skip which would move the cursor past the end of the data fails with an error
// wrapping ErrOutOfBounds and leaves the cursor position unchanged.
//
// A Cursor carries mutable state and must not be shared between goroutines.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at byte 0 of data.
// The cursor does not copy data; clients must not modify it while the cursor is in use.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the size of the underlying data in bytes.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Position returns the current read position.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of bytes between the current position and the end of data.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// SetPosition moves the cursor to an absolute position. Seeking backwards is allowed.
// Positions outside of [0, Len()] fail with ErrOutOfBounds.
func (c *Cursor) SetPosition(p int) error {
	if p < 0 || p > len(c.data) {
		return fmt.Errorf("%w: cannot seek to %d, size is %d", ErrOutOfBounds, p, len(c.data))
	}
	c.pos = p
	return nil
}

// view returns the next n bytes and advances the cursor.
// The returned slice aliases the cursor's data.
func (c *Cursor) view(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, fmt.Errorf("%w: %d bytes at position %d, size is %d",
			ErrOutOfBounds, n, c.pos, len(c.data))
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.view(n)
	return err
}

// Bytes returns a copy of the next n bytes.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.view(n)
	if err != nil {
		return nil, err
	}
	r := make([]byte, n)
	copy(r, b)
	return r, nil
}

// U8 reads an unsigned byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.view(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads a signed byte.
func (c *Cursor) I8() (int8, error) {
	n, err := c.U8()
	return int8(n), err
}

// U16 reads a big-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.view(2)
	if err != nil {
		return 0, err
	}
	return u16(b), nil
}

// I16 reads a big-endian int16.
func (c *Cursor) I16() (int16, error) {
	n, err := c.U16()
	return int16(n), err
}

// U32 reads a big-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.view(4)
	if err != nil {
		return 0, err
	}
	return u32(b), nil
}

// I32 reads a big-endian int32.
func (c *Cursor) I32() (int32, error) {
	n, err := c.U32()
	return int32(n), err
}

// Tag reads 4 raw bytes as a table tag.
func (c *Cursor) Tag() (Tag, error) {
	b, err := c.view(4)
	if err != nil {
		return 0, err
	}
	return MakeTag(b), nil
}

// --- Arrays ----------------------------------------------------------------

// The array readers check the complete extent up front, so a failing array read
// does not move the cursor.

func (c *Cursor) arrayView(count, width int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative array count %d", ErrOutOfBounds, count)
	}
	size, err := checkedMulInt(count, width)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, err)
	}
	return c.view(size)
}

// U8Array reads count unsigned bytes.
func (c *Cursor) U8Array(count int) ([]uint8, error) {
	b, err := c.arrayView(count, 1)
	if err != nil {
		return nil, err
	}
	r := make([]uint8, count)
	copy(r, b)
	return r, nil
}

// U16Array reads count big-endian uint16 values.
func (c *Cursor) U16Array(count int) ([]uint16, error) {
	b, err := c.arrayView(count, 2)
	if err != nil {
		return nil, err
	}
	r := make([]uint16, count)
	for i := range r {
		r[i] = u16(b[i*2:])
	}
	return r, nil
}

// I16Array reads count big-endian int16 values.
func (c *Cursor) I16Array(count int) ([]int16, error) {
	b, err := c.arrayView(count, 2)
	if err != nil {
		return nil, err
	}
	r := make([]int16, count)
	for i := range r {
		r[i] = int16(u16(b[i*2:]))
	}
	return r, nil
}

// U32Array reads count big-endian uint32 values.
func (c *Cursor) U32Array(count int) ([]uint32, error) {
	b, err := c.arrayView(count, 4)
	if err != nil {
		return nil, err
	}
	r := make([]uint32, count)
	for i := range r {
		r[i] = u32(b[i*4:])
	}
	return r, nil
}
