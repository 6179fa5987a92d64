package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

// Offset returns the number of bytes consumed so far.
func (b *Reader) Offset() int {
	return int(b.Size()) - b.Len()
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// return early to avoid an EOF error when the reader's pointer reached
	// the end while the number of bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	if _, err := io.ReadFull(b, bs); err != nil {
		return nil, derr.Input(err, "lbytes.Reader.ReadBytes error")
	}
	return bs, nil
}

func (b *Reader) ReadUint8() (uint8, error) {
	bs, err := b.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadUint16() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadUint16BE() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(bs), nil
}

func (b *Reader) ReadUint32() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadUint32BE() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(bs), nil
}

func (b *Reader) ReadInt() (int32, error) {
	result, err := b.ReadUint32()
	return int32(result), err
}

// ReadString reads n bytes and trims the zero padding on the right.
func (b *Reader) ReadString(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(bs, "\x00")), nil
}

// ReadNullTermString reads until a zero byte or the end of the data.
func (b *Reader) ReadNullTermString() (string, error) {
	buf := bytes.Buffer{}
	for {
		c, err := b.ReadByte()
		if err == io.EOF || (err == nil && c == 0) {
			return buf.String(), nil
		}
		if err != nil {
			return "", derr.Input(err, "lbytes.Reader.ReadNullTermString error")
		}
		buf.WriteByte(c)
	}
}

// PeekUint16BE reads a big-endian marker without consuming it.
func (b *Reader) PeekUint16BE() (uint16, error) {
	value, err := b.ReadUint16BE()
	if err != nil {
		return 0, err
	}
	if _, err := b.Seek(-2, io.SeekCurrent); err != nil {
		return 0, derr.Input(err, "lbytes.Reader.PeekUint16BE error")
	}
	return value, nil
}

func (b *Reader) Skip(n int) error {
	if n > b.Len() {
		return derr.Inputf("lbytes.Reader.Skip error: %d bytes requested, %d left", n, b.Len())
	}
	_, err := b.Seek(int64(n), io.SeekCurrent)
	return derr.Input(err, "lbytes.Reader.Skip error")
}
