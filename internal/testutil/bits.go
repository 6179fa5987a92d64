// Package testutil builds synthetic save data for decoder tests.
package testutil

// BitWriter packs values least-significant bit first, the order
// rbits.Reader reads them back in.
type BitWriter struct {
	data []byte
	bits int
}

func NewBitWriter() *BitWriter {
	return &BitWriter{}
}

// Write appends the low width bits of value. Negative values are written in
// two's complement.
func (w *BitWriter) Write(value int, width int) *BitWriter {
	raw := uint64(value)
	for i := 0; i < width; i++ {
		if w.bits%8 == 0 {
			w.data = append(w.data, 0)
		}
		if raw>>i&1 == 1 {
			w.data[w.bits/8] |= 1 << (w.bits % 8)
		}
		w.bits++
	}
	return w
}

func (w *BitWriter) Bool(value bool) *BitWriter {
	if value {
		return w.Write(1, 1)
	}
	return w.Write(0, 1)
}

func (w *BitWriter) Skip(width int) *BitWriter {
	return w.Write(0, width)
}

// String writes each character at charWidth bits followed by a zero code.
func (w *BitWriter) String(s string, charWidth int) *BitWriter {
	for _, c := range []byte(s) {
		w.Write(int(c), charWidth)
	}
	return w.Write(0, charWidth)
}

// Attr writes one magic attribute record: a 9-bit id and its raw values.
func (w *BitWriter) Attr(id int, widths []int, values ...int) *BitWriter {
	w.Write(id, 9)
	for i, width := range widths {
		w.Write(values[i], width)
	}
	return w
}

// EndAttrs writes the attribute list terminator.
func (w *BitWriter) EndAttrs() *BitWriter {
	return w.Write(0x1FF, 9)
}

func (w *BitWriter) Align() *BitWriter {
	for w.bits%8 != 0 {
		w.bits++
	}
	return w
}

func (w *BitWriter) Len() int {
	return w.bits
}

func (w *BitWriter) Bytes() []byte {
	return append([]byte(nil), w.data...)
}
