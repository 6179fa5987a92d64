package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitWriter(t *testing.T) {
	data := NewBitWriter().Write(1, 9).Write(96, 7).Bytes()
	assert.Equal(t, []byte{0x01, 0xC0}, data)

	w := NewBitWriter().Write(1, 3)
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, 8, w.Align().Len())
	assert.Equal(t, []byte{0x01}, w.Bytes())
}

func TestSimpleItem_Length(t *testing.T) {
	data := SimpleItem(ItemRecord{Code: "cap"})
	assert.Len(t, data, 14)
	assert.Equal(t, []byte{'J', 'M'}, data[:2])
}
