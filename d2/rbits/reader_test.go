package rbits

import (
	"bytes"
	"math/rand"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhnguyen2187/d2-savior/d2/derr"
)

// referenceBits reads width bits starting at bit offset pos by plain indexing:
// stream bit k is bit k%8 of byte k/8 and the first bit is the least significant.
func referenceBits(bs []byte, pos int, width int) uint32 {
	value := uint32(0)
	for i := 0; i < width; i++ {
		k := pos + i
		bit := (bs[k/8] >> (k % 8)) & 1
		value |= uint32(bit) << i
	}
	return value
}

func TestReader_Read(t *testing.T) {
	tests := map[string]struct {
		widths   []int
		expected []uint32
	}{
		"9 then 7": {[]int{9, 7}, []uint32{1, 96}},
		"8 then 8": {[]int{8, 8}, []uint32{1, 192}},
	}
	for name, test := range tests {
		reader := NewReader(bytes.NewReader([]byte{0x01, 0xC0}))
		total := 0
		for i, width := range test.widths {
			value, err := reader.Read(width)
			require.NoError(t, err, name)
			total += width
			assert.Equal(t, test.expected[i], value, name)
			assert.Equal(t, total, reader.BitsTotal, name)
		}
	}
}

func TestReader_ReadMatchesReference(t *testing.T) {
	random := rand.New(rand.NewSource(2187))
	bs := make([]byte, 512)
	random.Read(bs)

	for width := 1; width <= MaxWidth; width++ {
		reader := NewReader(bytes.NewReader(bs))
		pos := 0
		for pos+width+MaxWidth <= len(bs)*8 {
			// interleave an unrelated width so fields straddle byte boundaries
			skip := random.Intn(13)
			_, err := reader.Read(skip)
			require.NoError(t, err)
			pos += skip

			value, err := reader.Read(width)
			require.NoError(t, err)
			require.Equal(t, referenceBits(bs, pos, width), value, "width %d at bit %d", width, pos)
			pos += width
			require.Equal(t, pos, reader.BitsTotal)
		}
	}
}

func TestReader_ReadZeroWidth(t *testing.T) {
	reader := NewReader(bytes.NewReader([]byte{0xFF, 0xFF}))
	value, err := reader.Read(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), value)
	assert.Equal(t, 0, reader.BitsTotal)

	_, err = reader.Read(3)
	require.NoError(t, err)
	value, err = reader.Read(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), value)
	assert.Equal(t, 3, reader.BitsTotal)

	value, err = reader.Read(5)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1F), value)
}

func TestReader_ReadInvalidWidth(t *testing.T) {
	reader := NewReader(bytes.NewReader([]byte{0, 0, 0, 0, 0}))
	_, err := reader.Read(33)
	assert.True(t, derr.IsInput(err))
	_, err = reader.Read(-1)
	assert.True(t, derr.IsInput(err))
	assert.Equal(t, 0, reader.BitsTotal)
}

func TestReader_ReadPastEnd(t *testing.T) {
	reader := NewReader(bytes.NewReader([]byte{0xAB}))
	_, err := reader.Read(8)
	require.NoError(t, err)
	_, err = reader.Read(1)
	assert.True(t, derr.IsInput(err))
	assert.False(t, derr.IsFormat(err))
}

func TestReader_ReadWithoutByteReader(t *testing.T) {
	// iotest.OneByteReader hides io.ByteReader
	reader := NewReader(iotest.OneByteReader(bytes.NewReader([]byte{0x01, 0xC0})))
	value, err := reader.Read(16)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xC001), value)
}

func TestBitsToAlign(t *testing.T) {
	expectedValues := map[int]int{
		0:  0,
		7:  1,
		8:  0,
		11: 5,
	}
	for bitsRead, expected := range expectedValues {
		assert.Equal(t, expected, BitsToAlign(bitsRead))
	}
	for n := 0; n < 64; n++ {
		assert.Equal(t, (8-n%8)%8, BitsToAlign(n))
	}
}

func TestReader_Align(t *testing.T) {
	for consumed := 0; consumed <= 16; consumed++ {
		reader := NewReader(bytes.NewReader([]byte{0xFF, 0x00, 0xFF, 0x5A}))
		_, err := reader.Read(consumed)
		require.NoError(t, err)
		require.NoError(t, reader.Align())
		assert.Equal(t, 0, reader.BitsTotal%8)
		assert.Equal(t, consumed+(8-consumed%8)%8, reader.BitsTotal)
	}

	reader := NewReader(bytes.NewReader([]byte{0xFF, 0x5A}))
	_, err := reader.Read(3)
	require.NoError(t, err)
	require.NoError(t, reader.Align())
	value, err := reader.Read(8)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x5A), value)
}

func TestReader_ReadTerminatedString(t *testing.T) {
	tests := map[string]struct {
		in  []byte
		out []byte
	}{
		"only terminator": {[]byte{0x00}, []byte{}},
		"plain":           {append([]byte("ReadNullTermStr"), 0), []byte("ReadNullTermStr")},
		"trailing zeroes": {append([]byte("Str"), 0, 0, 0), []byte("Str")},
	}
	for name, test := range tests {
		reader := NewReader(bytes.NewReader(test.in))
		bs, err := reader.ReadTerminatedString(8)
		require.NoError(t, err, name)
		assert.Equal(t, test.out, bs, name)
	}

	reader := NewReader(bytes.NewReader([]byte("abc")))
	_, err := reader.ReadTerminatedString(8)
	assert.True(t, derr.IsInput(err))
}

func TestReader_ReadTerminatedString7Bit(t *testing.T) {
	// "Hi" packed as 7-bit codes 'H'=72, 'i'=105, then a zero code
	stream := uint32(72) | uint32(105)<<7
	reader := NewReader(bytes.NewReader([]byte{byte(stream), byte(stream >> 8), byte(stream >> 16)}))
	bs, err := reader.ReadTerminatedString(7)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hi"), bs)
	assert.Equal(t, 21, reader.BitsTotal)
}

func TestFieldReader(t *testing.T) {
	reader := NewFieldReader(NewReader(bytes.NewReader([]byte{0x05})))
	assert.True(t, reader.Bool())
	assert.Equal(t, 2, reader.Uint(3))
	assert.NoError(t, reader.Err())

	assert.Equal(t, 0, reader.Uint(8))
	assert.True(t, derr.IsInput(reader.Err()))
	assert.Equal(t, "", reader.String(7))
	assert.False(t, reader.Bool())
}
