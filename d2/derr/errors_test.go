package derr

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFormatf(t *testing.T) {
	err := Formatf("invalid item header: 0x%04X", 0)
	assert.True(t, IsFormat(err))
	assert.False(t, IsInput(err))
	assert.Equal(t, "invalid item header: 0x0000: malformed data", err.Error())

	wrapped := errors.Wrap(errors.Wrap(err, "ditem.Decode error"), "dlist.Decode error")
	assert.True(t, IsFormat(wrapped))
	assert.Contains(t, wrapped.Error(), "invalid item header: 0x0000")
}

func TestInput(t *testing.T) {
	assert.NoError(t, Input(nil, "read"))

	err := Input(io.ErrUnexpectedEOF, "rbits.Reader.Read error")
	assert.True(t, IsInput(err))
	assert.False(t, IsFormat(err))
	assert.Contains(t, err.Error(), io.ErrUnexpectedEOF.Error())
}
