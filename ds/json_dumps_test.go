package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpJSON(t *testing.T) {
	value := map[string]any{"hot_keys": Bytes{1, 255}}

	bs, err := DumpJSON(value, "")
	require.NoError(t, err)
	assert.Equal(t, `{"hot_keys":[1,255]}`, string(bs))

	bs, err = DumpJSON(value, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"hot_keys\": [\n    1,\n    255\n  ]\n}", string(bs))

	_, err = DumpJSON(make(chan int), "")
	assert.Error(t, err)
}
