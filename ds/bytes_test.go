package ds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_MarshalJSON(t *testing.T) {
	tests := map[string]struct {
		in  Bytes
		out string
	}{
		"empty":  {Bytes{}, `[]`},
		"zero":   {Bytes{0}, `[0]`},
		"string": {Bytes("Test"), `[84,101,115,116]`},
	}
	for name, test := range tests {
		bs, err := json.Marshal(test.in)
		require.NoError(t, err, name)
		assert.Equal(t, test.out, string(bs), name)
	}
}

func TestBytes_UnmarshalJSON(t *testing.T) {
	bs := Bytes{}
	err := json.Unmarshal([]byte(`[1,2,255]`), &bs)
	require.NoError(t, err)
	assert.Equal(t, Bytes{1, 2, 255}, bs)
}
