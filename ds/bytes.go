package ds

import (
	"encoding/json"

	"github.com/samber/lo"
)

// Bytes is a raw byte block that serializes as an ordered list of byte
// values instead of the base64 string encoding/json uses for []byte.
type Bytes []byte

func (r Bytes) MarshalJSON() ([]byte, error) {
	values := lo.Map(
		r,
		func(b byte, _ int) int {
			return int(b)
		},
	)
	return json.Marshal(values)
}

func (r *Bytes) UnmarshalJSON(bs []byte) error {
	values := make([]int, 0)
	if err := json.Unmarshal(bs, &values); err != nil {
		return err
	}
	*r = lo.Map(
		values,
		func(v int, _ int) byte {
			return byte(v)
		},
	)
	return nil
}
