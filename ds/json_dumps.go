package ds

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// DumpJSON marshals t, indenting nested values when indent is not empty.
func DumpJSON[T any](t T, indent string) ([]byte, error) {
	var (
		bs  []byte
		err error
	)
	if indent == "" {
		bs, err = json.Marshal(t)
	} else {
		bs, err = json.MarshalIndent(t, "", indent)
	}
	if err != nil {
		return nil, errors.Wrap(err, "ds.DumpJSON error")
	}
	return bs, nil
}
