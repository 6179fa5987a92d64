// Package d2 is the entry point for Diablo II files: it tells character
// saves, PlugY stashes and lone item records apart and hands each to its
// decoder.
package d2

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/ditem"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/d2/dsave"
	"github.com/thanhnguyen2187/d2-savior/d2/dstash"
	"github.com/thanhnguyen2187/d2-savior/d2/lbytes"
	"github.com/thanhnguyen2187/d2-savior/d2/rbits"
	"github.com/thanhnguyen2187/d2-savior/ds"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindSave
	KindPersonalStash
	KindSharedStash
	KindItem
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindSave:          "save",
	KindPersonalStash: "personal_stash",
	KindSharedStash:   "shared_stash",
	KindItem:          "item",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return kindNames[KindUnknown]
	}
	return name
}

// Detect guesses the file kind from its leading magic number.
func Detect(bs []byte) Kind {
	if len(bs) < 2 {
		return KindUnknown
	}
	if len(bs) >= 4 {
		switch binary.LittleEndian.Uint32(bs) {
		case dsave.Magic:
			return KindSave
		case dstash.PersonalMagic:
			return KindPersonalStash
		case dstash.SharedMagic:
			return KindSharedStash
		}
	}
	if binary.LittleEndian.Uint16(bs) == ditem.Magic {
		return KindItem
	}
	return KindUnknown
}

// Decode returns a *dsave.Save, a *dstash.Stash or a *ditem.Item depending
// on the detected kind.
func Decode(bs []byte, lookup dref.Lookup) (any, error) {
	kind := Detect(bs)
	logrus.WithFields(logrus.Fields{
		"kind": kind,
		"size": len(bs),
	}).Debug("decoding file")

	var (
		result any
		err    error
	)
	switch kind {
	case KindSave:
		result, err = dsave.Decode(bs, lookup)
	case KindPersonalStash, KindSharedStash:
		result, err = dstash.Decode(bs, lookup)
	case KindItem:
		result, err = DecodeItem(bs, lookup)
	default:
		return nil, derr.Formatf("unknown file kind")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "d2.Decode error: %s", kind)
	}
	return result, nil
}

func DecodeFile(path string, lookup dref.Lookup) (any, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, derr.Input(err, "d2.DecodeFile error")
	}
	result, err := Decode(bs, lookup)
	if err != nil {
		return nil, errors.Wrapf(err, "d2.DecodeFile error: %s", path)
	}
	return result, nil
}

// DecodeItem reads a single item record as exported to a .d2i file. Records
// for socketed items that may follow it are not read.
func DecodeItem(bs []byte, lookup dref.Lookup) (*ditem.Item, error) {
	reader := rbits.NewReader(lbytes.NewBytesReader(bs))
	item, err := ditem.Decode(reader, lookup)
	if err != nil {
		return nil, errors.Wrap(err, "d2.DecodeItem error")
	}
	return item, nil
}

func ToJSON(v any, indent string) ([]byte, error) {
	return ds.DumpJSON(v, indent)
}
