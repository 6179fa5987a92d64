// Package dstash decodes PlugY stash files: personal stashes (.d2x) and the
// shared stash (.sss).
package dstash

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/dlist"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/d2/lbytes"
)

func decodePersonalHeader(reader *lbytes.Reader) (*Stash, error) {
	headerInstructions := []lbytes.Instruction{
		{Key: "magic", ReadFunction: lbytes.CreateUint32ReadFunction(reader)},
		{Key: "version", ReadFunction: lbytes.CreateUint16ReadFunction(reader)},
		{Key: lbytes.KeySkip, ReadFunction: lbytes.CreateSkipReadFunction(reader, 4)},
		{Key: "page_count", ReadFunction: lbytes.CreateUint32ReadFunction(reader)},
	}
	header, err := lbytes.ExecuteInstructions[d2xHeader](headerInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "dstash.decodePersonalHeader error")
	}
	if header.Version != Version1 {
		return nil, derr.Formatf("invalid personal stash version: 0x%04X", header.Version)
	}
	return &Stash{
		Kind:      KindPersonal,
		Version:   header.Version,
		PageCount: header.PageCount,
	}, nil
}

func decodeSharedHeader(reader *lbytes.Reader) (*Stash, error) {
	stash := Stash{Kind: KindShared}
	var err error
	if stash.Version, err = reader.ReadUint16(); err != nil {
		return nil, errors.Wrap(err, "dstash.decodeSharedHeader error")
	}
	switch stash.Version {
	case Version1:
	case Version2:
		gold, err := reader.ReadUint32()
		if err != nil {
			return nil, errors.Wrap(err, "dstash.decodeSharedHeader error")
		}
		stash.SharedGold = &gold
	default:
		return nil, derr.Formatf("invalid shared stash version: 0x%04X", stash.Version)
	}
	if stash.PageCount, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "dstash.decodeSharedHeader error")
	}
	return &stash, nil
}

// DecodePage reads one "ST" page. Flags and name are only stored when the
// page was renamed or flagged, which shows as anything but an item list
// marker after "ST".
func DecodePage(reader *lbytes.Reader, lookup dref.Lookup, number int) (*Page, error) {
	magic, err := reader.ReadUint16()
	if err != nil {
		return nil, errors.Wrap(err, "dstash.DecodePage error")
	}
	if magic != PageMagic {
		return nil, derr.Formatf("invalid stash page header: 0x%04X", magic)
	}

	page := Page{Number: number}
	next, err := reader.PeekUint16BE()
	if err != nil {
		return nil, errors.Wrap(err, "dstash.DecodePage error")
	}
	if next != dlist.Magic {
		raw, err := reader.ReadUint32BE()
		if err != nil {
			return nil, errors.Wrap(err, "dstash.DecodePage error")
		}
		flags := ToPageFlags(raw)
		name, err := reader.ReadNullTermString()
		if err != nil {
			return nil, errors.Wrap(err, "dstash.DecodePage error")
		}
		page.Flags = &flags
		page.Name = &name
	}

	if page.Items, err = dlist.Decode(reader, lookup, false); err != nil {
		return nil, errors.Wrapf(err, "dstash.DecodePage error: page %d", number)
	}
	return &page, nil
}

// Decode reads a personal or shared stash, telling them apart by magic.
func Decode(data []byte, lookup dref.Lookup) (*Stash, error) {
	reader := lbytes.NewBytesReader(data)
	magic, err := reader.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "dstash.Decode error")
	}

	var stash *Stash
	switch magic {
	case PersonalMagic:
		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			return nil, derr.Input(err, "dstash.Decode error")
		}
		stash, err = decodePersonalHeader(reader)
	case SharedMagic:
		stash, err = decodeSharedHeader(reader)
	default:
		return nil, derr.Formatf("invalid stash header: 0x%08X", magic)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dstash.Decode error")
	}

	stash.Pages = []Page{}
	for number := 1; number <= int(stash.PageCount); number++ {
		page, err := DecodePage(reader, lookup, number)
		if err != nil {
			return nil, errors.Wrap(err, "dstash.Decode error")
		}
		stash.Pages = append(stash.Pages, *page)
	}

	logrus.WithFields(logrus.Fields{
		"kind":  stash.Kind,
		"pages": len(stash.Pages),
	}).Debug("decoded stash")
	return stash, nil
}
