// Package dlist decodes "JM" item lists and folds socketed records into
// their hosts.
package dlist

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thanhnguyen2187/d2-savior/d2/dattr"
	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/ditem"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/d2/lbytes"
	"github.com/thanhnguyen2187/d2-savior/d2/rbits"
	"github.com/thanhnguyen2187/d2-savior/ds"
)

// Magic is "JM" read big-endian.
const Magic = 0x4A4D

// DecodeHeader reads the list marker and the declared item count.
func DecodeHeader(reader *lbytes.Reader) (int, error) {
	magic, err := reader.ReadUint16BE()
	if err != nil {
		return 0, errors.Wrap(err, "dlist.DecodeHeader error")
	}
	if magic != Magic {
		return 0, derr.Formatf("invalid item list header: 0x%04X", magic)
	}
	count, err := reader.ReadUint16()
	if err != nil {
		return 0, errors.Wrap(err, "dlist.DecodeHeader error")
	}
	return int(count), nil
}

// Decode reads a list of item records. With skipHeader the list is a single
// record with no marker, as stored for a golem's source item.
//
// Socketed records are not returned; they are attached to the top-level item
// decoded right before them. A top-level extended item with inserted items
// extends the number of records to read by that count.
func Decode(reader *lbytes.Reader, lookup dref.Lookup, skipHeader bool) ([]*ditem.Item, error) {
	count := 1
	if !skipHeader {
		var err error
		if count, err = DecodeHeader(reader); err != nil {
			return nil, errors.Wrap(err, "dlist.Decode error")
		}
	}

	bitReader := rbits.NewReader(reader)
	items := ds.NewStack[*ditem.Item](count)
	record := 0
	for remaining := count; remaining > 0; remaining-- {
		item, err := ditem.Decode(bitReader, lookup)
		if err != nil {
			return nil, errors.Wrapf(err, "dlist.Decode error: record %d", record)
		}
		record++
		logrus.WithFields(logrus.Fields{
			"code":      item.Code,
			"location":  item.Location,
			"remaining": remaining - 1,
		}).Debug("decoded item record")

		if item.Location == ditem.LocationSocketed {
			host, ok := items.Peek()
			if !ok {
				return nil, derr.Formatf("socketed item %q has no host", item.Code)
			}
			if err := Attach(host, item, lookup); err != nil {
				return nil, errors.Wrapf(err, "dlist.Decode error: record %d", record-1)
			}
			continue
		}

		items.Push(item)
		if !item.Simple && item.InsertedCount > 0 {
			remaining += item.InsertedCount
		}
	}
	return items.Slice(), nil
}

// Attach adds socketed to host's socketed items and host's attribute lines:
// the socket effect of socketed's code for host's category, or a jewel's own
// attributes.
func Attach(host *ditem.Item, socketed *ditem.Item, lookup dref.Lookup) error {
	if host.Extended == nil {
		return derr.Formatf("socketed item %q follows simple item %q", socketed.Code, host.Code)
	}

	effects, ok := lookup.SocketAttrs(socketed.Code, host.Category)
	switch {
	case ok:
		for _, effect := range effects {
			attr, ok := lookup.MagicAttr(effect.ID)
			if !ok {
				return derr.Formatf("unknown magic attribute id: %d", effect.ID)
			}
			line, err := dattr.Format(effect.ID, attr, effect.Values, lookup)
			if err != nil {
				return errors.Wrapf(err, "dlist.Attach error: %q", socketed.Code)
			}
			host.Extended.MagicAttrs = append(host.Extended.MagicAttrs, line)
		}
	case socketed.Code == ditem.JewelCode:
		if socketed.Extended != nil {
			host.Extended.MagicAttrs = append(host.Extended.MagicAttrs, socketed.Extended.MagicAttrs...)
		}
	default:
		return derr.Formatf("unknown item: %q in %s socket", socketed.Code, host.Category)
	}

	host.SocketedItems = append(host.SocketedItems, socketed)
	logrus.WithFields(logrus.Fields{
		"host":   host.Code,
		"socket": socketed.Code,
	}).Debug("attached socketed item")
	return nil
}
