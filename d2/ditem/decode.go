// Package ditem decodes single item records.
//
// A record starts with a fixed "simple" layout present on every item. Unless
// the simple flag is set it continues with an "extended" layout whose shape
// depends on the item's quality, category and flags. Records are padded to
// the next byte boundary.
package ditem

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/thanhnguyen2187/d2-savior/d2/dattr"
	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/d2/rbits"
)

// Decode reads one item record and leaves reader byte-aligned.
func Decode(reader *rbits.Reader, lookup dref.Lookup) (*Item, error) {
	item, err := DecodeSimple(reader, lookup)
	if err != nil {
		return nil, errors.Wrap(err, "ditem.Decode error")
	}
	if !item.Simple {
		item.Extended, err = DecodeExtended(reader, lookup, item)
		if err != nil {
			return nil, errors.Wrapf(err, "ditem.Decode error: item %q", item.Code)
		}
	}
	if err := reader.Align(); err != nil {
		return nil, errors.Wrap(err, "ditem.Decode error")
	}
	item.Name = ResolveName(item, lookup)
	return item, nil
}

func DecodeSimple(reader *rbits.Reader, lookup dref.Lookup) (*Item, error) {
	fields := rbits.NewFieldReader(reader)
	if magic := fields.Uint(16); fields.Err() == nil && magic != Magic {
		return nil, derr.Formatf("invalid item header: 0x%04X", magic)
	}

	item := Item{}
	fields.Skip(4)
	item.Identified = fields.Bool()
	fields.Skip(6)
	item.Socketed = fields.Bool()
	fields.Skip(1)
	item.New = fields.Bool()
	fields.Skip(2)
	item.Ear = fields.Bool()
	item.StartItem = fields.Bool()
	fields.Skip(3)
	item.Simple = fields.Bool()
	item.Ethereal = fields.Bool()
	fields.Skip(1)
	item.Personalized = fields.Bool()
	fields.Skip(1)
	item.Runeword = fields.Bool()
	fields.Skip(5)
	item.Version = fields.Uint(8)
	fields.Skip(2)
	location := fields.Uint(3)
	equipped := fields.Uint(4)
	item.X = fields.Uint(4)
	item.Y = fields.Uint(3)
	fields.Skip(1)
	panel := fields.Uint(3)
	if err := fields.Err(); err != nil {
		return nil, errors.Wrap(err, "ditem.DecodeSimple error")
	}

	var err error
	if item.Location, err = ToLocation(location); err != nil {
		return nil, err
	}
	if item.Equipped, err = ToEquipSlot(equipped); err != nil {
		return nil, err
	}
	if item.Panel, err = ToPanel(panel); err != nil {
		return nil, err
	}

	if item.Ear {
		ear := EarInfo{
			Class: fields.Uint(3),
			Level: fields.Uint(7),
			Name:  fields.String(NameCharWidth),
		}
		if err := fields.Err(); err != nil {
			return nil, errors.Wrap(err, "ditem.DecodeSimple error: ear")
		}
		ear.ClassName, _ = lookup.ClassName(ear.Class)
		item.EarInfo = &ear
		item.Code = EarCode
		item.Category = dref.CategoryMisc
		if info, ok := lookup.Item(EarCode); ok {
			item.BaseName = info.Name
		}
		return &item, nil
	}

	code := make([]byte, CodeLength)
	for i := range code {
		code[i] = byte(fields.Uint(8))
	}
	item.InsertedCount = fields.Uint(3)
	if err := fields.Err(); err != nil {
		return nil, errors.Wrap(err, "ditem.DecodeSimple error: code")
	}
	item.Code = strings.TrimRight(string(code), " ")

	// Codes missing from the tables decode as nameless misc items.
	item.Category = dref.CategoryMisc
	if info, ok := lookup.Item(item.Code); ok {
		item.Category = info.Category
		item.BaseName = info.Name
		item.Quantitative = info.Quantitative
	} else {
		logrus.WithField("code", item.Code).Debug("unknown item code, decoding as misc")
	}
	if item.InsertedCount > 0 {
		item.SocketedItems = make([]*Item, 0, item.InsertedCount)
	}
	return &item, nil
}

// DecodeExtended reads the part of a record that follows the simple layout
// of item.
func DecodeExtended(reader *rbits.Reader, lookup dref.Lookup, item *Item) (*Extended, error) {
	fields := rbits.NewFieldReader(reader)
	extended := Extended{
		ID:    fields.Uint32(32),
		Level: fields.Uint(7),
	}
	quality := fields.Uint(4)
	if fields.Bool() {
		pictureID := fields.Uint(3)
		extended.PictureID = &pictureID
	}
	if extended.ClassSpecific = fields.Bool(); extended.ClassSpecific {
		fields.Skip(11)
	}
	if err := fields.Err(); err != nil {
		return nil, errors.Wrap(err, "ditem.DecodeExtended error")
	}

	var err error
	if extended.Quality, err = ToQuality(quality); err != nil {
		return nil, err
	}
	if extended.QualityData, err = decodeQualityData(fields, extended.Quality); err != nil {
		return nil, err
	}

	if item.Runeword {
		runewordID := fields.Uint(12)
		fields.Skip(4)
		extended.RunewordID = &runewordID
	}
	if item.Personalized {
		name := fields.String(NameCharWidth)
		extended.PersonalizedName = &name
	}
	if lo.Contains(tomeCodes, item.Code) {
		fields.Skip(5)
	}
	extended.Timestamp = fields.Bool()

	if item.Category.HasDefense() {
		defense := fields.Uint(11) - DefenseBias
		extended.Defense = &defense
	}
	if item.Category.HasDurability() {
		maxDurability := fields.Uint(8)
		extended.MaxDurability = &maxDurability
		if maxDurability > 0 {
			curDurability := fields.Uint(8)
			fields.Skip(1)
			extended.CurDurability = &curDurability
		}
	}
	if item.Quantitative {
		quantity := fields.Uint(9)
		extended.Quantity = &quantity
	}
	if item.Socketed {
		socketCount := fields.Uint(4)
		extended.SocketCount = &socketCount
	}

	selector, extraCount := 0, 0
	if extended.Quality == QualitySet {
		selector = fields.Uint(SetSelectorBits)
		count, ok := setExtraCounts[selector]
		if !ok && fields.Err() == nil {
			fields.Fail(derr.Formatf("invalid set bonus selector: %d", selector))
		}
		extraCount = count
	}
	if err := fields.Err(); err != nil {
		return nil, errors.Wrap(err, "ditem.DecodeExtended error")
	}

	if extended.MagicAttrs, err = dattr.Decode(reader, lookup); err != nil {
		return nil, errors.Wrap(err, "ditem.DecodeExtended error: magic attributes")
	}

	if extraCount > 0 {
		extended.SetExtraAttrs = make([]string, 0, extraCount)
		for i := 0; i < extraCount; i++ {
			lines, err := dattr.Decode(reader, lookup)
			if err != nil {
				return nil, errors.Wrap(err, "ditem.DecodeExtended error: set attributes")
			}
			if len(lines) == 0 {
				return nil, derr.Formatf("set bonus list %d is empty", i)
			}
			extended.SetExtraAttrs = append(extended.SetExtraAttrs, lines[0])
		}
		// Set id 0 carries no per-count thresholds.
		if setData := extended.QualityData.(SetData); setData.SetID != 0 {
			extended.SetReqItems = SetRequiredItems(selector)
		}
	}

	if item.Runeword {
		lines, err := dattr.Decode(reader, lookup)
		if err != nil {
			return nil, errors.Wrap(err, "ditem.DecodeExtended error: runeword attributes")
		}
		extended.MagicAttrs = append(extended.MagicAttrs, lines...)
	}
	return &extended, nil
}

func decodeQualityData(fields *rbits.FieldReader, quality Quality) (QualityData, error) {
	var data QualityData
	switch quality {
	case QualityLow:
		kind, err := ToLowKind(fields.Uint(3))
		if fields.Err() == nil && err != nil {
			return nil, err
		}
		data = LowQualityData{Kind: kind}
	case QualityNormal:
		data = NormalData{}
	case QualityHigh:
		fields.Skip(3)
		data = HighQualityData{}
	case QualityMagic:
		data = MagicData{
			PrefixID: fields.Uint(11),
			SuffixID: fields.Uint(11),
		}
	case QualitySet:
		data = SetData{SetID: fields.Uint(12)}
	case QualityRare, QualityCrafted:
		rare := RareData{
			FirstNameID:  fields.Uint(8),
			SecondNameID: fields.Uint(8),
			Affixes:      []int{},
		}
		for i := 0; i < RareAffixSlots; i++ {
			if fields.Bool() {
				rare.Affixes = append(rare.Affixes, fields.Uint(11))
			}
		}
		data = rare
		if quality == QualityCrafted {
			data = CraftedData{RareData: rare}
		}
	case QualityUnique:
		data = UniqueData{UniqueID: fields.Uint(12)}
	}
	if err := fields.Err(); err != nil {
		return nil, errors.Wrap(err, "ditem.decodeQualityData error")
	}
	return data, nil
}

// SetRequiredItems lists the piece counts encoded in a set bonus selector:
// bit k set means the bonus unlocks with k+2 pieces.
func SetRequiredItems(selector int) []int {
	required := []int{}
	for offset := 0; offset < SetSelectorBits; offset++ {
		if selector&(1<<offset) != 0 {
			required = append(required, offset+2)
		}
	}
	return required
}
