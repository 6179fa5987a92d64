// Package dsave decodes character save files (.d2s).
package dsave

import (
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/ditem"
	"github.com/thanhnguyen2187/d2-savior/d2/dlist"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/d2/lbytes"
	"github.com/thanhnguyen2187/d2-savior/d2/rbits"
)

// Checksum sums data the way the game does, with the stored checksum bytes
// counted as zero.
func Checksum(data []byte) int32 {
	return lo.Reduce(
		data,
		func(sum int32, b byte, i int) int32 {
			if i >= checksumOffset && i < checksumOffset+checksumSize {
				b = 0
			}
			carry := int32(0)
			if sum < 0 {
				carry = 1
			}
			return sum<<1 + int32(b) + carry
		},
		0,
	)
}

func DecodeHeader(reader *lbytes.Reader) (*Header, error) {
	readUint8 := lbytes.CreateUint8ReadFunction(reader)
	readUint16 := lbytes.CreateUint16ReadFunction(reader)
	readUint32 := lbytes.CreateUint32ReadFunction(reader)
	readInt := lbytes.CreateIntReadFunction(reader)
	skip := func(n int) lbytes.ReadFunction {
		return lbytes.CreateSkipReadFunction(reader, n)
	}
	readBytes := func(n int) lbytes.ReadFunction {
		return lbytes.CreateNBytesReadFunction(reader, n)
	}

	headerInstructions := []lbytes.Instruction{
		{Key: "magic", ReadFunction: readUint32},
		{Key: "version", ReadFunction: readUint32},
		{Key: "file_size", ReadFunction: readUint32},
		{Key: "checksum", ReadFunction: readInt},
		{Key: "active_weapon", ReadFunction: readUint32},
		{Key: "name", ReadFunction: lbytes.CreateStringReadFunction(reader, 16)},
		{Key: "status", ReadFunction: readUint8},
		{Key: "progression", ReadFunction: readUint8},
		{Key: lbytes.KeySkip, ReadFunction: skip(2)},
		{Key: "class", ReadFunction: readUint8},
		{Key: lbytes.KeySkip, ReadFunction: skip(2)},
		{Key: "level", ReadFunction: readUint8},
		{Key: lbytes.KeySkip, ReadFunction: skip(4)},
		{Key: "last_played", ReadFunction: readUint32},
		{Key: lbytes.KeySkip, ReadFunction: skip(4)},
		{Key: "hot_keys", ReadFunction: readBytes(64)},
		{Key: "left_skill", ReadFunction: readUint32},
		{Key: "right_skill", ReadFunction: readUint32},
		{Key: "left_swap_skill", ReadFunction: readUint32},
		{Key: "right_swap_skill", ReadFunction: readUint32},
		{Key: "appearance", ReadFunction: readBytes(32)},
		{Key: "difficulty_raw", ReadFunction: readBytes(3)},
		{Key: "map_id", ReadFunction: readUint32},
		{Key: lbytes.KeySkip, ReadFunction: skip(2)},
		{Key: "dead_merc", ReadFunction: readUint16},
		{Key: "merc_id", ReadFunction: readUint32},
		{Key: "merc_name_id", ReadFunction: readUint16},
		{Key: "merc_type", ReadFunction: readUint16},
		{Key: "merc_experience", ReadFunction: readUint32},
		{Key: lbytes.KeySkip, ReadFunction: skip(144)},
		{Key: "quests", ReadFunction: readBytes(298)},
		{Key: "waypoints", ReadFunction: readBytes(81)},
		{Key: "npc_intro", ReadFunction: readBytes(51)},
	}

	header, err := lbytes.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "dsave.DecodeHeader error")
	}
	return header, nil
}

// ValidateHeader checks the header constants against the whole file.
func ValidateHeader(header *Header, data []byte) error {
	if header.Magic != Magic {
		return derr.Formatf("invalid save header: 0x%08X", header.Magic)
	}
	if header.FileSize < HeaderSize || int(header.FileSize) != len(data) {
		return derr.Formatf("invalid file size: %d declared, %d read", header.FileSize, len(data))
	}
	if expected := Checksum(data); header.Checksum != expected {
		return derr.Formatf("checksum mismatch: 0x%08X stored, 0x%08X computed", uint32(header.Checksum), uint32(expected))
	}
	return nil
}

// DecodeDifficulty finds the active difficulty, the one whose byte has the
// high bit set, and the act stored in that byte's low bits.
func DecodeDifficulty(raw []byte) (Difficulty, int, error) {
	active := lo.Filter(
		[]Difficulty{DifficultyNormal, DifficultyNightmare, DifficultyHell},
		func(d Difficulty, _ int) bool {
			return int(d) < len(raw) && raw[d]&0x80 != 0
		},
	)
	if len(active) != 1 {
		return 0, 0, derr.Formatf("invalid difficulty block: %v", raw)
	}
	difficulty := active[0]
	act := int(raw[difficulty] & 0x07)
	if act > maxAct {
		return 0, 0, derr.Formatf("invalid act: %d", act)
	}
	return difficulty, act, nil
}

// DecodeAttributes reads the "gf" section. Every attribute is present in the
// result, zero when the file omits it.
func DecodeAttributes(reader *lbytes.Reader) (*orderedmap.OrderedMap, error) {
	magic, err := reader.ReadUint16BE()
	if err != nil {
		return nil, errors.Wrap(err, "dsave.DecodeAttributes error")
	}
	if magic != AttributesMagic {
		return nil, derr.Formatf("invalid attributes header: 0x%04X", magic)
	}

	attributes := orderedmap.New()
	for _, name := range attributeNames {
		attributes.Set(name, 0)
	}

	bitReader := rbits.NewReader(reader)
	for {
		id, err := bitReader.Read(9)
		if err != nil {
			return nil, errors.Wrap(err, "dsave.DecodeAttributes error")
		}
		if id == 0x1FF {
			break
		}
		if int(id) >= len(attributeNames) {
			return nil, derr.Formatf("unknown character attribute id: %d", id)
		}
		value, err := bitReader.Read(attributeWidths[id])
		if err != nil {
			return nil, errors.Wrapf(err, "dsave.DecodeAttributes error: %s", attributeNames[id])
		}
		if lo.Contains(fixedPointIDs, int(id)) {
			attributes.Set(attributeNames[id], float64(value)/256)
		} else {
			attributes.Set(attributeNames[id], value)
		}
	}
	if err := bitReader.Align(); err != nil {
		return nil, errors.Wrap(err, "dsave.DecodeAttributes error")
	}
	return attributes, nil
}

// DecodeSkills reads the "if" section: one point count per class skill.
func DecodeSkills(reader *lbytes.Reader, lookup dref.Lookup, class int) (*orderedmap.OrderedMap, error) {
	magic, err := reader.ReadUint16BE()
	if err != nil {
		return nil, errors.Wrap(err, "dsave.DecodeSkills error")
	}
	if magic != SkillsMagic {
		return nil, derr.Formatf("invalid skills header: 0x%04X", magic)
	}
	offset, ok := lookup.ClassSkillOffset(class)
	if !ok {
		return nil, derr.Formatf("unknown class: %d", class)
	}

	points, err := reader.ReadBytes(SkillCount)
	if err != nil {
		return nil, errors.Wrap(err, "dsave.DecodeSkills error")
	}
	skills := orderedmap.New()
	for i, point := range points {
		name, ok := lookup.SkillName(offset + i)
		if !ok {
			return nil, derr.Formatf("unknown skill: %d", offset+i)
		}
		skills.Set(name, int(point))
	}
	return skills, nil
}

func decodeCorpse(reader *lbytes.Reader, lookup dref.Lookup) ([]*ditem.Item, error) {
	magic, err := reader.ReadUint16BE()
	if err != nil {
		return nil, err
	}
	dead, err := reader.ReadUint16()
	if err != nil {
		return nil, err
	}
	if dead == 0 || magic != dlist.Magic {
		return []*ditem.Item{}, nil
	}
	if err := reader.Skip(corpseSkip); err != nil {
		return nil, err
	}
	return dlist.Decode(reader, lookup, false)
}

func decodeMerc(reader *lbytes.Reader, lookup dref.Lookup, mercID uint32) ([]*ditem.Item, error) {
	magic, err := reader.ReadUint16BE()
	if err != nil {
		return nil, err
	}
	if magic != MercMagic || mercID == 0 {
		return []*ditem.Item{}, nil
	}
	return dlist.Decode(reader, lookup, false)
}

func decodeGolem(reader *lbytes.Reader, lookup dref.Lookup) (*ditem.Item, error) {
	magic, err := reader.ReadUint16BE()
	if err != nil {
		return nil, err
	}
	hasGolem, err := reader.ReadUint8()
	if err != nil {
		return nil, err
	}
	if hasGolem == 0 || magic != GolemMagic {
		return nil, nil
	}
	items, err := dlist.Decode(reader, lookup, true)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// Decode reads a whole character save.
func Decode(data []byte, lookup dref.Lookup) (*Save, error) {
	reader := lbytes.NewBytesReader(data)
	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "dsave.Decode error")
	}
	if err := ValidateHeader(header, data); err != nil {
		return nil, errors.Wrap(err, "dsave.Decode error")
	}

	save := Save{
		Header: *header,
		Flags:  header.Status.Flags(),
	}
	className, ok := lookup.ClassName(int(header.Class))
	if !ok {
		return nil, derr.Formatf("unknown class: %d", header.Class)
	}
	save.ClassName = className
	if save.Difficulty, save.Act, err = DecodeDifficulty(header.DifficultyRaw); err != nil {
		return nil, errors.Wrap(err, "dsave.Decode error")
	}
	save.SkillNames = lo.Map(
		[]uint32{header.LeftSkill, header.RightSkill, header.LeftSwapSkill, header.RightSwapSkill},
		func(id uint32, _ int) string {
			name, _ := lookup.SkillName(int(id))
			return name
		},
	)

	if save.Attributes, err = DecodeAttributes(reader); err != nil {
		return nil, errors.Wrap(err, "dsave.Decode error")
	}
	if save.Skills, err = DecodeSkills(reader, lookup, int(header.Class)); err != nil {
		return nil, errors.Wrap(err, "dsave.Decode error")
	}
	if save.Items, err = dlist.Decode(reader, lookup, false); err != nil {
		return nil, errors.Wrap(err, "dsave.Decode error: items")
	}
	if save.CorpseItems, err = decodeCorpse(reader, lookup); err != nil {
		return nil, errors.Wrap(err, "dsave.Decode error: corpse items")
	}
	if save.Flags.Expansion {
		if save.MercItems, err = decodeMerc(reader, lookup, header.MercID); err != nil {
			return nil, errors.Wrap(err, "dsave.Decode error: mercenary items")
		}
		if header.Class == necromancerClass {
			if save.GolemItem, err = decodeGolem(reader, lookup); err != nil {
				return nil, errors.Wrap(err, "dsave.Decode error: golem item")
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"name":  save.Name,
		"class": save.ClassName,
		"items": len(save.Items),
	}).Debug("decoded character save")
	return &save, nil
}
