package dref

import (
	"embed"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
)

//go:embed data/*.yaml
var embedded embed.FS

// Tables is the in-memory Lookup built from a Source.
type Tables struct {
	items         map[string]ItemInfo
	magicAttrs    map[int]MagicAttr
	magicPrefixes map[int]string
	magicSuffixes map[int]string
	rareNames     map[int]string
	setNames      map[int]string
	uniqueNames   map[int]string
	runewordNames map[int]string
	sockets       map[Category]map[string][]SocketAttr
	classes       map[int]string
	skillOffsets  map[int]int
	skillTrees    map[int]string
	skills        map[int]string
	monsters      map[int]string
}

var _ Lookup = (*Tables)(nil)

func NewTables(source Source) (*Tables, error) {
	for id, attr := range source.MagicAttrs {
		if len(attr.Bits) == 0 {
			return nil, derr.Inputf("magic attribute %d declares no values", id)
		}
		for _, width := range attr.Bits {
			if width < 1 || width > 32 {
				return nil, derr.Inputf("magic attribute %d declares width %d", id, width)
			}
		}
	}

	quantitative := lo.SliceToMap(
		source.Quantitative,
		func(code string) (string, bool) {
			return code, true
		},
	)
	items := map[string]ItemInfo{}
	categorized := []lo.Tuple2[Category, map[string]string]{
		lo.T2(CategoryArmor, source.Armors),
		lo.T2(CategoryShield, source.Shields),
		lo.T2(CategoryWeapon, source.Weapons),
		lo.T2(CategoryMisc, source.Misc),
	}
	for _, entry := range categorized {
		for code, name := range entry.B {
			if previous, ok := items[code]; ok {
				return nil, derr.Inputf(
					"item code %q is both %s and %s",
					code, previous.Category, entry.A,
				)
			}
			items[code] = ItemInfo{
				Category:     entry.A,
				Name:         name,
				Quantitative: quantitative[code],
			}
		}
	}

	return &Tables{
		items:         items,
		magicAttrs:    orEmpty(source.MagicAttrs),
		magicPrefixes: orEmpty(source.MagicPrefixes),
		magicSuffixes: orEmpty(source.MagicSuffixes),
		rareNames:     orEmpty(source.RareNames),
		setNames:      orEmpty(source.SetNames),
		uniqueNames:   orEmpty(source.UniqueNames),
		runewordNames: orEmpty(source.RunewordNames),
		sockets: map[Category]map[string][]SocketAttr{
			CategoryArmor:  orEmpty(source.ArmorSockets),
			CategoryShield: orEmpty(source.ShieldSockets),
			CategoryWeapon: orEmpty(source.WeaponSockets),
		},
		classes:      orEmpty(source.Classes),
		skillOffsets: orEmpty(source.ClassSkillOffsets),
		skillTrees:   orEmpty(source.SkillTrees),
		skills:       orEmpty(source.Skills),
		monsters:     orEmpty(source.Monsters),
	}, nil
}

func orEmpty[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return m
}

// LoadSource reads every file in SourceFiles from fsys into one Source.
func LoadSource(fsys fs.FS) (Source, error) {
	source := Source{}
	for _, name := range SourceFiles {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return Source{}, errors.Wrap(derr.Input(err, "read "+name), "dref.LoadSource error")
		}
		if err := yaml.Unmarshal(data, &source); err != nil {
			return Source{}, errors.Wrap(derr.Input(err, "parse "+name), "dref.LoadSource error")
		}
	}
	return source, nil
}

func Load(fsys fs.FS) (*Tables, error) {
	source, err := LoadSource(fsys)
	if err != nil {
		return nil, errors.Wrap(err, "dref.Load error")
	}
	tables, err := NewTables(source)
	if err != nil {
		return nil, errors.Wrap(err, "dref.Load error")
	}
	return tables, nil
}

// LoadEmbedded builds the tables shipped with the binary.
func LoadEmbedded() (*Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "dref.LoadEmbedded error")
	}
	return Load(sub)
}

func (t *Tables) Item(code string) (ItemInfo, bool) {
	info, ok := t.items[code]
	return info, ok
}

func (t *Tables) MagicAttr(id int) (MagicAttr, bool) {
	attr, ok := t.magicAttrs[id]
	return attr, ok
}

// MagicName joins prefix and suffix. Id 0 on either side means "none"
// unless the table defines it.
func (t *Tables) MagicName(prefixID int, suffixID int) (string, bool) {
	prefix, okPrefix := t.magicPrefixes[prefixID]
	suffix, okSuffix := t.magicSuffixes[suffixID]
	if (!okPrefix && prefixID != 0) || (!okSuffix && suffixID != 0) {
		return "", false
	}
	return joinNames(prefix, suffix), true
}

func (t *Tables) RareName(firstID int, secondID int) (string, bool) {
	first, okFirst := t.rareNames[firstID]
	second, okSecond := t.rareNames[secondID]
	if !okFirst || !okSecond {
		return "", false
	}
	return joinNames(first, second), true
}

func (t *Tables) SetName(id int) (string, bool) {
	name, ok := t.setNames[id]
	return name, ok
}

func (t *Tables) UniqueName(id int) (string, bool) {
	name, ok := t.uniqueNames[id]
	return name, ok
}

func (t *Tables) RunewordName(id int) (string, bool) {
	name, ok := t.runewordNames[id]
	return name, ok
}

func (t *Tables) SocketAttrs(code string, host Category) ([]SocketAttr, bool) {
	byCode, ok := t.sockets[host]
	if !ok {
		return nil, false
	}
	attrs, ok := byCode[code]
	return attrs, ok
}

func (t *Tables) ClassName(id int) (string, bool) {
	name, ok := t.classes[id]
	return name, ok
}

func (t *Tables) SkillName(id int) (string, bool) {
	name, ok := t.skills[id]
	return name, ok
}

func (t *Tables) SkillTreeName(id int) (string, bool) {
	name, ok := t.skillTrees[id]
	return name, ok
}

func (t *Tables) SkillTreeOffset(classID int) (int, bool) {
	if _, ok := t.classes[classID]; !ok {
		return 0, false
	}
	return classID * TreesPerClass, true
}

func (t *Tables) ClassSkillOffset(classID int) (int, bool) {
	offset, ok := t.skillOffsets[classID]
	return offset, ok
}

func (t *Tables) MonsterName(id int) (string, bool) {
	name, ok := t.monsters[id]
	return name, ok
}
