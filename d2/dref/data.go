package dref

import "strings"

type (
	Category int

	ItemInfo struct {
		Category     Category
		Name         string
		Quantitative bool
	}

	MagicAttr struct {
		Bits      []int  `yaml:"bits"`
		Bias      int    `yaml:"bias"`
		Template  string `yaml:"template"`
		Invisible bool   `yaml:"invisible"`
	}

	SocketAttr struct {
		ID     int   `yaml:"id"`
		Values []int `yaml:"values"`
	}

	// Lookup resolves codes and ids found in item data to display text and
	// layout hints. Every method reports a miss through its bool result.
	Lookup interface {
		Item(code string) (ItemInfo, bool)
		MagicAttr(id int) (MagicAttr, bool)
		MagicName(prefixID int, suffixID int) (string, bool)
		RareName(firstID int, secondID int) (string, bool)
		SetName(id int) (string, bool)
		UniqueName(id int) (string, bool)
		RunewordName(id int) (string, bool)
		SocketAttrs(code string, host Category) ([]SocketAttr, bool)
		ClassName(id int) (string, bool)
		SkillName(id int) (string, bool)
		SkillTreeName(id int) (string, bool)
		SkillTreeOffset(classID int) (int, bool)
		ClassSkillOffset(classID int) (int, bool)
		MonsterName(id int) (string, bool)
	}

	// Source is the on-disk shape of the reference tables. Each YAML file
	// fills a disjoint subset of the fields.
	Source struct {
		Armors       map[string]string `yaml:"armors"`
		Shields      map[string]string `yaml:"shields"`
		Weapons      map[string]string `yaml:"weapons"`
		Misc         map[string]string `yaml:"misc"`
		Quantitative []string          `yaml:"quantitative"`

		MagicAttrs map[int]MagicAttr `yaml:"magic_attrs"`

		MagicPrefixes map[int]string `yaml:"magic_prefixes"`
		MagicSuffixes map[int]string `yaml:"magic_suffixes"`
		RareNames     map[int]string `yaml:"rare_names"`
		SetNames      map[int]string `yaml:"set_names"`
		UniqueNames   map[int]string `yaml:"unique_names"`
		RunewordNames map[int]string `yaml:"runeword_names"`

		ArmorSockets  map[string][]SocketAttr `yaml:"armor_sockets"`
		ShieldSockets map[string][]SocketAttr `yaml:"shield_sockets"`
		WeaponSockets map[string][]SocketAttr `yaml:"weapon_sockets"`

		Classes           map[int]string `yaml:"classes"`
		ClassSkillOffsets map[int]int    `yaml:"class_skill_offsets"`
		SkillTrees        map[int]string `yaml:"skill_trees"`
		Skills            map[int]string `yaml:"skills"`
		Monsters          map[int]string `yaml:"monsters"`
	}
)

const (
	CategoryArmor Category = iota
	CategoryShield
	CategoryWeapon
	CategoryMisc
)

// TreesPerClass is the number of skill trees each class owns.
const TreesPerClass = 3

var SourceFiles = []string{
	"items.yaml",
	"attributes.yaml",
	"names.yaml",
	"sockets.yaml",
	"characters.yaml",
}

var categoryNames = map[Category]string{
	CategoryArmor:  "armor",
	CategoryShield: "shield",
	CategoryWeapon: "weapon",
	CategoryMisc:   "misc",
}

func (c Category) String() string {
	name, ok := categoryNames[c]
	if !ok {
		return "unknown"
	}
	return name
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// HasDefense tells whether items of the category carry a defense field.
func (c Category) HasDefense() bool {
	return c == CategoryArmor || c == CategoryShield
}

// HasDurability tells whether items of the category carry durability fields.
func (c Category) HasDurability() bool {
	return c != CategoryMisc
}

func joinNames(first string, second string) string {
	return strings.TrimSpace(first + " " + second)
}
