package testutil

import (
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
)

var (
	WidthsStrength = []int{8}
	WidthsLife     = []int{9}
	WidthsDefense  = []int{11}
	WidthsPoison   = []int{10, 10, 9}
	WidthsClass    = []int{3, 3}
	WidthsSkill    = []int{9, 6}
	WidthsTree     = []int{3, 3, 10, 3}
	WidthsOnAttack = []int{6, 10, 7}
	WidthsHidden   = []int{6}
)

// Source is a small reference data set with the entries decoder tests use.
func Source() dref.Source {
	return dref.Source{
		Armors:       map[string]string{"cap": "Cap", "dr6": "Alpha Helm", "qui": "Quilted Armor"},
		Shields:      map[string]string{"lrg": "Large Shield", "uow": "Aegis"},
		Weapons:      map[string]string{"hax": "Hand Axe", "9gi": "Ancient Axe"},
		Misc:         map[string]string{"ear": "Ear", "jew": "Jewel", "r01": "El Rune", "r02": "Eld Rune", "gsv": "Amethyst", "tbk": "Tome of Town Portal", "key": "Key", "rin": "Ring"},
		Quantitative: []string{"tbk", "key"},
		MagicAttrs: map[int]dref.MagicAttr{
			0:   {Bits: WidthsStrength, Bias: 32, Template: "+{} to Strength"},
			7:   {Bits: WidthsLife, Bias: 32, Template: "+{} to Life"},
			19:  {Bits: []int{10}, Template: "+{} to Attack Rating"},
			20:  {Bits: []int{6}, Template: "{}% Increased Chance of Blocking"},
			23:  {Bits: WidthsHidden, Template: "+{} to Minimum Damage", Invisible: true},
			31:  {Bits: WidthsDefense, Bias: 10, Template: "+{} Defense"},
			39:  {Bits: []int{8}, Bias: 50, Template: "Fire Resist +{}%"},
			57:  {Bits: WidthsPoison, Template: "{} poison damage over {} seconds"},
			83:  {Bits: WidthsClass, Template: "+{1} to {0} Skill Levels"},
			89:  {Bits: []int{4}, Bias: 4, Template: "+{} to Light Radius"},
			97:  {Bits: WidthsSkill, Template: "+{1} to {0}"},
			127: {Bits: []int{3}, Template: "+{} to All Skills"},
			155: {Bits: []int{10, 7}, Template: "{1}% Reanimate as: {0}"},
			188: {Bits: WidthsTree, Template: "+{3} to {0} ({1} Only)"},
			195: {Bits: WidthsOnAttack, Template: "{2}% Chance to cast level {0} {1} on attack"},
			214: {Bits: []int{6}, Template: "+({}*0.125) Defense (Based on Character Level)"},
		},
		MagicPrefixes: map[int]string{2: "Sturdy"},
		MagicSuffixes: map[int]string{1: "Health"},
		RareNames:     map[int]string{1: "Bite", 2: "Scratch"},
		SetNames:      map[int]string{0: "Civerb's Ward", 53: "Angelic Wings"},
		UniqueNames:   map[int]string{298: "Tomb Reaver"},
		RunewordNames: map[int]string{59: "Enigma"},
		ArmorSockets: map[string][]dref.SocketAttr{
			"r01": {{ID: 31, Values: []int{15}}, {ID: 89, Values: []int{1}}},
		},
		ShieldSockets: map[string][]dref.SocketAttr{
			"r02": {{ID: 20, Values: []int{7}}},
		},
		WeaponSockets: map[string][]dref.SocketAttr{
			"r01": {{ID: 19, Values: []int{50}}, {ID: 89, Values: []int{1}}},
			"gsv": {{ID: 19, Values: []int{80}}},
		},
		Classes:           map[int]string{0: "Amazon", 1: "Sorceress", 2: "Necromancer", 3: "Paladin", 4: "Barbarian", 5: "Druid", 6: "Assassin"},
		ClassSkillOffsets: map[int]int{0: 6, 1: 36, 2: 66, 3: 96, 4: 126, 5: 221, 6: 251},
		SkillTrees: map[int]string{
			0: "Bow and Crossbow Skills", 1: "Passive and Magic Skills", 2: "Javelin and Spear Skills",
			3: "Fire Skills", 4: "Lightning Skills", 5: "Cold Skills",
			12: "Combat Skills", 13: "Combat Masteries", 14: "Warcries",
		},
		Skills:   map[int]string{6: "Magic Arrow", 36: "Fire Bolt", 37: "Warmth", 54: "Teleport", 64: "Frozen Orb", 126: "Bash", 149: "Battle Orders"},
		Monsters: map[int]string{19: "Zombie"},
	}
}

// Tables builds the lookup for Source. It panics on error since the source
// is fixed.
func Tables() *dref.Tables {
	tables, err := dref.NewTables(Source())
	if err != nil {
		panic(err)
	}
	return tables
}
