package dsave

import (
	"github.com/iancoleman/orderedmap"

	"github.com/thanhnguyen2187/d2-savior/d2/ditem"
	"github.com/thanhnguyen2187/d2-savior/ds"
)

type (
	Status     uint8
	Difficulty int

	Header struct {
		Magic          uint32   `json:"magic"`
		Version        uint32   `json:"version"`
		FileSize       uint32   `json:"file_size"`
		Checksum       int32    `json:"checksum"`
		ActiveWeapon   uint32   `json:"active_weapon"`
		Name           string   `json:"name"`
		Status         Status   `json:"status"`
		Progression    uint8    `json:"progression"`
		Class          uint8    `json:"class"`
		Level          uint8    `json:"level"`
		LastPlayed     uint32   `json:"last_played"`
		HotKeys        ds.Bytes `json:"hot_keys"`
		LeftSkill      uint32   `json:"left_skill"`
		RightSkill     uint32   `json:"right_skill"`
		LeftSwapSkill  uint32   `json:"left_swap_skill"`
		RightSwapSkill uint32   `json:"right_swap_skill"`
		Appearance     ds.Bytes `json:"appearance"`
		DifficultyRaw  ds.Bytes `json:"difficulty_raw"`
		MapID          uint32   `json:"map_id"`
		DeadMerc       uint16   `json:"dead_merc"`
		MercID         uint32   `json:"merc_id"`
		MercNameID     uint16   `json:"merc_name_id"`
		MercType       uint16   `json:"merc_type"`
		MercExperience uint32   `json:"merc_experience"`
		Quests         ds.Bytes `json:"quests"`
		Waypoints      ds.Bytes `json:"waypoints"`
		NPCIntro       ds.Bytes `json:"npc_intro"`
	}

	StatusFlags struct {
		Hardcore  bool `json:"hardcore"`
		Died      bool `json:"died"`
		Expansion bool `json:"expansion"`
		Ladder    bool `json:"ladder"`
	}

	Save struct {
		Header

		ClassName   string                 `json:"class_name"`
		Flags       StatusFlags            `json:"flags"`
		Difficulty  Difficulty             `json:"difficulty"`
		Act         int                    `json:"act"`
		SkillNames  []string               `json:"mouse_skill_names"`
		Attributes  *orderedmap.OrderedMap `json:"attributes"`
		Skills      *orderedmap.OrderedMap `json:"skills"`
		Items       []*ditem.Item          `json:"items"`
		CorpseItems []*ditem.Item          `json:"corpse_items"`
		MercItems   []*ditem.Item          `json:"merc_items"`
		GolemItem   *ditem.Item            `json:"golem_item"`
	}
)

const (
	Magic      = 0xAA55AA55
	HeaderSize = 765

	checksumOffset = 12
	checksumSize   = 4

	AttributesMagic = 0x6766 // "gf"
	SkillsMagic     = 0x6966 // "if"
	MercMagic       = 0x6A66 // "jf"
	GolemMagic      = 0x6B66 // "kf"
	SkillCount      = 30
	corpseSkip      = 12

	necromancerClass = 2
	maxAct           = 4
)

const (
	StatusHardcore  Status = 4
	StatusDied      Status = 8
	StatusExpansion Status = 32
	StatusLadder    Status = 64
)

const (
	DifficultyNormal Difficulty = iota
	DifficultyNightmare
	DifficultyHell
)

var (
	difficultyNames = []string{"normal", "nightmare", "hell"}

	// attributeNames is indexed by the 9-bit attribute id.
	attributeNames = []string{
		"strength",
		"energy",
		"dexterity",
		"vitality",
		"unused_stats",
		"unused_skills",
		"current_hp",
		"max_hp",
		"current_mana",
		"max_mana",
		"current_stamina",
		"max_stamina",
		"level",
		"experience",
		"gold",
		"stashed_gold",
	}
	attributeWidths = []int{10, 10, 10, 10, 10, 8, 21, 21, 21, 21, 21, 21, 7, 32, 25, 25}
	// Life, mana and stamina are stored as fixed point with 8 fraction bits.
	fixedPointIDs = []int{6, 7, 8, 9, 10, 11}
)

func (s Status) Flags() StatusFlags {
	return StatusFlags{
		Hardcore:  s&StatusHardcore != 0,
		Died:      s&StatusDied != 0,
		Expansion: s&StatusExpansion != 0,
		Ladder:    s&StatusLadder != 0,
	}
}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return "unknown"
	}
	return difficultyNames[d]
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
