package ditem

import (
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
)

type (
	Location  int
	EquipSlot int
	Panel     int
	Quality   int
	LowKind   int

	Item struct {
		Identified   bool `json:"identified"`
		Socketed     bool `json:"socketed"`
		New          bool `json:"new"`
		Ear          bool `json:"ear"`
		StartItem    bool `json:"start_item"`
		Simple       bool `json:"simple"`
		Ethereal     bool `json:"ethereal"`
		Personalized bool `json:"personalized"`
		Runeword     bool `json:"runeword"`

		Version  int       `json:"version"`
		Location Location  `json:"location"`
		Equipped EquipSlot `json:"equipped"`
		X        int       `json:"x"`
		Y        int       `json:"y"`
		Panel    Panel     `json:"panel"`

		Code         string        `json:"code"`
		Category     dref.Category `json:"category"`
		BaseName     string        `json:"base_name"`
		Name         string        `json:"name"`
		Quantitative bool          `json:"quantitative"`

		// InsertedCount is the number of socketed records that follow this
		// one in the stream.
		InsertedCount int `json:"inserted_count"`

		EarInfo  *EarInfo  `json:"ear_info,omitempty"`
		Extended *Extended `json:"extended,omitempty"`

		SocketedItems []*Item `json:"socketed_items"`
	}

	EarInfo struct {
		Class     int    `json:"class"`
		ClassName string `json:"class_name"`
		Level     int    `json:"level"`
		Name      string `json:"name"`
	}

	Extended struct {
		ID            uint32      `json:"id"`
		Level         int         `json:"level"`
		Quality       Quality     `json:"quality"`
		PictureID     *int        `json:"picture_id,omitempty"`
		ClassSpecific bool        `json:"class_specific"`
		QualityData   QualityData `json:"quality_data"`

		RunewordID       *int    `json:"runeword_id,omitempty"`
		PersonalizedName *string `json:"personalized_name,omitempty"`
		Timestamp        bool    `json:"timestamp"`

		Defense       *int `json:"defense,omitempty"`
		MaxDurability *int `json:"max_durability,omitempty"`
		CurDurability *int `json:"cur_durability,omitempty"`
		Quantity      *int `json:"quantity,omitempty"`
		SocketCount   *int `json:"socket_count,omitempty"`

		MagicAttrs    []string `json:"magic_attrs"`
		SetExtraAttrs []string `json:"set_extra_attrs,omitempty"`

		// SetReqItems lists how many set pieces unlock each SetExtraAttrs entry.
		SetReqItems []int `json:"set_req_items,omitempty"`
	}

	// QualityData holds the fields only present for one quality tier.
	QualityData interface {
		Quality() Quality
	}

	LowQualityData struct {
		Kind LowKind `json:"kind"`
	}
	NormalData      struct{}
	HighQualityData struct{}
	MagicData       struct {
		PrefixID int `json:"prefix_id"`
		SuffixID int `json:"suffix_id"`
	}
	SetData struct {
		SetID int `json:"set_id"`
	}
	RareData struct {
		FirstNameID  int   `json:"first_name_id"`
		SecondNameID int   `json:"second_name_id"`
		Affixes      []int `json:"affixes"`
	}
	CraftedData struct {
		RareData
	}
	UniqueData struct {
		UniqueID int `json:"unique_id"`
	}
)

const (
	Magic = 0x4D4A
	// EarCode replaces the item code of player ears.
	EarCode    = "ear"
	JewelCode  = "jew"
	CodeLength = 4
	// SimpleBits is the size of a simple non-ear record before alignment.
	SimpleBits = 111

	NameCharWidth   = 7
	DefenseBias     = 10
	RareAffixSlots  = 6
	SetSelectorBits = 5
)

const (
	LocationStored   Location = 0
	LocationEquipped Location = 1
	LocationBelt     Location = 2
	LocationCursor   Location = 4
	LocationSocketed Location = 6
)

const (
	EquipNone EquipSlot = iota
	EquipHead
	EquipNeck
	EquipTorso
	EquipRightHand
	EquipLeftHand
	EquipRightRing
	EquipLeftRing
	EquipBelt
	EquipFeet
	EquipGloves
	EquipAltRightHand
	EquipAltLeftHand
)

const (
	PanelNone      Panel = 0
	PanelInventory Panel = 1
	PanelCube      Panel = 4
	PanelStash     Panel = 5
)

const (
	QualityLow Quality = iota + 1
	QualityNormal
	QualityHigh
	QualityMagic
	QualitySet
	QualityRare
	QualityUnique
	QualityCrafted
)

const (
	LowCrude LowKind = iota
	LowCracked
	LowDamaged
	LowLowQuality
)

var (
	locationNames = map[Location]string{
		LocationStored:   "stored",
		LocationEquipped: "equipped",
		LocationBelt:     "belt",
		LocationCursor:   "cursor",
		LocationSocketed: "socketed",
	}
	equipNames = map[EquipSlot]string{
		EquipNone:         "none",
		EquipHead:         "head",
		EquipNeck:         "neck",
		EquipTorso:        "torso",
		EquipRightHand:    "right_hand",
		EquipLeftHand:     "left_hand",
		EquipRightRing:    "right_ring",
		EquipLeftRing:     "left_ring",
		EquipBelt:         "belt",
		EquipFeet:         "feet",
		EquipGloves:       "gloves",
		EquipAltRightHand: "alt_right_hand",
		EquipAltLeftHand:  "alt_left_hand",
	}
	panelNames = map[Panel]string{
		PanelNone:      "none",
		PanelInventory: "inventory",
		PanelCube:      "cube",
		PanelStash:     "stash",
	}
	qualityNames = map[Quality]string{
		QualityLow:     "low",
		QualityNormal:  "normal",
		QualityHigh:    "high",
		QualityMagic:   "magic",
		QualitySet:     "set",
		QualityRare:    "rare",
		QualityUnique:  "unique",
		QualityCrafted: "crafted",
	}
	lowKindNames = map[LowKind]string{
		LowCrude:      "crude",
		LowCracked:    "cracked",
		LowDamaged:    "damaged",
		LowLowQuality: "low_quality",
	}

	// setExtraCounts maps the set bonus selector to the number of bonus
	// attribute lists that follow.
	setExtraCounts = map[int]int{
		0:  0,
		1:  1,
		2:  1,
		3:  2,
		4:  1,
		6:  2,
		7:  3,
		10: 2,
		12: 2,
		15: 4,
		31: 5,
	}

	tomeCodes = []string{"tbk", "ibk"}
)
