package dstash

import (
	"github.com/thanhnguyen2187/d2-savior/d2/ditem"
)

type (
	Kind int

	PageFlags struct {
		Shared    bool `json:"shared"`
		Index     bool `json:"index"`
		MainIndex bool `json:"main_index"`
		Reserved  bool `json:"reserved"`
	}

	Page struct {
		Number int           `json:"page"`
		Flags  *PageFlags    `json:"flags"`
		Name   *string       `json:"name"`
		Items  []*ditem.Item `json:"items"`
	}

	Stash struct {
		Kind       Kind    `json:"kind"`
		Version    uint16  `json:"version"`
		SharedGold *uint32 `json:"shared_gold,omitempty"`
		PageCount  uint32  `json:"page_count"`
		Pages      []Page  `json:"stash"`
	}

	d2xHeader struct {
		Magic     uint32 `json:"magic"`
		Version   uint16 `json:"version"`
		PageCount uint32 `json:"page_count"`
	}
)

const (
	KindPersonal Kind = iota
	KindShared
)

const (
	PersonalMagic = 0x4D545343 // "CSTM"
	SharedMagic   = 0x535353   // "SSS\0"
	PageMagic     = 0x5453     // "ST"

	Version1 = 0x3130 // "01"
	Version2 = 0x3230 // "02"

	flagShared    = 24
	flagIndex     = 16
	flagMainIndex = 8
	flagReserved  = 0
)

var kindNames = map[Kind]string{
	KindPersonal: "personal",
	KindShared:   "shared",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "unknown"
	}
	return name
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func ToPageFlags(raw uint32) PageFlags {
	isSet := func(bit int) bool {
		return raw>>bit&1 == 1
	}
	return PageFlags{
		Shared:    isSet(flagShared),
		Index:     isSet(flagIndex),
		MainIndex: isSet(flagMainIndex),
		Reserved:  isSet(flagReserved),
	}
}
