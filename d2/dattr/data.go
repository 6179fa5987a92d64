package dattr

import (
	"github.com/thanhnguyen2187/d2-savior/ds"
)

const (
	// Terminator ends every magic attribute list.
	Terminator = 0x1FF
	IDWidth    = 9

	IDPoison     = 57
	IDReanimate  = 155
	IDSkillTree  = 188
	poisonTicks  = 25
	poisonFactor = 10.24
)

var (
	classFirstIDs = []int{83, 84}
	skillFirstIDs = append([]int{97, 107, 109}, ds.MakeRange(181, 188, 1)...)
	// Chance-to-cast and charged skills carry the skill in their second value.
	skillSecondIDs = ds.MakeRange(195, 214, 1)
)
