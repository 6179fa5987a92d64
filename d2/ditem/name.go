package ditem

import (
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
)

// ResolveName returns the display name of item: the magic, rare, set or
// unique name when the item has one, then the runeword name, then the base
// name. Crafted items have no name of their own.
func ResolveName(item *Item, lookup dref.Lookup) string {
	if item.Extended != nil {
		if name, ok := qualityName(item.Extended, lookup); ok {
			return name
		}
		if item.Extended.RunewordID != nil {
			if name, ok := lookup.RunewordName(*item.Extended.RunewordID); ok {
				return name
			}
		}
	}
	return item.BaseName
}

func qualityName(extended *Extended, lookup dref.Lookup) (string, bool) {
	switch data := extended.QualityData.(type) {
	case MagicData:
		return lookup.MagicName(data.PrefixID, data.SuffixID)
	case RareData:
		return lookup.RareName(data.FirstNameID, data.SecondNameID)
	case SetData:
		return lookup.SetName(data.SetID)
	case UniqueData:
		return lookup.UniqueName(data.UniqueID)
	}
	return "", false
}
