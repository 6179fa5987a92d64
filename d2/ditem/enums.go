package ditem

import (
	"github.com/thanhnguyen2187/d2-savior/d2/derr"
)

func enumName[T comparable](names map[T]string, value T) string {
	name, ok := names[value]
	if !ok {
		return "unknown"
	}
	return name
}

func toEnum[T comparable](names map[T]string, raw int, kind string, convert func(int) T) (T, error) {
	value := convert(raw)
	if _, ok := names[value]; !ok {
		var zero T
		return zero, derr.Formatf("invalid %s: %d", kind, raw)
	}
	return value, nil
}

func ToLocation(raw int) (Location, error) {
	return toEnum(locationNames, raw, "location", func(i int) Location { return Location(i) })
}

func ToEquipSlot(raw int) (EquipSlot, error) {
	return toEnum(equipNames, raw, "equip slot", func(i int) EquipSlot { return EquipSlot(i) })
}

func ToPanel(raw int) (Panel, error) {
	return toEnum(panelNames, raw, "panel", func(i int) Panel { return Panel(i) })
}

func ToQuality(raw int) (Quality, error) {
	return toEnum(qualityNames, raw, "quality", func(i int) Quality { return Quality(i) })
}

func ToLowKind(raw int) (LowKind, error) {
	return toEnum(lowKindNames, raw, "low quality kind", func(i int) LowKind { return LowKind(i) })
}

func (l Location) String() string  { return enumName(locationNames, l) }
func (e EquipSlot) String() string { return enumName(equipNames, e) }
func (p Panel) String() string     { return enumName(panelNames, p) }
func (q Quality) String() string   { return enumName(qualityNames, q) }
func (k LowKind) String() string   { return enumName(lowKindNames, k) }

func (l Location) MarshalText() ([]byte, error)  { return []byte(l.String()), nil }
func (e EquipSlot) MarshalText() ([]byte, error) { return []byte(e.String()), nil }
func (p Panel) MarshalText() ([]byte, error)     { return []byte(p.String()), nil }
func (q Quality) MarshalText() ([]byte, error)   { return []byte(q.String()), nil }
func (k LowKind) MarshalText() ([]byte, error)   { return []byte(k.String()), nil }

func (LowQualityData) Quality() Quality  { return QualityLow }
func (NormalData) Quality() Quality      { return QualityNormal }
func (HighQualityData) Quality() Quality { return QualityHigh }
func (MagicData) Quality() Quality       { return QualityMagic }
func (SetData) Quality() Quality         { return QualitySet }
func (RareData) Quality() Quality        { return QualityRare }
func (CraftedData) Quality() Quality     { return QualityCrafted }
func (UniqueData) Quality() Quality      { return QualityUnique }
