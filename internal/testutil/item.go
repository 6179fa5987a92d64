package testutil

// ItemRecord describes the always-present part of an item record.
type ItemRecord struct {
	Identified   bool
	Socketed     bool
	New          bool
	Ear          bool
	StartItem    bool
	Simple       bool
	Ethereal     bool
	Personalized bool
	Runeword     bool
	Version      int
	Location     int
	Equipped     int
	X            int
	Y            int
	Panel        int

	Code     string
	Inserted int

	EarClass int
	EarLevel int
	EarName  string
}

const ItemMagic = 0x4D4A

// WriteSimple writes the fixed layout shared by every item. The caller
// continues with the extended fields when Simple is false.
func (r ItemRecord) WriteSimple(w *BitWriter) *BitWriter {
	w.Write(ItemMagic, 16).
		Skip(4).Bool(r.Identified).
		Skip(6).Bool(r.Socketed).
		Skip(1).Bool(r.New).
		Skip(2).Bool(r.Ear).Bool(r.StartItem).
		Skip(3).Bool(r.Simple).Bool(r.Ethereal).
		Skip(1).Bool(r.Personalized).
		Skip(1).Bool(r.Runeword).
		Skip(5).Write(r.Version, 8).
		Skip(2).Write(r.Location, 3).Write(r.Equipped, 4).
		Write(r.X, 4).Write(r.Y, 3).
		Skip(1).Write(r.Panel, 3)
	if r.Ear {
		return w.Write(r.EarClass, 3).Write(r.EarLevel, 7).String(r.EarName, 7)
	}
	code := []byte(r.Code)
	for i := 0; i < 4; i++ {
		c := byte(' ')
		if i < len(code) {
			c = code[i]
		}
		w.Write(int(c), 8)
	}
	return w.Write(r.Inserted, 3)
}

// SimpleItem returns the byte-aligned encoding of a simple item.
func SimpleItem(r ItemRecord) []byte {
	r.Simple = true
	return r.WriteSimple(NewBitWriter()).Align().Bytes()
}

// ItemList prefixes encoded items with the "JM" marker and a count.
func ItemList(count int, items ...[]byte) []byte {
	data := []byte{'J', 'M', byte(count), byte(count >> 8)}
	for _, item := range items {
		data = append(data, item...)
	}
	return data
}
