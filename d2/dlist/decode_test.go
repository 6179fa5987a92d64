package dlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/ditem"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/d2/lbytes"
	"github.com/thanhnguyen2187/d2-savior/internal/testutil"
)

// socketHost encodes a normal-quality extended item with sockets, no
// durability and one strength attribute.
func socketHost(code string, category dref.Category, inserted int) []byte {
	w := testutil.ItemRecord{Socketed: true, Code: code, Inserted: inserted}.
		WriteSimple(testutil.NewBitWriter())
	w.Write(1, 32).Write(20, 7).Write(int(ditem.QualityNormal), 4).Bool(false).Bool(false)
	w.Bool(false)
	if category.HasDefense() {
		w.Write(30+ditem.DefenseBias, 11)
	}
	w.Write(0, 8)
	w.Write(inserted, 4)
	w.Attr(0, testutil.WidthsStrength, 32+1).EndAttrs()
	return w.Align().Bytes()
}

func socketed(code string) []byte {
	return testutil.SimpleItem(testutil.ItemRecord{Code: code, Location: int(ditem.LocationSocketed)})
}

func jewel() []byte {
	w := testutil.ItemRecord{Code: ditem.JewelCode, Location: int(ditem.LocationSocketed)}.
		WriteSimple(testutil.NewBitWriter())
	w.Write(2, 32).Write(40, 7).Write(int(ditem.QualityMagic), 4).Bool(false).Bool(false)
	w.Write(2, 11).Write(1, 11)
	w.Bool(false)
	w.Attr(0, testutil.WidthsStrength, 32+5).Attr(7, testutil.WidthsLife, 32+10).EndAttrs()
	return w.Align().Bytes()
}

func decode(t *testing.T, data []byte, skipHeader bool) ([]*ditem.Item, *lbytes.Reader, error) {
	t.Helper()
	reader := lbytes.NewBytesReader(data)
	items, err := Decode(reader, testutil.Tables(), skipHeader)
	return items, reader, err
}

func TestDecode_SimpleArmor(t *testing.T) {
	data := testutil.ItemList(1, testutil.SimpleItem(testutil.ItemRecord{
		Code:  "qui",
		X:     4,
		Y:     1,
		Panel: int(ditem.PanelStash),
	}))
	items, reader, err := decode(t, data, false)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.True(t, item.Simple)
	assert.Equal(t, "qui", item.Code)
	assert.Equal(t, "Quilted Armor", item.Name)
	assert.Equal(t, ditem.LocationStored, item.Location)
	assert.Equal(t, 4, item.X)
	assert.Equal(t, 1, item.Y)
	assert.Equal(t, ditem.PanelStash, item.Panel)
	assert.Empty(t, item.SocketedItems)
	assert.Zero(t, reader.Len())
}

func TestDecode_Empty(t *testing.T) {
	items, reader, err := decode(t, testutil.ItemList(0), false)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, reader.Len())
}

func TestDecode_SocketEffect(t *testing.T) {
	data := testutil.ItemList(1, socketHost("lrg", dref.CategoryShield, 1), socketed("r02"))
	items, reader, err := decode(t, data, false)
	require.NoError(t, err)
	require.Len(t, items, 1)

	host := items[0]
	assert.Equal(t, []string{"+1 to Strength", "7% Increased Chance of Blocking"}, host.Extended.MagicAttrs)
	require.Len(t, host.SocketedItems, 1)
	assert.Equal(t, "r02", host.SocketedItems[0].Code)
	assert.Zero(t, reader.Len())
}

func TestDecode_SocketEffectDependsOnHost(t *testing.T) {
	data := testutil.ItemList(
		2,
		socketHost("cap", dref.CategoryArmor, 1), socketed("r01"),
		socketHost("hax", dref.CategoryWeapon, 1), socketed("r01"),
	)
	items, _, err := decode(t, data, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"+1 to Strength", "+15 Defense", "+1 to Light Radius"}, items[0].Extended.MagicAttrs)
	assert.Equal(t, []string{"+1 to Strength", "+50 to Attack Rating", "+1 to Light Radius"}, items[1].Extended.MagicAttrs)
}

func TestDecode_EmbeddedSocketFillers(t *testing.T) {
	tables, err := dref.LoadEmbedded()
	require.NoError(t, err)

	data := testutil.ItemList(
		2,
		socketHost("hax", dref.CategoryWeapon, 3), socketed("r20"), socketed("gfv"), socketed("r07"),
		socketHost("lrg", dref.CategoryShield, 1), socketed("glw"),
	)
	items, err := Decode(lbytes.NewBytesReader(data), tables, false)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, []string{
		"+1 to Strength",
		"75% Extra Gold from Monsters",
		"+60 to Attack Rating",
		"+75 poison damage over 5 seconds",
	}, items[0].Extended.MagicAttrs)
	assert.Equal(t, "Lem Rune", items[0].SocketedItems[0].Name)
	assert.Equal(t, []string{
		"+1 to Strength",
		"Fire Resist +14%",
		"Lightning Resist +14%",
		"Cold Resist +14%",
		"Poison Resist +14%",
	}, items[1].Extended.MagicAttrs)
}

func TestDecode_Jewel(t *testing.T) {
	data := testutil.ItemList(1, socketHost("hax", dref.CategoryWeapon, 1), jewel())
	items, _, err := decode(t, data, false)
	require.NoError(t, err)
	require.Len(t, items, 1)

	host := items[0]
	assert.Equal(t, []string{"+1 to Strength", "+5 to Strength", "+10 to Life"}, host.Extended.MagicAttrs)
	require.Len(t, host.SocketedItems, 1)
	assert.Equal(t, "Sturdy Health", host.SocketedItems[0].Name)
}

func TestDecode_Inflation(t *testing.T) {
	// The declared count covers only the host; its two inserted records
	// follow and a trailing record must stay unread.
	trailing := testutil.SimpleItem(testutil.ItemRecord{Code: "cap"})
	data := testutil.ItemList(
		1,
		socketHost("hax", dref.CategoryWeapon, 2), socketed("r01"), socketed("gsv"),
		trailing,
	)
	items, reader, err := decode(t, data, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Len(t, items[0].SocketedItems, 2)
	assert.Equal(t, len(trailing), reader.Len())
}

func TestDecode_SimpleItemDoesNotInflate(t *testing.T) {
	host := testutil.SimpleItem(testutil.ItemRecord{Code: "hax", Inserted: 1})
	data := testutil.ItemList(1, host, socketed("r01"))
	items, reader, err := decode(t, data, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, len(socketed("r01")), reader.Len())
}

func TestDecode_SkipHeader(t *testing.T) {
	data := testutil.SimpleItem(testutil.ItemRecord{Code: "hax"})
	items, reader, err := decode(t, data, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hand Axe", items[0].Name)
	assert.Zero(t, reader.Len())
}

func TestDecode_UnlistedSimpleItem(t *testing.T) {
	data := testutil.ItemList(2,
		testutil.SimpleItem(testutil.ItemRecord{Code: "mp3", Location: int(ditem.LocationBelt)}),
		testutil.SimpleItem(testutil.ItemRecord{Code: "cap"}),
	)
	items, reader, err := decode(t, data, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "mp3", items[0].Code)
	assert.Equal(t, dref.CategoryMisc, items[0].Category)
	assert.Equal(t, "", items[0].Name)
	assert.Equal(t, "Cap", items[1].Name)
	assert.Zero(t, reader.Len())
}

func TestDecode_Errors(t *testing.T) {
	type testCase struct {
		name string
		data []byte
	}
	testCases := []testCase{
		{"bad header", []byte{'J', 'N', 1, 0}},
		{"unknown socket item", testutil.ItemList(1, socketHost("cap", dref.CategoryArmor, 1), socketed("gsv"))},
		{"unlisted socket item", testutil.ItemList(1, socketHost("cap", dref.CategoryArmor, 1), socketed("r20"))},
		{"no host", testutil.ItemList(1, socketed("r01"))},
		{"simple host", testutil.ItemList(2, testutil.SimpleItem(testutil.ItemRecord{Code: "cap"}), socketed("r01"))},
	}
	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			items, _, err := decode(t, c.data, false)
			require.Error(t, err)
			assert.Nil(t, items)
			assert.True(t, derr.IsFormat(err))
		})
	}

	_, _, err := decode(t, testutil.ItemList(2, testutil.SimpleItem(testutil.ItemRecord{Code: "cap"})), false)
	assert.True(t, derr.IsInput(err))
}
