package dsave

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
	"github.com/thanhnguyen2187/d2-savior/internal/testutil"
)

type saveOptions struct {
	class      byte
	status     Status
	difficulty [3]byte
	mercID     uint32
	dead       bool
	hasGolem   bool
}

// buildSave assembles a character save with one stored item, fixing up the
// size and checksum fields.
func buildSave(options saveOptions) []byte {
	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:], Magic)
	binary.LittleEndian.PutUint32(header[4:], 96)
	copy(header[20:], "Tester")
	header[36] = byte(options.status)
	header[40] = options.class
	header[43] = 12
	binary.LittleEndian.PutUint32(header[120:], 0)
	binary.LittleEndian.PutUint32(header[124:], 36)
	copy(header[168:], options.difficulty[:])
	binary.LittleEndian.PutUint32(header[179:], options.mercID)
	header[335] = 0x66

	attributes := testutil.NewBitWriter().
		Write(0, 9).Write(30, 10).
		Write(6, 9).Write(12928, 21).
		Write(12, 9).Write(12, 7).
		Write(13, 9).Write(70000, 32).
		Write(0x1FF, 9).
		Align().Bytes()

	skills := make([]byte, SkillCount)
	skills[0] = 3
	skills[4] = 1

	data := header
	data = append(data, 'g', 'f')
	data = append(data, attributes...)
	data = append(data, 'i', 'f')
	data = append(data, skills...)
	data = append(data, testutil.ItemList(1, testutil.SimpleItem(testutil.ItemRecord{Code: "cap"}))...)
	if options.dead {
		data = append(data, 'J', 'M', 1, 0)
		data = append(data, make([]byte, corpseSkip)...)
		data = append(data, testutil.ItemList(1, testutil.SimpleItem(testutil.ItemRecord{Code: "qui"}))...)
	} else {
		data = append(data, 'J', 'M', 0, 0)
	}
	if options.status&StatusExpansion != 0 {
		data = append(data, 'j', 'f')
		if options.mercID != 0 {
			data = append(data, testutil.ItemList(1, testutil.SimpleItem(testutil.ItemRecord{Code: "hax"}))...)
		}
		if options.class == necromancerClass {
			data = append(data, 'k', 'f')
			if options.hasGolem {
				data = append(data, 1)
				data = append(data, testutil.SimpleItem(testutil.ItemRecord{Code: "hax"})...)
			} else {
				data = append(data, 0)
			}
		}
	}

	binary.LittleEndian.PutUint32(data[8:], uint32(len(data)))
	binary.LittleEndian.PutUint32(data[12:], uint32(Checksum(data)))
	return data
}

func embedded(t *testing.T) *dref.Tables {
	t.Helper()
	tables, err := dref.LoadEmbedded()
	require.NoError(t, err)
	return tables
}

func TestDecode_Expansion(t *testing.T) {
	data := buildSave(saveOptions{
		class:      necromancerClass,
		status:     StatusExpansion | StatusHardcore,
		difficulty: [3]byte{0x00, 0x82, 0x00},
		mercID:     5,
		hasGolem:   true,
	})
	save, err := Decode(data, embedded(t))
	require.NoError(t, err)

	assert.Equal(t, "Tester", save.Name)
	assert.Equal(t, "Necromancer", save.ClassName)
	assert.Equal(t, uint8(12), save.Level)
	assert.Equal(t, StatusFlags{Hardcore: true, Expansion: true}, save.Flags)
	assert.Equal(t, DifficultyNightmare, save.Difficulty)
	assert.Equal(t, 2, save.Act)
	assert.Equal(t, []string{"Attack", "Fire Bolt", "Attack", "Attack"}, save.SkillNames)
	assert.Equal(t, byte(0x66), save.Quests[0])
	assert.Len(t, save.Quests, 298)

	strength, _ := save.Attributes.Get("strength")
	assert.Equal(t, uint32(30), strength)
	hp, _ := save.Attributes.Get("current_hp")
	assert.Equal(t, 50.5, hp)
	experience, _ := save.Attributes.Get("experience")
	assert.Equal(t, uint32(70000), experience)
	gold, _ := save.Attributes.Get("gold")
	assert.Equal(t, 0, gold)
	assert.Len(t, save.Attributes.Keys(), 16)

	keys := save.Skills.Keys()
	require.Len(t, keys, SkillCount)
	assert.Equal(t, "Amplify Damage", keys[0])
	points, _ := save.Skills.Get("Amplify Damage")
	assert.Equal(t, 3, points)
	points, _ = save.Skills.Get("Raise Skeleton")
	assert.Equal(t, 1, points)

	require.Len(t, save.Items, 1)
	assert.Equal(t, "Cap", save.Items[0].Name)
	assert.Empty(t, save.CorpseItems)
	require.Len(t, save.MercItems, 1)
	assert.Equal(t, "Hand Axe", save.MercItems[0].Name)
	require.NotNil(t, save.GolemItem)
	assert.Equal(t, "hax", save.GolemItem.Code)
}

func TestDecode_ClassicDead(t *testing.T) {
	data := buildSave(saveOptions{
		class:      4,
		status:     StatusDied,
		difficulty: [3]byte{0x80, 0x00, 0x00},
		dead:       true,
	})
	save, err := Decode(data, embedded(t))
	require.NoError(t, err)
	assert.Equal(t, "Barbarian", save.ClassName)
	assert.True(t, save.Flags.Died)
	assert.Equal(t, DifficultyNormal, save.Difficulty)
	require.Len(t, save.CorpseItems, 1)
	assert.Equal(t, "qui", save.CorpseItems[0].Code)
	assert.Nil(t, save.MercItems)
	assert.Nil(t, save.GolemItem)

	keys := save.Skills.Keys()
	assert.Equal(t, "Bash", keys[0])
}

func TestDecode_Invalid(t *testing.T) {
	valid := func() []byte {
		return buildSave(saveOptions{class: 1, difficulty: [3]byte{0x80, 0, 0}})
	}

	badChecksum := valid()
	badChecksum[HeaderSize-1] ^= 0xFF

	badMagic := valid()
	badMagic[0] = 0

	badSize := append(valid(), 0)

	badDifficulty := valid()
	badDifficulty[168] = 0
	binary.LittleEndian.PutUint32(badDifficulty[12:], uint32(Checksum(badDifficulty)))

	badAttributes := valid()
	badAttributes[HeaderSize] = 'x'
	binary.LittleEndian.PutUint32(badAttributes[12:], uint32(Checksum(badAttributes)))

	for name, data := range map[string][]byte{
		"checksum":   badChecksum,
		"magic":      badMagic,
		"size":       badSize,
		"difficulty": badDifficulty,
		"attributes": badAttributes,
	} {
		_, err := Decode(data, embedded(t))
		assert.True(t, derr.IsFormat(err), name)
	}

	_, err := Decode(valid()[:100], embedded(t))
	assert.True(t, derr.IsInput(err))
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, int32(11), Checksum([]byte{1, 2, 3}))

	data := make([]byte, 20)
	data[19] = 7
	withStored := append([]byte(nil), data...)
	copy(withStored[12:16], []byte{0xDE, 0xAD, 0xBE, 0xEF})
	assert.Equal(t, Checksum(data), Checksum(withStored))

	// The sum turns negative after 31 doublings and the next step carries one.
	overflow := append([]byte{1}, make([]byte, 31)...)
	assert.Equal(t, int32(math.MinInt32), Checksum(overflow))
	assert.Equal(t, int32(1), Checksum(append(overflow, 0)))
}

func TestDecodeDifficulty(t *testing.T) {
	type testCase struct {
		raw        []byte
		difficulty Difficulty
		act        int
	}
	for _, c := range []testCase{
		{[]byte{0x80, 0, 0}, DifficultyNormal, 0},
		{[]byte{0, 0x83, 0}, DifficultyNightmare, 3},
		{[]byte{0, 0, 0x84}, DifficultyHell, 4},
	} {
		difficulty, act, err := DecodeDifficulty(c.raw)
		require.NoError(t, err)
		assert.Equal(t, c.difficulty, difficulty)
		assert.Equal(t, c.act, act)
	}

	for _, raw := range [][]byte{{0, 0, 0}, {0x80, 0x80, 0}, {0x85, 0, 0}} {
		_, _, err := DecodeDifficulty(raw)
		assert.True(t, derr.IsFormat(err))
	}
}
