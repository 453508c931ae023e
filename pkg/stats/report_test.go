package stats

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	r := NewReport("popu-pref.csv", DefaultYears, []RankingEntry{
		{Prefecture: "A", Stats: PrefectureStats{Popu10: 100, Popu15: 150, Change: 1.5, Finalized: true}},
		{Prefecture: "B", Stats: PrefectureStats{Popu10: 0, Popu15: 5, Change: math.Inf(1), Finalized: true}},
		{Prefecture: "C", Stats: PrefectureStats{Popu10: math.NaN(), Popu15: 0, Change: math.NaN(), Finalized: true}},
	})
	require.NoError(t, r.Save(path))

	loaded, found, err := LoadIfExists(path)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, r.ID, loaded.ID)
	assert.Equal(t, r.Years, loaded.Years)
	require.Len(t, loaded.Entries, 3)
	assert.Equal(t, r.Entries[0], loaded.Entries[0])
	assert.True(t, math.IsInf(loaded.Entries[1].Stats.Change, 1))
	assert.True(t, math.IsNaN(loaded.Entries[2].Stats.Popu10))
	assert.True(t, math.IsNaN(loaded.Entries[2].Stats.Change))
}

func TestLoadIfExists_Missing(t *testing.T) {
	r, found, err := LoadIfExists(filepath.Join(t.TempDir(), "none.json"))
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, r)
}

func TestLoadIfExists_Corrupt(t *testing.T) {
	p := writeFile(t, "report.json", "{not json")

	_, found, err := LoadIfExists(p)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestNewReport_UniqueIDs(t *testing.T) {
	a := NewReport("x", DefaultYears, nil)
	b := NewReport("x", DefaultYears, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, []RankingEntry{{Prefecture: "A"}})
	assert.Contains(t, buf.String(), "Prefecture: (string) (len=1) \"A\"")
}
