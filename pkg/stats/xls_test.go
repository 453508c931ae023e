package stats

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	wb := xlsx.NewFile()
	for i, row := range rows {
		for j, v := range row {
			cell, err := xlsx.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, wb.SetCellValue("Sheet1", cell, v))
		}
	}

	p := filepath.Join(t.TempDir(), "popu-pref.xlsx")
	require.NoError(t, wb.SaveAs(p))
	return p
}

func TestOpen_XLSX(t *testing.T) {
	p := writeWorkbook(t, [][]string{
		{"2010", "x", "A", "b", "c", "d", "e", "100"},
		{"2015", "x", "A", "b", "c", "d", "e", "150"},
	})

	src, err := Open(context.Background(), p, Options{})
	require.NoError(t, err)

	rows := readLines(t, src)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0][PrefectureColumn])
	assert.Equal(t, "150", rows[1][PopulationColumn])
}

func TestOpen_BrokenWorkbook(t *testing.T) {
	p := writeFile(t, "broken.xlsx", "this is not a zip")
	_, err := Open(context.Background(), p, Options{})
	assert.ErrorIs(t, err, ErrOpen)

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"), Options{})
	assert.ErrorIs(t, err, ErrOpen)
}

func TestSaveXLSX(t *testing.T) {
	r := NewReport("x", DefaultYears, []RankingEntry{
		{Prefecture: "A", Stats: PrefectureStats{Popu10: 100, Popu15: 150, Change: 1.5}},
		{Prefecture: "B", Stats: PrefectureStats{Popu10: 0, Popu15: 0, Change: math.NaN()}},
	})

	p := filepath.Join(t.TempDir(), "ranking.xlsx")
	require.NoError(t, SaveXLSX(p, r, ""))

	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()

	src, err := OpenXLSX(f, p)
	require.NoError(t, err)

	rows := readLines(t, src)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "Prefecture", "Population 2010", "Population 2015", DefaultLabel}, rows[0])
	assert.Equal(t, "A", rows[1][1])
	assert.Equal(t, "B", rows[2][1])
	assert.Equal(t, "NaN", rows[2][4])
}
