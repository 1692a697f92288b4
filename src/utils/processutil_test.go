package utils

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleFrame() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"mpg", "horsepower", "origin"},
		{"18", "130", "usa"},
		{"24", "NaN", "japan"},
	})
}

func TestHasColumnAndMissing(t *testing.T) {
	df := sampleFrame()
	assert.True(t, HasColumn(df, "mpg"))
	assert.False(t, HasColumn(df, "weight"))
	assert.Equal(t, []string{"weight", "cylinders"}, MissingColumns(df, []string{"mpg", "weight", "cylinders"}))
	assert.Nil(t, MissingColumns(df, []string{"origin"}))
	assert.True(t, Contains([]int{4, 6, 8}, 6))
}

func TestSaveToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, SaveToExcel(sampleFrame(), path, "cars"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("cars")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"mpg", "horsepower", "origin"}, rows[0])
	assert.Equal(t, "usa", rows[1][2])
	// 缺失值写成空单元格
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "japan", rows[2][2])
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(sampleFrame(), &buf, ""))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "18", v)
}
