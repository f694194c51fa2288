package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

func sampleTable(codes ...string) *revenue.Table {
	t := &revenue.Table{Columns: []string{"公司代號", "公司名稱", revenue.IndustryColumn, "當月營收"}}
	for _, c := range codes {
		t.Rows = append(t.Rows, []string{c, "公司,股份", revenue.Industry(c), "1234"})
	}
	return t
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "revenue_sii_113_07.csv", FileName(revenue.MarketListed, 113, 7))
	assert.Equal(t, "revenue_otc_114_12.csv", FileName(revenue.MarketOTC, 114, 12))
}

func TestCSVWriter_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	w := NewCSVWriter(dir, nil)

	path, err := w.Save(sampleTable("2330"), revenue.MarketListed, 113, 7)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "revenue_sii_113_07.csv"), path)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBF公司代號,公司名稱,產業別,當月營收\n2330,\"公司,股份\",電子工業,1234\n", string(got))
}

func TestCSVWriter_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	buf := new(bytes.Buffer)
	w := NewCSVWriter(dir, logger.NewWithWriter("info", buf))

	_, err := w.Save(sampleTable("2330", "2303", "1101"), revenue.MarketOTC, 113, 1)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "overwriting")

	path, err := w.Save(sampleTable("1101"), revenue.MarketOTC, 113, 1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "overwriting existing file")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBF公司代號,公司名稱,產業別,當月營收\n1101,\"公司,股份\",水泥工業,1234\n", string(got))
}

func TestCSVWriter_SaveEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	w := NewCSVWriter(dir, nil)

	_, err := w.Save(&revenue.Table{Columns: []string{"a"}}, revenue.MarketListed, 113, 7)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = w.Save(nil, revenue.MarketListed, 113, 7)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}
