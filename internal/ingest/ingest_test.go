package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "b.csv", "title\n")
	writeCSV(t, dir, "a.csv", "title\n")
	writeCSV(t, dir, "notes.txt", "ignored")

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", filepath.Base(files[0]), "sorted by name")
	assert.Equal(t, "b.csv", filepath.Base(files[1]))
}

func TestLoadAllMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	f1 := writeCSV(t, dir, "one.csv", "title,keyword\nWhat is a CRM?,crm\n,orphan\nPricing info,\n")
	f2 := writeCSV(t, dir, "two.csv", "question\nHow do I export data?\n")

	res := LoadAll([]string{f1, f2})
	assert.Equal(t, 2, res.FilesRead)
	assert.Equal(t, 0, res.FilesSkipped)
	assert.Equal(t, 1, res.RowsDropped, "empty title counted")
	require.Len(t, res.Records, 3)

	assert.Equal(t, "What is a CRM?", res.Records[0].Title)
	assert.Equal(t, "crm", res.Records[0].Keyword)
	assert.Equal(t, "one.csv", res.Records[0].SourceFile)
	assert.Equal(t, "Pricing info", res.Records[1].Title)
	assert.Equal(t, "", res.Records[1].Keyword, "missing keyword defaults to empty")
	assert.Equal(t, "How do I export data?", res.Records[2].Title, "question header accepted as title")
	assert.NotEmpty(t, res.Records[0].ID)
	assert.NotEqual(t, res.Records[0].ID, res.Records[1].ID)
}

func TestLoadAllSkipsSchemaErrorFiles(t *testing.T) {
	dir := t.TempDir()
	bad := writeCSV(t, dir, "bad.csv", "foo,bar\n1,2\n")
	good := writeCSV(t, dir, "good.csv", "title\nWhy is sync slow?\n")

	res := LoadAll([]string{bad, good})
	assert.Equal(t, 1, res.FilesSkipped)
	assert.Equal(t, 1, res.FilesRead)
	require.Len(t, res.SkipErrors, 1)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Why is sync slow?", res.Records[0].Title)
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "title"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "keyword"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "When does my trial end?"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "trial"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res := LoadAll([]string{path})
	require.Len(t, res.Records, 1)
	assert.Equal(t, "When does my trial end?", res.Records[0].Title)
	assert.Equal(t, "trial", res.Records[0].Keyword)
	assert.Equal(t, "input.xlsx", res.Records[0].SourceFile)
}
