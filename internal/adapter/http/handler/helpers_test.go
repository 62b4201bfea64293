package handler

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jedelmann90/pii-detection-tool/internal/adapter/decoder"
)

func uploadFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestIsCSVFilename(t *testing.T) {
	assert.True(t, IsCSVFilename("data.csv"))
	assert.True(t, IsCSVFilename("DATA.CSV"))
	assert.True(t, IsCSVFilename("export.backup.csv"))
	assert.False(t, IsCSVFilename("data.xlsx"))
	assert.False(t, IsCSVFilename("data.csv.gz"))
	assert.False(t, IsCSVFilename("csv"))
	assert.False(t, IsCSVFilename(""))
}

func TestReadUploadedTable(t *testing.T) {
	t.Run("decodes a valid csv upload", func(t *testing.T) {
		fh := uploadFileHeader(t, "users.csv", "name,email\nJohn,john@test.com\n")

		table, err := ReadUploadedTable(fh, 0)

		require.NoError(t, err)
		require.Len(t, table.Columns, 2)
		assert.Equal(t, "name", table.Columns[0].Name)
		assert.Equal(t, "email", table.Columns[1].Name)
		assert.Equal(t, []any{"John"}, table.Columns[0].Values)
	})

	t.Run("rejects non-csv filenames", func(t *testing.T) {
		fh := uploadFileHeader(t, "data.xlsx", "name\nJohn\n")

		_, err := ReadUploadedTable(fh, 0)

		assert.ErrorIs(t, err, ErrUnsupportedFileType)
	})

	t.Run("rejects files over the size limit", func(t *testing.T) {
		fh := uploadFileHeader(t, "big.csv", "name\n"+strings.Repeat("x", 100))

		_, err := ReadUploadedTable(fh, 50)

		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		fh := uploadFileHeader(t, "empty.csv", "")

		_, err := ReadUploadedTable(fh, 0)

		assert.ErrorIs(t, err, decoder.ErrEmptyFile)
	})

	t.Run("applies the default limit when none is configured", func(t *testing.T) {
		fh := uploadFileHeader(t, "small.csv", "id\n1\n")

		table, err := ReadUploadedTable(fh, -1)

		require.NoError(t, err)
		assert.Len(t, table.Columns, 1)
	})
}
