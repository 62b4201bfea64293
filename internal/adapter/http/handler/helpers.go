package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/Jedelmann90/pii-detection-tool/internal/adapter/decoder"
	"github.com/Jedelmann90/pii-detection-tool/internal/domain/entity"
)

// DefaultMaxUploadBytes caps uploaded files when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20 // 10MB

// IsCSVFilename reports whether the uploaded filename looks like a CSV.
func IsCSVFilename(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}

// ReadUploadedTable validates one uploaded file and decodes it into an
// ordered table. Validation failures return the sentinel upload errors so
// they map to 4xx responses rather than internal errors.
func ReadUploadedTable(fileHeader *multipart.FileHeader, maxBytes int64) (*entity.Table, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	if !IsCSVFilename(fileHeader.Filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileHeader.Filename)
	}
	if fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// The header size is client-supplied, so re-check while reading.
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, fileHeader.Filename)
	}

	return decoder.ParseCSV(data)
}
