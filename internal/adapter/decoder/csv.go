package decoder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Jedelmann90/pii-detection-tool/internal/domain/entity"
)

// Error definitions for CSV decoding
var (
	ErrEmptyFile       = errors.New("csv file is empty")
	ErrDuplicateHeader = errors.New("csv file has duplicate column headers")
)

// ParseCSV decodes raw CSV bytes into an ordered table. The first row is
// the header. Rows shorter than the header leave the missing cells absent;
// longer rows have their extra cells dropped.
func ParseCSV(data []byte) (*entity.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	seen := make(map[string]struct{}, len(header))
	columns := make([]entity.Column, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, name)
		}
		seen[name] = struct{}{}
		columns[i] = entity.Column{Name: name}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		for i := range columns {
			if i < len(record) {
				columns[i].Values = append(columns[i].Values, record[i])
			} else {
				columns[i].Values = append(columns[i].Values, nil)
			}
		}
	}

	return &entity.Table{Columns: columns}, nil
}
