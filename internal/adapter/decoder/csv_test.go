package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("decodes header and rows in column order", func(t *testing.T) {
		data := []byte("name,email,age\nJohn,john@test.com,30\nJane,jane@test.com,25\n")

		table, err := ParseCSV(data)

		require.NoError(t, err)
		require.Len(t, table.Columns, 3)
		assert.Equal(t, "name", table.Columns[0].Name)
		assert.Equal(t, "email", table.Columns[1].Name)
		assert.Equal(t, "age", table.Columns[2].Name)
		assert.Equal(t, []any{"John", "Jane"}, table.Columns[0].Values)
		assert.Equal(t, []any{"john@test.com", "jane@test.com"}, table.Columns[1].Values)
	})

	t.Run("short rows leave trailing cells absent", func(t *testing.T) {
		data := []byte("a,b,c\n1,2\n3\n")

		table, err := ParseCSV(data)

		require.NoError(t, err)
		assert.Equal(t, []any{"1", "3"}, table.Columns[0].Values)
		assert.Equal(t, []any{"2", nil}, table.Columns[1].Values)
		assert.Equal(t, []any{nil, nil}, table.Columns[2].Values)
	})

	t.Run("long rows drop the extra cells", func(t *testing.T) {
		data := []byte("a,b\n1,2,3,4\n")

		table, err := ParseCSV(data)

		require.NoError(t, err)
		assert.Equal(t, []any{"1"}, table.Columns[0].Values)
		assert.Equal(t, []any{"2"}, table.Columns[1].Values)
	})

	t.Run("header only yields empty columns", func(t *testing.T) {
		table, err := ParseCSV([]byte("name,email\n"))

		require.NoError(t, err)
		require.Len(t, table.Columns, 2)
		assert.Empty(t, table.Columns[0].Values)
	})

	t.Run("handles quoted fields", func(t *testing.T) {
		data := []byte("address\n\"1 Main St, Springfield\"\n")

		table, err := ParseCSV(data)

		require.NoError(t, err)
		assert.Equal(t, []any{"1 Main St, Springfield"}, table.Columns[0].Values)
	})

	t.Run("trims header whitespace", func(t *testing.T) {
		table, err := ParseCSV([]byte(" name , email \nJohn,j@t.c\n"))

		require.NoError(t, err)
		assert.Equal(t, "name", table.Columns[0].Name)
		assert.Equal(t, "email", table.Columns[1].Name)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		_, err := ParseCSV([]byte(""))

		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects duplicate headers", func(t *testing.T) {
		_, err := ParseCSV([]byte("id,name,id\n1,John,2\n"))

		assert.ErrorIs(t, err, ErrDuplicateHeader)
	})
}
