package maze

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mazereplay/internal/domain"
)

func TestParse(t *testing.T) {
	input := `
3 4

4 0 1 0
0 1 1 0
0 0 0 3
`
	layout, err := Parse(strings.NewReader(input), "maze.txt")
	require.NoError(t, err)
	require.Equal(t, 3, layout.Rows)
	require.Equal(t, 4, layout.Cols)
	require.Equal(t, []domain.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}, layout.Walls)
	require.Equal(t, &domain.Cell{Row: 0, Col: 0}, layout.Start)
	require.Equal(t, &domain.Cell{Row: 2, Col: 3}, layout.End)
}

func TestParseWithoutGoals(t *testing.T) {
	layout, err := Parse(strings.NewReader("2 2\n0 0\n0 7\n"), "")
	require.NoError(t, err)
	require.Empty(t, layout.Walls)
	require.Nil(t, layout.Start)
	require.Nil(t, layout.End)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"bad header", "3\n0 0 0\n", "first line must contain n m"},
		{"zero size", "0 3\n", "grid size must be positive"},
		{"too few rows", "3 2\n0 0\n0 0\n", "expected 3 rows after header, but got 2"},
		{"too many rows", "2 2\n0 0\n0 0\n1 1\n", "expected 2 rows after header, but got 3"},
		{"short row", "2 3\n0 0 0\n0 0\n", "row 1 length 2 != 3"},
		{"long row", "1 2\n0 0 1\n", "row 0 length 3 != 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "maze.txt")
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	_, err := Parse(strings.NewReader("\n  \n"), "empty.txt")
	require.ErrorIs(t, err, ErrEmpty)
}

func TestParseErrorLine(t *testing.T) {
	_, err := Parse(strings.NewReader("2 2\n\n0 0\n0\n"), "m.txt")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 4, perr.Line)
	require.True(t, strings.HasPrefix(err.Error(), "m.txt:4: "))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 3\n4 1 3\n"), 0644))

	layout, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, []domain.Cell{{Row: 0, Col: 1}}, layout.Walls)

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
