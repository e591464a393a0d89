// Package maze parses maze description files.
//
// The first non-blank line holds the grid size `n m`. The next n non-blank
// lines hold m integers each: 1 is a wall, 4 the start, 3 the end, anything
// else open floor.
package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"mazereplay/internal/domain"
)

// Cell codes
const (
	CodeWall  = 1
	CodeEnd   = 3
	CodeStart = 4
)

// ErrEmpty is returned for a file with no content
var ErrEmpty = errors.New("empty maze file")

var intPattern = regexp.MustCompile(`-?\d+`)

// Layout is a parsed maze. Start and End are nil when the file has no 4/3 cell.
type Layout struct {
	Rows  int
	Cols  int
	Walls []domain.Cell
	Start *domain.Cell
	End   *domain.Cell
}

// ParseError reports a malformed header or row
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	src := e.Path
	if src == "" {
		src = "maze"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", src, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", src, e.Reason)
}

func ints(line string) ([]int, error) {
	matches := intPattern.FindAllString(line, -1)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.Atoi(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type numbered struct {
	no   int
	text string
}

// Parse reads a maze description. path is only used to label errors.
func Parse(r io.Reader, path string) (*Layout, error) {
	var lines []numbered
	scanner := bufio.NewScanner(r)
	no := 0
	for scanner.Scan() {
		no++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, numbered{no: no, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read maze file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	header, err := ints(lines[0].text)
	if err != nil || len(header) < 2 {
		return nil, &ParseError{Path: path, Line: lines[0].no, Reason: fmt.Sprintf("first line must contain n m, got: %q", lines[0].text)}
	}
	rows, cols := header[0], header[1]
	if rows <= 0 || cols <= 0 {
		return nil, &ParseError{Path: path, Line: lines[0].no, Reason: fmt.Sprintf("grid size must be positive, got %dx%d", rows, cols)}
	}
	if len(lines)-1 != rows {
		return nil, &ParseError{Path: path, Reason: fmt.Sprintf("expected %d rows after header, but got %d", rows, len(lines)-1)}
	}

	layout := &Layout{Rows: rows, Cols: cols}
	for x := 0; x < rows; x++ {
		line := lines[1+x]
		values, err := ints(line.text)
		if err != nil || len(values) != cols {
			return nil, &ParseError{Path: path, Line: line.no, Reason: fmt.Sprintf("row %d length %d != %d. Line=%q", x, len(values), cols, line.text)}
		}
		for y, v := range values {
			c := domain.Cell{Row: x, Col: y}
			switch v {
			case CodeWall:
				layout.Walls = append(layout.Walls, c)
			case CodeStart:
				layout.Start = &c
			case CodeEnd:
				layout.End = &c
			}
		}
	}
	return layout, nil
}

// LoadFile parses a maze description from disk
func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze file: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}
