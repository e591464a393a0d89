package trace

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// maxContent is how much of an offending line a LoadError keeps
const maxContent = 200

// maxLine bounds a single record; `walls` records for big mazes get long
const maxLine = 4 << 20

// LoadError reports a trace line that could not be decoded. Loading stops
// at the first such line and nothing from the file is used.
type LoadError struct {
	Path    string
	Line    int
	Content string
	Err     error
}

func (e *LoadError) Error() string {
	src := e.Path
	if src == "" {
		src = "trace"
	}
	return fmt.Sprintf("%s: JSON decode error at line %d: %v\nLine=%s", src, e.Line, e.Err, e.Content)
}

func (e *LoadError) Unwrap() error { return e.Err }

// truncate cuts line to maxContent bytes without splitting a rune.
// Bytes that were never valid UTF-8 are replaced.
func truncate(line []byte) string {
	if len(line) > maxContent {
		line = line[:maxContent]
		for i := 0; i < utf8.UTFMax-1 && len(line) > 0; i++ {
			r, size := utf8.DecodeLastRune(line)
			if r != utf8.RuneError || size != 1 {
				break
			}
			line = line[:len(line)-1]
		}
	}
	return string(bytes.ToValidUTF8(line, []byte("\uFFFD")))
}

// Read decodes a newline-delimited trace. Blank lines are skipped.
// path is only used to label errors.
func Read(r io.Reader, path string) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	var events []Event
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := decodeLine(line, lineNo)
		if err != nil {
			return nil, &LoadError{Path: path, Line: lineNo, Content: truncate(line), Err: err}
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Line: lineNo + 1, Err: err}
	}
	return events, nil
}

// LoadFile reads a trace file from disk
func LoadFile(path string) ([]Event, error) {
	if path == "" {
		return nil, fmt.Errorf("empty trace path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}
