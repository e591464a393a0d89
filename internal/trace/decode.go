package trace

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"mazereplay/internal/domain"
)

var (
	// ErrInvalidEncoding is returned for a line that is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid UTF-8")
	// ErrInvalidJSON is returned for a line that is not valid JSON
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNotObject is returned for valid JSON that is not an object
	ErrNotObject = errors.New("record is not a JSON object")
)

// Decode turns one trace record into its event variant.
// It only fails when the record is not a UTF-8 encoded JSON object.
func Decode(record []byte) (Event, error) {
	return decodeLine(record, 0)
}

func decodeLine(record []byte, line int) (Event, error) {
	if !utf8.Valid(record) {
		return nil, ErrInvalidEncoding
	}
	if !gjson.ValidBytes(record) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(record)
	if !doc.IsObject() {
		return nil, ErrNotObject
	}
	return fromObject(doc, line), nil
}

// intValue accepts whole numbers only; 1.7 is not a coordinate
func intValue(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	return int(v.Int()), true
}

// intField reads an integer field; non-integral values count as absent
func intField(doc gjson.Result, name string) (int, bool) {
	return intValue(doc.Get(name))
}

func optInt(doc gjson.Result, name string) *int {
	if v, ok := intField(doc, name); ok {
		return &v
	}
	return nil
}

func envelope(doc gjson.Result, line int) Envelope {
	env := Envelope{Op: doc.Get("op").String(), Line: line}
	env.Step, env.HasStep = intField(doc, "t")
	env.Dist, env.HasDist = intField(doc, "dist")

	x, okX := intField(doc, "x")
	y, okY := intField(doc, "y")
	if okX && okY {
		env.At = domain.Cell{Row: x, Col: y}
		env.HasAt = true
	}

	px, okPX := intField(doc, "px")
	py, okPY := intField(doc, "py")
	if okPX && okPY && px >= 0 && py >= 0 {
		env.Parent = domain.Cell{Row: px, Col: py}
		env.HasParent = true
	}
	return env
}

// cellList reads a `cells` array whose entries are [x,y] pairs or {x,y}
// objects. Entries of any other shape are counted as skipped.
func cellList(doc gjson.Result) ([]domain.Cell, int) {
	var cells []domain.Cell
	skipped := 0
	for _, entry := range doc.Get("cells").Array() {
		switch {
		case entry.IsArray():
			pair := entry.Array()
			if len(pair) >= 2 {
				x, okX := intValue(pair[0])
				y, okY := intValue(pair[1])
				if okX && okY {
					cells = append(cells, domain.Cell{Row: x, Col: y})
					continue
				}
			}
		case entry.IsObject():
			x, okX := intField(entry, "x")
			y, okY := intField(entry, "y")
			if okX && okY {
				cells = append(cells, domain.Cell{Row: x, Col: y})
				continue
			}
		}
		skipped++
	}
	return cells, skipped
}

func fromObject(doc gjson.Result, line int) Event {
	env := envelope(doc, line)

	// ops that cannot do anything without a cell
	needsCell := func() (Event, bool) {
		if env.HasAt {
			return nil, false
		}
		return Malformed{Envelope: env, Reason: fmt.Sprintf("%s: missing x/y", env.Op)}, true
	}

	switch env.Op {
	case OpMeta:
		return Meta{
			Envelope: env,
			Rows:     optInt(doc, "n"),
			Cols:     optInt(doc, "m"),
			StartRow: optInt(doc, "sx"),
			StartCol: optInt(doc, "sy"),
			EndRow:   optInt(doc, "ex"),
			EndCol:   optInt(doc, "ey"),
		}

	case OpWall, OpSetWall:
		if bad, ok := needsCell(); ok {
			return bad
		}
		isWall := true
		if v := doc.Get("is_wall"); v.Exists() && v.Type != gjson.Null {
			isWall = v.Bool()
		}
		return SetWall{Envelope: env, Cell: env.At, IsWall: isWall}

	case OpWalls:
		cells, skipped := cellList(doc)
		return Walls{Envelope: env, Cells: cells, Skipped: skipped}

	case OpFrontierAdd, OpRelax:
		if bad, ok := needsCell(); ok {
			return bad
		}
		return FrontierAdd{Envelope: env, Cell: env.At}

	case OpVisitedAdd:
		if bad, ok := needsCell(); ok {
			return bad
		}
		return VisitedAdd{Envelope: env, Cell: env.At}

	case OpSetCurrent:
		if bad, ok := needsCell(); ok {
			return bad
		}
		return SetCurrent{Envelope: env, Cell: env.At}

	case OpFrontierRemove, OpFrontierPop:
		if bad, ok := needsCell(); ok {
			return bad
		}
		return FrontierRemove{Envelope: env, Cell: env.At}

	case OpPathPush:
		if bad, ok := needsCell(); ok {
			return bad
		}
		return PathPush{Envelope: env, Cell: env.At}

	case OpPathPop:
		if bad, ok := needsCell(); ok {
			return bad
		}
		return PathPop{Envelope: env, Cell: env.At}

	case OpBestAdd:
		if bad, ok := needsCell(); ok {
			return bad
		}
		return BestAdd{Envelope: env, Cell: env.At}

	case OpBestClear:
		return BestClear{Envelope: env}

	case OpPath:
		cells, skipped := cellList(doc)
		return Path{Envelope: env, Cells: cells, Skipped: skipped}

	case OpFound:
		return Found{Envelope: env}

	case OpDone:
		return Done{Envelope: env}

	default:
		return Unknown{Envelope: env}
	}
}
