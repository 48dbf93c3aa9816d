package excel

import (
	"fmt"
	"strconv"
	"strings"
)

// RichTextRun is one styled fragment of a rich text cell
type RichTextRun struct {
	Text string
}

// Cell is the normalized in-memory form of one worksheet cell. Spreadsheet
// libraries represent look-alike content through different nested shapes: a
// computed formula result, a formula error, rich text runs attached to any
// of those, a plain text field or a hyperlink target. A Cell carries every
// shape it may have been read with; ExtractValue flattens them to a scalar.
type Cell struct {
	Row int
	Col string

	Raw        interface{} // literal value as stored
	Result     interface{} // cached formula result
	ResultRich []RichTextRun
	Error      interface{} // formula error indicator
	ErrorRich  []RichTextRun
	Rich       []RichTextRun // rich text on the cell itself
	Text       string
	Hyperlink  string
}

// extractor is one strategy of the resolution chain: a pure function
// returning the cell's scalar when its shape matches.
type extractor func(c *Cell) (interface{}, bool)

// extractors is the fixed resolution precedence, tried top-down with the
// first match winning. Order matters: computed results shadow the shapes
// they were computed from.
var extractors = []extractor{
	func(c *Cell) (interface{}, bool) { return joinRuns(c.ResultRich) },
	func(c *Cell) (interface{}, bool) { return c.Result, c.Result != nil },
	func(c *Cell) (interface{}, bool) { return joinRuns(c.ErrorRich) },
	func(c *Cell) (interface{}, bool) { return c.Error, c.Error != nil },
	func(c *Cell) (interface{}, bool) { return joinRuns(c.Rich) },
	func(c *Cell) (interface{}, bool) { return c.Text, c.Text != "" },
	func(c *Cell) (interface{}, bool) { return c.Hyperlink, c.Hyperlink != "" },
	func(c *Cell) (interface{}, bool) { return c.Raw, true },
}

// ExtractValue resolves the effective scalar value of a cell. It is a pure
// function of the cell state: string, float64, bool or nil.
func ExtractValue(c *Cell) interface{} {
	for _, extract := range extractors {
		if v, ok := extract(c); ok {
			return v
		}
	}
	return nil
}

// joinRuns concatenates rich text runs with newline separators
func joinRuns(runs []RichTextRun) (interface{}, bool) {
	if len(runs) == 0 {
		return nil, false
	}
	parts := make([]string, len(runs))
	for i, run := range runs {
		parts[i] = run.Text
	}
	return strings.Join(parts, "\n"), true
}

// scalarString renders an extracted scalar the way it would display,
// used for length checks and the "Invalid" formula-failure marker.
func scalarString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(v)
	}
}
