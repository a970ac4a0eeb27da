package document

import (
	"github.com/a-h/parse"
)

var (
	newLine     = parse.Any(parse.String("\r\n"), parse.String("\n"))
	lineContent = parse.StringUntilEOF(newLine)
)

// SplitLines splits text on "\n" and "\r\n". A final segment with no
// terminator is only returned if it is not empty, so "a\n" is one line and ""
// is none.
func SplitLines(text string) []string {
	// The line parsers only match or don't match, they never return errors.
	lines, _ := splitLines(text, false)
	return lines
}

// splitLines splits text into lines. With keepTrailing set, the segment after
// the last terminator is always returned, even when empty, so that "x\n"
// splits into "x" and "".
func splitLines(text string, keepTrailing bool) (lines []string, err error) {
	in := parse.NewInput(text)
	for {
		line, _, err := lineContent.Parse(in)
		if err != nil {
			return nil, err
		}
		_, terminated, err := newLine.Parse(in)
		if err != nil {
			return nil, err
		}
		if !terminated {
			if line != "" || keepTrailing {
				lines = append(lines, line)
			}
			return lines, nil
		}
		lines = append(lines, line)
	}
}
