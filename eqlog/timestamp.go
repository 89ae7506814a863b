package eqlog

import (
	"strings"
	"time"
)

// TimestampLayout is the bracketed prefix every well-formed log line
// starts with, e.g. "[Wed Nov 03 21:26:54 2010]".
const TimestampLayout = "[Mon Jan 02 15:04:05 2006]"

const (
	// TimestampWidth is the fixed width of the bracketed prefix.
	TimestampWidth = len(TimestampLayout)

	// MessageOffset is where the message text begins: the prefix plus the
	// single space that follows it.
	MessageOffset = TimestampWidth + 1
)

// Timestamp parses the fixed-width prefix of a log line. The second return
// is false when the line carries no well-formed prefix; callers decide
// whether that deserves a diagnostic (a blank line does not).
func Timestamp(line string) (time.Time, bool) {
	if len(line) < TimestampWidth {
		return time.Time{}, false
	}
	t, err := time.Parse(TimestampLayout, line[:TimestampWidth])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Blank reports whether a line is empty apart from whitespace. The client
// writes blank separator lines that fail timestamp parsing routinely, so
// they are never worth a warning.
func Blank(line string) bool {
	return strings.TrimSpace(line) == ""
}
