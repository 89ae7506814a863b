package eqlog

import (
	"regexp"
	"time"
)

// tradeRE recognizes a player opening a trade with one item:
//
//	"Soandso has offered you a Rusty_Sword."
//
// Player and item are single word tokens. Item names containing spaces or
// punctuation are outside this contract; they never appear in offer lines
// the client writes, so we do not try to capture them.
var tradeRE = regexp.MustCompile(`^(\w+) has offered you a (\w+)\.`)

// Trade is one recognized offer line.
type Trade struct {
	Time   time.Time
	Player string
	Item   string
}

// ParseTrade matches the offer pattern against the message portion of a
// line, anchored at MessageOffset. The fixed offset is a hard contract:
// the pattern is never searched for elsewhere in the line, so quoted chat
// that happens to contain offer text does not match.
func ParseTrade(line string) (Trade, bool) {
	if len(line) <= MessageOffset {
		return Trade{}, false
	}
	m := tradeRE.FindStringSubmatch(line[MessageOffset:])
	if m == nil {
		return Trade{}, false
	}
	return Trade{Player: m[1], Item: m[2]}, true
}
