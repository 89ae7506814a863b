package journal

import "time"

// TradeRecord is one durable row for a recognized trade offer. The
// checkpoint keeps a flat action history for cutoff purposes; the journal
// keeps the same events queryable.
type TradeRecord struct {
	TradeID  string // ULID, time-sortable
	Time     time.Time
	Source   string // character whose log produced the line
	Player   string
	Item     string
	Category string // "items" or "words"
}

// Journal records extracted trades as they are counted.
type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}
