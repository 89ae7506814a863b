package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, time, source, player, item, category
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := row.Scan(
		&rec.TradeID,
		&rec.Time,
		&rec.Source,
		&rec.Player,
		&rec.Item,
		&rec.Category,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesBetween returns trades whose log time is within [start, end).
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	return j.list(`
		SELECT trade_id, time, source, player, item, category
		FROM trades
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
}

// ListTradesByItem returns every trade of one item, oldest first.
func (j *SQLite) ListTradesByItem(item string) ([]TradeRecord, error) {
	return j.list(`
		SELECT trade_id, time, source, player, item, category
		FROM trades
		WHERE item = ?
		ORDER BY time ASC`, item)
}

func (j *SQLite) list(query string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.Time,
			&rec.Source,
			&rec.Player,
			&rec.Item,
			&rec.Category,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
