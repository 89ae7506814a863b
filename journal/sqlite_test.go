package journal

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "trades.sqlite"))
	require.NoError(t, err)
	return j
}

func TestRecordAndGetTrade(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	defer j.Close()

	want := TradeRecord{
		TradeID:  "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Time:     time.Date(2010, time.November, 3, 21, 26, 54, 0, time.UTC),
		Source:   "Mule",
		Player:   "Vexa",
		Item:     "Jade_Mace",
		Category: "items",
	}
	require.NoError(t, j.RecordTrade(want))

	got, err := j.GetTrade(want.TradeID)
	require.NoError(t, err)
	assert.Equal(t, want.TradeID, got.TradeID)
	assert.True(t, got.Time.Equal(want.Time))
	assert.Equal(t, want.Source, got.Source)
	assert.Equal(t, want.Player, got.Player)
	assert.Equal(t, want.Item, got.Item)
	assert.Equal(t, want.Category, got.Category)
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTradesBetween(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2010, time.November, 3, 12, 0, 0, 0, time.UTC)
	for i, item := range []string{"Jade_Mace", "Bone_Chips", "Rune_of_Ro"} {
		require.NoError(t, j.RecordTrade(TradeRecord{
			TradeID:  "T" + item,
			Time:     base.Add(time.Duration(i) * time.Hour),
			Source:   "Mule",
			Player:   "Vexa",
			Item:     item,
			Category: "items",
		}))
	}

	recs, err := j.ListTradesBetween(base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Jade_Mace", recs[0].Item)
	assert.Equal(t, "Bone_Chips", recs[1].Item)
}

func TestListTradesByItem(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2010, time.November, 3, 12, 0, 0, 0, time.UTC)
	for i, player := range []string{"Vexa", "Borik", "Vexa"} {
		require.NoError(t, j.RecordTrade(TradeRecord{
			TradeID:  string(rune('A' + i)),
			Time:     base.Add(time.Duration(i) * time.Minute),
			Source:   "Mule",
			Player:   player,
			Item:     "Jade_Mace",
			Category: "items",
		}))
	}
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID: "Z", Time: base, Source: "Mule",
		Player: "Vexa", Item: "Bone_Chips", Category: "items",
	}))

	recs, err := j.ListTradesByItem("Jade_Mace")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Vexa", recs[0].Player)
	assert.Equal(t, "Borik", recs[1].Player)
}

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	out := FormatTradeOrg(TradeRecord{
		TradeID:  "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Time:     time.Date(2010, time.November, 3, 21, 26, 54, 0, time.UTC),
		Source:   "Mule",
		Player:   "Vexa",
		Item:     "Jade_Mace",
		Category: "items",
	})

	assert.True(t, strings.HasPrefix(out, "** Trade: Jade_Mace (01ARZ3ND)"))
	assert.Contains(t, out, ":PLAYER: Vexa\n")
	assert.Contains(t, out, ":TIME: 2010-11-03T21:26:54Z\n")
	assert.Contains(t, out, ":CATEGORY: items\n")
}
