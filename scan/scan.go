// Package scan wires one batch pass: read each configured log past the
// checkpoint cutoff, count the new trades, then persist the checkpoint and
// fold the counts into the inventory tables.
package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/rustyeddy/eqinv/checkpoint"
	"github.com/rustyeddy/eqinv/config"
	"github.com/rustyeddy/eqinv/eqlog"
	"github.com/rustyeddy/eqinv/inventory"
	"github.com/rustyeddy/eqinv/journal"
	"github.com/rustyeddy/eqinv/pkg/id"
)

// Runner runs one pass over every configured log. Exactly one Runner may
// operate on a given checkpoint and pair of inventory tables at a time;
// concurrent runs are the scheduler's problem, not ours.
type Runner struct {
	cfg *config.Config
	log *slog.Logger
	jnl journal.Journal // nil disables the trade journal
}

func New(cfg *config.Config, log *slog.Logger, jnl journal.Journal) *Runner {
	return &Runner{cfg: cfg, log: log, jnl: jnl}
}

// SourceResult summarizes one character's log.
type SourceResult struct {
	Source  string
	Trades  int
	Skipped bool // log file missing
}

// Summary is what one pass found and did.
type Summary struct {
	Cutoff  time.Time // cutoff in effect for this run
	Sources []SourceResult
	Trades  int
}

// Run performs the pass. The checkpoint is loaded first and a load failure
// aborts before any table is touched. The cutoff is fixed once, before any
// source is read, so every source sees the same "new since" boundary. The
// checkpoint is persisted only after all sources are scanned: a crash
// mid-run reruns the whole pass instead of skipping lines.
func (r *Runner) Run() (Summary, error) {
	ckpt, err := checkpoint.Load(r.cfg.Checkpoint)
	if err != nil {
		return Summary{}, err
	}
	cutoff := ckpt.LastProcessed()

	prior, err := inventory.ReadNames(r.cfg.Inventory.Words.Path, r.cfg.Inventory.Words.NameColumn)
	if err != nil {
		r.log.Warn("cannot read words table for sticky membership", "error", err)
	}
	counts := inventory.NewCounts()
	cl := inventory.NewClassifier(counts, prior)

	sum := Summary{Cutoff: cutoff}
	for _, src := range r.cfg.Logs.Sources {
		res, err := r.scanSource(src, cutoff, ckpt, cl)
		if err != nil {
			return sum, err
		}
		sum.Sources = append(sum.Sources, res)
		sum.Trades += res.Trades
	}
	r.log.Info("scan complete", "trades", sum.Trades, "since", cutoff)

	if err := ckpt.Persist(); err != nil {
		return sum, err
	}

	if len(counts.Words) > 0 {
		w := r.cfg.Inventory.Words
		if err := inventory.Merge(w.Path, w.NameColumn, w.CountColumn, counts.Words, r.log); err != nil {
			return sum, err
		}
	}
	if len(counts.Items) > 0 {
		it := r.cfg.Inventory.Items
		if err := inventory.Merge(it.Path, it.NameColumn, it.CountColumn, counts.Items, r.log); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (r *Runner) scanSource(src string, cutoff time.Time, ckpt *checkpoint.Store, cl *inventory.Classifier) (SourceResult, error) {
	res := SourceResult{Source: src}
	path := r.cfg.Logs.LogPath(src)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Warn("no log file for character", "source", src, "path", path)
		res.Skipped = true
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("open log for %s: %w", src, err)
	}
	defer f.Close()

	r.log.Info("processing log file", "source", src)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		ts, ok := eqlog.Timestamp(line)
		if !ok {
			if !eqlog.Blank(line) {
				r.log.Warn("no timestamp on line", "source", src, "line", line)
			}
			continue
		}
		if !ts.After(cutoff) {
			continue
		}
		tr, ok := eqlog.ParseTrade(line)
		if !ok {
			continue
		}
		tr.Time = ts
		r.processTrade(src, tr, ckpt, cl)
		res.Trades++
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read log for %s: %w", src, err)
	}

	r.log.Info("finished log file", "source", src, "trades", res.Trades)
	return res, nil
}

func (r *Runner) processTrade(src string, tr eqlog.Trade, ckpt *checkpoint.Store, cl *inventory.Classifier) {
	ckpt.Record(tr.Time, fmt.Sprintf("%s -> %s", tr.Player, tr.Item))
	cat, n := cl.Record(tr.Item)
	r.log.Info("counted trade", "item", tr.Item, "category", cat.String(), "count", n)

	if r.jnl == nil {
		return
	}
	err := r.jnl.RecordTrade(journal.TradeRecord{
		TradeID:  id.New(),
		Time:     tr.Time,
		Source:   src,
		Player:   tr.Player,
		Item:     tr.Item,
		Category: cat.String(),
	})
	if err != nil {
		// The journal is a convenience copy; the checkpoint and tables
		// stay the source of truth, so a journal failure does not stop
		// the pass.
		r.log.Warn("journal write failed", "item", tr.Item, "error", err)
	}
}
