package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Merge folds one run's deltas into an inventory table in place.
//
// Rows are streamed in order; the first row whose name column matches a
// delta key has its count column incremented and the key is consumed. Rows
// too short to carry the required columns pass through untouched with a
// warning and can never match. Keys left after the last row are appended,
// one row each, padded to the widest row seen. The new table is written to
// a temp file and renamed over the original, so readers see either the old
// table or the new one. deltas is mutated: every key is removed as it is
// applied, and the map is empty when Merge returns nil.
//
// A missing target is treated as an empty table, so the first run creates
// the file rather than failing.
func Merge(path string, nameCol, countCol int, deltas map[string]int, log *slog.Logger) error {
	var src io.Reader
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		src = f
	case errors.Is(err, fs.ErrNotExist):
		// First merge against this table; start from nothing.
	default:
		return fmt.Errorf("open inventory %s: %w", path, err)
	}

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if err := mergeRows(src, out, nameCol, countCol, deltas, log); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("merge into %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if f != nil {
		f.Close()
	}

	// The one window where a crash can leave the table stale is between
	// here and the rename completing; the rename itself is atomic.
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace inventory %s: %w", path, err)
	}
	return nil
}

// mergeRows does the row-by-row work. in is nil when the target did not
// exist yet.
func mergeRows(in io.Reader, out io.Writer, nameCol, countCol int, deltas map[string]int, log *slog.Logger) error {
	w := csv.NewWriter(out)
	need := max(nameCol, countCol) + 1
	width := 0

	if in != nil {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		for {
			row, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("read row: %w", err)
			}
			if len(row) > width {
				width = len(row)
			}
			if len(row) < need {
				log.Warn("row has too few columns, leaving it as is",
					"row", strings.Join(row, ","))
				if err := w.Write(row); err != nil {
					return err
				}
				continue
			}
			name := row[nameCol]
			if delta, ok := deltas[name]; ok {
				count, err := strconv.Atoi(strings.TrimSpace(row[countCol]))
				if err != nil {
					return fmt.Errorf("count for %q is not a number: %w", name, err)
				}
				row[countCol] = strconv.Itoa(count + delta)
				delete(deltas, name)
				log.Info("updated inventory row", "item", name, "added", delta)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	// Whatever was not matched above is new to this table.
	if width < need {
		width = need
	}
	for _, name := range sortedKeys(deltas) {
		row := make([]string, width)
		row[nameCol] = name
		row[countCol] = strconv.Itoa(deltas[name])
		delete(deltas, name)
		log.Info("appended inventory row", "item", name, "count", row[countCol])
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadNames returns the name-column values of an inventory table, skipping
// rows too short to carry the column. A missing table yields no names.
func ReadNames(path string, nameCol int) ([]string, error) {
	in, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open inventory %s: %w", path, err)
	}
	defer in.Close()

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	var names []string
	for {
		row, err := r.Read()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read inventory %s: %w", path, err)
		}
		if len(row) > nameCol {
			names = append(names, row[nameCol])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
