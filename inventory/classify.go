package inventory

import "regexp"

// Category routes a counted item to one of the two inventory tables.
type Category int

const (
	// Items is the general loot table.
	Items Category = iota
	// Words is the research-material table: spells, runes, words and tome
	// pages that get brokered separately.
	Words
)

func (c Category) String() string {
	if c == Words {
		return "words"
	}
	return "items"
}

// wordPatterns mark research materials by name structure.
var wordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Part of Tasarin's Grimoire \w+`),
	regexp.MustCompile(`^Velishoul's Tome Pg\. \w+`),
	regexp.MustCompile(`^Rune of \w+`),
	regexp.MustCompile(`^Spell: \w+`),
	regexp.MustCompile(`^Words of \w+`),
}

// MatchesWordPattern reports whether an item name is structurally a piece
// of research material. This is the pattern half of classification; the
// membership half lives on Classifier.
func MatchesWordPattern(name string) bool {
	for _, p := range wordPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// Counts accumulates one run's new trade counts per category. Maps are
// keyed by exact item name and hold only this run's deltas; the running
// totals live in the inventory tables.
type Counts struct {
	Words map[string]int
	Items map[string]int
}

func NewCounts() *Counts {
	return &Counts{
		Words: make(map[string]int),
		Items: make(map[string]int),
	}
}

// Classifier buckets item names into the two categories. Membership in the
// words category is sticky: once a name is there, whether from a pattern
// match, an earlier event this run, or a row already in the words table
// from a prior run, it stays there even if the pattern rule would now say
// otherwise. That keeps a name's count history in one table.
type Classifier struct {
	counts *Counts
	prior  map[string]struct{}
}

// NewClassifier wires a classifier over the run's counts. priorWords are
// names already present in the words table; they carry sticky membership
// across runs.
func NewClassifier(counts *Counts, priorWords []string) *Classifier {
	prior := make(map[string]struct{}, len(priorWords))
	for _, n := range priorWords {
		prior[n] = struct{}{}
	}
	return &Classifier{counts: counts, prior: prior}
}

// inWords is the membership half of classification.
func (cl *Classifier) inWords(name string) bool {
	if _, ok := cl.prior[name]; ok {
		return true
	}
	_, ok := cl.counts.Words[name]
	return ok
}

// Classify picks the category for one item name: the pattern rule first,
// then sticky membership. Because membership consults the live counts, the
// outcome for a name can depend on the order its events arrive within a
// run; that matches how the counts have always been kept.
func (cl *Classifier) Classify(name string) Category {
	if MatchesWordPattern(name) || cl.inWords(name) {
		return Words
	}
	return Items
}

// Record counts one trade of name under its classified category and
// returns the category together with the name's new in-run count.
func (cl *Classifier) Record(name string) (Category, int) {
	cat := cl.Classify(name)
	m := cl.counts.Items
	if cat == Words {
		m = cl.counts.Words
	}
	m[name]++
	return cat, m[name]
}
