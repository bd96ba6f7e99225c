// Package progress derives completion figures from the recorded answers.
package progress

import (
	"math"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/sections"
)

// Source supplies the answers recorded for an instrument.
type Source interface {
	Answered(instrumentID string) map[string]int
}

// Status is the completion state of one instrument.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Complete
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "In Progress"
	case Complete:
		return "Complete"
	default:
		return "Not Started"
	}
}

// Count is an answered/total pair.
type Count struct {
	Answered int
	Total    int
}

// Complete reports whether every item is answered.
func (c Count) Complete() bool {
	return c.Total > 0 && c.Answered == c.Total
}

// Percent returns the rounded completion percentage, 0 for an empty count.
func (c Count) Percent() int {
	return Percent(c.Answered, c.Total)
}

// Percent returns round(100*answered/total), rounding half away from zero.
// A zero total yields 0.
func Percent(answered, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(answered) / float64(total)))
}

// Calculator computes completion against a catalog. It holds no state of
// its own; every call reads the source afresh.
type Calculator struct {
	catalog *catalog.Catalog
	source  Source
}

// New creates a calculator.
func New(cat *catalog.Catalog, src Source) *Calculator {
	return &Calculator{catalog: cat, source: src}
}

// Count returns answered/total for one instrument. Only answers whose item
// belongs to the instrument are counted.
func (c *Calculator) Count(instrumentID string) Count {
	total := c.catalog.ItemCount(instrumentID)
	if total == 0 {
		return Count{}
	}
	answered := 0
	for itemID := range c.source.Answered(instrumentID) {
		if c.catalog.Contains(instrumentID, itemID) {
			answered++
		}
	}
	return Count{Answered: answered, Total: total}
}

// Progress returns the completion percentage of one instrument, 0 when the
// instrument is unknown or has no items.
func (c *Calculator) Progress(instrumentID string) int {
	return c.Count(instrumentID).Percent()
}

// Overall returns completion over all catalog items, weighted by item count.
func (c *Calculator) Overall() int {
	var sum Count
	for _, id := range c.catalog.IDs() {
		n := c.Count(id)
		sum.Answered += n.Answered
		sum.Total += n.Total
	}
	return sum.Percent()
}

// Section returns answered/total for one section.
func (c *Calculator) Section(s sections.Section) Count {
	answered := c.source.Answered(s.Key.InstrumentID)
	n := Count{Total: len(s.Items)}
	for _, it := range s.Items {
		if _, ok := answered[it.ID]; ok {
			n.Answered++
		}
	}
	return n
}

// Status returns the completion state of one instrument.
func (c *Calculator) Status(instrumentID string) Status {
	n := c.Count(instrumentID)
	switch {
	case n.Complete():
		return Complete
	case n.Answered > 0:
		return InProgress
	default:
		return NotStarted
	}
}

// CompletedCount returns how many instruments are fully answered.
func (c *Calculator) CompletedCount() int {
	done := 0
	for _, id := range c.catalog.IDs() {
		if c.Count(id).Complete() {
			done++
		}
	}
	return done
}
