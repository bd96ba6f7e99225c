// Package sections partitions an instrument's items into the named
// sections they are displayed and annotated under.
package sections

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abhisek/ndscreen/internal/catalog"
)

// Key identifies a section. It is the key section notes are stored under.
type Key struct {
	InstrumentID string
	Group        string
}

// String renders the key as "<instrumentID>_<group>".
func (k Key) String() string {
	return k.InstrumentID + "_" + k.Group
}

// Section is one named group of items, in catalog order.
type Section struct {
	Name  string
	Key   Key
	Items []catalog.Item
}

// Group partitions in's items by group name. Sections appear in the order
// their name is first seen; items keep their catalog order.
func Group(in catalog.Instrument) []Section {
	var out []Section
	index := make(map[string]int)
	for _, it := range in.Items {
		name := it.GroupName()
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Section{
				Name: name,
				Key:  Key{InstrumentID: in.ID, Group: name},
			})
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out
}

const defaultCacheSize = 32

// Engine memoizes Group per instrument.
type Engine struct {
	catalog *catalog.Catalog
	cache   *lru.Cache[string, []Section]
}

// NewEngine creates an engine over cat.
func NewEngine(cat *catalog.Catalog) *Engine {
	size := max(cat.Len(), defaultCacheSize)
	cache, err := lru.New[string, []Section](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(fmt.Sprintf("sections: new cache: %v", err))
	}
	return &Engine{catalog: cat, cache: cache}
}

// Sections returns the grouped sections of an instrument. The result is a
// copy the caller may modify.
func (e *Engine) Sections(instrumentID string) ([]Section, error) {
	secs, err := e.sections(instrumentID)
	if err != nil {
		return nil, err
	}
	out := make([]Section, len(secs))
	for i, s := range secs {
		s.Items = slices.Clone(s.Items)
		out[i] = s
	}
	return out, nil
}

func (e *Engine) sections(instrumentID string) ([]Section, error) {
	if secs, ok := e.cache.Get(instrumentID); ok {
		return secs, nil
	}
	in, ok := e.catalog.Get(instrumentID)
	if !ok {
		return nil, fmt.Errorf("unknown instrument %q", instrumentID)
	}
	secs := Group(in)
	e.cache.Add(instrumentID, secs)
	return secs, nil
}

// Section returns the section with the given group name.
func (e *Engine) Section(instrumentID, group string) (Section, bool) {
	secs, err := e.sections(instrumentID)
	if err != nil {
		return Section{}, false
	}
	for _, s := range secs {
		if s.Name == group {
			s.Items = slices.Clone(s.Items)
			return s, true
		}
	}
	return Section{}, false
}

// SectionOf returns the section containing itemID.
func (e *Engine) SectionOf(instrumentID, itemID string) (Section, bool) {
	secs, err := e.sections(instrumentID)
	if err != nil {
		return Section{}, false
	}
	for _, s := range secs {
		for _, it := range s.Items {
			if it.ID == itemID {
				s.Items = slices.Clone(s.Items)
				return s, true
			}
		}
	}
	return Section{}, false
}

// Ordered returns the items of an instrument flattened in section order.
func (e *Engine) Ordered(instrumentID string) ([]catalog.Item, error) {
	secs, err := e.sections(instrumentID)
	if err != nil {
		return nil, err
	}
	var out []catalog.Item
	for _, s := range secs {
		out = append(out, s.Items...)
	}
	return out, nil
}

// NextUnanswered returns the first item after afterItemID, in section
// order, that has no entry in answered. An empty afterItemID starts from the
// first item. The search does not wrap around; ok is false when no
// unanswered item follows.
func (e *Engine) NextUnanswered(instrumentID, afterItemID string, answered map[string]int) (catalog.Item, bool) {
	items, err := e.Ordered(instrumentID)
	if err != nil {
		return catalog.Item{}, false
	}

	start := 0
	if afterItemID != "" {
		start = len(items)
		for i, it := range items {
			if it.ID == afterItemID {
				start = i + 1
				break
			}
		}
	}

	for _, it := range items[start:] {
		if _, ok := answered[it.ID]; !ok {
			return it, true
		}
	}
	return catalog.Item{}, false
}
