package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed instruments.yaml
var defaultCatalog []byte

// Catalog is the immutable set of instruments available in a session.
// It is safe for concurrent use once loaded.
type Catalog struct {
	instruments []Instrument
	byID        map[string]int
	itemIndex   map[string]map[string]int // instrument ID -> item ID -> position
}

// document is the on-disk YAML shape.
type document struct {
	Instruments []instrumentDoc `yaml:"instruments"`
}

type instrumentDoc struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Scale       []string `yaml:"scale"`
	Items       []Item   `yaml:"items"`
	Info        *Info    `yaml:"info,omitempty"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("load embedded catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	instruments := make([]Instrument, 0, len(doc.Instruments))
	for _, d := range doc.Instruments {
		scale := make([]ScaleLevel, len(d.Scale))
		for i, label := range d.Scale {
			scale[i] = ScaleLevel{Index: i, Label: label}
		}
		instruments = append(instruments, Instrument{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Scale:       scale,
			Items:       d.Items,
			Info:        d.Info,
		})
	}
	return New(instruments)
}

// New builds a catalog from instruments already in memory.
func New(instruments []Instrument) (*Catalog, error) {
	if err := validateInstruments(instruments); err != nil {
		return nil, err
	}

	c := &Catalog{
		instruments: slices.Clone(instruments),
		byID:        make(map[string]int, len(instruments)),
		itemIndex:   make(map[string]map[string]int, len(instruments)),
	}
	for i, in := range c.instruments {
		c.byID[in.ID] = i
		idx := make(map[string]int, len(in.Items))
		for j, it := range in.Items {
			idx[it.ID] = j
		}
		c.itemIndex[in.ID] = idx
	}
	return c, nil
}

// All returns every instrument in catalog order.
func (c *Catalog) All() []Instrument {
	return slices.Clone(c.instruments)
}

// IDs returns instrument IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.instruments))
	for i, in := range c.instruments {
		ids[i] = in.ID
	}
	return ids
}

// Len returns the number of instruments.
func (c *Catalog) Len() int {
	return len(c.instruments)
}

// Get returns the instrument with the given ID.
func (c *Catalog) Get(id string) (Instrument, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Instrument{}, false
	}
	return c.instruments[i], true
}

// ItemCount returns the number of items in an instrument, 0 if unknown.
func (c *Catalog) ItemCount(id string) int {
	return len(c.itemIndex[id])
}

// Contains reports whether itemID is an item of instrument id.
func (c *Catalog) Contains(id, itemID string) bool {
	_, ok := c.itemIndex[id][itemID]
	return ok
}
