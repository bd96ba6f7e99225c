package catalog

// DefaultGroup is the section name for items that declare neither a group nor a part.
const DefaultGroup = "Questions"

// ScaleLevel is one labeled severity level of a response scale.
type ScaleLevel struct {
	Index int
	Label string
}

// Item is a single question within an instrument.
type Item struct {
	ID    string `yaml:"id"`
	Text  string `yaml:"text"`
	Group string `yaml:"group,omitempty"`
	Part  string `yaml:"part,omitempty"`
}

// GroupName returns the section the item is displayed under.
func (it Item) GroupName() string {
	switch {
	case it.Group != "":
		return it.Group
	case it.Part != "":
		return it.Part
	default:
		return DefaultGroup
	}
}

// Info is the background sheet shown alongside an instrument.
type Info struct {
	FullName    string `yaml:"fullName"`
	DesignedFor string `yaml:"designedFor"`
	Versions    string `yaml:"versions"`
	TakingTest  string `yaml:"takingTest"`
	Scoring     string `yaml:"scoring"`
	Validity    string `yaml:"validity"`
	Discussion  string `yaml:"discussion"`
}

// Instrument is one standardized questionnaire.
type Instrument struct {
	ID          string
	Title       string
	Description string
	Scale       []ScaleLevel
	Items       []Item
	Info        *Info
}

// ScaleSize returns the number of levels in the response scale.
func (in Instrument) ScaleSize() int {
	return len(in.Scale)
}

// ValidIndex reports whether idx selects a level of the response scale.
func (in Instrument) ValidIndex(idx int) bool {
	return idx >= 0 && idx < len(in.Scale)
}

// Label returns the scale label for idx, or "" when idx is out of range.
func (in Instrument) Label(idx int) string {
	if !in.ValidIndex(idx) {
		return ""
	}
	return in.Scale[idx].Label
}

// HasItem reports whether itemID belongs to the instrument.
func (in Instrument) HasItem(itemID string) bool {
	for _, it := range in.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}
