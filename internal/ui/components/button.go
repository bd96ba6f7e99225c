package components

import "github.com/abhisek/ndscreen/internal/ui/theme"

// Button is the submit control at the foot of a form. Focus moves onto it
// like any field. Blocked is set while required fields are empty; the
// button then says why instead of inviting Enter.
type Button struct {
	Label   string
	Active  bool
	Blocked string
}

func NewButton(label string) Button {
	return Button{Label: label}
}

func (b Button) View() string {
	switch {
	case b.Blocked != "":
		return theme.ButtonInactive.Render(b.Label) + "  " + theme.Hint.Render(b.Blocked)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}
