package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 2500 * time.Millisecond

// ShowToastMsg asks the app to display a transient message.
type ShowToastMsg struct {
	Text  string
	Error bool
}

// toastExpiredMsg clears the toast with the matching sequence number.
type toastExpiredMsg struct {
	seq int
}

// Toast is a transient status line. Only the most recent message is shown;
// an older expiry never hides a newer toast.
type Toast struct {
	Text  string
	Error bool
	seq   int
}

// ShowToast returns a command that emits a ShowToastMsg.
func ShowToast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return ShowToastMsg{Text: text, Error: isErr} }
}

// Update handles show and expiry messages. handled reports whether msg was
// a toast message.
func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ShowToastMsg:
		t.seq++
		t.Text = msg.Text
		t.Error = msg.Error
		seq := t.seq
		return t, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		}), true
	case toastExpiredMsg:
		if msg.seq == t.seq {
			t.Text = ""
			t.Error = false
		}
		return t, nil, true
	}
	return t, nil, false
}

// Visible reports whether there is text to show.
func (t Toast) Visible() bool {
	return t.Text != ""
}
