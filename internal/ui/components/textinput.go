package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/repaso/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with an optional per-key filter and
// a validity marker.
type TextInput struct {
	Model textinput.Model

	// Accept, when set, drops single-character keys it rejects.
	Accept func(r rune) bool

	invalid bool
}

// NewTextInput creates a focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && t.Accept != nil {
		if r := []rune(kmsg.String()); len(r) == 1 && !t.Accept(r[0]) {
			return t, nil
		}
	}
	t.invalid = false

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.invalid {
		view += " " + theme.Incorrect.Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// MarkInvalid flags the current value until the next edit.
func (t *TextInput) MarkInvalid() {
	t.invalid = true
}

// Invalid reports whether the value was flagged.
func (t TextInput) Invalid() bool {
	return t.invalid
}
