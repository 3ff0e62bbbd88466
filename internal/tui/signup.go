package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type signUpModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newSignUpModel() signUpModel {
	first := textinput.New()
	first.Placeholder = "first name"
	first.CharLimit = 64
	first.Width = 40
	first.Focus()

	last := textinput.New()
	last.Placeholder = "last name"
	last.CharLimit = 64
	last.Width = 40

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	phone := textinput.New()
	phone.Placeholder = "phone (optional)"
	phone.CharLimit = 20
	phone.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	repeat := textinput.New()
	repeat.Placeholder = "repeat password"
	repeat.CharLimit = 256
	repeat.Width = 40
	repeat.EchoMode = textinput.EchoPassword
	repeat.EchoCharacter = '*'

	return signUpModel{inputs: []textinput.Model{first, last, email, phone, password, repeat}}
}

func (m signUpModel) View() string {
	labels := []string{"First name", "Last name ", "Email     ", "Phone     ", "Password  ", "Repeat    "}

	var b strings.Builder
	b.WriteString("Field      │ Value\n")
	b.WriteString("───────────┼────────────────────────────────────────────\n")
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" │ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}

	return renderPage("SIGN UP", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}
