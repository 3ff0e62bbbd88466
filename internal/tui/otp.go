package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-ramp-client/internal/app"
)

type otpModel struct {
	email      string
	input      textinput.Model
	submitting bool
}

func newOTPModel() otpModel {
	code := textinput.New()
	code.Placeholder = "000000"
	code.CharLimit = 6
	code.Width = 10
	code.Focus()

	return otpModel{input: code}
}

func (m otpModel) View() string {
	var b strings.Builder
	b.WriteString(app.MsgOTPRequired)
	b.WriteString("\n\n")
	b.WriteString("Code │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Verifying...]\n")
	} else {
		b.WriteString("\n[Verify]\n")
	}

	return renderPage("VERIFY CODE", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: submit")
}
