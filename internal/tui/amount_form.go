// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// amountModel is the first order step: what to sell and how much.
type amountModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newAmountModel() amountModel {
	token := textinput.New()
	token.Placeholder = "USDT"
	token.CharLimit = 10
	token.Width = 12
	token.Focus()

	network := textinput.New()
	network.Placeholder = "TRC20"
	network.CharLimit = 10
	network.Width = 12

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 20
	amount.Width = 20

	return amountModel{inputs: []textinput.Model{token, network, amount}}
}

func (m amountModel) View() string {
	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Token    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Network  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Amount   │ [")
	b.WriteString(m.inputs[2].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Requesting quote...]\n")
	} else {
		b.WriteString("\n[Get quote]\n")
	}

	return renderPage("SELL ORDER · STEP 1", strings.TrimRight(b.String(), "\n"),
		"esc: sign out │ tab: next field │ enter: submit")
}
