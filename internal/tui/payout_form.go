// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-ramp-client/models"
)

// payoutModel is the second order step: pick a bank, enter the account
// number and wait for the holder name to resolve before submitting.
type payoutModel struct {
	banks        []models.Bank
	bankIdx      int
	bankFocused  bool
	account      textinput.Model
	resolvedName string
	resolveErr   string
	resolving    bool
	spinner      spinner.Model
	submitting   bool
	status       string
}

func newPayoutModel() payoutModel {
	account := textinput.New()
	account.Placeholder = "account number"
	account.CharLimit = 10
	account.Width = 20

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return payoutModel{account: account, bankFocused: true, spinner: s}
}

func (m payoutModel) currentBank() (models.Bank, bool) {
	if len(m.banks) == 0 || m.bankIdx < 0 || m.bankIdx >= len(m.banks) {
		return models.Bank{}, false
	}
	return m.banks[m.bankIdx], true
}

func (m payoutModel) View() string {
	var b strings.Builder

	b.WriteString("Bank:\n")
	if len(m.banks) == 0 {
		b.WriteString("  loading bank list...\n")
	} else {
		// show a window of banks around the cursor
		const window = 5
		start := m.bankIdx - window/2
		if start < 0 {
			start = 0
		}
		end := start + window
		if end > len(m.banks) {
			end = len(m.banks)
		}
		for i := start; i < end; i++ {
			cursor := "  "
			if i == m.bankIdx && m.bankFocused {
				cursor = "> "
			}
			b.WriteString(cursor + fitText(m.banks[i].Name, 44) + "\n")
		}
	}

	b.WriteString("\nAccount │ [")
	b.WriteString(m.account.View())
	b.WriteString("]\n")

	switch {
	case m.resolving:
		b.WriteString(fmt.Sprintf("Holder  │ %s resolving...\n", m.spinner.View()))
	case m.resolvedName != "":
		b.WriteString("Holder  │ " + m.resolvedName + "\n")
	case m.resolveErr != "":
		b.WriteString("Holder  │ " + m.resolveErr + "\n")
	default:
		b.WriteString("Holder  │ -\n")
	}

	if m.submitting {
		b.WriteString("\n[Submitting payout...]\n")
	} else {
		b.WriteString("\n[Submit payout]\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("SELL ORDER · PAYOUT", strings.TrimRight(b.String(), "\n"),
		"tab: bank/account │ r: check status │ enter: submit │ esc: back")
}
