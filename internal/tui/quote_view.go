// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ramp-client/models"
)

// quoteModel shows the deposit instructions issued at initiation. The user
// sends crypto to the shown address out-of-band, then continues to the
// payout step.
type quoteModel struct {
	quote  models.Quote
	status string
}

func (m quoteModel) View() string {
	q := m.quote

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Reference  │ %s\n", valueOrDash(q.Reference)))
	b.WriteString(fmt.Sprintf("Rate       │ %.2f\n", q.Rate))
	b.WriteString(fmt.Sprintf("You send   │ %s %s (%s)\n", q.SellAmount, q.Deposit.Token, q.Deposit.Network))
	b.WriteString(fmt.Sprintf("You receive│ %.2f NGN\n", q.ReceiveAmount))
	b.WriteString("\n")
	b.WriteString("Send the exact amount to this deposit address:\n\n")
	b.WriteString("  " + valueOrDash(q.Deposit.Address) + "\n")

	if !q.ExpiresAt.IsZero() {
		b.WriteString("\nQuote valid until ")
		b.WriteString(q.ExpiresAt.Format("15:04:05"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("SELL ORDER · DEPOSIT", strings.TrimRight(b.String(), "\n"),
		"c: copy address │ enter: payout details │ esc: cancel order")
}
