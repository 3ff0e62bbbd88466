package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-ramp-client/models"
)

type settledModel struct {
	settlement models.Settlement
	deadline   time.Time
}

func (m settledModel) View() string {
	s := m.settlement

	var b strings.Builder
	b.WriteString("Payout submitted.\n\n")
	b.WriteString(fmt.Sprintf("Order    │ %s\n", valueOrDash(s.PaymentID)))
	b.WriteString(fmt.Sprintf("Status   │ %s\n", valueOrDash(s.Status)))
	b.WriteString(fmt.Sprintf("Bank     │ %s\n", valueOrDash(s.Payout.BankName)))
	b.WriteString(fmt.Sprintf("Account  │ %s\n", valueOrDash(s.Payout.AccountNumber)))
	b.WriteString(fmt.Sprintf("Holder   │ %s\n", valueOrDash(s.Payout.AccountName)))

	if remaining := time.Until(m.deadline); remaining > 0 {
		b.WriteString(fmt.Sprintf("\nClosing in %d seconds\n", int(remaining.Seconds())))
	}

	return renderPage("SELL ORDER · SETTLED", strings.TrimRight(b.String(), "\n"), "enter: done")
}
