package tui

import (
	"github.com/MKhiriev/go-ramp-client/internal/ramp"
	"github.com/MKhiriev/go-ramp-client/models"
)

type authDoneMsg struct {
	user *models.UserProfile
}

type otpRequiredMsg struct {
	email string
}

type authFailedMsg struct {
	err error
}

// flowStateMsg carries every orchestrator transition into the program.
type flowStateMsg struct {
	state ramp.State
}

type submitDoneMsg struct {
	err error
}

type banksLoadedMsg struct {
	banks []models.Bank
	err   error
}

type accountResolvedMsg struct {
	account models.ResolvedAccount
	err     error
}

type reconcileDoneMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}

type countdownTickMsg struct{}
