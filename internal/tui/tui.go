package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/ramp"
	"github.com/MKhiriev/go-ramp-client/models"
)

type TUI struct {
	rampAdapter adapter.RampAdapter
	flow        *ramp.Orchestrator
	buildInfo   models.AppBuildInfo
	log         *logger.Logger
}

func New(rampAdapter adapter.RampAdapter, flow *ramp.Orchestrator, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	return &TUI{rampAdapter: rampAdapter, flow: flow, buildInfo: buildInfo, log: log}, nil
}

// AuthFlow runs the welcome/sign-in/sign-up/OTP screens until the user is
// authenticated or quits.
func (t *TUI) AuthFlow(ctx context.Context) (*models.UserProfile, error) {
	model := newAuthAppModel(ctx, t.rampAdapter, t.buildInfo)

	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return nil, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return nil, tea.ErrProgramKilled
	}
	if result.err != nil {
		return nil, result.err
	}
	return result.resultUser, nil
}

// SellLoop runs the order screens until the user quits or signs out. The
// orchestrator's transitions and the debounced account resolver both feed
// the program through Send, so the UI is always a render of the flow state.
func (t *TUI) SellLoop(ctx context.Context) (logout bool, err error) {
	var program *tea.Program

	resolver := ramp.NewAccountResolver(t.rampAdapter, t.log, func(account models.ResolvedAccount, resolveErr error) {
		if program != nil {
			program.Send(accountResolvedMsg{account: account, err: resolveErr})
		}
	})
	defer resolver.Stop()

	model := newSellAppModel(ctx, t.rampAdapter, t.flow, resolver)
	program = tea.NewProgram(model, tea.WithAltScreen())

	t.flow.SetOnChange(func(state ramp.State) {
		program.Send(flowStateMsg{state: state})
	})

	finalModel, runErr := program.Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.err != nil && result.err != ErrUserQuit {
		return false, result.err
	}
	return result.logout, nil
}
