package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
	"github.com/MKhiriev/go-ramp-client/internal/config"
	"github.com/MKhiriev/go-ramp-client/internal/credstore"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/ramp"
	"github.com/MKhiriev/go-ramp-client/internal/token"
	"github.com/MKhiriev/go-ramp-client/internal/tui"
	"github.com/MKhiriev/go-ramp-client/internal/workers"
)

type App struct {
	creds       credstore.Store
	rampAdapter adapter.RampAdapter
	flow        *ramp.Orchestrator
	background  *workers.Workers
	refresh     *workers.SessionRefreshWorker
	ui          *tui.TUI
	log         *logger.Logger
}

func NewApp(creds credstore.Store, rampAdapter adapter.RampAdapter, flow *ramp.Orchestrator, ui *tui.TUI, cfg config.ClientWorkers, log *logger.Logger) (*App, error) {
	if creds == nil || rampAdapter == nil || flow == nil || ui == nil {
		return nil, errors.New("client app: missing dependency")
	}

	refresh := workers.NewSessionRefreshWorker(rampAdapter, log, cfg.RefreshCheckInterval)

	return &App{
		creds:       creds,
		rampAdapter: rampAdapter,
		flow:        flow,
		background:  workers.NewWorkers(refresh),
		refresh:     refresh,
		ui:          ui,
		log:         log,
	}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	if !a.sessionUsable(ctx) {
		user, err := a.ui.AuthFlow(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("auth flow: %w", err)
		}
		if user != nil {
			a.log.Info().Str("email", user.Email).Msg("signed in")
		}
	}

	a.background.Run()
	defer a.refresh.Stop()
	defer a.flow.Stop()

	logout, err := a.ui.SellLoop(ctx)
	if err != nil {
		return fmt.Errorf("sell loop: %w", err)
	}
	if logout {
		a.refresh.Stop()
		a.rampAdapter.SignOut(ctx)
		return a.Run()
	}

	return nil
}

// sessionUsable reports whether the persisted credential bundle can still
// open a session without interactive sign-in. Only the refresh token's
// lifetime matters; an expired access token is refreshed on first use.
func (a *App) sessionUsable(ctx context.Context) bool {
	pair, err := a.creds.GetTokens(ctx)
	if err != nil || pair.RefreshToken == "" {
		return false
	}
	return !token.Inspect(pair.RefreshToken).Expired(time.Now())
}
