package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
	"github.com/MKhiriev/go-ramp-client/internal/app"
	"github.com/MKhiriev/go-ramp-client/internal/ramp"
	"github.com/MKhiriev/go-ramp-client/models"
)

var ErrUserQuit = errors.New("user quit")

type screen int

const (
	screenWelcome screen = iota
	screenSignIn
	screenSignUp
	screenOTP
	screenAmount
	screenQuote
	screenPayout
	screenSettled
	screenExpired
)

type appMode int

const (
	modeAuth appMode = iota
	modeSell
)

type appModel struct {
	ctx         context.Context
	rampAdapter adapter.RampAdapter
	flow        *ramp.Orchestrator
	resolver    *ramp.AccountResolver

	mode          appMode
	currentScreen screen

	welcome welcomeModel
	signIn  signInModel
	signUp  signUpModel
	otp     otpModel
	amount  amountModel
	quote   quoteModel
	payout  payoutModel
	settled settledModel

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	err          error
	showError    bool
	errorOverlay errorOverlayModel

	logout     bool
	resultUser *models.UserProfile
}

func newAuthAppModel(ctx context.Context, rampAdapter adapter.RampAdapter, buildInfo models.AppBuildInfo) appModel {
	return appModel{
		ctx:           ctx,
		rampAdapter:   rampAdapter,
		mode:          modeAuth,
		currentScreen: screenWelcome,
		welcome:       newWelcomeModel(),
		signIn:        newSignInModel(),
		signUp:        newSignUpModel(),
		otp:           newOTPModel(),
		buildInfo:     buildInfo,
	}
}

func newSellAppModel(ctx context.Context, rampAdapter adapter.RampAdapter, flow *ramp.Orchestrator, resolver *ramp.AccountResolver) appModel {
	return appModel{
		ctx:           ctx,
		rampAdapter:   rampAdapter,
		flow:          flow,
		resolver:      resolver,
		mode:          modeSell,
		currentScreen: screenAmount,
		amount:        newAmountModel(),
		payout:        newPayoutModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	if m.mode == modeSell {
		return tea.Batch(m.cmdOpenFlow(), m.cmdLoadBanks())
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = ErrUserQuit
			return m, tea.Quit
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) {
				m.showBuildInfo = false
			}
			return m, nil
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
	case authDoneMsg:
		m.resultUser = msg.user
		return m, tea.Quit
	case authFailedMsg:
		m.setSubmitting(false)
		m.showErrorf(humanizeAuthError(msg.err))
		return m, nil
	case otpRequiredMsg:
		m.setSubmitting(false)
		m.otp.email = msg.email
		m.otp.input.Focus()
		m.currentScreen = screenOTP
		return m, nil
	case flowStateMsg:
		return m.applyFlowState(msg.state)
	case submitDoneMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(humanizeSubmitError(msg.err))
		}
		return m, nil
	case banksLoadedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.payout.banks = msg.banks
		return m, nil
	case accountResolvedMsg:
		m.payout.resolving = false
		if msg.err != nil {
			m.payout.resolveErr = "could not verify account"
			return m, nil
		}
		m.payout.resolveErr = ""
		m.payout.resolvedName = msg.account.AccountName
		m.flow.SetField(m.ctx, ramp.FieldAccountName, msg.account.AccountName)
		return m, nil
	case reconcileDoneMsg:
		if msg.err != nil {
			m.showErrorf(humanizeReconcileError(msg.err))
		}
		return m, nil
	case copiedMsg:
		m.quote.status = app.MsgCopied
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.quote.status = ""
		m.payout.status = ""
		return m, nil
	case countdownTickMsg:
		if m.currentScreen == screenSettled && time.Until(m.settled.deadline) > 0 {
			return m, cmdCountdownTick()
		}
		return m, nil
	case spinner.TickMsg:
		if m.payout.resolving {
			var cmd tea.Cmd
			m.payout.spinner, cmd = m.payout.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenSignIn:
		return m.updateSignIn(msg)
	case screenSignUp:
		return m.updateSignUp(msg)
	case screenOTP:
		return m.updateOTP(msg)
	case screenAmount:
		return m.updateAmount(msg)
	case screenQuote:
		return m.updateQuote(msg)
	case screenPayout:
		return m.updatePayout(msg)
	case screenSettled:
		return m.updateSettled(msg)
	case screenExpired:
		return m.updateExpired(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenSignIn:
		body = m.signIn.View()
	case screenSignUp:
		body = m.signUp.View()
	case screenOTP:
		body = m.otp.View()
	case screenAmount:
		body = m.amount.View()
	case screenQuote:
		body = m.quote.View()
	case screenPayout:
		body = m.payout.View()
	case screenSettled:
		body = m.settled.View()
	case screenExpired:
		body = renderPage("SELL ORDER", app.MsgOrderExpired, "enter: new order")
	}

	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

// applyFlowState maps an orchestrator transition onto the visible screen.
func (m appModel) applyFlowState(st ramp.State) (tea.Model, tea.Cmd) {
	switch st.Kind {
	case ramp.StateStep1Collecting:
		m.amount.submitting = false
		m.prefillAmount(st.Fields)
		m.currentScreen = screenAmount

	case ramp.StateStep1Submitting:
		m.amount.submitting = true

	case ramp.StateStep2Collecting:
		m.amount.submitting = false
		m.payout.submitting = false
		if st.Quote != nil {
			m.quote.quote = *st.Quote
		}
		// a failed payout submission lands here too; do not yank the user
		// off the form they are on
		if m.currentScreen != screenPayout {
			m.currentScreen = screenQuote
		}

	case ramp.StateStep2Submitting:
		m.payout.submitting = true

	case ramp.StateSettled:
		m.payout.submitting = false
		if st.Settlement != nil {
			m.settled = settledModel{settlement: *st.Settlement, deadline: st.Deadline}
		}
		m.currentScreen = screenSettled
		return m, cmdCountdownTick()

	case ramp.StateExpired:
		m.currentScreen = screenExpired
	}

	return m, nil
}

func (m *appModel) prefillAmount(fields map[string]string) {
	m.amount.inputs[0].SetValue(fields[ramp.FieldToken])
	m.amount.inputs[1].SetValue(fields[ramp.FieldNetwork])
	m.amount.inputs[2].SetValue(fields[ramp.FieldSellAmount])
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setSubmitting(v bool) {
	m.signIn.submitting = v
	m.signUp.submitting = v
	m.otp.submitting = v
	m.amount.submitting = v
	m.payout.submitting = v
}

// ── auth screens ────────────────────────────────────────────────────────────

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.welcome.idx == 0 {
			m.currentScreen = screenSignIn
		} else {
			m.currentScreen = screenSignUp
		}
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	case keyMsg.String() == "v":
		m.showBuildInfo = true
	}
	return m, nil
}

func (m appModel) updateSignIn(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.signIn.focus = cycleFocus(m.signIn.inputs, m.signIn.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.signIn.focus = cycleFocus(m.signIn.inputs, m.signIn.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.signIn.submitting {
				return m, nil
			}
			email := strings.TrimSpace(m.signIn.inputs[0].Value())
			pass := m.signIn.inputs[1].Value()
			if email == "" || pass == "" {
				m.showErrorf("Email and password are required")
				return m, nil
			}
			m.signIn.submitting = true
			return m, m.cmdSignIn(models.SignInRequest{Email: email, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.signIn.inputs[m.signIn.focus], cmd = m.signIn.inputs[m.signIn.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateSignUp(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.signUp.focus = cycleFocus(m.signUp.inputs, m.signUp.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.signUp.focus = cycleFocus(m.signUp.inputs, m.signUp.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.signUp.submitting {
				return m, nil
			}
			first := strings.TrimSpace(m.signUp.inputs[0].Value())
			last := strings.TrimSpace(m.signUp.inputs[1].Value())
			email := strings.TrimSpace(m.signUp.inputs[2].Value())
			phone := strings.TrimSpace(m.signUp.inputs[3].Value())
			pass := m.signUp.inputs[4].Value()
			repeat := m.signUp.inputs[5].Value()
			if first == "" || email == "" || pass == "" {
				m.showErrorf("Name, email and password are required")
				return m, nil
			}
			if pass != repeat {
				m.showErrorf("Passwords do not match")
				return m, nil
			}
			m.signUp.submitting = true
			return m, m.cmdSignUp(models.SignUpRequest{
				Email:       email,
				Password:    pass,
				FirstName:   first,
				LastName:    last,
				PhoneNumber: phone,
			})
		}
	}

	var cmd tea.Cmd
	m.signUp.inputs[m.signUp.focus], cmd = m.signUp.inputs[m.signUp.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateOTP(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenSignUp
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.otp.submitting {
				return m, nil
			}
			code := strings.TrimSpace(m.otp.input.Value())
			if code == "" {
				m.showErrorf("Enter the verification code")
				return m, nil
			}
			m.otp.submitting = true
			return m, m.cmdVerifyOTP(models.VerifyOTPRequest{Email: m.otp.email, Code: code})
		}
	}

	var cmd tea.Cmd
	m.otp.input, cmd = m.otp.input.Update(msg)
	return m, cmd
}

// ── sell screens ────────────────────────────────────────────────────────────

func (m appModel) updateAmount(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.logout = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab):
			m.amount.focus = cycleFocus(m.amount.inputs, m.amount.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.amount.focus = cycleFocus(m.amount.inputs, m.amount.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.amount.submitting {
				return m, nil
			}
			return m, m.cmdSubmitStep1()
		}
	}

	var cmd tea.Cmd
	m.amount.inputs[m.amount.focus], cmd = m.amount.inputs[m.amount.focus].Update(msg)
	m.syncAmountFields()
	return m, cmd
}

// syncAmountFields pushes the typed step-1 values into the flow so they
// survive a reload.
func (m *appModel) syncAmountFields() {
	m.flow.SetField(m.ctx, ramp.FieldToken, m.amount.inputs[0].Value())
	m.flow.SetField(m.ctx, ramp.FieldNetwork, m.amount.inputs[1].Value())
	m.flow.SetField(m.ctx, ramp.FieldSellAmount, m.amount.inputs[2].Value())
}

func (m appModel) updateQuote(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.quote.quote.Deposit.Address)
	case key.Matches(keyMsg, keys.enter):
		m.payout.account.Focus()
		m.currentScreen = screenPayout
		return m, nil
	case key.Matches(keyMsg, keys.esc):
		return m, m.cmdNewOrder()
	}

	return m, nil
}

func (m appModel) updatePayout(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenQuote
		return m, nil
	case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.backtab):
		m.payout.bankFocused = !m.payout.bankFocused
		if m.payout.bankFocused {
			m.payout.account.Blur()
		} else {
			m.payout.account.Focus()
		}
		return m, nil
	case key.Matches(keyMsg, keys.reconcile):
		return m, m.cmdReconcile()
	case key.Matches(keyMsg, keys.up):
		if m.payout.bankFocused && m.payout.bankIdx > 0 {
			m.payout.bankIdx--
			return m, m.bankChanged()
		}
	case key.Matches(keyMsg, keys.down):
		if m.payout.bankFocused && m.payout.bankIdx < len(m.payout.banks)-1 {
			m.payout.bankIdx++
			return m, m.bankChanged()
		}
	case key.Matches(keyMsg, keys.enter):
		if m.payout.submitting {
			return m, nil
		}
		return m, m.cmdSubmitStep2()
	}

	if m.payout.bankFocused {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.payout.account.Value()
	m.payout.account, cmd = m.payout.account.Update(msg)
	if v := m.payout.account.Value(); v != before {
		m.flow.SetField(m.ctx, ramp.FieldAccountNumber, v)
		return m, tea.Batch(cmd, m.accountInputChanged())
	}
	return m, cmd
}

// bankChanged records the newly selected bank and restarts name resolution.
func (m *appModel) bankChanged() tea.Cmd {
	bank, ok := m.payout.currentBank()
	if !ok {
		return nil
	}
	m.flow.SetField(m.ctx, ramp.FieldBankName, bank.Name)
	m.flow.SetField(m.ctx, ramp.FieldBankCode, bank.Code)
	return m.accountInputChanged()
}

// accountInputChanged invalidates the resolved holder name and feeds the
// debounced resolver with the current bank/account pair.
func (m *appModel) accountInputChanged() tea.Cmd {
	m.payout.resolvedName = ""
	m.payout.resolveErr = ""
	m.flow.SetField(m.ctx, ramp.FieldAccountName, "")

	bank, ok := m.payout.currentBank()
	account := m.payout.account.Value()
	if !ok || len(account) < 10 {
		m.payout.resolving = false
		m.resolver.Input("", "")
		return nil
	}

	m.payout.resolving = true
	m.resolver.Input(bank.Code, account)
	return m.payout.spinner.Tick
}

func (m appModel) updateSettled(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.enter) {
		return m, m.cmdNewOrder()
	}
	return m, nil
}

func (m appModel) updateExpired(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.enter) {
		return m, m.cmdOpenFlow()
	}
	return m, nil
}

// ── commands ────────────────────────────────────────────────────────────────

func (m appModel) cmdSignIn(req models.SignInRequest) tea.Cmd {
	ctx := m.ctx
	rampAdapter := m.rampAdapter
	return func() tea.Msg {
		user, err := rampAdapter.SignIn(ctx, req)
		if err != nil {
			return authFailedMsg{err: err}
		}
		return authDoneMsg{user: user}
	}
}

func (m appModel) cmdSignUp(req models.SignUpRequest) tea.Cmd {
	ctx := m.ctx
	rampAdapter := m.rampAdapter
	return func() tea.Msg {
		if err := rampAdapter.SignUp(ctx, req); err != nil {
			return authFailedMsg{err: err}
		}
		return otpRequiredMsg{email: req.Email}
	}
}

func (m appModel) cmdVerifyOTP(req models.VerifyOTPRequest) tea.Cmd {
	ctx := m.ctx
	rampAdapter := m.rampAdapter
	return func() tea.Msg {
		user, err := rampAdapter.VerifyOTP(ctx, req)
		if err != nil {
			return authFailedMsg{err: err}
		}
		return authDoneMsg{user: user}
	}
}

func (m appModel) cmdOpenFlow() tea.Cmd {
	ctx := m.ctx
	flow := m.flow
	return func() tea.Msg {
		flow.Open(ctx)
		return nil
	}
}

func (m appModel) cmdLoadBanks() tea.Cmd {
	ctx := m.ctx
	rampAdapter := m.rampAdapter
	return func() tea.Msg {
		banks, err := rampAdapter.NairaBanks(ctx)
		return banksLoadedMsg{banks: banks, err: err}
	}
}

func (m appModel) cmdSubmitStep1() tea.Cmd {
	ctx := m.ctx
	flow := m.flow
	return func() tea.Msg {
		return submitDoneMsg{err: flow.SubmitStep1(ctx)}
	}
}

func (m appModel) cmdSubmitStep2() tea.Cmd {
	ctx := m.ctx
	flow := m.flow
	return func() tea.Msg {
		return submitDoneMsg{err: flow.SubmitStep2(ctx)}
	}
}

func (m appModel) cmdReconcile() tea.Cmd {
	ctx := m.ctx
	flow := m.flow
	paymentID := m.quote.quote.PaymentID
	return func() tea.Msg {
		return reconcileDoneMsg{err: flow.Reconcile(ctx, paymentID)}
	}
}

// cmdNewOrder closes the current flow and opens a fresh one.
func (m appModel) cmdNewOrder() tea.Cmd {
	ctx := m.ctx
	flow := m.flow
	return func() tea.Msg {
		flow.Close(ctx)
		flow.Open(ctx)
		return nil
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return submitDoneMsg{err: err}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func cmdCountdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{}
	})
}

// ── error wording ───────────────────────────────────────────────────────────

func humanizeAuthError(err error) string {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return app.MsgInvalidCredentials
	case errors.Is(err, adapter.ErrServerRejection):
		return err.Error()
	default:
		return humanizeServerUnavailableError(err)
	}
}

func humanizeSubmitError(err error) string {
	var verr *ramp.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if errors.Is(err, ramp.ErrSubmissionInFlight) {
		return app.MsgSubmissionInFlight
	}
	if errors.Is(err, adapter.ErrUnauthorized) {
		return app.MsgSessionExpired
	}
	if errors.Is(err, adapter.ErrServerRejection) {
		return err.Error()
	}
	return humanizeServerUnavailableError(err)
}

func humanizeReconcileError(err error) string {
	if errors.Is(err, ramp.ErrReconciliationMismatch) {
		return app.MsgTransactionNotFound
	}
	return humanizeServerUnavailableError(err)
}

func cycleFocus(inputs []textinput.Model, focus, delta int) int {
	inputs[focus].Blur()
	focus = (focus + delta + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}
