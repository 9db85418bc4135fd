// Package tui hosts the writing views in a bubbletea program. Every screen is
// drawn from the controller snapshot and every key press becomes a
// controller intent.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/adapters/render/progress"
	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/logging"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptProject
	promptGoal
	promptReset
)

// stateFeed hands the newest controller snapshot to the program. Older
// undelivered snapshots are replaced.
type stateFeed struct {
	mu sync.Mutex
	ch chan application.State
}

func newStateFeed() *stateFeed {
	return &stateFeed{ch: make(chan application.State, 1)}
}

func (f *stateFeed) push(state application.State) {
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case <-f.ch:
	default:
	}
	f.ch <- state
}

func (f *stateFeed) next() tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: <-f.ch}
	}
}

// errorTTL is how long an error stays on screen.
const errorTTL = 5 * time.Second

type Model struct {
	ctx      context.Context
	ctrl     *application.Controller
	accounts *application.Service
	logger   logging.Logger
	feed     *stateFeed
	now      func() time.Time
	keys     keyMap

	state  application.State
	width  int
	height int

	spinner   spinner.Model
	notice    string
	noticeErr bool
	noticeAt  time.Time

	auth        authPage
	form        formPage
	focus       focusPage
	directory   directoryPage
	prompt      promptKind
	promptInput textinput.Model
}

// Run starts the controller and blocks until the user quits. Pending saves
// are allowed to settle before it returns.
func Run(ctx context.Context, ctrl *application.Controller, accounts *application.Service, logger logging.Logger) error {
	feed := newStateFeed()
	unsubscribe := ctrl.OnChange(feed.push)
	defer unsubscribe()

	p := tea.NewProgram(
		newModel(ctx, ctrl, accounts, logger, feed, time.Now),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	ctrl.Wait()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func newModel(ctx context.Context, ctrl *application.Controller, accounts *application.Service, logger logging.Logger, feed *stateFeed, now func() time.Time) Model {
	if logger == nil {
		logger = logging.Discard()
	}

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		accounts: accounts,
		logger:   logger.With("component", "tui"),
		feed:     feed,
		now:      now,
		keys:     newKeyMap(),
		state:    ctrl.Snapshot(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(spinnerStyle),
		),
		auth: newAuthPage(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.feed.next(), m.startCmd())
}

func (m Model) startCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return opDoneMsg{op: "load data", err: ctrl.Start(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.noticeErr && m.now().Sub(m.noticeAt) >= errorTTL {
			m.clearNotice()
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg:
		cmd := m.applyState(msg.state)
		return m, tea.Batch(cmd, m.feed.next())

	case opDoneMsg:
		return m.handleOpDone(msg), nil

	case authDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.auth = newAuthPage()
		if msg.loadErr != nil {
			m.setError(fmt.Errorf("signed in as %s, but %w", msg.user.Name(), msg.loadErr))
		} else {
			m.setInfo("signed in as " + msg.user.Name())
		}
		cmd := m.syncState()
		return m, cmd

	case usersMsg:
		m.directory.loading = false
		m.directory.users = msg.users
		m.directory.err = msg.err
		return m, nil

	case saveSettledMsg:
		switch msg.result.Status {
		case application.SaveConfirmed:
			m.setInfo("session saved")
		case application.SaveFailed:
			m.setError(fmt.Errorf("session not saved (R to retry, D to discard): %w", msg.result.Err))
		}
		cmd := m.syncState()
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.state.View.Kind == application.ViewFocus {
		var cmd tea.Cmd
		m.focus, cmd = m.focus.update(msg)
		return m, cmd
	}

	return m, nil
}

// syncState pulls the current snapshot after a synchronous intent.
func (m *Model) syncState() tea.Cmd {
	return m.applyState(m.ctrl.Snapshot())
}

// applyState installs state and prepares the page for a newly entered view.
func (m *Model) applyState(state application.State) tea.Cmd {
	prev := m.state.View.Kind
	m.state = state
	if state.View.Kind == prev {
		return nil
	}

	m.prompt = promptNone
	switch state.View.Kind {
	case application.ViewUnauthenticated:
		m.auth = newAuthPage()
	case application.ViewForm:
		draft, _ := state.View.Prefill()
		m.form = newFormPage(draft, m.now(), state.Settings.FocusDuration())
	case application.ViewFocus:
		m.focus = newFocusPage(m.now(), state.Settings.FocusDuration())
		return m.focus.init()
	case application.ViewAdmin:
		m.directory = directoryPage{admin: true, loading: true}
		return m.loadUsers(true)
	case application.ViewSocial:
		m.directory = directoryPage{loading: true}
		return m.loadUsers(false)
	}

	return nil
}

func (m Model) loadUsers(admin bool) tea.Cmd {
	ctx, accounts, user := m.ctx, m.accounts, m.state.User
	return func() tea.Msg {
		var (
			users []domain.User
			err   error
		)
		if admin {
			users, err = accounts.ListUsers(ctx, user)
		} else {
			users, err = accounts.Writers(ctx, user)
		}
		return usersMsg{users: users, err: err}
	}
}

func (m Model) handleOpDone(msg opDoneMsg) Model {
	if msg.err != nil {
		m.logger.Warn(m.ctx, "operation failed", "op", msg.op, "err", msg.err)
		m.setError(fmt.Errorf("%s: %w", msg.op, msg.err))
		return m
	}

	switch msg.op {
	case "load data":
	case "reset":
		m.setInfo("all writing data erased")
	case "logout":
		m.setInfo("signed out")
	default:
		m.setInfo(msg.op + " done")
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.LoadingAuth {
		return m, nil
	}

	switch m.state.View.Kind {
	case application.ViewUnauthenticated:
		return m.handleAuthKey(msg)
	case application.ViewDashboard:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		return m.handleDashboardKey(msg)
	case application.ViewForm:
		return m.handleFormKey(msg)
	case application.ViewFocus:
		return m.handleFocusKey(msg)
	case application.ViewAdmin, application.ViewSocial:
		if key.Matches(msg, m.keys.Back) {
			return m.intent(m.ctrl.ExitView)
		}
	}

	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.auth.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextField):
		m.auth = m.auth.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.auth = m.auth.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		m.auth = m.auth.toggleMode()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.auth.busy = true
		m.clearNotice()
		return m, m.authCmd()
	}

	var cmd tea.Cmd
	m.auth, cmd = m.auth.update(msg)
	return m, cmd
}

func (m Model) authCmd() tea.Cmd {
	ctx, ctrl, accounts := m.ctx, m.ctrl, m.accounts
	register, loginCmd, registerCmd := m.auth.register, m.auth.loginCommand(), m.auth.registerCommand()

	return func() tea.Msg {
		var (
			user domain.User
			err  error
		)
		if register {
			user, err = accounts.Register(ctx, registerCmd)
		} else {
			user, err = accounts.Login(ctx, loginCmd)
		}
		if err != nil {
			return authDoneMsg{err: err}
		}

		return authDoneMsg{user: user, loadErr: ctrl.Login(ctx, user)}
	}
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.QuitOnIdle):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NewSession):
		return m.intent(m.ctrl.NewSession)
	case key.Matches(msg, m.keys.Focus):
		return m.intent(m.ctrl.EnterFocus)
	case key.Matches(msg, m.keys.Social):
		return m.intent(m.ctrl.EnterSocial)
	case key.Matches(msg, m.keys.Admin):
		return m.intent(m.ctrl.EnterAdmin)
	case key.Matches(msg, m.keys.NewProject):
		return m.openPrompt(promptProject, "project name: ", ""), nil
	case key.Matches(msg, m.keys.DailyGoal):
		return m.openPrompt(promptGoal, "daily word goal: ", strconv.Itoa(m.state.Settings.DailyWordGoal)), nil
	case key.Matches(msg, m.keys.Reset):
		return m.openPrompt(promptReset, "type yes to erase all writing data: ", ""), nil
	case key.Matches(msg, m.keys.Refresh):
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg { return opDoneMsg{op: "refresh", err: ctrl.Refresh(ctx)} }
	case key.Matches(msg, m.keys.Logout):
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg { return opDoneMsg{op: "logout", err: ctrl.Logout(ctx)} }
	case key.Matches(msg, m.keys.Retry):
		return m.retryFailed()
	case key.Matches(msg, m.keys.Discard):
		return m.discardFailed()
	}

	return m, nil
}

func (m Model) failedRefs() []string {
	var refs []string
	for _, session := range m.state.Sessions {
		if m.state.SaveStatusOf(session) == application.SaveFailed {
			refs = append(refs, session.ClientRef)
		}
	}
	return refs
}

func (m Model) retryFailed() (tea.Model, tea.Cmd) {
	m.clearNotice()
	var cmds []tea.Cmd
	for _, ref := range m.failedRefs() {
		ticket, err := m.ctrl.RetrySave(m.ctx, ref)
		if err != nil {
			m.setError(err)
			continue
		}
		cmds = append(cmds, waitTicket(m.ctx, ticket))
	}
	if !m.noticeErr {
		if len(cmds) == 0 {
			m.setInfo("nothing to retry")
		} else {
			m.setInfo(fmt.Sprintf("retrying %d session(s)", len(cmds)))
		}
	}

	cmds = append(cmds, m.syncState())
	return m, tea.Batch(cmds...)
}

func (m Model) discardFailed() (tea.Model, tea.Cmd) {
	m.clearNotice()
	discarded := 0
	for _, ref := range m.failedRefs() {
		if err := m.ctrl.DiscardFailedSave(ref); err != nil {
			m.setError(err)
			continue
		}
		discarded++
	}
	if discarded > 0 && !m.noticeErr {
		m.setInfo(fmt.Sprintf("discarded %d unsaved session(s)", discarded))
	}

	cmd := m.syncState()
	return m, cmd
}

func (m Model) openPrompt(kind promptKind, label, value string) Model {
	input := textinput.New()
	input.Prompt = label
	input.CharLimit = 80
	input.SetValue(value)
	input.Focus()

	m.prompt = kind
	m.promptInput = input
	m.clearNotice()
	return m
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.prompt = promptNone
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		kind, value := m.prompt, strings.TrimSpace(m.promptInput.Value())
		m.prompt = promptNone
		return m.submitPrompt(kind, value)
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	ctx, ctrl := m.ctx, m.ctrl

	switch kind {
	case promptProject:
		if value == "" {
			m.setError(errors.New("project name is required"))
			return m, nil
		}
		project := domain.Project{Name: value}
		return m, func() tea.Msg { return opDoneMsg{op: "create project", err: ctrl.SaveProject(ctx, project)} }

	case promptGoal:
		goal, err := strconv.Atoi(value)
		if err != nil || goal < 0 {
			m.setError(fmt.Errorf("daily goal must be a whole number, got %q", value))
			return m, nil
		}
		settings := m.state.Settings
		settings.DailyWordGoal = goal
		return m, func() tea.Msg { return opDoneMsg{op: "update goal", err: ctrl.UpdateSettings(ctx, settings)} }

	case promptReset:
		if !strings.EqualFold(value, "yes") {
			m.setInfo("reset cancelled")
			return m, nil
		}
		return m, func() tea.Msg { return opDoneMsg{op: "reset", err: ctrl.ResetData(ctx)} }
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.intent(m.ctrl.Cancel)
	case key.Matches(msg, m.keys.NextField):
		m.form = m.form.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form = m.form.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Multitask):
		m.form.multitasking = !m.form.multitasking
		return m, nil
	case key.Matches(msg, m.keys.Save):
		session, err := m.form.session(m.state.Projects)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		ticket, err := m.ctrl.SaveSession(m.ctx, session)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setInfo("saving...")
		cmd := m.syncState()
		return m, tea.Batch(cmd, waitTicket(m.ctx, ticket))
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		result := m.focus.result(m.now())
		return m.intent(func() error { return m.ctrl.FocusExit(result) })
	case key.Matches(msg, m.keys.Back):
		return m.intent(func() error { return m.ctrl.FocusExit(nil) })
	}

	var cmd tea.Cmd
	m.focus, cmd = m.focus.update(msg)
	return m, cmd
}

// intent runs a synchronous controller transition and adopts the resulting state.
func (m Model) intent(fn func() error) (tea.Model, tea.Cmd) {
	if err := fn(); err != nil {
		m.setError(err)
		return m, nil
	}

	m.clearNotice()
	cmd := m.syncState()
	return m, cmd
}

func waitTicket(ctx context.Context, ticket *application.SaveTicket) tea.Cmd {
	return func() tea.Msg {
		result, _ := ticket.Wait(ctx)
		return saveSettledMsg{clientRef: ticket.ClientRef(), result: result}
	}
}

func (m *Model) setError(err error) {
	m.notice, m.noticeErr, m.noticeAt = err.Error(), true, m.now()
}

func (m *Model) setInfo(text string) {
	m.notice, m.noticeErr = text, false
}

func (m *Model) clearNotice() {
	m.notice, m.noticeErr = "", false
}

func (m Model) View() string {
	var body string
	switch {
	case m.state.LoadingAuth:
		body = m.spinner.View() + " checking sign-in..."
	case m.state.View.Kind == application.ViewUnauthenticated:
		body = m.auth.view(m.keys)
	case m.state.View.Kind == application.ViewDashboard:
		body = m.dashboardView()
	case m.state.View.Kind == application.ViewForm:
		body = m.form.view(m.keys)
	case m.state.View.Kind == application.ViewFocus:
		body = m.focus.view(m.keys)
	default:
		body = m.directory.view(m.keys)
	}

	if m.notice != "" {
		style := infoStyle
		if m.noticeErr {
			style = errorStyle
		}
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", style.Render(m.notice))
	}

	return frameStyle.Render(body)
}

func (m Model) dashboardView() string {
	limit := 0
	if m.height > 0 {
		limit = max(3, m.height-22)
	}

	report := progress.Report{State: m.state, Progress: m.accounts.Progress(m.state)}
	lines := []string{}
	if m.state.LoadingData {
		lines = append(lines, m.spinner.View()+" loading your writing...")
	}
	lines = append(lines, progress.Dashboard(report, progress.RenderOptions{Now: m.now(), Limit: limit}), "")

	if m.prompt != promptNone {
		lines = append(lines, m.promptInput.View(), helpLine(m.keys.Submit, m.keys.Back))
	} else {
		bindings := []key.Binding{m.keys.NewSession, m.keys.Focus, m.keys.NewProject, m.keys.DailyGoal, m.keys.Social}
		if m.state.User != nil && m.state.User.IsAdmin() {
			bindings = append(bindings, m.keys.Admin)
		}
		bindings = append(bindings, m.keys.Refresh)
		if len(m.failedRefs()) > 0 {
			bindings = append(bindings, m.keys.Retry, m.keys.Discard)
		}
		bindings = append(bindings, m.keys.Reset, m.keys.Logout, m.keys.QuitOnIdle)
		lines = append(lines, helpLine(bindings...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
