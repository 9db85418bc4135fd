package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/ports/mocks"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ana  = domain.User{ID: "u-1", Email: "ana@example.com", DisplayName: "Ana", Role: domain.RoleWriter}
	root = domain.User{ID: "u-0", Email: "root@example.com", Role: domain.RoleAdmin}
)

type modelDeps struct {
	identity  *mocks.MockIdentityGateway
	store     *mocks.MockPersistenceGateway
	auth      *mocks.MockAuthenticator
	directory *mocks.MockUserDirectory
	ctrl      *application.Controller
}

func newTestModel(t *testing.T, user *domain.User) (Model, modelDeps) {
	t.Helper()

	deps := modelDeps{
		identity:  mocks.NewMockIdentityGateway(t),
		store:     mocks.NewMockPersistenceGateway(t),
		auth:      mocks.NewMockAuthenticator(t),
		directory: mocks.NewMockUserDirectory(t),
	}
	deps.identity.EXPECT().CurrentUser(mock.Anything).Return(user, nil).Once()
	if user != nil {
		expectLoad(deps.store, user.ID)
	}

	deps.ctrl = application.NewController(deps.identity, deps.store, nil)
	t.Cleanup(deps.ctrl.Wait)
	require.NoError(t, deps.ctrl.Start(context.Background()))

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(testNow).Maybe()
	accounts := application.NewService(deps.auth, deps.directory, clock)

	model := newModel(context.Background(), deps.ctrl, accounts, nil, newStateFeed(), func() time.Time { return testNow })
	return model, deps
}

func expectLoad(store *mocks.MockPersistenceGateway, userID domain.UserID) {
	store.EXPECT().GetSessions(mock.Anything, userID).Return(nil, nil)
	store.EXPECT().GetProjects(mock.Anything, userID).Return([]domain.Project{{ID: "p-1", Name: "Novel"}}, nil)
	store.EXPECT().GetSettings(mock.Anything, userID).Return(domain.UserSettings{DailyWordGoal: 400, FocusMinutes: 30}, nil)
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// collect runs cmd and every command it batches, returning the messages produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func TestModelShowsSpinnerWhileCheckingSignIn(t *testing.T) {
	identity := mocks.NewMockIdentityGateway(t)
	ctrl := application.NewController(identity, mocks.NewMockPersistenceGateway(t), nil)
	accounts := application.NewService(mocks.NewMockAuthenticator(t), mocks.NewMockUserDirectory(t), nil)

	m := newModel(context.Background(), ctrl, accounts, nil, newStateFeed(), time.Now)
	assert.Contains(t, m.View(), "checking sign-in...")

	m, _ = press(t, m, runeKey("n"))
	assert.Equal(t, application.ViewUnauthenticated, m.state.View.Kind)
}

func TestModelSignedInStartsOnDashboard(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
	view := m.View()
	assert.Contains(t, view, "Writing progress")
	assert.Contains(t, view, "writer: Ana")
	assert.NotContains(t, view, "a admin")
}

func TestModelSignInFromAuthPage(t *testing.T) {
	m, deps := newTestModel(t, nil)
	require.Equal(t, application.ViewUnauthenticated, m.state.View.Kind)

	m.auth.inputs[authEmail].SetValue("Ana@Example.com")
	m.auth.inputs[authPassword].SetValue("secret1")

	deps.auth.EXPECT().Login(mock.Anything, "ana@example.com", "secret1").Return(ana, nil).Once()
	expectLoad(deps.store, ana.ID)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.auth.busy)

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	m, _ = press(t, m, msgs[0])

	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
	require.NotNil(t, m.state.User)
	assert.Equal(t, ana.ID, m.state.User.ID)
	assert.Equal(t, 400, m.state.Settings.DailyWordGoal)
	assert.Equal(t, "signed in as Ana", m.notice)
}

func TestModelSignInFailureStaysOnAuthPage(t *testing.T) {
	m, deps := newTestModel(t, nil)
	m.auth.inputs[authEmail].SetValue("ana@example.com")
	m.auth.inputs[authPassword].SetValue("wrong-pass")

	deps.auth.EXPECT().Login(mock.Anything, "ana@example.com", "wrong-pass").Return(domain.User{}, domain.ErrInvalidCredentials).Once()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for _, msg := range collect(cmd) {
		m, _ = press(t, m, msg)
	}

	assert.Equal(t, application.ViewUnauthenticated, m.state.View.Kind)
	assert.False(t, m.auth.busy)
	assert.True(t, m.noticeErr)
	assert.Contains(t, m.View(), domain.ErrInvalidCredentials.Error())
}

func TestModelNewSessionSavesOptimistically(t *testing.T) {
	m, deps := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("n"))
	require.Equal(t, application.ViewForm, m.state.View.Kind)
	assert.Equal(t, "2026-03-10 18:00", m.form.inputs[formStart].Value())

	m.form.inputs[formProject].SetValue("novel")
	m.form.content.SetValue("the tide came in twice")

	release := make(chan struct{})
	deps.store.EXPECT().
		SaveSession(mock.Anything, mock.MatchedBy(func(s domain.WritingSession) bool {
			return s.ProjectID == "p-1" && s.WordCount == 5 && s.ClientRef != ""
		}), ana.ID).
		RunAndReturn(func(context.Context, domain.WritingSession, domain.UserID) error {
			<-release
			return nil
		}).Once()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
	require.Len(t, m.state.Sessions, 1)
	assert.Equal(t, application.SavePending, m.state.SaveStatusOf(m.state.Sessions[0]))
	assert.Contains(t, m.View(), "[saving]")

	close(release)
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	settled, ok := msgs[0].(saveSettledMsg)
	require.True(t, ok)
	assert.Equal(t, application.SaveConfirmed, settled.result.Status)

	m, _ = press(t, m, settled)
	assert.Equal(t, "session saved", m.notice)
	assert.False(t, m.noticeErr)
}

func TestModelFormValidationErrorKeepsForm(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("n"))
	m.form.inputs[formEnd].SetValue("2026-03-10 17:00")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, application.ViewForm, m.state.View.Kind)
	assert.Equal(t, errEndBeforeStart.Error(), m.notice)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
	assert.Empty(t, m.state.Sessions)
}

func TestModelFailedSaveCanBeDiscarded(t *testing.T) {
	m, deps := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("n"))
	m.form.content.SetValue("lost words")
	deps.store.EXPECT().SaveSession(mock.Anything, mock.Anything, ana.ID).Return(errors.New("disk full")).Once()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	for _, msg := range collect(cmd) {
		m, _ = press(t, m, msg)
	}

	require.Len(t, m.state.Sessions, 1)
	assert.Equal(t, application.SaveFailed, m.state.SaveStatusOf(m.state.Sessions[0]))
	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, "disk full")
	assert.Contains(t, m.View(), "R retry failed")

	m, _ = press(t, m, runeKey("D"))
	assert.Empty(t, m.state.Sessions)
	assert.Equal(t, "discarded 1 unsaved session(s)", m.notice)
}

func TestModelRetryReplacesSaveError(t *testing.T) {
	m, deps := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("n"))
	m.form.content.SetValue("second try")
	deps.store.EXPECT().SaveSession(mock.Anything, mock.Anything, ana.ID).Return(errors.New("disk full")).Once()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	for _, msg := range collect(cmd) {
		m, _ = press(t, m, msg)
	}
	require.True(t, m.noticeErr)

	deps.store.EXPECT().SaveSession(mock.Anything, mock.Anything, ana.ID).Return(nil).Once()

	m, cmd = press(t, m, runeKey("R"))
	assert.False(t, m.noticeErr)
	assert.Equal(t, "retrying 1 session(s)", m.notice)

	for _, msg := range collect(cmd) {
		m, _ = press(t, m, msg)
	}
	assert.False(t, m.noticeErr)
	assert.Equal(t, "session saved", m.notice)
	assert.NotContains(t, m.View(), "R retry failed")
}

func TestModelFocusRunPrefillsForm(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	m, cmd := press(t, m, runeKey("f"))
	require.Equal(t, application.ViewFocus, m.state.View.Kind)
	assert.NotNil(t, cmd)

	m.focus.text.SetValue("gulls over the pier")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, application.ViewForm, m.state.View.Kind)
	assert.Equal(t, "gulls over the pier", m.form.content.Value())
	assert.False(t, m.form.multitasking)
}

func TestModelFocusEscapeReturnsToDashboard(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("f"))
	m.focus.text.SetValue("draft to throw away")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
	assert.Empty(t, m.state.Sessions)
}

func TestModelAdminRequiresAdminRole(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	m, cmd := press(t, m, runeKey("a"))
	assert.Nil(t, cmd)
	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, application.ErrForbidden.Error())
}

func TestModelErrorClearsAfterAWhile(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("a"))
	require.True(t, m.noticeErr)

	m, _ = press(t, m, spinner.TickMsg{})
	assert.True(t, m.noticeErr, "still fresh")

	m.now = func() time.Time { return testNow.Add(errorTTL) }
	m, _ = press(t, m, spinner.TickMsg{})
	assert.False(t, m.noticeErr)
	assert.Empty(t, m.notice)
}

func TestModelAdminListsUsers(t *testing.T) {
	m, deps := newTestModel(t, &root)
	deps.directory.EXPECT().ListUsers(mock.Anything).Return([]domain.User{root, ana}, nil).Once()

	m, cmd := press(t, m, runeKey("a"))
	require.Equal(t, application.ViewAdmin, m.state.View.Kind)
	assert.True(t, m.directory.loading)

	for _, msg := range collect(cmd) {
		m, _ = press(t, m, msg)
	}
	assert.False(t, m.directory.loading)
	assert.Len(t, m.directory.users, 2)
	assert.Contains(t, m.View(), "ana@example.com")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
}

func TestModelSocialHidesSelf(t *testing.T) {
	m, deps := newTestModel(t, &ana)
	deps.directory.EXPECT().ListUsers(mock.Anything).Return([]domain.User{root, ana}, nil).Once()

	m, cmd := press(t, m, runeKey("s"))
	require.Equal(t, application.ViewSocial, m.state.View.Kind)
	for _, msg := range collect(cmd) {
		m, _ = press(t, m, msg)
	}

	require.Len(t, m.directory.users, 1)
	assert.Equal(t, root.ID, m.directory.users[0].ID)
}

func TestModelDailyGoalPrompt(t *testing.T) {
	m, deps := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("g"))
	require.Equal(t, promptGoal, m.prompt)
	assert.Equal(t, "400", m.promptInput.Value())

	m.promptInput.SetValue("abc")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.noticeErr)

	m, _ = press(t, m, runeKey("g"))
	m.promptInput.SetValue("750")
	deps.store.EXPECT().
		SaveSettings(mock.Anything, domain.UserSettings{DailyWordGoal: 750, FocusMinutes: 30}, ana.ID).
		Return(nil).Once()

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, promptNone, m.prompt)
	for _, msg := range collect(cmd) {
		m, _ = press(t, m, msg)
	}
	assert.Equal(t, 750, deps.ctrl.Snapshot().Settings.DailyWordGoal)
	assert.Equal(t, "update goal done", m.notice)
}

func TestModelResetNeedsConfirmation(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("X"))
	require.Equal(t, promptReset, m.prompt)
	m.promptInput.SetValue("no")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "reset cancelled", m.notice)
}

func TestModelPromptKeysDoNotTriggerShortcuts(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	m, _ = press(t, m, runeKey("p"))
	require.Equal(t, promptProject, m.prompt)

	m, _ = press(t, m, runeKey("n"))
	assert.Equal(t, application.ViewDashboard, m.state.View.Kind)
	assert.Equal(t, "n", m.promptInput.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, promptNone, m.prompt)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, &ana)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
