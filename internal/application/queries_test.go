package application

import (
	"testing"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestViewPrefillOnlyOnForm(t *testing.T) {
	draft := domain.SessionDraft{Content: "hello world", WordCount: 2}

	prefill, ok := FormView(draft).Prefill()
	assert.True(t, ok)
	assert.Equal(t, draft, prefill)

	for _, view := range []View{UnauthenticatedView(), DashboardView(), FocusView(), AdminView(), SocialView()} {
		_, ok := view.Prefill()
		assert.False(t, ok, view.String())
	}
}

func TestViewKindString(t *testing.T) {
	assert.Equal(t, "unauthenticated", ViewUnauthenticated.String())
	assert.Equal(t, "form", ViewForm.String())
	assert.Equal(t, "social", ViewSocial.String())
	assert.Equal(t, "unknown", ViewKind(42).String())
}

func TestStateSaveStatusOf(t *testing.T) {
	state := State{Unsynced: map[string]SaveStatus{"ref-1": SavePending, "ref-2": SaveFailed}}

	assert.Equal(t, SavePending, state.SaveStatusOf(domain.WritingSession{ClientRef: "ref-1"}))
	assert.Equal(t, SaveFailed, state.SaveStatusOf(domain.WritingSession{ClientRef: "ref-2"}))
	assert.Equal(t, SaveConfirmed, state.SaveStatusOf(domain.WritingSession{ClientRef: "ref-3"}))
	assert.Equal(t, SaveConfirmed, state.SaveStatusOf(domain.WritingSession{}))
}

func TestStateProjectName(t *testing.T) {
	state := State{Projects: []domain.Project{{ID: "p-1", Name: "Novel"}}}

	assert.Equal(t, "Novel", state.ProjectName("p-1"))
	assert.Empty(t, state.ProjectName("p-2"))
	assert.Empty(t, state.ProjectName(""))
}
