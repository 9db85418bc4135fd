package application

import "github.com/ZhugeBane/parnaso-v6/internal/domain"

type ViewKind int

const (
	ViewUnauthenticated ViewKind = iota
	ViewDashboard
	ViewForm
	ViewFocus
	ViewAdmin
	ViewSocial
)

func (k ViewKind) String() string {
	switch k {
	case ViewUnauthenticated:
		return "unauthenticated"
	case ViewDashboard:
		return "dashboard"
	case ViewForm:
		return "form"
	case ViewFocus:
		return "focus"
	case ViewAdmin:
		return "admin"
	case ViewSocial:
		return "social"
	default:
		return "unknown"
	}
}

// View is the active screen. Only the form view carries a prefill.
type View struct {
	Kind    ViewKind
	prefill domain.SessionDraft
}

func UnauthenticatedView() View { return View{Kind: ViewUnauthenticated} }
func DashboardView() View       { return View{Kind: ViewDashboard} }
func FocusView() View           { return View{Kind: ViewFocus} }
func AdminView() View           { return View{Kind: ViewAdmin} }
func SocialView() View          { return View{Kind: ViewSocial} }

func FormView(prefill domain.SessionDraft) View {
	return View{Kind: ViewForm, prefill: prefill}
}

// Prefill reports the form prefill; ok is false for every other view.
func (v View) Prefill() (domain.SessionDraft, bool) {
	if v.Kind != ViewForm {
		return domain.SessionDraft{}, false
	}

	return v.prefill, true
}

func (v View) String() string {
	return v.Kind.String()
}

type SaveStatus int

const (
	SavePending SaveStatus = iota + 1
	SaveConfirmed
	SaveFailed
)

func (s SaveStatus) String() string {
	switch s {
	case SavePending:
		return "pending"
	case SaveConfirmed:
		return "confirmed"
	case SaveFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of everything the views render.
type State struct {
	User        *domain.User
	View        View
	Sessions    []domain.WritingSession
	Projects    []domain.Project
	Settings    domain.UserSettings
	LoadingAuth bool
	LoadingData bool

	// Unsynced holds the client refs of optimistic sessions not yet confirmed by a read.
	Unsynced map[string]SaveStatus
}

func (s State) Authenticated() bool {
	return s.User != nil
}

// SaveStatusOf reports the sync status of a listed session. Sessions not tracked are confirmed.
func (s State) SaveStatusOf(session domain.WritingSession) SaveStatus {
	if session.ClientRef == "" {
		return SaveConfirmed
	}
	if status, ok := s.Unsynced[session.ClientRef]; ok {
		return status
	}

	return SaveConfirmed
}

func (s State) ProjectName(id domain.ProjectID) string {
	for _, project := range s.Projects {
		if project.ID == id {
			return project.Name
		}
	}

	return ""
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	out.Sessions = append([]domain.WritingSession(nil), s.Sessions...)
	out.Projects = append([]domain.Project(nil), s.Projects...)
	out.Unsynced = make(map[string]SaveStatus, len(s.Unsynced))
	for ref, status := range s.Unsynced {
		out.Unsynced[ref] = status
	}

	return out
}
