package tui

import (
	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
)

// stateMsg carries a controller snapshot into the program.
type stateMsg struct {
	state application.State
}

// opDoneMsg reports the outcome of a background controller call.
type opDoneMsg struct {
	op  string
	err error
}

type authDoneMsg struct {
	user    domain.User
	err     error
	loadErr error
}

type usersMsg struct {
	users []domain.User
	err   error
}

type saveSettledMsg struct {
	clientRef string
	result    application.SaveResult
}
