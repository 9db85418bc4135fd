package application

import (
	"context"
	"sync"
)

type RegisterCommand struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginCommand struct {
	Email    string
	Password string
}

// SaveResult is the settled outcome of a session save.
type SaveResult struct {
	Status SaveStatus
	Err    error

	// Reconciled is true when the follow-up read replaced the in-memory list.
	Reconciled bool
}

// SaveTicket tracks one background session save.
type SaveTicket struct {
	clientRef string
	done      chan struct{}

	mu     sync.Mutex
	result SaveResult
}

func newSaveTicket(clientRef string) *SaveTicket {
	return &SaveTicket{
		clientRef: clientRef,
		done:      make(chan struct{}),
		result:    SaveResult{Status: SavePending},
	}
}

func (t *SaveTicket) ClientRef() string {
	return t.clientRef
}

// Done is closed once the save has settled.
func (t *SaveTicket) Done() <-chan struct{} {
	return t.done
}

func (t *SaveTicket) Result() SaveResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.result
}

// Wait blocks until the save settles or ctx ends.
func (t *SaveTicket) Wait(ctx context.Context) (SaveResult, error) {
	select {
	case <-t.done:
		return t.Result(), nil
	case <-ctx.Done():
		return t.Result(), ctx.Err()
	}
}

func (t *SaveTicket) settle(result SaveResult) {
	t.mu.Lock()
	t.result = result
	t.mu.Unlock()

	close(t.done)
}
