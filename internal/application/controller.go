package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/ZhugeBane/parnaso-v6/internal/logging"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Controller owns the client session state: who is signed in, which view is
// active, and the user's sessions, projects and settings. Views read
// snapshots and drive it through its intent methods.
type Controller struct {
	identity ports.IdentityGateway
	store    ports.PersistenceGateway
	logger   logging.Logger
	newRef   func() string
	queue    *keyedQueue
	wg       sync.WaitGroup

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int

	// epoch changes whenever the signed-in user or their data is swapped out;
	// loads from an older epoch are dropped.
	epoch uint64
	// Every read takes a sequence number; a read older than the last one
	// applied to the same list is dropped.
	readSeq         uint64
	appliedSessions uint64
	appliedProjects uint64
	appliedSettings uint64
	loads           int
}

func NewController(identity ports.IdentityGateway, store ports.PersistenceGateway, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}

	return &Controller{
		identity:  identity,
		store:     store,
		logger:    logger,
		newRef:    uuid.NewString,
		queue:     newKeyedQueue(),
		listeners: map[int]func(State){},
		state: State{
			View:        UnauthenticatedView(),
			Settings:    domain.InitialSettings(),
			LoadingAuth: true,
			Unsynced:    map[string]SaveStatus{},
		},
	}
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.clone()
}

// OnChange registers fn to receive a snapshot after every state change.
// fn runs outside the controller lock. The returned func unregisters it.
func (c *Controller) OnChange(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Wait blocks until every background save has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Start resolves the current user and, when there is one, loads their data.
// Auth failures are treated as signed out. A failed load still leaves the
// user on the dashboard; its error is returned so callers can report it.
func (c *Controller) Start(ctx context.Context) error {
	user, err := c.identity.CurrentUser(ctx)
	if err != nil {
		c.logger.Warn(ctx, "auth check failed", "err", err)
		user = nil
	}

	var loadErr error
	if user != nil {
		loadErr = c.signIn(ctx, *user)
	}

	c.mutate(func() bool {
		c.state.LoadingAuth = false
		return true
	})

	return loadErr
}

// Login installs user, loads their data and shows the dashboard. The
// dashboard is shown even when the load fails.
func (c *Controller) Login(ctx context.Context, user domain.User) error {
	return c.signIn(ctx, user)
}

// Logout signs out through the identity gateway and clears user data even when that call fails.
// Settings are left as they were.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.identity.Logout(ctx)
	if err != nil {
		c.logger.Error(ctx, "logout failed", "err", err)
	}

	c.mutate(func() bool {
		c.epoch++
		c.state.User = nil
		c.state.Sessions = nil
		c.state.Projects = nil
		c.state.Unsynced = map[string]SaveStatus{}
		c.state.View = UnauthenticatedView()
		return true
	})

	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// Refresh reloads sessions, projects and settings for the signed-in user.
func (c *Controller) Refresh(ctx context.Context) error {
	userID, epoch, err := c.currentUser()
	if err != nil {
		return err
	}

	c.mutate(func() bool {
		c.loads++
		c.state.LoadingData = true
		return true
	})

	err = c.fetch(ctx, userID, epoch)

	c.mutate(func() bool {
		c.loads--
		c.state.LoadingData = c.loads > 0
		return true
	})

	return err
}

func (c *Controller) signIn(ctx context.Context, user domain.User) error {
	var epoch uint64
	c.mutate(func() bool {
		c.epoch++
		epoch = c.epoch
		u := user
		c.state.User = &u
		c.state.Sessions = nil
		c.state.Projects = nil
		c.state.Unsynced = map[string]SaveStatus{}
		c.loads++
		c.state.LoadingData = true
		return true
	})

	err := c.fetch(ctx, user.ID, epoch)

	c.mutate(func() bool {
		c.loads--
		c.state.LoadingData = c.loads > 0
		if c.epoch == epoch {
			c.state.View = DashboardView()
		}
		return true
	})

	return err
}

// fetch reads the three user lists concurrently and applies them only if all succeed.
func (c *Controller) fetch(ctx context.Context, userID domain.UserID, epoch uint64) error {
	var seq uint64
	c.mutate(func() bool {
		seq = c.nextReadSeqLocked()
		return false
	})

	var (
		sessions []domain.WritingSession
		projects []domain.Project
		settings domain.UserSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := c.store.GetSessions(gctx, userID)
		if err != nil {
			return fmt.Errorf("get sessions: %w", err)
		}
		sessions = result
		return nil
	})
	g.Go(func() error {
		result, err := c.store.GetProjects(gctx, userID)
		if err != nil {
			return fmt.Errorf("get projects: %w", err)
		}
		projects = result
		return nil
	})
	g.Go(func() error {
		result, err := c.store.GetSettings(gctx, userID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}
		settings = result
		return nil
	})

	if err := g.Wait(); err != nil {
		c.logger.Error(ctx, "load user data failed", "user_id", userID, "err", err)
		return fmt.Errorf("load user data: %w", err)
	}

	c.mutate(func() bool {
		if c.epoch != epoch {
			return false
		}
		c.applySessionsLocked(seq, sessions)
		if seq > c.appliedProjects {
			c.appliedProjects = seq
			c.state.Projects = projects
		}
		if seq > c.appliedSettings {
			c.appliedSettings = seq
			c.state.Settings = settings
		}
		return true
	})

	return nil
}

// SaveSession inserts session at the head of the list, switches to the
// dashboard and persists it in the background. Saves for one user run in
// submission order, each followed by a reconciling read.
func (c *Controller) SaveSession(ctx context.Context, session domain.WritingSession) (*SaveTicket, error) {
	var (
		userID domain.UserID
		err    error
	)

	c.mutate(func() bool {
		if c.state.User == nil {
			err = ErrNotAuthenticated
			return false
		}
		if kind := c.state.View.Kind; kind != ViewForm && kind != ViewDashboard {
			err = fmt.Errorf("%w: save session from %s", ErrInvalidTransition, kind)
			return false
		}

		if session.ClientRef == "" {
			session.ClientRef = c.newRef()
		}
		userID = c.state.User.ID

		c.state.Sessions = append([]domain.WritingSession{session}, c.state.Sessions...)
		c.state.Unsynced[session.ClientRef] = SavePending
		c.state.View = DashboardView()
		return true
	})
	if err != nil {
		return nil, err
	}

	return c.dispatchSave(ctx, session, userID), nil
}

// RetrySave re-sends a session whose earlier save failed.
func (c *Controller) RetrySave(ctx context.Context, clientRef string) (*SaveTicket, error) {
	var (
		session domain.WritingSession
		userID  domain.UserID
		err     error
	)

	c.mutate(func() bool {
		if c.state.User == nil {
			err = ErrNotAuthenticated
			return false
		}
		idx := c.failedIndexLocked(clientRef)
		if idx < 0 {
			err = fmt.Errorf("%w: %s", ErrSaveNotFound, clientRef)
			return false
		}

		session = c.state.Sessions[idx]
		userID = c.state.User.ID
		c.state.Unsynced[clientRef] = SavePending
		return true
	})
	if err != nil {
		return nil, err
	}

	return c.dispatchSave(ctx, session, userID), nil
}

// DiscardFailedSave drops a session whose save failed from the list.
func (c *Controller) DiscardFailedSave(clientRef string) error {
	var err error
	c.mutate(func() bool {
		idx := c.failedIndexLocked(clientRef)
		if idx < 0 {
			err = fmt.Errorf("%w: %s", ErrSaveNotFound, clientRef)
			return false
		}

		c.state.Sessions = append(c.state.Sessions[:idx:idx], c.state.Sessions[idx+1:]...)
		delete(c.state.Unsynced, clientRef)
		return true
	})

	return err
}

func (c *Controller) dispatchSave(ctx context.Context, session domain.WritingSession, userID domain.UserID) *SaveTicket {
	ticket := newSaveTicket(session.ClientRef)
	wait, release := c.queue.enqueue(string(userID))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-wait
		defer release()

		ticket.settle(c.persistSession(ctx, session, userID))
	}()

	return ticket
}

// persistSession writes session and reconciles the list. Its results are
// applied only while the entry is still tracked for userID; logout, login
// and discard stop tracking it.
func (c *Controller) persistSession(ctx context.Context, session domain.WritingSession, userID domain.UserID) SaveResult {
	ref := session.ClientRef
	log := c.logger.With("user_id", userID, "client_ref", ref)

	if err := c.store.SaveSession(ctx, session, userID); err != nil {
		log.Error(ctx, "save session failed", "err", err)
		c.mutate(func() bool {
			if !c.trackedLocked(userID, ref) {
				return false
			}
			c.state.Unsynced[ref] = SaveFailed
			return true
		})
		return SaveResult{Status: SaveFailed, Err: fmt.Errorf("save session: %w", err)}
	}

	var (
		seq   uint64
		stale bool
	)
	c.mutate(func() bool {
		if !c.trackedLocked(userID, ref) {
			stale = true
			return false
		}
		seq = c.nextReadSeqLocked()
		return false
	})
	if stale {
		return SaveResult{Status: SaveConfirmed}
	}

	sessions, err := c.store.GetSessions(ctx, userID)
	if err != nil {
		log.Warn(ctx, "refresh sessions after save failed", "err", err)
		c.mutate(func() bool {
			if !c.trackedLocked(userID, ref) {
				return false
			}
			delete(c.state.Unsynced, ref)
			return true
		})
		return SaveResult{Status: SaveConfirmed}
	}

	reconciled := false
	c.mutate(func() bool {
		if !c.trackedLocked(userID, ref) {
			return false
		}
		delete(c.state.Unsynced, ref)
		reconciled = c.applySessionsLocked(seq, sessions)
		return true
	})
	log.Debug(ctx, "session saved", "reconciled", reconciled)

	return SaveResult{Status: SaveConfirmed, Reconciled: reconciled}
}

// SaveProject persists project and then reloads the project list.
func (c *Controller) SaveProject(ctx context.Context, project domain.Project) error {
	userID, epoch, err := c.currentUser()
	if err != nil {
		return err
	}

	if err := c.store.SaveProject(ctx, project, userID); err != nil {
		c.logger.Error(ctx, "save project failed", "user_id", userID, "err", err)
		return fmt.Errorf("save project: %w", err)
	}

	var seq uint64
	c.mutate(func() bool {
		seq = c.nextReadSeqLocked()
		return false
	})

	projects, err := c.store.GetProjects(ctx, userID)
	if err != nil {
		c.logger.Warn(ctx, "refresh projects after save failed", "user_id", userID, "err", err)
		return fmt.Errorf("refresh projects: %w", err)
	}

	c.mutate(func() bool {
		if c.epoch != epoch || seq <= c.appliedProjects {
			return false
		}
		c.appliedProjects = seq
		c.state.Projects = projects
		return true
	})

	return nil
}

// UpdateSettings replaces the local settings first and then persists them.
func (c *Controller) UpdateSettings(ctx context.Context, settings domain.UserSettings) error {
	var (
		userID domain.UserID
		err    error
	)

	c.mutate(func() bool {
		if c.state.User == nil {
			err = ErrNotAuthenticated
			return false
		}
		userID = c.state.User.ID
		c.appliedSettings = c.nextReadSeqLocked()
		c.state.Settings = settings
		return true
	})
	if err != nil {
		return err
	}

	if err := c.store.SaveSettings(ctx, settings, userID); err != nil {
		c.logger.Error(ctx, "save settings failed", "user_id", userID, "err", err)
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}

// ResetData clears everything stored for the user once earlier saves have
// finished, then resets the in-memory lists and settings. Sessions submitted
// while the clear runs are queued behind it, so they stay in the list.
func (c *Controller) ResetData(ctx context.Context) error {
	userID, _, err := c.currentUser()
	if err != nil {
		return err
	}

	wait, release := c.queue.enqueue(string(userID))
	defer release()
	<-wait

	if err := c.store.ClearAllData(ctx, userID); err != nil {
		c.logger.Error(ctx, "clear data failed", "user_id", userID, "err", err)
		return fmt.Errorf("clear all data: %w", err)
	}

	c.mutate(func() bool {
		c.epoch++
		var queued []domain.WritingSession
		unsynced := map[string]SaveStatus{}
		for _, session := range c.state.Sessions {
			if c.state.Unsynced[session.ClientRef] == SavePending {
				queued = append(queued, session)
				unsynced[session.ClientRef] = SavePending
			}
		}
		c.state.Sessions = queued
		c.state.Projects = nil
		c.state.Settings = domain.InitialSettings()
		c.state.Unsynced = unsynced
		return true
	})

	return nil
}

// applySessionsLocked installs an authoritative session list read with seq.
// Sessions still pending or failed that the list does not contain stay at the head.
func (c *Controller) applySessionsLocked(seq uint64, authoritative []domain.WritingSession) bool {
	if seq <= c.appliedSessions {
		return false
	}
	c.appliedSessions = seq

	present := make(map[string]struct{}, len(authoritative))
	for _, session := range authoritative {
		if session.ClientRef != "" {
			present[session.ClientRef] = struct{}{}
		}
	}

	merged := make([]domain.WritingSession, 0, len(authoritative)+len(c.state.Unsynced))
	for _, session := range c.state.Sessions {
		if _, tracked := c.state.Unsynced[session.ClientRef]; !tracked || session.ClientRef == "" {
			continue
		}
		if _, ok := present[session.ClientRef]; ok {
			if c.state.Unsynced[session.ClientRef] == SaveFailed {
				delete(c.state.Unsynced, session.ClientRef)
			}
			continue
		}
		merged = append(merged, session)
	}
	merged = append(merged, authoritative...)

	c.state.Sessions = merged
	return true
}

func (c *Controller) trackedLocked(userID domain.UserID, clientRef string) bool {
	if c.state.User == nil || c.state.User.ID != userID {
		return false
	}
	_, ok := c.state.Unsynced[clientRef]
	return ok
}

func (c *Controller) failedIndexLocked(clientRef string) int {
	if c.state.Unsynced[clientRef] != SaveFailed {
		return -1
	}
	for i, session := range c.state.Sessions {
		if session.ClientRef == clientRef {
			return i
		}
	}

	return -1
}

func (c *Controller) nextReadSeqLocked() uint64 {
	c.readSeq++
	return c.readSeq
}

func (c *Controller) currentUser() (domain.UserID, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.User == nil {
		return "", 0, ErrNotAuthenticated
	}

	return c.state.User.ID, c.epoch, nil
}

// mutate runs fn under the lock and, when fn reports a change, notifies listeners after unlocking.
func (c *Controller) mutate(fn func() bool) {
	c.mu.Lock()
	if !fn() {
		c.mu.Unlock()
		return
	}

	snapshot := c.state.clone()
	listeners := make([]func(State), 0, len(c.listeners))
	for _, listener := range c.listeners {
		listeners = append(listeners, listener)
	}
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}
