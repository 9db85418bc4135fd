package application

import (
	"fmt"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
)

// NewSession opens an empty session form from the dashboard.
func (c *Controller) NewSession() error {
	return c.transition("new session", func(s *State) (View, error) {
		if s.View.Kind != ViewDashboard {
			return View{}, ErrInvalidTransition
		}
		return FormView(domain.SessionDraft{}), nil
	})
}

func (c *Controller) EnterFocus() error {
	return c.transition("enter focus", fromDashboard(FocusView()))
}

func (c *Controller) EnterSocial() error {
	return c.transition("enter social", fromDashboard(SocialView()))
}

func (c *Controller) EnterAdmin() error {
	return c.transition("enter admin", func(s *State) (View, error) {
		if s.View.Kind != ViewDashboard {
			return View{}, ErrInvalidTransition
		}
		if !s.User.IsAdmin() {
			return View{}, ErrForbidden
		}
		return AdminView(), nil
	})
}

// ExitView leaves the admin or social view.
func (c *Controller) ExitView() error {
	return c.transition("exit view", func(s *State) (View, error) {
		switch s.View.Kind {
		case ViewAdmin, ViewSocial:
			return DashboardView(), nil
		default:
			return View{}, ErrInvalidTransition
		}
	})
}

// Cancel abandons the session form.
func (c *Controller) Cancel() error {
	return c.transition("cancel", func(s *State) (View, error) {
		if s.View.Kind != ViewForm {
			return View{}, ErrInvalidTransition
		}
		return DashboardView(), nil
	})
}

// FocusExit leaves focus mode. With a result the form opens prefilled from it,
// without one the dashboard is shown.
func (c *Controller) FocusExit(result *domain.FocusResult) error {
	return c.transition("focus exit", func(s *State) (View, error) {
		if s.View.Kind != ViewFocus {
			return View{}, ErrInvalidTransition
		}
		if result == nil {
			return DashboardView(), nil
		}
		return FormView(result.Draft()), nil
	})
}

func fromDashboard(next View) func(*State) (View, error) {
	return func(s *State) (View, error) {
		if s.View.Kind != ViewDashboard {
			return View{}, ErrInvalidTransition
		}
		return next, nil
	}
}

func (c *Controller) transition(intent string, next func(*State) (View, error)) error {
	var err error
	c.mutate(func() bool {
		if c.state.User == nil {
			err = ErrNotAuthenticated
			return false
		}

		from := c.state.View.Kind
		view, nextErr := next(&c.state)
		if nextErr != nil {
			err = fmt.Errorf("%w: %s from %s", nextErr, intent, from)
			return false
		}

		c.state.View = view
		return true
	})

	return err
}
