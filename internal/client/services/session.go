// Package services contains the application services of the docspace client:
// the session controller and the document repository. Both sit on top of the
// typed client.Client and hold the only mutable client-side state.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/docspace/internal/client/client"
	"github.com/dmitrijs2005/docspace/internal/client/credstore"
	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dmitrijs2005/docspace/internal/client/validation"
	"github.com/dmitrijs2005/docspace/internal/logging"
)

// SessionService owns the authentication state of the client.
//
// Contract:
//   - Start: verify a stored credential once at startup.
//   - Login: exchange username and password for a credential and persist it.
//   - Register: create an account; does not log in.
//   - Logout: forget the credential. Never fails.
//   - DeleteAccount: delete the account of the current user, then log out.
//   - Session: snapshot of the current state.
type SessionService interface {
	Start(ctx context.Context) error
	Login(ctx context.Context, username, password string) (*models.UserProfile, error)
	Register(ctx context.Context, form models.RegisterForm) error
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context) error
	Session() models.Session
}

// Listener is called with the new session after every transition. Calls are
// made in transition order and never concurrently.
type Listener func(models.Session)

// SessionOption configures a SessionService at construction.
type SessionOption func(*sessionService)

// WithListener registers l to be notified of every session transition.
func WithListener(l Listener) SessionOption {
	return func(s *sessionService) { s.listeners = append(s.listeners, l) }
}

type sessionService struct {
	client client.Client
	creds  credstore.Store
	log    logging.Logger
	now    func() time.Time

	// opMu serializes commands; mu guards the fields below it.
	opMu      sync.Mutex
	mu        sync.Mutex
	started   bool
	session   models.Session
	listeners []Listener
}

// NewSessionService constructs a SessionService bound to the given API client
// and credential store. The session starts in StateUnknown until Start runs.
func NewSessionService(c client.Client, creds credstore.Store, log logging.Logger, opts ...SessionOption) SessionService {
	s := &sessionService{
		client:  c,
		creds:   creds,
		log:     log.With("component", "session"),
		now:     time.Now,
		session: models.Session{State: models.StateUnknown},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *sessionService) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.session)
}

func snapshot(in models.Session) models.Session {
	out := models.Session{State: in.State}
	if in.Profile != nil {
		p := *in.Profile
		out.Profile = &p
	}
	return out
}

// transition must be called with opMu held.
func (s *sessionService) transition(ctx context.Context, state models.State, profile *models.UserProfile) {
	s.mu.Lock()
	from := s.session.State
	s.session = models.Session{State: state, Profile: profile}
	snap := snapshot(s.session)
	listeners := s.listeners
	s.mu.Unlock()

	s.log.Debug(ctx, "session transition", "from", from.String(), "to", state.String())
	for _, l := range listeners {
		l(snap)
	}
}

func (s *sessionService) Start(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	token, ok := s.creds.Get(ctx)
	if !ok {
		s.transition(ctx, models.StateUnauthenticated, nil)
		return nil
	}

	if info := credstore.Inspect(token); info.Expired(s.now()) {
		s.log.Debug(ctx, "stored credential carries a past expiry", "expires_at", info.ExpiresAt)
	}

	profile, err := s.client.Profile(ctx)
	switch {
	case err == nil:
		s.transition(ctx, models.StateAuthenticated, profile)
		return nil
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrNotFound):
		s.log.Info(ctx, "stored credential rejected, clearing it", "error", err)
		s.creds.Clear(ctx)
		s.transition(ctx, models.StateUnauthenticated, nil)
		return fmt.Errorf("stored credential rejected: %w", err)
	default:
		// Transient failure: the credential may still be good next time.
		s.log.Warn(ctx, "could not verify stored credential", "error", err)
		s.transition(ctx, models.StateUnauthenticated, nil)
		return fmt.Errorf("verify credential: %w", err)
	}
}

func (s *sessionService) Login(ctx context.Context, username, password string) (*models.UserProfile, error) {
	if err := validation.Login(username, password); err != nil {
		return nil, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.isStarted() {
		return nil, ErrNotStarted
	}

	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.creds.Set(ctx, res.AccessToken)
	user := res.User
	s.transition(ctx, models.StateAuthenticated, &user)
	s.log.Info(ctx, "logged in", "user_id", user.ID.String())

	p := user
	return &p, nil
}

func (s *sessionService) Register(ctx context.Context, form models.RegisterForm) error {
	if err := validation.Register(form); err != nil {
		return err
	}
	if err := s.client.Register(ctx, form.Username, form.Email, form.Password); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.log.Info(ctx, "registered", "username", form.Username)
	return nil
}

func (s *sessionService) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.creds.Clear(ctx)
	s.transition(ctx, models.StateUnauthenticated, nil)
}

func (s *sessionService) DeleteAccount(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.Session().IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if err := s.client.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.creds.Clear(ctx)
	s.transition(ctx, models.StateUnauthenticated, nil)
	s.log.Info(ctx, "account deleted")
	return nil
}

func (s *sessionService) isStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
