package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/docspace/internal/client/client"
	"github.com/dmitrijs2005/docspace/internal/client/credstore"
	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dmitrijs2005/docspace/internal/client/validation"
	"github.com/dmitrijs2005/docspace/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = models.UserProfile{ID: "1", Username: "alice", Email: "alice@example.com"}

func newSession(fc *fakeClient, store credstore.Store, opts ...SessionOption) SessionService {
	return NewSessionService(fc, store, logging.Discard(), opts...)
}

func TestSession_StartWithoutCredential(t *testing.T) {
	fc := &fakeClient{}
	s := newSession(fc, credstore.NewMemoryStore())

	assert.Equal(t, models.StateUnknown, s.Session().State)
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, models.StateUnauthenticated, s.Session().State)
	assert.Empty(t, fc.Calls(), "no network call without a credential")

	require.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestSession_StartWithValidCredential(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemoryStore()
	store.Set(ctx, "tok-123")

	var seen []models.State
	fc := &fakeClient{
		profileFn: func() (*models.UserProfile, error) {
			p := alice
			return &p, nil
		},
	}
	s := newSession(fc, store, WithListener(func(s models.Session) { seen = append(seen, s.State) }))

	require.NoError(t, s.Start(ctx))
	got := s.Session()
	assert.True(t, got.IsAuthenticated())
	assert.Equal(t, "alice", got.Profile.Username)
	assert.Equal(t, []string{"profile"}, fc.Calls())
	assert.Equal(t, []models.State{models.StateAuthenticated}, seen)
}

func TestSession_StartWithRejectedCredential(t *testing.T) {
	for _, kind := range []client.Kind{client.KindAuth, client.KindNotFound} {
		t.Run(kind.String(), func(t *testing.T) {
			ctx := context.Background()
			store := credstore.NewMemoryStore()
			store.Set(ctx, "stale")

			fc := &fakeClient{profileFn: func() (*models.UserProfile, error) {
				return nil, &client.NetworkError{Kind: kind, Status: 401}
			}}
			s := newSession(fc, store)

			err := s.Start(ctx)
			require.Error(t, err)
			assert.Equal(t, models.StateUnauthenticated, s.Session().State)
			_, ok := store.Get(ctx)
			assert.False(t, ok, "rejected credential is cleared")
		})
	}
}

func TestSession_StartWithTransientFailureKeepsCredential(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemoryStore()
	store.Set(ctx, "tok-123")

	fc := &fakeClient{profileFn: func() (*models.UserProfile, error) {
		return nil, &client.NetworkError{Kind: client.KindTransport, Message: "connection refused"}
	}}
	s := newSession(fc, store)

	err := s.Start(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, models.StateUnauthenticated, s.Session().State)

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-123", got)
}

func TestSession_Login(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemoryStore()
	fc := &fakeClient{loginFn: func(u, p string) (*models.LoginResult, error) {
		require.Equal(t, "alice", u)
		require.Equal(t, "secret1", p)
		return &models.LoginResult{AccessToken: "tok-123", User: alice}, nil
	}}
	s := newSession(fc, store)
	require.NoError(t, s.Start(ctx))

	profile, err := s.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, alice, *profile)

	tok, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-123", tok)

	got := s.Session()
	assert.Equal(t, models.StateAuthenticated, got.State)
	assert.Equal(t, alice, *got.Profile)
}

func TestSession_LoginFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemoryStore()
	fc := &fakeClient{loginFn: func(u, p string) (*models.LoginResult, error) {
		return nil, &client.NetworkError{Kind: client.KindAuth, Status: 401, Message: "Invalid credentials"}
	}}
	s := newSession(fc, store)
	require.NoError(t, s.Start(ctx))

	_, err := s.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, models.StateUnauthenticated, s.Session().State)
	_, ok := store.Get(ctx)
	assert.False(t, ok)
}

func TestSession_LoginValidation(t *testing.T) {
	fc := &fakeClient{}
	s := newSession(fc, credstore.NewMemoryStore())
	require.NoError(t, s.Start(context.Background()))

	_, err := s.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, validation.ErrValidation)
	_, err = s.Login(context.Background(), "alice", "")
	require.ErrorIs(t, err, validation.ErrValidation)
	assert.Empty(t, fc.Calls())
}

func TestSession_LoginBeforeStart(t *testing.T) {
	fc := &fakeClient{}
	s := newSession(fc, credstore.NewMemoryStore())

	_, err := s.Login(context.Background(), "alice", "secret1")
	require.ErrorIs(t, err, ErrNotStarted)
	assert.Empty(t, fc.Calls())
}

func TestSession_Register(t *testing.T) {
	valid := models.RegisterForm{Username: "alice", Email: "alice@example.com", Password: "secret1", ConfirmPassword: "secret1"}

	t.Run("short password", func(t *testing.T) {
		fc := &fakeClient{}
		form := valid
		form.Password, form.ConfirmPassword = "ab", "ab"

		err := newSession(fc, credstore.NewMemoryStore()).Register(context.Background(), form)
		require.ErrorIs(t, err, validation.ErrValidation)
		assert.Empty(t, fc.Calls())
	})

	t.Run("mismatch", func(t *testing.T) {
		fc := &fakeClient{}
		form := valid
		form.ConfirmPassword = "secret2"

		err := newSession(fc, credstore.NewMemoryStore()).Register(context.Background(), form)
		require.ErrorIs(t, err, validation.ErrValidation)
		assert.Empty(t, fc.Calls())
	})

	t.Run("ok does not log in", func(t *testing.T) {
		fc := &fakeClient{registerFn: func(u, e, p string) error {
			assert.Equal(t, "alice", u)
			assert.Equal(t, "alice@example.com", e)
			return nil
		}}
		store := credstore.NewMemoryStore()
		s := newSession(fc, store)
		require.NoError(t, s.Start(context.Background()))

		require.NoError(t, s.Register(context.Background(), valid))
		assert.Equal(t, models.StateUnauthenticated, s.Session().State)
		_, ok := store.Get(context.Background())
		assert.False(t, ok)
	})

	t.Run("server conflict", func(t *testing.T) {
		fc := &fakeClient{registerFn: func(u, e, p string) error {
			return &client.NetworkError{Kind: client.KindService, Status: 409, Message: "Username already exists"}
		}}
		err := newSession(fc, credstore.NewMemoryStore()).Register(context.Background(), valid)
		require.ErrorIs(t, err, client.ErrService)
		assert.Contains(t, err.Error(), "Username already exists")
	})
}

func loggedIn(t *testing.T, fc *fakeClient, store credstore.Store, opts ...SessionOption) SessionService {
	t.Helper()
	fc.loginFn = func(u, p string) (*models.LoginResult, error) {
		return &models.LoginResult{AccessToken: "tok-123", User: alice}, nil
	}
	s := newSession(fc, store, opts...)
	require.NoError(t, s.Start(context.Background()))
	_, err := s.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	return s
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemoryStore()
	var seen []models.State
	s := loggedIn(t, &fakeClient{}, store, WithListener(func(s models.Session) { seen = append(seen, s.State) }))

	s.Logout(ctx)
	assert.Equal(t, models.StateUnauthenticated, s.Session().State)
	assert.Nil(t, s.Session().Profile)
	_, ok := store.Get(ctx)
	assert.False(t, ok)

	s.Logout(ctx)
	assert.Equal(t, models.StateUnauthenticated, s.Session().State)
	assert.Equal(t, []models.State{
		models.StateUnauthenticated, models.StateAuthenticated,
		models.StateUnauthenticated, models.StateUnauthenticated,
	}, seen)
}

func TestSession_DeleteAccount(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		fc := &fakeClient{}
		s := newSession(fc, credstore.NewMemoryStore())
		require.NoError(t, s.Start(context.Background()))

		require.ErrorIs(t, s.DeleteAccount(context.Background()), ErrNotAuthenticated)
		assert.Empty(t, fc.Calls())
	})

	t.Run("success logs out", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		fc := &fakeClient{deleteAcct: func() error { return nil }}
		s := loggedIn(t, fc, store)

		require.NoError(t, s.DeleteAccount(context.Background()))
		assert.Equal(t, models.StateUnauthenticated, s.Session().State)
		_, ok := store.Get(context.Background())
		assert.False(t, ok)
	})

	t.Run("failure keeps session", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		boom := &client.NetworkError{Kind: client.KindService, Status: 500, Message: "boom"}
		fc := &fakeClient{deleteAcct: func() error { return boom }}
		s := loggedIn(t, fc, store)

		err := s.DeleteAccount(context.Background())
		require.True(t, errors.Is(err, client.ErrService))
		assert.True(t, s.Session().IsAuthenticated())
		_, ok := store.Get(context.Background())
		assert.True(t, ok)
	})
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s := loggedIn(t, &fakeClient{}, credstore.NewMemoryStore())
	snap := s.Session()
	snap.Profile.Username = "mallory"
	assert.Equal(t, "alice", s.Session().Profile.Username)
}
