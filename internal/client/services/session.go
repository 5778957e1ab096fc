// Package services contains application services for the CropCare client.
// This file defines the session store: registration, login, logout, profile
// updates and rehydration of the persisted session.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/dmitrijs2005/cropcare/internal/cryptox"
	"github.com/dmitrijs2005/cropcare/internal/dbx"
	"github.com/dmitrijs2005/cropcare/internal/logging"
	"github.com/google/uuid"
)

// State is the session state machine position.
type State int

const (
	StateUninitialized State = iota
	StateLoggedOut
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoggedOut:
		return "logged out"
	case StateLoggedIn:
		return "logged in"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// SessionService is the single authority over who is logged in and over the
// local account registry.
//
// Contract:
//   - Load must be called once before anything else; until then every
//     operation returns common.ErrNotLoaded.
//   - Register and Login move LoggedOut to LoggedIn. Switching accounts
//     requires a Logout first (common.ErrSessionActive).
//   - Logout is idempotent.
//   - UpdateProfile requires an active session (common.ErrNoActiveSession).
//   - Persistence failures are reported as common.ErrStorageFailure and leave
//     the in-memory session untouched.
//   - Flush persists the session one last time and returns the store to
//     StateUninitialized.
//
// Returned accounts are copies and never carry credential material.
type SessionService interface {
	Load(ctx context.Context) error
	Register(ctx context.Context, profile models.Profile, secret []byte) (*models.Account, error)
	Login(ctx context.Context, email string, secret []byte) (*models.Account, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Account, error)
	CurrentUser() *models.Account
	State() State
	Flush(ctx context.Context) error
}

// SessionOption customizes a session service.
type SessionOption func(*sessionService)

// WithKDFParams overrides the credential hashing cost.
func WithKDFParams(p cryptox.KDFParams) SessionOption {
	return func(s *sessionService) { s.kdf = p }
}

// WithClock overrides the time source used for createdAt and token issue time.
func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionService) { s.now = now }
}

// WithIDGenerator overrides account id generation.
func WithIDGenerator(newID func() string) SessionOption {
	return func(s *sessionService) { s.newID = newID }
}

type sessionService struct {
	db     *sql.DB
	logger logging.Logger

	kdf   cryptox.KDFParams
	now   func() time.Time
	newID func() string

	mu      sync.Mutex
	state   State
	current *models.Account
}

// NewSessionService constructs a SessionService over a migrated database.
func NewSessionService(db *sql.DB, logger logging.Logger, opts ...SessionOption) SessionService {
	s := &sessionService{
		db:     db,
		logger: logger.With("component", "session"),
		kdf:    cryptox.DefaultKDFParams,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inTx runs fn with an accounts repository bound to one transaction and marks
// everything that is not a business outcome as a storage failure.
func (s *sessionService) inTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, accounts.NewSQLiteRepository(tx))
	})
	return storageError(err)
}

func storageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrAlreadyExists),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrNoActiveSession),
		errors.Is(err, common.ErrSessionActive),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
}

// loadAccounts reads the collection; a corrupt collection reads as empty.
func (s *sessionService) loadAccounts(ctx context.Context, repo accounts.Repository) ([]models.AccountRecord, error) {
	records, err := repo.LoadAccounts(ctx)
	if errors.Is(err, accounts.ErrCorrupt) {
		s.logger.Warn(ctx, "account collection is unreadable, treating it as empty", "error", err)
		return []models.AccountRecord{}, nil
	}
	return records, err
}

// saveMarker signs and persists the session marker for view.
func (s *sessionService) saveMarker(ctx context.Context, repo accounts.Repository, view *models.Account) error {
	key, err := repo.EnsureSessionKey(ctx)
	if err != nil {
		return err
	}
	token, err := cryptox.IssueSessionToken(view.ID, key, s.now())
	if err != nil {
		return err
	}
	return repo.SaveSession(ctx, &accounts.SessionMarker{Account: *view, Token: token})
}

func (s *sessionService) requireLoaded() error {
	if s.state == StateUninitialized {
		return common.ErrNotLoaded
	}
	return nil
}

// Load rehydrates the session from storage. A marker that cannot be decoded,
// is not signed by this database, or names an account that no longer exists
// is removed and the store starts logged out.
func (s *sessionService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		view   *models.Account
		reason string
	)
	err := s.inTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		view, reason = nil, ""

		m, err := repo.LoadSession(ctx)
		if errors.Is(err, accounts.ErrCorrupt) {
			reason = err.Error()
			return repo.ClearSession(ctx)
		}
		if err != nil {
			return err
		}
		if m == nil {
			return nil
		}

		key, err := repo.SessionKey(ctx)
		if err != nil {
			return err
		}
		if key == nil {
			reason = "no session signing key"
			return repo.ClearSession(ctx)
		}
		subject, err := cryptox.ParseSessionToken(m.Token, key)
		if err != nil {
			reason = err.Error()
			return repo.ClearSession(ctx)
		}
		if subject != m.ID {
			reason = "token subject does not match session account"
			return repo.ClearSession(ctx)
		}

		records, err := s.loadAccounts(ctx, repo)
		if err != nil {
			return err
		}
		idx := accounts.FindByID(records, m.ID)
		if idx < 0 {
			reason = "session account no longer exists"
			return repo.ClearSession(ctx)
		}

		view = records[idx].View()
		return s.saveMarker(ctx, repo, view)
	})
	if err != nil {
		s.logger.Error(ctx, "session rehydration failed", "error", err)
		return err
	}

	if reason != "" {
		s.logger.Warn(ctx, "discarded persisted session", "reason", reason)
	}
	if view == nil {
		s.state, s.current = StateLoggedOut, nil
		s.logger.Debug(ctx, "session loaded", "state", s.state)
		return nil
	}
	s.state, s.current = StateLoggedIn, view
	s.logger.Info(ctx, "session restored", "account_id", view.ID)
	return nil
}

// Register creates an account and logs it in. The email must not be taken.
func (s *sessionService) Register(ctx context.Context, profile models.Profile, secret []byte) (*models.Account, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}

	credential := cryptox.NewCredential(secret, s.kdf)
	profile.CropTypes = slices.Clone(profile.CropTypes)

	var view *models.Account
	err := s.inTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		records, err := s.loadAccounts(ctx, repo)
		if err != nil {
			return err
		}
		if accounts.FindByEmail(records, profile.Email) >= 0 {
			return common.ErrAlreadyExists
		}
		if s.state == StateLoggedIn {
			return common.ErrSessionActive
		}

		record := models.AccountRecord{
			Account: models.Account{
				ID:        s.newID(),
				Profile:   profile,
				CreatedAt: s.now().UTC(),
			},
			Credential: credential,
		}
		if accounts.FindByID(records, record.ID) >= 0 {
			return fmt.Errorf("account id %s is already taken", record.ID)
		}

		if err := repo.SaveAccounts(ctx, append(records, record)); err != nil {
			return err
		}
		view = record.View()
		return s.saveMarker(ctx, repo, view)
	})
	if err != nil {
		return nil, err
	}

	s.state, s.current = StateLoggedIn, view
	s.logger.Info(ctx, "account registered", "account_id", view.ID)
	return view.Clone(), nil
}

// Login starts a session for the account whose email and secret both match.
// Unknown email and wrong secret fail the same way.
func (s *sessionService) Login(ctx context.Context, email string, secret []byte) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}
	if s.state == StateLoggedIn {
		return nil, common.ErrSessionActive
	}

	var view *models.Account
	err := s.inTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		records, err := s.loadAccounts(ctx, repo)
		if err != nil {
			return err
		}

		idx := accounts.FindByEmail(records, email)
		if idx < 0 {
			cryptox.BurnVerify(secret, s.kdf)
			return common.ErrInvalidCredentials
		}
		if !records[idx].Credential.Verify(secret, s.kdf) {
			return common.ErrInvalidCredentials
		}

		view = records[idx].View()
		return s.saveMarker(ctx, repo, view)
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.logger.Info(ctx, "login rejected")
		}
		return nil, err
	}

	s.state, s.current = StateLoggedIn, view
	s.logger.Info(ctx, "logged in", "account_id", view.ID)
	return view.Clone(), nil
}

// Logout clears the session. Logging out while logged out is a no-op apart
// from making sure no marker is left in storage.
func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return err
	}

	err := s.inTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		return repo.ClearSession(ctx)
	})
	if err != nil {
		return err
	}

	if s.current != nil {
		s.logger.Info(ctx, "logged out", "account_id", s.current.ID)
	}
	s.state, s.current = StateLoggedOut, nil
	return nil
}

// UpdateProfile merges patch into the session account and its stored record.
// Identity fields are not part of a patch and cannot change.
func (s *sessionService) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLoaded(); err != nil {
		return nil, err
	}
	if s.state != StateLoggedIn {
		return nil, common.ErrNoActiveSession
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.current.Clone(), nil
	}

	var (
		view     *models.Account
		dangling bool
	)
	err := s.inTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		records, err := s.loadAccounts(ctx, repo)
		if err != nil {
			return err
		}

		idx := accounts.FindByID(records, s.current.ID)
		if idx < 0 {
			dangling = true
			return repo.ClearSession(ctx)
		}

		updated := records[idx].Account.Clone()
		patch.Apply(updated)
		records[idx].Account = *updated

		if err := repo.SaveAccounts(ctx, records); err != nil {
			return err
		}
		view = updated.Clone()
		return s.saveMarker(ctx, repo, view)
	})
	if err != nil {
		return nil, err
	}

	if dangling {
		s.logger.Warn(ctx, "session account no longer exists, logging out", "account_id", s.current.ID)
		s.state, s.current = StateLoggedOut, nil
		return nil, common.ErrNoActiveSession
	}

	s.current = view
	s.logger.Info(ctx, "profile updated", "account_id", view.ID)
	return view.Clone(), nil
}

// CurrentUser returns a copy of the session account, or nil when logged out.
func (s *sessionService) CurrentUser() *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *sessionService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Flush writes the in-memory session back to storage and detaches the store.
func (s *sessionService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUninitialized {
		return nil
	}

	current := s.current
	err := s.inTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		if current == nil {
			return repo.ClearSession(ctx)
		}
		return s.saveMarker(ctx, repo, current)
	})
	if err != nil {
		return err
	}

	s.state, s.current = StateUninitialized, nil
	s.logger.Debug(ctx, "session flushed")
	return nil
}
