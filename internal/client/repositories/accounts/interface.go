// Package accounts maps the account registry and the session marker onto the
// client's key/value storage, using the same keys the web client kept in
// localStorage.
package accounts

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
)

// Storage keys.
const (
	KeySession    = "cropcare_user"
	KeyAccounts   = "cropcare_users"
	KeySessionKey = "cropcare_session_key"
)

// ErrCorrupt is returned when a stored value exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt persisted value")

// SessionMarker is the persisted session: the account view plus a signed
// token naming the account it belongs to.
type SessionMarker struct {
	models.Account
	Token string `json:"token,omitempty"`
}

// Repository describes typed access to the persisted account state.
type Repository interface {
	// LoadAccounts returns all account records, an empty slice when none are
	// stored, or ErrCorrupt when the stored collection cannot be decoded.
	LoadAccounts(ctx context.Context) ([]models.AccountRecord, error)

	// SaveAccounts replaces the stored collection.
	SaveAccounts(ctx context.Context, records []models.AccountRecord) error

	// LoadSession returns the marker, nil when absent, or ErrCorrupt.
	LoadSession(ctx context.Context) (*SessionMarker, error)

	// SaveSession stores the marker.
	SaveSession(ctx context.Context, m *SessionMarker) error

	// ClearSession removes the marker. Removing an absent marker is not an error.
	ClearSession(ctx context.Context) error

	// SessionKey returns the marker signing key, or nil when none exists yet.
	SessionKey(ctx context.Context) ([]byte, error)

	// EnsureSessionKey returns the signing key, creating it on first use.
	EnsureSessionKey(ctx context.Context) ([]byte, error)
}
