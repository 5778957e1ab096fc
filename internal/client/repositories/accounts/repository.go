package accounts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/client/repositories/storage"
	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/dmitrijs2005/cropcare/internal/cryptox"
	"github.com/dmitrijs2005/cropcare/internal/dbx"
)

// KVRepository implements Repository as JSON documents in a storage.Repository.
type KVRepository struct {
	kv storage.Repository
}

// NewKVRepository wraps an existing key/value repository.
func NewKVRepository(kv storage.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

// NewSQLiteRepository binds a KVRepository to a DBTX (either *sql.DB or *sql.Tx).
func NewSQLiteRepository(db dbx.DBTX) *KVRepository {
	return NewKVRepository(storage.NewSQLiteRepository(db))
}

func (r *KVRepository) LoadAccounts(ctx context.Context) ([]models.AccountRecord, error) {
	raw, err := r.kv.Get(ctx, KeyAccounts)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.AccountRecord{}, nil
	}

	var records []models.AccountRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, KeyAccounts, err)
	}
	if records == nil {
		records = []models.AccountRecord{}
	}
	return records, nil
}

func (r *KVRepository) SaveAccounts(ctx context.Context, records []models.AccountRecord) error {
	if records == nil {
		records = []models.AccountRecord{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	return r.kv.Set(ctx, KeyAccounts, b)
}

func (r *KVRepository) LoadSession(ctx context.Context) (*SessionMarker, error) {
	raw, err := r.kv.Get(ctx, KeySession)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var m SessionMarker
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, KeySession, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("%w: %s: missing id", ErrCorrupt, KeySession)
	}
	return &m, nil
}

func (r *KVRepository) SaveSession(ctx context.Context, m *SessionMarker) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.kv.Set(ctx, KeySession, b)
}

func (r *KVRepository) ClearSession(ctx context.Context) error {
	return r.kv.Delete(ctx, KeySession)
}

func (r *KVRepository) SessionKey(ctx context.Context) ([]byte, error) {
	key, err := r.kv.Get(ctx, KeySessionKey)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, nil
	}
	return key, nil
}

func (r *KVRepository) EnsureSessionKey(ctx context.Context) ([]byte, error) {
	key, err := r.SessionKey(ctx)
	if err != nil || key != nil {
		return key, err
	}

	key = common.GenerateRandByteArray(cryptox.SessionKeySize)
	if err := r.kv.Set(ctx, KeySessionKey, key); err != nil {
		return nil, err
	}
	return key, nil
}

// FindByEmail returns the index of the record with exactly this email, or -1.
func FindByEmail(records []models.AccountRecord, email string) int {
	for i := range records {
		if records[i].Email == email {
			return i
		}
	}
	return -1
}

// FindByID returns the index of the record with this id, or -1.
func FindByID(records []models.AccountRecord, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
