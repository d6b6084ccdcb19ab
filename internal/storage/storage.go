// Package storage provides the key-value save store the game persists into.
// Values are opaque JSON documents; each game component owns one key.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cosmogen/cosmogenesis/internal/domain"
)

// Save keys. One component owns each key.
const (
	KeyPlayerData   = "player_data"
	KeyShopUniverse = "shop_universe"
	KeyUniverse     = "universe"
)

// Store is the durable key-value interface state is saved through.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SaveJSON marshals value and writes it under key.
func SaveJSON(ctx context.Context, store Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("%w: put %s: %w", domain.ErrPersistenceFailure, key, err)
	}
	return nil
}

// LoadJSON reads key into target. It returns false when no value exists.
// A payload that fails to decode is backed up under a timestamped key,
// removed, and reported as ErrCorruptedState so the caller can degrade to
// defaults instead of failing startup.
func LoadJSON(ctx context.Context, store Store, key string, target any) (bool, error) {
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		backupKey := fmt.Sprintf("%s_backup_%d", key, time.Now().UnixMilli())
		if backupErr := store.Put(ctx, backupKey, data); backupErr == nil {
			_ = store.Delete(ctx, key)
		}
		return false, fmt.Errorf("%w: %s: %w", domain.ErrCorruptedState, key, err)
	}
	return true, nil
}
