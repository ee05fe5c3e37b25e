package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Load decodes the JSON value stored under key. A missing slot, a read
// failure or a value that does not decode into T all yield def; Load never
// fails.
func Load[T any](ctx context.Context, b Backend, key string, def T) T {
	raw, err := b.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("slot read failed, using default")
		}
		return def
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("slot is corrupt, using default")
		return def
	}
	return out
}

// Save encodes v as JSON and writes it under key.
func Save[T any](ctx context.Context, b Backend, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}
	if err := b.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}
