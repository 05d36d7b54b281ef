package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// remember はkeyのキャッシュ済みの値を返し、なければloadを呼んで成功した結果だけを保存します。
// storeがnilの場合は常にloadを呼びます。
func remember[T any](ctx context.Context, store Store, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if store == nil {
		return load(ctx)
	}

	// 1) Check cache
	if b, err := store.Get(ctx, key); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = store.Delete(ctx, key)
	} else if err != nil && !errors.Is(err, ErrCacheMiss) {
		slog.Debug("cache get failed", "key", key, "error", err)
	}

	// 2) Fallback to provider
	out, err := load(ctx)
	if err != nil {
		return out, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := store.Set(ctx, key, b); err != nil {
			slog.Debug("cache set failed", "key", key, "error", err)
		}
	}
	return out, nil
}
