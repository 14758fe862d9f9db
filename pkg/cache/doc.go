// Package cache provides the generic key-value cache behind visitor sessions and
// the option store.
//
// Two backends implement [Cache]: [Memory], an LRU map with TTL expiry for single
// instances and tests, and [Redis] for deployments running several replicas.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
//
// Take reads and removes a key in one step (GETDEL on Redis), so a value can be
// consumed by exactly one caller. Session token rotation relies on it.
//
// [GetOrSet] wraps a loader with singleflight so concurrent misses on the same key
// run the loader once:
//
//	v, err := cache.GetOrSet(ctx, c, "hash_source_google", func(ctx context.Context) (string, time.Duration, error) {
//		v, err := store.Get(ctx, "hash_source_google")
//		return v, 0, err
//	})
package cache
