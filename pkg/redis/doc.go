// Package redis opens the go-redis client shared by the session and option caches.
//
// Open validates the URL scheme (redis:// or rediss://), applies pool and timeout
// options and pings the server, retrying with a linearly growing wait:
//
//	client, err := redis.Open(ctx, cfg.Redis.URL, redis.FromConfig(cfg.Redis)...)
//	if err != nil {
//		return err
//	}
//	checks["redis"] = redis.Healthcheck(client)
//	hooks = append(hooks, redis.Shutdown(client))
package redis
