// Package health serves liveness and readiness probes.
//
// Readiness runs the registered checks (Postgres, Redis, job queue) concurrently under
// a shared timeout and answers 503 when one fails. Responses are plain text unless the
// caller asks for JSON with ?format=json or an Accept header.
//
//	checks := health.Checks{}.
//		Add("postgres", db.Healthcheck(pool)).
//		Add("redis", redis.Healthcheck(client))
//	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithLogger(log)))
package health
