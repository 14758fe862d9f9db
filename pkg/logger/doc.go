// Package logger builds the service's slog loggers.
//
// Records are written as JSON (or text for local development) and enriched per call
// by context extractors, so request-scoped values such as the request id or the
// visitor session id show up on every line logged with a request context:
//
//	log := logger.New(cfg,
//		middlewares.RequestIDExtractor(),
//		session.IDExtractor(),
//	)
//	log.InfoContext(ctx, "social login succeeded", slog.String("service", "google"))
//
// When Config.Sentry.DSN is set, warnings and errors are also forwarded to Sentry
// through sentry-go/slog. Errors become Sentry issues; warnings are kept as logs.
// An empty DSN or a failed Sentry init falls back to local output only.
//
// Libraries take a *slog.Logger through options and default to NewNope.
package logger
