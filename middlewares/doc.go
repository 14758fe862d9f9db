// Package middlewares provides the net/http middleware stack of the social login
// service.
//
// # Request ID
//
// RequestID assigns an id to each request, reusing an upstream X-Request-ID when
// present. RequestIDExtractor adds it to every log record:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	r.Use(middlewares.RequestID())
//
// # Recover
//
// Recover turns a panic into a logged PanicError and a 500 response.
//
// # Timeout
//
// Timeout bounds the request context. Handlers that honor ctx.Done() stop early and
// the client receives 504 Gateway Timeout.
//
// # CORS
//
// CORS answers preflight requests and sets Access-Control-* headers for allowed
// origins. The provider list endpoint is typically consumed from a SPA on another
// origin.
package middlewares
