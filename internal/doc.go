// Package internal assembles the social login service: stores, sessions, provider
// adapters, the callback dispatcher, background jobs and the HTTP surface.
package internal
