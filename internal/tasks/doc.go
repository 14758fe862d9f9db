// Package tasks holds the background jobs of the social login service and the
// notifier that schedules the welcome email after a social registration.
package tasks
