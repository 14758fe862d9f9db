// Package mailer renders Markdown email templates and hands them to a Sender.
//
// Templates are Markdown files with an optional YAML front matter block. The body is
// executed with text/template, converted to HTML with goldmark and wrapped in an
// HTML layout:
//
//	---
//	subject: Welcome, {{.Name}}
//	---
//	Hi {{.Name}}, thanks for signing in with {{.Service}}.
//
// The built-in templates live in the embedded Templates filesystem. Senders are
// provider adapters; see the resend subpackage.
package mailer
