// Package job runs background tasks on River, a Postgres-backed queue.
//
// Tasks are plain types with a Name and a typed Handle method. Payloads are stored
// as JSON and decoded into the Handle argument type when the job runs:
//
//	type SendWelcome struct{ ... }
//
//	func (t *SendWelcome) Name() string { return "send_welcome" }
//	func (t *SendWelcome) Handle(ctx context.Context, p tasks.WelcomePayload) error { ... }
//
//	m, err := job.NewManager(pool,
//		job.WithTask[tasks.WelcomePayload](tasks.NewSendWelcome(mail, users, host, log)),
//		job.WithScheduledTask(tasks.NewPurgeLinks(users, log)),
//	)
//	_ = m.Enqueue(ctx, "send_welcome", tasks.WelcomePayload{UserID: id})
//
// Scheduled tasks additionally return a five-field cron expression from Schedule and
// are enqueued by River's periodic job scheduler. The River schema must be migrated
// before the manager starts (see pkg/db.Migrate).
package job
