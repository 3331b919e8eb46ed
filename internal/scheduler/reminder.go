package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SubmitPath is the endpoint the reminder form posts to
const SubmitPath = "/activity/submit_from_email"

// Reminder mails the administrator a daily activity form on a cron schedule
type Reminder struct {
	cron    *cron.Cron
	mailer  mail.Mailer
	cfg     config.ReminderConfig
	site    string
	log     zerolog.Logger
	entryID cron.EntryID
	now     func() time.Time
}

// NewReminder creates a reminder; call Start to schedule it
func NewReminder(mailer mail.Mailer, cfg config.ReminderConfig, site string, log zerolog.Logger) *Reminder {
	return &Reminder{
		cron:   cron.New(),
		mailer: mailer,
		cfg:    cfg,
		site:   site,
		log:    log.With().Str("component", "reminder").Logger(),
		now:    time.Now,
	}
}

// Enabled reports whether there is anyone to remind
func (r *Reminder) Enabled() bool {
	return r.cfg.AdminEmail != "" && r.cfg.Schedule != ""
}

// Start registers the job and starts the cron loop
func (r *Reminder) Start() error {
	if !r.Enabled() {
		r.log.Info().Msg("Reminder disabled, no admin email configured")
		return nil
	}

	id, err := r.cron.AddFunc(r.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.Send(ctx); err != nil {
			r.log.Error().Err(err).Msg("Failed to send activity reminder")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", r.cfg.Schedule, err)
	}
	r.entryID = id

	r.cron.Start()
	r.log.Info().
		Str("schedule", r.cfg.Schedule).
		Time("next_run", r.NextRun()).
		Msg("Reminder scheduler started")
	return nil
}

// Send mails today's form immediately
func (r *Reminder) Send(ctx context.Context) error {
	date := r.now().Format(models.DateLayout)
	action := strings.TrimRight(r.cfg.PublicURL, "/") + SubmitPath

	msg, err := mail.ActivityReminder(r.site, r.cfg.AdminEmail, action, r.cfg.SubmitKey, date)
	if err != nil {
		return err
	}
	if err := r.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver reminder: %w", err)
	}

	r.log.Info().Str("date", date).Msg("Activity reminder sent")
	return nil
}

// NextRun returns the next scheduled run, zero when not scheduled
func (r *Reminder) NextRun() time.Time {
	return r.cron.Entry(r.entryID).Next
}

// Stop halts the scheduler and waits for a running job to finish
func (r *Reminder) Stop() {
	<-r.cron.Stop().Done()
}
