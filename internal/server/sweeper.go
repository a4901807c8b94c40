package server

import (
	"context"
	"log"
	"time"

	"github.com/pinboardhq/pinboard/internal/auth"
	"github.com/robfig/cron/v3"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the duration
// until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// runSessionSweeper marks sessions inactive once their last activity is
// older than the token lifetime. It blocks until ctx is cancelled.
func (s *Server) runSessionSweeper(ctx context.Context) {
	expr := s.cfg.Sessions.SweepCron
	d := nextCronDuration(expr)
	if d == 0 {
		log.Printf("server: session sweep disabled: bad cron %q", expr)
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			n, err := auth.SweepInactive(s.db, ttl)
			if err != nil {
				log.Printf("server: session sweep: %v", err)
			} else if n > 0 {
				log.Printf("server: session sweep: expired %d sessions", n)
			}
			if d := nextCronDuration(expr); d > 0 {
				timer.Reset(d)
			}
		}
	}
}
